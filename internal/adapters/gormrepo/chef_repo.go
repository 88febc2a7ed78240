package gormrepo

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"gorm.io/gorm"

	"github.com/example/bakery/internal/models"
	"github.com/example/bakery/internal/ports/secondary"
	"github.com/example/bakery/internal/sqlerr"
)

// ChefRepository implements secondary.ChefRepository with gorm.
type ChefRepository struct {
	db *gorm.DB
}

// NewChefRepository creates a new gorm chef repository.
func NewChefRepository(db *gorm.DB) *ChefRepository {
	return &ChefRepository{db: db}
}

// Insert persists the set fields of a chef and returns the generated id.
func (r *ChefRepository) Insert(ctx context.Context, chef *models.ChefActive) (int64, error) {
	cols := chef.Columns()
	if len(cols) == 0 {
		return 0, fmt.Errorf("insert chef: %w", secondary.ErrNoValues)
	}

	row := chef.Model()
	if err := r.db.WithContext(ctx).Select(cols).Create(row).Error; err != nil {
		return 0, sqlerr.Wrap("insert chef", err)
	}
	return row.ID, nil
}

// InsertMany persists several chefs in one statement. Every chef must set
// the same fields. The returned ids follow the input order.
func (r *ChefRepository) InsertMany(ctx context.Context, chefs []*models.ChefActive) ([]int64, error) {
	if len(chefs) == 0 {
		return []int64{}, nil
	}

	cols := chefs[0].Columns()
	if len(cols) == 0 {
		return nil, fmt.Errorf("insert chefs: %w", secondary.ErrNoValues)
	}

	rows := make([]*models.Chef, 0, len(chefs))
	for i, c := range chefs {
		if !slices.Equal(c.Columns(), cols) {
			return nil, fmt.Errorf("insert chefs: chef %d sets %v, want %v", i, c.Columns(), cols)
		}
		rows = append(rows, c.Model())
	}

	if err := r.db.WithContext(ctx).Select(cols).Create(&rows).Error; err != nil {
		return nil, sqlerr.Wrap("insert chefs", err)
	}

	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	return ids, nil
}

// Update writes the set fields of the chef identified by chef.ID.
func (r *ChefRepository) Update(ctx context.Context, chef *models.ChefActive) (*models.Chef, error) {
	id, ok := chef.ID.Get()
	if !ok {
		return nil, fmt.Errorf("update chef: %w", secondary.ErrMissingPrimaryKey)
	}

	assigns := chef.Assignments()
	if len(assigns) > 0 {
		err := r.db.WithContext(ctx).
			Model(&models.Chef{}).
			Where("id = ?", id).
			Updates(assigns).Error
		if err != nil {
			return nil, sqlerr.Wrap(fmt.Sprintf("update chef %d", id), err)
		}
	}

	return r.FindByID(ctx, id)
}

// Delete removes a chef by id.
func (r *ChefRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Chef{}).Error
	return sqlerr.Wrap(fmt.Sprintf("delete chef %d", id), err)
}

// DeleteAll removes every chef.
func (r *ChefRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.Chef{})
	if res.Error != nil {
		return 0, sqlerr.Wrap("delete chefs", res.Error)
	}
	return res.RowsAffected, nil
}

// FindAll retrieves every chef ordered by id.
func (r *ChefRepository) FindAll(ctx context.Context) ([]*models.Chef, error) {
	var chefs []*models.Chef
	if err := r.db.WithContext(ctx).Order(byID).Find(&chefs).Error; err != nil {
		return nil, sqlerr.Wrap("list chefs", err)
	}
	return chefs, nil
}

// FindByID retrieves a chef by its id.
func (r *ChefRepository) FindByID(ctx context.Context, id int64) (*models.Chef, error) {
	var chef models.Chef
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&chef).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("chef %d: %w", id, sqlerr.ErrNotFound)
	}
	if err != nil {
		return nil, sqlerr.Wrap(fmt.Sprintf("get chef %d", id), err)
	}
	return &chef, nil
}

// FindBy retrieves chefs whose column equals value, ordered by id.
func (r *ChefRepository) FindBy(ctx context.Context, column string, value any) ([]*models.Chef, error) {
	cond, err := equals(models.ChefColumns, column, value)
	if err != nil {
		return nil, err
	}

	var chefs []*models.Chef
	if err := r.db.WithContext(ctx).Where(cond).Order(byID).Find(&chefs).Error; err != nil {
		return nil, sqlerr.Wrap("find chefs", err)
	}
	return chefs, nil
}

// Ensure ChefRepository implements the interface
var _ secondary.ChefRepository = (*ChefRepository)(nil)
