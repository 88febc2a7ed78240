package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/example/bakery/internal/models"
	"github.com/example/bakery/internal/ports/secondary"
	"github.com/example/bakery/internal/sqlerr"
)

// BakeryRepository implements secondary.BakeryRepository with gorm.
type BakeryRepository struct {
	db *gorm.DB
}

// NewBakeryRepository creates a new gorm bakery repository.
func NewBakeryRepository(db *gorm.DB) *BakeryRepository {
	return &BakeryRepository{db: db}
}

// Insert persists the set fields of a bakery and returns the generated id.
func (r *BakeryRepository) Insert(ctx context.Context, bakery *models.BakeryActive) (int64, error) {
	cols := bakery.Columns()
	if len(cols) == 0 {
		return 0, fmt.Errorf("insert bakery: %w", secondary.ErrNoValues)
	}

	row := bakery.Model()
	if err := r.db.WithContext(ctx).Select(cols).Create(row).Error; err != nil {
		return 0, sqlerr.Wrap("insert bakery", err)
	}
	return row.ID, nil
}

// Update writes the set fields of the bakery identified by bakery.ID.
func (r *BakeryRepository) Update(ctx context.Context, bakery *models.BakeryActive) (*models.Bakery, error) {
	id, ok := bakery.ID.Get()
	if !ok {
		return nil, fmt.Errorf("update bakery: %w", secondary.ErrMissingPrimaryKey)
	}

	assigns := bakery.Assignments()
	if len(assigns) > 0 {
		err := r.db.WithContext(ctx).
			Model(&models.Bakery{}).
			Where("id = ?", id).
			Updates(assigns).Error
		if err != nil {
			return nil, sqlerr.Wrap(fmt.Sprintf("update bakery %d", id), err)
		}
	}

	return r.FindByID(ctx, id)
}

// Delete removes a bakery by id. Its chefs go with it through the cascade.
func (r *BakeryRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Bakery{}).Error
	return sqlerr.Wrap(fmt.Sprintf("delete bakery %d", id), err)
}

// DeleteAll removes every bakery.
func (r *BakeryRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.Bakery{})
	if res.Error != nil {
		return 0, sqlerr.Wrap("delete bakeries", res.Error)
	}
	return res.RowsAffected, nil
}

// FindAll retrieves every bakery ordered by id.
func (r *BakeryRepository) FindAll(ctx context.Context) ([]*models.Bakery, error) {
	var bakeries []*models.Bakery
	if err := r.db.WithContext(ctx).Order(byID).Find(&bakeries).Error; err != nil {
		return nil, sqlerr.Wrap("list bakeries", err)
	}
	return bakeries, nil
}

// FindByID retrieves a bakery by its id.
func (r *BakeryRepository) FindByID(ctx context.Context, id int64) (*models.Bakery, error) {
	return r.first(r.db.WithContext(ctx), id)
}

// FindByIDWithChefs retrieves a bakery with its chefs ordered by id.
func (r *BakeryRepository) FindByIDWithChefs(ctx context.Context, id int64) (*models.Bakery, error) {
	tx := r.db.WithContext(ctx).Preload("Chefs", func(db *gorm.DB) *gorm.DB {
		return db.Order(byID)
	})
	bakery, err := r.first(tx, id)
	if err != nil {
		return nil, err
	}
	if bakery.Chefs == nil {
		bakery.Chefs = []*models.Chef{}
	}
	return bakery, nil
}

func (r *BakeryRepository) first(tx *gorm.DB, id int64) (*models.Bakery, error) {
	var bakery models.Bakery
	err := tx.Where("id = ?", id).Take(&bakery).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("bakery %d: %w", id, sqlerr.ErrNotFound)
	}
	if err != nil {
		return nil, sqlerr.Wrap(fmt.Sprintf("get bakery %d", id), err)
	}
	return &bakery, nil
}

// FindBy retrieves bakeries whose column equals value, ordered by id.
func (r *BakeryRepository) FindBy(ctx context.Context, column string, value any) ([]*models.Bakery, error) {
	cond, err := equals(models.BakeryColumns, column, value)
	if err != nil {
		return nil, err
	}

	var bakeries []*models.Bakery
	if err := r.db.WithContext(ctx).Where(cond).Order(byID).Find(&bakeries).Error; err != nil {
		return nil, sqlerr.Wrap("find bakeries", err)
	}
	return bakeries, nil
}

// FindFirstBy retrieves the lowest-id bakery whose column equals value.
func (r *BakeryRepository) FindFirstBy(ctx context.Context, column string, value any) (*models.Bakery, error) {
	cond, err := equals(models.BakeryColumns, column, value)
	if err != nil {
		return nil, err
	}

	var bakery models.Bakery
	err = r.db.WithContext(ctx).Where(cond).Order(byID).Take(&bakery).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("bakery with %s = %v: %w", column, value, sqlerr.ErrNotFound)
	}
	if err != nil {
		return nil, sqlerr.Wrap("find bakery", err)
	}
	return &bakery, nil
}

// FindByIDs retrieves the bakeries with the given ids, ordered by id.
// Ids with no row are skipped.
func (r *BakeryRepository) FindByIDs(ctx context.Context, ids []int64) ([]*models.Bakery, error) {
	if len(ids) == 0 {
		return []*models.Bakery{}, nil
	}

	var bakeries []*models.Bakery
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order(byID).Find(&bakeries).Error; err != nil {
		return nil, sqlerr.Wrap("find bakeries by id", err)
	}
	return bakeries, nil
}

// FindRelatedChefs retrieves the chefs of one bakery ordered by id.
func (r *BakeryRepository) FindRelatedChefs(ctx context.Context, bakery *models.Bakery) ([]*models.Chef, error) {
	if bakery == nil {
		return nil, fmt.Errorf("find related chefs: %w", secondary.ErrMissingPrimaryKey)
	}

	chefs := []*models.Chef{}
	err := r.db.WithContext(ctx).Model(bakery).Order(byID).Association("Chefs").Find(&chefs)
	if err != nil {
		return nil, sqlerr.Wrap(fmt.Sprintf("chefs of bakery %d", bakery.ID), err)
	}
	return chefs, nil
}

// LoadChefs fetches the chefs of all given bakeries with a single query and
// partitions them by parent. result[i] holds the chefs of bakeries[i], in id
// order, and is an empty slice when that bakery has none.
func (r *BakeryRepository) LoadChefs(ctx context.Context, bakeries []*models.Bakery) ([][]*models.Chef, error) {
	result := make([][]*models.Chef, len(bakeries))
	if len(bakeries) == 0 {
		return result, nil
	}

	ids := make([]int64, 0, len(bakeries))
	seen := make(map[int64]bool, len(bakeries))
	for _, b := range bakeries {
		if !seen[b.ID] {
			seen[b.ID] = true
			ids = append(ids, b.ID)
		}
	}

	var chefs []*models.Chef
	err := r.db.WithContext(ctx).
		Where("bakery_id IN ?", ids).
		Order(byID).
		Find(&chefs).Error
	if err != nil {
		return nil, sqlerr.Wrap("load chefs", err)
	}

	byParent := make(map[int64][]*models.Chef, len(ids))
	for _, c := range chefs {
		byParent[c.BakeryID] = append(byParent[c.BakeryID], c)
	}
	for i, b := range bakeries {
		group := byParent[b.ID]
		if group == nil {
			group = []*models.Chef{}
		}
		result[i] = group
	}
	return result, nil
}

// Ensure BakeryRepository implements the interface
var _ secondary.BakeryRepository = (*BakeryRepository)(nil)
