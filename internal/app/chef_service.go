package app

import (
	"context"
	"fmt"

	corechef "github.com/example/bakery/internal/core/chef"
	"github.com/example/bakery/internal/models"
	"github.com/example/bakery/internal/ports/primary"
	"github.com/example/bakery/internal/ports/secondary"
)

// ChefServiceImpl implements the ChefService interface.
type ChefServiceImpl struct {
	chefRepo secondary.ChefRepository
}

// NewChefService creates a new ChefService with injected dependencies.
func NewChefService(chefRepo secondary.ChefRepository) *ChefServiceImpl {
	return &ChefServiceImpl{
		chefRepo: chefRepo,
	}
}

// CreateChef creates a chef in a bakery.
func (s *ChefServiceImpl) CreateChef(ctx context.Context, req primary.CreateChefRequest) (*primary.CreateChefResponse, error) {
	guardCtx := corechef.CreateContext{
		Name:     req.Name,
		BakeryID: req.BakeryID,
	}
	if result := corechef.CanCreate(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	id, err := s.chefRepo.Insert(ctx, &models.ChefActive{
		Name:     models.Set(req.Name),
		BakeryID: models.Set(req.BakeryID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chef: %w", err)
	}

	created, err := s.chefRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created chef: %w", err)
	}

	return &primary.CreateChefResponse{
		ChefID: created.ID,
		Chef:   toChef(created),
	}, nil
}

// CreateChefs creates several chefs in one bakery with a single insert.
func (s *ChefServiceImpl) CreateChefs(ctx context.Context, req primary.CreateChefsRequest) ([]*primary.Chef, error) {
	batch := make([]*models.ChefActive, 0, len(req.Names))
	for _, name := range req.Names {
		guardCtx := corechef.CreateContext{Name: name, BakeryID: req.BakeryID}
		if result := corechef.CanCreate(guardCtx); !result.Allowed {
			return nil, result.Error()
		}
		batch = append(batch, &models.ChefActive{
			Name:     models.Set(name),
			BakeryID: models.Set(req.BakeryID),
		})
	}

	ids, err := s.chefRepo.InsertMany(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("failed to create chefs: %w", err)
	}

	chefs := make([]*primary.Chef, len(ids))
	for i, id := range ids {
		chefs[i] = &primary.Chef{ID: id, Name: req.Names[i], BakeryID: req.BakeryID}
	}
	return chefs, nil
}

// UpdateChef writes the fields present in the request and leaves the rest alone.
func (s *ChefServiceImpl) UpdateChef(ctx context.Context, req primary.UpdateChefRequest) (*primary.Chef, error) {
	guardCtx := corechef.UpdateContext{
		ChefID:   req.ChefID,
		Name:     req.Name,
		BakeryID: req.BakeryID,
	}
	if result := corechef.CanUpdate(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	updated, err := s.chefRepo.Update(ctx, &models.ChefActive{
		ID:       models.Set(req.ChefID),
		Name:     models.FromPtr(req.Name),
		BakeryID: models.FromPtr(req.BakeryID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update chef: %w", err)
	}
	return toChef(updated), nil
}

// GetChef retrieves a chef by id.
func (s *ChefServiceImpl) GetChef(ctx context.Context, chefID int64) (*primary.Chef, error) {
	record, err := s.chefRepo.FindByID(ctx, chefID)
	if err != nil {
		return nil, err
	}
	return toChef(record), nil
}

// ListChefs retrieves chefs, optionally only those of one bakery.
func (s *ChefServiceImpl) ListChefs(ctx context.Context, filters primary.ChefFilters) ([]*primary.Chef, error) {
	var (
		records []*models.Chef
		err     error
	)
	if filters.BakeryID > 0 {
		records, err = s.chefRepo.FindBy(ctx, models.ChefColumnBakeryID, filters.BakeryID)
	} else {
		records, err = s.chefRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list chefs: %w", err)
	}
	return toChefs(records), nil
}

// DeleteChef deletes a chef. A missing chef is not an error.
func (s *ChefServiceImpl) DeleteChef(ctx context.Context, chefID int64) error {
	return s.chefRepo.Delete(ctx, chefID)
}

// DeleteAllChefs deletes every chef.
func (s *ChefServiceImpl) DeleteAllChefs(ctx context.Context) (int64, error) {
	return s.chefRepo.DeleteAll(ctx)
}

// Helper methods

func toChef(r *models.Chef) *primary.Chef {
	return &primary.Chef{
		ID:       r.ID,
		Name:     r.Name,
		BakeryID: r.BakeryID,
	}
}

func toChefs(records []*models.Chef) []*primary.Chef {
	chefs := make([]*primary.Chef, len(records))
	for i, r := range records {
		chefs[i] = toChef(r)
	}
	return chefs
}

// Ensure ChefServiceImpl implements the interface
var _ primary.ChefService = (*ChefServiceImpl)(nil)
