package app

import (
	"context"
	"fmt"

	corebakery "github.com/example/bakery/internal/core/bakery"
	"github.com/example/bakery/internal/models"
	"github.com/example/bakery/internal/ports/primary"
	"github.com/example/bakery/internal/ports/secondary"
	"github.com/example/bakery/internal/sqlerr"
)

// BakeryServiceImpl implements the BakeryService interface.
type BakeryServiceImpl struct {
	bakeryRepo secondary.BakeryRepository
}

// NewBakeryService creates a new BakeryService with injected dependencies.
func NewBakeryService(bakeryRepo secondary.BakeryRepository) *BakeryServiceImpl {
	return &BakeryServiceImpl{
		bakeryRepo: bakeryRepo,
	}
}

// CreateBakery creates a new bakery.
func (s *BakeryServiceImpl) CreateBakery(ctx context.Context, req primary.CreateBakeryRequest) (*primary.CreateBakeryResponse, error) {
	guardCtx := corebakery.CreateContext{
		Name:         req.Name,
		ProfitMargin: req.ProfitMargin,
	}
	if result := corebakery.CanCreate(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	id, err := s.bakeryRepo.Insert(ctx, &models.BakeryActive{
		Name:         models.Set(req.Name),
		ProfitMargin: models.Set(req.ProfitMargin),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create bakery: %w", err)
	}

	created, err := s.bakeryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created bakery: %w", err)
	}

	return &primary.CreateBakeryResponse{
		BakeryID: created.ID,
		Bakery:   toBakery(created),
	}, nil
}

// UpdateBakery writes the fields present in the request and leaves the rest alone.
func (s *BakeryServiceImpl) UpdateBakery(ctx context.Context, req primary.UpdateBakeryRequest) (*primary.Bakery, error) {
	guardCtx := corebakery.UpdateContext{
		BakeryID:     req.BakeryID,
		Name:         req.Name,
		ProfitMargin: req.ProfitMargin,
	}
	if result := corebakery.CanUpdate(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	updated, err := s.bakeryRepo.Update(ctx, &models.BakeryActive{
		ID:           models.Set(req.BakeryID),
		Name:         models.FromPtr(req.Name),
		ProfitMargin: models.FromPtr(req.ProfitMargin),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update bakery: %w", err)
	}
	return toBakery(updated), nil
}

// GetBakery retrieves a bakery and its chefs.
func (s *BakeryServiceImpl) GetBakery(ctx context.Context, bakeryID int64) (*primary.Bakery, error) {
	record, err := s.bakeryRepo.FindByIDWithChefs(ctx, bakeryID)
	if err != nil {
		return nil, err
	}
	return toBakery(record), nil
}

// ListBakeries retrieves all bakeries.
func (s *BakeryServiceImpl) ListBakeries(ctx context.Context) ([]*primary.Bakery, error) {
	records, err := s.bakeryRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bakeries: %w", err)
	}
	return toBakeries(records), nil
}

// FindBakeriesByName retrieves bakeries with exactly this name.
func (s *BakeryServiceImpl) FindBakeriesByName(ctx context.Context, name string) ([]*primary.Bakery, error) {
	records, err := s.bakeryRepo.FindBy(ctx, models.BakeryColumnName, name)
	if err != nil {
		return nil, fmt.Errorf("failed to find bakeries: %w", err)
	}
	return toBakeries(records), nil
}

// DeleteBakery deletes a bakery. A missing bakery is not an error.
func (s *BakeryServiceImpl) DeleteBakery(ctx context.Context, bakeryID int64) error {
	return s.bakeryRepo.Delete(ctx, bakeryID)
}

// DeleteAllBakeries deletes every bakery.
func (s *BakeryServiceImpl) DeleteAllBakeries(ctx context.Context) (int64, error) {
	return s.bakeryRepo.DeleteAll(ctx)
}

// ListBakeryChefs retrieves the chefs of one bakery.
func (s *BakeryServiceImpl) ListBakeryChefs(ctx context.Context, bakeryID int64) ([]*primary.Chef, error) {
	record, err := s.bakeryRepo.FindByID(ctx, bakeryID)
	if err != nil {
		return nil, err
	}

	chefs, err := s.bakeryRepo.FindRelatedChefs(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to list chefs: %w", err)
	}
	return toChefs(chefs), nil
}

// LoadBakeryChefs retrieves the bakeries in bakeryIDs order, each with its
// chefs, using one query for the bakeries and one for all their chefs.
func (s *BakeryServiceImpl) LoadBakeryChefs(ctx context.Context, bakeryIDs []int64) ([]*primary.Bakery, error) {
	if len(bakeryIDs) == 0 {
		return []*primary.Bakery{}, nil
	}

	records, err := s.bakeryRepo.FindByIDs(ctx, bakeryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load bakeries: %w", err)
	}

	byID := make(map[int64]*models.Bakery, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}
	ordered := make([]*models.Bakery, len(bakeryIDs))
	for i, id := range bakeryIDs {
		r, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("bakery %d: %w", id, sqlerr.ErrNotFound)
		}
		ordered[i] = r
	}

	groups, err := s.bakeryRepo.LoadChefs(ctx, ordered)
	if err != nil {
		return nil, fmt.Errorf("failed to load chefs: %w", err)
	}

	bakeries := make([]*primary.Bakery, len(ordered))
	for i, r := range ordered {
		b := toBakery(r)
		b.Chefs = toChefs(groups[i])
		bakeries[i] = b
	}
	return bakeries, nil
}

// Helper methods

func toBakery(r *models.Bakery) *primary.Bakery {
	b := &primary.Bakery{
		ID:           r.ID,
		Name:         r.Name,
		ProfitMargin: r.ProfitMargin,
	}
	if r.Chefs != nil {
		b.Chefs = toChefs(r.Chefs)
	}
	return b
}

func toBakeries(records []*models.Bakery) []*primary.Bakery {
	bakeries := make([]*primary.Bakery, len(records))
	for i, r := range records {
		bakeries[i] = toBakery(r)
	}
	return bakeries
}

// Ensure BakeryServiceImpl implements the interface
var _ primary.BakeryService = (*BakeryServiceImpl)(nil)
