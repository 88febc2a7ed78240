package primary

import "context"

// BakeryService defines the primary port for bakery operations.
type BakeryService interface {
	// CreateBakery creates a new bakery.
	CreateBakery(ctx context.Context, req CreateBakeryRequest) (*CreateBakeryResponse, error)

	// UpdateBakery changes the given fields of a bakery.
	UpdateBakery(ctx context.Context, req UpdateBakeryRequest) (*Bakery, error)

	// GetBakery retrieves a bakery and its chefs.
	GetBakery(ctx context.Context, bakeryID int64) (*Bakery, error)

	// ListBakeries retrieves all bakeries.
	ListBakeries(ctx context.Context) ([]*Bakery, error)

	// FindBakeriesByName retrieves bakeries with exactly this name.
	FindBakeriesByName(ctx context.Context, name string) ([]*Bakery, error)

	// DeleteBakery deletes a bakery (and, through the foreign key, its chefs).
	DeleteBakery(ctx context.Context, bakeryID int64) error

	// DeleteAllBakeries deletes every bakery.
	DeleteAllBakeries(ctx context.Context) (int64, error)

	// ListBakeryChefs retrieves the chefs of one bakery.
	ListBakeryChefs(ctx context.Context, bakeryID int64) ([]*Chef, error)

	// LoadBakeryChefs retrieves several bakeries with their chefs, loading
	// all chefs in a single pass. Results follow the order of bakeryIDs.
	LoadBakeryChefs(ctx context.Context, bakeryIDs []int64) ([]*Bakery, error)
}

// CreateBakeryRequest contains parameters for creating a bakery.
type CreateBakeryRequest struct {
	Name         string
	ProfitMargin float64
}

// CreateBakeryResponse contains the result of creating a bakery.
type CreateBakeryResponse struct {
	BakeryID int64
	Bakery   *Bakery
}

// UpdateBakeryRequest contains the fields to change. Nil fields are left as they are.
type UpdateBakeryRequest struct {
	BakeryID     int64
	Name         *string
	ProfitMargin *float64
}

// Bakery represents a bakery entity at the port boundary.
type Bakery struct {
	ID           int64
	Name         string
	ProfitMargin float64
	Chefs        []*Chef
}
