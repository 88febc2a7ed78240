package primary

import "context"

// ChefService defines the primary port for chef operations.
type ChefService interface {
	// CreateChef creates a chef in a bakery.
	CreateChef(ctx context.Context, req CreateChefRequest) (*CreateChefResponse, error)

	// CreateChefs creates several chefs in one bakery with a single insert.
	CreateChefs(ctx context.Context, req CreateChefsRequest) ([]*Chef, error)

	// UpdateChef changes the given fields of a chef.
	UpdateChef(ctx context.Context, req UpdateChefRequest) (*Chef, error)

	// GetChef retrieves a chef by id.
	GetChef(ctx context.Context, chefID int64) (*Chef, error)

	// ListChefs retrieves chefs matching the filters.
	ListChefs(ctx context.Context, filters ChefFilters) ([]*Chef, error)

	// DeleteChef deletes a chef.
	DeleteChef(ctx context.Context, chefID int64) error

	// DeleteAllChefs deletes every chef.
	DeleteAllChefs(ctx context.Context) (int64, error)
}

// CreateChefRequest contains parameters for creating a chef.
type CreateChefRequest struct {
	Name     string
	BakeryID int64
}

// CreateChefResponse contains the result of creating a chef.
type CreateChefResponse struct {
	ChefID int64
	Chef   *Chef
}

// CreateChefsRequest contains parameters for creating several chefs at once.
type CreateChefsRequest struct {
	BakeryID int64
	Names    []string
}

// UpdateChefRequest contains the fields to change. Nil fields are left as they are.
type UpdateChefRequest struct {
	ChefID   int64
	Name     *string
	BakeryID *int64
}

// ChefFilters contains filter options for listing chefs.
type ChefFilters struct {
	BakeryID int64 // 0 means all bakeries
}

// Chef represents a chef entity at the port boundary.
type Chef struct {
	ID       int64
	Name     string
	BakeryID int64
}
