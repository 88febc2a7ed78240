// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"errors"

	"github.com/example/bakery/internal/models"
)

// ErrUnknownColumn is returned when a filter names a column the entity does not have.
var ErrUnknownColumn = errors.New("unknown column")

// ErrMissingPrimaryKey is returned when an update is attempted without an id.
var ErrMissingPrimaryKey = errors.New("primary key not set")

// ErrNoValues is returned when an insert has no set fields.
var ErrNoValues = errors.New("no values set")

// BakeryRepository defines the secondary port for bakery persistence.
type BakeryRepository interface {
	// Insert persists the set fields of a bakery and returns the generated id.
	Insert(ctx context.Context, bakery *models.BakeryActive) (int64, error)

	// Update persists only the set fields of the bakery with the given id and
	// returns the reloaded row.
	Update(ctx context.Context, bakery *models.BakeryActive) (*models.Bakery, error)

	// Delete removes a bakery. Deleting a missing id is not an error.
	Delete(ctx context.Context, id int64) error

	// DeleteAll removes every bakery and returns the number removed.
	DeleteAll(ctx context.Context) (int64, error)

	// FindAll retrieves every bakery in insertion order.
	FindAll(ctx context.Context) ([]*models.Bakery, error)

	// FindByID retrieves a bakery by its id.
	FindByID(ctx context.Context, id int64) (*models.Bakery, error)

	// FindByIDWithChefs retrieves a bakery with its chefs preloaded.
	FindByIDWithChefs(ctx context.Context, id int64) (*models.Bakery, error)

	// FindBy retrieves bakeries whose column equals value.
	FindBy(ctx context.Context, column string, value any) ([]*models.Bakery, error)

	// FindFirstBy retrieves the first bakery whose column equals value.
	FindFirstBy(ctx context.Context, column string, value any) (*models.Bakery, error)

	// FindByIDs retrieves bakeries whose id is any of ids.
	FindByIDs(ctx context.Context, ids []int64) ([]*models.Bakery, error)

	// FindRelatedChefs retrieves the chefs of one bakery.
	FindRelatedChefs(ctx context.Context, bakery *models.Bakery) ([]*models.Chef, error)

	// LoadChefs fetches the chefs of many bakeries in one query. The result
	// has one entry per bakery, in input order.
	LoadChefs(ctx context.Context, bakeries []*models.Bakery) ([][]*models.Chef, error)
}

// ChefRepository defines the secondary port for chef persistence.
type ChefRepository interface {
	// Insert persists the set fields of a chef and returns the generated id.
	Insert(ctx context.Context, chef *models.ChefActive) (int64, error)

	// InsertMany persists several chefs in one statement and returns their ids.
	InsertMany(ctx context.Context, chefs []*models.ChefActive) ([]int64, error)

	// Update persists only the set fields of the chef with the given id.
	Update(ctx context.Context, chef *models.ChefActive) (*models.Chef, error)

	// Delete removes a chef. Deleting a missing id is not an error.
	Delete(ctx context.Context, id int64) error

	// DeleteAll removes every chef and returns the number removed.
	DeleteAll(ctx context.Context) (int64, error)

	// FindAll retrieves every chef in insertion order.
	FindAll(ctx context.Context) ([]*models.Chef, error)

	// FindByID retrieves a chef by its id.
	FindByID(ctx context.Context, id int64) (*models.Chef, error)

	// FindBy retrieves chefs whose column equals value.
	FindBy(ctx context.Context, column string, value any) ([]*models.Chef, error)
}
