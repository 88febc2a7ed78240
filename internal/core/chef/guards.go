// Package chef contains the pure business logic for chef operations.
// This is part of the Functional Core - no I/O, only pure functions.
package chef

import (
	"fmt"
	"strings"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// CreateContext provides context for chef creation guards.
// Whether the bakery exists is left to the foreign key.
type CreateContext struct {
	Name     string
	BakeryID int64
}

// UpdateContext provides context for chef update guards.
// Nil fields are not being changed.
type UpdateContext struct {
	ChefID   int64
	Name     *string
	BakeryID *int64
}

// CanCreate evaluates whether a chef can be created.
// Rules: the name must not be blank and the chef must belong to a bakery.
func CanCreate(ctx CreateContext) GuardResult {
	if r := checkName(ctx.Name); !r.Allowed {
		return r
	}
	return checkBakery(ctx.BakeryID)
}

// CanUpdate evaluates whether a chef update is valid.
func CanUpdate(ctx UpdateContext) GuardResult {
	if ctx.ChefID <= 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("Invalid chef ID %d", ctx.ChefID),
		}
	}
	if ctx.Name != nil {
		if r := checkName(*ctx.Name); !r.Allowed {
			return r
		}
	}
	if ctx.BakeryID != nil {
		if r := checkBakery(*ctx.BakeryID); !r.Allowed {
			return r
		}
	}
	return GuardResult{Allowed: true}
}

func checkName(name string) GuardResult {
	if strings.TrimSpace(name) == "" {
		return GuardResult{Allowed: false, Reason: "Chef name cannot be empty"}
	}
	return GuardResult{Allowed: true}
}

func checkBakery(bakeryID int64) GuardResult {
	if bakeryID <= 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("Chef must belong to a bakery, got bakery ID %d", bakeryID),
		}
	}
	return GuardResult{Allowed: true}
}
