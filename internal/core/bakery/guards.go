// Package bakery contains the pure business logic for bakery operations.
// This is part of the Functional Core - no I/O, only pure functions.
package bakery

import (
	"fmt"
	"math"
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

// CreateContext provides context for bakery creation guards.
type CreateContext struct {
	Name         string
	ProfitMargin float64
}

// UpdateContext provides context for bakery update guards.
// Nil fields are not being changed.
type UpdateContext struct {
	BakeryID     int64
	Name         *string
	ProfitMargin *float64
}

// CanCreate evaluates whether a bakery can be created.
// Rules: the name must not be blank and the profit margin must be a finite number.
func CanCreate(ctx CreateContext) GuardResult {
	if r := checkName(ctx.Name); !r.Allowed {
		return r
	}
	return checkMargin(ctx.ProfitMargin)
}

// CanUpdate evaluates whether a bakery update is valid.
// Rules: the bakery ID must be positive, and any field being changed follows the create rules.
func CanUpdate(ctx UpdateContext) GuardResult {
	if ctx.BakeryID <= 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("Invalid bakery ID %d", ctx.BakeryID),
		}
	}
	if ctx.Name != nil {
		if r := checkName(*ctx.Name); !r.Allowed {
			return r
		}
	}
	if ctx.ProfitMargin != nil {
		if r := checkMargin(*ctx.ProfitMargin); !r.Allowed {
			return r
		}
	}
	return GuardResult{Allowed: true}
}

func checkName(name string) GuardResult {
	if strings.TrimSpace(name) == "" {
		return GuardResult{Allowed: false, Reason: "Bakery name cannot be empty"}
	}
	return GuardResult{Allowed: true}
}

func checkMargin(margin float64) GuardResult {
	if math.IsNaN(margin) || math.IsInf(margin, 0) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("Profit margin must be a finite number, got %v", margin),
		}
	}
	return GuardResult{Allowed: true}
}
