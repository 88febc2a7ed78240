package primary

import (
	"context"
	"time"
)

// WalkthroughService runs the end-to-end example scenario against the store.
type WalkthroughService interface {
	// Run executes every step in order and stops at the first failure.
	Run(ctx context.Context) (*WalkthroughReport, error)
}

// WalkthroughStep is one completed step of the scenario.
type WalkthroughStep struct {
	Name    string
	Detail  string
	Elapsed time.Duration
}

// WalkthroughReport lists the completed steps.
type WalkthroughReport struct {
	Steps []WalkthroughStep
}
