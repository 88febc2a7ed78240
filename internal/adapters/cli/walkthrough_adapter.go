package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/bakery/internal/ports/primary"
)

// WalkthroughAdapter runs the walkthrough and prints one line per step.
type WalkthroughAdapter struct {
	service primary.WalkthroughService
	out     io.Writer
}

// NewWalkthroughAdapter creates a new WalkthroughAdapter with the given service.
func NewWalkthroughAdapter(service primary.WalkthroughService, out io.Writer) *WalkthroughAdapter {
	return &WalkthroughAdapter{
		service: service,
		out:     out,
	}
}

// Run executes the walkthrough. Completed steps are printed even when a
// later step fails.
func (a *WalkthroughAdapter) Run(ctx context.Context) (*primary.WalkthroughReport, error) {
	report, err := a.service.Run(ctx)
	if report != nil {
		for i, step := range report.Steps {
			fmt.Fprintf(a.out, "%s %2d. %-22s %s\n", checkMark, i+1, step.Name, step.Detail)
		}
	}
	if err != nil {
		fmt.Fprintf(a.out, "%s %v\n", color.New(color.FgRed).Sprint("✗"), err)
		return report, err
	}

	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "Walkthrough complete: %d steps passed\n", len(report.Steps))
	return report, nil
}
