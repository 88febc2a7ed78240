package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/bakery/internal/ports/primary"
)

var checkMark = color.New(color.FgGreen).Sprint("✓")

// BakeryAdapter is a thin adapter that translates CLI operations to BakeryService calls.
// It depends only on the BakeryService interface, enabling easy testing with mocks.
type BakeryAdapter struct {
	service primary.BakeryService
	out     io.Writer
}

// NewBakeryAdapter creates a new BakeryAdapter with the given service.
func NewBakeryAdapter(service primary.BakeryService, out io.Writer) *BakeryAdapter {
	return &BakeryAdapter{
		service: service,
		out:     out,
	}
}

// Create creates a bakery and prints its id.
func (a *BakeryAdapter) Create(ctx context.Context, name string, margin float64) (*primary.Bakery, error) {
	resp, err := a.service.CreateBakery(ctx, primary.CreateBakeryRequest{
		Name:         name,
		ProfitMargin: margin,
	})
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "%s Bakery %d created: %s\n", checkMark, resp.BakeryID, resp.Bakery.Name)
	return resp.Bakery, nil
}

// List lists bakeries. When name is non-empty only bakeries with exactly that
// name are shown.
func (a *BakeryAdapter) List(ctx context.Context, name string) ([]*primary.Bakery, error) {
	var (
		bakeries []*primary.Bakery
		err      error
	)
	if name != "" {
		bakeries, err = a.service.FindBakeriesByName(ctx, name)
	} else {
		bakeries, err = a.service.ListBakeries(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list bakeries: %w", err)
	}

	if len(bakeries) == 0 {
		fmt.Fprintln(a.out, "No bakeries found.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Create your first bakery:")
		fmt.Fprintln(a.out, "  bakeryctl bakery create \"Happy Bakery\" --margin 0.1")
		return bakeries, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPROFIT MARGIN")
	fmt.Fprintln(w, "--\t----\t-------------")
	for _, b := range bakeries {
		fmt.Fprintf(w, "%d\t%s\t%.2f\n", b.ID, b.Name, b.ProfitMargin)
	}
	w.Flush()

	return bakeries, nil
}

// Show displays a bakery and its chefs.
func (a *BakeryAdapter) Show(ctx context.Context, bakeryID int64) (*primary.Bakery, error) {
	bakery, err := a.service.GetBakery(ctx, bakeryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bakery: %w", err)
	}

	fmt.Fprintf(a.out, "\nBakery: %d\n", bakery.ID)
	fmt.Fprintf(a.out, "Name:          %s\n", bakery.Name)
	fmt.Fprintf(a.out, "Profit margin: %.2f\n", bakery.ProfitMargin)
	if len(bakery.Chefs) == 0 {
		fmt.Fprintln(a.out, "Chefs:         (none)")
	} else {
		fmt.Fprintf(a.out, "Chefs:         %s\n", chefList(bakery.Chefs))
	}
	fmt.Fprintln(a.out)

	return bakery, nil
}

// Update changes the given fields of a bakery.
func (a *BakeryAdapter) Update(ctx context.Context, req primary.UpdateBakeryRequest) (*primary.Bakery, error) {
	if req.Name == nil && req.ProfitMargin == nil {
		return nil, fmt.Errorf("nothing to update: pass --name or --margin")
	}

	bakery, err := a.service.UpdateBakery(ctx, req)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "%s Bakery %d updated\n", checkMark, bakery.ID)
	if req.Name != nil {
		fmt.Fprintf(a.out, "  Name:          %s\n", bakery.Name)
	}
	if req.ProfitMargin != nil {
		fmt.Fprintf(a.out, "  Profit margin: %.2f\n", bakery.ProfitMargin)
	}
	return bakery, nil
}

// Delete deletes a bakery and its chefs.
func (a *BakeryAdapter) Delete(ctx context.Context, bakeryID int64) error {
	if err := a.service.DeleteBakery(ctx, bakeryID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Bakery %d deleted\n", checkMark, bakeryID)
	return nil
}

// DeleteAll deletes every bakery.
func (a *BakeryAdapter) DeleteAll(ctx context.Context) (int64, error) {
	n, err := a.service.DeleteAllBakeries(ctx)
	if err != nil {
		return 0, err
	}
	fmt.Fprintf(a.out, "%s Deleted %d bakeries\n", checkMark, n)
	return n, nil
}

// Chefs prints the chefs of each bakery, in the order the ids were given.
// All chefs are loaded together.
func (a *BakeryAdapter) Chefs(ctx context.Context, bakeryIDs []int64) ([]*primary.Bakery, error) {
	bakeries, err := a.service.LoadBakeryChefs(ctx, bakeryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load chefs: %w", err)
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "BAKERY\tNAME\tCHEFS")
	fmt.Fprintln(w, "------\t----\t-----")
	for _, b := range bakeries {
		chefs := "(none)"
		if len(b.Chefs) > 0 {
			chefs = chefList(b.Chefs)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", b.ID, b.Name, chefs)
	}
	w.Flush()

	return bakeries, nil
}

func chefList(chefs []*primary.Chef) string {
	names := make([]string, len(chefs))
	for i, c := range chefs {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}
