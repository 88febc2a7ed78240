package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/bakery/internal/ports/primary"
)

// ChefAdapter translates CLI operations to ChefService calls.
type ChefAdapter struct {
	service primary.ChefService
	out     io.Writer
}

// NewChefAdapter creates a new ChefAdapter with the given service.
func NewChefAdapter(service primary.ChefService, out io.Writer) *ChefAdapter {
	return &ChefAdapter{
		service: service,
		out:     out,
	}
}

// Create creates one chef, or several with a single insert when more than one
// name is given.
func (a *ChefAdapter) Create(ctx context.Context, bakeryID int64, names []string) ([]*primary.Chef, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("at least one chef name is required")
	}

	if len(names) == 1 {
		resp, err := a.service.CreateChef(ctx, primary.CreateChefRequest{
			Name:     names[0],
			BakeryID: bakeryID,
		})
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(a.out, "%s Chef %d created: %s (bakery %d)\n", checkMark, resp.ChefID, resp.Chef.Name, bakeryID)
		return []*primary.Chef{resp.Chef}, nil
	}

	chefs, err := a.service.CreateChefs(ctx, primary.CreateChefsRequest{
		BakeryID: bakeryID,
		Names:    names,
	})
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "%s Created %d chefs in bakery %d\n", checkMark, len(chefs), bakeryID)
	for _, c := range chefs {
		fmt.Fprintf(a.out, "  %d  %s\n", c.ID, c.Name)
	}
	return chefs, nil
}

// List lists chefs, optionally only those of one bakery.
func (a *ChefAdapter) List(ctx context.Context, bakeryID int64) ([]*primary.Chef, error) {
	chefs, err := a.service.ListChefs(ctx, primary.ChefFilters{BakeryID: bakeryID})
	if err != nil {
		return nil, fmt.Errorf("failed to list chefs: %w", err)
	}

	if len(chefs) == 0 {
		fmt.Fprintln(a.out, "No chefs found.")
		return chefs, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tBAKERY")
	fmt.Fprintln(w, "--\t----\t------")
	for _, c := range chefs {
		fmt.Fprintf(w, "%d\t%s\t%d\n", c.ID, c.Name, c.BakeryID)
	}
	w.Flush()

	return chefs, nil
}

// Update changes the given fields of a chef.
func (a *ChefAdapter) Update(ctx context.Context, req primary.UpdateChefRequest) (*primary.Chef, error) {
	if req.Name == nil && req.BakeryID == nil {
		return nil, fmt.Errorf("nothing to update: pass --name or --bakery")
	}

	chef, err := a.service.UpdateChef(ctx, req)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "%s Chef %d updated: %s (bakery %d)\n", checkMark, chef.ID, chef.Name, chef.BakeryID)
	return chef, nil
}

// Delete deletes a chef.
func (a *ChefAdapter) Delete(ctx context.Context, chefID int64) error {
	if err := a.service.DeleteChef(ctx, chefID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Chef %d deleted\n", checkMark, chefID)
	return nil
}

// DeleteAll deletes every chef.
func (a *ChefAdapter) DeleteAll(ctx context.Context) (int64, error) {
	n, err := a.service.DeleteAllChefs(ctx)
	if err != nil {
		return 0, err
	}
	fmt.Fprintf(a.out, "%s Deleted %d chefs\n", checkMark, n)
	return n, nil
}
