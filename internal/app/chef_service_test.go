package app

import (
	"context"
	"testing"

	"github.com/example/bakery/internal/models"
	"github.com/example/bakery/internal/ports/primary"
	"github.com/example/bakery/internal/sqlerr"
)

func newTestChefService(t *testing.T) (*ChefServiceImpl, *mockChefRepository, int64) {
	t.Helper()
	store := newMemStore()
	bakeryRepo := newMockBakeryRepository(store)
	chefRepo := newMockChefRepository(store)
	resp, err := NewBakeryService(bakeryRepo).CreateBakery(context.Background(), primary.CreateBakeryRequest{Name: "Happy Bakery"})
	if err != nil {
		t.Fatalf("failed to seed bakery: %v", err)
	}
	return NewChefService(chefRepo), chefRepo, resp.BakeryID
}

func TestCreateChef(t *testing.T) {
	service, _, bakeryID := newTestChefService(t)
	ctx := context.Background()

	resp, err := service.CreateChef(ctx, primary.CreateChefRequest{Name: "John", BakeryID: bakeryID})
	if err != nil {
		t.Fatalf("CreateChef failed: %v", err)
	}
	if resp.Chef.Name != "John" || resp.Chef.BakeryID != bakeryID {
		t.Errorf("got %+v", resp.Chef)
	}
}

func TestCreateChef_Errors(t *testing.T) {
	service, chefRepo, bakeryID := newTestChefService(t)
	ctx := context.Background()

	if _, err := service.CreateChef(ctx, primary.CreateChefRequest{Name: "", BakeryID: bakeryID}); err == nil {
		t.Error("expected the guard to reject a blank name")
	}
	if chefRepo.insertCalls != 0 {
		t.Errorf("guard failure should not reach the repository")
	}

	_, err := service.CreateChef(ctx, primary.CreateChefRequest{Name: "Orphan", BakeryID: 404})
	if kind := sqlerr.KindOf(err); kind != sqlerr.ForeignKeyViolation {
		t.Errorf("KindOf = %v, want foreign key violation", kind)
	}
}

func TestCreateChefs(t *testing.T) {
	service, _, bakeryID := newTestChefService(t)
	ctx := context.Background()

	chefs, err := service.CreateChefs(ctx, primary.CreateChefsRequest{
		BakeryID: bakeryID,
		Names:    []string{"Charles", "Frederic", "Jolie"},
	})
	if err != nil {
		t.Fatalf("CreateChefs failed: %v", err)
	}
	if len(chefs) != 3 {
		t.Fatalf("expected 3 chefs, got %d", len(chefs))
	}
	if chefs[2].Name != "Jolie" || chefs[2].ID == 0 {
		t.Errorf("unexpected third chef: %+v", chefs[2])
	}

	if _, err := service.CreateChefs(ctx, primary.CreateChefsRequest{BakeryID: bakeryID, Names: []string{"ok", ""}}); err == nil {
		t.Error("expected the guard to reject a blank name in the batch")
	}
}

func TestUpdateChef(t *testing.T) {
	service, _, bakeryID := newTestChefService(t)
	ctx := context.Background()
	resp, _ := service.CreateChef(ctx, primary.CreateChefRequest{Name: "Kate", BakeryID: bakeryID})

	updated, err := service.UpdateChef(ctx, primary.UpdateChefRequest{ChefID: resp.ChefID, Name: ptr("Katherine")})
	if err != nil {
		t.Fatalf("UpdateChef failed: %v", err)
	}
	if updated.Name != "Katherine" || updated.BakeryID != bakeryID {
		t.Errorf("got %+v", updated)
	}

	if _, err := service.UpdateChef(ctx, primary.UpdateChefRequest{ChefID: resp.ChefID, BakeryID: ptr[int64](0)}); err == nil {
		t.Error("expected the guard to reject bakery ID 0")
	}
	if _, err := service.UpdateChef(ctx, primary.UpdateChefRequest{ChefID: 999, Name: ptr("x")}); !sqlerr.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestListChefs(t *testing.T) {
	service, chefRepo, bakeryID := newTestChefService(t)
	ctx := context.Background()
	service.CreateChefs(ctx, primary.CreateChefsRequest{BakeryID: bakeryID, Names: []string{"a", "b"}})

	other, _ := newMockBakeryRepository(chefRepo.store).Insert(ctx, &models.BakeryActive{Name: models.Set("Other")})
	service.CreateChef(ctx, primary.CreateChefRequest{Name: "c", BakeryID: other})

	tests := []struct {
		name    string
		filters primary.ChefFilters
		want    int
	}{
		{"all chefs", primary.ChefFilters{}, 3},
		{"one bakery", primary.ChefFilters{BakeryID: bakeryID}, 2},
		{"other bakery", primary.ChefFilters{BakeryID: other}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chefs, err := service.ListChefs(ctx, tt.filters)
			if err != nil {
				t.Fatalf("ListChefs failed: %v", err)
			}
			if len(chefs) != tt.want {
				t.Errorf("got %d chefs, want %d", len(chefs), tt.want)
			}
		})
	}
}

func TestDeleteChef(t *testing.T) {
	service, _, bakeryID := newTestChefService(t)
	ctx := context.Background()
	resp, _ := service.CreateChef(ctx, primary.CreateChefRequest{Name: "John", BakeryID: bakeryID})

	if err := service.DeleteChef(ctx, resp.ChefID); err != nil {
		t.Fatalf("DeleteChef failed: %v", err)
	}
	if _, err := service.GetChef(ctx, resp.ChefID); !sqlerr.IsNotFound(err) {
		t.Errorf("expected not found after delete, got %v", err)
	}
	if err := service.DeleteChef(ctx, resp.ChefID); err != nil {
		t.Errorf("deleting twice should be a no-op, got %v", err)
	}
}
