package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/example/bakery/internal/models"
)

// Fixture is a bakery and the names of its chefs.
type Fixture struct {
	Name         string
	ProfitMargin float64
	Chefs        []string
}

// Fixtures are the development bakeries loaded by SeedFixtures.
var Fixtures = []Fixture{
	{Name: "La Boulangerie", ProfitMargin: 0.0, Chefs: []string{"Charles", "Frederic", "Jolie", "Madeleine"}},
	{Name: "Arte by Padaria", ProfitMargin: 0.2, Chefs: []string{"Brian", "Charles", "Kate", "Samantha"}},
	{Name: "Happy Bakery", ProfitMargin: 0.1, Chefs: []string{"John"}},
}

// SeedFixtures inserts the fixtures, each bakery together with its chefs, in
// a single transaction. It returns the created bakeries.
func SeedFixtures(ctx context.Context, database *gorm.DB) ([]*models.Bakery, error) {
	bakeries := make([]*models.Bakery, 0, len(Fixtures))
	for _, f := range Fixtures {
		b := &models.Bakery{Name: f.Name, ProfitMargin: f.ProfitMargin}
		for _, name := range f.Chefs {
			b.Chefs = append(b.Chefs, &models.Chef{Name: name})
		}
		bakeries = append(bakeries, b)
	}

	err := database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, b := range bakeries {
			if err := tx.Create(b).Error; err != nil {
				return fmt.Errorf("seed bakery %q: %w", b.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bakeries, nil
}
