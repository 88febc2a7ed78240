package models

import "sort"

// Chef table and column names.
const (
	ChefTable          = "chef"
	ChefColumnID       = "id"
	ChefColumnName     = "name"
	ChefColumnBakeryID = "bakery_id"
)

// ChefColumns lists the chef columns that may be used in filters.
var ChefColumns = []string{ChefColumnID, ChefColumnName, ChefColumnBakeryID}

// Chef is a row of the chef table. Every chef belongs to exactly one bakery.
type Chef struct {
	ID       int64   `gorm:"column:id;primaryKey;autoIncrement"`
	Name     string  `gorm:"column:name;not null"`
	BakeryID int64   `gorm:"column:bakery_id;not null"`
	Bakery   *Bakery `gorm:"foreignKey:BakeryID"`
}

// TableName overrides the pluralized default.
func (Chef) TableName() string {
	return ChefTable
}

// ChefActive is the active form of a chef.
type ChefActive struct {
	ID       Active[int64]
	Name     Active[string]
	BakeryID Active[int64]
}

// Columns returns the names of the set columns, primary key included.
func (a *ChefActive) Columns() []string {
	return columns(a.ID.IsSet(), ChefColumnID, a.Assignments())
}

// Assignments returns the set non-key columns mapped to their values.
func (a *ChefActive) Assignments() map[string]any {
	assigns := make(map[string]any)
	if v, ok := a.Name.Get(); ok {
		assigns[ChefColumnName] = v
	}
	if v, ok := a.BakeryID.Get(); ok {
		assigns[ChefColumnBakeryID] = v
	}
	return assigns
}

// Model returns the row form; unset fields hold zero values.
func (a *ChefActive) Model() *Chef {
	return &Chef{
		ID:       a.ID.Value(),
		Name:     a.Name.Value(),
		BakeryID: a.BakeryID.Value(),
	}
}

// ChefNames returns the names of the given chefs, sorted.
func ChefNames(chefs []*Chef) []string {
	names := make([]string, 0, len(chefs))
	for _, c := range chefs {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names
}

// HasColumn reports whether col is one of the given column names.
func HasColumn(columns []string, col string) bool {
	for _, c := range columns {
		if c == col {
			return true
		}
	}
	return false
}
