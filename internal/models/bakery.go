package models

// Bakery table and column names.
const (
	BakeryTable              = "bakery"
	BakeryColumnID           = "id"
	BakeryColumnName         = "name"
	BakeryColumnProfitMargin = "profit_margin"
)

// BakeryColumns lists the bakery columns that may be used in filters.
var BakeryColumns = []string{BakeryColumnID, BakeryColumnName, BakeryColumnProfitMargin}

// Bakery is a row of the bakery table. A bakery has many chefs.
type Bakery struct {
	ID           int64   `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string  `gorm:"column:name;not null"`
	ProfitMargin float64 `gorm:"column:profit_margin;not null"`
	Chefs        []*Chef `gorm:"foreignKey:BakeryID"`
}

// TableName overrides the pluralized default.
func (Bakery) TableName() string {
	return BakeryTable
}

// BakeryActive is the active form of a bakery: only set fields are written.
type BakeryActive struct {
	ID           Active[int64]
	Name         Active[string]
	ProfitMargin Active[float64]
}

// Columns returns the names of the set columns, primary key included.
func (a *BakeryActive) Columns() []string {
	return columns(a.ID.IsSet(), BakeryColumnID, a.Assignments())
}

// Assignments returns the set non-key columns mapped to their values.
func (a *BakeryActive) Assignments() map[string]any {
	assigns := make(map[string]any)
	if v, ok := a.Name.Get(); ok {
		assigns[BakeryColumnName] = v
	}
	if v, ok := a.ProfitMargin.Get(); ok {
		assigns[BakeryColumnProfitMargin] = v
	}
	return assigns
}

// Model returns the row form; unset fields hold zero values.
func (a *BakeryActive) Model() *Bakery {
	return &Bakery{
		ID:           a.ID.Value(),
		Name:         a.Name.Value(),
		ProfitMargin: a.ProfitMargin.Value(),
	}
}
