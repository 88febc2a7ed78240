package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/example/bakery/internal/models"
	"github.com/example/bakery/internal/ports/secondary"
	"github.com/example/bakery/internal/sqlerr"
)

// memStore backs the mock repositories so chefs can see their bakeries.
type memStore struct {
	bakeries   map[int64]*models.Bakery
	chefs      map[int64]*models.Chef
	nextBakery int64
	nextChef   int64
}

func newMemStore() *memStore {
	return &memStore{
		bakeries: make(map[int64]*models.Bakery),
		chefs:    make(map[int64]*models.Chef),
	}
}

func (s *memStore) sortedBakeries() []*models.Bakery {
	out := make([]*models.Bakery, 0, len(s.bakeries))
	for _, b := range s.bakeries {
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *memStore) sortedChefs(keep func(*models.Chef) bool) []*models.Chef {
	out := []*models.Chef{}
	for _, c := range s.chefs {
		if keep == nil || keep(c) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Ensure mockBakeryRepository implements the interface
var _ secondary.BakeryRepository = (*mockBakeryRepository)(nil)

// mockBakeryRepository implements secondary.BakeryRepository for testing.
type mockBakeryRepository struct {
	store        *memStore
	insertErr    error
	updateErr    error
	findAllErr   error
	loadChefsErr error
	loadCalls    int
}

func newMockBakeryRepository(store *memStore) *mockBakeryRepository {
	return &mockBakeryRepository{store: store}
}

func (m *mockBakeryRepository) Insert(ctx context.Context, b *models.BakeryActive) (int64, error) {
	if m.insertErr != nil {
		return 0, m.insertErr
	}
	row := b.Model()
	if !b.ID.IsSet() {
		m.store.nextBakery++
		row.ID = m.store.nextBakery
	}
	m.store.bakeries[row.ID] = row
	return row.ID, nil
}

func (m *mockBakeryRepository) Update(ctx context.Context, b *models.BakeryActive) (*models.Bakery, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	id, ok := b.ID.Get()
	if !ok {
		return nil, secondary.ErrMissingPrimaryKey
	}
	row, ok := m.store.bakeries[id]
	if !ok {
		return nil, fmt.Errorf("bakery %d: %w", id, sqlerr.ErrNotFound)
	}
	if v, ok := b.Name.Get(); ok {
		row.Name = v
	}
	if v, ok := b.ProfitMargin.Get(); ok {
		row.ProfitMargin = v
	}
	cp := *row
	return &cp, nil
}

func (m *mockBakeryRepository) Delete(ctx context.Context, id int64) error {
	delete(m.store.bakeries, id)
	for cid, c := range m.store.chefs {
		if c.BakeryID == id {
			delete(m.store.chefs, cid)
		}
	}
	return nil
}

func (m *mockBakeryRepository) DeleteAll(ctx context.Context) (int64, error) {
	n := int64(len(m.store.bakeries))
	m.store.bakeries = make(map[int64]*models.Bakery)
	m.store.chefs = make(map[int64]*models.Chef)
	return n, nil
}

func (m *mockBakeryRepository) FindAll(ctx context.Context) ([]*models.Bakery, error) {
	if m.findAllErr != nil {
		return nil, m.findAllErr
	}
	return m.store.sortedBakeries(), nil
}

func (m *mockBakeryRepository) FindByID(ctx context.Context, id int64) (*models.Bakery, error) {
	row, ok := m.store.bakeries[id]
	if !ok {
		return nil, fmt.Errorf("bakery %d: %w", id, sqlerr.ErrNotFound)
	}
	cp := *row
	return &cp, nil
}

func (m *mockBakeryRepository) FindByIDWithChefs(ctx context.Context, id int64) (*models.Bakery, error) {
	b, err := m.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b.Chefs = m.store.sortedChefs(func(c *models.Chef) bool { return c.BakeryID == id })
	return b, nil
}

func (m *mockBakeryRepository) FindBy(ctx context.Context, column string, value any) ([]*models.Bakery, error) {
	if !models.HasColumn(models.BakeryColumns, column) {
		return nil, secondary.ErrUnknownColumn
	}
	out := []*models.Bakery{}
	for _, b := range m.store.sortedBakeries() {
		var v any
		switch column {
		case models.BakeryColumnID:
			v = b.ID
		case models.BakeryColumnName:
			v = b.Name
		case models.BakeryColumnProfitMargin:
			v = b.ProfitMargin
		}
		if v == value {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockBakeryRepository) FindFirstBy(ctx context.Context, column string, value any) (*models.Bakery, error) {
	all, err := m.FindBy(ctx, column, value)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, sqlerr.ErrNotFound
	}
	return all[0], nil
}

func (m *mockBakeryRepository) FindByIDs(ctx context.Context, ids []int64) ([]*models.Bakery, error) {
	want := make(map[int64]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := []*models.Bakery{}
	for _, b := range m.store.sortedBakeries() {
		if want[b.ID] {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockBakeryRepository) FindRelatedChefs(ctx context.Context, b *models.Bakery) ([]*models.Chef, error) {
	return m.store.sortedChefs(func(c *models.Chef) bool { return c.BakeryID == b.ID }), nil
}

func (m *mockBakeryRepository) LoadChefs(ctx context.Context, bakeries []*models.Bakery) ([][]*models.Chef, error) {
	if m.loadChefsErr != nil {
		return nil, m.loadChefsErr
	}
	m.loadCalls++
	out := make([][]*models.Chef, len(bakeries))
	for i, b := range bakeries {
		id := b.ID
		out[i] = m.store.sortedChefs(func(c *models.Chef) bool { return c.BakeryID == id })
	}
	return out, nil
}

// Ensure mockChefRepository implements the interface
var _ secondary.ChefRepository = (*mockChefRepository)(nil)

// mockChefRepository implements secondary.ChefRepository for testing.
type mockChefRepository struct {
	store         *memStore
	insertErr     error
	insertManyErr error
	insertCalls   int
}

func newMockChefRepository(store *memStore) *mockChefRepository {
	return &mockChefRepository{store: store}
}

func (m *mockChefRepository) Insert(ctx context.Context, c *models.ChefActive) (int64, error) {
	if m.insertErr != nil {
		return 0, m.insertErr
	}
	m.insertCalls++
	row := c.Model()
	if _, ok := m.store.bakeries[row.BakeryID]; !ok {
		return 0, &sqlerr.Error{Op: "insert chef", Kind: sqlerr.ForeignKeyViolation, Err: fmt.Errorf("no bakery %d", row.BakeryID)}
	}
	m.store.nextChef++
	row.ID = m.store.nextChef
	m.store.chefs[row.ID] = row
	return row.ID, nil
}

func (m *mockChefRepository) InsertMany(ctx context.Context, chefs []*models.ChefActive) ([]int64, error) {
	if m.insertManyErr != nil {
		return nil, m.insertManyErr
	}
	ids := make([]int64, 0, len(chefs))
	for _, c := range chefs {
		id, err := m.Insert(ctx, c)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *mockChefRepository) Update(ctx context.Context, c *models.ChefActive) (*models.Chef, error) {
	id, ok := c.ID.Get()
	if !ok {
		return nil, secondary.ErrMissingPrimaryKey
	}
	row, ok := m.store.chefs[id]
	if !ok {
		return nil, fmt.Errorf("chef %d: %w", id, sqlerr.ErrNotFound)
	}
	if v, ok := c.Name.Get(); ok {
		row.Name = v
	}
	if v, ok := c.BakeryID.Get(); ok {
		row.BakeryID = v
	}
	cp := *row
	return &cp, nil
}

func (m *mockChefRepository) Delete(ctx context.Context, id int64) error {
	delete(m.store.chefs, id)
	return nil
}

func (m *mockChefRepository) DeleteAll(ctx context.Context) (int64, error) {
	n := int64(len(m.store.chefs))
	m.store.chefs = make(map[int64]*models.Chef)
	return n, nil
}

func (m *mockChefRepository) FindAll(ctx context.Context) ([]*models.Chef, error) {
	return m.store.sortedChefs(nil), nil
}

func (m *mockChefRepository) FindByID(ctx context.Context, id int64) (*models.Chef, error) {
	row, ok := m.store.chefs[id]
	if !ok {
		return nil, fmt.Errorf("chef %d: %w", id, sqlerr.ErrNotFound)
	}
	cp := *row
	return &cp, nil
}

func (m *mockChefRepository) FindBy(ctx context.Context, column string, value any) ([]*models.Chef, error) {
	if !models.HasColumn(models.ChefColumns, column) {
		return nil, secondary.ErrUnknownColumn
	}
	return m.store.sortedChefs(func(c *models.Chef) bool {
		switch column {
		case models.ChefColumnID:
			return c.ID == value
		case models.ChefColumnName:
			return c.Name == value
		default:
			return c.BakeryID == value
		}
	}), nil
}
