package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/bakery/internal/models"
	"github.com/example/bakery/internal/ports/primary"
	"github.com/example/bakery/internal/ports/secondary"
)

// ErrDatabaseNotEmpty is returned when the walkthrough finds existing bakeries.
var ErrDatabaseNotEmpty = errors.New("walkthrough needs an empty bakery table (try: bakeryctl migrate fresh)")

var (
	boulangerieChefs = []string{"Charles", "Frederic", "Jolie", "Madeleine"}
	padariaChefs     = []string{"Brian", "Charles", "Kate", "Samantha"}
)

// WalkthroughServiceImpl implements the WalkthroughService interface.
type WalkthroughServiceImpl struct {
	bakeryRepo secondary.BakeryRepository
	chefRepo   secondary.ChefRepository
	log        zerolog.Logger
}

// NewWalkthroughService creates a new WalkthroughService with injected dependencies.
func NewWalkthroughService(bakeryRepo secondary.BakeryRepository, chefRepo secondary.ChefRepository, log zerolog.Logger) *WalkthroughServiceImpl {
	return &WalkthroughServiceImpl{
		bakeryRepo: bakeryRepo,
		chefRepo:   chefRepo,
		log:        log.With().Str("component", "walkthrough").Logger(),
	}
}

// walkthrough holds the ids carried between steps.
type walkthrough struct {
	*WalkthroughServiceImpl
	happyID   int64
	johnID    int64
	boulID    int64
	padariaID int64
}

type walkthroughStep struct {
	name string
	run  func(ctx context.Context) (string, error)
}

// Run executes every step in order and stops at the first failure. The
// report holds the steps that completed.
func (s *WalkthroughServiceImpl) Run(ctx context.Context) (*primary.WalkthroughReport, error) {
	w := &walkthrough{WalkthroughServiceImpl: s}
	steps := []walkthroughStep{
		{"check empty", w.checkEmpty},
		{"insert bakery", w.insertBakery},
		{"update bakery", w.renameBakery},
		{"insert chef", w.insertChef},
		{"find all", w.findAll},
		{"find by id", w.findByID},
		{"find by filter", w.findByFilter},
		{"delete", w.deleteOne},
		{"insert many", w.insertMany},
		{"insert second bakery", w.insertSecondBakery},
		{"batch load", w.batchLoad},
		{"delete all", w.deleteAll},
	}

	report := &primary.WalkthroughReport{}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		start := time.Now()
		detail, err := step.run(ctx)
		if err != nil {
			s.log.Error().Err(err).Str("step", step.name).Msg("step failed")
			return report, fmt.Errorf("step %q: %w", step.name, err)
		}

		elapsed := time.Since(start)
		report.Steps = append(report.Steps, primary.WalkthroughStep{
			Name:    step.name,
			Detail:  detail,
			Elapsed: elapsed,
		})
		s.log.Info().Str("step", step.name).Dur("elapsed", elapsed).Msg(detail)
	}
	return report, nil
}

func (w *walkthrough) checkEmpty(ctx context.Context) (string, error) {
	all, err := w.bakeryRepo.FindAll(ctx)
	if err != nil {
		return "", err
	}
	if len(all) > 0 {
		return "", fmt.Errorf("%w: found %d", ErrDatabaseNotEmpty, len(all))
	}
	return "no bakeries yet", nil
}

func (w *walkthrough) insertBakery(ctx context.Context) (string, error) {
	id, err := w.bakeryRepo.Insert(ctx, &models.BakeryActive{
		Name:         models.Set("Happy Bakery"),
		ProfitMargin: models.Set(0.0),
	})
	if err != nil {
		return "", err
	}
	w.happyID = id
	return fmt.Sprintf("inserted Happy Bakery as #%d", id), nil
}

func (w *walkthrough) renameBakery(ctx context.Context) (string, error) {
	updated, err := w.bakeryRepo.Update(ctx, &models.BakeryActive{
		ID:           models.Set(w.happyID),
		Name:         models.Set("Sad Bakery"),
		ProfitMargin: models.NotSet[float64](),
	})
	if err != nil {
		return "", err
	}
	if updated.Name != "Sad Bakery" {
		return "", fmt.Errorf("name after update = %q, want %q", updated.Name, "Sad Bakery")
	}
	if updated.ProfitMargin != 0 {
		return "", fmt.Errorf("profit margin changed to %v by a name-only update", updated.ProfitMargin)
	}
	return fmt.Sprintf("renamed #%d to Sad Bakery", w.happyID), nil
}

func (w *walkthrough) insertChef(ctx context.Context) (string, error) {
	id, err := w.chefRepo.Insert(ctx, &models.ChefActive{
		Name:     models.Set("John"),
		BakeryID: models.Set(w.happyID),
	})
	if err != nil {
		return "", err
	}
	w.johnID = id
	return fmt.Sprintf("inserted chef John as #%d", id), nil
}

func (w *walkthrough) findAll(ctx context.Context) (string, error) {
	all, err := w.bakeryRepo.FindAll(ctx)
	if err != nil {
		return "", err
	}
	if len(all) == 0 {
		return "", errors.New("no bakeries found")
	}
	if last := all[len(all)-1]; last.Name != "Sad Bakery" {
		return "", fmt.Errorf("last bakery is %q, want %q", last.Name, "Sad Bakery")
	}
	return fmt.Sprintf("found %d bakery", len(all)), nil
}

func (w *walkthrough) findByID(ctx context.Context) (string, error) {
	b, err := w.bakeryRepo.FindByID(ctx, w.happyID)
	if err != nil {
		return "", err
	}
	if b.Name != "Sad Bakery" {
		return "", fmt.Errorf("bakery #%d is %q, want %q", w.happyID, b.Name, "Sad Bakery")
	}
	return fmt.Sprintf("bakery #%d is %s", b.ID, b.Name), nil
}

func (w *walkthrough) findByFilter(ctx context.Context) (string, error) {
	b, err := w.bakeryRepo.FindFirstBy(ctx, models.BakeryColumnName, "Sad Bakery")
	if err != nil {
		return "", err
	}
	if b.ID != w.happyID {
		return "", fmt.Errorf("filter matched #%d, want #%d", b.ID, w.happyID)
	}
	return fmt.Sprintf("name = Sad Bakery matched #%d", b.ID), nil
}

func (w *walkthrough) deleteOne(ctx context.Context) (string, error) {
	if err := w.chefRepo.Delete(ctx, w.johnID); err != nil {
		return "", err
	}
	if err := w.bakeryRepo.Delete(ctx, w.happyID); err != nil {
		return "", err
	}

	all, err := w.bakeryRepo.FindAll(ctx)
	if err != nil {
		return "", err
	}
	if len(all) != 0 {
		return "", fmt.Errorf("%d bakeries left after delete", len(all))
	}
	return "deleted John and Sad Bakery", nil
}

func (w *walkthrough) insertMany(ctx context.Context) (string, error) {
	id, err := w.insertWithChefs(ctx, "La Boulangerie", 0.0, boulangerieChefs)
	if err != nil {
		return "", err
	}
	w.boulID = id

	chefs, err := w.bakeryRepo.FindRelatedChefs(ctx, &models.Bakery{ID: id})
	if err != nil {
		return "", err
	}
	if got := models.ChefNames(chefs); !slices.Equal(got, sorted(boulangerieChefs)) {
		return "", fmt.Errorf("chefs of La Boulangerie = %v, want %v", got, sorted(boulangerieChefs))
	}
	return fmt.Sprintf("La Boulangerie #%d has %d chefs", id, len(chefs)), nil
}

func (w *walkthrough) insertSecondBakery(ctx context.Context) (string, error) {
	id, err := w.insertWithChefs(ctx, "Arte by Padaria", 0.2, padariaChefs)
	if err != nil {
		return "", err
	}
	w.padariaID = id
	return fmt.Sprintf("Arte by Padaria #%d has %d chefs", id, len(padariaChefs)), nil
}

func (w *walkthrough) batchLoad(ctx context.Context) (string, error) {
	bakeries, err := w.bakeryRepo.FindByIDs(ctx, []int64{w.boulID, w.padariaID})
	if err != nil {
		return "", err
	}
	if len(bakeries) != 2 {
		return "", fmt.Errorf("found %d bakeries, want 2", len(bakeries))
	}

	groups, err := w.bakeryRepo.LoadChefs(ctx, bakeries)
	if err != nil {
		return "", err
	}

	want := map[int64][]string{
		w.boulID:    sorted(boulangerieChefs),
		w.padariaID: sorted(padariaChefs),
	}
	for i, b := range bakeries {
		if got := models.ChefNames(groups[i]); !slices.Equal(got, want[b.ID]) {
			return "", fmt.Errorf("chefs of %s = %v, want %v", b.Name, got, want[b.ID])
		}
	}
	return fmt.Sprintf("loaded chefs of %d bakeries in one query", len(bakeries)), nil
}

func (w *walkthrough) deleteAll(ctx context.Context) (string, error) {
	chefs, err := w.chefRepo.DeleteAll(ctx)
	if err != nil {
		return "", err
	}
	bakeries, err := w.bakeryRepo.DeleteAll(ctx)
	if err != nil {
		return "", err
	}

	all, err := w.bakeryRepo.FindAll(ctx)
	if err != nil {
		return "", err
	}
	if len(all) != 0 {
		return "", fmt.Errorf("%d bakeries left after delete all", len(all))
	}
	return fmt.Sprintf("deleted %d chefs and %d bakeries", chefs, bakeries), nil
}

func (w *walkthrough) insertWithChefs(ctx context.Context, name string, margin float64, chefNames []string) (int64, error) {
	id, err := w.bakeryRepo.Insert(ctx, &models.BakeryActive{
		Name:         models.Set(name),
		ProfitMargin: models.Set(margin),
	})
	if err != nil {
		return 0, err
	}

	batch := make([]*models.ChefActive, len(chefNames))
	for i, n := range chefNames {
		batch[i] = &models.ChefActive{Name: models.Set(n), BakeryID: models.Set(id)}
	}
	if _, err := w.chefRepo.InsertMany(ctx, batch); err != nil {
		return 0, err
	}
	return id, nil
}

func sorted(names []string) []string {
	out := slices.Clone(names)
	slices.Sort(out)
	return out
}

// Ensure WalkthroughServiceImpl implements the interface
var _ primary.WalkthroughService = (*WalkthroughServiceImpl)(nil)
