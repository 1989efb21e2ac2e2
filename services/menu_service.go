package services

import (
	"context"
	"fmt"
	"time"

	"github.com/yeremiapane/intranet-portal/models"
	"github.com/yeremiapane/intranet-portal/utils"
)

// MenuRepository is the store behind the menu engine. FindBySlot returns
// nil, nil when no row matches.
type MenuRepository interface {
	WithinTx(ctx context.Context, fn func(tx MenuRepository) error) error
	FindBySlot(ctx context.Context, day, mealSlot string) (*models.MenuEntry, error)
	Create(ctx context.Context, entry *models.MenuEntry) error
	UpdateDishes(ctx context.Context, entry models.MenuEntry) error
	DeleteBetween(ctx context.Context, startDay, endDay string) (int64, error)
	FindByDays(ctx context.Context, days []string) ([]models.MenuEntry, error)
}

// MenuNotifier is told about the current week after every applied write.
type MenuNotifier interface {
	NotifyMenu(entries []models.MenuEntry)
}

// MenuInput is one raw write request, straight from the form.
type MenuInput struct {
	Day        string
	MealSlot   string
	MainDish   string
	SideOption string
	Garnish    string
	Salad      string
	Juice      string
	Dessert    string
}

// MenuInputFromValues builds a MenuInput from decoded JSON, keyed by the
// form field names. Values that are not strings become "".
func MenuInputFromValues(values map[string]interface{}) MenuInput {
	str := func(key string) string {
		s, _ := values[key].(string)
		return s
	}
	return MenuInput{
		Day:        str("dia"),
		MealSlot:   str("refeicao"),
		MainDish:   str("prato_principal"),
		SideOption: str("opcao"),
		Garnish:    str("guarnicao"),
		Salad:      str("salada"),
		Juice:      str("suco"),
		Dessert:    str("sobremesa"),
	}
}

type UpsertOutcome int

const (
	OutcomeRejectedInvalidDay UpsertOutcome = iota
	OutcomeInserted
	OutcomeUpdated
)

func (o UpsertOutcome) String() string {
	switch o {
	case OutcomeInserted:
		return "inserted"
	case OutcomeUpdated:
		return "updated"
	default:
		return "rejected_invalid_day"
	}
}

type UpsertResult struct {
	Outcome UpsertOutcome
	Entry   models.MenuEntry
	// rows removed by the retention pass
	Pruned int64
}

func (r UpsertResult) Applied() bool {
	return r.Outcome != OutcomeRejectedInvalidDay
}

// DayMenu groups the meals published for one calendar day.
type DayMenu struct {
	Date  time.Time
	Key   string
	Label string
	Meals []models.MenuEntry
}

type MenuService struct {
	Repo     MenuRepository
	Notifier MenuNotifier
	Now      func() time.Time
}

func NewMenuService(repo MenuRepository, notifier MenuNotifier) *MenuService {
	return &MenuService{
		Repo:     repo,
		Notifier: notifier,
		Now:      time.Now,
	}
}

// Upsert writes one meal. An invalid day aborts without touching the store
// and is reported as OutcomeRejectedInvalidDay, not as an error. Otherwise
// the (day, meal slot) row is inserted or updated and the week two
// rotations back is deleted, all in one transaction.
func (s *MenuService) Upsert(ctx context.Context, in MenuInput) (UpsertResult, error) {
	day := utils.TrimBlank(in.Day)
	if !utils.IsValidDate(day) {
		utils.InfoLogger.Warnf("Ignoring menu write with invalid day %q", day)
		return UpsertResult{Outcome: OutcomeRejectedInvalidDay, Entry: models.MenuEntry{Day: day}}, nil
	}

	entry := models.MenuEntry{
		Day:        day,
		MealSlot:   utils.Normalize(in.MealSlot),
		MainDish:   utils.Normalize(in.MainDish),
		SideOption: utils.Normalize(in.SideOption),
		Garnish:    utils.Normalize(in.Garnish),
		Salad:      utils.Normalize(in.Salad),
		Juice:      utils.Normalize(in.Juice),
		Dessert:    utils.Normalize(in.Dessert),
	}
	pruneFrom, pruneTo := PruneWindow(s.Now())

	var result UpsertResult
	err := s.Repo.WithinTx(ctx, func(tx MenuRepository) error {
		existing, err := tx.FindBySlot(ctx, entry.Day, entry.MealSlot)
		if err != nil {
			return fmt.Errorf("find menu entry: %w", err)
		}

		if existing != nil {
			entry.ID = existing.ID
			if err := tx.UpdateDishes(ctx, entry); err != nil {
				return fmt.Errorf("update menu entry: %w", err)
			}
			result.Outcome = OutcomeUpdated
		} else {
			if err := tx.Create(ctx, &entry); err != nil {
				return fmt.Errorf("insert menu entry: %w", err)
			}
			result.Outcome = OutcomeInserted
		}

		pruned, err := tx.DeleteBetween(ctx, pruneFrom, pruneTo)
		if err != nil {
			return fmt.Errorf("prune menu %s..%s: %w", pruneFrom, pruneTo, err)
		}
		result.Pruned = pruned
		return nil
	})
	if err != nil {
		return UpsertResult{}, err
	}
	result.Entry = entry

	utils.InfoLogger.Infof("Menu %s %s: %s (pruned %d)", entry.Day, entry.MealSlot, result.Outcome, result.Pruned)
	s.notify(ctx)
	return result, nil
}

// EntriesForWindow returns every stored meal whose day is one of days.
func (s *MenuService) EntriesForWindow(ctx context.Context, days []string) ([]models.MenuEntry, error) {
	if len(days) == 0 {
		return []models.MenuEntry{}, nil
	}
	return s.Repo.FindByDays(ctx, days)
}

func (s *MenuService) CurrentWeekMenu(ctx context.Context) ([]DayMenu, error) {
	return s.weekMenu(ctx, CurrentWeek(s.Now()))
}

func (s *MenuService) NextWeekMenu(ctx context.Context) ([]DayMenu, error) {
	return s.weekMenu(ctx, NextWeek(s.Now()))
}

// CurrentWeekEntries is the flat list behind the public menu API and the
// menu boards.
func (s *MenuService) CurrentWeekEntries(ctx context.Context) ([]models.MenuEntry, error) {
	return s.EntriesForWindow(ctx, DayKeys(CurrentWeek(s.Now())))
}

func (s *MenuService) weekMenu(ctx context.Context, days []time.Time) ([]DayMenu, error) {
	entries, err := s.EntriesForWindow(ctx, DayKeys(days))
	if err != nil {
		return nil, err
	}
	return GroupByDay(days, entries), nil
}

// GroupByDay lays entries out under their day, one DayMenu per element of
// days, keeping store order inside a day. Entries outside days are dropped.
func GroupByDay(days []time.Time, entries []models.MenuEntry) []DayMenu {
	out := make([]DayMenu, len(days))
	index := make(map[string]int, len(days))
	for i, day := range days {
		key := day.Format(utils.DayLayout)
		out[i] = DayMenu{Date: day, Key: key, Label: utils.DayLabel(day)}
		index[key] = i
	}
	for _, entry := range entries {
		if i, ok := index[entry.Day]; ok {
			out[i].Meals = append(out[i].Meals, entry)
		}
	}
	return out
}

func (s *MenuService) notify(ctx context.Context) {
	if s.Notifier == nil {
		return
	}
	entries, err := s.CurrentWeekEntries(ctx)
	if err != nil {
		utils.ErrorLogger.Printf("Error loading current week for menu boards: %v", err)
		return
	}
	s.Notifier.NotifyMenu(entries)
}
