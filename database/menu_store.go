package database

import (
	"context"
	"errors"

	"github.com/yeremiapane/intranet-portal/models"
	"github.com/yeremiapane/intranet-portal/services"
	"gorm.io/gorm"
)

// MenuStore is the gorm implementation of services.MenuRepository.
type MenuStore struct {
	DB *gorm.DB
}

func NewMenuStore(db *gorm.DB) *MenuStore {
	return &MenuStore{DB: db}
}

func (s *MenuStore) WithinTx(ctx context.Context, fn func(tx services.MenuRepository) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&MenuStore{DB: tx})
	})
}

func (s *MenuStore) FindBySlot(ctx context.Context, day, mealSlot string) (*models.MenuEntry, error) {
	var entry models.MenuEntry
	err := s.DB.WithContext(ctx).
		Where("dia = ? AND refeicao = ?", day, mealSlot).
		Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *MenuStore) Create(ctx context.Context, entry *models.MenuEntry) error {
	return s.DB.WithContext(ctx).Create(entry).Error
}

// UpdateDishes rewrites the six dish columns of the (dia, refeicao) row.
// A map is used so empty strings are written too.
func (s *MenuStore) UpdateDishes(ctx context.Context, entry models.MenuEntry) error {
	return s.DB.WithContext(ctx).
		Model(&models.MenuEntry{}).
		Where("dia = ? AND refeicao = ?", entry.Day, entry.MealSlot).
		Updates(map[string]interface{}{
			"prato_principal": entry.MainDish,
			"opcao":           entry.SideOption,
			"guarnicao":       entry.Garnish,
			"salada":          entry.Salad,
			"suco":            entry.Juice,
			"sobremesa":       entry.Dessert,
		}).Error
}

func (s *MenuStore) DeleteBetween(ctx context.Context, startDay, endDay string) (int64, error) {
	result := s.DB.WithContext(ctx).
		Where("dia BETWEEN ? AND ?", startDay, endDay).
		Delete(&models.MenuEntry{})
	return result.RowsAffected, result.Error
}

func (s *MenuStore) FindByDays(ctx context.Context, days []string) ([]models.MenuEntry, error) {
	entries := []models.MenuEntry{}
	if len(days) == 0 {
		return entries, nil
	}
	err := s.DB.WithContext(ctx).
		Where("dia IN ?", days).
		Find(&entries).Error
	return entries, err
}
