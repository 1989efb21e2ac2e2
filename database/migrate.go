package database

import (
	"github.com/yeremiapane/intranet-portal/models"
	"github.com/yeremiapane/intranet-portal/utils"
	"gorm.io/gorm"
)

// Migrate creates or updates the portal tables. The menu table keeps its
// historical name and columns so an existing database.db is reused.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.MenuEntry{},
		&models.Post{},
		&models.Sector{},
		&models.Protocol{},
	)
	if err != nil {
		return err
	}

	// Older databases may hold duplicate (dia, refeicao) rows from before the
	// unique index; AutoMigrate fails to add it then, so check explicitly.
	if !db.Migrator().HasIndex(&models.MenuEntry{}, "idx_cardapio_dia_refeicao") {
		utils.ErrorLogger.Printf("Menu table has no unique (dia, refeicao) index; remove duplicate rows and migrate again")
	}

	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}
