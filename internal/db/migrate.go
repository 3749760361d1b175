package db

import (
	"coindash/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.Coin{},
		&models.RankingEntry{},
		&models.GlobalSnapshot{},
		&models.RefreshState{},
	)
}
