package storage

import (
	"github.com/jonathan-hinds/Idle-RPGv2/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the sqlite database and keeps the schema updated
// via AutoMigrate.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&game.Character{}, &game.BattleRecord{}, &game.User{}); err != nil {
		return nil, err
	}
	return db, nil
}
