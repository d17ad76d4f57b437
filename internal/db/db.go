package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/campusmatch/engine/internal/config"
)

// NewDB initializes the database connection using DSN from config.
// The swipes table is only migrated when the swipe capability is
// enabled; a deployment without it runs with a disabled interaction
// store.
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DB.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info), // log SQL queries
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	// AutoMigrate ensures schema is in sync with models.
	models := []any{&User{}, &Match{}}
	if cfg.Swipes.Enabled {
		models = append(models, &Swipe{})
	}
	if err := db.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}
