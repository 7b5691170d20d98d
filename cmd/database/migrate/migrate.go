package migration

import (
	"CulinaShare-Backend/entities"
	"CulinaShare-Backend/internal/logging"
	"fmt"

	"gorm.io/gorm"
)

// Models lists every table in dependency order.
func Models() []interface{} {
	return []interface{}{
		&entities.User{},
		&entities.UserFollow{},
		&entities.Recipe{},
		&entities.RecipeDietaryTag{},
		&entities.Ingredient{},
		&entities.Instruction{},
		&entities.Review{},
		&entities.RecipeLike{},
		&entities.RecipeSave{},
	}
}

func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		// case-insensitive search on recipe titles and usernames
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "pg_trgm";`).Error; err != nil {
			logging.Warn().Err(err).Msg("pg_trgm extension unavailable, search will use sequential scans")
		}
	}

	for _, model := range Models() {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("error migrating %T: %w", model, err)
		}
	}

	if db.Dialector.Name() == "postgres" {
		indexes := []string{
			`CREATE INDEX IF NOT EXISTS idx_recipes_title_trgm ON recipes USING gin (lower(title) gin_trgm_ops)`,
			`CREATE INDEX IF NOT EXISTS idx_users_username_trgm ON users USING gin (lower(username) gin_trgm_ops)`,
		}
		for _, stmt := range indexes {
			if err := db.Exec(stmt).Error; err != nil {
				logging.Warn().Err(err).Str("statement", stmt).Msg("failed to create search index")
			}
		}
	}

	logging.Info().Msg("database migration complete")
	return nil
}
