package migration

import (
	"fmt"

	"recipe-sharing-platform/entities"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";").Error; err != nil {
			return fmt.Errorf("error creating uuid-ossp extension: %w", err)
		}
	}

	models := []struct {
		name  string
		model interface{}
	}{
		{"user", &entities.User{}},
		{"category", &entities.Category{}},
		{"recipe", &entities.Recipe{}},
		{"ingredient", &entities.Ingredient{}},
		{"recipe step", &entities.RecipeStep{}},
		{"rating", &entities.Rating{}},
		{"favorite", &entities.UserFavorite{}},
		{"image blob", &entities.ImageBlob{}},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			return fmt.Errorf("error migrating %s database: %w", m.name, err)
		}
	}

	// usernames, emails and category names are unique regardless of case
	lowerIndexes := []struct {
		name   string
		table  string
		column string
	}{
		{"idx_users_username_lower", "users", "username"},
		{"idx_users_email_lower", "users", "email"},
		{"idx_categories_name_lower", "categories", "name"},
	}
	for _, idx := range lowerIndexes {
		stmt := fmt.Sprintf("CREATE UNIQUE INDEX IF NOT EXISTS %s ON %s (LOWER(%s))", idx.name, idx.table, idx.column)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("error creating index %s: %w", idx.name, err)
		}
	}

	zap.L().Info("Database migration complete")
	return nil
}
