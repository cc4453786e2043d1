// Package testutil builds throwaway sqlite databases and fixtures for the
// repository, service and handler tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	migration "recipe-sharing-platform/cmd/database/migrate"
	"recipe-sharing-platform/domain"
	"recipe-sharing-platform/entities"
	"recipe-sharing-platform/internal/utils"
	"recipe-sharing-platform/pkg/policy"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const Password = "Secret1!"

// PNG is the smallest payload DetectContentType reports as image/png.
var PNG = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n', 0, 0, 0, 0}

// NewDB opens a migrated sqlite database in a temp dir that is removed with
// the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, migration.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func CreateUser(t *testing.T, db *gorm.DB, role string) *entities.User {
	t.Helper()

	hashed, err := utils.HashPassword(Password)
	require.NoError(t, err)

	suffix := uuid.NewString()[:8]
	user := &entities.User{
		Username:  "user-" + suffix,
		Email:     "user-" + suffix + "@example.com",
		Password:  hashed,
		FirstName: "Test",
		LastName:  role + suffix,
		Role:      role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateCategory(t *testing.T, db *gorm.DB, name string) *entities.Category {
	t.Helper()

	category := &entities.Category{Name: name, Description: name + " recipes"}
	require.NoError(t, db.Create(category).Error)
	return category
}

// CreateRecipe inserts a recipe with one ingredient and one step, bypassing
// the service.
func CreateRecipe(t *testing.T, db *gorm.DB, owner *entities.User, category *entities.Category, title string, approved bool) *entities.Recipe {
	t.Helper()

	recipe := &entities.Recipe{
		UserID:          owner.ID,
		CategoryID:      category.ID,
		Title:           title,
		Description:     title + " description",
		PrepTimeMinutes: 10,
		CookTimeMinutes: 20,
		Servings:        4,
		IsApproved:      approved,
		Ingredients:     []entities.Ingredient{{Name: "Salt", Quantity: "1", Unit: "tsp", SortOrder: 1}},
		Steps:           []entities.RecipeStep{{StepNumber: 1, Description: "Mix"}},
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}

func Actor(user *entities.User) policy.Actor {
	return policy.Actor{UserID: user.ID.String(), Role: user.Role}
}

func Anonymous() policy.Actor {
	return policy.Actor{}
}

// Image returns a valid PNG upload.
func Image(name string) *domain.ImageUpload {
	return &domain.ImageUpload{
		FileName:    name,
		ContentType: "image/png",
		Size:        int64(len(PNG)),
		Data:        PNG,
	}
}

// Count returns the number of rows of model matching the condition.
func Count(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.WithContext(context.Background()).Model(model).Where(query, args...).Count(&n).Error)
	return n
}
