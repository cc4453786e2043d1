package favorite

import (
	"context"
	"strings"

	"recipe-sharing-platform/domain"
	"recipe-sharing-platform/entities"
	"recipe-sharing-platform/internal/utils"

	"gorm.io/gorm"
)

type (
	FavoriteRepository interface {
		AddFavorite(ctx context.Context, favorite *entities.UserFavorite) error
		RemoveFavorite(ctx context.Context, userID string, recipeID string) (bool, error)
		IsFavorite(ctx context.Context, userID string, recipeID string) (bool, error)
		GetFavorites(ctx context.Context, userID string, query domain.FavoriteQuery) ([]*entities.UserFavorite, int64, error)
		GetApprovedRecipe(ctx context.Context, recipeID string) (*entities.Recipe, error)
		CountFavorites(ctx context.Context) (int64, error)
		CountFavoritesByUser(ctx context.Context, userID string) (int64, error)
	}

	favoriteRepository struct {
		db *gorm.DB
	}
)

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) AddFavorite(ctx context.Context, favorite *entities.UserFavorite) error {
	return r.db.WithContext(ctx).Omit("User", "Recipe").Create(favorite).Error
}

// RemoveFavorite reports whether a row was deleted.
func (r *favoriteRepository) RemoveFavorite(ctx context.Context, userID string, recipeID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.UserFavorite{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *favoriteRepository) IsFavorite(ctx context.Context, userID string, recipeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.UserFavorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFavorites lists the user's favorites whose recipe is still approved,
// newest first.
func (r *favoriteRepository) GetFavorites(ctx context.Context, userID string, query domain.FavoriteQuery) ([]*entities.UserFavorite, int64, error) {
	var favorites []*entities.UserFavorite
	var count int64

	db := r.db.WithContext(ctx).Model(&entities.UserFavorite{}).
		Joins("JOIN recipes ON recipes.id = user_favorites.recipe_id").
		Joins("JOIN users ON users.id = recipes.user_id").
		Joins("JOIN categories ON categories.id = recipes.category_id").
		Where("user_favorites.user_id = ? AND recipes.is_approved = ?", userID, true)

	if search := strings.TrimSpace(query.Search); search != "" {
		like := utils.ContainsPattern(search)
		db = db.Where(
			"(LOWER(recipes.title) LIKE ? ESCAPE '\\' OR LOWER(recipes.description) LIKE ? ESCAPE '\\' OR LOWER(categories.name) LIKE ? ESCAPE '\\' OR LOWER(users.first_name) LIKE ? ESCAPE '\\' OR LOWER(users.last_name) LIKE ? ESCAPE '\\')",
			like, like, like, like, like,
		)
	}

	db = db.Session(&gorm.Session{})
	if err := db.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := db.
		Select("user_favorites.*").
		Preload("Recipe.User").
		Preload("Recipe.Category").
		Order("user_favorites.date_added desc").
		Offset(query.Offset()).
		Limit(query.PageSize).
		Find(&favorites).Error; err != nil {
		return nil, 0, err
	}

	return favorites, count, nil
}

func (r *favoriteRepository) GetApprovedRecipe(ctx context.Context, recipeID string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_approved = ?", recipeID, true).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *favoriteRepository) CountFavorites(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.UserFavorite{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *favoriteRepository) CountFavoritesByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.UserFavorite{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
