package image

import (
	"context"

	"recipe-sharing-platform/entities"

	"gorm.io/gorm"
)

type (
	ImageRepository interface {
		GetRecipeImageKey(ctx context.Context, recipeID string) (string, error)
		GetStepImageKey(ctx context.Context, stepID string) (string, error)
		GetProfileImageKey(ctx context.Context, userID string) (string, error)
	}

	imageRepository struct {
		db *gorm.DB
	}
)

func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) GetRecipeImageKey(ctx context.Context, recipeID string) (string, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Select("id", "main_image_key").Where("id = ?", recipeID).First(&recipe).Error; err != nil {
		return "", err
	}
	return recipe.MainImageKey, nil
}

func (r *imageRepository) GetStepImageKey(ctx context.Context, stepID string) (string, error) {
	var step entities.RecipeStep
	if err := r.db.WithContext(ctx).Select("id", "image_key").Where("id = ?", stepID).First(&step).Error; err != nil {
		return "", err
	}
	return step.ImageKey, nil
}

func (r *imageRepository) GetProfileImageKey(ctx context.Context, userID string) (string, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Select("id", "profile_image_key").Where("id = ?", userID).First(&user).Error; err != nil {
		return "", err
	}
	return user.ProfileImageKey, nil
}
