package recipe

import (
	"fmt"
	"strings"

	"recipe-sharing-platform/domain"
	"recipe-sharing-platform/entities"
	"recipe-sharing-platform/internal/utils"

	"github.com/google/uuid"
)

func RecipeImageURL(recipe *entities.Recipe) string {
	if recipe.MainImageKey == "" {
		return ""
	}
	return imageURL("GetRecipeImage", recipe.ID.String())
}

func StepImageURL(step *entities.RecipeStep) string {
	if step.ImageKey == "" {
		return ""
	}
	return imageURL("GetStepImage", step.ID.String())
}

func ProfileImageURL(user *entities.User) string {
	if user.ProfileImageKey == "" {
		return ""
	}
	return imageURL("GetUserProfileImage", user.ID.String())
}

func imageURL(endpoint, id string) string {
	base := strings.TrimRight(utils.GetConfig("APP_URL"), "/")
	return fmt.Sprintf("%s/image/%s/%s", base, endpoint, id)
}

func ToRecipeResponse(recipe *entities.Recipe, stats domain.RecipeStats) domain.RecipeResponse {
	res := domain.RecipeResponse{
		ID:              recipe.ID.String(),
		Title:           recipe.Title,
		Description:     recipe.Description,
		PrepTimeMinutes: recipe.PrepTimeMinutes,
		CookTimeMinutes: recipe.CookTimeMinutes,
		Servings:        recipe.Servings,
		CategoryID:      recipe.CategoryID.String(),
		ChefID:          recipe.UserID.String(),
		ImageURL:        RecipeImageURL(recipe),
		IsApproved:      recipe.IsApproved,
		IsRejected:      recipe.IsRejected,
		ModerationNotes: recipe.ModerationNotes,
		Status:          recipe.Status(),
		AverageRating:   stats.AverageRating,
		TotalRatings:    stats.TotalRatings,
		FavoriteCount:   stats.FavoriteCount,
		CreatedAt:       recipe.CreatedAt,
		UpdatedAt:       recipe.UpdatedAt,
	}
	if recipe.Category != nil {
		res.CategoryName = recipe.Category.Name
	}
	if recipe.User != nil {
		res.ChefName = recipe.User.FullName()
	}
	return res
}

func ToRecipeDetailResponse(recipe *entities.Recipe, stats domain.RecipeStats) domain.RecipeDetailResponse {
	res := domain.RecipeDetailResponse{
		RecipeResponse: ToRecipeResponse(recipe, stats),
		Ingredients:    make([]domain.IngredientResponse, 0, len(recipe.Ingredients)),
		Steps:          make([]domain.StepResponse, 0, len(recipe.Steps)),
	}
	for _, ing := range recipe.Ingredients {
		res.Ingredients = append(res.Ingredients, domain.IngredientResponse{
			ID:       ing.ID.String(),
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		})
	}
	for i := range recipe.Steps {
		step := &recipe.Steps[i]
		res.Steps = append(res.Steps, domain.StepResponse{
			ID:          step.ID.String(),
			StepNumber:  step.StepNumber,
			Description: step.Description,
			ImageURL:    StepImageURL(step),
		})
	}
	return res
}

// ToRecipeResponses maps a page of recipes with the stats computed for them.
func ToRecipeResponses(recipes []*entities.Recipe, stats map[uuid.UUID]domain.RecipeStats) []domain.RecipeResponse {
	res := make([]domain.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		res = append(res, ToRecipeResponse(r, stats[r.ID]))
	}
	return res
}

func RecipeIDs(recipes []*entities.Recipe) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(recipes))
	for _, r := range recipes {
		ids = append(ids, r.ID)
	}
	return ids
}
