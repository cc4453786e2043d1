package domain

import (
	"time"
)

const (
	MaxImageSize          = 5 * 1024 * 1024
	DefaultRecipePageSize = 12

	SortNewest = "newest"
	SortOldest = "oldest"
	SortTitle  = "title"
	SortRating = "rating"

	StatusFilterAll      = "all"
	StatusFilterApproved = "approved"
	StatusFilterPending  = "pending"
	StatusFilterRejected = "rejected"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "Recipe created successfully! It will be reviewed before being published."
	MessageSuccessUpdateRecipe    = "Recipe updated successfully! It will be reviewed again before being published."
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"

	ErrRecipeNotFound         = NewError(ErrNotFound, "Recipe not found")
	ErrRecipeNotVisible       = NewError(ErrNotFound, "Recipe not found or not approved")
	ErrRecipeNotEditable      = NewError(ErrNotFound, "Recipe not found or you don't have permission to edit it")
	ErrRecipeNotDeletable     = NewError(ErrNotFound, "Recipe not found or you don't have permission to delete it")
	ErrIngredientsRequired    = NewError(ErrValidation, "At least one ingredient is required")
	ErrStepsRequired          = NewError(ErrValidation, "At least one step is required")
	ErrOnlyChefsCanCreate     = NewError(ErrAuthorization, "Only chefs can create recipes")
	ErrInvalidStatusFilter    = NewError(ErrValidation, "Invalid status filter. Must be 'all', 'approved', 'pending' or 'rejected'")
	ErrRecipeCategoryNotFound = NewError(ErrValidation, "Selected category does not exist")
	ErrInvalidCategoryFilter  = NewError(ErrValidation, "Invalid category filter")
)

type (
	// ImageUpload is an uploaded file as received from the client. Data is left
	// empty when the declared size already exceeds MaxImageSize.
	ImageUpload struct {
		FileName    string
		ContentType string
		Size        int64
		Data        []byte
	}

	// RecipeImages exposes the images carried by a recipe payload so create and
	// update requests share one validation path.
	RecipeImages interface {
		GetMainImage() *ImageUpload
		GetStepImages() []*ImageUpload
	}

	IngredientRequest struct {
		Name     string `json:"name" validate:"max=100"`
		Quantity string `json:"quantity" validate:"max=50"`
		Unit     string `json:"unit" validate:"max=20"`
	}

	StepRequest struct {
		Description string       `json:"description" validate:"max=1000"`
		RemoveImage bool         `json:"remove_image"`
		Image       *ImageUpload `json:"-"`
	}

	RecipeRequest struct {
		Title           string              `json:"title" validate:"required,max=200"`
		Description     string              `json:"description" validate:"required,max=1000"`
		PrepTimeMinutes int                 `json:"prep_time_minutes" validate:"required,min=1,max=1440"`
		CookTimeMinutes int                 `json:"cook_time_minutes" validate:"required,min=1,max=1440"`
		Servings        int                 `json:"servings" validate:"required,min=1,max=50"`
		CategoryID      string              `json:"category_id" validate:"required,uuid"`
		Ingredients     []IngredientRequest `json:"ingredients" validate:"dive"`
		Steps           []StepRequest       `json:"steps" validate:"dive"`
		MainImage       *ImageUpload        `json:"-"`
	}

	CreateRecipeRequest struct {
		RecipeRequest
	}

	UpdateRecipeRequest struct {
		RecipeRequest
		RemoveMainImage bool `json:"remove_main_image"`
	}

	RecipeQuery struct {
		PageRequest
		Search     string
		CategoryID string
		SortBy     string
		Status     string
	}

	IngredientResponse struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Quantity string `json:"quantity"`
		Unit     string `json:"unit"`
	}

	StepResponse struct {
		ID          string `json:"id"`
		StepNumber  int    `json:"step_number"`
		Description string `json:"description"`
		ImageURL    string `json:"image_url,omitempty"`
	}

	RecipeResponse struct {
		ID              string    `json:"id"`
		Title           string    `json:"title"`
		Description     string    `json:"description"`
		PrepTimeMinutes int       `json:"prep_time_minutes"`
		CookTimeMinutes int       `json:"cook_time_minutes"`
		Servings        int       `json:"servings"`
		CategoryID      string    `json:"category_id"`
		CategoryName    string    `json:"category_name"`
		ChefID          string    `json:"chef_id"`
		ChefName        string    `json:"chef_name"`
		ImageURL        string    `json:"image_url,omitempty"`
		IsApproved      bool      `json:"is_approved"`
		IsRejected      bool      `json:"is_rejected"`
		ModerationNotes *string   `json:"moderation_notes"`
		Status          string    `json:"status"`
		AverageRating   float64   `json:"average_rating"`
		TotalRatings    int64     `json:"total_ratings"`
		FavoriteCount   int64     `json:"favorite_count"`
		CreatedAt       time.Time `json:"created_at"`
		UpdatedAt       time.Time `json:"updated_at"`
	}

	RecipeDetailResponse struct {
		RecipeResponse
		Ingredients []IngredientResponse `json:"ingredients"`
		Steps       []StepResponse       `json:"steps"`
	}

	RecipeStats struct {
		AverageRating float64
		TotalRatings  int64
		FavoriteCount int64
	}

	ChefStatistics struct {
		TotalRecipes         int64   `json:"total_recipes"`
		Approved             int64   `json:"approved"`
		Pending              int64   `json:"pending"`
		Rejected             int64   `json:"rejected"`
		TotalRatingsReceived int64   `json:"total_ratings_received"`
		OverallAverageRating float64 `json:"overall_average_rating"`
		TotalFavorites       int64   `json:"total_favorites"`
	}

	MyRecipesResponse struct {
		Recipes    []RecipeResponse `json:"recipes"`
		Statistics ChefStatistics   `json:"statistics"`
		Total      int64            `json:"-"`
	}

	CreateRecipeResponse struct {
		RecipeID string `json:"recipe_id"`
	}
)

func (r *RecipeRequest) GetMainImage() *ImageUpload {
	return r.MainImage
}

func (r *RecipeRequest) GetStepImages() []*ImageUpload {
	images := make([]*ImageUpload, len(r.Steps))
	for i := range r.Steps {
		images[i] = r.Steps[i].Image
	}
	return images
}
