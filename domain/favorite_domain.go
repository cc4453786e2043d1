package domain

import "time"

var (
	MessageSuccessAddFavorite    = "Recipe added to favorites"
	MessageSuccessRemoveFavorite = "Recipe removed from favorites"
	MessageSuccessGetFavorites   = "success get favorites"
	MessageSuccessCheckFavorite  = "success check favorite"

	MessageFailedAddFavorite    = "failed to add favorite"
	MessageFailedRemoveFavorite = "failed to remove favorite"
	MessageFailedGetFavorites   = "failed to get favorites"

	ErrFavoriteExists       = NewError(ErrConflict, "Recipe is already in favorites")
	ErrFavoriteNotFound     = NewError(ErrNotFound, "Recipe not found in favorites")
	ErrFavoriteOwnRecipe    = NewError(ErrValidation, "You cannot add your own recipe to favorites.")
	ErrRecipeNotFavoritable = NewError(ErrNotFound, "Recipe not found or not approved")
)

type (
	FavoriteQuery struct {
		PageRequest
		Search string
	}

	FavoriteResponse struct {
		RecipeID          string    `json:"recipe_id"`
		RecipeTitle       string    `json:"recipe_title"`
		RecipeDescription string    `json:"recipe_description"`
		CategoryName      string    `json:"category_name"`
		ChefName          string    `json:"chef_name"`
		PrepTimeMinutes   int       `json:"prep_time_minutes"`
		CookTimeMinutes   int       `json:"cook_time_minutes"`
		Servings          int       `json:"servings"`
		ImageURL          string    `json:"image_url,omitempty"`
		DateAdded         time.Time `json:"date_added"`
		AverageRating     float64   `json:"average_rating"`
		TotalRatings      int64     `json:"total_ratings"`
		FavoriteCount     int64     `json:"favorite_count"`
	}

	CheckFavoriteResponse struct {
		IsFavorite bool `json:"is_favorite"`
	}

	ToggleFavoriteResponse struct {
		IsFavorite bool   `json:"is_favorite"`
		Message    string `json:"message"`
	}
)
