package domain

import "time"

const DefaultRatingPageSize = 10

var (
	MessageSuccessCreateRating = "rating submitted successfully"
	MessageSuccessUpdateRating = "rating updated successfully"
	MessageSuccessDeleteRating = "rating deleted successfully"
	MessageSuccessGetRatings   = "success get ratings"
	MessageSuccessGetRating    = "success get rating"
	MessageRatingThanks        = "Thank you for rating this recipe!"
	MessageRatingChanged       = "Your rating has been updated!"

	MessageFailedCreateRating = "failed to submit rating"
	MessageFailedUpdateRating = "failed to update rating"
	MessageFailedDeleteRating = "failed to delete rating"
	MessageFailedGetRatings   = "failed to get ratings"
	MessageFailedGetRating    = "failed to get rating"

	ErrRatingNotFound    = NewError(ErrNotFound, "Rating not found")
	ErrRateOwnRecipe     = NewError(ErrValidation, "You cannot rate your own recipe")
	ErrAlreadyRated      = NewError(ErrConflict, "You have already rated this recipe. Use PUT to update your rating.")
	ErrRecipeNotRateable = NewError(ErrNotFound, "Recipe not found or not approved")
)

type (
	CreateRatingRequest struct {
		RecipeID string `json:"recipe_id" form:"recipe_id" validate:"required,uuid"`
		Score    int    `json:"score" form:"score" validate:"required,min=1,max=5"`
		Comment  string `json:"comment" form:"comment" validate:"max=500"`
	}

	UpdateRatingRequest struct {
		Score   int    `json:"score" form:"score" validate:"required,min=1,max=5"`
		Comment string `json:"comment" form:"comment" validate:"max=500"`
	}

	RatingResponse struct {
		ID          string    `json:"id"`
		RecipeID    string    `json:"recipe_id"`
		RecipeTitle string    `json:"recipe_title"`
		UserID      string    `json:"user_id"`
		UserName    string    `json:"user_name"`
		Score       int       `json:"score"`
		Comment     string    `json:"comment"`
		RatedAt     time.Time `json:"rated_at"`
	}

	RecipeRatingsResponse struct {
		Ratings       []RatingResponse `json:"ratings"`
		AverageRating float64          `json:"average_rating"`
		TotalRatings  int64            `json:"total_ratings"`
	}

	UserRatingResponse struct {
		HasRating bool            `json:"has_rating"`
		Rating    *RatingResponse `json:"rating"`
	}
)
