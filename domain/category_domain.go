package domain

import "time"

var (
	MessageSuccessGetCategories  = "success get categories"
	MessageSuccessGetCategory    = "success get category"
	MessageSuccessCreateCategory = "category created successfully"
	MessageSuccessUpdateCategory = "category updated successfully"
	MessageSuccessDeleteCategory = "category deleted successfully"

	MessageFailedGetCategories  = "failed to get categories"
	MessageFailedGetCategory    = "failed to get category"
	MessageFailedCreateCategory = "failed to create category"
	MessageFailedUpdateCategory = "failed to update category"
	MessageFailedDeleteCategory = "failed to delete category"

	ErrCategoryNotFound  = NewError(ErrNotFound, "Category not found")
	ErrCategoryNameTaken = NewError(ErrConflict, "A category with this name already exists")
)

type (
	CategoryRequest struct {
		Name        string `json:"name" validate:"required,max=100"`
		Description string `json:"description" validate:"max=500"`
	}

	CategoryResponse struct {
		ID                  string    `json:"id"`
		Name                string    `json:"name"`
		Description         string    `json:"description"`
		RecipeCount         int64     `json:"recipe_count"`
		ApprovedRecipeCount int64     `json:"approved_recipe_count"`
		PendingRecipeCount  int64     `json:"pending_recipe_count"`
		CreatedAt           time.Time `json:"created_at"`
	}

	CategoryDetailResponse struct {
		CategoryResponse
		Recipes []RecipeResponse `json:"recipes"`
	}

	CategoryCounts struct {
		CategoryID string
		Total      int64
		Approved   int64
		Pending    int64
	}
)
