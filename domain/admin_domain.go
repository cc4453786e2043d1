package domain

import "time"

var (
	MessageSuccessGetDashboard   = "success get dashboard"
	MessageSuccessGetPending     = "success get pending recipes"
	MessageSuccessApproveRecipe  = "Recipe approved successfully"
	MessageSuccessRejectRecipe   = "Recipe rejected successfully"
	MessageSuccessGetUsers       = "success get users"
	MessageSuccessUpdateUserRole = "User role updated to %s successfully"
	MessageSuccessToggleLockout  = "User lockout updated successfully"
	MessageSuccessDeleteUser     = "User deleted successfully"

	MessageFailedGetDashboard   = "failed to get dashboard"
	MessageFailedGetPending     = "failed to get pending recipes"
	MessageFailedApproveRecipe  = "failed to approve recipe"
	MessageFailedRejectRecipe   = "failed to reject recipe"
	MessageFailedGetUsers       = "failed to get users"
	MessageFailedUpdateUserRole = "failed to update user role"
	MessageFailedToggleLockout  = "failed to update user lockout"
	MessageFailedDeleteUser     = "failed to delete user"

	ErrRejectionReasonRequired = NewError(ErrValidation, "Rejection reason is required")
	ErrInvalidRole             = NewError(ErrValidation, "Invalid role. Must be 'User', 'Chef' or 'Admin'")
	ErrChangeOwnRole           = NewError(ErrValidation, "You cannot change your own role.")
	ErrDisableOwnAccount       = NewError(ErrValidation, "You cannot disable your own account.")
	ErrDeleteOwnAccount        = NewError(ErrValidation, "You cannot delete your own account.")
)

const RecentActivityLimit = 10

type (
	ModerationRequest struct {
		Notes *string `json:"notes" form:"notes"`
	}

	UpdateRoleRequest struct {
		Role string `json:"role" form:"role" validate:"required"`
	}

	RecentActivity struct {
		Type        string    `json:"type"`
		Description string    `json:"description"`
		Timestamp   time.Time `json:"timestamp"`
		Status      string    `json:"status"`
		RecipeID    string    `json:"recipe_id"`
	}

	DashboardResponse struct {
		TotalRecipes    int64            `json:"total_recipes"`
		PendingRecipes  int64            `json:"pending_recipes"`
		ApprovedRecipes int64            `json:"approved_recipes"`
		RejectedRecipes int64            `json:"rejected_recipes"`
		TotalUsers      int64            `json:"total_users"`
		TotalChefs      int64            `json:"total_chefs"`
		TotalCategories int64            `json:"total_categories"`
		TotalRatings    int64            `json:"total_ratings"`
		TotalFavorites  int64            `json:"total_favorites"`
		RecentActivity  []RecentActivity `json:"recent_activity"`
	}

	UserQuery struct {
		PageRequest
		Search string
		Role   string
	}

	AdminUserResponse struct {
		UserResponse
		IsDisabled  bool  `json:"is_disabled"`
		RecipeCount int64 `json:"recipe_count"`
	}
)
