package domain

var (
	MessageSuccessGetProfile     = "success get profile"
	MessageSuccessUpdateProfile  = "Profile updated successfully"
	MessageSuccessUploadImage    = "Profile image updated successfully"
	MessageSuccessDeleteImage    = "Profile image removed successfully"
	MessageSuccessChangePassword = "Password changed successfully"

	MessageFailedGetProfile     = "failed to get profile"
	MessageFailedUpdateProfile  = "failed to update profile"
	MessageFailedUploadImage    = "failed to upload profile image"
	MessageFailedDeleteImage    = "failed to remove profile image"
	MessageFailedChangePassword = "failed to change password"

	ErrCurrentPasswordIncorrect = NewError(ErrValidation, "Current password is incorrect")
	ErrPasswordUnchanged        = NewError(ErrValidation, "New password must be different from current password")
	ErrProfileImageRequired     = NewError(ErrValidation, "Please select an image to upload")
	ErrNoProfileImage           = NewError(ErrNotFound, "No profile image to remove")
	ErrEmailRegisteredToOther   = NewError(ErrConflict, "Email is already registered to another account")
)

type (
	UpdateProfileRequest struct {
		FirstName string `json:"first_name" validate:"required,max=100"`
		LastName  string `json:"last_name" validate:"required,max=100"`
		Username  string `json:"username" validate:"required,min=3,max=100"`
		Email     string `json:"email" validate:"required,email,max=255"`
	}

	ChangePasswordRequest struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,password"`
	}

	ProfileStatistics struct {
		TotalFavorites    int64           `json:"total_favorites"`
		TotalRatingsGiven int64           `json:"total_ratings_given"`
		MemberSince       string          `json:"member_since"`
		Chef              *ChefStatistics `json:"chef,omitempty"`
	}

	ProfileResponse struct {
		UserResponse
		ProfileImageURL string            `json:"profile_image_url,omitempty"`
		Statistics      ProfileStatistics `json:"statistics"`
	}
)
