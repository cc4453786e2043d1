package domain

import "time"

var (
	MessageSuccessRegister = "registration successful"
	MessageSuccessLogin    = "login successful"
	MessageSuccessGetUser  = "success get user"
	MessageSuccessLogout   = "logout successful"

	MessageFailedRegister = "failed to register"
	MessageFailedLogin    = "failed to login"
	MessageFailedGetUser  = "failed to get user"

	ErrInvalidRegisterRole = NewError(ErrValidation, "Invalid role. Must be 'Chef' or 'User'")
	ErrUsernameTaken       = NewError(ErrConflict, "Username is already taken")
	ErrEmailTaken          = NewError(ErrConflict, "Email is already registered")
	ErrInvalidCredentials  = NewError(ErrAuthorization, "Invalid login credentials")
	ErrUserNotFound        = NewError(ErrNotFound, "User not found")
	ErrUnauthenticated     = NewError(ErrAuthorization, "authentication required")
	ErrForbidden           = NewError(ErrAuthorization, "you do not have permission to perform this action")
)

type (
	RegisterRequest struct {
		FirstName string `json:"first_name" form:"first_name" validate:"required,max=100"`
		LastName  string `json:"last_name" form:"last_name" validate:"required,max=100"`
		Username  string `json:"username" form:"username" validate:"required,min=3,max=100"`
		Email     string `json:"email" form:"email" validate:"required,email,max=255"`
		Password  string `json:"password" form:"password" validate:"required,password"`
		Role      string `json:"role" form:"role" validate:"required"`
	}

	LoginRequest struct {
		EmailOrUsername string `json:"email_or_username" form:"email_or_username" validate:"required"`
		Password        string `json:"password" form:"password" validate:"required"`
	}

	UserResponse struct {
		ID        string    `json:"id"`
		Username  string    `json:"username"`
		Email     string    `json:"email"`
		FirstName string    `json:"first_name"`
		LastName  string    `json:"last_name"`
		Role      string    `json:"role"`
		CreatedAt time.Time `json:"created_at"`
	}

	AuthResponse struct {
		Token string       `json:"token"`
		User  UserResponse `json:"user"`
	}
)
