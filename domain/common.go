package domain

import (
	"errors"
	"strings"
)

const (
	RoleAdmin = "Admin"
	RoleChef  = "Chef"
	RoleUser  = "User"
)

var (
	MesaageUserNotAllowed     = "user not allowed"
	MessageFailedBodyRequest  = "failed to parse request body"
	MessageFailedGetToken     = "failed to get token"
	MessageFailedTokenInvalid = "failed to token invalid"
	MessageInternalError      = "an unexpected error occurred"

	ErrParseUUID      = errors.New("failed to parse UUID")
	ErrUserNotAllowed = errors.New("user not allowed")
	ErrTokenNotFound  = errors.New("failed to token not found")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
)

// Error kinds. Every error returned to a caller should match one of these
// through errors.Is; anything else is reported as internal.
var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("not found")
	ErrAuthorization = errors.New("authorization error")
	ErrConflict      = errors.New("conflict")
	ErrInternal      = errors.New("internal error")
)

type Error struct {
	kind    error
	message string
}

func NewError(kind error, message string) *Error {
	return &Error{kind: kind, message: message}
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Unwrap() error {
	return e.kind
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is a validation failure that keeps per-field messages so a form
// can be redisplayed.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	messages := make([]string, 0, len(e))
	for _, fe := range e {
		messages = append(messages, fe.Message)
	}
	return strings.Join(messages, "; ")
}

func (e FieldErrors) Unwrap() error {
	return ErrValidation
}

func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleChef, RoleUser:
		return true
	}
	return false
}

type (
	PageRequest struct {
		Page     int
		PageSize int
	}
)

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}
