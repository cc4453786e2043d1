package presenters

import (
	"errors"

	"recipe-sharing-platform/domain"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Response struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data interface{}, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	res := Response{
		Status:  false,
		Message: message,
	}

	var fieldErrors domain.FieldErrors
	switch {
	case errors.As(err, &fieldErrors):
		res.Error = fieldErrors
	case err != nil:
		res.Error = err.Error()
	}

	return c.Status(statusCode).JSON(res)
}

// HandleError maps a service error onto a status code by its kind. Domain
// errors carry a message meant for the caller; anything else is logged and
// answered with a generic 500.
func HandleError(c *fiber.Ctx, message string, err error) error {
	status := StatusFor(err)
	if status == fiber.StatusInternalServerError {
		zap.L().Error(message,
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Any("user_id", c.Locals("user_id")),
			zap.Error(err),
		)
		return ErrorResponse(c, status, message, errors.New(domain.MessageInternalError))
	}

	var fieldErrors domain.FieldErrors
	if errors.As(err, &fieldErrors) {
		return ErrorResponse(c, status, message, fieldErrors)
	}
	return ErrorResponse(c, status, err.Error(), err)
}

func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrAuthorization):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
