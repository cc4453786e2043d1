package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"recipe-sharing-platform/domain"

	"github.com/go-playground/validator/v10"
)

var (
	Validate     *validator.Validate
	validateOnce sync.Once
)

func InitValidator() {
	validateOnce.Do(func() {
		Validate = validator.New(validator.WithRequiredStructEnabled())

		// report fields by their json names
		Validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})

		_ = Validate.RegisterValidation("password", validatePassword)
	})
}

// validatePassword requires at least six characters with an upper case letter,
// a lower case letter, a digit and a non-alphanumeric character.
func validatePassword(fl validator.FieldLevel) bool {
	return PasswordMeetsPolicy(fl.Field().String())
}

func PasswordMeetsPolicy(password string) bool {
	if len(password) < 6 {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

// ValidateStruct runs the validator and converts its errors into field level
// domain errors.
func ValidateStruct(s any) error {
	InitValidator()

	err := Validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return domain.NewError(domain.ErrValidation, err.Error())
	}

	fieldErrors := make(domain.FieldErrors, 0, len(validationErrors))
	for _, fe := range validationErrors {
		field := trimNamespace(fe.Namespace())
		fieldErrors = append(fieldErrors, domain.FieldError{
			Field:   field,
			Message: fieldMessage(field, fe),
		})
	}
	return fieldErrors
}

// trimNamespace drops the root struct and embedded struct names, leaving the
// json path of the field (e.g. "ingredients[0].name").
func trimNamespace(namespace string) string {
	parts := strings.Split(namespace, ".")
	kept := make([]string, 0, len(parts))
	for i, part := range parts {
		if i == 0 || (part != "" && unicode.IsUpper(rune(part[0]))) {
			continue
		}
		kept = append(kept, part)
	}
	if len(kept) == 0 {
		return parts[len(parts)-1]
	}
	return strings.Join(kept, ".")
}

func fieldMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "uuid":
		return fmt.Sprintf("%s must be a valid id", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be %s characters or less", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "password":
		return "Password must be at least 6 characters and contain an uppercase letter, a lowercase letter, a digit and a symbol"
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
