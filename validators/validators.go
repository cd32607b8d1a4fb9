package validators

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator adapts go-playground/validator to echo's Validator interface
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator with struct tag validation enabled
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate validates the struct's `validate` tags
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// FieldError is a single validation failure, attached to the re-rendered
// form instead of being surfaced as an HTTP error
type FieldError struct {
	Field   string
	Message string
}

// FieldErrors flattens a validation error into per-field messages.
// Returns nil when err is nil or not a validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("Must be at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters.", fe.Param())
	default:
		return fmt.Sprintf("Invalid value (%s).", fe.Tag())
	}
}
