package validator

import (
	"github.com/formpilot/form-service/internal/errors"
)

// Shared validation error types from the errors package.
type ValidationError = errors.ValidationError
type ValidationErrors = errors.ValidationErrors

// ToValidationErrors converts validator.ValidationErrors to the shared type.
func ToValidationErrors(err error) ValidationErrors {
	return errors.ToValidationErrors(err)
}
