package services

import (
	"errors"

	apperrors "github.com/formpilot/form-service/internal/errors"
	"github.com/formpilot/form-service/internal/models"
)

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Form errors
	ErrFormNotFound            = errors.New("form not found")
	ErrFormAlreadyPublished    = errors.New("form is already published")
	ErrFormNotPublished        = errors.New("form is not published")
	ErrQuestionIndexOutOfRange = errors.New("question index out of range")

	// Response errors
	ErrResponseNotFound = errors.New("response not found")
	ErrNoResponses      = errors.New("form has no responses")

	// Export errors
	ErrUnsupportedExportFormat = errors.New("unsupported export format")
)

// ErrUnknownQuestionType re-exported so handlers only depend on services.
var ErrUnknownQuestionType = models.ErrUnknownQuestionType

// Shared validation error types from the errors package.
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// IsNotFound reports whether an error means a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrFormNotFound) ||
		errors.Is(err, ErrResponseNotFound)
}

// IsValidation reports whether an error is a validation failure.
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve ValidationErrors
	return errors.As(err, &ve)
}
