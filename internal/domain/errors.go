// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrBookNotDeleted is returned when a restore is attempted on a book
	// that is not currently soft-deleted.
	ErrBookNotDeleted = errors.New("book is not deleted")

	// ErrBookAlreadyDeleted is returned when a delete is attempted on a book
	// that has already been soft-deleted.
	ErrBookAlreadyDeleted = errors.New("book is already deleted")
)

// IsRuleViolation reports whether the error is one of the field-rule
// sentinels whose message is safe to return to the client verbatim.
func IsRuleViolation(err error) bool {
	for _, rule := range []error{
		ErrUsernameLength,
		ErrUsernameNoLetter,
		ErrPasswordTooShort,
		ErrPasswordTooWeak,
		ErrTitleTooShort,
		ErrAuthorTooShort,
		ErrGenreTooShort,
		ErrEmptyPublishedDate,
		ErrInvalidPublishedFmt,
	} {
		if errors.Is(err, rule) {
			return true
		}
	}
	return false
}

// ValidationError carries a field name alongside a human-readable rule
// message so handlers can return the exact rule that failed.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}

// Unwrap returns the wrapped sentinel to support errors.Is.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError wrapping ErrValidation unless
// a more specific sentinel is provided.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}
