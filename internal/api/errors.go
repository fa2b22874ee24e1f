package api

import (
	"errors"
	"net/http"

	"github.com/harperlib/bookshelf-api/internal/domain"
	"github.com/harperlib/bookshelf-api/internal/service/auth"
	"github.com/harperlib/bookshelf-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This keeps internal error types out of
// client responses.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return http.StatusUnauthorized

	case errors.Is(err, store.ErrBookNotFound),
		errors.Is(err, store.ErrUserNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrTitleExists),
		errors.Is(err, domain.ErrBookAlreadyDeleted):
		return http.StatusConflict

	// Registration conflicts and bad credentials surface as 400 per the
	// external contract, not 409/401.
	case errors.Is(err, store.ErrUsernameExists),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, domain.ErrBookNotDeleted),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		domain.IsRuleViolation(err):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the
// error. Unknown errors collapse into a generic message so internal detail
// never leaks.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "Internal server error"
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken):
		return "Unauthorized: Invalid token"
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid username or password"
	case errors.Is(err, store.ErrBookNotFound):
		return "Book not found"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrTitleExists):
		return "Book already exists"
	case errors.Is(err, store.ErrUsernameExists):
		return "User already exists"
	case errors.Is(err, domain.ErrBookAlreadyDeleted):
		return "Book is already deleted"
	case errors.Is(err, domain.ErrBookNotDeleted):
		return "Book is not deleted"
	case domain.IsRuleViolation(err):
		return err.Error()
	default:
		return "Internal server error"
	}
}
