// Package auth provides token issuance/verification and credential handling.
package auth

import "errors"

// Token and credential errors surfaced to the API layer.
var (
	// ErrInvalidToken is returned when a token fails verification for any
	// reason other than expiry (bad signature, malformed payload, wrong
	// signing method).
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a well-formed token is past its
	// expiry. Kept distinct from ErrInvalidToken so the guard can report
	// "Token expired" separately.
	ErrExpiredToken = errors.New("token expired")

	// ErrTokenNotYetValid is returned when a token's nbf claim is in the
	// future.
	ErrTokenNotYetValid = errors.New("token not yet valid")

	// ErrInvalidCredentials is returned on login when either the user does
	// not exist or the password does not match. Callers must not
	// distinguish the two cases.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
