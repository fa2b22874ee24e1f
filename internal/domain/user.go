package domain

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Username and password rule violations. Each carries the human-readable
// message the API returns verbatim, one per failed rule.
var (
	ErrEmptyUserID       = errors.New("user ID cannot be empty")
	ErrUsernameLength    = errors.New("Username must be between 4 and 20 characters.")
	ErrUsernameNoLetter  = errors.New("Username must contain at least one alphabetic character.")
	ErrPasswordTooShort  = errors.New("Password must be at least 8 characters long.")
	ErrPasswordTooWeak   = errors.New("Password must have at least 1 uppercase, 1 lowercase, 1 number, and 1 special character (!@#$%^&*).")
	ErrEmptyPassword     = errors.New("password cannot be empty")
	ErrEmptyPasswordHash = errors.New("hashed password cannot be empty")
)

// User represents a registered user of the catalog.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Password       string    `json:"-"` // Plaintext, held only between request decode and hashing
	HashedPassword string    `json:"-"` // Never exposed in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NormalizeUsername lowercases a username so lookups and uniqueness checks
// are case-insensitive.
func NormalizeUsername(username string) string {
	return strings.ToLower(username)
}

// NewUser creates a User with the given username and password. The username
// is normalized to lowercase before validation so uniqueness checks are
// case-insensitive. The caller is responsible for hashing the password
// before the user is stored.
func NewUser(username, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Username:  NormalizeUsername(username),
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks the username and password rules. It returns the first
// failing rule's sentinel so the API can surface that exact message.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if len(u.Username) < 4 || len(u.Username) > 20 {
		return ErrUsernameLength
	}
	if !strings.ContainsFunc(u.Username, unicode.IsLetter) {
		return ErrUsernameNoLetter
	}

	if u.Password != "" {
		if len(u.Password) < 8 {
			return ErrPasswordTooShort
		}
		if !passwordIsStrong(u.Password) {
			return ErrPasswordTooWeak
		}
	} else if u.HashedPassword == "" {
		// Users loaded from storage carry only the hash.
		return ErrEmptyPassword
	}

	return nil
}

// passwordIsStrong reports whether the password contains an uppercase letter,
// a lowercase letter, a digit, and one of the accepted special characters.
func passwordIsStrong(password string) bool {
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune("!@#$%^&*", r):
			special = true
		}
	}
	return upper && lower && digit && special
}
