package auth

import (
	"fmt"

	"github.com/harperlib/bookshelf-api/internal/domain"
)

// PrepareCredentials normalizes the user's username to lowercase and
// replaces the plaintext password with its hash. It is an explicit step the
// register flow calls before handing the user to the repository, rather
// than a hidden before-save hook.
func PrepareCredentials(user *domain.User, hasher PasswordHasher) error {
	user.Username = domain.NormalizeUsername(user.Username)

	if user.Password == "" {
		return domain.ErrEmptyPassword
	}

	hash, err := hasher.Hash(user.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.HashedPassword = hash
	user.Password = ""

	return nil
}
