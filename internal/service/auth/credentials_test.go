package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/harperlib/bookshelf-api/internal/domain"
)

func TestPrepareCredentials(t *testing.T) {
	t.Parallel()

	user, err := domain.NewUser("BookWorm", "Str0ng!pass")
	require.NoError(t, err)

	hasher := NewBcryptHasher()
	require.NoError(t, PrepareCredentials(user, hasher))

	assert.Equal(t, "bookworm", user.Username)
	assert.Empty(t, user.Password, "plaintext must not survive credential preparation")
	require.NotEmpty(t, user.HashedPassword)

	// The stored hash must verify against the original plaintext.
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(user.HashedPassword), []byte("Str0ng!pass")))
}

func TestPrepareCredentialsEmptyPassword(t *testing.T) {
	t.Parallel()

	user := &domain.User{Username: "bookworm"}
	err := PrepareCredentials(user, NewBcryptHasher())
	assert.ErrorIs(t, err, domain.ErrEmptyPassword)
}

func TestBcryptHasherCompare(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher()
	hash, err := hasher.Hash("Str0ng!pass")
	require.NoError(t, err)

	assert.NoError(t, hasher.Compare(hash, "Str0ng!pass"))
	assert.Error(t, hasher.Compare(hash, "wrong-password"))
}
