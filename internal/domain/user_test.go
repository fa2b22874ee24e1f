package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{
			name:     "valid user",
			username: "reader42",
			password: "Str0ng!pass",
			wantErr:  nil,
		},
		{
			name:     "username normalized to lowercase",
			username: "ReAdEr42",
			password: "Str0ng!pass",
			wantErr:  nil,
		},
		{
			name:     "username too short",
			username: "abc",
			password: "Str0ng!pass",
			wantErr:  ErrUsernameLength,
		},
		{
			name:     "username too long",
			username: "abcdefghijklmnopqrstu",
			password: "Str0ng!pass",
			wantErr:  ErrUsernameLength,
		},
		{
			name:     "username without letters",
			username: "12345",
			password: "Str0ng!pass",
			wantErr:  ErrUsernameNoLetter,
		},
		{
			name:     "password too short",
			username: "reader42",
			password: "S0r!t",
			wantErr:  ErrPasswordTooShort,
		},
		{
			name:     "password without uppercase",
			username: "reader42",
			password: "str0ng!pass",
			wantErr:  ErrPasswordTooWeak,
		},
		{
			name:     "password without lowercase",
			username: "reader42",
			password: "STR0NG!PASS",
			wantErr:  ErrPasswordTooWeak,
		},
		{
			name:     "password without digit",
			username: "reader42",
			password: "Strong!pass",
			wantErr:  ErrPasswordTooWeak,
		},
		{
			name:     "password without special character",
			username: "reader42",
			password: "Str0ngpass",
			wantErr:  ErrPasswordTooWeak,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			user, err := NewUser(tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, NormalizeUsername(tt.username), user.Username)
			assert.NotZero(t, user.ID)
			assert.False(t, user.CreatedAt.IsZero())
		})
	}
}

func TestUserValidateStoredUser(t *testing.T) {
	t.Parallel()

	// A user loaded from storage has no plaintext password, only a hash.
	user, err := NewUser("reader42", "Str0ng!pass")
	require.NoError(t, err)

	user.Password = ""
	user.HashedPassword = "$2a$10$somethinghashed"
	assert.NoError(t, user.Validate())

	user.HashedPassword = ""
	assert.ErrorIs(t, user.Validate(), ErrEmptyPassword)
}
