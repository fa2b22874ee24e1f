package mocks

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/harperlib/bookshelf-api/internal/service/auth"
	"github.com/harperlib/bookshelf-api/internal/store"
)

// MockJWTService implements auth.JWTService for testing.
type MockJWTService struct {
	Token       string
	GenerateErr error
	Claims      *auth.Claims
	ValidateErr error
}

// GenerateToken implements the JWTService interface.
func (m *MockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateErr != nil {
		return "", m.GenerateErr
	}
	return m.Token, nil
}

// ValidateToken implements the JWTService interface.
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateErr != nil {
		return nil, m.ValidateErr
	}
	if m.Claims != nil {
		return m.Claims, nil
	}
	return &auth.Claims{UserID: uuid.New()}, nil
}

// MockPasswordHasher implements auth.PasswordHasher and
// auth.PasswordVerifier with transparent fake hashes.
type MockPasswordHasher struct {
	HashErr       error
	ShouldSucceed bool
}

// Hash implements the PasswordHasher interface.
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashErr != nil {
		return "", m.HashErr
	}
	return "hashed:" + password, nil
}

// Compare implements the PasswordVerifier interface.
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	if m.ShouldSucceed || hashedPassword == "hashed:"+password {
		return nil
	}
	return errors.New("password mismatch")
}

// MockTxManager implements store.TxManager by invoking the function with a
// nil transaction; the mock stores ignore the transaction handle anyway.
type MockTxManager struct {
	Err error
}

// WithinTx implements the TxManager interface.
func (m *MockTxManager) WithinTx(ctx context.Context, fn store.TxFn) error {
	if m.Err != nil {
		return m.Err
	}
	return fn(ctx, nil)
}
