package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperlib/bookshelf-api/internal/api/shared"
	"github.com/harperlib/bookshelf-api/internal/mocks"
	"github.com/harperlib/bookshelf-api/internal/service/auth"
)

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	jwtService := &mocks.MockJWTService{Claims: &auth.Claims{UserID: userID}}
	mw := NewAuthMiddleware(jwtService)

	var gotUserID uuid.UUID
	var found bool
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, found = GetUserID(r)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	req.Header.Set("Authorization", "Bearer some-valid-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, found)
	assert.Equal(t, userID, gotUserID)
}

func TestAuthenticateRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		header      string
		validateErr error
		wantMessage string
	}{
		{
			name:        "missing header",
			header:      "",
			wantMessage: "Unauthorized",
		},
		{
			name:        "not a bearer scheme",
			header:      "Basic dXNlcjpwYXNz",
			wantMessage: "Unauthorized",
		},
		{
			name:        "bearer with no token",
			header:      "Bearer",
			wantMessage: "Unauthorized",
		},
		{
			name:        "expired token",
			header:      "Bearer expired-token",
			validateErr: auth.ErrExpiredToken,
			wantMessage: "Token expired",
		},
		{
			name:        "wrapped expired token",
			header:      "Bearer expired-token",
			validateErr: fmt.Errorf("validating access token: %w", auth.ErrExpiredToken),
			wantMessage: "Token expired",
		},
		{
			name:        "invalid token",
			header:      "Bearer garbage-token",
			validateErr: auth.ErrInvalidToken,
			wantMessage: "Unauthorized: Invalid token",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mw := NewAuthMiddleware(&mocks.MockJWTService{ValidateErr: tt.validateErr})
			handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("handler must not run for rejected requests")
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tt.wantMessage, errorMessage(t, rec))
		})
	}
}
