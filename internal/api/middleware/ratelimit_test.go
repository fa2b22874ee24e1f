package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperlib/bookshelf-api/internal/ratelimit"
)

// failingCounterStore simulates an unreachable shared counter backend.
type failingCounterStore struct{}

func (failingCounterStore) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	return 0, errors.New("counter store unavailable")
}

func limitedHandler(t *testing.T, limiter *RateLimiter) http.Handler {
	t.Helper()
	return limiter.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func hit(handler http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiterThreshold(t *testing.T) {
	t.Parallel()

	store := ratelimit.NewMemoryStore()
	defer store.Close()
	handler := limitedHandler(t, NewRateLimiter(store, time.Minute, 3))

	for i := 0; i < 3; i++ {
		rec := hit(handler, "10.0.0.1:50000")
		require.Equal(t, http.StatusOK, rec.Code, "request %d within the limit", i+1)
	}

	// Everything past the threshold is throttled until the window resets.
	for i := 0; i < 2; i++ {
		rec := hit(handler, "10.0.0.1:50000")
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, rateLimitMessage, errorMessage(t, rec))
	}
}

func TestRateLimiterIsolatesClients(t *testing.T) {
	t.Parallel()

	store := ratelimit.NewMemoryStore()
	defer store.Close()
	handler := limitedHandler(t, NewRateLimiter(store, time.Minute, 1))

	require.Equal(t, http.StatusOK, hit(handler, "10.0.0.1:50000").Code)
	require.Equal(t, http.StatusTooManyRequests, hit(handler, "10.0.0.1:50001").Code,
		"same IP on a different port shares the counter")

	// A different IP starts with a fresh counter.
	assert.Equal(t, http.StatusOK, hit(handler, "10.0.0.2:50000").Code)
}

func TestRateLimiterFailsOpen(t *testing.T) {
	t.Parallel()

	handler := limitedHandler(t, NewRateLimiter(failingCounterStore{}, time.Minute, 1))

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hit(handler, "10.0.0.1:50000").Code)
	}
}

func TestRateLimiterCustomKeyFunc(t *testing.T) {
	t.Parallel()

	store := ratelimit.NewMemoryStore()
	defer store.Close()
	limiter := NewRateLimiter(store, time.Minute, 1, WithKeyFunc(func(r *http.Request) string {
		return r.Header.Get("X-API-Key")
	}))
	handler := limitedHandler(t, limiter)

	req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	req.Header.Set("X-API-Key", "client-a")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
