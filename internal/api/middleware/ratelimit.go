package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/harperlib/bookshelf-api/internal/api/shared"
	"github.com/harperlib/bookshelf-api/internal/platform/logger"
	"github.com/harperlib/bookshelf-api/internal/ratelimit"
)

// rateLimitMessage is the fixed body every throttled request receives.
const rateLimitMessage = "Too many requests from this IP, please try again later."

// RateLimiter rejects requests once a client exceeds MaxRequests within a
// fixed Window. Clients are keyed by IP; KeyFunc can override that for
// tests that share one connection.
type RateLimiter struct {
	store       ratelimit.CounterStore
	window      time.Duration
	maxRequests int64
	keyFunc     func(r *http.Request) string
}

// RateLimiterOption customizes a RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithKeyFunc overrides how the client key is derived from a request.
func WithKeyFunc(fn func(r *http.Request) string) RateLimiterOption {
	return func(l *RateLimiter) {
		l.keyFunc = fn
	}
}

// NewRateLimiter creates a RateLimiter over the given counter store.
func NewRateLimiter(store ratelimit.CounterStore, window time.Duration, maxRequests int, opts ...RateLimiterOption) *RateLimiter {
	l := &RateLimiter{
		store:       store,
		window:      window,
		maxRequests: int64(maxRequests),
		keyFunc:     clientIP,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Limit is the middleware. Every request past the threshold in the current
// window gets 429 with the fixed message until the window resets.
func (l *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		key := l.keyFunc(r)

		count, err := l.store.Increment(r.Context(), key, l.window)
		if err != nil {
			// A broken counter store must not take the API down.
			log.Error("rate limit counter unavailable", slog.String("error", err.Error()))
			next.ServeHTTP(w, r)
			return
		}

		if count > l.maxRequests {
			log.Warn("rate limit exceeded",
				slog.String("client", key),
				slog.String("path", r.URL.Path),
				slog.Int64("count", count))
			shared.RespondWithError(w, r, http.StatusTooManyRequests, rateLimitMessage)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP strips the port from the request's remote address.
func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
