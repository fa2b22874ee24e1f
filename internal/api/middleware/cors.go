package middleware

import (
	"log/slog"
	"net/http"

	"github.com/harperlib/bookshelf-api/internal/api/shared"
	"github.com/harperlib/bookshelf-api/internal/platform/logger"
)

// CORS enforces a fixed origin allow-list. Allowed origins (and requests
// with no Origin header, e.g. curl) get the usual CORS headers; every other
// origin is rejected with 403 rather than silently stripped headers.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if origin != "" && !allowed[origin] {
				logger.FromContext(r.Context()).Warn("CORS blocked: unauthorized origin",
					slog.String("origin", origin))
				shared.RespondWithError(w, r, http.StatusForbidden, "CORS not allowed")
				return
			}

			if origin == "" && len(allowedOrigins) > 0 {
				origin = allowedOrigins[0]
			}
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
