package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"

	"github.com/harperlib/bookshelf-api/internal/api/shared"
	"github.com/harperlib/bookshelf-api/internal/domain"
	"github.com/harperlib/bookshelf-api/internal/platform/logger"
)

// injectionPattern matches SQL keywords and the metacharacters an injection
// payload leans on. Case-insensitive; keywords are whole-word so titles like
// "The Selection" pass.
var injectionPattern = regexp.MustCompile(
	`(?i)\b(SELECT|INSERT|DELETE|UPDATE|DROP|UNION|WHERE|OR|AND)\b|--|/\*|\*/|[;*=()]`,
)

// scriptTagPattern matches script tags and inline event handlers; anything
// the sanitizer would strip from a title marks the request as an XSS attempt.
var scriptTagPattern = regexp.MustCompile(
	`(?i)<\s*/?\s*script[^>]*>|javascript\s*:|on\w+\s*=`,
)

// GuardInjection rejects any request whose query parameters, string body
// fields, or route parameters match the injection pattern, with a distinct
// message per location. The body is restored for downstream handlers.
func GuardInjection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		for param, values := range r.URL.Query() {
			for _, value := range values {
				if injectionPattern.MatchString(value) {
					log.Warn("potential SQL injection detected in query parameters",
						slog.String("param", param))
					shared.RespondWithError(w, r, http.StatusBadRequest,
						"Invalid input detected in query parameters")
					return
				}
			}
		}

		if r.Body != nil && r.Body != http.NoBody {
			body, err := io.ReadAll(r.Body)
			if err != nil {
				shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			var fields map[string]any
			if len(body) > 0 && json.Unmarshal(body, &fields) == nil {
				for key, value := range fields {
					str, ok := value.(string)
					if ok && injectionPattern.MatchString(str) {
						log.Warn("potential SQL injection detected in request body",
							slog.String("field", key))
						shared.RespondWithError(w, r, http.StatusBadRequest,
							"Invalid input detected in request body")
						return
					}
				}
			}
		}

		if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
			for i, value := range routeCtx.URLParams.Values {
				if injectionPattern.MatchString(value) {
					log.Warn("potential SQL injection detected in route parameters",
						slog.String("param", routeCtx.URLParams.Keys[i]))
					shared.RespondWithError(w, r, http.StatusBadRequest,
						"Invalid input detected in route parameters")
					return
				}
			}
		}

		next.ServeHTTP(w, r)
	})
}

// bookPayload mirrors the write-route body for schema validation.
type bookPayload struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	PublishedDate string `json:"published_date"`
	Genre         string `json:"genre"`
}

// ValidateBook enforces the book write schema before the handler runs:
// title/author/genre at least 3 characters, published_date a valid ISO-8601
// date, all four required. The first failing rule's message is returned
// verbatim. A title the sanitizer would change is rejected as an XSS
// attempt. The body is restored for the handler.
func ValidateBook(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		body, err := io.ReadAll(r.Body)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		var payload bookPayload
		if err := json.Unmarshal(body, &payload); err != nil {
			shared.RespondWithDetailedError(w, r, http.StatusBadRequest,
				"Validation Error", "request body must be a JSON object")
			return
		}

		if msg, ok := firstSchemaViolation(payload); ok {
			log.Warn("validation error in book details", slog.String("details", msg))
			shared.RespondWithDetailedError(w, r, http.StatusBadRequest, "Validation Error", msg)
			return
		}

		if scriptTagPattern.MatchString(payload.Title) {
			log.Warn("potential XSS detected in title")
			shared.RespondWithDetailedError(w, r, http.StatusBadRequest,
				"Invalid input detected", "XSS attempt blocked")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// firstSchemaViolation returns the message of the first failing schema rule,
// checking fields in declaration order: title, author, published date, genre.
func firstSchemaViolation(p bookPayload) (string, bool) {
	switch {
	case p.Title == "":
		return "title is required", true
	case len(p.Title) < 3:
		return domain.ErrTitleTooShort.Error(), true
	case p.Author == "":
		return "author is required", true
	case len(p.Author) < 3:
		return domain.ErrAuthorTooShort.Error(), true
	case p.PublishedDate == "":
		return domain.ErrEmptyPublishedDate.Error(), true
	}
	if _, err := domain.ParsePublishedDate(p.PublishedDate); err != nil {
		return domain.ErrInvalidPublishedFmt.Error(), true
	}
	switch {
	case p.Genre == "":
		return "genre is required", true
	case len(p.Genre) < 3:
		return domain.ErrGenreTooShort.Error(), true
	}
	return "", false
}
