package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/harperlib/bookshelf-api/internal/api/shared"
	"github.com/harperlib/bookshelf-api/internal/platform/logger"
	"github.com/harperlib/bookshelf-api/internal/service/books"
	"github.com/harperlib/bookshelf-api/internal/store"
)

// BookHandler handles book catalog API requests.
type BookHandler struct {
	service *books.Service
}

// NewBookHandler creates a new BookHandler over the book service.
func NewBookHandler(service *books.Service) *BookHandler {
	return &BookHandler{service: service}
}

// List handles GET /api/books.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	query := r.URL.Query()

	filter := store.BookFilter{
		Title: query.Get("title"),
		Genre: query.Get("genre"),
	}
	sort := store.BookSort{
		Field:      query.Get("sortBy"),
		Descending: strings.EqualFold(query.Get("order"), "DESC"),
	}
	page := store.BookPage{
		Page:  queryInt(query.Get("page"), 1),
		Limit: queryInt(query.Get("limit"), books.DefaultPageSize),
	}

	log.Info("fetching books",
		slog.String("title", filter.Title),
		slog.String("genre", filter.Genre),
		slog.Int("page", page.Page),
		slog.Int("limit", page.Limit))

	listing, err := h.service.List(r.Context(), filter, sort, page)
	if err != nil {
		log.Error("failed to list books", "error", err)
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	// The listing carries the normalized page and limit the query ran with,
	// so the metadata always matches the rows.
	totalPages := (listing.Total + listing.Limit - 1) / listing.Limit

	shared.RespondWithJSON(w, r, http.StatusOK, BookListResponse{
		TotalBooks:  listing.Total,
		TotalPages:  totalPages,
		CurrentPage: listing.Page,
		Books:       listing.Books,
	})
}

// GetByID handles GET /api/books/{id}.
func (h *BookHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	book, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err, "failed to fetch book", id)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, book)
}

// Create handles POST /api/books.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req BookRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	log.Info("creating book", slog.String("title", req.Title))

	book, err := h.service.Create(r.Context(), req.Title, req.Author, req.PublishedDate, req.Genre)
	if err != nil {
		if errors.Is(err, store.ErrTitleExists) {
			log.Warn("book already exists", slog.String("title", req.Title))
			shared.RespondWithDetailedError(w, r, http.StatusConflict,
				"Conflict", "Book already exists")
			return
		}
		h.respondError(w, r, err, "failed to create book", uuid.Nil)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, book)
}

// Update handles PUT /api/books/{id}.
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req BookRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	logger.FromContext(r.Context()).Info("updating book", slog.String("book_id", id.String()))

	book, err := h.service.Update(r.Context(), id, req.Title, req.Author, req.PublishedDate, req.Genre)
	if err != nil {
		h.respondError(w, r, err, "failed to update book", id)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, book)
}

// SoftDelete handles DELETE /api/books/{id}.
func (h *BookHandler) SoftDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	logger.FromContext(r.Context()).Info("deleting book", slog.String("book_id", id.String()))

	if err := h.service.SoftDelete(r.Context(), id); err != nil {
		h.respondError(w, r, err, "failed to soft delete book", id)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Book soft deleted"})
}

// Restore handles POST /api/books/{id}/restore.
func (h *BookHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	logger.FromContext(r.Context()).Info("restoring book", slog.String("book_id", id.String()))

	if err := h.service.Restore(r.Context(), id); err != nil {
		h.respondError(w, r, err, "failed to restore book", id)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Book restored successfully"})
}

// pathID extracts and parses the {id} route parameter, writing a 400
// response on failure.
func (h *BookHandler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid book ID")
		return uuid.Nil, false
	}
	return id, true
}

// respondError logs the error and writes the mapped status and safe message.
func (h *BookHandler) respondError(w http.ResponseWriter, r *http.Request, err error, logMsg string, id uuid.UUID) {
	log := logger.FromContext(r.Context())

	status := MapErrorToStatusCode(err)
	if status >= http.StatusInternalServerError {
		log.Error(logMsg, "error", err, "book_id", id)
	} else {
		log.Warn(logMsg, "error", err, "book_id", id)
	}

	shared.RespondWithError(w, r, status, GetSafeErrorMessage(err))
}

// queryInt parses a positive integer query value, falling back to def.
func queryInt(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}
