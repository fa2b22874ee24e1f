package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperlib/bookshelf-api/internal/domain"
	"github.com/harperlib/bookshelf-api/internal/mocks"
	"github.com/harperlib/bookshelf-api/internal/service/books"
	"github.com/harperlib/bookshelf-api/internal/store"
)

// bookTestServer mounts the handler on a real chi router so {id} route
// parameters resolve the way they do in production.
func bookTestServer() (*chi.Mux, *books.Service) {
	service := books.NewService(mocks.NewMockBookStore(), &mocks.MockTxManager{})
	handler := NewBookHandler(service)

	r := chi.NewRouter()
	r.Route("/api/books", func(r chi.Router) {
		r.Get("/", handler.List)
		r.Post("/", handler.Create)
		r.Get("/{id}", handler.GetByID)
		r.Put("/{id}", handler.Update)
		r.Delete("/{id}", handler.SoftDelete)
		r.Post("/{id}/restore", handler.Restore)
	})
	return r, service
}

func doJSON(t *testing.T, router http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createBook(t *testing.T, router http.Handler, title string) *domain.Book {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/books", BookRequest{
		Title:         title,
		Author:        "Somebody",
		PublishedDate: "2020-01-01",
		Genre:         "Fiction",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var book domain.Book
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &book))
	return &book
}

func TestCreateBookEndpoint(t *testing.T) {
	t.Parallel()

	router, _ := bookTestServer()
	book := createBook(t, router, "The Great Gatsby")
	assert.Equal(t, "The Great Gatsby", book.Title)
	assert.NotZero(t, book.ID)
}

func TestCreateBookConflict(t *testing.T) {
	t.Parallel()

	router, _ := bookTestServer()
	createBook(t, router, "The Great Gatsby")

	rec := doJSON(t, router, http.MethodPost, "/api/books", BookRequest{
		Title:         "The Great Gatsby",
		Author:        "Another Author",
		PublishedDate: "2021-01-01",
		Genre:         "Drama",
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	resp := decodeError(t, rec)
	assert.Equal(t, "Conflict", resp.Error)
	require.NotNil(t, resp.Details)
	assert.Equal(t, http.StatusConflict, resp.Details.Code)
	assert.Equal(t, "Book already exists", resp.Details.Details)
}

func TestGetBookEndpoint(t *testing.T) {
	t.Parallel()

	router, _ := bookTestServer()
	book := createBook(t, router, "A Fine Title")

	rec := doJSON(t, router, http.MethodGet, "/api/books/"+book.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched domain.Book
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, book.ID, fetched.ID)

	rec = doJSON(t, router, http.MethodGet, "/api/books/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Book not found", decodeError(t, rec).Error)
}

func TestGetBookInvalidID(t *testing.T) {
	t.Parallel()

	router, _ := bookTestServer()

	rec := doJSON(t, router, http.MethodGet, "/api/books/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid book ID", decodeError(t, rec).Error)
}

func TestUpdateBookEndpoint(t *testing.T) {
	t.Parallel()

	router, _ := bookTestServer()
	book := createBook(t, router, "Old Title")

	rec := doJSON(t, router, http.MethodPut, "/api/books/"+book.ID.String(), BookRequest{
		Title:         "New Title",
		Author:        "New Author",
		PublishedDate: "2021-06-15",
		Genre:         "Mystery",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated domain.Book
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, "Mystery", updated.Genre)
}

func TestUpdateBookNotFoundEndpoint(t *testing.T) {
	t.Parallel()

	router, _ := bookTestServer()

	rec := doJSON(t, router, http.MethodPut, "/api/books/"+uuid.NewString(), BookRequest{
		Title:         "New Title",
		Author:        "New Author",
		PublishedDate: "2021-06-15",
		Genre:         "Mystery",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Book not found", decodeError(t, rec).Error)
}

func TestSoftDeleteAndRestoreEndpoints(t *testing.T) {
	t.Parallel()

	router, _ := bookTestServer()
	book := createBook(t, router, "A Fine Title")
	path := "/api/books/" + book.ID.String()

	rec := doJSON(t, router, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var msg MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, "Book soft deleted", msg.Message)

	// Deleting again is a conflict.
	rec = doJSON(t, router, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Book is already deleted", decodeError(t, rec).Error)

	// The deleted book is invisible to GET.
	rec = doJSON(t, router, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodPost, path+"/restore", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, "Book restored successfully", msg.Message)

	// Restoring an active book is a bad request.
	rec = doJSON(t, router, http.MethodPost, path+"/restore", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Book is not deleted", decodeError(t, rec).Error)
}

func TestListBooksEndpoint(t *testing.T) {
	t.Parallel()

	router, _ := bookTestServer()
	for _, title := range []string{
		"Alpha Book", "Bravo Book", "Charlie Book",
		"Delta Book", "Echo Book", "Foxtrot Book", "Golf Book",
	} {
		createBook(t, router, title)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/books", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp BookListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 7, resp.TotalBooks)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Equal(t, 1, resp.CurrentPage)
	require.Len(t, resp.Books, 5)
	assert.Equal(t, "Alpha Book", resp.Books[0].Title)

	rec = doJSON(t, router, http.MethodGet, "/api/books?page=2&limit=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.CurrentPage)
	assert.Len(t, resp.Books, 2)
}

func TestListBooksOversizedLimit(t *testing.T) {
	t.Parallel()

	// 300 matches served at the clamped limit of 100 span 3 pages; the
	// metadata must reflect the clamped limit, not the requested one.
	bookStore := mocks.NewMockBookStore()
	var gotPage store.BookPage
	bookStore.FindAndCountFn = func(ctx context.Context, filter store.BookFilter, sort store.BookSort, page store.BookPage) (*store.BookListing, error) {
		gotPage = page
		return &store.BookListing{Books: []*domain.Book{}, Total: 300}, nil
	}
	handler := NewBookHandler(books.NewService(bookStore, &mocks.MockTxManager{}))

	r := chi.NewRouter()
	r.Get("/api/books", handler.List)

	rec := doJSON(t, r, http.MethodGet, "/api/books?limit=1000", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, books.MaxPageSize, gotPage.Limit)

	var resp BookListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 300, resp.TotalBooks)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Equal(t, 1, resp.CurrentPage)
}

func TestListBooksFilterAndOrder(t *testing.T) {
	t.Parallel()

	router, _ := bookTestServer()
	createBook(t, router, "Alpha Book")
	createBook(t, router, "Bravo Book")

	rec := doJSON(t, router, http.MethodGet, "/api/books?sortBy=title&order=DESC", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp BookListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Books, 2)
	assert.Equal(t, "Bravo Book", resp.Books[0].Title)
}
