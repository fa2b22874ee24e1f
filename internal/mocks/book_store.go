package mocks

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/harperlib/bookshelf-api/internal/domain"
	"github.com/harperlib/bookshelf-api/internal/store"
)

// MockBookStore implements store.BookStore for testing. The default
// implementation keeps books in a map and honors the soft-delete marker the
// way the real store does.
type MockBookStore struct {
	CreateFn       func(ctx context.Context, book *domain.Book) error
	GetByIDFn      func(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	FindAndCountFn func(ctx context.Context, filter store.BookFilter, sort store.BookSort, page store.BookPage) (*store.BookListing, error)
	UpdateFn       func(ctx context.Context, book *domain.Book) error

	Books map[uuid.UUID]*domain.Book
}

// NewMockBookStore creates a mock store with initialized defaults.
func NewMockBookStore() *MockBookStore {
	return &MockBookStore{
		Books: make(map[uuid.UUID]*domain.Book),
	}
}

// Create implements the BookStore interface.
func (m *MockBookStore) Create(ctx context.Context, book *domain.Book) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, book)
	}

	for _, existing := range m.Books {
		if existing.Title == book.Title && !existing.IsDeleted() {
			return store.ErrTitleExists
		}
	}
	m.Books[book.ID] = book
	return nil
}

// GetByID implements the BookStore interface.
func (m *MockBookStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	book, ok := m.Books[id]
	if !ok || book.IsDeleted() {
		return nil, store.ErrBookNotFound
	}
	return book, nil
}

// GetByIDIncludingDeleted implements the BookStore interface.
func (m *MockBookStore) GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	book, ok := m.Books[id]
	if !ok {
		return nil, store.ErrBookNotFound
	}
	return book, nil
}

// GetByTitle implements the BookStore interface.
func (m *MockBookStore) GetByTitle(ctx context.Context, title string) (*domain.Book, error) {
	for _, book := range m.Books {
		if book.Title == title && !book.IsDeleted() {
			return book, nil
		}
	}
	return nil, store.ErrBookNotFound
}

// FindAndCount implements the BookStore interface.
func (m *MockBookStore) FindAndCount(
	ctx context.Context,
	filter store.BookFilter,
	bookSort store.BookSort,
	page store.BookPage,
) (*store.BookListing, error) {
	if m.FindAndCountFn != nil {
		return m.FindAndCountFn(ctx, filter, bookSort, page)
	}

	matched := []*domain.Book{}
	for _, book := range m.Books {
		if book.IsDeleted() {
			continue
		}
		if filter.Title != "" &&
			!strings.Contains(strings.ToLower(book.Title), strings.ToLower(filter.Title)) {
			continue
		}
		if filter.Genre != "" && book.Genre != filter.Genre {
			continue
		}
		matched = append(matched, book)
	}

	sort.Slice(matched, func(i, j int) bool {
		less := matched[i].Title < matched[j].Title
		if bookSort.Descending {
			return !less
		}
		return less
	})

	total := len(matched)
	start := (page.Page - 1) * page.Limit
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}

	return &store.BookListing{Books: matched[start:end], Total: total}, nil
}

// Update implements the BookStore interface.
func (m *MockBookStore) Update(ctx context.Context, book *domain.Book) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, book)
	}

	existing, ok := m.Books[book.ID]
	if !ok || existing.IsDeleted() {
		return store.ErrBookNotFound
	}
	m.Books[book.ID] = book
	return nil
}

// SoftDelete implements the BookStore interface.
func (m *MockBookStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	book, ok := m.Books[id]
	if !ok || book.IsDeleted() {
		return store.ErrBookNotFound
	}
	now := time.Now().UTC()
	book.DeletedAt = &now
	return nil
}

// Restore implements the BookStore interface.
func (m *MockBookStore) Restore(ctx context.Context, id uuid.UUID) error {
	book, ok := m.Books[id]
	if !ok || !book.IsDeleted() {
		return store.ErrBookNotFound
	}
	book.DeletedAt = nil
	return nil
}

// WithTx implements the BookStore interface; the mock ignores transactions.
func (m *MockBookStore) WithTx(tx *sql.Tx) store.BookStore {
	return m
}
