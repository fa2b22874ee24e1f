package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/harperlib/bookshelf-api/internal/domain"
)

// BookFilter narrows a listing. Title is a case-insensitive substring
// match; Genre is an exact match. Empty fields are ignored.
type BookFilter struct {
	Title string
	Genre string
}

// BookSort orders a listing. Field must be one of the sortable columns;
// Descending flips the default ascending order.
type BookSort struct {
	Field      string
	Descending bool
}

// BookPage selects one page of a listing. Page is 1-based.
type BookPage struct {
	Page  int
	Limit int
}

// BookListing is one page of books plus the total count across all pages.
// Page and Limit carry the normalized values the query actually ran with,
// so callers derive pagination metadata from them rather than from the raw
// request.
type BookListing struct {
	Books []*domain.Book
	Total int
	Page  int
	Limit int
}

// BookStore defines the interface for book data persistence.
// Reads exclude soft-deleted books unless stated otherwise.
type BookStore interface {
	// Create inserts a new book.
	// Returns ErrTitleExists if a book with the same title exists.
	Create(ctx context.Context, book *domain.Book) error

	// GetByID retrieves an active book by ID.
	// Returns ErrBookNotFound if the book is absent or soft-deleted.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error)

	// GetByIDIncludingDeleted retrieves a book by ID regardless of its
	// soft-delete marker. Returns ErrBookNotFound only if no row exists.
	GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*domain.Book, error)

	// GetByTitle retrieves an active book by exact title.
	// Returns ErrBookNotFound if no active book carries the title.
	GetByTitle(ctx context.Context, title string) (*domain.Book, error)

	// FindAndCount returns one page of active books matching the filter,
	// ordered by the sort, along with the total match count.
	FindAndCount(ctx context.Context, filter BookFilter, sort BookSort, page BookPage) (*BookListing, error)

	// Update replaces the book's title, author, published date, and genre.
	// Returns ErrBookNotFound if the book is absent or soft-deleted,
	// ErrTitleExists if the new title collides with another book.
	Update(ctx context.Context, book *domain.Book) error

	// SoftDelete sets the book's soft-delete marker.
	// Returns ErrBookNotFound if no active book has the ID.
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// Restore clears the book's soft-delete marker.
	// Returns ErrBookNotFound if no soft-deleted book has the ID.
	Restore(ctx context.Context, id uuid.UUID) error

	// WithTx returns a BookStore bound to the provided transaction so the
	// uniqueness check and mutation of a create/update share one transaction.
	WithTx(tx *sql.Tx) BookStore
}
