// Package books implements the catalog operations over the book repository.
package books

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/harperlib/bookshelf-api/internal/domain"
	"github.com/harperlib/bookshelf-api/internal/platform/logger"
	"github.com/harperlib/bookshelf-api/internal/store"
)

// Defaults for listing when the client does not specify them.
const (
	DefaultSortField = "title"
	DefaultPageSize  = 5
	MaxPageSize      = 100
)

// Service implements the book catalog operations. Mutations that need a
// uniqueness or existence check run the check and the write inside one
// transaction, so concurrent writers cannot interleave between them.
type Service struct {
	books store.BookStore
	tx    store.TxManager
}

// NewService creates a book Service over the given repository and
// transaction manager.
func NewService(books store.BookStore, tx store.TxManager) *Service {
	return &Service{books: books, tx: tx}
}

// List returns one page of active books matching the filter, normalizing
// page, limit, and sort field to their defaults first.
func (s *Service) List(
	ctx context.Context,
	filter store.BookFilter,
	sort store.BookSort,
	page store.BookPage,
) (*store.BookListing, error) {
	if sort.Field == "" {
		sort.Field = DefaultSortField
	}
	if page.Page < 1 {
		page.Page = 1
	}
	if page.Limit < 1 {
		page.Limit = DefaultPageSize
	}
	if page.Limit > MaxPageSize {
		page.Limit = MaxPageSize
	}

	listing, err := s.books.FindAndCount(ctx, filter, sort, page)
	if err != nil {
		return nil, err
	}

	// The listing reports the normalized values so pagination metadata
	// always matches the rows that were actually fetched.
	listing.Page = page.Page
	listing.Limit = page.Limit
	return listing, nil
}

// GetByID returns an active book. Soft-deleted books are reported as
// store.ErrBookNotFound.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	return s.books.GetByID(ctx, id)
}

// Create inserts a new book. The duplicate-title check and the insert share
// one transaction; a concurrent insert with the same title either blocks on
// the check until the first commits or fails the unique constraint, so both
// can never succeed.
func (s *Service) Create(ctx context.Context, title, author, publishedDate, genre string) (*domain.Book, error) {
	book, err := domain.NewBook(title, author, publishedDate, genre)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		books := s.books.WithTx(tx)

		_, err := books.GetByTitle(ctx, title)
		if err == nil {
			return store.ErrTitleExists
		}
		if !errors.Is(err, store.ErrBookNotFound) {
			return err
		}

		return books.Create(ctx, book)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("book created", slog.String("book_id", book.ID.String()))
	return book, nil
}

// Update replaces the book's title, author, published date, and genre. The
// existence re-check and the write share one transaction.
func (s *Service) Update(ctx context.Context, id uuid.UUID, title, author, publishedDate, genre string) (*domain.Book, error) {
	published, err := domain.ParsePublishedDate(publishedDate)
	if err != nil {
		return nil, err
	}

	var updated *domain.Book
	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		books := s.books.WithTx(tx)

		book, err := books.GetByID(ctx, id)
		if err != nil {
			return err
		}

		book.Title = title
		book.Author = author
		book.PublishedDate = published
		book.Genre = genre
		if err := book.Validate(); err != nil {
			return err
		}

		if err := books.Update(ctx, book); err != nil {
			return err
		}

		updated = book
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("book updated", slog.String("book_id", id.String()))
	return updated, nil
}

// SoftDelete marks the book as deleted. A book that never existed yields
// store.ErrBookNotFound; one that is already soft-deleted yields
// domain.ErrBookAlreadyDeleted so callers can distinguish the two.
func (s *Service) SoftDelete(ctx context.Context, id uuid.UUID) error {
	book, err := s.books.GetByIDIncludingDeleted(ctx, id)
	if err != nil {
		return err
	}
	if book.IsDeleted() {
		return domain.ErrBookAlreadyDeleted
	}

	if err := s.books.SoftDelete(ctx, id); err != nil {
		return err
	}

	logger.FromContext(ctx).Info("book soft deleted", slog.String("book_id", id.String()))
	return nil
}

// Restore clears the book's soft-delete marker. A book that never existed
// yields store.ErrBookNotFound; an active one yields
// domain.ErrBookNotDeleted.
func (s *Service) Restore(ctx context.Context, id uuid.UUID) error {
	book, err := s.books.GetByIDIncludingDeleted(ctx, id)
	if err != nil {
		return err
	}
	if !book.IsDeleted() {
		return domain.ErrBookNotDeleted
	}

	if err := s.books.Restore(ctx, id); err != nil {
		return err
	}

	logger.FromContext(ctx).Info("book restored", slog.String("book_id", id.String()))
	return nil
}
