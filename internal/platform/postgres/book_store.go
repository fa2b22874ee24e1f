package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/harperlib/bookshelf-api/internal/domain"
	"github.com/harperlib/bookshelf-api/internal/platform/logger"
	"github.com/harperlib/bookshelf-api/internal/store"
)

// sortColumns whitelists the columns a listing may be ordered by. ORDER BY
// cannot be parameterized, so anything outside this map falls back to title.
var sortColumns = map[string]string{
	"title":          "title",
	"author":         "author",
	"published_date": "published_date",
	"genre":          "genre",
	"created_at":     "created_at",
}

const bookColumns = "id, title, author, published_date, genre, created_at, updated_at, deleted_at"

// BookStore implements store.BookStore using a PostgreSQL database.
type BookStore struct {
	db store.DBTX
}

// NewBookStore creates a PostgreSQL implementation of store.BookStore.
func NewBookStore(db store.DBTX) *BookStore {
	return &BookStore{db: db}
}

var _ store.BookStore = (*BookStore)(nil)

// Create implements store.BookStore.Create.
func (s *BookStore) Create(ctx context.Context, book *domain.Book) error {
	log := logger.FromContext(ctx)

	query := `
		INSERT INTO books (id, title, author, published_date, genre, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.db.ExecContext(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.PublishedDate,
		book.Genre,
		book.CreatedAt,
		book.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: %v", store.ErrTitleExists, err)
		}
		log.Error("failed to insert book",
			"book_id", book.ID,
			"error", err)
		return MapError(err)
	}

	return nil
}

// GetByID implements store.BookStore.GetByID. Soft-deleted books are
// treated as absent.
func (s *BookStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM books
		WHERE id = $1 AND deleted_at IS NULL
	`, bookColumns)
	return s.scanBook(s.db.QueryRowContext(ctx, query, id))
}

// GetByIDIncludingDeleted implements store.BookStore.GetByIDIncludingDeleted.
func (s *BookStore) GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM books
		WHERE id = $1
	`, bookColumns)
	return s.scanBook(s.db.QueryRowContext(ctx, query, id))
}

// GetByTitle implements store.BookStore.GetByTitle.
func (s *BookStore) GetByTitle(ctx context.Context, title string) (*domain.Book, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM books
		WHERE title = $1 AND deleted_at IS NULL
	`, bookColumns)
	return s.scanBook(s.db.QueryRowContext(ctx, query, title))
}

// FindAndCount implements store.BookStore.FindAndCount. It runs a count
// query and a page query under the same filter so the returned total always
// matches the rows.
func (s *BookStore) FindAndCount(
	ctx context.Context,
	filter store.BookFilter,
	sort store.BookSort,
	page store.BookPage,
) (*store.BookListing, error) {
	log := logger.FromContext(ctx)

	where := []string{"deleted_at IS NULL"}
	args := []any{}

	if filter.Title != "" {
		args = append(args, "%"+filter.Title+"%")
		where = append(where, fmt.Sprintf("title ILIKE $%d", len(args)))
	}
	if filter.Genre != "" {
		args = append(args, filter.Genre)
		where = append(where, fmt.Sprintf("genre = $%d", len(args)))
	}
	whereClause := strings.Join(where, " AND ")

	countQuery := fmt.Sprintf("SELECT count(*) FROM books WHERE %s", whereClause)

	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count books", "error", err)
		return nil, MapError(err)
	}

	column, ok := sortColumns[sort.Field]
	if !ok {
		column = "title"
	}
	direction := "ASC"
	if sort.Descending {
		direction = "DESC"
	}

	offset := (page.Page - 1) * page.Limit
	args = append(args, page.Limit, offset)
	pageQuery := fmt.Sprintf(
		"SELECT %s FROM books WHERE %s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		bookColumns, whereClause, column, direction, len(args)-1, len(args),
	)

	rows, err := s.db.QueryContext(ctx, pageQuery, args...)
	if err != nil {
		log.Error("failed to query books", "error", err)
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", "error", closeErr)
		}
	}()

	books := []*domain.Book{}
	for rows.Next() {
		var book domain.Book
		var deletedAt sql.NullTime
		if err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Author,
			&book.PublishedDate,
			&book.Genre,
			&book.CreatedAt,
			&book.UpdatedAt,
			&deletedAt,
		); err != nil {
			return nil, MapError(err)
		}
		if deletedAt.Valid {
			t := deletedAt.Time
			book.DeletedAt = &t
		}
		books = append(books, &book)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return &store.BookListing{Books: books, Total: total}, nil
}

// Update implements store.BookStore.Update. It replaces the four mutable
// fields and refreshes updated_at; soft-deleted books are not updatable.
func (s *BookStore) Update(ctx context.Context, book *domain.Book) error {
	log := logger.FromContext(ctx)

	query := `
		UPDATE books
		SET title = $1, author = $2, published_date = $3, genre = $4, updated_at = $5
		WHERE id = $6 AND deleted_at IS NULL
	`

	book.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, query,
		book.Title,
		book.Author,
		book.PublishedDate,
		book.Genre,
		book.UpdatedAt,
		book.ID,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: %v", store.ErrTitleExists, err)
		}
		log.Error("failed to update book",
			"book_id", book.ID,
			"error", err)
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrBookNotFound)
}

// SoftDelete implements store.BookStore.SoftDelete.
func (s *BookStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE books
		SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND deleted_at IS NULL
	`
	result, err := s.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrBookNotFound)
}

// Restore implements store.BookStore.Restore.
func (s *BookStore) Restore(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE books
		SET deleted_at = NULL, updated_at = $1
		WHERE id = $2 AND deleted_at IS NOT NULL
	`
	result, err := s.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrBookNotFound)
}

// WithTx implements store.BookStore.WithTx.
func (s *BookStore) WithTx(tx *sql.Tx) store.BookStore {
	return &BookStore{db: tx}
}

func (s *BookStore) scanBook(row *sql.Row) (*domain.Book, error) {
	var book domain.Book
	var deletedAt sql.NullTime
	err := row.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.PublishedDate,
		&book.Genre,
		&book.CreatedAt,
		&book.UpdatedAt,
		&deletedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrBookNotFound
		}
		return nil, MapError(err)
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		book.DeletedAt = &t
	}
	return &book, nil
}
