package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Book field rule violations.
var (
	ErrEmptyBookID         = errors.New("book ID cannot be empty")
	ErrTitleTooShort       = errors.New("title must be at least 3 characters long")
	ErrAuthorTooShort      = errors.New("author must be at least 3 characters long")
	ErrGenreTooShort       = errors.New("genre must be at least 3 characters long")
	ErrEmptyPublishedDate  = errors.New("published date is required")
	ErrInvalidPublishedFmt = errors.New("published date must be an ISO-8601 date")
)

// publishedDateLayout is the wire format for a book's publication date.
const publishedDateLayout = "2006-01-02"

// Book represents a catalog entry. A non-nil DeletedAt marks the book as
// soft-deleted: it stays in storage but is excluded from normal reads until
// restored.
type Book struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Author        string     `json:"author"`
	PublishedDate time.Time  `json:"published_date"`
	Genre         string     `json:"genre"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
}

// NewBook creates an active Book from the given fields, generating its ID
// and timestamps. The published date must be in ISO-8601 date form.
func NewBook(title, author, publishedDate, genre string) (*Book, error) {
	published, err := ParsePublishedDate(publishedDate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	book := &Book{
		ID:            uuid.New(),
		Title:         title,
		Author:        author,
		PublishedDate: published,
		Genre:         genre,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := book.Validate(); err != nil {
		return nil, err
	}

	return book, nil
}

// ParsePublishedDate parses an ISO-8601 calendar date (YYYY-MM-DD).
func ParsePublishedDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, ErrEmptyPublishedDate
	}
	t, err := time.Parse(publishedDateLayout, value)
	if err != nil {
		return time.Time{}, ErrInvalidPublishedFmt
	}
	return t, nil
}

// Validate checks the book's field rules, returning the first violation.
func (b *Book) Validate() error {
	if b.ID == uuid.Nil {
		return ErrEmptyBookID
	}
	if len(b.Title) < 3 {
		return ErrTitleTooShort
	}
	if len(b.Author) < 3 {
		return ErrAuthorTooShort
	}
	if len(b.Genre) < 3 {
		return ErrGenreTooShort
	}
	if b.PublishedDate.IsZero() {
		return ErrEmptyPublishedDate
	}
	return nil
}

// IsDeleted reports whether the book is currently soft-deleted.
func (b *Book) IsDeleted() bool {
	return b.DeletedAt != nil
}
