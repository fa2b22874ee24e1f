package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBook(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		title         string
		author        string
		publishedDate string
		genre         string
		wantErr       error
	}{
		{
			name:          "valid book",
			title:         "The Great Gatsby",
			author:        "F. Scott Fitzgerald",
			publishedDate: "1925-04-10",
			genre:         "Classic",
			wantErr:       nil,
		},
		{
			name:          "title too short",
			title:         "Go",
			author:        "Somebody",
			publishedDate: "2020-01-01",
			genre:         "Tech",
			wantErr:       ErrTitleTooShort,
		},
		{
			name:          "author too short",
			title:         "A Fine Title",
			author:        "Al",
			publishedDate: "2020-01-01",
			genre:         "Fiction",
			wantErr:       ErrAuthorTooShort,
		},
		{
			name:          "genre too short",
			title:         "A Fine Title",
			author:        "Somebody",
			publishedDate: "2020-01-01",
			genre:         "It",
			wantErr:       ErrGenreTooShort,
		},
		{
			name:          "missing published date",
			title:         "A Fine Title",
			author:        "Somebody",
			publishedDate: "",
			genre:         "Fiction",
			wantErr:       ErrEmptyPublishedDate,
		},
		{
			name:          "published date not ISO-8601",
			title:         "A Fine Title",
			author:        "Somebody",
			publishedDate: "10/04/1925",
			genre:         "Fiction",
			wantErr:       ErrInvalidPublishedFmt,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			book, err := NewBook(tt.title, tt.author, tt.publishedDate, tt.genre)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, book)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.title, book.Title)
			assert.NotZero(t, book.ID)
			assert.Nil(t, book.DeletedAt)
			assert.False(t, book.IsDeleted())
		})
	}
}

func TestBookIsDeleted(t *testing.T) {
	t.Parallel()

	book, err := NewBook("A Fine Title", "Somebody", "2020-01-01", "Fiction")
	require.NoError(t, err)
	assert.False(t, book.IsDeleted())

	now := time.Now().UTC()
	book.DeletedAt = &now
	assert.True(t, book.IsDeleted())
}

func TestParsePublishedDate(t *testing.T) {
	t.Parallel()

	parsed, err := ParsePublishedDate("1925-04-10")
	require.NoError(t, err)
	assert.Equal(t, 1925, parsed.Year())
	assert.Equal(t, time.April, parsed.Month())

	_, err = ParsePublishedDate("not-a-date")
	assert.ErrorIs(t, err, ErrInvalidPublishedFmt)
}
