package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/harperlib/bookshelf-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// RegisteredUser is the subset of the user returned on registration.
type RegisteredUser struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterResponse defines the successful response for registration.
type RegisterResponse struct {
	Message string         `json:"message"`
	User    RegisteredUser `json:"user"`
}

// LoginResponse defines the successful response for login.
type LoginResponse struct {
	Token string `json:"token"`
}

// BookRequest defines the payload for book create and update endpoints.
// The schema middleware has already enforced the field rules by the time a
// handler decodes this.
type BookRequest struct {
	Title         string `json:"title"          validate:"required,min=3"`
	Author        string `json:"author"         validate:"required,min=3"`
	PublishedDate string `json:"published_date" validate:"required"`
	Genre         string `json:"genre"          validate:"required,min=3"`
}

// BookListResponse defines the paginated listing envelope.
type BookListResponse struct {
	TotalBooks  int            `json:"totalBooks"`
	TotalPages  int            `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
	Books       []*domain.Book `json:"books"`
}

// MessageResponse wraps a bare confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}
