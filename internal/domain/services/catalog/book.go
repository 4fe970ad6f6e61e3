package catalog

import (
	"context"

	models "worldlib/internal/domain/models/catalog"
)

// BookService handles book business logic.
type BookService interface {
	// CreateBook creates a book for the acting author. A series id the author
	// does not own is silently dropped (the book lands in Ungrouped).
	CreateBook(ctx context.Context, req *CreateBookRequest) (*models.Book, error)

	// GetBook retrieves a book if the viewer may see it, together with the
	// chapters visible to that viewer.
	GetBook(ctx context.Context, bookID, viewerID string) (*models.Book, []models.Chapter, error)

	// UpdateBook updates a book. Same lenient series policy as CreateBook.
	UpdateBook(ctx context.Context, bookID, userID string, req *UpdateBookRequest) (*models.Book, error)

	// DeleteBook deletes a book and, through the schema cascade, its chapters.
	DeleteBook(ctx context.Context, bookID, userID string) error
}

// CreateBookRequest represents a book creation request.
type CreateBookRequest struct {
	UserID      string  `json:"-"` // Set by handler from auth context
	Title       string  `json:"title"`
	Description string  `json:"description"`
	IsPublic    bool    `json:"is_public"`
	SeriesID    *string `json:"series_id,omitempty"`
	CoverImage  *string `json:"cover_image,omitempty"`
}

// UpdateBookRequest represents a book update request.
type UpdateBookRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	IsPublic    bool    `json:"is_public"`
	SeriesID    *string `json:"series_id,omitempty"`
	CoverImage  *string `json:"cover_image,omitempty"`
}
