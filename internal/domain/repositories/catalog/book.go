package catalog

import (
	"context"

	models "worldlib/internal/domain/models/catalog"
)

// BookRepository persists book rows and serves the public catalog queries.
type BookRepository interface {
	// Create inserts a book. Returns a domain.ConflictError when the
	// (author_id, title) pair already exists.
	Create(ctx context.Context, book *models.Book) error

	// GetByID retrieves a book owned by authorID.
	// Returns domain.ErrNotFound for missing or foreign rows alike.
	GetByID(ctx context.Context, id, authorID string) (*models.Book, error)

	// GetByIDOnly retrieves a book by id without ownership scoping.
	// Used by public read paths, which apply the visibility policy themselves.
	GetByIDOnly(ctx context.Context, id string) (*models.Book, error)

	// ListBySeries retrieves a series' books, oldest first.
	// With publicOnly set, private books are excluded.
	ListBySeries(ctx context.Context, seriesID string, publicOnly bool) ([]models.Book, error)

	// ListUngrouped retrieves an author's books with no series, oldest first.
	ListUngrouped(ctx context.Context, authorID string, publicOnly bool) ([]models.Book, error)

	// Update rewrites a book's mutable fields. The row is matched on
	// (id, author_id). Returns a domain.ConflictError on title collision.
	Update(ctx context.Context, book *models.Book) error

	// Delete removes a book matched on (id, author_id). Chapters go with it
	// via the ON DELETE CASCADE constraint.
	Delete(ctx context.Context, id, authorID string) error

	// ReleaseSeries re-parents every book of the series to series_id = NULL.
	// Runs inside the series-deletion transaction.
	ReleaseSeries(ctx context.Context, seriesID, authorID string) error

	// IncrementWordCount adjusts a book's denormalized word count by delta as
	// a relative update, so concurrent chapter edits commute.
	IncrementWordCount(ctx context.Context, bookID string, delta int) error

	// SearchPublic returns one page of public books matching the options,
	// joined with author and series display fields.
	SearchPublic(ctx context.Context, opts *models.SearchOptions) ([]models.BookListing, error)

	// CountPublic counts public books matching the query text.
	CountPublic(ctx context.Context, query string) (int, error)
}
