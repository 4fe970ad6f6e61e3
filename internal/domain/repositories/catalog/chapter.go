package catalog

import (
	"context"

	models "worldlib/internal/domain/models/catalog"
)

// ChapterRepository persists chapter rows.
type ChapterRepository interface {
	// Create inserts a chapter.
	Create(ctx context.Context, chapter *models.Chapter) error

	// GetByID retrieves a chapter owned by authorID.
	// Returns domain.ErrNotFound for missing or foreign rows alike.
	GetByID(ctx context.Context, id, authorID string) (*models.Chapter, error)

	// GetByIDOnly retrieves a chapter by id without ownership scoping.
	// Used by public read paths, which apply the visibility policy themselves.
	GetByIDOnly(ctx context.Context, id string) (*models.Chapter, error)

	// ListByBook retrieves a book's chapters in reading order (sort_order asc).
	ListByBook(ctx context.Context, bookID string) ([]models.Chapter, error)

	// MaxSortOrder returns the highest sort order among a book's chapters,
	// or zero when the book has none.
	MaxSortOrder(ctx context.Context, bookID string) (int, error)

	// Update rewrites a chapter's mutable fields. The row is matched on
	// (id, author_id).
	Update(ctx context.Context, chapter *models.Chapter) error

	// Delete removes a chapter matched on (id, author_id).
	Delete(ctx context.Context, id, authorID string) error
}
