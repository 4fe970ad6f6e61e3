package catalog

import (
	"context"

	models "worldlib/internal/domain/models/catalog"
)

// SeriesRepository persists series rows. All single-row lookups are scoped by
// (id, author_id): a missing row and a foreign row are indistinguishable to
// callers, which is what keeps existence probing impossible.
type SeriesRepository interface {
	// Create inserts a series. Returns a domain.ConflictError when the
	// (author_id, name) pair already exists.
	Create(ctx context.Context, series *models.Series) error

	// GetByID retrieves a series owned by authorID.
	// Returns domain.ErrNotFound for missing or foreign rows alike.
	GetByID(ctx context.Context, id, authorID string) (*models.Series, error)

	// ListByAuthor retrieves an author's series, newest first.
	ListByAuthor(ctx context.Context, authorID string) ([]models.Series, error)

	// Update renames a series. The row is matched on (id, author_id).
	// Returns a domain.ConflictError when the new name collides.
	Update(ctx context.Context, series *models.Series) error

	// Delete removes a series row matched on (id, author_id).
	Delete(ctx context.Context, id, authorID string) error
}
