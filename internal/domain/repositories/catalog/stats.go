package catalog

import (
	"context"

	models "worldlib/internal/domain/models/catalog"
)

// StatsRepository aggregates per-author counters for profile pages.
type StatsRepository interface {
	// AuthorStats counts an author's books, chapters, total words, bookmarks
	// on their books and reviews on their chapters.
	AuthorStats(ctx context.Context, authorID string) (*models.AuthorStats, error)
}
