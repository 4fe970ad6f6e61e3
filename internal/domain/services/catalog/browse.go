package catalog

import (
	"context"

	models "worldlib/internal/domain/models/catalog"
)

// BrowseService serves the public catalog and author profile pages.
type BrowseService interface {
	// ListPublicBooks returns one page of public books. Query text matches
	// title, author display name or series name, case-insensitively.
	ListPublicBooks(ctx context.Context, opts *models.SearchOptions) ([]models.BookListing, error)

	// CountPublicBookPages returns the number of listing pages for the query.
	CountPublicBookPages(ctx context.Context, query string) (int, error)

	// AuthorSeries resolves a profile username and returns the author's
	// series with books visible to the viewer, Ungrouped bucket last.
	AuthorSeries(ctx context.Context, username, viewerID string) ([]models.SeriesWithBooks, error)

	// AuthorStats resolves a profile username and returns whole-catalog
	// counters for that author.
	AuthorStats(ctx context.Context, username string) (*models.AuthorStats, error)
}
