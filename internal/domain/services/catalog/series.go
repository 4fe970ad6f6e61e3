package catalog

import (
	"context"

	models "worldlib/internal/domain/models/catalog"
)

// SeriesService handles series business logic.
type SeriesService interface {
	// CreateSeries creates a series for the acting author.
	CreateSeries(ctx context.Context, req *CreateSeriesRequest) (*models.Series, error)

	// RenameSeries renames a series. Renaming to the current (normalized)
	// name is a no-op, not a conflict.
	RenameSeries(ctx context.Context, seriesID, userID string, req *RenameSeriesRequest) (*models.Series, error)

	// DeleteSeries removes a series and re-parents its books into the
	// Ungrouped bucket in one transaction. Returns the freed books.
	DeleteSeries(ctx context.Context, seriesID, userID string) ([]models.Book, error)

	// ListSeriesWithBooks returns the author's series (newest first), each
	// with its books, plus the virtual Ungrouped bucket appended last.
	// Books the viewer may not see are filtered out.
	ListSeriesWithBooks(ctx context.Context, authorID, viewerID string) ([]models.SeriesWithBooks, error)
}

// CreateSeriesRequest represents a series creation request.
type CreateSeriesRequest struct {
	UserID string `json:"-"` // Set by handler from auth context, not from request body
	Name   string `json:"name"`
}

// RenameSeriesRequest represents a series rename request.
type RenameSeriesRequest struct {
	Name string `json:"name"`
}
