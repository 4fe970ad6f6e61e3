package catalog

import (
	"context"
	"log/slog"
	"math"

	"worldlib/internal/config"
	models "worldlib/internal/domain/models/catalog"
	catalogRepo "worldlib/internal/domain/repositories/catalog"
	catalogSvc "worldlib/internal/domain/services/catalog"
)

// browseService implements the BrowseService interface
type browseService struct {
	bookRepo      catalogRepo.BookRepository
	userRepo      catalogRepo.UserRepository
	statsRepo     catalogRepo.StatsRepository
	seriesService catalogSvc.SeriesService
	logger        *slog.Logger
}

// NewBrowseService creates a new browse service
func NewBrowseService(
	bookRepo catalogRepo.BookRepository,
	userRepo catalogRepo.UserRepository,
	statsRepo catalogRepo.StatsRepository,
	seriesService catalogSvc.SeriesService,
	logger *slog.Logger,
) catalogSvc.BrowseService {
	return &browseService{
		bookRepo:      bookRepo,
		userRepo:      userRepo,
		statsRepo:     statsRepo,
		seriesService: seriesService,
		logger:        logger,
	}
}

// ListPublicBooks returns one page of the public catalog. A page beyond the
// last match comes back empty, never as an error.
func (s *browseService) ListPublicBooks(ctx context.Context, opts *models.SearchOptions) ([]models.BookListing, error) {
	opts.ApplyDefaults()
	return s.bookRepo.SearchPublic(ctx, opts)
}

// CountPublicBookPages returns the page count for a query at the fixed page
// size.
func (s *browseService) CountPublicBookPages(ctx context.Context, query string) (int, error) {
	count, err := s.bookRepo.CountPublic(ctx, query)
	if err != nil {
		return 0, err
	}
	return int(math.Ceil(float64(count) / float64(config.PublicBooksPageSize))), nil
}

// AuthorSeries resolves a profile username and lists the author's series with
// viewer-visible books.
func (s *browseService) AuthorSeries(ctx context.Context, username, viewerID string) ([]models.SeriesWithBooks, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.seriesService.ListSeriesWithBooks(ctx, user.ID, viewerID)
}

// AuthorStats resolves a profile username and returns whole-catalog counters.
// Counts deliberately include private items; see the profile stats contract.
func (s *browseService) AuthorStats(ctx context.Context, username string) (*models.AuthorStats, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.statsRepo.AuthorStats(ctx, user.ID)
}
