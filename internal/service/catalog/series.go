package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"worldlib/internal/config"
	"worldlib/internal/domain"
	models "worldlib/internal/domain/models/catalog"
	"worldlib/internal/domain/repositories"
	catalogRepo "worldlib/internal/domain/repositories/catalog"
	catalogSvc "worldlib/internal/domain/services/catalog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// seriesService implements the SeriesService interface
type seriesService struct {
	seriesRepo catalogRepo.SeriesRepository
	bookRepo   catalogRepo.BookRepository
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewSeriesService creates a new series service
func NewSeriesService(
	seriesRepo catalogRepo.SeriesRepository,
	bookRepo catalogRepo.BookRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) catalogSvc.SeriesService {
	return &seriesService{
		seriesRepo: seriesRepo,
		bookRepo:   bookRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// normalizeSeriesName trims the name and collapses internal whitespace runs
// to single spaces. Uniqueness checks compare normalized names.
func normalizeSeriesName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// CreateSeries creates a series for the acting author
func (s *seriesService) CreateSeries(ctx context.Context, req *catalogSvc.CreateSeriesRequest) (*models.Series, error) {
	if err := s.validateName(req.Name); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	series := &models.Series{
		Name:      normalizeSeriesName(req.Name),
		AuthorID:  req.UserID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.seriesRepo.Create(ctx, series); err != nil {
		return nil, err
	}

	s.logger.Info("series created",
		"id", series.ID,
		"name", series.Name,
		"author_id", req.UserID,
	)

	return series, nil
}

// RenameSeries renames a series the acting author owns. Renaming to the
// current normalized name is a no-op rather than a self-conflict.
func (s *seriesService) RenameSeries(ctx context.Context, seriesID, userID string, req *catalogSvc.RenameSeriesRequest) (*models.Series, error) {
	if models.ParseSeriesRef(seriesID).IsVirtual() {
		return nil, fmt.Errorf("the ungrouped bucket cannot be renamed: %w", domain.ErrInvalidOperation)
	}

	if err := s.validateName(req.Name); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	series, err := s.seriesRepo.GetByID(ctx, seriesID, userID)
	if err != nil {
		return nil, ownershipError(err)
	}

	name := normalizeSeriesName(req.Name)
	if name == series.Name {
		return series, nil
	}

	series.Name = name
	series.UpdatedAt = time.Now()

	if err := s.seriesRepo.Update(ctx, series); err != nil {
		return nil, err
	}

	s.logger.Info("series renamed",
		"id", series.ID,
		"name", series.Name,
		"author_id", userID,
	)

	return series, nil
}

// DeleteSeries removes a series and re-parents its books to the Ungrouped
// bucket. Both writes run in one transaction: a reader never sees books that
// lost their series while the series row survives, or the reverse.
func (s *seriesService) DeleteSeries(ctx context.Context, seriesID, userID string) ([]models.Book, error) {
	if models.ParseSeriesRef(seriesID).IsVirtual() {
		return nil, fmt.Errorf("the ungrouped bucket cannot be deleted: %w", domain.ErrInvalidOperation)
	}

	if _, err := s.seriesRepo.GetByID(ctx, seriesID, userID); err != nil {
		return nil, ownershipError(err)
	}

	var freed []models.Book
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		books, err := s.bookRepo.ListBySeries(txCtx, seriesID, false)
		if err != nil {
			return err
		}

		if err := s.bookRepo.ReleaseSeries(txCtx, seriesID, userID); err != nil {
			return err
		}

		if err := s.seriesRepo.Delete(txCtx, seriesID, userID); err != nil {
			return err
		}

		for i := range books {
			books[i].SeriesID = nil
		}
		freed = books
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("series deleted",
		"id", seriesID,
		"author_id", userID,
		"freed_books", len(freed),
	)

	return freed, nil
}

// ListSeriesWithBooks assembles the author's series listing with the virtual
// Ungrouped bucket appended last, filtered to what the viewer may see.
func (s *seriesService) ListSeriesWithBooks(ctx context.Context, authorID, viewerID string) ([]models.SeriesWithBooks, error) {
	publicOnly := viewerID != authorID

	seriesList, err := s.seriesRepo.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}

	result := make([]models.SeriesWithBooks, 0, len(seriesList)+1)
	for _, series := range seriesList {
		books, err := s.bookRepo.ListBySeries(ctx, series.ID, publicOnly)
		if err != nil {
			return nil, err
		}
		result = append(result, models.SeriesWithBooks{
			Series: series,
			Books:  books,
		})
	}

	ungrouped, err := s.bookRepo.ListUngrouped(ctx, authorID, publicOnly)
	if err != nil {
		return nil, err
	}
	result = append(result, models.UngroupedBucket(authorID, ungrouped))

	return result, nil
}

func (s *seriesService) validateName(name string) error {
	return validation.Validate(name,
		validation.Required,
		validation.Length(1, config.MaxSeriesNameLength),
		validation.By(validateNotBlank),
	)
}

func validateNotBlank(value interface{}) error {
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("must be a string")
	}
	if strings.TrimSpace(str) == "" {
		return fmt.Errorf("cannot be blank")
	}
	return nil
}
