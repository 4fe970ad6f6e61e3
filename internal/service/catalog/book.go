package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"worldlib/internal/config"
	"worldlib/internal/domain"
	models "worldlib/internal/domain/models/catalog"
	catalogRepo "worldlib/internal/domain/repositories/catalog"
	catalogSvc "worldlib/internal/domain/services/catalog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// bookService implements the BookService interface
type bookService struct {
	bookRepo    catalogRepo.BookRepository
	seriesRepo  catalogRepo.SeriesRepository
	chapterRepo catalogRepo.ChapterRepository
	logger      *slog.Logger
}

// NewBookService creates a new book service
func NewBookService(
	bookRepo catalogRepo.BookRepository,
	seriesRepo catalogRepo.SeriesRepository,
	chapterRepo catalogRepo.ChapterRepository,
	logger *slog.Logger,
) catalogSvc.BookService {
	return &bookService{
		bookRepo:    bookRepo,
		seriesRepo:  seriesRepo,
		chapterRepo: chapterRepo,
		logger:      logger,
	}
}

// CreateBook creates a book for the acting author
func (s *bookService) CreateBook(ctx context.Context, req *catalogSvc.CreateBookRequest) (*models.Book, error) {
	if err := s.validateTitle(req.Title); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	seriesID, err := s.resolveSeriesID(ctx, req.SeriesID, req.UserID)
	if err != nil {
		return nil, err
	}

	book := &models.Book{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		IsPublic:    req.IsPublic,
		CoverImage:  req.CoverImage,
		AuthorID:    req.UserID,
		SeriesID:    seriesID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}

	s.logger.Info("book created",
		"id", book.ID,
		"title", book.Title,
		"author_id", req.UserID,
	)

	return book, nil
}

// GetBook retrieves a book and its chapters, filtered by the visibility policy
func (s *bookService) GetBook(ctx context.Context, bookID, viewerID string) (*models.Book, []models.Chapter, error) {
	book, err := s.bookRepo.GetByIDOnly(ctx, bookID)
	if err != nil {
		return nil, nil, err
	}

	if !BookVisible(book, viewerID) {
		// Hidden books look absent to non-owners
		return nil, nil, fmt.Errorf("book %s: %w", bookID, domain.ErrNotFound)
	}

	chapters, err := s.chapterRepo.ListByBook(ctx, bookID)
	if err != nil {
		return nil, nil, err
	}

	return book, FilterChapters(book, chapters, viewerID), nil
}

// UpdateBook updates a book the acting author owns
func (s *bookService) UpdateBook(ctx context.Context, bookID, userID string, req *catalogSvc.UpdateBookRequest) (*models.Book, error) {
	if err := s.validateTitle(req.Title); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	book, err := s.bookRepo.GetByID(ctx, bookID, userID)
	if err != nil {
		return nil, ownershipError(err)
	}

	seriesID, err := s.resolveSeriesID(ctx, req.SeriesID, userID)
	if err != nil {
		return nil, err
	}

	book.Title = strings.TrimSpace(req.Title)
	book.Description = req.Description
	book.IsPublic = req.IsPublic
	book.CoverImage = req.CoverImage
	book.SeriesID = seriesID
	book.UpdatedAt = time.Now()

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}

	s.logger.Info("book updated",
		"id", book.ID,
		"title", book.Title,
		"author_id", userID,
	)

	return book, nil
}

// DeleteBook deletes a book the acting author owns; chapters cascade
func (s *bookService) DeleteBook(ctx context.Context, bookID, userID string) error {
	if _, err := s.bookRepo.GetByID(ctx, bookID, userID); err != nil {
		return ownershipError(err)
	}

	if err := s.bookRepo.Delete(ctx, bookID, userID); err != nil {
		return err
	}

	s.logger.Info("book deleted",
		"id", bookID,
		"author_id", userID,
	)

	return nil
}

// resolveSeriesID applies the lenient series-assignment policy: a missing,
// foreign or virtual series id silently becomes NULL (ungrouped) instead of
// an error. Store failures other than not-found still propagate.
func (s *bookService) resolveSeriesID(ctx context.Context, seriesID *string, userID string) (*string, error) {
	if seriesID == nil || *seriesID == "" {
		return nil, nil
	}

	ref := models.ParseSeriesRef(*seriesID)
	if ref.IsVirtual() {
		return nil, nil
	}

	if _, err := s.seriesRepo.GetByID(ctx, ref.ID(), userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	id := ref.ID()
	return &id, nil
}

func (s *bookService) validateTitle(title string) error {
	return validation.Validate(title,
		validation.Required,
		validation.Length(1, config.MaxBookTitleLength),
		validation.By(validateNotBlank),
	)
}
