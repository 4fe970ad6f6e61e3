package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"worldlib/internal/config"
	"worldlib/internal/domain"
	models "worldlib/internal/domain/models/catalog"
	"worldlib/internal/domain/repositories"
	catalogRepo "worldlib/internal/domain/repositories/catalog"
	catalogSvc "worldlib/internal/domain/services/catalog"
	"worldlib/internal/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// chapterService implements the ChapterService interface
type chapterService struct {
	chapterRepo catalogRepo.ChapterRepository
	bookRepo    catalogRepo.BookRepository
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewChapterService creates a new chapter service
func NewChapterService(
	chapterRepo catalogRepo.ChapterRepository,
	bookRepo catalogRepo.BookRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) catalogSvc.ChapterService {
	return &chapterService{
		chapterRepo: chapterRepo,
		bookRepo:    bookRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// CreateChapter adds an empty draft chapter to a book the author owns.
// The ownership guard runs against the book, since the chapter does not exist
// yet; author_id is copied from the book here and nowhere else, which is what
// keeps the denormalized field from drifting.
func (s *chapterService) CreateChapter(ctx context.Context, bookID, userID string) (*models.Chapter, error) {
	book, err := s.bookRepo.GetByID(ctx, bookID, userID)
	if err != nil {
		return nil, ownershipError(err)
	}

	maxOrder, err := s.chapterRepo.MaxSortOrder(ctx, bookID)
	if err != nil {
		return nil, err
	}

	chapter := &models.Chapter{
		Title:     config.DefaultChapterTitle,
		Content:   "",
		IsPublic:  false,
		WordCount: 0,
		SortOrder: models.NextSortOrder(maxOrder),
		BookID:    book.ID,
		AuthorID:  book.AuthorID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	// Single insert; the new chapter holds zero words, so the book's
	// aggregate is untouched.
	if err := s.chapterRepo.Create(ctx, chapter); err != nil {
		return nil, err
	}

	s.logger.Info("chapter created",
		"id", chapter.ID,
		"book_id", bookID,
		"sort_order", chapter.SortOrder,
		"author_id", userID,
	)

	return chapter, nil
}

// GetChapter retrieves a chapter for its owner (editor fetch)
func (s *chapterService) GetChapter(ctx context.Context, chapterID, userID string) (*models.Chapter, error) {
	chapter, err := s.chapterRepo.GetByID(ctx, chapterID, userID)
	if err != nil {
		return nil, ownershipError(err)
	}
	return chapter, nil
}

// GetPublicChapter retrieves a chapter for reading, applying the visibility
// policy through the parent book.
func (s *chapterService) GetPublicChapter(ctx context.Context, chapterID, viewerID string) (*models.Chapter, error) {
	chapter, err := s.chapterRepo.GetByIDOnly(ctx, chapterID)
	if err != nil {
		return nil, err
	}

	book, err := s.bookRepo.GetByIDOnly(ctx, chapter.BookID)
	if err != nil {
		return nil, err
	}

	if !ChapterVisible(book, chapter, viewerID) {
		return nil, fmt.Errorf("chapter %s: %w", chapterID, domain.ErrNotFound)
	}

	return chapter, nil
}

// ChaptersIndex returns the owner's book with its ordered chapter index
func (s *chapterService) ChaptersIndex(ctx context.Context, bookID, userID string) (*models.ChaptersIndex, error) {
	book, err := s.bookRepo.GetByIDOnly(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if book.AuthorID != userID {
		return nil, fmt.Errorf("unauthorized access: %w", domain.ErrForbidden)
	}

	chapters, err := s.chapterRepo.ListByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	entries := make([]models.ChapterIndexEntry, 0, len(chapters))
	for _, chapter := range chapters {
		entries = append(entries, models.ChapterIndexEntry{
			ID:        chapter.ID,
			Title:     chapter.Title,
			IsPublic:  chapter.IsPublic,
			WordCount: chapter.WordCount,
			CreatedAt: chapter.CreatedAt,
			UpdatedAt: chapter.UpdatedAt,
		})
	}

	return &models.ChaptersIndex{Book: *book, Chapters: entries}, nil
}

// UpdateChapter rewrites a chapter and applies the word-count delta to the
// parent book in one transaction. The book side is a relative increment, so
// concurrent edits to sibling chapters both land.
func (s *chapterService) UpdateChapter(ctx context.Context, chapterID, userID string, req *catalogSvc.UpdateChapterRequest) (*models.Chapter, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	chapter, err := s.chapterRepo.GetByID(ctx, chapterID, userID)
	if err != nil {
		return nil, ownershipError(err)
	}

	newWordCount := utils.CountWords(req.Content)
	delta := newWordCount - chapter.WordCount

	chapter.Title = req.Title
	chapter.IsPublic = req.IsPublic
	chapter.Content = req.Content
	chapter.WordCount = newWordCount
	chapter.UpdatedAt = time.Now()

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.chapterRepo.Update(txCtx, chapter); err != nil {
			return err
		}
		if delta != 0 {
			if err := s.bookRepo.IncrementWordCount(txCtx, chapter.BookID, delta); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("chapter updated",
		"id", chapter.ID,
		"book_id", chapter.BookID,
		"word_count", newWordCount,
		"delta", delta,
		"author_id", userID,
	)

	return chapter, nil
}

// DeleteChapter removes a chapter and decrements the parent book's word
// count in one transaction.
func (s *chapterService) DeleteChapter(ctx context.Context, chapterID, userID string) error {
	chapter, err := s.chapterRepo.GetByID(ctx, chapterID, userID)
	if err != nil {
		return ownershipError(err)
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.chapterRepo.Delete(txCtx, chapterID, userID); err != nil {
			return err
		}
		if chapter.WordCount != 0 {
			if err := s.bookRepo.IncrementWordCount(txCtx, chapter.BookID, -chapter.WordCount); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("chapter deleted",
		"id", chapterID,
		"book_id", chapter.BookID,
		"author_id", userID,
	)

	return nil
}

func (s *chapterService) validateUpdateRequest(req *catalogSvc.UpdateChapterRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxChapterTitleLength),
			validation.By(validateNotBlank),
		),
	)
}
