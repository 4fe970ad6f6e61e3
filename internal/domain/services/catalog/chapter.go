package catalog

import (
	"context"

	models "worldlib/internal/domain/models/catalog"
)

// ChapterService handles chapter business logic, including the transactional
// book word-count aggregation.
type ChapterService interface {
	// CreateChapter adds an empty draft chapter ("New Chapter") to a book the
	// acting author owns, with the next gapped sort order.
	CreateChapter(ctx context.Context, bookID, userID string) (*models.Chapter, error)

	// GetChapter retrieves a chapter the acting author owns (editor fetch).
	GetChapter(ctx context.Context, chapterID, userID string) (*models.Chapter, error)

	// GetPublicChapter retrieves a chapter for reading. Non-owners only see
	// it when both the chapter and its book are public.
	GetPublicChapter(ctx context.Context, chapterID, viewerID string) (*models.Chapter, error)

	// ChaptersIndex returns the owner's book with its ordered chapter index.
	ChaptersIndex(ctx context.Context, bookID, userID string) (*models.ChaptersIndex, error)

	// UpdateChapter rewrites title/visibility/content, recomputes the word
	// count server-side and applies the delta to the parent book in the same
	// transaction.
	UpdateChapter(ctx context.Context, chapterID, userID string, req *UpdateChapterRequest) (*models.Chapter, error)

	// DeleteChapter removes a chapter and decrements the parent book's word
	// count in the same transaction.
	DeleteChapter(ctx context.Context, chapterID, userID string) error
}

// UpdateChapterRequest represents a chapter update request. The word count is
// always recomputed from Content; clients cannot supply it.
type UpdateChapterRequest struct {
	Title    string `json:"title"`
	IsPublic bool   `json:"is_public"`
	Content  string `json:"content"`
}
