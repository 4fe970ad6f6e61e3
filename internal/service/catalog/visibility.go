package catalog

import (
	models "worldlib/internal/domain/models/catalog"
)

// Visibility policy. Pure predicates; the viewer id is empty for anonymous
// readers.

// BookVisible reports whether a viewer may see a book.
func BookVisible(book *models.Book, viewerID string) bool {
	return book.IsPublic || (viewerID != "" && book.AuthorID == viewerID)
}

// ChapterVisible reports whether a viewer may see a chapter. A private book
// hides all of its chapters from non-owners regardless of the chapters' own
// flags; within a public book each chapter's flag governs.
func ChapterVisible(book *models.Book, chapter *models.Chapter, viewerID string) bool {
	if viewerID != "" && book.AuthorID == viewerID {
		return true
	}
	return book.IsPublic && chapter.IsPublic
}

// FilterBooks returns the books the viewer may see, preserving order.
func FilterBooks(books []models.Book, viewerID string) []models.Book {
	visible := make([]models.Book, 0, len(books))
	for i := range books {
		if BookVisible(&books[i], viewerID) {
			visible = append(visible, books[i])
		}
	}
	return visible
}

// FilterChapters returns the chapters of a book the viewer may see,
// preserving reading order.
func FilterChapters(book *models.Book, chapters []models.Chapter, viewerID string) []models.Chapter {
	visible := make([]models.Chapter, 0, len(chapters))
	for i := range chapters {
		if ChapterVisible(book, &chapters[i], viewerID) {
			visible = append(visible, chapters[i])
		}
	}
	return visible
}
