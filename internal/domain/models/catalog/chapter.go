package catalog

import (
	"time"
)

// Chapter is a unit of content within a book. AuthorID is denormalized from
// the parent book so ownership checks never need a join; only the chapter
// service's single write path sets it.
type Chapter struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	IsPublic  bool      `json:"is_public" db:"is_public"`
	WordCount int       `json:"word_count" db:"word_count"`
	SortOrder int       `json:"sort_order" db:"sort_order"`
	BookID    string    `json:"book_id" db:"book_id"`
	AuthorID  string    `json:"author_id" db:"author_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ChapterIndexEntry is the slim chapter shape used by the author's chapter
// index; content is deliberately omitted.
type ChapterIndexEntry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	IsPublic  bool      `json:"is_public"`
	WordCount int       `json:"word_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChaptersIndex pairs a book with its ordered chapter index.
type ChaptersIndex struct {
	Book     Book                `json:"book"`
	Chapters []ChapterIndexEntry `json:"chapters"`
}

// NextSortOrder returns the sort order for a new chapter given the current
// maximum in the book (zero for an empty book). Values are spaced by 1000 to
// leave gaps for manual reordering. Keying off the maximum rather than the
// chapter count keeps orders strictly increasing even after a deletion frees
// an earlier slot.
func NextSortOrder(maxSortOrder int) int {
	return maxSortOrder + 1000
}
