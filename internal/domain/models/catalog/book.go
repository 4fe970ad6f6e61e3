package catalog

import (
	"time"
)

// Book is a single work. WordCount is denormalized: it always equals the sum
// of the book's chapter word counts, maintained transactionally by the
// chapter service.
type Book struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	IsPublic    bool      `json:"is_public" db:"is_public"`
	CoverImage  *string   `json:"cover_image,omitempty" db:"cover_image"`
	WordCount   int       `json:"word_count" db:"word_count"`
	AuthorID    string    `json:"author_id" db:"author_id"`
	SeriesID    *string   `json:"series_id" db:"series_id"` // NULL = ungrouped
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// BookListing is a public catalog entry: the book plus the joined author and
// series display fields and the chapter count.
type BookListing struct {
	Book
	Author       AuthorInfo `json:"author"`
	SeriesName   *string    `json:"series_name,omitempty"`
	ChapterCount int        `json:"chapter_count"`
}

// Sort fields accepted by the public book listing.
const (
	SortByTitle     = "title"
	SortByCreatedAt = "createdAt"
	SortByUpdatedAt = "updatedAt"
	SortByWordCount = "wordCount"
)

// SearchOptions holds the public listing query parameters.
// Page is 1-indexed.
type SearchOptions struct {
	Query         string `json:"query"`
	SortField     string `json:"sort_field"`
	SortDirection string `json:"sort_direction"`
	Page          int    `json:"page"`
}

// ApplyDefaults normalizes invalid or missing values: unknown sort fields fall
// back to updatedAt/desc and the page floor is 1.
func (o *SearchOptions) ApplyDefaults() {
	switch o.SortField {
	case SortByTitle, SortByCreatedAt, SortByUpdatedAt, SortByWordCount:
	default:
		o.SortField = SortByUpdatedAt
	}
	switch o.SortDirection {
	case "asc", "desc":
	default:
		o.SortDirection = "desc"
	}
	if o.Page < 1 {
		o.Page = 1
	}
}
