package config

const (
	// MaxSeriesNameLength is the maximum length for series names.
	// Limited to 255 to fit in a single index entry and provide
	// reasonable UX (names should be short and descriptive).
	MaxSeriesNameLength = 255

	// MaxBookTitleLength is the maximum length for book titles.
	MaxBookTitleLength = 255

	// MaxChapterTitleLength is the maximum length for chapter titles.
	MaxChapterTitleLength = 255

	// PublicBooksPageSize is the fixed page size of the public catalog
	// listing. Page counts are ceil(matches / PublicBooksPageSize).
	PublicBooksPageSize = 10

	// DefaultChapterTitle is the title assigned to freshly created chapters.
	DefaultChapterTitle = "New Chapter"
)
