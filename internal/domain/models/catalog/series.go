package catalog

import (
	"time"
)

// UngroupedSeriesID is the wire id of the virtual "Ungrouped Books" bucket.
// It never corresponds to a stored row.
const UngroupedSeriesID = "-1"

// UngroupedSeriesName is the display name of the virtual bucket.
const UngroupedSeriesName = "Ungrouped Books"

// Series is a named grouping of one author's books.
// Name is unique per (author_id, name).
type Series struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	AuthorID  string    `json:"author_id" db:"author_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// SeriesWithBooks is a series listing entry: either a real series or the
// virtual Ungrouped bucket, with its (visibility-filtered) books attached.
type SeriesWithBooks struct {
	Series
	Virtual bool   `json:"virtual"`
	Books   []Book `json:"books"`
}

// UngroupedBucket builds the virtual listing entry for an author's books
// without a series. It exists only in API responses.
func UngroupedBucket(authorID string, books []Book) SeriesWithBooks {
	if books == nil {
		books = []Book{}
	}
	now := time.Now()
	return SeriesWithBooks{
		Series: Series{
			ID:        UngroupedSeriesID,
			Name:      UngroupedSeriesName,
			AuthorID:  authorID,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Virtual: true,
		Books:   books,
	}
}

// SeriesRef distinguishes real series ids from the virtual bucket at parse
// time, so mutation paths can never reach the store with the virtual id.
type SeriesRef struct {
	id      string
	virtual bool
}

// ParseSeriesRef classifies a client-supplied series id.
func ParseSeriesRef(id string) SeriesRef {
	if id == UngroupedSeriesID {
		return SeriesRef{id: id, virtual: true}
	}
	return SeriesRef{id: id}
}

// IsVirtual reports whether the ref names the Ungrouped bucket.
func (r SeriesRef) IsVirtual() bool { return r.virtual }

// ID returns the underlying series id. Only meaningful for real refs.
func (r SeriesRef) ID() string { return r.id }
