package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"worldlib/internal/domain"
	models "worldlib/internal/domain/models/catalog"
	"worldlib/internal/domain/repositories"
)

// In-memory repository fakes. They reproduce the store contracts the services
// rely on: (id, author_id) scoping that hides foreign rows behind ErrNotFound,
// duplicate detection via ConflictError, and relative word-count increments.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeTxManager runs the function directly; the fakes have no transactions.
// Calls counts ExecTx invocations so tests can assert writes were grouped.
type fakeTxManager struct {
	Calls  int
	FailAt int // 1-based call number that returns an error, 0 = never
}

func (m *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	m.Calls++
	if m.FailAt != 0 && m.Calls == m.FailAt {
		return fmt.Errorf("tx aborted")
	}
	return fn(ctx)
}

type fakeSeriesRepo struct {
	series map[string]*models.Series
	nextID int
}

func newFakeSeriesRepo() *fakeSeriesRepo {
	return &fakeSeriesRepo{series: make(map[string]*models.Series)}
}

func (r *fakeSeriesRepo) Create(ctx context.Context, series *models.Series) error {
	for _, s := range r.series {
		if s.AuthorID == series.AuthorID && s.Name == series.Name {
			return &domain.ConflictError{Message: "series name already exists", ResourceType: "series", ResourceID: s.ID}
		}
	}
	r.nextID++
	series.ID = fmt.Sprintf("series-%d", r.nextID)
	cp := *series
	r.series[series.ID] = &cp
	return nil
}

func (r *fakeSeriesRepo) GetByID(ctx context.Context, id, authorID string) (*models.Series, error) {
	s, ok := r.series[id]
	if !ok || s.AuthorID != authorID {
		return nil, fmt.Errorf("series %s: %w", id, domain.ErrNotFound)
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSeriesRepo) ListByAuthor(ctx context.Context, authorID string) ([]models.Series, error) {
	var out []models.Series
	for _, s := range r.series {
		if s.AuthorID == authorID {
			out = append(out, *s)
		}
	}
	// Newest first, matching the store ordering.
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeSeriesRepo) Update(ctx context.Context, series *models.Series) error {
	existing, ok := r.series[series.ID]
	if !ok || existing.AuthorID != series.AuthorID {
		return fmt.Errorf("series %s: %w", series.ID, domain.ErrNotFound)
	}
	for _, s := range r.series {
		if s.ID != series.ID && s.AuthorID == series.AuthorID && s.Name == series.Name {
			return &domain.ConflictError{Message: "series name already exists", ResourceType: "series", ResourceID: s.ID}
		}
	}
	cp := *series
	r.series[series.ID] = &cp
	return nil
}

func (r *fakeSeriesRepo) Delete(ctx context.Context, id, authorID string) error {
	s, ok := r.series[id]
	if !ok || s.AuthorID != authorID {
		return fmt.Errorf("series %s: %w", id, domain.ErrNotFound)
	}
	delete(r.series, id)
	return nil
}

type fakeBookRepo struct {
	books  map[string]*models.Book
	nextID int
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: make(map[string]*models.Book)}
}

func (r *fakeBookRepo) Create(ctx context.Context, book *models.Book) error {
	for _, b := range r.books {
		if b.AuthorID == book.AuthorID && b.Title == book.Title {
			return &domain.ConflictError{Message: "book title already exists", ResourceType: "book", ResourceID: b.ID}
		}
	}
	r.nextID++
	book.ID = fmt.Sprintf("book-%d", r.nextID)
	cp := *book
	r.books[book.ID] = &cp
	return nil
}

func (r *fakeBookRepo) GetByID(ctx context.Context, id, authorID string) (*models.Book, error) {
	b, ok := r.books[id]
	if !ok || b.AuthorID != authorID {
		return nil, fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookRepo) GetByIDOnly(ctx context.Context, id string) (*models.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookRepo) ListBySeries(ctx context.Context, seriesID string, publicOnly bool) ([]models.Book, error) {
	var out []models.Book
	for _, b := range r.books {
		if b.SeriesID == nil || *b.SeriesID != seriesID {
			continue
		}
		if publicOnly && !b.IsPublic {
			continue
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeBookRepo) ListUngrouped(ctx context.Context, authorID string, publicOnly bool) ([]models.Book, error) {
	var out []models.Book
	for _, b := range r.books {
		if b.AuthorID != authorID || b.SeriesID != nil {
			continue
		}
		if publicOnly && !b.IsPublic {
			continue
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeBookRepo) Update(ctx context.Context, book *models.Book) error {
	existing, ok := r.books[book.ID]
	if !ok || existing.AuthorID != book.AuthorID {
		return fmt.Errorf("book %s: %w", book.ID, domain.ErrNotFound)
	}
	cp := *book
	r.books[book.ID] = &cp
	return nil
}

func (r *fakeBookRepo) Delete(ctx context.Context, id, authorID string) error {
	b, ok := r.books[id]
	if !ok || b.AuthorID != authorID {
		return fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
	}
	delete(r.books, id)
	return nil
}

func (r *fakeBookRepo) ReleaseSeries(ctx context.Context, seriesID, authorID string) error {
	for _, b := range r.books {
		if b.AuthorID == authorID && b.SeriesID != nil && *b.SeriesID == seriesID {
			b.SeriesID = nil
		}
	}
	return nil
}

func (r *fakeBookRepo) IncrementWordCount(ctx context.Context, bookID string, delta int) error {
	b, ok := r.books[bookID]
	if !ok {
		return fmt.Errorf("book %s: %w", bookID, domain.ErrNotFound)
	}
	b.WordCount += delta
	return nil
}

func (r *fakeBookRepo) SearchPublic(ctx context.Context, opts *models.SearchOptions) ([]models.BookListing, error) {
	var out []models.BookListing
	for _, b := range r.books {
		if !b.IsPublic {
			continue
		}
		if opts.Query != "" && !strings.Contains(strings.ToLower(b.Title), strings.ToLower(opts.Query)) {
			continue
		}
		out = append(out, models.BookListing{Book: *b})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeBookRepo) CountPublic(ctx context.Context, query string) (int, error) {
	count := 0
	for _, b := range r.books {
		if !b.IsPublic {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(b.Title), strings.ToLower(query)) {
			continue
		}
		count++
	}
	return count, nil
}

type fakeChapterRepo struct {
	chapters map[string]*models.Chapter
	nextID   int
}

func newFakeChapterRepo() *fakeChapterRepo {
	return &fakeChapterRepo{chapters: make(map[string]*models.Chapter)}
}

func (r *fakeChapterRepo) Create(ctx context.Context, chapter *models.Chapter) error {
	r.nextID++
	chapter.ID = fmt.Sprintf("chapter-%d", r.nextID)
	cp := *chapter
	r.chapters[chapter.ID] = &cp
	return nil
}

func (r *fakeChapterRepo) GetByID(ctx context.Context, id, authorID string) (*models.Chapter, error) {
	c, ok := r.chapters[id]
	if !ok || c.AuthorID != authorID {
		return nil, fmt.Errorf("chapter %s: %w", id, domain.ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

func (r *fakeChapterRepo) GetByIDOnly(ctx context.Context, id string) (*models.Chapter, error) {
	c, ok := r.chapters[id]
	if !ok {
		return nil, fmt.Errorf("chapter %s: %w", id, domain.ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

func (r *fakeChapterRepo) ListByBook(ctx context.Context, bookID string) ([]models.Chapter, error) {
	var out []models.Chapter
	for _, c := range r.chapters {
		if c.BookID == bookID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (r *fakeChapterRepo) MaxSortOrder(ctx context.Context, bookID string) (int, error) {
	max := 0
	for _, c := range r.chapters {
		if c.BookID == bookID && c.SortOrder > max {
			max = c.SortOrder
		}
	}
	return max, nil
}

func (r *fakeChapterRepo) Update(ctx context.Context, chapter *models.Chapter) error {
	existing, ok := r.chapters[chapter.ID]
	if !ok || existing.AuthorID != chapter.AuthorID {
		return fmt.Errorf("chapter %s: %w", chapter.ID, domain.ErrNotFound)
	}
	cp := *chapter
	r.chapters[chapter.ID] = &cp
	return nil
}

func (r *fakeChapterRepo) Delete(ctx context.Context, id, authorID string) error {
	c, ok := r.chapters[id]
	if !ok || c.AuthorID != authorID {
		return fmt.Errorf("chapter %s: %w", id, domain.ErrNotFound)
	}
	delete(r.chapters, id)
	return nil
}

type fakeUserRepo struct {
	users map[string]*models.User // keyed by id
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return u, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", username, domain.ErrNotFound)
}

type fakeStatsRepo struct {
	stats map[string]*models.AuthorStats
}

func (r *fakeStatsRepo) AuthorStats(ctx context.Context, authorID string) (*models.AuthorStats, error) {
	if s, ok := r.stats[authorID]; ok {
		return s, nil
	}
	return &models.AuthorStats{}, nil
}
