package catalog

import (
	"context"
	"errors"
	"testing"

	"worldlib/internal/config"
	"worldlib/internal/domain"
	models "worldlib/internal/domain/models/catalog"
	catalogSvc "worldlib/internal/domain/services/catalog"
)

type chapterFixture struct {
	svc         catalogSvc.ChapterService
	chapterRepo *fakeChapterRepo
	bookRepo    *fakeBookRepo
	tx          *fakeTxManager
	book        *models.Book
}

func newChapterFixture(t *testing.T) *chapterFixture {
	t.Helper()

	chapterRepo := newFakeChapterRepo()
	bookRepo := newFakeBookRepo()
	tx := &fakeTxManager{}
	svc := NewChapterService(chapterRepo, bookRepo, tx, testLogger())

	book := &models.Book{Title: "Keeper of the First Flame", AuthorID: "author-1", IsPublic: true}
	if err := bookRepo.Create(context.Background(), book); err != nil {
		t.Fatalf("seed book: %v", err)
	}

	return &chapterFixture{svc: svc, chapterRepo: chapterRepo, bookRepo: bookRepo, tx: tx, book: book}
}

func TestCreateChapterDefaultsAndSortOrder(t *testing.T) {
	f := newChapterFixture(t)
	ctx := context.Background()

	first, err := f.svc.CreateChapter(ctx, f.book.ID, "author-1")
	if err != nil {
		t.Fatalf("CreateChapter() error = %v", err)
	}
	if first.Title != config.DefaultChapterTitle {
		t.Errorf("Title = %q, want %q", first.Title, config.DefaultChapterTitle)
	}
	if first.IsPublic || first.WordCount != 0 || first.Content != "" {
		t.Errorf("new chapter not an empty private draft: %+v", first)
	}
	if first.SortOrder != 1000 {
		t.Errorf("first SortOrder = %d, want 1000", first.SortOrder)
	}
	if first.AuthorID != f.book.AuthorID {
		t.Errorf("AuthorID = %q, want copied from book", first.AuthorID)
	}

	second, err := f.svc.CreateChapter(ctx, f.book.ID, "author-1")
	if err != nil {
		t.Fatalf("CreateChapter() error = %v", err)
	}
	if second.SortOrder != 2000 {
		t.Errorf("second SortOrder = %d, want 2000", second.SortOrder)
	}

	// Sort orders gap by 1000 but stay strictly increasing.
	if second.SortOrder <= first.SortOrder {
		t.Errorf("sort orders not increasing: %d then %d", first.SortOrder, second.SortOrder)
	}
}

func TestCreateChapterAfterDeleteDoesNotReuseSortOrder(t *testing.T) {
	f := newChapterFixture(t)
	ctx := context.Background()

	var chapters []*models.Chapter
	for i := 0; i < 3; i++ {
		chapter, err := f.svc.CreateChapter(ctx, f.book.ID, "author-1")
		if err != nil {
			t.Fatalf("CreateChapter() error = %v", err)
		}
		chapters = append(chapters, chapter)
	}

	// Freeing the middle slot must not hand its order to the next chapter;
	// orders stay strictly increasing across deletions.
	if err := f.svc.DeleteChapter(ctx, chapters[1].ID, "author-1"); err != nil {
		t.Fatalf("DeleteChapter() error = %v", err)
	}

	replacement, err := f.svc.CreateChapter(ctx, f.book.ID, "author-1")
	if err != nil {
		t.Fatalf("CreateChapter() error = %v", err)
	}
	if replacement.SortOrder <= chapters[2].SortOrder {
		t.Errorf("new SortOrder = %d, want greater than surviving max %d", replacement.SortOrder, chapters[2].SortOrder)
	}
	if replacement.SortOrder != 4000 {
		t.Errorf("new SortOrder = %d, want 4000", replacement.SortOrder)
	}

	stored, err := f.chapterRepo.ListByBook(ctx, f.book.ID)
	if err != nil {
		t.Fatalf("ListByBook() error = %v", err)
	}
	if len(stored) != 3 {
		t.Fatalf("chapters = %d, want 3", len(stored))
	}
	for i := 1; i < len(stored); i++ {
		if stored[i].SortOrder <= stored[i-1].SortOrder {
			t.Errorf("sort orders collide or regress: %d then %d", stored[i-1].SortOrder, stored[i].SortOrder)
		}
	}
}

func TestCreateChapterForeignBookForbidden(t *testing.T) {
	f := newChapterFixture(t)

	_, err := f.svc.CreateChapter(context.Background(), f.book.ID, "author-2")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("foreign CreateChapter() error = %v, want ErrForbidden", err)
	}
	_, err = f.svc.CreateChapter(context.Background(), "book-missing", "author-2")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("missing CreateChapter() error = %v, want ErrForbidden", err)
	}
}

func TestUpdateChapterRecomputesWordCount(t *testing.T) {
	f := newChapterFixture(t)
	ctx := context.Background()

	chapter, err := f.svc.CreateChapter(ctx, f.book.ID, "author-1")
	if err != nil {
		t.Fatalf("CreateChapter() error = %v", err)
	}

	updated, err := f.svc.UpdateChapter(ctx, chapter.ID, "author-1", &catalogSvc.UpdateChapterRequest{
		Title:   "The Long Watch",
		Content: "The lamp had burned for two hundred years.",
	})
	if err != nil {
		t.Fatalf("UpdateChapter() error = %v", err)
	}
	if updated.WordCount != 8 {
		t.Errorf("WordCount = %d, want 8", updated.WordCount)
	}

	book, err := f.bookRepo.GetByIDOnly(ctx, f.book.ID)
	if err != nil {
		t.Fatalf("GetByIDOnly() error = %v", err)
	}
	if book.WordCount != 8 {
		t.Errorf("book WordCount = %d, want 8", book.WordCount)
	}
	if f.tx.Calls != 1 {
		t.Errorf("ExecTx calls = %d, want 1", f.tx.Calls)
	}

	// Shrinking the content applies a negative delta.
	if _, err := f.svc.UpdateChapter(ctx, chapter.ID, "author-1", &catalogSvc.UpdateChapterRequest{
		Title:   "The Long Watch",
		Content: "Shorter now.",
	}); err != nil {
		t.Fatalf("second UpdateChapter() error = %v", err)
	}
	book, _ = f.bookRepo.GetByIDOnly(ctx, f.book.ID)
	if book.WordCount != 2 {
		t.Errorf("book WordCount after shrink = %d, want 2", book.WordCount)
	}
}

func TestUpdateChapterAggregatesAcrossChapters(t *testing.T) {
	f := newChapterFixture(t)
	ctx := context.Background()

	for _, content := range []string{"one two three", "four five"} {
		chapter, err := f.svc.CreateChapter(ctx, f.book.ID, "author-1")
		if err != nil {
			t.Fatalf("CreateChapter() error = %v", err)
		}
		if _, err := f.svc.UpdateChapter(ctx, chapter.ID, "author-1", &catalogSvc.UpdateChapterRequest{
			Title:   "Chapter",
			Content: content,
		}); err != nil {
			t.Fatalf("UpdateChapter() error = %v", err)
		}
	}

	book, err := f.bookRepo.GetByIDOnly(ctx, f.book.ID)
	if err != nil {
		t.Fatalf("GetByIDOnly() error = %v", err)
	}
	if book.WordCount != 5 {
		t.Errorf("book WordCount = %d, want 5", book.WordCount)
	}
}

func TestUpdateChapterUnchangedContentSkipsIncrement(t *testing.T) {
	f := newChapterFixture(t)
	ctx := context.Background()

	chapter, err := f.svc.CreateChapter(ctx, f.book.ID, "author-1")
	if err != nil {
		t.Fatalf("CreateChapter() error = %v", err)
	}
	if _, err := f.svc.UpdateChapter(ctx, chapter.ID, "author-1", &catalogSvc.UpdateChapterRequest{
		Title:   "Saltglass",
		Content: "one two",
	}); err != nil {
		t.Fatalf("UpdateChapter() error = %v", err)
	}

	// Retitling without changing the word count must still go through a
	// transaction, but leave the aggregate alone.
	if _, err := f.svc.UpdateChapter(ctx, chapter.ID, "author-1", &catalogSvc.UpdateChapterRequest{
		Title:   "Saltglass, Revised",
		Content: "two one",
	}); err != nil {
		t.Fatalf("retitle UpdateChapter() error = %v", err)
	}

	book, _ := f.bookRepo.GetByIDOnly(ctx, f.book.ID)
	if book.WordCount != 2 {
		t.Errorf("book WordCount = %d, want 2", book.WordCount)
	}
}

func TestUpdateChapterValidation(t *testing.T) {
	f := newChapterFixture(t)
	ctx := context.Background()

	chapter, err := f.svc.CreateChapter(ctx, f.book.ID, "author-1")
	if err != nil {
		t.Fatalf("CreateChapter() error = %v", err)
	}

	_, err = f.svc.UpdateChapter(ctx, chapter.ID, "author-1", &catalogSvc.UpdateChapterRequest{
		Title:   "   ",
		Content: "body",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("blank title UpdateChapter() error = %v, want ErrValidation", err)
	}
}

func TestUpdateChapterForeignForbidden(t *testing.T) {
	f := newChapterFixture(t)
	ctx := context.Background()

	chapter, err := f.svc.CreateChapter(ctx, f.book.ID, "author-1")
	if err != nil {
		t.Fatalf("CreateChapter() error = %v", err)
	}

	_, err = f.svc.UpdateChapter(ctx, chapter.ID, "author-2", &catalogSvc.UpdateChapterRequest{
		Title:   "Hijack",
		Content: "nope",
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("foreign UpdateChapter() error = %v, want ErrForbidden", err)
	}
}

func TestDeleteChapterDecrementsBookWordCount(t *testing.T) {
	f := newChapterFixture(t)
	ctx := context.Background()

	chapter, err := f.svc.CreateChapter(ctx, f.book.ID, "author-1")
	if err != nil {
		t.Fatalf("CreateChapter() error = %v", err)
	}
	if _, err := f.svc.UpdateChapter(ctx, chapter.ID, "author-1", &catalogSvc.UpdateChapterRequest{
		Title:   "The Long Watch",
		Content: "one two three four",
	}); err != nil {
		t.Fatalf("UpdateChapter() error = %v", err)
	}

	if err := f.svc.DeleteChapter(ctx, chapter.ID, "author-1"); err != nil {
		t.Fatalf("DeleteChapter() error = %v", err)
	}

	book, err := f.bookRepo.GetByIDOnly(ctx, f.book.ID)
	if err != nil {
		t.Fatalf("GetByIDOnly() error = %v", err)
	}
	if book.WordCount != 0 {
		t.Errorf("book WordCount = %d, want 0", book.WordCount)
	}
	if _, err := f.chapterRepo.GetByIDOnly(ctx, chapter.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("chapter still present after delete, err = %v", err)
	}
}

func TestDeleteChapterAbortedTxLeavesState(t *testing.T) {
	f := newChapterFixture(t)
	ctx := context.Background()

	chapter, err := f.svc.CreateChapter(ctx, f.book.ID, "author-1")
	if err != nil {
		t.Fatalf("CreateChapter() error = %v", err)
	}
	if _, err := f.svc.UpdateChapter(ctx, chapter.ID, "author-1", &catalogSvc.UpdateChapterRequest{
		Title:   "The Long Watch",
		Content: "one two three",
	}); err != nil {
		t.Fatalf("UpdateChapter() error = %v", err)
	}

	f.tx.FailAt = f.tx.Calls + 1
	if err := f.svc.DeleteChapter(ctx, chapter.ID, "author-1"); err == nil {
		t.Fatal("DeleteChapter() with failing tx returned nil error")
	}
	if _, err := f.chapterRepo.GetByIDOnly(ctx, chapter.ID); err != nil {
		t.Errorf("chapter gone despite aborted transaction: %v", err)
	}
	book, _ := f.bookRepo.GetByIDOnly(ctx, f.book.ID)
	if book.WordCount != 3 {
		t.Errorf("book WordCount = %d, want untouched 3", book.WordCount)
	}
}

func TestChaptersIndex(t *testing.T) {
	f := newChapterFixture(t)
	ctx := context.Background()

	for _, title := range []string{"One", "Two", "Three"} {
		chapter, err := f.svc.CreateChapter(ctx, f.book.ID, "author-1")
		if err != nil {
			t.Fatalf("CreateChapter() error = %v", err)
		}
		if _, err := f.svc.UpdateChapter(ctx, chapter.ID, "author-1", &catalogSvc.UpdateChapterRequest{
			Title:   title,
			Content: "words here",
		}); err != nil {
			t.Fatalf("UpdateChapter() error = %v", err)
		}
	}

	index, err := f.svc.ChaptersIndex(ctx, f.book.ID, "author-1")
	if err != nil {
		t.Fatalf("ChaptersIndex() error = %v", err)
	}
	if index.Book.ID != f.book.ID {
		t.Errorf("index book = %q, want %q", index.Book.ID, f.book.ID)
	}
	want := []string{"One", "Two", "Three"}
	if len(index.Chapters) != len(want) {
		t.Fatalf("index entries = %d, want %d", len(index.Chapters), len(want))
	}
	for i, entry := range index.Chapters {
		if entry.Title != want[i] {
			t.Errorf("entry %d = %q, want %q (reading order)", i, entry.Title, want[i])
		}
	}
}

func TestChaptersIndexAccess(t *testing.T) {
	f := newChapterFixture(t)
	ctx := context.Background()

	// Foreign caller on an existing book: forbidden, the book's existence is
	// already public knowledge through the catalog.
	if _, err := f.svc.ChaptersIndex(ctx, f.book.ID, "author-2"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("foreign ChaptersIndex() error = %v, want ErrForbidden", err)
	}
	// Missing book: plain not found.
	if _, err := f.svc.ChaptersIndex(ctx, "book-missing", "author-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing ChaptersIndex() error = %v, want ErrNotFound", err)
	}
}

func TestGetPublicChapter(t *testing.T) {
	f := newChapterFixture(t)
	ctx := context.Background()

	chapter, err := f.svc.CreateChapter(ctx, f.book.ID, "author-1")
	if err != nil {
		t.Fatalf("CreateChapter() error = %v", err)
	}

	// Private draft in a public book: hidden from strangers, visible to owner.
	if _, err := f.svc.GetPublicChapter(ctx, chapter.ID, ""); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("anonymous GetPublicChapter(private) error = %v, want ErrNotFound", err)
	}
	if _, err := f.svc.GetPublicChapter(ctx, chapter.ID, "author-1"); err != nil {
		t.Errorf("owner GetPublicChapter(private) error = %v", err)
	}

	if _, err := f.svc.UpdateChapter(ctx, chapter.ID, "author-1", &catalogSvc.UpdateChapterRequest{
		Title:    "The Long Watch",
		IsPublic: true,
		Content:  "published at last",
	}); err != nil {
		t.Fatalf("UpdateChapter() error = %v", err)
	}
	if _, err := f.svc.GetPublicChapter(ctx, chapter.ID, ""); err != nil {
		t.Errorf("anonymous GetPublicChapter(public) error = %v", err)
	}
}

func TestGetPublicChapterPrivateBookHidesPublicChapter(t *testing.T) {
	f := newChapterFixture(t)
	ctx := context.Background()

	// Flip the book private; even a public chapter must disappear.
	f.book.IsPublic = false
	if err := f.bookRepo.Update(ctx, f.book); err != nil {
		t.Fatalf("update book: %v", err)
	}

	chapter, err := f.svc.CreateChapter(ctx, f.book.ID, "author-1")
	if err != nil {
		t.Fatalf("CreateChapter() error = %v", err)
	}
	if _, err := f.svc.UpdateChapter(ctx, chapter.ID, "author-1", &catalogSvc.UpdateChapterRequest{
		Title:    "Orphaned",
		IsPublic: true,
		Content:  "text",
	}); err != nil {
		t.Fatalf("UpdateChapter() error = %v", err)
	}

	if _, err := f.svc.GetPublicChapter(ctx, chapter.ID, "viewer-2"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetPublicChapter() in private book error = %v, want ErrNotFound", err)
	}
}
