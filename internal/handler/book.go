package handler

import (
	"log/slog"
	"net/http"

	models "worldlib/internal/domain/models/catalog"
	catalogSvc "worldlib/internal/domain/services/catalog"
	"worldlib/internal/httputil"
)

// BookHandler handles book HTTP requests
type BookHandler struct {
	bookService    catalogSvc.BookService
	chapterService catalogSvc.ChapterService
	logger         *slog.Logger
}

// NewBookHandler creates a new book handler
func NewBookHandler(bookService catalogSvc.BookService, chapterService catalogSvc.ChapterService, logger *slog.Logger) *BookHandler {
	return &BookHandler{
		bookService:    bookService,
		chapterService: chapterService,
		logger:         logger,
	}
}

// bookResponse is a book with its viewer-visible chapters attached.
type bookResponse struct {
	models.Book
	Chapters []models.Chapter `json:"chapters"`
}

// CreateBook creates a new book
// POST /api/books
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUserID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	var req catalogSvc.CreateBookRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.UserID = userID

	book, err := h.bookService.CreateBook(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, book)
}

// GetBook retrieves a book with its chapters, filtered by the viewer's access.
// Anonymous viewers see only public books and public chapters.
// GET /api/books/{id}
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "book ID is required")
		return
	}

	book, chapters, err := h.bookService.GetBook(r.Context(), id, viewerID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, bookResponse{Book: *book, Chapters: chapters})
}

// UpdateBook updates a book's metadata
// PATCH /api/books/{id}
func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUserID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "book ID is required")
		return
	}

	var req catalogSvc.UpdateBookRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	book, err := h.bookService.UpdateBook(r.Context(), id, userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, book)
}

// DeleteBook deletes a book and its chapters
// DELETE /api/books/{id}
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUserID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "book ID is required")
		return
	}

	if err := h.bookService.DeleteBook(r.Context(), id, userID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ChaptersIndex returns the owner's book with its ordered chapter index
// GET /api/books/{id}/chapters
func (h *BookHandler) ChaptersIndex(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUserID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "book ID is required")
		return
	}

	index, err := h.chapterService.ChaptersIndex(r.Context(), id, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, index)
}

// CreateChapter adds an empty draft chapter to the book
// POST /api/books/{id}/chapters
func (h *BookHandler) CreateChapter(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUserID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "book ID is required")
		return
	}

	chapter, err := h.chapterService.CreateChapter(r.Context(), id, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, chapter)
}
