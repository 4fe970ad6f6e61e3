package handler

import (
	"log/slog"
	"net/http"

	catalogSvc "worldlib/internal/domain/services/catalog"
	"worldlib/internal/httputil"
)

// ChapterHandler handles chapter HTTP requests
type ChapterHandler struct {
	chapterService catalogSvc.ChapterService
	logger         *slog.Logger
}

// NewChapterHandler creates a new chapter handler
func NewChapterHandler(chapterService catalogSvc.ChapterService, logger *slog.Logger) *ChapterHandler {
	return &ChapterHandler{
		chapterService: chapterService,
		logger:         logger,
	}
}

// GetChapter retrieves a chapter for editing. Owner only.
// GET /api/chapters/{id}
func (h *ChapterHandler) GetChapter(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUserID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "chapter ID is required")
		return
	}

	chapter, err := h.chapterService.GetChapter(r.Context(), id, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, chapter)
}

// GetPublicChapter retrieves a chapter for reading. Non-owners get 404 unless
// both the chapter and its book are public.
// GET /api/read/chapters/{id}
func (h *ChapterHandler) GetPublicChapter(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "chapter ID is required")
		return
	}

	chapter, err := h.chapterService.GetPublicChapter(r.Context(), id, viewerID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, chapter)
}

// UpdateChapter rewrites a chapter's title, visibility and content. The word
// count comes back recomputed from the new content.
// PUT /api/chapters/{id}
func (h *ChapterHandler) UpdateChapter(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUserID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "chapter ID is required")
		return
	}

	var req catalogSvc.UpdateChapterRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	chapter, err := h.chapterService.UpdateChapter(r.Context(), id, userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, chapter)
}

// DeleteChapter deletes a chapter
// DELETE /api/chapters/{id}
func (h *ChapterHandler) DeleteChapter(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUserID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "chapter ID is required")
		return
	}

	if err := h.chapterService.DeleteChapter(r.Context(), id, userID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
