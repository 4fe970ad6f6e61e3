package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	models "worldlib/internal/domain/models/catalog"
	catalogSvc "worldlib/internal/domain/services/catalog"
	"worldlib/internal/httputil"
)

// BrowseHandler serves the public catalog and author profile endpoints.
type BrowseHandler struct {
	browseService catalogSvc.BrowseService
	logger        *slog.Logger
}

// NewBrowseHandler creates a new browse handler
func NewBrowseHandler(browseService catalogSvc.BrowseService, logger *slog.Logger) *BrowseHandler {
	return &BrowseHandler{
		browseService: browseService,
		logger:        logger,
	}
}

// searchOptionsFromQuery reads listing parameters; the service normalizes
// anything out of range.
func searchOptionsFromQuery(r *http.Request) *models.SearchOptions {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	return &models.SearchOptions{
		Query:         q.Get("query"),
		SortField:     q.Get("sort"),
		SortDirection: q.Get("direction"),
		Page:          page,
	}
}

// ListPublicBooks returns one page of the public catalog
// GET /api/books
func (h *BrowseHandler) ListPublicBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.browseService.ListPublicBooks(r.Context(), searchOptionsFromQuery(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string][]models.BookListing{"books": books})
}

// CountPublicBookPages returns the page count for a listing query
// GET /api/books/pages
func (h *BrowseHandler) CountPublicBookPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.browseService.CountPublicBookPages(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]int{"pages": pages})
}

// AuthorSeries returns an author's series with viewer-visible books
// GET /api/authors/{username}/series
func (h *BrowseHandler) AuthorSeries(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if username == "" {
		httputil.RespondError(w, http.StatusBadRequest, "username is required")
		return
	}

	series, err := h.browseService.AuthorSeries(r.Context(), username, viewerID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, series)
}

// AuthorStats returns whole-catalog counters for an author profile
// GET /api/authors/{username}/stats
func (h *BrowseHandler) AuthorStats(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if username == "" {
		httputil.RespondError(w, http.StatusBadRequest, "username is required")
		return
	}

	stats, err := h.browseService.AuthorStats(r.Context(), username)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, stats)
}
