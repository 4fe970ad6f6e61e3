package handler

import (
	"log/slog"
	"net/http"

	models "worldlib/internal/domain/models/catalog"
	catalogSvc "worldlib/internal/domain/services/catalog"
	"worldlib/internal/httputil"
)

// SeriesHandler handles series HTTP requests
type SeriesHandler struct {
	seriesService catalogSvc.SeriesService
	logger        *slog.Logger
}

// NewSeriesHandler creates a new series handler
func NewSeriesHandler(seriesService catalogSvc.SeriesService, logger *slog.Logger) *SeriesHandler {
	return &SeriesHandler{
		seriesService: seriesService,
		logger:        logger,
	}
}

// ListSeries retrieves the acting author's series with books, Ungrouped last
// GET /api/series
func (h *SeriesHandler) ListSeries(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUserID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	series, err := h.seriesService.ListSeriesWithBooks(r.Context(), userID, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, series)
}

// CreateSeries creates a new series
// POST /api/series
func (h *SeriesHandler) CreateSeries(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUserID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	var req catalogSvc.CreateSeriesRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.UserID = userID

	series, err := h.seriesService.CreateSeries(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, series)
}

// RenameSeries renames a series
// PATCH /api/series/{id}
func (h *SeriesHandler) RenameSeries(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUserID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "series ID is required")
		return
	}

	var req catalogSvc.RenameSeriesRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	series, err := h.seriesService.RenameSeries(r.Context(), id, userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, series)
}

// DeleteSeries deletes a series; its books move to the Ungrouped bucket.
// The freed books are returned so clients can patch their cached listing.
// DELETE /api/series/{id}
func (h *SeriesHandler) DeleteSeries(w http.ResponseWriter, r *http.Request) {
	userID, err := requireUserID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "series ID is required")
		return
	}

	freed, err := h.seriesService.DeleteSeries(r.Context(), id, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string][]models.Book{"freed_books": freed})
}
