package handler

import (
	"log/slog"
	"net/http"

	"worldlib/internal/httputil"
	"worldlib/internal/service/storage"
)

// UploadHandler issues presigned cover upload URLs.
type UploadHandler struct {
	uploader *storage.CoverUploader
	logger   *slog.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploader *storage.CoverUploader, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{uploader: uploader, logger: logger}
}

type coverUploadRequest struct {
	ContentType string `json:"content_type"`
}

// NewCoverUpload returns a presigned PUT URL for a cover image. The client
// uploads directly to object storage and stores the returned public URL on the
// book via PATCH /api/books/{id}.
// POST /api/uploads/cover
func (h *UploadHandler) NewCoverUpload(w http.ResponseWriter, r *http.Request) {
	if _, err := requireUserID(r); err != nil {
		handleError(w, err)
		return
	}

	var req coverUploadRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	upload, err := h.uploader.NewUpload(r.Context(), req.ContentType)
	if err != nil {
		h.logger.Error("cover upload presign failed", "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, upload)
}
