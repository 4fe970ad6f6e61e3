package handler

import (
	"fmt"
	"net/http"

	"worldlib/internal/domain"
	"worldlib/internal/httputil"
)

// requireUserID extracts the authenticated user id from the request context.
// Mutating handlers call this first; public read handlers use viewerID.
func requireUserID(r *http.Request) (string, error) {
	userID := httputil.GetUserID(r)
	if userID == "" {
		return "", fmt.Errorf("no valid session: %w", domain.ErrUnauthorized)
	}
	return userID, nil
}

// viewerID returns the acting user id, or the empty string for anonymous
// viewers. Read paths pass it to the visibility policy.
func viewerID(r *http.Request) string {
	return httputil.GetUserID(r)
}
