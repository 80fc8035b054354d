package httpapi

import (
	"encoding/json"
	"net/http"

	"previewd/internal/preview"
	"previewd/internal/scheduler"
	"previewd/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}

// writeServiceError maps well-known pipeline errors to HTTP status codes.
// 404 covers both missing sessions and snapshots that are not ready yet, so
// the page's poll loop has a single condition to retry on. 410 marks renders
// that failed for good; the page should stop polling and fall back.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case preview.IsInvalidRequest(err):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case preview.IsSessionNotFound(err):
		writeJSONError(w, http.StatusNotFound, err.Error())
	case preview.IsNotReady(err):
		writeJSONError(w, http.StatusNotFound, err.Error())
	case preview.IsRenderFailed(err):
		writeJSONError(w, http.StatusGone, err.Error())
	case preview.IsVisibilityUnsupported(err):
		writeJSONError(w, http.StatusConflict, err.Error())
	case preview.IsRendererUnavailable(err):
		writeJSONError(w, http.StatusServiceUnavailable, err.Error())
	case scheduler.IsQueueFull(err):
		IncrementBackpressure("render_queue")
		writeJSONError(w, http.StatusTooManyRequests, err.Error())
	default:
		if he, ok := err.(HTTPError); ok {
			writeJSONError(w, he.StatusCode(), he.Error())
			return
		}
		writeJSONError(w, http.StatusInternalServerError, err.Error())
	}
}
