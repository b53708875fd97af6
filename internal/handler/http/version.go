package http

import (
	"io"
	"net/http"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
)

// getServerVersion answers the connectivity probe of the clients with the
// plain build version. The answer must never come from a cache, otherwise a
// client would see the server as reachable when it is not.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	version := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)

	if _, err := io.WriteString(w, version); err != nil {
		logger.FromRequest(r).Err(err).Msg("write version")
	}
}
