package handler

import (
	"net/http"
	"time"

	"github.com/yndnr/kvmesh/internal/infra/buildinfo"
)

// handleHealth handles GET /health. It only reports that the process serves HTTP.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, HealthResponse{
		Status: "healthy",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleReady handles GET /ready. The node is ready once the RESP listener
// is bound.
func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	if h.redis != nil && h.redis.Addr() == nil {
		h.writeError(w, r, http.StatusServiceUnavailable, CodeNotReady, "redis listener not started", nil)
		return
	}

	h.writeJSON(w, r, http.StatusOK, ReadyResponse{
		Status:  "ready",
		Version: buildinfo.Get().Version,
		Keys:    h.keyCount(),
	})
}
