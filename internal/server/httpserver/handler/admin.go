package handler

import (
	"net/http"
	"time"

	"github.com/yndnr/kvmesh/internal/infra/buildinfo"
)

// handleAdminStatus handles GET /admin/v1/status/summary.
func (h *Handler) handleAdminStatus(w http.ResponseWriter, r *http.Request) {
	info := buildinfo.Get()
	summary := StatusSummary{
		Status:        "running",
		Version:       info.Version,
		Commit:        info.Commit,
		GoVersion:     info.GoVersion,
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
		Keys:          h.keyCount(),
	}

	if h.redis != nil {
		summary.Connections = h.redis.ConnCount()
		if addr := h.redis.Addr(); addr != nil {
			summary.RedisAddr = addr.String()
		}
	}

	h.writeJSON(w, r, http.StatusOK, summary)
}
