package handler

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/yndnr/kvmesh/internal/telemetry/logger"
)

// Error codes used in error envelopes.
const (
	CodeNotReady = "KV-SYS-5030"
	CodeInternal = "KV-SYS-5000"
)

// KeyCounter reports the number of live keys.
type KeyCounter interface {
	Len() int
}

// RedisStatus describes the RESP listener.
type RedisStatus interface {
	// Addr is nil until the listener is bound.
	Addr() net.Addr
	ConnCount() int
}

// Config wires the handler to the running server.
type Config struct {
	Store   KeyCounter
	Redis   RedisStatus
	Metrics http.Handler
	Logger  *slog.Logger
}

// Handler serves the admin endpoints.
type Handler struct {
	store   KeyCounter
	redis   RedisStatus
	metrics http.Handler
	logger  *slog.Logger
	started time.Time
	mux     *http.ServeMux
}

// New creates a Handler. Store and Redis may be nil; the corresponding
// counters then read zero and /ready reports ready.
func New(cfg Config) *Handler {
	h := &Handler{
		store:   cfg.Store,
		redis:   cfg.Redis,
		metrics: cfg.Metrics,
		logger:  cfg.Logger,
		started: time.Now(),
		mux:     http.NewServeMux(),
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}

	h.registerRoutes()
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.mux.HandleFunc("GET /health", h.handleHealth)
	h.mux.HandleFunc("GET /ready", h.handleReady)
	h.mux.HandleFunc("GET /admin/v1/status/summary", h.handleAdminStatus)

	if h.metrics != nil {
		h.mux.Handle("GET /metrics", h.metrics)
	}
}

// writeJSON writes a JSON response with standard envelope format.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	requestID := getRequestID(r)
	response := NewResponse(requestID, data)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// writeError writes an error response with standard envelope format.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, details any) {
	requestID := getRequestID(r)
	response := NewErrorResponse(requestID, code, message, details)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", code)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// getRequestID prefers the ID set by the RequestID middleware.
func getRequestID(r *http.Request) string {
	if id := logger.RequestIDFromContext(r.Context()); id != "" {
		return id
	}
	return r.Header.Get("X-Request-ID")
}

func (h *Handler) keyCount() int {
	if h.store == nil {
		return 0
	}
	return h.store.Len()
}
