package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/yndnr/kvmesh/internal/server/httpserver/handler"
)

// RouterConfig holds configuration for the admin router.
type RouterConfig struct {
	// Store reports the key count for /ready and the status summary.
	Store handler.KeyCounter

	// Redis reports listener state and open connections.
	Redis handler.RedisStatus

	// Metrics serves GET /metrics. Nil disables the route.
	Metrics http.Handler

	// Logger for request logging.
	Logger *slog.Logger
}

// NewRouter creates the admin handler with its middleware chain.
// Order: Recover -> RequestID -> AccessLog -> handler.
func NewRouter(cfg *RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	h := handler.New(handler.Config{
		Store:   cfg.Store,
		Redis:   cfg.Redis,
		Metrics: cfg.Metrics,
		Logger:  log,
	})

	return Chain(h,
		Recover(log),
		RequestID(),
		AccessLog(log),
	)
}
