package redisserver

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/yndnr/kvmesh/internal/core/domain"
	"github.com/yndnr/kvmesh/internal/core/service"
	"github.com/yndnr/kvmesh/internal/telemetry/metric"
	"github.com/yndnr/kvmesh/pkg/resp"
)

// labelUnknown groups unrecognized names so metric cardinality stays bounded.
const labelUnknown = "unknown"

// CommandHandler executes requests on behalf of a connection.
type CommandHandler struct {
	dispatcher Dispatcher
	logger     *slog.Logger
	metrics    *metric.Registry
	rateLimit  int
}

// NewCommandHandler creates a new CommandHandler. rateLimit is commands per
// second per connection; 0 disables limiting.
func NewCommandHandler(dispatcher Dispatcher, rateLimit int, metrics *metric.Registry, logger *slog.Logger) *CommandHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &CommandHandler{
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
		rateLimit:  rateLimit,
	}
}

// newLimiter returns a token bucket for one connection, or nil when
// limiting is disabled. The burst equals one second's allowance.
func (h *CommandHandler) newLimiter() *rate.Limiter {
	if h.rateLimit <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(h.rateLimit), h.rateLimit)
}

// Handle executes one decoded request and returns its reply.
func (h *CommandHandler) Handle(conn *Conn, args []string) resp.Reply {
	if len(args) == 0 {
		return service.ErrorReply(domain.ErrProtocolFrame.WithDetails("empty command"))
	}

	label := commandLabel(args[0])

	if conn != nil && conn.limiter != nil && !conn.limiter.Allow() {
		h.metrics.RateLimit()
		h.logger.Debug("command rate limited", "conn", conn.id, "command", label)
		return service.ErrorReply(domain.ErrRateLimited)
	}

	start := time.Now()
	reply := h.dispatcher.Dispatch(args)
	h.metrics.ObserveCommand(label, time.Since(start))

	if h.logger.Enabled(context.Background(), slog.LevelDebug) {
		h.logger.Debug("command", commandAttrs(conn, label, args, reply)...)
	}

	return reply
}

// commandLabel maps a request name to its metric label.
func commandLabel(name string) string {
	switch name {
	case domain.NameEcho, domain.NamePing, domain.NameSet, domain.NameGet:
		return name
	default:
		return labelUnknown
	}
}

func commandAttrs(conn *Conn, label string, args []string, reply resp.Reply) []any {
	attrs := make([]any, 0, 10)
	if conn != nil {
		attrs = append(attrs, "conn", conn.id)
	}
	attrs = append(attrs, "command", label)

	switch label {
	case domain.NameGet:
		if len(args) > 1 {
			attrs = append(attrs, "key", args[1])
		}
	case domain.NameSet:
		if len(args) > 2 {
			attrs = append(attrs, "key", args[1], "value", args[2])
		}
	}

	if e, ok := reply.(resp.Error); ok {
		attrs = append(attrs, "error", string(e))
	}
	return attrs
}
