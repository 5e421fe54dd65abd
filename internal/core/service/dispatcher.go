package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/yndnr/kvmesh/internal/core/domain"
	"github.com/yndnr/kvmesh/pkg/resp"
)

// Storage defines the store operations the dispatcher needs.
type Storage interface {
	// Put replaces the entry for key. A zero expiresAt means no expiry.
	Put(key, value string, expiresAt time.Time)

	// Get returns the live value for key, deleting it if expired.
	Get(key string) (string, bool)
}

// Dispatcher executes commands against a Storage.
type Dispatcher struct {
	store Storage
	now   func() time.Time
}

// DispatcherOption configures the Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithClock sets the time source used to compute absolute expiry.
func WithClock(now func() time.Time) DispatcherOption {
	return func(d *Dispatcher) {
		d.now = now
	}
}

// NewDispatcher creates a Dispatcher over store.
func NewDispatcher(store Storage, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch parses args and executes the resulting command.
// Parse failures are returned as error replies.
func (d *Dispatcher) Dispatch(args []string) resp.Reply {
	cmd, err := domain.ParseCommand(args)
	if err != nil {
		return ErrorReply(err)
	}
	return d.Execute(cmd)
}

// Execute runs cmd and returns its reply.
func (d *Dispatcher) Execute(cmd domain.Command) resp.Reply {
	switch c := cmd.(type) {
	case domain.Echo:
		return resp.SimpleString(c.Message)

	case domain.Ping:
		return resp.SimpleString("PONG")

	case domain.Set:
		var expiresAt time.Time
		if c.HasExpiry() {
			expiresAt = d.now().Add(c.TTL)
		}
		d.store.Put(c.Key, c.Value, expiresAt)
		return resp.SimpleString("OK")

	case domain.Get:
		value, ok := d.store.Get(c.Key)
		if !ok {
			return resp.NullBulk()
		}
		return resp.Bulk(value)

	case domain.Unknown:
		return ErrorReply(domain.UnknownCommandError(c.Command))

	default:
		return ErrorReply(fmt.Errorf("unhandled command %T", cmd))
	}
}

// ErrorReply converts err into an error reply.
// Domain errors are sent verbatim; anything else gets the ERR prefix.
func ErrorReply(err error) resp.Error {
	var de *domain.DomainError
	if errors.As(err, &de) {
		return resp.Error(de.Error())
	}
	return resp.Error(domain.ReplyPrefix + " " + err.Error())
}
