package redisserver

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/kvmesh/internal/core/domain"
	"github.com/yndnr/kvmesh/internal/core/service"
	"github.com/yndnr/kvmesh/internal/telemetry/metric"
	"github.com/yndnr/kvmesh/pkg/resp"
)

// Config holds the Redis server configuration.
type Config struct {
	// Address is the TCP address to listen on.
	Address string
	// IdleTimeout closes a connection that sends nothing for this long.
	// Zero disables the timeout.
	IdleTimeout time.Duration
	// WriteTimeout bounds each reply flush. Zero disables the timeout.
	WriteTimeout time.Duration
	// ReadBufferSize is the largest chunk read from a connection at once.
	// A request frame must fit in one chunk.
	ReadBufferSize int
	// RateLimit is the maximum number of commands per second per connection.
	// Set to 0 to disable rate limiting.
	RateLimit int
	// MaxConnections caps concurrent client connections. 0 means unlimited.
	MaxConnections int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Address:        "127.0.0.1:6379",
		IdleTimeout:    5 * time.Minute,
		WriteTimeout:   30 * time.Second,
		ReadBufferSize: 64 * 1024,
		RateLimit:      0,
		MaxConnections: 0,
	}
}

// Dispatcher executes one decoded request.
type Dispatcher interface {
	Dispatch(args []string) resp.Reply
}

// Server represents the Redis protocol server.
type Server struct {
	cfg     *Config
	handler *CommandHandler
	logger  *slog.Logger
	metrics *metric.Registry

	lnMu sync.Mutex
	ln   net.Listener

	connsMu sync.Mutex
	conns   map[*Conn]struct{}

	running atomic.Bool
	wg      sync.WaitGroup
}

// Conn represents a single client connection.
type Conn struct {
	id      string
	netConn net.Conn
	bw      *bufio.Writer

	// chunk decoding state, reset for every read
	src *bytes.Reader
	br  *bufio.Reader

	limiter *rate.Limiter

	closed atomic.Bool
}

func newConn(c net.Conn, limiter *rate.Limiter) *Conn {
	src := bytes.NewReader(nil)
	return &Conn{
		id:      ulid.Make().String(),
		netConn: c,
		bw:      bufio.NewWriter(c),
		src:     src,
		br:      bufio.NewReader(src),
		limiter: limiter,
	}
}

// ID returns the connection's unique identifier.
func (c *Conn) ID() string {
	return c.id
}

func (c *Conn) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.netConn.Close()
}

func (c *Conn) RemoteAddr() net.Addr {
	return c.netConn.RemoteAddr()
}

// New creates a new Redis protocol server. metrics may be nil.
func New(cfg *Config, dispatcher Dispatcher, metrics *metric.Registry, logger *slog.Logger) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ReadBufferSize <= 0 {
		cfg.ReadBufferSize = DefaultConfig().ReadBufferSize
	}

	return &Server{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
		handler: NewCommandHandler(dispatcher, cfg.RateLimit, metrics, logger),
		conns:   make(map[*Conn]struct{}),
	}
}

// Start binds the listener and begins accepting connections in the
// background. It returns once the address is bound.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return err
	}

	s.lnMu.Lock()
	s.ln = ln
	s.lnMu.Unlock()

	s.running.Store(true)
	s.logger.Info("redis server listening", "address", ln.Addr().String())

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.acceptLoop(ctx, ln); err != nil && s.running.Load() {
			s.logger.Error("redis server error", "error", err)
		}
	}()

	return nil
}

// Addr returns the bound listener address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.lnMu.Lock()
	defer s.lnMu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// ConnCount returns the number of open client connections.
func (s *Server) ConnCount() int {
	s.connsMu.Lock()
	defer s.connsMu.Unlock()
	return len(s.conns)
}

// Shutdown stops accepting, closes live connections and waits for their
// goroutines to exit or ctx to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	s.running.Store(false)

	var firstErr error

	// Close listener to break the accept loop.
	s.lnMu.Lock()
	if s.ln != nil {
		if err := s.ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			firstErr = err
		}
	}
	s.lnMu.Unlock()

	// Close connections to unblock pending reads.
	s.connsMu.Lock()
	for c := range s.conns {
		_ = c.Close()
	}
	s.connsMu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	return firstErr
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) error {
	for {
		nc, err := ln.Accept()
		if err != nil {
			if !s.running.Load() {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			return err
		}

		c := newConn(nc, s.handler.newLimiter())
		if !s.track(c) {
			if !s.running.Load() {
				_ = c.Close()
				return nil
			}
			s.reject(c)
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.untrack(c)
			s.serveConn(ctx, c)
		}()
	}
}

// track registers c unless the server is stopping or the connection limit
// is reached.
func (s *Server) track(c *Conn) bool {
	s.connsMu.Lock()
	defer s.connsMu.Unlock()

	if !s.running.Load() {
		return false
	}
	if s.cfg.MaxConnections > 0 && len(s.conns) >= s.cfg.MaxConnections {
		return false
	}
	s.conns[c] = struct{}{}
	s.metrics.ConnOpened()
	return true
}

func (s *Server) untrack(c *Conn) {
	s.connsMu.Lock()
	delete(s.conns, c)
	s.connsMu.Unlock()
	s.metrics.ConnClosed()
}

func (s *Server) reject(c *Conn) {
	s.metrics.ConnRejected()
	s.logger.Warn("connection rejected", "remote", c.RemoteAddr(), "max_connections", s.cfg.MaxConnections)

	s.setWriteDeadline(c)
	_ = resp.WriteReply(c.bw, service.ErrorReply(domain.ErrMaxClients))
	_ = c.bw.Flush()
	_ = c.Close()
}

func (s *Server) serveConn(ctx context.Context, c *Conn) {
	defer c.Close()

	log := s.logger.With("conn", c.id)
	log.Debug("connection opened", "remote", c.RemoteAddr())

	buf := make([]byte, s.cfg.ReadBufferSize)
	for {
		if s.cfg.IdleTimeout > 0 {
			if err := c.netConn.SetReadDeadline(time.Now().Add(s.cfg.IdleTimeout)); err != nil {
				return
			}
		}

		n, err := c.netConn.Read(buf)
		if n > 0 {
			closeConn := s.handleChunk(c, buf[:n], log)

			s.setWriteDeadline(c)
			if ferr := c.bw.Flush(); ferr != nil {
				log.Debug("write failed", "error", ferr)
				return
			}
			if closeConn {
				return
			}
		}

		if err != nil {
			switch {
			case errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed):
				log.Debug("connection closed")
			case isTimeout(err):
				log.Debug("connection timed out")
			default:
				log.Debug("connection read error", "error", err)
			}
			return
		}

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// handleChunk decodes and executes every frame in chunk, buffering the
// replies in c.bw. It reports whether the connection must be closed.
func (s *Server) handleChunk(c *Conn, chunk []byte, log *slog.Logger) bool {
	c.src.Reset(chunk)
	c.br.Reset(c.src)

	for {
		args, err := resp.ReadCommand(c.br)
		if err == io.EOF {
			return false
		}

		if err != nil {
			s.metrics.ProtocolError()
			reply := service.ErrorReply(domain.ErrProtocolFrame.WithDetails(protocolDetail(err)))
			_ = resp.WriteReply(c.bw, reply)

			if errors.Is(err, resp.ErrLimitExceeded) {
				log.Warn("protocol limit exceeded", "remote", c.RemoteAddr(), "error", err)
				return true
			}
			log.Debug("protocol error", "error", err, "discarded", c.br.Buffered()+c.src.Len())
			return false
		}

		_ = resp.WriteReply(c.bw, s.handler.Handle(c, args))
	}
}

func (s *Server) setWriteDeadline(c *Conn) {
	if s.cfg.WriteTimeout > 0 {
		_ = c.netConn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	}
}

// protocolDetail strips the codec's sentinel prefix from err.
func protocolDetail(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{resp.ErrProtocol, resp.ErrLimitExceeded} {
		if rest, ok := strings.CutPrefix(msg, sentinel.Error()); ok {
			return strings.TrimPrefix(rest, ": ")
		}
	}
	return msg
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
