package connection

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/yndnr/kvmesh/pkg/resp"
)

// DefaultTimeout bounds dialing and each request round trip.
const DefaultTimeout = 5 * time.Second

// ErrClosed is returned by Do after Close.
var ErrClosed = errors.New("connection: client closed")

// Client is a RESP client holding one TCP connection to a kvmesh server.
// The connection is dialed lazily and redialed after a transport error.
// Calls are serialized.
type Client struct {
	addr    string
	timeout time.Duration
	dialer  net.Dialer

	mu     sync.Mutex
	conn   net.Conn
	br     *bufio.Reader
	bw     *bufio.Writer
	closed bool
}

// NewClient creates a client for addr. A non-positive timeout selects
// DefaultTimeout.
func NewClient(addr string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		addr:    addr,
		timeout: timeout,
		dialer:  net.Dialer{Timeout: timeout},
	}
}

// Addr returns the server address.
func (c *Client) Addr() string {
	return c.addr
}

// Do sends args as one request and reads one reply. Server error replies are
// returned as resp.Error values with a nil error; the error result is only
// set for transport and protocol failures.
func (c *Client) Do(ctx context.Context, args ...string) (resp.Reply, error) {
	if len(args) == 0 {
		return nil, errors.New("connection: empty command")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClosed
	}
	if err := c.connect(ctx); err != nil {
		return nil, err
	}

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = c.conn.SetDeadline(deadline)

	reply, err := c.roundTrip(args)
	if err != nil {
		c.reset()
		return nil, fmt.Errorf("%s %s: %w", args[0], c.addr, err)
	}
	return reply, nil
}

func (c *Client) roundTrip(args []string) (resp.Reply, error) {
	if err := resp.WriteRequest(c.bw, args...); err != nil {
		return nil, err
	}
	if err := c.bw.Flush(); err != nil {
		return nil, err
	}
	return resp.ReadReply(c.br)
}

func (c *Client) connect(ctx context.Context) error {
	if c.conn != nil {
		return nil
	}
	conn, err := c.dialer.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return fmt.Errorf("connect %s: %w", c.addr, err)
	}
	c.conn = conn
	c.br = bufio.NewReader(conn)
	c.bw = bufio.NewWriter(conn)
	return nil
}

// reset drops the connection after a failure; the stream may hold a partial
// frame.
func (c *Client) reset() {
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.conn, c.br, c.bw = nil, nil, nil
}

// Close closes the connection. Further calls to Do fail with ErrClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn, c.br, c.bw = nil, nil, nil
	return err
}
