package benchmark

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/kvmesh/internal/cli/connection"
	"github.com/yndnr/kvmesh/internal/core/service"
	"github.com/yndnr/kvmesh/internal/server/redisserver"
	"github.com/yndnr/kvmesh/internal/storage/memory"
)

// KeyCounts defines the prefilled store sizes for benchmarking.
var KeyCounts = []int{1000, 10000, 100000}

// newKey generates a unique key.
func newKey() string {
	return "key:" + strings.ToLower(ulid.Make().String())
}

// prefillStore prefills a store and returns the keys written.
func prefillStore(store *memory.Store, count int) []string {
	keys := make([]string, count)
	for i := range keys {
		keys[i] = newKey()
		store.Put(keys[i], fmt.Sprintf("value-%d", i), time.Time{})
	}
	return keys
}

// startServer runs a server on loopback for the duration of the benchmark.
func startServer(b *testing.B, store *memory.Store) string {
	b.Helper()
	srv := redisserver.New(&redisserver.Config{
		Address:        "127.0.0.1:0",
		ReadBufferSize: 128 * 1024,
	}, service.NewDispatcher(store), nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	if err := srv.Start(context.Background()); err != nil {
		b.Fatalf("Start error: %v", err)
	}
	b.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	})
	return srv.Addr().String()
}

func newClient(b *testing.B, addr string) *connection.Client {
	b.Helper()
	c := connection.NewClient(addr, 5*time.Second)
	b.Cleanup(func() { c.Close() })
	return c
}
