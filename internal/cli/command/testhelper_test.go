package command

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yndnr/kvmesh/internal/core/service"
	"github.com/yndnr/kvmesh/internal/server/redisserver"
	"github.com/yndnr/kvmesh/internal/storage/memory"
)

// startServer runs a real kvmesh server on a loopback port.
func startServer(t *testing.T) (string, *memory.Store) {
	t.Helper()

	store := memory.New()
	srv := redisserver.New(&redisserver.Config{
		Address:        "127.0.0.1:0",
		IdleTimeout:    time.Second,
		WriteTimeout:   time.Second,
		ReadBufferSize: 64 * 1024,
	}, service.NewDispatcher(store), nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	if err := srv.Start(context.Background()); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	})
	return srv.Addr().String(), store
}

// runApp runs the CLI against addr with an isolated config file and
// returns stdout. stdin feeds the REPL.
func runApp(t *testing.T, addr, stdin string, args ...string) (string, error) {
	t.Helper()
	unsetEnv(t, "KVMESH_SERVER")
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	app := App()
	app.Writer = &out
	app.ErrWriter = io.Discard
	app.Reader = strings.NewReader(stdin)

	full := []string{"kvmesh-cli", "--config", filepath.Join(t.TempDir(), "cli.yaml")}
	if addr != "" {
		full = append(full, "--server", addr)
	}
	full = append(full, args...)

	err := app.Run(full)
	return out.String(), err
}

// unsetEnv removes key for the duration of the test. An empty value would
// still count as set for flag EnvVars.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}
