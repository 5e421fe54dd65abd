package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/yndnr/kvmesh/internal/telemetry/logger"
	"github.com/yndnr/kvmesh/pkg/resp"
)

// Read buffer bounds. The upper bound admits one maximal bulk string plus
// its header and terminator.
const (
	MinReadBufferSize = 512
	MaxReadBufferSize = resp.MaxBulkLen + 64
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if err := verifyRedis(&cfg.Server.Redis); err != nil {
		return err
	}
	if err := verifyAdmin(&cfg.Server.Admin, &cfg.Server.Redis); err != nil {
		return err
	}
	if err := verifyStore(&cfg.Store); err != nil {
		return err
	}
	return verifyLog(&cfg.Log)
}

func verifyRedis(cfg *RedisConfig) error {
	if err := verifyAddr("server.redis.addr", cfg.Addr); err != nil {
		return err
	}
	if cfg.IdleTimeout < 0 {
		return errors.New("server.redis.idle_timeout must not be negative")
	}
	if cfg.WriteTimeout < 0 {
		return errors.New("server.redis.write_timeout must not be negative")
	}
	if cfg.ReadBufferSize < MinReadBufferSize || cfg.ReadBufferSize > MaxReadBufferSize {
		return fmt.Errorf("server.redis.read_buffer_size must be between %d and %d", MinReadBufferSize, MaxReadBufferSize)
	}
	if cfg.RateLimit < 0 {
		return errors.New("server.redis.rate_limit must not be negative")
	}
	if cfg.MaxConnections < 0 {
		return errors.New("server.redis.max_connections must not be negative")
	}
	return nil
}

func verifyAdmin(cfg *AdminConfig, redis *RedisConfig) error {
	if !cfg.Enabled {
		return nil
	}
	if err := verifyAddr("server.admin.addr", cfg.Addr); err != nil {
		return err
	}
	if cfg.Addr == redis.Addr && !strings.HasSuffix(cfg.Addr, ":0") {
		return fmt.Errorf("server.admin.addr conflicts with server.redis.addr (%s)", cfg.Addr)
	}
	return nil
}

func verifyStore(cfg *StoreSection) error {
	if cfg.Presize < 0 {
		return errors.New("store.presize must not be negative")
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	if !logger.ValidLevel(cfg.Level) {
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", cfg.Level)
	}
	switch strings.ToLower(cfg.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format %q must be json or text", cfg.Format)
	}
	return nil
}

// verifyAddr checks that addr is host:port with a valid port number.
func verifyAddr(field, addr string) error {
	if addr == "" {
		return fmt.Errorf("%s is required", field)
	}
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	n, err := strconv.Atoi(port)
	if err != nil || n < 0 || n > 65535 {
		return fmt.Errorf("%s: invalid port %q", field, port)
	}
	return nil
}
