// Package config defines the server configuration structure.
package config

import "time"

// ServerConfig is the root configuration for kvmesh-server.
type ServerConfig struct {
	Server ServerSection `koanf:"server"`
	Store  StoreSection  `koanf:"store"`
	Log    LogSection    `koanf:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	Redis RedisConfig `koanf:"redis"`
	Admin AdminConfig `koanf:"admin"`
}

// RedisConfig configures the RESP listener.
type RedisConfig struct {
	Addr         string        `koanf:"addr"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// ReadBufferSize is the per-read chunk size. A request frame must fit
	// in one chunk.
	ReadBufferSize int `koanf:"read_buffer_size"`

	// RateLimit is commands per second per connection (0 = unlimited).
	RateLimit int `koanf:"rate_limit"`

	// MaxConnections caps concurrent clients (0 = unlimited).
	MaxConnections int `koanf:"max_connections"`
}

// AdminConfig configures the HTTP endpoint for health and metrics.
type AdminConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// StoreSection configures the in-memory store.
type StoreSection struct {
	// Presize is the expected key count, used to size the map up front.
	Presize int `koanf:"presize"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`

	// LogValues includes stored values in debug logs instead of masking them.
	LogValues bool `koanf:"log_values"`
}
