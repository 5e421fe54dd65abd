package config

import "time"

// Default configuration values.
const (
	DefaultRedisAddr      = "127.0.0.1:6379"
	DefaultIdleTimeout    = 5 * time.Minute
	DefaultWriteTimeout   = 30 * time.Second
	DefaultReadBufferSize = 64 * 1024

	DefaultAdminAddr = "127.0.0.1:9121"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			Redis: RedisConfig{
				Addr:           DefaultRedisAddr,
				IdleTimeout:    DefaultIdleTimeout,
				WriteTimeout:   DefaultWriteTimeout,
				ReadBufferSize: DefaultReadBufferSize,
			},
			Admin: AdminConfig{
				Enabled: true,
				Addr:    DefaultAdminAddr,
			},
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// DefaultMap returns Default as a flat map of dotted koanf keys, suitable
// for confloader.WithDefaults.
func DefaultMap() map[string]any {
	d := Default()
	return map[string]any{
		"server.redis.addr":             d.Server.Redis.Addr,
		"server.redis.idle_timeout":     d.Server.Redis.IdleTimeout,
		"server.redis.write_timeout":    d.Server.Redis.WriteTimeout,
		"server.redis.read_buffer_size": d.Server.Redis.ReadBufferSize,
		"server.redis.rate_limit":       d.Server.Redis.RateLimit,
		"server.redis.max_connections":  d.Server.Redis.MaxConnections,
		"server.admin.enabled":          d.Server.Admin.Enabled,
		"server.admin.addr":             d.Server.Admin.Addr,
		"store.presize":                 d.Store.Presize,
		"log.level":                     d.Log.Level,
		"log.format":                    d.Log.Format,
		"log.log_values":                d.Log.LogValues,
	}
}
