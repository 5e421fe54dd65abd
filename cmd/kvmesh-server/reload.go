package main

import (
	"log/slog"

	"github.com/yndnr/kvmesh/internal/server/config"
	"github.com/yndnr/kvmesh/internal/telemetry/logger"
)

// applyReload switches to next's log level and reports sections that only
// take effect after a restart. It returns the config now in effect.
func applyReload(current, next *config.ServerConfig, log *slog.Logger) *config.ServerConfig {
	if next.Log.Level != current.Log.Level {
		logger.SetLevel(next.Log.Level)
		log.Info("log level changed", "from", current.Log.Level, "to", next.Log.Level)
	}

	if changed := restartFields(current, next); len(changed) > 0 {
		log.Warn("config changes require a restart", "sections", changed)
	}

	applied := *current
	applied.Log.Level = next.Log.Level
	return &applied
}

// restartFields lists the sections that differ, apart from log.level.
func restartFields(current, next *config.ServerConfig) []string {
	var changed []string
	if current.Server.Redis != next.Server.Redis {
		changed = append(changed, "server.redis")
	}
	if current.Server.Admin != next.Server.Admin {
		changed = append(changed, "server.admin")
	}
	if current.Store != next.Store {
		changed = append(changed, "store")
	}
	if current.Log.Format != next.Log.Format || current.Log.LogValues != next.Log.LogValues {
		changed = append(changed, "log")
	}
	return changed
}
