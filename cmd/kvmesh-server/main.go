package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/yndnr/kvmesh/internal/core/service"
	"github.com/yndnr/kvmesh/internal/infra/buildinfo"
	"github.com/yndnr/kvmesh/internal/infra/confloader"
	"github.com/yndnr/kvmesh/internal/infra/shutdown"
	"github.com/yndnr/kvmesh/internal/server/config"
	"github.com/yndnr/kvmesh/internal/server/httpserver"
	"github.com/yndnr/kvmesh/internal/server/redisserver"
	"github.com/yndnr/kvmesh/internal/storage/memory"
	"github.com/yndnr/kvmesh/internal/telemetry/logger"
	"github.com/yndnr/kvmesh/internal/telemetry/metric"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		addr        = flag.String("addr", "", "RESP listen address (overrides server.redis.addr)")
		logLevel    = flag.String("log-level", "", "Log level (overrides log.level)")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("kvmesh-server %s\n", buildinfo.String())
		return nil
	}

	opts := loaderOptions(*configFile, flagOverrides(*addr, *logLevel))

	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	slogLogger := log.Slog()

	info := buildinfo.Get()
	log.Info("starting kvmesh-server",
		"version", info.Version,
		"commit", info.Commit,
		"config", *configFile)

	metrics := metric.NewRegistry()

	store := memory.New(
		memory.WithPresize(cfg.Store.Presize),
		memory.WithExpireHook(metrics.KeyExpired),
	)
	if err := metrics.Register(metric.NewCollector(store.Len)); err != nil {
		return fmt.Errorf("register store metrics: %w", err)
	}

	dispatcher := service.NewDispatcher(store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisServer := redisserver.New(redisConfig(cfg), dispatcher, metrics, slogLogger.With("component", "redis"))
	if err := redisServer.Start(ctx); err != nil {
		return fmt.Errorf("start redis server: %w", err)
	}

	shutdownHandler := shutdown.NewHandler(shutdownTimeout)

	// Hooks run in reverse order: admin first, listener last.
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down redis server")
		return redisServer.Shutdown(ctx)
	})

	if cfg.Server.Admin.Enabled {
		router := httpserver.NewRouter(&httpserver.RouterConfig{
			Store:   store,
			Redis:   redisServer,
			Metrics: metrics.Handler(),
			Logger:  slogLogger.With("component", "admin"),
		})
		adminServer := httpserver.New(cfg.Server.Admin.Addr, router, slogLogger)

		err := adminServer.Start(func(err error) {
			log.Error("admin server error", "error", err)
			shutdownHandler.Trigger()
		})
		if err != nil {
			shutdownHandler.Trigger()
			shutdownHandler.Wait(ctx)
			return fmt.Errorf("start admin server: %w", err)
		}
		log.Info("admin server listening", "addr", adminServer.Addr().String())

		shutdownHandler.OnShutdown(func(ctx context.Context) error {
			log.Info("shutting down admin server")
			return adminServer.Shutdown(ctx)
		})
	}

	if *configFile != "" {
		watcher, err := watchConfig(*configFile, opts, cfg, slogLogger)
		if err != nil {
			log.Warn("config hot reload disabled", "error", err)
		} else {
			shutdownHandler.OnShutdown(func(context.Context) error {
				return watcher.Stop()
			})
		}
	}

	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// flagOverrides maps non-empty command-line flags onto config keys.
func flagOverrides(addr, logLevel string) map[string]any {
	overrides := make(map[string]any)
	if addr != "" {
		overrides["server.redis.addr"] = addr
	}
	if logLevel != "" {
		overrides["log.level"] = logLevel
	}
	return overrides
}

func loaderOptions(configFile string, overrides map[string]any) []confloader.Option {
	return []confloader.Option{
		confloader.WithDefaults(config.DefaultMap()),
		confloader.WithConfigFile(configFile),
		confloader.WithDotEnv(),
		confloader.WithOverrides(overrides),
	}
}

// loadConfig loads configuration from all sources and verifies it.
func loadConfig(opts []confloader.Option) (*config.ServerConfig, error) {
	cfg := config.Default()

	if err := confloader.NewLoader(opts...).Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// initLogger creates the redacting logger and installs it as the default.
func initLogger(cfg *config.ServerConfig) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		Output:    os.Stdout,
		LogValues: cfg.Log.LogValues,
	})
	if err != nil {
		return nil, err
	}

	logger.SetDefault(log)
	return log, nil
}

func redisConfig(cfg *config.ServerConfig) *redisserver.Config {
	r := cfg.Server.Redis
	return &redisserver.Config{
		Address:        r.Addr,
		IdleTimeout:    r.IdleTimeout,
		WriteTimeout:   r.WriteTimeout,
		ReadBufferSize: r.ReadBufferSize,
		RateLimit:      r.RateLimit,
		MaxConnections: r.MaxConnections,
	}
}

// watchConfig reloads the config file on change. Only log.level is applied
// at runtime.
func watchConfig(path string, opts []confloader.Option, current *config.ServerConfig, log *slog.Logger) (*confloader.Watcher, error) {
	watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}
	if err := watcher.Watch(path); err != nil {
		watcher.Stop()
		return nil, err
	}

	watcher.OnChange(func(string) {
		next, err := loadConfig(opts)
		if err != nil {
			log.Warn("config reload failed, keeping current settings", "error", err)
			return
		}
		current = applyReload(current, next, log)
	})
	watcher.StartAsync()

	return watcher, nil
}
