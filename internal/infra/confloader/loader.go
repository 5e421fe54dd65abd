package confloader

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/maps"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultEnvPrefix is the default environment variable prefix.
const DefaultEnvPrefix = "KVMESH_"

// DefaultDotEnvFiles are read, in order, when dotenv loading is enabled.
// Variables already present in the process environment are never overridden.
var DefaultDotEnvFiles = []string{".env", ".env.local"}

// Loader loads configuration from multiple sources.
type Loader struct {
	k         *koanf.Koanf
	envPrefix string
	filePath  string
	dotEnv    []string
	defaults  map[string]any
	overrides map[string]any
	loaded    bool
}

// Option is a function that configures the Loader.
type Option func(*Loader)

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) {
		l.envPrefix = prefix
	}
}

// WithConfigFile sets the configuration file path.
func WithConfigFile(path string) Option {
	return func(l *Loader) {
		l.filePath = path
	}
}

// WithDotEnv enables loading of dotenv files before the environment is read.
// With no arguments DefaultDotEnvFiles is used. Missing files are skipped.
func WithDotEnv(files ...string) Option {
	return func(l *Loader) {
		if len(files) == 0 {
			files = DefaultDotEnvFiles
		}
		l.dotEnv = files
	}
}

// WithDefaults sets the lowest-priority values as a flat map of dotted keys.
// The keys also drive environment variable resolution, so
// KVMESH_SERVER_REDIS_READ_BUFFER_SIZE maps to server.redis.read_buffer_size
// when that key has a default.
func WithDefaults(defaults map[string]any) Option {
	return func(l *Loader) {
		l.defaults = defaults
	}
}

// WithOverrides sets the highest-priority values, typically command-line
// flags, as a flat map of dotted keys.
func WithOverrides(overrides map[string]any) Option {
	return func(l *Loader) {
		l.overrides = overrides
	}
}

// NewLoader creates a new configuration loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		k:         koanf.New("."),
		envPrefix: DefaultEnvPrefix,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load loads configuration from all sources and unmarshals into target.
// Loading order (later sources override earlier):
//  1. Defaults (WithDefaults)
//  2. Configuration file (YAML)
//  3. Dotenv files (only fill variables not already set)
//  4. Environment variables
//  5. Overrides (WithOverrides)
//
// Fields of target with no loaded key keep their current value.
func (l *Loader) Load(target any) error {
	if l.defaults != nil {
		if err := l.LoadMap(l.defaults); err != nil {
			return fmt.Errorf("load defaults: %w", err)
		}
	}

	if l.filePath != "" {
		if err := l.LoadFile(l.filePath); err != nil {
			return fmt.Errorf("load config file: %w", err)
		}
	}

	if len(l.dotEnv) > 0 {
		if err := LoadDotEnv(l.dotEnv...); err != nil {
			return fmt.Errorf("load dotenv: %w", err)
		}
	}

	if err := l.LoadEnv(); err != nil {
		return fmt.Errorf("load env: %w", err)
	}

	if len(l.overrides) > 0 {
		if err := l.LoadMap(l.overrides); err != nil {
			return fmt.Errorf("load overrides: %w", err)
		}
	}

	if err := l.Unmarshal(target); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	l.loaded = true
	return nil
}

// LoadFile loads configuration from a YAML file.
func (l *Loader) LoadFile(path string) error {
	if path == "" {
		return nil
	}

	provider := file.Provider(path)
	if err := l.k.Load(provider, yaml.Parser()); err != nil {
		return fmt.Errorf("load file %s: %w", path, err)
	}

	return nil
}

// LoadEnv loads configuration from environment variables.
// Environment variables use the format: KVMESH_SECTION_KEY (uppercase, underscores).
// Example: KVMESH_SERVER_REDIS_ADDR=0.0.0.0:6379
func (l *Loader) LoadEnv() error {
	known := make(map[string]string)
	for _, key := range l.k.Keys() {
		known[strings.ReplaceAll(key, ".", "_")] = key
	}

	provider := env.Provider(l.envPrefix, ".", func(s string) string {
		return envKey(strings.TrimPrefix(s, l.envPrefix), known)
	})
	if err := l.k.Load(provider, nil); err != nil {
		return fmt.Errorf("load env: %w", err)
	}

	return nil
}

// envKey maps an unprefixed variable name to a config key. Known keys win so
// that snake_case leaves survive; otherwise every underscore is a level.
func envKey(name string, known map[string]string) string {
	name = strings.ToLower(name)
	if key, ok := known[name]; ok {
		return key
	}
	return strings.ReplaceAll(name, "_", ".")
}

// LoadMap loads configuration from a map (useful for flags or testing).
// Dotted keys are expanded into nested sections.
func (l *Loader) LoadMap(data map[string]any) error {
	if err := l.k.Load(mapProvider(maps.Unflatten(data, ".")), nil); err != nil {
		return fmt.Errorf("load map: %w", err)
	}
	return nil
}

// LoadDotEnv reads dotenv files into the process environment. Missing files
// are skipped and existing variables are kept.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("%s: %w", f, err)
		}
	}
	return nil
}

// Unmarshal unmarshals the loaded configuration into the target struct.
// Uses koanf tags for struct field mapping.
func (l *Loader) Unmarshal(target any) error {
	return l.k.Unmarshal("", target)
}

// Get returns a value from the configuration by key.
func (l *Loader) Get(key string) any {
	return l.k.Get(key)
}

// GetString returns a string value from the configuration.
func (l *Loader) GetString(key string) string {
	return l.k.String(key)
}

// GetInt returns an int value from the configuration.
func (l *Loader) GetInt(key string) int {
	return l.k.Int(key)
}

// GetBool returns a bool value from the configuration.
func (l *Loader) GetBool(key string) bool {
	return l.k.Bool(key)
}

// IsLoaded returns true if configuration has been loaded.
func (l *Loader) IsLoaded() bool {
	return l.loaded
}

// Keys returns all configuration keys.
func (l *Loader) Keys() []string {
	return l.k.Keys()
}
