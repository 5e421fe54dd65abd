package config

import "time"

// CLIConfig is the configuration for kvmesh-cli.
type CLIConfig struct {
	DefaultServer string        `yaml:"default_server"`
	DefaultOutput string        `yaml:"default_output"` // text, json, yaml
	Timeout       time.Duration `yaml:"timeout"`

	// Empty selects ~/.kvmesh/history.
	HistoryFile string `yaml:"history_file,omitempty"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		DefaultServer: "127.0.0.1:6379",
		DefaultOutput: "text",
		Timeout:       5 * time.Second,
	}
}
