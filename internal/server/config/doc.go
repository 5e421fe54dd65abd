// Package config provides server configuration for kvmesh.
//
//   - spec.go: ServerConfig struct definition
//   - default.go: Default configuration values
//   - verify.go: Validation (address formats, bounds, log settings)
//
// Configuration is loaded via internal/infra/confloader and supports
// multiple sources: files, environment variables, .env files and flags.
package config
