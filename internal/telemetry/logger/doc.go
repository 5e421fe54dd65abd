// Package logger provides structured logging for kvmesh.
//
// It wraps log/slog:
//
//   - logger.go: logger construction and a process-wide, adjustable level
//   - context.go: context-carried loggers and request IDs
//   - redact.go: masking of secrets and stored values
//
// Stored values are masked by default so that debug logs of set commands
// do not leak data. Config.LogValues turns this off.
package logger
