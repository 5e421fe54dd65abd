// Package repl implements the interactive mode of kvmesh-cli.
//
//   - repl.go: read loop, builtins and reply printing
//   - parse.go: quote-aware argument splitting
//   - completer.go: command name completion
//   - history.go: history persisted to ~/.kvmesh/history
package repl
