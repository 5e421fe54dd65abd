// Package config holds the kvmesh-cli settings file (~/.kvmesh/cli.yaml).
//
// The file only supplies defaults; command-line flags and the
// KVMESH_SERVER environment variable take precedence.
package config
