// Package main provides the entry point for kvmesh-server.
//
// The server speaks RESP on server.redis.addr and serves /health, /ready
// and /metrics on server.admin.addr.
//
// Usage:
//
//	kvmesh-server [flags]
//	kvmesh-server --config /path/to/config.yaml --log-level debug
//
// Configuration priority is flags, then KVMESH_* environment variables,
// then .env files, then the YAML file, then defaults. Changing log.level
// in the file takes effect without a restart.
package main
