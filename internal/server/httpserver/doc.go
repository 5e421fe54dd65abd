// Package httpserver provides the admin HTTP server for kvmesh-server.
//
// It uses net/http and exposes health, readiness, status and Prometheus
// metrics. Routes live in the handler subpackage; this package adds the
// middleware chain and server lifecycle.
package httpserver
