// Package handler implements the kvmesh admin HTTP endpoints.
//
// Routes:
//
//	GET /health                    liveness
//	GET /ready                     readiness, version and key count
//	GET /admin/v1/status/summary   uptime, keys, connections, build info
//	GET /metrics                   Prometheus exposition
//
// JSON responses share the Response envelope.
package handler
