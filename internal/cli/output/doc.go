// Package output renders server replies for kvmesh-cli.
//
// Supported formats:
//
//   - text: redis-cli style (OK, "value", (nil), (error) ...)
//   - json: {"type": ..., "value": ...}
//   - yaml: the same structure as json
package output
