// Package metric provides Prometheus metrics for kvmesh.
//
//   - prometheus.go: the Registry and its /metrics HTTP handler
//   - collector.go: a collector reporting the store's key count at scrape time
//
// The recording methods of Registry tolerate a nil receiver, so components
// can be built without metrics in tests.
package metric
