// Package buildinfo exposes version information for kvmesh binaries.
//
// Values are injected at build time via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/kvmesh/internal/infra/buildinfo.Version=v1.0.0"
package buildinfo
