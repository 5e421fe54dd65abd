// Package connection provides the RESP client used by kvmesh-cli.
package connection
