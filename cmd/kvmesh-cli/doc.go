// Package main provides the entry point for kvmesh-cli.
//
// kvmesh-cli sends single commands or runs an interactive session:
//
//	kvmesh-cli -s 127.0.0.1:6379 set greeting hello --px 5000
//	kvmesh-cli get greeting
//	kvmesh-cli            # interactive
package main
