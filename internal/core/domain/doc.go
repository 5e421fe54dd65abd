// Package domain defines the command model for kvmesh.
//
// The package has no IO dependencies. It contains:
//
//   - Command: the closed set of requests the server understands
//   - ParseCommand: conversion from decoded request arguments to a Command
//   - Errors: client-visible error definitions
package domain
