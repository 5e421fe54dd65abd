// Package redisserver serves the kvmesh command set over RESP.
//
// Each accepted connection is handled by one goroutine. The goroutine reads
// one chunk of bytes at a time and decodes every complete request frame in
// it, in order. Replies for a chunk are buffered and flushed together.
//
// Error policy:
//   - A malformed frame gets an "ERR Protocol error" reply; the rest of the
//     chunk is dropped and the connection stays open.
//   - A frame over the protocol limits gets an error reply and the
//     connection is closed.
//   - Command errors are ordinary error replies.
//
// Supported commands: echo, ping, set (with px), get.
package redisserver
