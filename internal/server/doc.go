// Package server wires and runs the sync server's HTTP transport.
//
// It provides lifecycle orchestration: startup, OS signal handling, and
// graceful shutdown with a bounded drain period for in-flight requests.
package server
