// Package server runs the labeler's HTTP server.
//
// It handles startup, signal handling and graceful shutdown.
package server
