package client

import (
	"context"

	"github.com/MKhiriev/go-pii-labeler/internal/service"
)

// Client runs one labelerctl invocation.
type Client interface {
	// Run executes the subcommand named by args[0] with the remaining args
	// as its flags.
	Run(ctx context.Context, args []string) error
}

// Backend is the database side of the tool.
type Backend interface {
	Migrate() error
	Services() *service.Services
	Close() error
}
