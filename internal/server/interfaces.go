package server

import "context"

// Server runs the transports of the sync server.
type Server interface {
	// Run serves until ctx is cancelled or one of the transports fails,
	// then shuts every transport down. A clean stop returns nil.
	Run(ctx context.Context) error

	// Shutdown stops the transports without waiting for ctx.
	Shutdown()
}
