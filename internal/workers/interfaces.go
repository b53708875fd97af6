// Package workers provides abstractions for managing and running
// background workers in the client application.
// It defines the Worker interface, a Workers aggregate that starts and stops
// several workers in a unified way, and the concrete workers: the sync job
// runner and the connectivity watcher.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
// Run starts the worker's execution and returns immediately; the work runs
// in goroutines owned by the worker until ctx is cancelled or Stop is
// called.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    go w.loop(ctx)
//	}
//
//	func (w *MyWorker) Stop() {}
type Worker interface {
	Run(ctx context.Context)
	Stop()
}

// Pinger reports whether the sync server can be reached.
type Pinger interface {
	Ping(ctx context.Context) error
}
