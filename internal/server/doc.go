// Package server runs the transports of the todo sync server: the chi
// router over HTTP and the gRPC health endpoint.
//
// Both transports share one lifecycle. They start together, stop together
// when the process receives a shutdown signal, and a failure of either one
// stops the other.
package server
