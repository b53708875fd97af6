// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport used by the client to talk to the
// sync server.
//
// The primary abstraction is [ServerAdapter], which decouples the sync engine
// from the wire protocol. The package ships an HTTP/REST implementation
// ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-todo-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the sync
// server. Implementations are responsible for serialisation, authentication
// headers and mapping transport-level errors to the sentinel values defined in
// this package.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to every authenticated
	// request.
	SetToken(token string)

	// Token returns the current bearer token, or "" if none is set.
	Token() string

	// SetDeviceID stores the device id sent as X-Device-ID with every
	// authenticated request.
	SetDeviceID(deviceID string)

	// Register creates an account. On success the returned bearer token is
	// stored via SetToken.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates the user. On success the returned bearer token is
	// stored via SetToken.
	Login(ctx context.Context, user models.User) (models.User, error)

	// CreateTask submits a task created offline. The server is idempotent on
	// req.ClientRef, so a retried creation returns the task created the first
	// time. The returned task carries the authoritative id.
	CreateTask(ctx context.Context, req models.CreateTaskRequest) (models.Task, error)

	// UpdateTask submits a changed task. Returns [ErrVersionConflict] when
	// another device changed it after req.LastSyncAt with different content.
	UpdateTask(ctx context.Context, req models.UpdateTaskRequest) (models.Task, error)

	// DeleteTask deletes the task. Returns [ErrNotFound] (wrapped) when the
	// server does not know it.
	DeleteTask(ctx context.Context, id string) error

	// Sync exchanges the client's changed records for the server delta.
	Sync(ctx context.Context, req models.SyncRequest) (models.SyncResponse, error)

	// Ping checks that the server is reachable.
	Ping(ctx context.Context) error
}
