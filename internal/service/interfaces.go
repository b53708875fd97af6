package service

import (
	"context"

	"github.com/MKhiriev/go-todo-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_service_mock.go -package=mock

// TaskSyncService is the server side of the task exchange. Every method acts
// on behalf of userID; deviceID identifies the client that sent the request.
type TaskSyncService interface {
	// CreateTask stores a new task under a fresh id. A retry with the same
	// client reference returns the task created by the first attempt.
	CreateTask(ctx context.Context, userID int64, deviceID string, req models.CreateTaskRequest) (models.Task, error)

	// UpdateTask returns ErrTaskNotFound for unknown or deleted tasks and
	// ErrVersionConflict when another device changed the task after
	// req.LastSyncAt.
	UpdateTask(ctx context.Context, userID int64, deviceID string, req models.UpdateTaskRequest) (models.Task, error)

	// DeleteTask turns the task into a tombstone. Deleting a tombstone is a
	// no-op; an unknown id yields ErrTaskNotFound.
	DeleteTask(ctx context.Context, userID int64, deviceID string, id string) error

	// Sync returns every change after req.LastSyncAt and the conflicts found
	// among req.ChangedRecords.
	Sync(ctx context.Context, userID int64, deviceID string, req models.SyncRequest) (models.SyncResponse, error)
}

type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
