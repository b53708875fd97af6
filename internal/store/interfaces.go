package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-todo-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_store_mock.go -package=mock

// UserRepository stores user accounts on the server.
type UserRepository interface {
	// CreateUser returns ErrLoginAlreadyExists when the login is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByLogin returns ErrNoUserWasFound when no user matches.
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

// StoredTask is a task as the server keeps it: the client-visible record
// plus the bookkeeping used for delta and conflict computation.
type StoredTask struct {
	models.Task

	// ChangedAt is the server time of the last accepted write.
	ChangedAt time.Time
	// ChangedBy is the device that made the last accepted write.
	ChangedBy string
}

// TaskRepository stores tasks on the server.
type TaskRepository interface {
	// CreateTask inserts task under a fresh authoritative id. When clientRef
	// was already used by this user, the existing task is returned together
	// with ErrClientRefExists.
	CreateTask(ctx context.Context, userID int64, clientRef string, task StoredTask) (StoredTask, error)
	// GetTask returns ErrTaskNotFound when the task does not exist.
	GetTask(ctx context.Context, userID int64, id string) (StoredTask, error)
	// GetTasks returns the user's tasks with the given ids. Unknown ids are
	// skipped.
	GetTasks(ctx context.Context, userID int64, ids []string) ([]StoredTask, error)
	// UpdateTask overwrites the stored task. Returns ErrTaskNotFound when it
	// does not exist.
	UpdateTask(ctx context.Context, userID int64, task StoredTask) error
	// ListChangedSince returns the user's tasks, tombstones included, whose
	// ChangedAt is strictly after since.
	ListChangedSince(ctx context.Context, userID int64, since time.Time) ([]StoredTask, error)
}
