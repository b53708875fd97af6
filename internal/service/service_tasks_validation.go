package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-todo-keeper/internal/validators"
	"github.com/MKhiriev/go-todo-keeper/models"
)

// TaskSyncServiceWrapper defines middleware composition for TaskSyncService.
// Implementations wrap an existing TaskSyncService to add behavior such as
// validation.
type TaskSyncServiceWrapper interface {
	Wrap(TaskSyncService) TaskSyncService
}

// TaskValidationService rejects malformed requests before they reach the
// wrapped TaskSyncService.
type TaskValidationService struct {
	inner     TaskSyncService
	validator validators.Validator
}

func NewTaskValidationService() TaskSyncServiceWrapper {
	return &TaskValidationService{
		validator: validators.NewTaskValidator(),
	}
}

func (v *TaskValidationService) CreateTask(ctx context.Context, userID int64, deviceID string, req models.CreateTaskRequest) (models.Task, error) {
	if userID == 0 {
		return models.Task{}, ErrNoUserIDProvided
	}
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Task{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.CreateTask(ctx, userID, deviceID, req)
}

func (v *TaskValidationService) UpdateTask(ctx context.Context, userID int64, deviceID string, req models.UpdateTaskRequest) (models.Task, error) {
	if userID == 0 {
		return models.Task{}, ErrNoUserIDProvided
	}
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Task{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.UpdateTask(ctx, userID, deviceID, req)
}

func (v *TaskValidationService) DeleteTask(ctx context.Context, userID int64, deviceID string, id string) error {
	if userID == 0 {
		return ErrNoUserIDProvided
	}
	if err := v.validator.Validate(ctx, models.Task{ID: id, Deleted: true}, validators.FieldID); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.DeleteTask(ctx, userID, deviceID, id)
}

func (v *TaskValidationService) Sync(ctx context.Context, userID int64, deviceID string, req models.SyncRequest) (models.SyncResponse, error) {
	if userID == 0 {
		return models.SyncResponse{}, ErrNoUserIDProvided
	}
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.SyncResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Sync(ctx, userID, deviceID, req)
}

func (v *TaskValidationService) Wrap(inner TaskSyncService) TaskSyncService {
	v.inner = inner
	return v
}
