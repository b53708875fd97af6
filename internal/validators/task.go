// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-todo-keeper/models"
)

// Field names accepted by [TaskValidator].
const (
	FieldID        = "id"
	FieldName      = "name"
	FieldPriority  = "priority"
	FieldUpdatedAt = "updated_at"
	FieldClientRef = "client_ref"
	FieldTask      = "task"
	FieldLogin     = "login"
	FieldPassword  = "password"

	FieldChangedRecords = "changed_records"
)

// TaskValidator validates tasks, task drafts, the task write requests and
// user credentials. Value and pointer forms are accepted.
type TaskValidator struct{}

// NewTaskValidator returns a [TaskValidator] as a [Validator].
func NewTaskValidator() Validator {
	return &TaskValidator{}
}

func (v *TaskValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Task:
		return v.validateTask(ctx, value, fields...)
	case *models.Task:
		return v.validateTask(ctx, *value, fields...)

	case models.TaskDraft:
		return v.validateDraft(ctx, value, fields...)
	case *models.TaskDraft:
		return v.validateDraft(ctx, *value, fields...)

	case models.CreateTaskRequest:
		return v.validateCreateRequest(ctx, value, fields...)
	case *models.CreateTaskRequest:
		return v.validateCreateRequest(ctx, *value, fields...)

	case models.UpdateTaskRequest:
		return v.validateTask(ctx, value.Task, fields...)
	case *models.UpdateTaskRequest:
		return v.validateTask(ctx, value.Task, fields...)

	case models.SyncRequest:
		return v.validateSyncRequest(ctx, value, fields...)
	case *models.SyncRequest:
		return v.validateSyncRequest(ctx, *value, fields...)

	case models.User:
		return v.validateCredentials(ctx, value, fields...)
	case *models.User:
		return v.validateCredentials(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *TaskValidator) validateTask(_ context.Context, task models.Task, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldName, FieldPriority, FieldUpdatedAt}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if strings.TrimSpace(task.ID) == "" {
				return ErrEmptyID
			}
		case FieldName:
			// tombstones only need an id
			if !task.Deleted && strings.TrimSpace(task.Name) == "" {
				return ErrEmptyName
			}
		case FieldPriority:
			if task.Priority != nil && !task.Priority.IsValid() {
				return ErrInvalidPriority
			}
		case FieldUpdatedAt:
			if task.UpdatedAt.IsZero() {
				return ErrInvalidUpdatedAt
			}
			if !task.CreatedAt.IsZero() && task.UpdatedAt.Before(task.CreatedAt) {
				return ErrUpdatedBeforeMade
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *TaskValidator) validateDraft(_ context.Context, draft models.TaskDraft, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldPriority}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if strings.TrimSpace(draft.Name) == "" {
				return ErrEmptyName
			}
		case FieldPriority:
			if draft.Priority != nil && !draft.Priority.IsValid() {
				return ErrInvalidPriority
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *TaskValidator) validateCreateRequest(ctx context.Context, req models.CreateTaskRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldClientRef, FieldTask}
	}

	for _, f := range fields {
		switch f {
		case FieldClientRef:
			if strings.TrimSpace(req.ClientRef) == "" {
				return ErrEmptyClientRef
			}
		case FieldTask:
			if err := v.validateTask(ctx, req.Task, FieldName, FieldPriority, FieldUpdatedAt); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *TaskValidator) validateSyncRequest(ctx context.Context, req models.SyncRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldChangedRecords}
	}

	for _, f := range fields {
		switch f {
		case FieldChangedRecords:
			for i, task := range req.ChangedRecords {
				if err := v.validateTask(ctx, task, FieldID); err != nil {
					return fmt.Errorf("validation error at index %d: %w", i, err)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *TaskValidator) validateCredentials(_ context.Context, user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLogin, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldLogin:
			if strings.TrimSpace(user.Login) == "" {
				return ErrEmptyLogin
			}
		case FieldPassword:
			if user.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
