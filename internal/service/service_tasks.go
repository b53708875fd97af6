// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/store"
	"github.com/MKhiriev/go-todo-keeper/internal/utils"
	"github.com/MKhiriev/go-todo-keeper/models"
)

// taskSyncService keeps the client's UpdatedAt untouched and records the
// server time and the writing device of every accepted write in ChangedAt
// and ChangedBy. Deltas and conflicts are computed from those two fields.
type taskSyncService struct {
	taskRepository store.TaskRepository
	ids            *utils.UUIDGenerator
	now            func() time.Time

	logger *logger.Logger
}

func NewTaskSyncService(taskRepository store.TaskRepository, logger *logger.Logger) TaskSyncService {
	return &taskSyncService{
		taskRepository: taskRepository,
		ids:            utils.NewUUIDGenerator(),
		now:            time.Now,
		logger:         logger,
	}
}

func (s *taskSyncService) CreateTask(ctx context.Context, userID int64, deviceID string, req models.CreateTaskRequest) (models.Task, error) {
	log := logger.FromContext(ctx)

	now := s.now().UTC()
	task := req.Task.Clone()
	task.ID = s.ids.Generate()
	task.Deleted = false
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}

	stored, err := s.taskRepository.CreateTask(ctx, userID, req.ClientRef, store.StoredTask{
		Task:      task,
		ChangedAt: now,
		ChangedBy: deviceID,
	})
	if errors.Is(err, store.ErrClientRefExists) {
		log.Info().
			Str("func", "taskSyncService.CreateTask").
			Str("client_ref", req.ClientRef).
			Str("task_id", stored.ID).
			Msg("repeated creation, returning existing task")
		return stored.Task, nil
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("create task: %w", err)
	}

	return stored.Task, nil
}

func (s *taskSyncService) UpdateTask(ctx context.Context, userID int64, deviceID string, req models.UpdateTaskRequest) (models.Task, error) {
	log := logger.FromContext(ctx)

	current, err := s.taskRepository.GetTask(ctx, userID, req.Task.ID)
	if errors.Is(err, store.ErrTaskNotFound) {
		return models.Task{}, ErrTaskNotFound
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("get task: %w", err)
	}
	if current.Deleted {
		return models.Task{}, ErrTaskNotFound
	}

	if conflicts(current, req.Task, deviceID, req.LastSyncAt) {
		log.Info().
			Str("func", "taskSyncService.UpdateTask").
			Str("task_id", current.ID).
			Str("changed_by", current.ChangedBy).
			Time("changed_at", current.ChangedAt).
			Time("base", req.LastSyncAt).
			Msg("update rejected, task changed by another device")
		return models.Task{}, ErrVersionConflict
	}

	task := req.Task.Clone()
	task.CreatedAt = current.CreatedAt
	task.Deleted = false

	err = s.taskRepository.UpdateTask(ctx, userID, store.StoredTask{
		Task:      task,
		ChangedAt: s.now().UTC(),
		ChangedBy: deviceID,
	})
	if errors.Is(err, store.ErrTaskNotFound) {
		return models.Task{}, ErrTaskNotFound
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("update task: %w", err)
	}

	return task, nil
}

func (s *taskSyncService) DeleteTask(ctx context.Context, userID int64, deviceID string, id string) error {
	current, err := s.taskRepository.GetTask(ctx, userID, id)
	if errors.Is(err, store.ErrTaskNotFound) {
		return ErrTaskNotFound
	}
	if err != nil {
		return fmt.Errorf("get task: %w", err)
	}
	if current.Deleted {
		return nil
	}

	now := s.now().UTC()
	current.Deleted = true
	current.UpdatedAt = nextUpdatedAt(current.UpdatedAt, now)
	current.ChangedAt = now
	current.ChangedBy = deviceID

	if err = s.taskRepository.UpdateTask(ctx, userID, current); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

func (s *taskSyncService) Sync(ctx context.Context, userID int64, deviceID string, req models.SyncRequest) (models.SyncResponse, error) {
	log := logger.FromContext(ctx)

	serverTime := s.now().UTC()

	ids := make([]string, 0, len(req.ChangedRecords))
	for _, r := range req.ChangedRecords {
		ids = append(ids, r.ID)
	}

	stored, err := s.taskRepository.GetTasks(ctx, userID, ids)
	if err != nil {
		return models.SyncResponse{}, fmt.Errorf("get changed tasks: %w", err)
	}
	byID := make(map[string]store.StoredTask, len(stored))
	for _, t := range stored {
		byID[t.ID] = t
	}

	resp := models.SyncResponse{
		Records:    []models.Task{},
		Conflicts:  []models.SyncConflict{},
		ServerTime: serverTime,
	}

	conflicted := make(map[string]struct{})
	for _, local := range req.ChangedRecords {
		remote, ok := byID[local.ID]
		if !ok || !conflicts(remote, local, deviceID, req.LastSyncAt) {
			continue
		}
		conflicted[local.ID] = struct{}{}
		resp.Conflicts = append(resp.Conflicts, models.SyncConflict{
			ID:                local.ID,
			LocalSnapshotEcho: local,
			RemoteRecord:      remote.Task,
		})
	}

	changed, err := s.taskRepository.ListChangedSince(ctx, userID, req.LastSyncAt)
	if err != nil {
		return models.SyncResponse{}, fmt.Errorf("list changed tasks: %w", err)
	}
	for _, t := range changed {
		if _, skip := conflicted[t.ID]; skip {
			continue
		}
		resp.Records = append(resp.Records, t.Task)
	}

	log.Debug().
		Str("func", "taskSyncService.Sync").
		Int64("user_id", userID).
		Int("records", len(resp.Records)).
		Int("conflicts", len(resp.Conflicts)).
		Msg("delta computed")

	return resp, nil
}

// conflicts reports whether writing local over remote would lose a change:
// another device changed remote after base and the contents differ.
// Tombstones never conflict.
func conflicts(remote store.StoredTask, local models.Task, deviceID string, base time.Time) bool {
	if remote.Deleted || local.Deleted {
		return false
	}
	if !remote.ChangedAt.After(base) {
		return false
	}
	if remote.ChangedBy == deviceID {
		return false
	}
	return !remote.Task.ContentEqual(local)
}
