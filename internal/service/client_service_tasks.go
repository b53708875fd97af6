package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/store"
	"github.com/MKhiriev/go-todo-keeper/internal/validators"
	"github.com/MKhiriev/go-todo-keeper/models"
)

// clientTaskService writes to the local replica only. Network I/O is left
// to the sync job, woken through trigger after every write.
type clientTaskService struct {
	records   *store.RecordStore
	validator validators.Validator
	trigger   SyncTrigger
	now       func() time.Time

	logger *logger.Logger
}

// NewClientTaskService constructs a [ClientTaskService]. trigger may be nil,
// in which case writes wait for the next timer pass.
func NewClientTaskService(records *store.RecordStore, validator validators.Validator, trigger SyncTrigger, logger *logger.Logger) ClientTaskService {
	return &clientTaskService{
		records:   records,
		validator: validator,
		trigger:   trigger,
		now:       time.Now,
		logger:    logger,
	}
}

func (s *clientTaskService) Create(ctx context.Context, draft models.TaskDraft) (models.Task, error) {
	if err := s.validator.Validate(ctx, draft); err != nil {
		return models.Task{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	now := s.now()
	task := models.Task{
		ID:          NewProvisionalID(),
		Name:        draft.Name,
		Description: draft.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Deadline:    draft.Deadline,
		Category:    draft.Category,
		Priority:    draft.Priority,
	}

	if err := s.write(ctx, task.Clone()); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (s *clientTaskService) Update(ctx context.Context, task models.Task) (models.Task, error) {
	current, err := s.Get(ctx, task.ID)
	if err != nil {
		return models.Task{}, err
	}

	updated := task.Clone()
	updated.CreatedAt = current.CreatedAt
	updated.Deleted = false
	updated.UpdatedAt = nextUpdatedAt(current.UpdatedAt, s.now())

	if err = s.validator.Validate(ctx, updated); err != nil {
		return models.Task{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err = s.write(ctx, updated); err != nil {
		return models.Task{}, err
	}
	return updated, nil
}

func (s *clientTaskService) ToggleComplete(ctx context.Context, id string) (models.Task, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return models.Task{}, err
	}

	current.Completed = !current.Completed
	current.UpdatedAt = nextUpdatedAt(current.UpdatedAt, s.now())

	if err = s.write(ctx, current); err != nil {
		return models.Task{}, err
	}
	return current, nil
}

func (s *clientTaskService) Delete(ctx context.Context, id string) error {
	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	current.Deleted = true
	current.UpdatedAt = nextUpdatedAt(current.UpdatedAt, s.now())

	return s.write(ctx, current)
}

func (s *clientTaskService) Get(_ context.Context, id string) (models.Task, error) {
	task, ok := s.records.Get(id)
	if !ok || task.Deleted {
		return models.Task{}, ErrTaskNotFound
	}
	return task, nil
}

func (s *clientTaskService) List(_ context.Context) ([]models.Task, error) {
	all := s.records.List()
	live := make([]models.Task, 0, len(all))
	for _, t := range all {
		if !t.Deleted {
			live = append(live, t)
		}
	}
	return live, nil
}

func (s *clientTaskService) write(ctx context.Context, task models.Task) error {
	log := s.logger.GetChildLogger()

	if !s.records.Upsert(task) {
		// a merged server version newer than our clock won the race
		log.Warn().Str("func", "clientTaskService.write").Str("task_id", task.ID).Msg("stale local write ignored")
		return nil
	}

	if err := s.records.Flush(ctx); err != nil {
		log.Err(err).Str("func", "clientTaskService.write").Str("task_id", task.ID).Msg("failed to persist local replica")
		return fmt.Errorf("%w: %w", ErrPersistLocalState, err)
	}

	if s.trigger != nil {
		s.trigger.Trigger(models.TriggerMutation)
	}
	return nil
}
