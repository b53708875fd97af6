package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/store"
	"github.com/MKhiriev/go-todo-keeper/internal/validators"
	"github.com/MKhiriev/go-todo-keeper/models"
)

type triggerRecorder struct {
	reasons []models.TriggerReason
}

func (r *triggerRecorder) Trigger(reason models.TriggerReason) {
	r.reasons = append(r.reasons, reason)
}

func newTestTaskService(t *testing.T) (*clientTaskService, *store.RecordStore, *triggerRecorder, store.LocalStorage) {
	t.Helper()

	local := newFileStorage(t)
	records := store.NewRecordStore(local)
	trigger := &triggerRecorder{}

	svc := NewClientTaskService(records, validators.NewTaskValidator(), trigger, logger.Nop()).(*clientTaskService)
	svc.now = func() time.Time { return passStart }

	return svc, records, trigger, local
}

func TestClientTaskService_Create(t *testing.T) {
	svc, records, trigger, local := newTestTaskService(t)
	ctx := context.Background()
	high := models.PriorityHigh

	task, err := svc.Create(ctx, models.TaskDraft{Name: "write report", Priority: &high})
	require.NoError(t, err)

	assert.True(t, IsProvisional(task.ID))
	assert.Equal(t, passStart, task.CreatedAt)
	assert.Equal(t, passStart, task.UpdatedAt)

	stored, ok := records.Get(task.ID)
	require.True(t, ok)
	assert.Equal(t, "write report", stored.Name)
	assert.Equal(t, []models.TriggerReason{models.TriggerMutation}, trigger.reasons)

	persisted, err := local.LoadRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, persisted, 1)
}

func TestClientTaskService_Create_Invalid(t *testing.T) {
	svc, records, trigger, _ := newTestTaskService(t)
	wrong := models.Priority("urgent")

	tests := []struct {
		name  string
		draft models.TaskDraft
	}{
		{name: "empty name", draft: models.TaskDraft{Name: "  "}},
		{name: "unknown priority", draft: models.TaskDraft{Name: "x", Priority: &wrong}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.draft)
			require.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}

	assert.Empty(t, records.List())
	assert.Empty(t, trigger.reasons)
}

func TestClientTaskService_UpdateToggleDelete(t *testing.T) {
	svc, records, trigger, _ := newTestTaskService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, models.TaskDraft{Name: "draft"})
	require.NoError(t, err)

	task.Name = "final"
	updated, err := svc.Update(ctx, task)
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Name)
	assert.True(t, updated.UpdatedAt.After(task.UpdatedAt), "same clock reading still moves UpdatedAt forward")

	toggled, err := svc.ToggleComplete(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)
	assert.True(t, toggled.UpdatedAt.After(updated.UpdatedAt))

	require.NoError(t, svc.Delete(ctx, task.ID))

	_, err = svc.Get(ctx, task.ID)
	require.ErrorIs(t, err, ErrTaskNotFound)
	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	tombstone, ok := records.Get(task.ID)
	require.True(t, ok, "the tombstone stays until the server confirms the delete")
	assert.True(t, tombstone.Deleted)

	assert.Len(t, trigger.reasons, 4)
}

func TestClientTaskService_UnknownTask(t *testing.T) {
	svc, _, trigger, _ := newTestTaskService(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, models.Task{ID: "nope", Name: "x"})
	assert.ErrorIs(t, err, ErrTaskNotFound)
	_, err = svc.ToggleComplete(ctx, "nope")
	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "nope"), ErrTaskNotFound)
	assert.Empty(t, trigger.reasons)
}

func TestClientTaskService_ListKeepsInsertionOrder(t *testing.T) {
	svc, _, _, _ := newTestTaskService(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		_, err := svc.Create(ctx, models.TaskDraft{Name: name})
		require.NoError(t, err)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "a", list[0].Name)
	assert.Equal(t, "c", list[2].Name)
}

func TestClientTaskService_WorksWithoutTrigger(t *testing.T) {
	records := store.NewRecordStore(newFileStorage(t))
	svc := NewClientTaskService(records, validators.NewTaskValidator(), nil, logger.Nop())

	_, err := svc.Create(context.Background(), models.TaskDraft{Name: "offline"})
	require.NoError(t, err)
	assert.Len(t, records.List(), 1)
}
