// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-todo-keeper/internal/service"
	"github.com/MKhiriev/go-todo-keeper/models"
)

type fakeAuth struct {
	service.ClientAuthService
}

func (fakeAuth) Session() models.Session {
	return models.Session{Login: "alice", Token: "jwt", DeviceID: "device-1"}
}

type fakeTasks struct {
	service.ClientTaskService

	created []models.TaskDraft
	updated []models.Task
	toggled []string
	deleted []string
	err     error
}

func (f *fakeTasks) Create(_ context.Context, draft models.TaskDraft) (models.Task, error) {
	f.created = append(f.created, draft)
	return models.Task{ID: "tmp_1", Name: draft.Name}, f.err
}

func (f *fakeTasks) Update(_ context.Context, task models.Task) (models.Task, error) {
	f.updated = append(f.updated, task)
	return task, f.err
}

func (f *fakeTasks) ToggleComplete(_ context.Context, id string) (models.Task, error) {
	f.toggled = append(f.toggled, id)
	return models.Task{ID: id, Completed: true}, f.err
}

func (f *fakeTasks) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

type fakeSync struct {
	service.ClientSyncService

	state models.SyncState
}

func (f *fakeSync) State() models.SyncState {
	return f.state
}

type fakeConflicts struct {
	service.ClientConflictService

	resolved    map[string]models.ResolutionChoice
	resolvedAll []models.ResolutionChoice
}

func (f *fakeConflicts) ListConflicts() []models.Conflict {
	return nil
}

func (f *fakeConflicts) Resolve(_ context.Context, id string, choice models.ResolutionChoice) error {
	if f.resolved == nil {
		f.resolved = map[string]models.ResolutionChoice{}
	}
	f.resolved[id] = choice
	return nil
}

func (f *fakeConflicts) ResolveAll(_ context.Context, choice models.ResolutionChoice) (int, error) {
	f.resolvedAll = append(f.resolvedAll, choice)
	return 3, nil
}

type fakeJob struct {
	service.ClientSyncJob

	reasons []models.TriggerReason
}

func (f *fakeJob) Trigger(reason models.TriggerReason) {
	f.reasons = append(f.reasons, reason)
}

type staticConnectivity bool

func (c staticConnectivity) Online() bool {
	return bool(c)
}

type testUI struct {
	tasks     *fakeTasks
	sync      *fakeSync
	conflicts *fakeConflicts
	job       *fakeJob
	model     mainLoopModel
}

func newTestUI(t *testing.T, online bool) *testUI {
	t.Helper()
	ui := &testUI{
		tasks:     &fakeTasks{},
		sync:      &fakeSync{},
		conflicts: &fakeConflicts{},
		job:       &fakeJob{},
	}
	services := &service.ClientServices{
		AuthService:     fakeAuth{},
		TaskService:     ui.tasks,
		SyncService:     ui.sync,
		ConflictService: ui.conflicts,
		SyncJob:         ui.job,
	}
	ui.model = newMainLoopModel(context.Background(), services, staticConnectivity(online), nil, models.NewAppBuildInfo("1.0.0", "2026-10-01", "abc123"))
	return ui
}

func (ui *testUI) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := ui.model.Update(msg)
	m, ok := next.(mainLoopModel)
	require.True(t, ok)
	ui.model = m
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sampleTasks() []models.Task {
	return []models.Task{
		{ID: "srv_1", Name: "buy milk"},
		{ID: "srv_2", Name: "write report"},
	}
}

func TestMainLoop_TasksLoaded(t *testing.T) {
	ui := newTestUI(t, true)
	ui.model.idx = 5

	ui.send(t, tasksLoadedMsg{tasks: sampleTasks()})

	assert.False(t, ui.model.loading)
	assert.Equal(t, 1, ui.model.idx, "the cursor is clamped to the list")
	assert.Contains(t, ui.model.View(), "buy milk")
	assert.Contains(t, ui.model.View(), "alice")
}

func TestMainLoop_LoadErrorShowsOverlay(t *testing.T) {
	ui := newTestUI(t, true)

	ui.send(t, tasksLoadedMsg{err: service.ErrTaskNotFound})
	require.True(t, ui.model.showError)

	ui.send(t, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, ui.model.showError)
}

func TestMainLoop_CreateTask(t *testing.T) {
	ui := newTestUI(t, true)
	ui.send(t, tasksLoadedMsg{})

	ui.send(t, runes("a"))
	require.Equal(t, viewForm, ui.model.view)

	cmd := ui.send(t, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd)
	assert.Equal(t, errEmptyName.Error(), ui.model.form.errMsg)

	ui.model.form.inputs[fieldName].SetValue("buy milk")
	ui.model.form.inputs[fieldPriority].SetValue("medium")
	cmd = ui.send(t, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	assert.True(t, ui.model.form.submitting)

	msg := cmd()
	require.IsType(t, taskSavedMsg{}, msg)
	require.Len(t, ui.tasks.created, 1)
	assert.Equal(t, "buy milk", ui.tasks.created[0].Name)
	require.NotNil(t, ui.tasks.created[0].Priority)
	assert.Equal(t, models.PriorityMedium, *ui.tasks.created[0].Priority)

	ui.send(t, msg)
	assert.Equal(t, viewList, ui.model.view)
	assert.Contains(t, ui.model.status, "buy milk")
}

func TestMainLoop_SaveErrorStaysInForm(t *testing.T) {
	ui := newTestUI(t, true)
	ui.send(t, runes("a"))
	ui.model.form.submitting = true

	ui.send(t, taskSavedMsg{err: service.ErrInvalidDataProvided})

	assert.Equal(t, viewForm, ui.model.view)
	assert.False(t, ui.model.form.submitting)
	assert.NotEmpty(t, ui.model.form.errMsg)
}

func TestMainLoop_EditTask(t *testing.T) {
	ui := newTestUI(t, true)
	ui.send(t, tasksLoadedMsg{tasks: sampleTasks()})

	ui.send(t, tea.KeyMsg{Type: tea.KeyDown})
	ui.send(t, runes("e"))
	require.Equal(t, viewForm, ui.model.view)
	assert.Equal(t, "write report", ui.model.form.inputs[fieldName].Value())

	ui.model.form.inputs[fieldName].SetValue("write the report")
	cmd := ui.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	cmd()

	require.Len(t, ui.tasks.updated, 1)
	assert.Equal(t, "srv_2", ui.tasks.updated[0].ID)
	assert.Equal(t, "write the report", ui.tasks.updated[0].Name)
}

func TestMainLoop_ToggleAndCopy(t *testing.T) {
	ui := newTestUI(t, true)
	ui.send(t, tasksLoadedMsg{tasks: sampleTasks()})

	cmd := ui.send(t, runes("x"))
	require.NotNil(t, cmd)
	ui.send(t, cmd())
	assert.Equal(t, []string{"srv_1"}, ui.tasks.toggled)
	assert.Equal(t, viewList, ui.model.view)

	ui.send(t, copiedMsg{})
	assert.Equal(t, "Скопировано!", ui.model.status)
	ui.send(t, clearStatusMsg{})
	assert.Empty(t, ui.model.status)
}

func TestMainLoop_DeleteAsksForConfirmation(t *testing.T) {
	ui := newTestUI(t, true)
	ui.send(t, tasksLoadedMsg{tasks: sampleTasks()})

	ui.send(t, tea.KeyMsg{Type: tea.KeyCtrlD})
	require.True(t, ui.model.showConfirm)
	assert.Contains(t, ui.model.View(), "buy milk")

	ui.send(t, runes("n"))
	assert.False(t, ui.model.showConfirm)
	assert.Empty(t, ui.tasks.deleted)

	ui.send(t, tea.KeyMsg{Type: tea.KeyCtrlD})
	cmd := ui.send(t, runes("y"))
	require.NotNil(t, cmd)
	ui.send(t, cmd())

	assert.Equal(t, []string{"srv_1"}, ui.tasks.deleted)
	assert.Equal(t, "Задача удалена", ui.model.status)
}

func TestMainLoop_ManualSync(t *testing.T) {
	ui := newTestUI(t, true)

	ui.send(t, runes("s"))
	ui.send(t, runes("s"))
	assert.Equal(t, []models.TriggerReason{models.TriggerManual}, ui.job.reasons, "a running sync is not requested twice")
	assert.True(t, ui.model.syncing)

	finished := time.Date(2026, 10, 17, 12, 30, 0, 0, time.Local)
	ui.sync.state = models.SyncState{LastSyncAt: finished}
	ui.send(t, syncEventMsg{event: models.SyncEvent{LastSyncAt: finished}})

	assert.False(t, ui.model.syncing)
	assert.Contains(t, ui.model.status, "12:30:00")
	assert.Contains(t, ui.model.statusLine(), "12:30:00")
}

func TestMainLoop_SyncFailureIsNotAnOverlay(t *testing.T) {
	ui := newTestUI(t, false)

	ui.send(t, syncEventMsg{event: models.SyncEvent{Err: errors.New("dial tcp 127.0.0.1:8080: connection refused")}})

	assert.False(t, ui.model.showError)
	assert.Contains(t, ui.model.status, msgServerUnavailable)
	assert.Contains(t, ui.model.statusLine(), "офлайн")
}

func TestMainLoop_StatusTickPicksUpBackgroundPass(t *testing.T) {
	ui := newTestUI(t, true)
	ui.sync.state = models.SyncState{InFlight: true}

	cmd := ui.send(t, statusTickMsg{})

	assert.NotNil(t, cmd)
	assert.True(t, ui.model.syncing)
}

func TestMainLoop_Conflicts(t *testing.T) {
	ui := newTestUI(t, true)
	ui.send(t, tasksLoadedMsg{tasks: sampleTasks()})

	ui.send(t, runes("!"))
	assert.Equal(t, viewList, ui.model.view, "nothing to show without conflicts")

	conflicts := []models.Conflict{
		{ID: "srv_1", Local: models.Task{ID: "srv_1", Name: "buy milk"}, Remote: models.Task{ID: "srv_1", Name: "buy oat milk"}},
		{ID: "srv_2", Local: models.Task{ID: "srv_2", Name: "write report"}, Remote: models.Task{ID: "srv_2", Name: "report", Deleted: true}},
	}
	ui.send(t, conflictsLoadedMsg{conflicts: conflicts})
	assert.Contains(t, ui.model.statusLine(), "конфликты: 2")

	ui.send(t, runes("!"))
	require.Equal(t, viewConflicts, ui.model.view)
	assert.Contains(t, ui.model.View(), "buy oat milk")

	ui.send(t, tea.KeyMsg{Type: tea.KeyDown})
	cmd := ui.send(t, runes("r"))
	require.NotNil(t, cmd)
	assert.Equal(t, conflictResolvedMsg{resolved: 1}, cmd())
	assert.Equal(t, models.ChoiceRemote, ui.conflicts.resolved["srv_2"])

	cmd = ui.send(t, runes("L"))
	require.NotNil(t, cmd)
	assert.Equal(t, conflictResolvedMsg{resolved: 3}, cmd())
	assert.Equal(t, []models.ResolutionChoice{models.ChoiceLocal}, ui.conflicts.resolvedAll)

	ui.send(t, conflictsLoadedMsg{})
	assert.Equal(t, viewList, ui.model.view, "the screen closes once everything is resolved")
}

func TestMainLoop_LogoutAndQuit(t *testing.T) {
	ui := newTestUI(t, true)

	cmd := ui.send(t, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, ui.model.logout)

	cmd = ui.send(t, tea.KeyMsg{Type: tea.KeyCtrlL})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, ui.model.logout)
}

func TestMainLoop_BuildInfo(t *testing.T) {
	ui := newTestUI(t, true)

	ui.send(t, runes("v"))
	assert.Contains(t, ui.model.View(), "abc123")

	ui.send(t, tea.KeyMsg{Type: tea.KeyEsc})
	assert.NotContains(t, ui.model.View(), "abc123")
}
