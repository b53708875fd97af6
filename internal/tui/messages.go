package tui

import (
	"github.com/MKhiriev/go-todo-keeper/models"
	tea "github.com/charmbracelet/bubbletea"
)

// NavigateTo asks [RootModel] to switch the active page. Payload, when set,
// is delivered to the new page as the next message.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// LoginResult is produced by the login page once the server answered.
type LoginResult struct {
	Err      error
	Username string
}

// RegisterResult is produced by the register page once the server answered.
// A successful registration also opens a session.
type RegisterResult struct {
	Err      error
	Username string
}

type tasksLoadedMsg struct {
	tasks []models.Task
	err   error
}

type conflictsLoadedMsg struct {
	conflicts []models.Conflict
}

// syncEventMsg carries a pass finished by the background job.
type syncEventMsg struct {
	event models.SyncEvent
}

type taskSavedMsg struct {
	task models.Task
	err  error
}

type taskDeletedMsg struct {
	err error
}

type conflictResolvedMsg struct {
	resolved int
	err      error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}

// statusTickMsg refreshes the sync and connectivity status line.
type statusTickMsg struct{}
