package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-todo-keeper/internal/service"
	"github.com/MKhiriev/go-todo-keeper/internal/store"
	"github.com/MKhiriev/go-todo-keeper/models"
)

type recordingAuth struct {
	service.ClientAuthService

	logins    []models.User
	registers []models.User
	err       error
}

func (a *recordingAuth) Login(_ context.Context, user models.User) error {
	a.logins = append(a.logins, user)
	return a.err
}

func (a *recordingAuth) Register(_ context.Context, user models.User) error {
	a.registers = append(a.registers, user)
	return a.err
}

func newTestRoot(auth service.ClientAuthService) RootModel {
	ctx := context.Background()
	pages := map[string]tea.Model{
		"menu":     NewMenuModel("Сеанс завершён"),
		"login":    NewLoginModel(ctx, auth),
		"register": NewRegisterModel(ctx, auth),
	}
	return NewRootModel(pages, "menu", models.NewAppBuildInfo("1.0.0", "", ""))
}

func sendRoot(t *testing.T, r RootModel, msg tea.Msg) (RootModel, tea.Cmd) {
	t.Helper()
	next, cmd := r.Update(msg)
	root, ok := next.(RootModel)
	require.True(t, ok)
	return root, cmd
}

func TestRootModel_Navigation(t *testing.T) {
	r := newTestRoot(&recordingAuth{})
	assert.Contains(t, r.View(), "Сеанс завершён")

	r, cmd := sendRoot(t, r, tea.KeyMsg{Type: tea.KeyDown})
	assert.Nil(t, cmd)
	r, cmd = sendRoot(t, r, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, NavigateTo{Page: "register"}, cmd())

	r, _ = sendRoot(t, r, NavigateTo{Page: "register"})
	assert.Contains(t, r.View(), "РЕГИСТРАЦИЯ")

	r, _ = sendRoot(t, r, NavigateTo{Page: "nowhere"})
	assert.Contains(t, r.View(), "РЕГИСТРАЦИЯ")
}

func TestMenuModel_NumberOpensItem(t *testing.T) {
	m := NewMenuModel("")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	require.NotNil(t, cmd)
	assert.Equal(t, NavigateTo{Page: pageRegister}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("9")})
	assert.Nil(t, cmd)
}

func TestRootModel_VersionWindowOnlyOnMenu(t *testing.T) {
	r := newTestRoot(&recordingAuth{})

	r, _ = sendRoot(t, r, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("v")})
	assert.Contains(t, r.View(), "1.0.0")

	r, _ = sendRoot(t, r, tea.KeyMsg{Type: tea.KeyEsc})
	assert.NotContains(t, r.View(), "1.0.0")
}

func TestRootModel_FinishesOnSuccess(t *testing.T) {
	tests := []struct {
		name       string
		msg        tea.Msg
		wantSigned bool
	}{
		{name: "login", msg: LoginResult{Username: "alice"}, wantSigned: true},
		{name: "register", msg: RegisterResult{Username: "bob"}, wantSigned: true},
		{name: "failed login", msg: LoginResult{Err: service.ErrWrongPassword}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRoot(&recordingAuth{})
			r, cmd := sendRoot(t, r, tt.msg)
			assert.Equal(t, tt.wantSigned, r.signedIn)
			if tt.wantSigned {
				require.NotNil(t, cmd)
				assert.IsType(t, tea.QuitMsg{}, cmd())
			}
		})
	}
}

func TestRootModel_CtrlCQuits(t *testing.T) {
	r := newTestRoot(&recordingAuth{})

	r, cmd := sendRoot(t, r, tea.KeyMsg{Type: tea.KeyCtrlC})

	assert.True(t, r.quitByUser)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestLoginModel_Submit(t *testing.T) {
	auth := &recordingAuth{err: service.ErrWrongPassword}
	m := NewLoginModel(context.Background(), auth)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, "Логин и пароль обязательны", m.errMsg)

	m.inputs[0].SetValue(" alice ")
	m.inputs[1].SetValue("secret")
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.submitting)

	result := cmd()
	require.Len(t, auth.logins, 1)
	assert.Equal(t, models.User{Login: "alice", Password: "secret"}, auth.logins[0])

	m.Update(result)
	assert.False(t, m.submitting)
	assert.Equal(t, "Неверный логин или пароль", m.errMsg)
}

func TestRegisterModel_PasswordsMustMatch(t *testing.T) {
	auth := &recordingAuth{}
	m := NewRegisterModel(context.Background(), auth)

	m.inputs[0].SetValue("bob")
	m.inputs[1].SetValue("secret")
	m.inputs[2].SetValue("secret2")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, "Пароли не совпадают", m.errMsg)

	m.inputs[2].SetValue("secret")
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, RegisterResult{Username: "bob"}, cmd())
	assert.Len(t, auth.registers, 1)
}

func TestHumanizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "login taken", err: fmt.Errorf("%w: %w", service.ErrRegisterOnServer, store.ErrLoginAlreadyExists), want: "Логин уже занят"},
		{name: "wrong password", err: service.ErrWrongPassword, want: "Неверный логин или пароль"},
		{name: "expired token", err: service.ErrTokenIsExpiredOrInvalid, want: "Сессия истекла, войдите заново"},
		{name: "network", err: errors.New("Post \"http://localhost:8080\": dial tcp: connection refused"), want: msgServerUnavailable},
		{name: "other", err: errors.New("boom"), want: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, humanizeError(tt.err))
		})
	}
}
