package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-todo-keeper/internal/service"
	"github.com/MKhiriev/go-todo-keeper/models"
)

// RegisterModel opens an account. Registration also opens a session, so a
// successful [RegisterResult] ends the sign-in flow like a login does.
type RegisterModel struct {
	ctx  context.Context
	auth service.ClientAuthService

	credentialsForm
}

func NewRegisterModel(ctx context.Context, auth service.ClientAuthService) *RegisterModel {
	return &RegisterModel{
		ctx:             ctx,
		auth:            auth,
		credentialsForm: newCredentialsForm("РЕГИСТРАЦИЯ", "Зарегистрироваться", "Логин", "Пароль", "Повтор пароля"),
	}
}

func (m *RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RegisterResult:
		m.finish(msg.Err)
		return m, nil
	case tea.KeyMsg:
		cmd, submit := m.handleKey(msg)
		if !submit {
			return m, cmd
		}

		login, password, repeat := m.login(), m.value(fieldPassword), m.value(fieldRepeat)
		switch {
		case login == "" || password == "" || repeat == "":
			m.fail("Все поля обязательны")
			return m, nil
		case password != repeat:
			m.fail("Пароли не совпадают")
			return m, nil
		}

		m.start()
		return m, m.cmdRegister(login, password)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *RegisterModel) View() string {
	return m.view()
}

func (m *RegisterModel) cmdRegister(login, password string) tea.Cmd {
	ctx, auth := m.ctx, m.auth

	return func() tea.Msg {
		err := auth.Register(ctx, models.User{Login: login, Password: password})
		return RegisterResult{Err: err, Username: login}
	}
}
