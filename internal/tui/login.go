// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-todo-keeper/internal/service"
	"github.com/MKhiriev/go-todo-keeper/models"
)

// LoginModel signs in through [service.ClientAuthService] and emits a
// [LoginResult]; [RootModel] ends the sign-in flow when it carries no error.
type LoginModel struct {
	ctx  context.Context
	auth service.ClientAuthService

	credentialsForm
}

func NewLoginModel(ctx context.Context, auth service.ClientAuthService) *LoginModel {
	return &LoginModel{
		ctx:             ctx,
		auth:            auth,
		credentialsForm: newCredentialsForm("ВХОД", "Войти", "Логин", "Пароль"),
	}
}

func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoginResult:
		m.finish(msg.Err)
		return m, nil
	case tea.KeyMsg:
		cmd, submit := m.handleKey(msg)
		if !submit {
			return m, cmd
		}

		login, password := m.login(), m.value(fieldPassword)
		if login == "" || password == "" {
			m.fail("Логин и пароль обязательны")
			return m, nil
		}

		m.start()
		return m, m.cmdLogin(login, password)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *LoginModel) View() string {
	return m.view()
}

func (m *LoginModel) cmdLogin(login, password string) tea.Cmd {
	ctx, auth := m.ctx, m.auth

	return func() tea.Msg {
		err := auth.Login(ctx, models.User{Login: login, Password: password})
		return LoginResult{Err: err, Username: login}
	}
}
