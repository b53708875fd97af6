package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldLogin = iota
	fieldPassword
	fieldRepeat
)

// credentialsForm is the part shared by the login and registration pages:
// a column of labelled inputs, focus handling and the submit state.
type credentialsForm struct {
	title  string
	action string
	labels []string

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

// newCredentialsForm builds one input per label. The first is the login,
// every following one is masked.
func newCredentialsForm(title, action string, labels ...string) credentialsForm {
	inputs := make([]textinput.Model, len(labels))
	for i := range labels {
		in := textinput.New()
		in.Width = 40
		if i == fieldLogin {
			in.Placeholder = "login"
			in.CharLimit = 64
			in.Focus()
		} else {
			in.Placeholder = "password"
			in.CharLimit = 256
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '*'
		}
		inputs[i] = in
	}

	return credentialsForm{title: title, action: action, labels: labels, inputs: inputs}
}

// handleKey moves the focus, leaves the page or forwards the key to the
// focused input. submit is set when enter asks for a submission.
func (f *credentialsForm) handleKey(msg tea.KeyMsg) (cmd tea.Cmd, submit bool) {
	switch {
	case key.Matches(msg, keys.esc):
		f.submitting = false
		f.errMsg = ""
		return func() tea.Msg { return NavigateTo{Page: pageMenu} }, false
	case key.Matches(msg, keys.tab):
		f.moveFocus(1)
		return nil, false
	case key.Matches(msg, keys.backtab):
		f.moveFocus(-1)
		return nil, false
	case key.Matches(msg, keys.enter):
		return nil, !f.submitting
	}

	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd, false
}

func (f *credentialsForm) moveFocus(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *credentialsForm) login() string { return strings.TrimSpace(f.inputs[fieldLogin].Value()) }

func (f *credentialsForm) value(field int) string { return f.inputs[field].Value() }

// fail shows message and keeps the form editable.
func (f *credentialsForm) fail(message string) {
	f.submitting = false
	f.errMsg = message
}

func (f *credentialsForm) start() {
	f.errMsg = ""
	f.submitting = true
}

func (f *credentialsForm) finish(err error) {
	f.submitting = false
	if err != nil {
		f.errMsg = humanizeError(err)
	}
}

func (f credentialsForm) view() string {
	width := 0
	for _, l := range f.labels {
		width = max(width, len([]rune(l)))
	}

	var b strings.Builder
	for i, l := range f.labels {
		b.WriteString(padRight(l, width+2))
		b.WriteString("│ [")
		b.WriteString(f.inputs[i].View())
		b.WriteString("]\n")
	}

	b.WriteString("\n[" + f.action)
	if f.submitting {
		b.WriteString("...")
	}
	b.WriteString("]\n")

	if f.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Ошибка: " + f.errMsg))
	}

	return renderPage(f.title, strings.TrimRight(b.String(), "\n"), "esc: назад │ tab: след. поле │ enter: подтвердить")
}
