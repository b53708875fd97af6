package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-todo-keeper/models"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldName = iota
	fieldDescription
	fieldCategory
	fieldPriority
	fieldDeadline
	fieldCount
)

var (
	errEmptyName       = errors.New("название обязательно")
	errUnknownPriority = errors.New("приоритет: high, medium, low или пусто")
	errBadDeadline     = errors.New("срок в формате ГГГГ-ММ-ДД")
)

// taskFormModel edits the user-visible fields of one task. The description
// is a textarea; every other field is a single-line input.
type taskFormModel struct {
	inputs      []textinput.Model
	description textarea.Model
	focus       int
	submitting  bool
	errMsg      string

	// editing is the task being changed; nil when creating.
	editing *models.Task
}

// taskFields is the parsed content of the form.
type taskFields struct {
	name        string
	description *string
	category    *string
	priority    *models.Priority
	deadline    *time.Time
}

func newTaskFormModel(task *models.Task) taskFormModel {
	name := textinput.New()
	name.Placeholder = "название"
	name.CharLimit = 256
	name.Width = 40

	category := textinput.New()
	category.Placeholder = "категория"
	category.CharLimit = 64
	category.Width = 40

	priority := textinput.New()
	priority.Placeholder = "high / medium / low"
	priority.CharLimit = 16
	priority.Width = 40

	deadline := textinput.New()
	deadline.Placeholder = "ГГГГ-ММ-ДД"
	deadline.CharLimit = 10
	deadline.Width = 40

	description := textarea.New()
	description.Placeholder = "описание"
	description.SetWidth(40)
	description.SetHeight(3)
	description.ShowLineNumbers = false

	m := taskFormModel{
		// the description slot stays a zero textinput; the textarea stands in for it
		inputs:      []textinput.Model{name, textinput.New(), category, priority, deadline},
		description: description,
	}

	if task != nil {
		t := task.Clone()
		m.editing = &t
		m.inputs[fieldName].SetValue(t.Name)
		if t.Description != nil {
			m.description.SetValue(*t.Description)
		}
		if t.Category != nil {
			m.inputs[fieldCategory].SetValue(*t.Category)
		}
		if t.Priority != nil {
			m.inputs[fieldPriority].SetValue(string(*t.Priority))
		}
		if t.Deadline != nil {
			m.inputs[fieldDeadline].SetValue(t.Deadline.Local().Format(deadlineForm))
		}
	}

	m.inputs[fieldName].Focus()
	return m
}

func (m taskFormModel) setFocus(next int) taskFormModel {
	if m.focus == fieldDescription {
		m.description.Blur()
	} else {
		m.inputs[m.focus].Blur()
	}

	m.focus = (next + fieldCount) % fieldCount
	if m.focus == fieldDescription {
		m.description.Focus()
	} else {
		m.inputs[m.focus].Focus()
	}
	return m
}

// update forwards msg to the focused widget.
func (m taskFormModel) update(msg tea.Msg) (taskFormModel, tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == fieldDescription {
		m.description, cmd = m.description.Update(msg)
		return m, cmd
	}
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m taskFormModel) values() [fieldCount]string {
	var v [fieldCount]string
	for i := range m.inputs {
		v[i] = m.inputs[i].Value()
	}
	v[fieldDescription] = m.description.Value()
	return v
}

// parseTaskFields validates raw form values. Empty optional values become
// nil so that editing can clear a field.
func parseTaskFields(v [fieldCount]string) (taskFields, error) {
	var f taskFields

	f.name = strings.TrimSpace(v[fieldName])
	if f.name == "" {
		return taskFields{}, errEmptyName
	}

	f.description = optional(v[fieldDescription])
	f.category = optional(v[fieldCategory])

	if p := strings.ToLower(strings.TrimSpace(v[fieldPriority])); p != "" {
		priority, ok := parsePriority(p)
		if !ok {
			return taskFields{}, errUnknownPriority
		}
		f.priority = &priority
	}

	if d := strings.TrimSpace(v[fieldDeadline]); d != "" {
		deadline, err := time.ParseInLocation(deadlineForm, d, time.Local)
		if err != nil {
			return taskFields{}, fmt.Errorf("%w: %q", errBadDeadline, d)
		}
		f.deadline = &deadline
	}

	return f, nil
}

func parsePriority(s string) (models.Priority, bool) {
	switch s {
	case "h", "high", "высокий":
		return models.PriorityHigh, true
	case "m", "medium", "средний":
		return models.PriorityMedium, true
	case "l", "low", "низкий":
		return models.PriorityLow, true
	}
	return "", false
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func (f taskFields) draft() models.TaskDraft {
	return models.TaskDraft{
		Name:        f.name,
		Description: f.description,
		Category:    f.category,
		Priority:    f.priority,
		Deadline:    f.deadline,
	}
}

// applyTo returns a copy of t carrying the form's fields.
func (f taskFields) applyTo(t models.Task) models.Task {
	t = t.Clone()
	t.Name = f.name
	t.Description = f.description
	t.Category = f.category
	t.Priority = f.priority
	t.Deadline = f.deadline
	return t
}

func (m taskFormModel) View() string {
	var b strings.Builder
	b.WriteString("Поле       │ Значение\n")
	b.WriteString("───────────┼────────────────────────────────────────────\n")
	b.WriteString("Название   │ [" + m.inputs[fieldName].View() + "]\n")
	b.WriteString("Описание   │\n")
	b.WriteString(m.description.View())
	b.WriteString("\n")
	b.WriteString("Категория  │ [" + m.inputs[fieldCategory].View() + "]\n")
	b.WriteString("Приоритет  │ [" + m.inputs[fieldPriority].View() + "]\n")
	b.WriteString("Срок       │ [" + m.inputs[fieldDeadline].View() + "]\n")

	if m.submitting {
		b.WriteString("\n[Сохранение...]\n")
	} else {
		b.WriteString("\n[Сохранить]\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Ошибка: " + m.errMsg))
		b.WriteString("\n")
	}

	title := "НОВАЯ ЗАДАЧА"
	if m.editing != nil {
		title = "ИЗМЕНЕНИЕ ЗАДАЧИ"
	}
	return renderPage(title, strings.TrimRight(b.String(), "\n"), "esc: назад │ tab: след. поле │ ctrl+s: сохранить")
}
