package tui

import (
	"strings"
	"time"

	"github.com/MKhiriev/go-todo-keeper/models"
)

const (
	uiDivider    = "──────────────────────────────────────────────────────"
	deadlineForm = "2006-01-02"
	clockForm    = "15:04:05"
)

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		lines := strings.Split(data, "\n")
		for _, line := range lines {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else {
		b.WriteString("  -\n")
	}

	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString("  ")
		b.WriteString(helpStyle.Render(hotKeys))
		b.WriteString("\n")
	}
	b.WriteString("  ")
	b.WriteString(helpStyle.Render("ctrl+c: выход"))

	return b.String()
}

func valueOrDash(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}
	return *v
}

// fitText cuts v to max runes, marking the cut with "...".
func fitText(v string, max int) string {
	r := []rune(v)
	if max <= 0 || len(r) <= max {
		return v
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

func padRight(v string, width int) string {
	n := len([]rune(v))
	if n >= width {
		return v
	}
	return v + strings.Repeat(" ", width-n)
}

func priorityLabel(p *models.Priority) string {
	if p == nil {
		return "-"
	}
	switch *p {
	case models.PriorityHigh:
		return "высокий"
	case models.PriorityMedium:
		return "средний"
	case models.PriorityLow:
		return "низкий"
	default:
		return string(*p)
	}
}

func deadlineLabel(d *time.Time) string {
	if d == nil {
		return "-"
	}
	return d.Local().Format(deadlineForm)
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// taskDetails renders every user-visible field of t, one per line.
func taskDetails(t models.Task) string {
	var b strings.Builder
	b.WriteString("Название:  " + t.Name + "\n")
	b.WriteString("Описание:  " + valueOrDash(t.Description) + "\n")
	b.WriteString("Выполнена: " + checkbox(t.Completed) + "\n")
	b.WriteString("Категория: " + valueOrDash(t.Category) + "\n")
	b.WriteString("Приоритет: " + priorityLabel(t.Priority) + "\n")
	b.WriteString("Срок:      " + deadlineLabel(t.Deadline) + "\n")
	if t.Deleted {
		b.WriteString("Удалена\n")
	}
	if !t.UpdatedAt.IsZero() {
		b.WriteString("Изменена:  " + t.UpdatedAt.Local().Format(deadlineForm+" "+clockForm))
	}
	return strings.TrimRight(b.String(), "\n")
}
