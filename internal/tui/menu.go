package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type menuItem struct {
	title string
	page  string
}

// MenuModel is the first page of the sign-in flow.
type MenuModel struct {
	items  []menuItem
	idx    int
	status string
}

// NewMenuModel builds the menu. A non-empty notice is shown above the items,
// e.g. after the previous session was closed.
func NewMenuModel(notice string) *MenuModel {
	return &MenuModel{
		items: []menuItem{
			{title: "Войти", page: pageLogin},
			{title: "Зарегистрироваться", page: pageRegister},
		},
		status: notice,
	}
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		m.idx = max(m.idx-1, 0)
	case key.Matches(keyMsg, keys.down):
		m.idx = min(m.idx+1, len(m.items)-1)
	case key.Matches(keyMsg, keys.enter):
		return m, m.open(m.idx)
	default:
		// items can also be opened by their number
		if n, err := strconv.Atoi(keyMsg.String()); err == nil && n >= 1 && n <= len(m.items) {
			m.idx = n - 1
			return m, m.open(m.idx)
		}
	}

	return m, nil
}

func (m *MenuModel) open(idx int) tea.Cmd {
	page := m.items[idx].page
	m.status = ""
	return func() tea.Msg { return NavigateTo{Page: page} }
}

func (m *MenuModel) View() string {
	var b strings.Builder
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n\n")
	}

	for i, item := range m.items {
		fmt.Fprintf(&b, "%s %d. %s\n", cursorMark(i == m.idx), i+1, item.title)
	}

	return renderPage("TODO KEEPER", strings.TrimRight(b.String(), "\n"), "enter / 1-2: выбрать │ ↑/↓: навигация │ v: версия │ q: выход")
}
