package tui

import (
	"strings"

	"github.com/MKhiriev/go-todo-keeper/models"
)

// renderBuildInfoWindow is shown by "v" on the menu and in the task list.
func renderBuildInfoWindow(info models.AppBuildInfo) string {
	rows := [][2]string{
		{"Приложение", "TodoKeeper"},
		{"Версия", info.BuildVersion()},
		{"Дата сборки", info.BuildDate()},
		{"Коммит", info.BuildCommit()},
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, padRight(row[0]+":", 14)+row[1])
	}

	return renderPage("О ПРОГРАММЕ", strings.Join(lines, "\n"), "esc: назад")
}
