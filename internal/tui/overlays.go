package tui

import "fmt"

// Overlays are drawn under the current page and take every key until they
// are closed.

func renderErrorOverlay(message string) string {
	return renderOverlay(errorStyle.Render("Ошибка"), message, "enter / esc: закрыть")
}

func renderConfirmDelete(name string) string {
	return renderOverlay("Удаление", fmt.Sprintf("Удалить задачу %q?", fitText(name, 40)), "y: да    n: нет")
}

func renderOverlay(title, body, help string) string {
	return overlayBoxStyle.Render(title + "\n\n" + body + "\n\n" + helpStyle.Render(help))
}
