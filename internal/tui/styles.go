package tui

import "github.com/charmbracelet/lipgloss"

// ANSI palette indexes, so the UI follows the terminal theme.
const (
	colorRed    = lipgloss.Color("9")
	colorGreen  = lipgloss.Color("10")
	colorYellow = lipgloss.Color("11")
	colorCyan   = lipgloss.Color("14")
)

var (
	appStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleStyle      = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	conflictStyle   = lipgloss.NewStyle().Foreground(colorYellow)
	onlineStyle     = lipgloss.NewStyle().Foreground(colorGreen)
	offlineStyle    = lipgloss.NewStyle().Foreground(colorRed)
	cursorStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	doneStyle       = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
)

func cursorMark(selected bool) string {
	if selected {
		return cursorStyle.Render(">")
	}
	return " "
}
