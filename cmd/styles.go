package cmd

import "github.com/charmbracelet/lipgloss"

// Centralized styles for consistent UX across views.
var (
	appTitle       = "Wind Data Dashboard"
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("25")).Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("247"))
	activeTabStyle = tabStyle.Bold(true).Foreground(lipgloss.Color("51")).Background(lipgloss.Color("236"))
	contentStyle   = lipgloss.NewStyle().Padding(1, 2)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Padding(0, 1)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("153"))
	dividerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

const (
	viewRose     = "rose"
	viewMap      = "map"
	viewTable    = "table"
	viewControls = "controls"
)

var viewNames = []string{viewRose, viewMap, viewTable, viewControls}

func tabs(current string, width int) string {
	var rendered []string
	for _, n := range viewNames {
		if n == current {
			rendered = append(rendered, activeTabStyle.Render(n))
		} else {
			rendered = append(rendered, tabStyle.Render(n))
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	if width > 0 {
		// Ensure line doesn't overflow; truncate softly.
		line = lipgloss.NewStyle().MaxWidth(width).Render(line)
	}
	return line
}
