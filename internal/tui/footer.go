package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// clearActiveCmdMsg clears the highlighted footer shortcut.
type clearActiveCmdMsg struct{}

// shortcut pairs a trigger key with its footer label.
type shortcut struct {
	Key   string // matched against activeCmd; empty never highlights
	Label string
}

// highlightCmd clears the footer highlight after 500ms. Set activeCmd on
// the model before returning it:
//
//	m.activeCmd = "g"
//	return m, highlightCmd()
func highlightCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(time.Time) tea.Msg {
		return clearActiveCmdMsg{}
	})
}

// renderFooterBar renders shortcut labels, highlighting the one matching
// activeCmd.
func renderFooterBar(shortcuts []shortcut, activeCmd string) string {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	parts := make([]string, len(shortcuts))
	for i, sc := range shortcuts {
		if activeCmd != "" && sc.Key == activeCmd {
			parts[i] = StyleHighlight.Render("[ " + sc.Label + " ]")
		} else {
			parts[i] = dim.Render(sc.Label)
		}
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(strings.Join(parts, dim.Render(" • ")))
}
