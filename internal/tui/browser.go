package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blackwell-systems/winefonts/internal/tui/multiselect"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrNoFonts is returned when the browser has nothing to show.
var ErrNoFonts = errors.New("no fonts to display")

// BrowserAction is what the user asked for when leaving the browser.
type BrowserAction string

const (
	ActionNone     BrowserAction = ""
	ActionInstall  BrowserAction = "install"
	ActionDownload BrowserAction = "download"
)

// BrowserResult holds the outcome of a browser session.
type BrowserResult struct {
	Action BrowserAction
	Fonts  []FontItem
}

// BrowserModel is the font browser: a filterable multi-select list with
// an optional details pane.
type BrowserModel struct {
	ms          multiselect.Model
	keys        browserKeys
	showDetails bool
	width       int
	height      int
	activeCmd   string
	quitting    bool
	action      BrowserAction
	chosen      []FontItem
}

// NewBrowser builds the browser model for items.
func NewBrowser(title string, items []FontItem) BrowserModel {
	li := make([]list.Item, len(items))
	for i, it := range items {
		li[i] = it
	}

	keys := newBrowserKeys()
	l := list.New(li, fontDelegate{}, 0, 0)
	l.Title = title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = StyleHeader
	l.Styles.PaginationStyle = StyleHelp
	l.Styles.HelpStyle = StyleHelp
	l.AdditionalShortHelpKeys = keys.ShortHelp
	l.AdditionalFullHelpKeys = keys.FullHelp

	ms := multiselect.New(l)
	ms.SetTitle(title)
	return BrowserModel{ms: ms, keys: keys, showDetails: true}
}

func (m BrowserModel) Init() tea.Cmd {
	return nil
}

func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clearActiveCmdMsg:
		m.activeCmd = ""
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if m.ms.List.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Toggle):
			if m.ms.Toggle() {
				m.ms.List.CursorDown()
			}
			m.activeCmd = " "
			return m, highlightCmd()

		case key.Matches(msg, m.keys.Clear):
			m.ms.ClearSelection()
			m.activeCmd = "c"
			return m, highlightCmd()

		case key.Matches(msg, m.keys.Details):
			m.showDetails = !m.showDetails
			m.resize()
			m.activeCmd = "tab"
			return m, highlightCmd()

		case key.Matches(msg, m.keys.Install):
			return m.finish(ActionInstall)

		case key.Matches(msg, m.keys.Download):
			return m.finish(ActionDownload)
		}
	}

	var cmd tea.Cmd
	m.ms, cmd = m.ms.Update(msg)
	return m, cmd
}

// finish records the chosen fonts: the selection, or the font under the
// cursor when nothing is selected.
func (m BrowserModel) finish(action BrowserAction) (tea.Model, tea.Cmd) {
	var chosen []FontItem
	for _, it := range m.ms.SelectedItems() {
		chosen = append(chosen, it.(FontItem))
	}
	if len(chosen) == 0 {
		if it, ok := m.ms.List.SelectedItem().(FontItem); ok {
			chosen = []FontItem{it}
		}
	}
	if len(chosen) == 0 {
		return m, nil
	}
	m.action = action
	m.chosen = chosen
	m.quitting = true
	return m, tea.Quit
}

// Result returns the action and fonts chosen when the browser exited.
func (m BrowserModel) Result() *BrowserResult {
	return &BrowserResult{Action: m.action, Fonts: m.chosen}
}

func (m *BrowserModel) listWidth() int {
	w := m.width - StyleBorder.GetHorizontalFrameSize()
	if m.showDetails {
		w = w * 6 / 10
	}
	return max(w, 20)
}

func (m *BrowserModel) resize() {
	if m.width == 0 {
		return
	}
	// border plus the divider and footer lines
	h := m.height - StyleBorder.GetVerticalFrameSize() - 2
	m.ms.List.SetSize(m.listWidth(), max(h, 5))
}

func (m BrowserModel) renderFooter() string {
	return renderFooterBar([]shortcut{
		{Label: "↑/↓ navigate"},
		{Label: "/ filter"},
		{Key: " ", Label: "space select"},
		{Key: "c", Label: "c clear"},
		{Label: "i install"},
		{Label: "g download"},
		{Key: "tab", Label: "tab details"},
		{Label: "q quit"},
	}, m.activeCmd)
}

func (m BrowserModel) View() string {
	if m.quitting {
		return ""
	}

	body := m.ms.View()
	if m.showDetails {
		if fi, ok := m.ms.List.SelectedItem().(FontItem); ok {
			listView := lipgloss.NewStyle().
				BorderRight(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(ColorTeal).
				Render(body)
			detailsW := max(m.width-StyleBorder.GetHorizontalFrameSize()-m.listWidth()-1, 30)
			body = lipgloss.JoinHorizontal(lipgloss.Top, listView, renderDetails(fi, detailsW))
		}
	}

	divider := lipgloss.NewStyle().Foreground(ColorTeal).
		Render(strings.Repeat("─", max(m.width-StyleBorder.GetHorizontalFrameSize(), 40)))
	content := lipgloss.JoinVertical(lipgloss.Left, body, divider, m.renderFooter())
	return StyleBorder.Render(content)
}

// RunBrowser launches the interactive font browser.
func RunBrowser(title string, items []FontItem) (*BrowserResult, error) {
	if len(items) == 0 {
		return nil, ErrNoFonts
	}

	p := tea.NewProgram(NewBrowser(title, items), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("running TUI: %w", err)
	}
	if fm, ok := final.(BrowserModel); ok {
		return fm.Result(), nil
	}
	return &BrowserResult{Action: ActionNone}, nil
}
