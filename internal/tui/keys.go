package tui

import "github.com/charmbracelet/bubbles/key"

// browserKeys are the font browser's shortcuts. Navigation and filtering
// come from bubbles/list.
type browserKeys struct {
	Quit     key.Binding
	Install  key.Binding
	Download key.Binding
	Toggle   key.Binding
	Clear    key.Binding
	Details  key.Binding
}

func newBrowserKeys() browserKeys {
	return browserKeys{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Install: key.NewBinding(
			key.WithKeys("enter", "i"),
			key.WithHelp("i", "install"),
		),
		Download: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "download"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear"),
		),
		Details: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "details"),
		),
	}
}

// ShortHelp returns the bindings shown under the list.
func (k browserKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Install, k.Download}
}

// FullHelp returns every browser binding.
func (k browserKeys) FullHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Clear, k.Install, k.Download, k.Details, k.Quit}
}
