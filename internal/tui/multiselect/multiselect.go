// Package multiselect adds checkbox selection to a bubbles list.
package multiselect

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// SelectableItem is a list item that carries its own selection state.
// Items are values, so WithSelected returns an updated copy.
type SelectableItem interface {
	list.Item
	// Key identifies the item across filtering and reordering.
	Key() string
	IsSelected() bool
	WithSelected(bool) SelectableItem
}

// Model wraps a list.Model with multi-select state.
type Model struct {
	List          list.Model
	selected      map[string]bool
	showCount     bool
	originalTitle string
}

// New wraps l. The list's current title becomes the base title.
func New(l list.Model) Model {
	return Model{
		List:          l,
		selected:      make(map[string]bool),
		showCount:     true,
		originalTitle: l.Title,
	}
}

// SetShowCount controls whether the selection count appears in the title.
func (m *Model) SetShowCount(show bool) {
	m.showCount = show
	m.updateTitle()
}

// SetTitle updates the base title (without count).
func (m *Model) SetTitle(title string) {
	m.originalTitle = title
	m.updateTitle()
}

// Toggle flips the selection of the item under the cursor. It returns
// false when there is no selectable item there.
func (m *Model) Toggle() bool {
	item, ok := m.List.SelectedItem().(SelectableItem)
	if !ok {
		return false
	}
	k := item.Key()
	if m.selected[k] {
		delete(m.selected, k)
	} else {
		m.selected[k] = true
	}
	m.sync()
	return true
}

// Select marks the item with key k.
func (m *Model) Select(k string) {
	m.selected[k] = true
	m.sync()
}

// Deselect clears the item with key k.
func (m *Model) Deselect(k string) {
	delete(m.selected, k)
	m.sync()
}

// ClearSelection removes all selections.
func (m *Model) ClearSelection() {
	m.selected = make(map[string]bool)
	m.sync()
}

// SelectedCount returns the number of selected items.
func (m *Model) SelectedCount() int {
	return len(m.selected)
}

// SelectedItems returns the selected items in list order.
func (m *Model) SelectedItems() []SelectableItem {
	var out []SelectableItem
	for _, it := range m.List.Items() {
		if s, ok := it.(SelectableItem); ok && m.selected[s.Key()] {
			out = append(out, s)
		}
	}
	return out
}

// sync rewrites list items so their selection state matches the model.
func (m *Model) sync() {
	items := m.List.Items()
	updated := make([]list.Item, len(items))
	for i, it := range items {
		if s, ok := it.(SelectableItem); ok {
			updated[i] = s.WithSelected(m.selected[s.Key()])
		} else {
			updated[i] = it
		}
	}
	m.List.SetItems(updated)
	m.updateTitle()
}

func (m *Model) updateTitle() {
	if !m.showCount {
		m.List.Title = m.originalTitle
		return
	}
	m.List.Title = fmt.Sprintf("%s (%d selected)", m.originalTitle, m.SelectedCount())
}

// Update forwards msg to the list.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	return m, cmd
}

// View renders the list.
func (m Model) View() string {
	return m.List.View()
}
