package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/blackwell-systems/winefonts/internal/catalog"
	"github.com/blackwell-systems/winefonts/internal/tui/multiselect"
	"github.com/blackwell-systems/winefonts/internal/util"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// FontItem is a catalog font shown in the browser.
type FontItem struct {
	Font catalog.Font
	// Downloads the font needs, resolved against the catalog.
	Downloads []*catalog.Download
	// Cached is true when every download is already in the cache.
	Cached   bool
	selected bool
}

// FilterValue matches name, short name, publisher and categories.
func (f FontItem) FilterValue() string {
	cats := make([]string, len(f.Font.Categories))
	for i, c := range f.Font.Categories {
		cats[i] = string(c)
	}
	return strings.Join([]string{f.Font.Name, f.Font.ShortName, f.Font.Publisher, strings.Join(cats, " ")}, " ")
}

func (f FontItem) Key() string { return f.Font.ID.String() }
func (f FontItem) IsSelected() bool { return f.selected }

func (f FontItem) WithSelected(s bool) multiselect.SelectableItem {
	f.selected = s
	return f
}

// Size is the declared size of all downloads.
func (f FontItem) Size() float64 {
	var n float64
	for _, d := range f.Downloads {
		n += d.FileSize
	}
	return n
}

func (f FontItem) categoryText() string {
	parts := make([]string, len(f.Font.Categories))
	for i, c := range f.Font.Categories {
		parts[i] = string(c)
	}
	return strings.Join(parts, " · ")
}

const (
	minNameWidth      = 12
	maxNameWidth      = 40
	minPublisherWidth = 8
	maxPublisherWidth = 24
	minCategoryWidth  = 6
	cachedWidth       = 8
	columnGap         = 1
)

// computeColumnWidths splits totalWidth across the name, publisher and
// category columns; the cached column is fixed.
func computeColumnWidths(totalWidth int) (nameW, pubW, catW int) {
	usable := totalWidth - 4 - columnGap*3 - cachedWidth
	if usable < minNameWidth+minPublisherWidth+minCategoryWidth {
		return minNameWidth, minPublisherWidth, minCategoryWidth
	}
	nameW = min(usable*45/100, maxNameWidth)
	pubW = min((usable-nameW)*50/100, maxPublisherWidth)
	catW = max(usable-nameW-pubW, minCategoryWidth)
	return max(nameW, minNameWidth), max(pubW, minPublisherWidth), catW
}

// padOrTruncate fits s to exactly width terminal cells.
func padOrTruncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := ansi.StringWidth(s)
	if w > width {
		return ansi.Truncate(s, width, "…")
	}
	return s + strings.Repeat(" ", width-w)
}

type fontDelegate struct{}

func (fontDelegate) Height() int { return 1 }
func (fontDelegate) Spacing() int { return 0 }
func (fontDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (fontDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	fi, ok := item.(FontItem)
	if !ok {
		return
	}
	width := m.Width()
	if width <= 0 {
		width = 80
	}
	nameW, pubW, catW := computeColumnWidths(width)
	gap := strings.Repeat(" ", columnGap)

	cursor := index == m.Index()
	prefix := "  "
	switch {
	case fi.selected:
		prefix = StyleCached.Bold(true).Render("✓") + " "
	case cursor:
		prefix = StyleHighlight.Render("›") + " "
	}

	name := padOrTruncate(fi.Font.Name, nameW)
	pub := padOrTruncate(fi.Font.Publisher, pubW)
	cats := padOrTruncate(fi.categoryText(), catW)
	cached := ""
	if fi.Cached {
		cached = "✓ cached"
	}
	cached = padOrTruncate(cached, cachedWidth)

	var line string
	if cursor {
		line = StyleHighlight.Render(name) + gap + StyleHighlight.Faint(true).Render(pub) + gap +
			StyleCategory.Render(cats) + gap + StyleHighlight.Render(cached)
	} else {
		line = StyleNormal.Render(name) + gap + StyleHelp.Render(pub) + gap +
			StyleCategory.Render(cats) + gap + StyleCached.Render(cached)
	}
	_, _ = fmt.Fprint(w, prefix+line)
}

// renderDetails renders the side pane for the font under the cursor.
func renderDetails(fi FontItem, width int) string {
	textW := max(width-2-12, 10)
	label := func(s string) string { return StyleHighlight.Render(s + ": ") }

	var s strings.Builder
	s.WriteString(StyleHeader.Render("Font Details"))
	s.WriteString("\n\n")
	s.WriteString(label("Name") + ansi.Truncate(fi.Font.Name, textW, "…") + "\n")
	if fi.Font.ShortName != "" {
		s.WriteString(label("Short name") + ansi.Truncate(fi.Font.ShortName, textW, "…") + "\n")
	}
	if fi.Font.Publisher != "" {
		s.WriteString(label("Publisher") + ansi.Truncate(fi.Font.Publisher, textW, "…") + "\n")
	}
	if len(fi.Font.Categories) > 0 {
		s.WriteString(label("Categories") + StyleCategory.Render(fi.categoryText()) + "\n")
	}
	s.WriteString("\n")

	s.WriteString(label("Downloads"))
	fmt.Fprintf(&s, "%d", len(fi.Downloads))
	if size := fi.Size(); size > 0 {
		s.WriteString(" (" + util.HumanBytes(size) + ")")
	}
	s.WriteString("\n")
	for _, d := range fi.Downloads {
		s.WriteString("  " + StyleHelp.Render(ansi.Truncate(d.URL.Base(), textW, "…")) + "\n")
	}

	s.WriteString(label("Cached"))
	if fi.Cached {
		s.WriteString(StyleCached.Render("✓ yes"))
	} else {
		s.WriteString("no")
	}
	s.WriteString("\n\n")

	s.WriteString(StyleHighlight.Render("Files:") + "\n")
	for _, inst := range fi.Font.Installations {
		if c, ok := inst.(catalog.Cabextract); ok {
			for _, f := range c.Files {
				s.WriteString("  " + ansi.Truncate(f.RegistryName+" ("+f.File+")", textW+10, "…") + "\n")
			}
		}
	}

	return lipgloss.NewStyle().Width(width).Padding(0, 1).Render(s.String())
}
