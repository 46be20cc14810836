package tui

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/blackwell-systems/winefonts/internal/catalog"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"
)

func testItems() []FontItem {
	d := &catalog.Download{ID: uuid.New(), URL: catalog.MustParseURL("https://example.com/arial32.exe"), FileSize: 2048}
	mk := func(name, pub string, cats ...catalog.Category) FontItem {
		return FontItem{
			Font: catalog.Font{
				ID: uuid.New(), Name: name, ShortName: strings.ToLower(name), Publisher: pub, Categories: cats,
				Installations: []catalog.Installation{
					catalog.Cabextract{Download: d.ID, Files: []catalog.CabFile{{File: name + ".ttf", RegistryName: name + " (TrueType)"}}},
				},
			},
			Downloads: []*catalog.Download{d},
		}
	}
	return []FontItem{
		mk("Arial", "Monotype", catalog.CategorySansSerif),
		mk("Courier", "IBM", catalog.CategoryMonospace),
		mk("Webdings", "Microsoft", catalog.CategorySymbol),
	}
}

func sized(m BrowserModel) BrowserModel {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(BrowserModel)
}

func press(m BrowserModel, msg tea.KeyMsg) (BrowserModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(BrowserModel), cmd
}

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestBrowser_InstallCursorFont(t *testing.T) {
	m := sized(NewBrowser("Fonts", testItems()))
	m, cmd := press(m, runes("i"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	res := m.Result()
	if res.Action != ActionInstall || len(res.Fonts) != 1 || res.Fonts[0].Font.Name != "Arial" {
		t.Errorf("result = %+v", res)
	}
}

func TestBrowser_MultiSelectDownload(t *testing.T) {
	m := sized(NewBrowser("Fonts", testItems()))
	m, _ = press(m, keySpace) // Arial, cursor moves to Courier
	m, _ = press(m, runes("j"))
	m, _ = press(m, keySpace) // Webdings
	m, _ = press(m, runes("g"))

	res := m.Result()
	if res.Action != ActionDownload {
		t.Fatalf("action = %q", res.Action)
	}
	var names []string
	for _, f := range res.Fonts {
		names = append(names, f.Font.Name)
	}
	if strings.Join(names, ",") != "Arial,Webdings" {
		t.Errorf("chosen = %v", names)
	}
}

func TestBrowser_ClearAndQuit(t *testing.T) {
	m := sized(NewBrowser("Fonts", testItems()))
	m, _ = press(m, keySpace)
	m, _ = press(m, runes("c"))
	if m.ms.SelectedCount() != 0 {
		t.Error("clear left a selection")
	}
	m, cmd := press(m, runes("q"))
	if cmd == nil || m.Result().Action != ActionNone {
		t.Errorf("quit result = %+v", m.Result())
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestBrowser_ViewShowsDetails(t *testing.T) {
	m := sized(NewBrowser("Fonts", testItems()))
	v := ansi.Strip(m.View())
	for _, want := range []string{"Font Details", "Arial (TrueType)", "Monotype", "2.0 KiB"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m, _ = press(m, keyTab)
	if strings.Contains(ansi.Strip(m.View()), "Font Details") {
		t.Error("tab should hide the details pane")
	}
}

func TestRunBrowser_Empty(t *testing.T) {
	if _, err := RunBrowser("Fonts", nil); err != ErrNoFonts {
		t.Errorf("err = %v, want ErrNoFonts", err)
	}
}

func TestFontItem_FilterValue(t *testing.T) {
	fi := testItems()[1]
	v := fi.FilterValue()
	for _, want := range []string{"Courier", "courier", "IBM", "monospace"} {
		if !strings.Contains(v, want) {
			t.Errorf("FilterValue %q missing %q", v, want)
		}
	}
}

func TestPadOrTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"abc", 5, "abc  "},
		{"abcdef", 4, "abc…"},
		{"abc", 3, "abc"},
		{"abc", 0, ""},
	}
	for _, c := range cases {
		if got := padOrTruncate(c.in, c.width); got != c.want {
			t.Errorf("padOrTruncate(%q, %d) = %q, want %q", c.in, c.width, got, c.want)
		}
	}
}

func TestComputeColumnWidths_Minimums(t *testing.T) {
	n, p, c := computeColumnWidths(10)
	if n != minNameWidth || p != minPublisherWidth || c != minCategoryWidth {
		t.Errorf("got %d,%d,%d", n, p, c)
	}
	n, _, _ = computeColumnWidths(400)
	if n != maxNameWidth {
		t.Errorf("name width = %d, want capped at %d", n, maxNameWidth)
	}
}

func TestProgressReader(t *testing.T) {
	data := bytes.Repeat([]byte("x"), 3*progressInterval)
	ch := make(chan int64, 16)
	pr := NewProgressReader(bytes.NewReader(data), int64(len(data)), ch)

	n, err := io.Copy(io.Discard, pr)
	if err != nil || n != int64(len(data)) {
		t.Fatalf("copy = %d, %v", n, err)
	}
	close(ch)

	var last int64
	count := 0
	for v := range ch {
		if v < last {
			t.Errorf("progress went backwards: %d after %d", v, last)
		}
		last = v
		count++
	}
	if last != int64(len(data)) {
		t.Errorf("last report = %d, want %d", last, len(data))
	}
	if count > 4 {
		t.Errorf("%d reports, want at most one per interval", count)
	}
}

func TestProgressModel_Finish(t *testing.T) {
	ch := make(chan int64)
	m := progressModel{total: 100, label: "x", ch: ch}
	next, _ := m.Update(progressMsg(40))
	pm := next.(progressModel)
	if pm.current != 40 || pm.done {
		t.Errorf("model = %+v", pm)
	}
	next, cmd := pm.Update(progressMsg(-1))
	if !next.(progressModel).done || cmd == nil {
		t.Error("closed channel should finish the model")
	}
}
