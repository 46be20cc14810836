package catalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/blackwell-systems/winefonts/internal/catalog"
	"github.com/google/uuid"
)

func richFile() *catalog.File {
	f := sampleFile()
	d2 := uuid.MustParse("11111111-2222-4333-8444-555555555555")
	mono := uuid.MustParse("22222222-3333-4444-8555-666666666666")
	f.Downloads = append(f.Downloads, catalog.Download{
		ID: d2, URL: catalog.MustParseURL("https://fonts.example.org/andale32.exe"),
		Hash: strings.Repeat("ab", 32), FileSize: 198384,
	})
	f.Fonts = append(f.Fonts, catalog.Font{
		ID: mono, Name: "Andale Mono", ShortName: "andale", Publisher: "Monotype",
		Categories: []catalog.Category{catalog.CategoryMonospace},
		Installations: []catalog.Installation{
			catalog.Cabextract{Download: d2, Files: []catalog.CabFile{{File: "AndaleMo.TTF", RegistryName: "Andale Mono (TrueType)"}}},
			catalog.Cabextract{Download: d2, Files: []catalog.CabFile{{File: "AndaleMo2.TTF", RegistryName: "Andale Mono 2 (TrueType)"}}},
		},
	})
	f.Groups = append(f.Groups, catalog.Group{ID: uuid.New(), Name: "Monospace", Fonts: []uuid.UUID{mono}})
	return f
}

// --- Index ---

func TestIndex_Lookups(t *testing.T) {
	f := richFile()
	idx := catalog.NewIndex(f)

	d, ok := idx.Download(uuid.MustParse(idD1))
	if !ok || d.Hash != "abc" {
		t.Fatalf("Download(D1) = %v, %v", d, ok)
	}
	fnt, ok := idx.Font(uuid.MustParse(idF1))
	if !ok || fnt.Name != "Test Font" {
		t.Fatalf("Font(F1) = %v, %v", fnt, ok)
	}
	g, ok := idx.Group(uuid.MustParse(idG1))
	if !ok || g.Name != "Core" {
		t.Fatalf("Group(G1) = %v, %v", g, ok)
	}
	if _, ok := idx.Font(uuid.New()); ok {
		t.Error("Font(random) should not resolve")
	}
	if idx.File() != f {
		t.Error("File() should return the indexed catalog")
	}
}

func TestIndex_DownloadFor(t *testing.T) {
	idx := catalog.NewIndex(sampleFile())
	cab := sampleFile().Fonts[0].Installations[0].(catalog.Cabextract)
	d, ok := idx.DownloadFor(cab)
	if !ok {
		t.Fatal("DownloadFor did not resolve")
	}
	if d.ID != uuid.MustParse(idD1) {
		t.Errorf("DownloadFor = %s, want %s", d.ID, idD1)
	}
}

func TestIndex_FontsInGroup(t *testing.T) {
	f := sampleFile()
	ghost := uuid.New()
	f.Groups[0].Fonts = append(f.Groups[0].Fonts, ghost)
	idx := catalog.NewIndex(f)

	fonts, missing := idx.FontsInGroup(f.Groups[0])
	if len(fonts) != 1 || fonts[0].Name != "Test Font" {
		t.Errorf("fonts = %v", fonts)
	}
	if len(missing) != 1 || missing[0] != ghost {
		t.Errorf("missing = %v, want [%s]", missing, ghost)
	}
}

func TestIndex_FindFont(t *testing.T) {
	idx := catalog.NewIndex(richFile())
	for _, q := range []string{idF1, "test font", "TEST", "Andale Mono", "andale"} {
		if _, ok := idx.FindFont(q); !ok {
			t.Errorf("FindFont(%q) not found", q)
		}
	}
	if _, ok := idx.FindFont("Comic Sans"); ok {
		t.Error("FindFont(Comic Sans) should fail")
	}
}

func TestIndex_GroupByName(t *testing.T) {
	idx := catalog.NewIndex(richFile())
	g, ok := idx.GroupByName("monospace")
	if !ok || g.Name != "Monospace" {
		t.Errorf("GroupByName = %v, %v", g, ok)
	}
	if _, ok := idx.GroupByName("nope"); ok {
		t.Error("GroupByName(nope) should fail")
	}
}

func TestIndex_DownloadsForFont_Dedup(t *testing.T) {
	f := richFile()
	idx := catalog.NewIndex(f)
	ds := idx.DownloadsForFont(f.Fonts[1])
	if len(ds) != 1 {
		t.Fatalf("expected 1 distinct download, got %d", len(ds))
	}
	if ds[0].URL.Base() != "andale32.exe" {
		t.Errorf("download base = %q", ds[0].URL.Base())
	}
}

func TestIndex_DuplicateIDFirstWins(t *testing.T) {
	f := sampleFile()
	dup := f.Downloads[0]
	dup.Hash = "second"
	f.Downloads = append(f.Downloads, dup)
	d, _ := catalog.NewIndex(f).Download(dup.ID)
	if d.Hash != "abc" {
		t.Errorf("Hash = %q, want first entry", d.Hash)
	}
}

// --- CheckReferences ---

func TestCheckReferences_Clean(t *testing.T) {
	if err := catalog.CheckReferences(richFile()); err != nil {
		t.Errorf("CheckReferences: %v", err)
	}
}

func TestCheckReferences_Problems(t *testing.T) {
	f := sampleFile()
	f.Fonts[0].Installations = append(f.Fonts[0].Installations, catalog.Cabextract{Download: uuid.New()})
	f.Groups[0].Fonts = append(f.Groups[0].Fonts, uuid.New())
	f.Downloads = append(f.Downloads, f.Downloads[0])

	err := catalog.CheckReferences(f)
	for _, want := range []error{catalog.ErrDanglingDownload, catalog.ErrDanglingFont, catalog.ErrDuplicateID} {
		if !errors.Is(err, want) {
			t.Errorf("CheckReferences missing %v: %v", want, err)
		}
	}
	var re *catalog.ReferenceError
	if !errors.As(err, &re) {
		t.Fatalf("err is not a *ReferenceError: %T", err)
	}
	msg := err.Error()
	for _, path := range []string{"fonts[0].installations[1].download", "groups[0].fonts[1]", "downloads[1].id"} {
		if !strings.Contains(msg, path) {
			t.Errorf("error does not mention %s:\n%s", path, msg)
		}
	}
}

// --- Filter ---

func TestFilter_ByCategory(t *testing.T) {
	fonts := richFile().Fonts
	got := catalog.Filter{Category: catalog.CategoryMonospace}.Apply(fonts)
	if len(got) != 1 || got[0].ShortName != "andale" {
		t.Errorf("category filter: %v", names(got))
	}
}

func TestFilter_ByPublisherCaseInsensitive(t *testing.T) {
	got := catalog.Filter{Publisher: "monotype"}.Apply(richFile().Fonts)
	if len(got) != 1 {
		t.Errorf("publisher filter: %v", names(got))
	}
}

func TestFilter_BySearch(t *testing.T) {
	fonts := richFile().Fonts
	cases := map[string]int{"andale": 1, "FONT": 1, "acme": 1, "zzz": 0, "": 2}
	for q, want := range cases {
		if got := (catalog.Filter{Search: q}).Apply(fonts); len(got) != want {
			t.Errorf("Search %q: got %v, want %d", q, names(got), want)
		}
	}
}

func TestFilter_Combined_NoMatch(t *testing.T) {
	got := catalog.Filter{Category: catalog.CategorySerif, Publisher: "Monotype"}.Apply(richFile().Fonts)
	if len(got) != 0 {
		t.Errorf("expected no match, got %v", names(got))
	}
}

func TestPublishers(t *testing.T) {
	fonts := append(richFile().Fonts, catalog.Font{Publisher: "ACME"})
	got := catalog.Publishers(fonts)
	if !reflect.DeepEqual(got, []string{"Acme", "Monotype"}) {
		t.Errorf("Publishers = %v", got)
	}
}

func names(fonts []catalog.Font) []string {
	out := make([]string, len(fonts))
	for i, f := range fonts {
		out[i] = f.Name
	}
	return out
}

// --- Load / Save ---

func TestSaveLoad_ByExtension(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"index.json", "catalog.yml"} {
		path := filepath.Join(dir, name)
		if err := catalog.Save(path, richFile()); err != nil {
			t.Fatalf("Save %s: %v", name, err)
		}
		got, err := catalog.Load(path)
		if err != nil {
			t.Fatalf("Load %s: %v", name, err)
		}
		if !reflect.DeepEqual(got, richFile()) {
			t.Errorf("%s: loaded catalog differs", name)
		}
	}

	raw, _ := os.ReadFile(filepath.Join(dir, "catalog.yml"))
	if strings.HasPrefix(strings.TrimSpace(string(raw)), "{") {
		t.Error("catalog.yml was written as JSON")
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := catalog.Load(filepath.Join(t.TempDir(), "nope.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load missing: %v", err)
	}
}

func TestLoad_InvalidKeepsDecodeError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, doc("abc", "https://x/y.zip", `["serif"]`, validInstallation), 0600); err != nil {
		t.Fatal(err)
	}
	_, err := catalog.Load(path)
	if !errors.Is(err, catalog.ErrInvalidVersion) {
		t.Errorf("Load: %v", err)
	}
}
