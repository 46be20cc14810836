package catalog

import (
	"strings"

	"github.com/google/uuid"
)

// Index resolves the UUID references inside a File. It points into the
// File's slices, so the File must not be modified while the Index is in use.
type Index struct {
	file      *File
	downloads map[uuid.UUID]*Download
	fonts     map[uuid.UUID]*Font
	groups    map[uuid.UUID]*Group
}

// NewIndex builds lookup tables for f. With duplicate IDs the first entry wins.
func NewIndex(f *File) *Index {
	idx := &Index{
		file:      f,
		downloads: make(map[uuid.UUID]*Download, len(f.Downloads)),
		fonts:     make(map[uuid.UUID]*Font, len(f.Fonts)),
		groups:    make(map[uuid.UUID]*Group, len(f.Groups)),
	}
	for i := range f.Downloads {
		if _, dup := idx.downloads[f.Downloads[i].ID]; !dup {
			idx.downloads[f.Downloads[i].ID] = &f.Downloads[i]
		}
	}
	for i := range f.Fonts {
		if _, dup := idx.fonts[f.Fonts[i].ID]; !dup {
			idx.fonts[f.Fonts[i].ID] = &f.Fonts[i]
		}
	}
	for i := range f.Groups {
		if _, dup := idx.groups[f.Groups[i].ID]; !dup {
			idx.groups[f.Groups[i].ID] = &f.Groups[i]
		}
	}
	return idx
}

// File returns the indexed catalog.
func (x *Index) File() *File { return x.file }

func (x *Index) Download(id uuid.UUID) (*Download, bool) {
	d, ok := x.downloads[id]
	return d, ok
}

func (x *Index) Font(id uuid.UUID) (*Font, bool) {
	f, ok := x.fonts[id]
	return f, ok
}

func (x *Index) Group(id uuid.UUID) (*Group, bool) {
	g, ok := x.groups[id]
	return g, ok
}

// DownloadFor resolves the archive a Cabextract installation extracts from.
func (x *Index) DownloadFor(c Cabextract) (*Download, bool) {
	return x.Download(c.Download)
}

// FontsInGroup returns the group's fonts in group order, plus any IDs that
// do not resolve.
func (x *Index) FontsInGroup(g Group) (fonts []*Font, missing []uuid.UUID) {
	for _, id := range g.Fonts {
		if f, ok := x.fonts[id]; ok {
			fonts = append(fonts, f)
		} else {
			missing = append(missing, id)
		}
	}
	return fonts, missing
}

// GroupByName returns the first group whose name matches case-insensitively.
func (x *Index) GroupByName(name string) (*Group, bool) {
	for i := range x.file.Groups {
		if strings.EqualFold(x.file.Groups[i].Name, name) {
			return &x.file.Groups[i], true
		}
	}
	return nil, false
}

// FindFont looks a font up by UUID, then by name or short name
// (case-insensitive).
func (x *Index) FindFont(query string) (*Font, bool) {
	if id, err := uuid.Parse(query); err == nil {
		return x.Font(id)
	}
	for i := range x.file.Fonts {
		f := &x.file.Fonts[i]
		if strings.EqualFold(f.Name, query) || strings.EqualFold(f.ShortName, query) {
			return f, true
		}
	}
	return nil, false
}

// DownloadsForFont returns the distinct downloads a font's installations
// need, in first-use order. Unresolvable references are skipped.
func (x *Index) DownloadsForFont(f Font) []*Download {
	seen := make(map[uuid.UUID]bool)
	var out []*Download
	for _, inst := range f.Installations {
		c, ok := inst.(Cabextract)
		if !ok || seen[c.Download] {
			continue
		}
		seen[c.Download] = true
		if d, ok := x.Download(c.Download); ok {
			out = append(out, d)
		}
	}
	return out
}
