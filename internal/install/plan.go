// Package install turns catalog fonts into extracted font files and the
// registry entries that make them visible to Windows programs.
package install

import (
	"fmt"

	"github.com/blackwell-systems/winefonts/internal/catalog"
	"github.com/google/uuid"
)

// Step extracts Files from one download for one font.
type Step struct {
	Font     *catalog.Font
	Download *catalog.Download
	Files    []catalog.CabFile
}

// SelectFonts resolves font queries (ID, name, or short name) and an
// optional group name into a de-duplicated font list, in the order given.
func SelectFonts(idx *catalog.Index, queries []string, group string) ([]*catalog.Font, error) {
	var out []*catalog.Font
	seen := make(map[uuid.UUID]bool)
	add := func(f *catalog.Font) {
		if !seen[f.ID] {
			seen[f.ID] = true
			out = append(out, f)
		}
	}

	for _, q := range queries {
		f, ok := idx.FindFont(q)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFont, q)
		}
		add(f)
	}

	if group != "" {
		g, ok := idx.GroupByName(group)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, group)
		}
		fonts, missing := idx.FontsInGroup(*g)
		if len(missing) > 0 {
			return nil, fmt.Errorf("group %q: %w: %s", g.Name, ErrUnknownFont, missing[0])
		}
		for _, f := range fonts {
			add(f)
		}
	}
	return out, nil
}

// Plan resolves every installation of fonts against the catalog. All
// references must resolve; installations from the same font and download
// are merged into one step.
func Plan(idx *catalog.Index, fonts []*catalog.Font) ([]Step, error) {
	var steps []Step
	for _, f := range fonts {
		byDownload := make(map[uuid.UUID]int)
		for i, inst := range f.Installations {
			switch v := inst.(type) {
			case catalog.Cabextract:
				d, ok := idx.DownloadFor(v)
				if !ok {
					return nil, fmt.Errorf("font %q installation %d: %w %s", f.Name, i, ErrUnresolvedDownload, v.Download)
				}
				if at, ok := byDownload[d.ID]; ok {
					steps[at].Files = mergeFiles(steps[at].Files, v.Files)
					continue
				}
				byDownload[d.ID] = len(steps)
				steps = append(steps, Step{Font: f, Download: d, Files: mergeFiles(nil, v.Files)})
			default:
				return nil, fmt.Errorf("font %q installation %d: %w %q", f.Name, i, ErrUnsupportedInstallation, inst.Type())
			}
		}
	}
	return steps, nil
}

// Downloads returns the distinct downloads steps need, in order.
func Downloads(steps []Step) []*catalog.Download {
	seen := make(map[uuid.UUID]bool)
	var out []*catalog.Download
	for _, s := range steps {
		if !seen[s.Download.ID] {
			seen[s.Download.ID] = true
			out = append(out, s.Download)
		}
	}
	return out
}

// TotalSize sums the declared size of the distinct downloads.
func TotalSize(steps []Step) float64 {
	var total float64
	for _, d := range Downloads(steps) {
		total += d.FileSize
	}
	return total
}

func mergeFiles(dst, src []catalog.CabFile) []catalog.CabFile {
	for _, f := range src {
		dup := false
		for _, have := range dst {
			if have.File == f.File {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, f)
		}
	}
	return dst
}
