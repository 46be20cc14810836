package catalog

import (
	"errors"

	"github.com/google/uuid"
)

// CheckReferences reports duplicate IDs and references that do not resolve
// within f. Decode never calls it: a catalog with dangling references is
// still a well-formed document. The result joins one *ReferenceError per
// problem, or is nil.
func CheckReferences(f *File) error {
	var errs []error

	downloads := make(map[uuid.UUID]bool, len(f.Downloads))
	for i, d := range f.Downloads {
		if downloads[d.ID] {
			errs = append(errs, &ReferenceError{Path: join(index("downloads", i), "id"), ID: d.ID.String(), Err: ErrDuplicateID})
		}
		downloads[d.ID] = true
	}

	fonts := make(map[uuid.UUID]bool, len(f.Fonts))
	for i, fnt := range f.Fonts {
		if fonts[fnt.ID] {
			errs = append(errs, &ReferenceError{Path: join(index("fonts", i), "id"), ID: fnt.ID.String(), Err: ErrDuplicateID})
		}
		fonts[fnt.ID] = true
	}

	for i, fnt := range f.Fonts {
		for j, inst := range fnt.Installations {
			c, ok := inst.(Cabextract)
			if !ok {
				continue
			}
			if !downloads[c.Download] {
				path := join(index(join(index("fonts", i), "installations"), j), "download")
				errs = append(errs, &ReferenceError{Path: path, ID: c.Download.String(), Err: ErrDanglingDownload})
			}
		}
	}

	groups := make(map[uuid.UUID]bool, len(f.Groups))
	for i, g := range f.Groups {
		if groups[g.ID] {
			errs = append(errs, &ReferenceError{Path: join(index("groups", i), "id"), ID: g.ID.String(), Err: ErrDuplicateID})
		}
		groups[g.ID] = true
		for j, id := range g.Fonts {
			if !fonts[id] {
				errs = append(errs, &ReferenceError{Path: index(join(index("groups", i), "fonts"), j), ID: id.String(), Err: ErrDanglingFont})
			}
		}
	}

	return errors.Join(errs...)
}
