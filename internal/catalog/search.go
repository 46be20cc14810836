package catalog

import "strings"

// Filter applies all non-empty criteria and returns matching fonts.
type Filter struct {
	Category  Category
	Publisher string
	Search    string // matches name, short name, or publisher
}

// Apply returns the subset of fonts matching all non-empty filter fields.
func (f Filter) Apply(fonts []Font) []Font {
	var out []Font
	for _, fnt := range fonts {
		if f.Category != "" && !fnt.HasCategory(f.Category) {
			continue
		}
		if f.Publisher != "" && !strings.EqualFold(fnt.Publisher, f.Publisher) {
			continue
		}
		if f.Search != "" && !matchesSearch(fnt, f.Search) {
			continue
		}
		out = append(out, fnt)
	}
	return out
}

// Publishers returns the distinct publishers in first-seen order.
func Publishers(fonts []Font) []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range fonts {
		key := strings.ToLower(f.Publisher)
		if f.Publisher == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, f.Publisher)
	}
	return out
}

func matchesSearch(f Font, q string) bool {
	q = strings.ToLower(q)
	for _, s := range []string{f.Name, f.ShortName, f.Publisher} {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}
