package install

import (
	"sort"
	"strings"
)

// Font registry keys written to the .reg file. Wine reads both.
var fontKeys = []string{
	`HKEY_LOCAL_MACHINE\Software\Microsoft\Windows NT\CurrentVersion\Fonts`,
	`HKEY_LOCAL_MACHINE\Software\Microsoft\Windows\CurrentVersion\Fonts`,
}

// RegistryEntry registers an installed font file under a display name.
type RegistryEntry struct {
	Name string // e.g. "Arial (TrueType)"
	File string // file name inside the fonts directory
}

// RegistryFile renders entries as a REGEDIT4 document. Entries are sorted
// by name and later duplicates of a name are dropped.
func RegistryFile(entries []RegistryEntry) string {
	sorted := make([]RegistryEntry, 0, len(entries))
	seen := make(map[string]bool)
	for _, e := range entries {
		if seen[e.Name] {
			continue
		}
		seen[e.Name] = true
		sorted = append(sorted, e)
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var b strings.Builder
	b.WriteString("REGEDIT4\r\n")
	for _, key := range fontKeys {
		b.WriteString("\r\n[" + key + "]\r\n")
		for _, e := range sorted {
			b.WriteString(`"` + escapeReg(e.Name) + `"="` + escapeReg(e.File) + "\"\r\n")
		}
	}
	return b.String()
}

func escapeReg(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
