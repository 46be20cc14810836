package catalog

import "github.com/google/uuid"

// File is the root of a Winefonts catalog document.
type File struct {
	Version   Version    `json:"version" yaml:"version"`
	Downloads []Download `json:"downloads" yaml:"downloads"`
	Fonts     []Font     `json:"fonts" yaml:"fonts"`
	Groups    []Group    `json:"groups" yaml:"groups"`
}

// Download is a remote artifact that one or more installations extract from.
type Download struct {
	ID       uuid.UUID `json:"id" yaml:"id"`
	URL      URL       `json:"downloadUrl" yaml:"downloadUrl"`
	Hash     string    `json:"hash" yaml:"hash"`
	FileSize float64   `json:"fileSize" yaml:"fileSize"`
}

// Group is a named collection of fonts, referenced by ID.
type Group struct {
	ID    uuid.UUID   `json:"id" yaml:"id"`
	Name  string      `json:"name" yaml:"name"`
	Fonts []uuid.UUID `json:"fonts" yaml:"fonts"`
}

// Font is one installable font family.
type Font struct {
	ID            uuid.UUID      `json:"id" yaml:"id"`
	Name          string         `json:"name" yaml:"name"`
	ShortName     string         `json:"shortName" yaml:"shortName"`
	Publisher     string         `json:"publisher" yaml:"publisher"`
	Categories    []Category     `json:"categories" yaml:"categories"`
	Installations []Installation `json:"installations" yaml:"installations"`
}

// HasCategory reports whether the font is tagged with c.
func (f Font) HasCategory(c Category) bool {
	for _, fc := range f.Categories {
		if fc == c {
			return true
		}
	}
	return false
}

// Category classifies a font. The set is closed.
type Category string

const (
	CategorySerif     Category = "serif"
	CategorySansSerif Category = "sans-serif"
	CategoryMonospace Category = "monospace"
	CategoryCursive   Category = "cursive"
	CategoryDisplay   Category = "display"
	CategorySymbol    Category = "symbol"
)

// Categories lists every valid Category in declaration order.
var Categories = []Category{
	CategorySerif,
	CategorySansSerif,
	CategoryMonospace,
	CategoryCursive,
	CategoryDisplay,
	CategorySymbol,
}

// ParseCategory returns the Category named s, or false if s is not one.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Installation is one strategy for installing (part of) a font.
// Concrete variants are selected on the wire by the "type" field.
type Installation interface {
	Type() string
	isInstallation()
}

// TypeCabextract is the discriminator for Cabextract installations.
const TypeCabextract = "cabextract"

// Cabextract extracts files from a cabinet archive and registers each one
// under its registry name.
type Cabextract struct {
	Download uuid.UUID `json:"download" yaml:"download"`
	Files    []CabFile `json:"files" yaml:"files"`
}

// CabFile maps a file inside the archive to the name it is registered under.
type CabFile struct {
	File         string `json:"file" yaml:"file"`
	RegistryName string `json:"registryName" yaml:"registryName"`
}

// Type implements Installation.
func (Cabextract) Type() string { return TypeCabextract }

func (Cabextract) isInstallation() {}
