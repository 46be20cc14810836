package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Format selects the document syntax used when encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a user-supplied name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown catalog format %q (want json or yaml)", s)
}

// FormatFor picks a format from a file name's extension.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML
	}
	return FormatJSON
}

// Encode writes f in the requested format.
func Encode(f *File, format Format) ([]byte, error) {
	if format == FormatYAML {
		return MarshalYAML(f)
	}
	return Marshal(f)
}

// Marshal encodes a catalog as indented JSON.
func Marshal(f *File) ([]byte, error) {
	n := normalize(f)
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(n); err != nil {
		return nil, fmt.Errorf("encoding catalog: %w", err)
	}
	return buf.Bytes(), nil
}

// MarshalYAML encodes a catalog as YAML.
func MarshalYAML(f *File) ([]byte, error) {
	n := normalize(f)
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return nil, fmt.Errorf("encoding catalog: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding catalog: %w", err)
	}
	return buf.Bytes(), nil
}

// cabextractWire is the flattened form: discriminator first, then the
// variant's own fields in the same object.
type cabextractWire struct {
	Type     string    `json:"type" yaml:"type"`
	Download uuid.UUID `json:"download" yaml:"download"`
	Files    []CabFile `json:"files" yaml:"files"`
}

func (c Cabextract) wire() cabextractWire {
	files := c.Files
	if files == nil {
		files = []CabFile{}
	}
	return cabextractWire{Type: TypeCabextract, Download: c.Download, Files: files}
}

func (c Cabextract) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.wire())
}

func (c Cabextract) MarshalYAML() (interface{}, error) {
	return c.wire(), nil
}

// normalize returns a shallow copy of f with nil lists replaced by empty
// ones so they encode as [] rather than null.
func normalize(f *File) *File {
	if f == nil {
		return &File{Downloads: []Download{}, Fonts: []Font{}, Groups: []Group{}}
	}
	out := *f
	if out.Downloads == nil {
		out.Downloads = []Download{}
	}
	out.Fonts = make([]Font, len(f.Fonts))
	for i, fnt := range f.Fonts {
		if fnt.Categories == nil {
			fnt.Categories = []Category{}
		}
		if fnt.Installations == nil {
			fnt.Installations = []Installation{}
		}
		out.Fonts[i] = fnt
	}
	out.Groups = make([]Group, len(f.Groups))
	for i, g := range f.Groups {
		if g.Fonts == nil {
			g.Fonts = []uuid.UUID{}
		}
		out.Groups[i] = g
	}
	return &out
}
