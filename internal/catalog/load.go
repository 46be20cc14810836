package catalog

import (
	"fmt"
	"os"
)

// Load reads and decodes a catalog file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	f, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	return f, nil
}

// Save encodes f in the format implied by path's extension and writes it.
func Save(path string, f *File) error {
	data, err := Encode(f, FormatFor(path))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
