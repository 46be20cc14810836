package install

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/blackwell-systems/winefonts/internal/logging"
)

// Extractor pulls individual files out of cabinet archives with the
// external cabextract tool.
type Extractor struct {
	binary string
	log    *slog.Logger
}

// NewExtractor returns an Extractor that runs binary ("cabextract" if empty).
func NewExtractor(binary string, logger *slog.Logger) *Extractor {
	if binary == "" {
		binary = "cabextract"
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Extractor{binary: binary, log: logger}
}

// Check reports ErrCabextractMissing if the binary cannot be found.
func (e *Extractor) Check() error {
	if _, err := exec.LookPath(e.binary); err != nil {
		return fmt.Errorf("%w: %s", ErrCabextractMissing, e.binary)
	}
	return nil
}

// Extract writes file from archive into destDir and returns the path of
// the extracted file. Archive member names match case-insensitively and
// must be local paths; names that would leave destDir are rejected.
func (e *Extractor) Extract(ctx context.Context, archive, destDir, file string) (string, error) {
	if !filepath.IsLocal(file) {
		return "", fmt.Errorf("%w: %q", ErrUnsafeFileName, file)
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, e.binary, "-q", "-d", destDir, "-F", file, archive)
	out, err := cmd.CombinedOutput()
	e.log.Debug("cabextract", "archive", archive, "file", file, "dest", destDir, "err", err)
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) || errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrCabextractMissing, e.binary)
		}
		return "", fmt.Errorf("cabextract %s from %s: %w: %s", file, filepath.Base(archive), err, strings.TrimSpace(string(out)))
	}

	path, ok := findFold(destDir, file)
	if !ok {
		return "", fmt.Errorf("%w: %s in %s", ErrFileNotExtracted, file, filepath.Base(archive))
	}
	return path, nil
}

// findFold looks for name in dir ignoring case.
func findFold(dir, name string) (string, bool) {
	exact := filepath.Join(dir, name)
	if _, err := os.Stat(exact); err == nil {
		return exact, true
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	for _, ent := range entries {
		if !ent.IsDir() && strings.EqualFold(ent.Name(), filepath.Base(name)) {
			return filepath.Join(dir, ent.Name()), true
		}
	}
	return "", false
}
