package cache

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/blackwell-systems/winefonts/internal/catalog"
	"github.com/blackwell-systems/winefonts/internal/util"
)

var (
	ErrChecksumMismatch = errors.New("checksum mismatch")
	ErrSizeMismatch     = errors.New("size mismatch")
)

// VerifyDownload checks the file at path against the download's declared
// size and hash. A size of zero skips the size check. The hash is compared
// as SHA-256 when it has that shape; other hash formats are not checked.
func VerifyDownload(path string, d catalog.Download) error {
	if d.FileSize > 0 {
		fi, err := os.Stat(path)
		if err != nil {
			return err
		}
		if fi.Size() != int64(d.FileSize) {
			return fmt.Errorf("%w: expected %d bytes, got %d", ErrSizeMismatch, int64(d.FileSize), fi.Size())
		}
	}
	if util.IsSHA256Hex(d.Hash) {
		return VerifyFile(path, strings.ToLower(d.Hash))
	}
	return nil
}

// VerifyFile checks the sha256 of the file at path against expected.
// Returns nil if they match or expected is empty (skip check).
func VerifyFile(path, expectedSHA256 string) error {
	if expectedSHA256 == "" {
		return nil
	}
	got, err := util.SHA256File(path)
	if err != nil {
		return fmt.Errorf("computing checksum: %w", err)
	}
	if got != expectedSHA256 {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksumMismatch, expectedSHA256, got)
	}
	return nil
}
