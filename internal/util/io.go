package util

import (
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
)

func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// CopyFile copies src to dst, creating dst's parent directories.
func CopyFile(src, dst string) error {
	if err := EnsureDir(filepath.Dir(dst)); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// HumanBytes formats a catalog file size (bytes, possibly fractional).
func HumanBytes(n float64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}
