package cache

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/blackwell-systems/winefonts/internal/catalog"
)

// withLock serialises writers across processes sharing the cache.
func (m *Manager) withLock(fn func() error) error {
	if err := os.MkdirAll(m.baseDir, 0750); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.lock.Lock(); err != nil {
		return fmt.Errorf("lock cache: %w", err)
	}
	defer func() { _ = m.lock.Unlock() }()
	return fn()
}

// Store writes r to the cache path for d, verifying size and checksum
// before the file becomes visible. Returns the final file path.
func (m *Manager) Store(d catalog.Download, r io.Reader) (string, error) {
	destPath := m.Path(d)
	err := m.withLock(func() error {
		if err := os.MkdirAll(filepath.Dir(destPath), 0750); err != nil {
			return fmt.Errorf("create cache dir: %w", err)
		}
		return writeAtomic(destPath, r, func(tmpPath string) error {
			return VerifyDownload(tmpPath, d)
		})
	})
	if err != nil {
		return "", err
	}
	return destPath, nil
}

// StoreCatalog saves a fetched catalog document.
func (m *Manager) StoreCatalog(r io.Reader) (string, error) {
	destPath := m.CatalogPath()
	err := m.withLock(func() error {
		if err := os.MkdirAll(filepath.Dir(destPath), 0750); err != nil {
			return fmt.Errorf("create cache dir: %w", err)
		}
		return writeAtomic(destPath, r, nil)
	})
	if err != nil {
		return "", err
	}
	return destPath, nil
}

func writeAtomic(destPath string, r io.Reader, verify func(string) error) error {
	tmpPath := destPath + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing to cache: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if verify != nil {
		if err := verify(tmpPath); err != nil {
			_ = os.Remove(tmpPath)
			return err
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("moving into cache: %w", err)
	}
	return nil
}
