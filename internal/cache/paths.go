package cache

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/blackwell-systems/winefonts/internal/catalog"
	"github.com/gofrs/flock"
)

// Manager handles the local download cache.
type Manager struct {
	baseDir string
	mu      sync.Mutex // flock does not exclude goroutines sharing one Flock
	lock    *flock.Flock
}

// New creates a cache Manager rooted at baseDir.
func New(baseDir string) *Manager {
	return &Manager{
		baseDir: baseDir,
		lock:    flock.New(filepath.Join(baseDir, ".lock")),
	}
}

// BaseDir returns the cache root.
func (m *Manager) BaseDir() string { return m.baseDir }

// CatalogPath is where the fetched catalog index is kept.
func (m *Manager) CatalogPath() string {
	return filepath.Join(m.baseDir, "catalog", "index.json")
}

// Path returns the cache path for a download.
// Layout: <baseDir>/downloads/<download-id>/<url basename>
func (m *Manager) Path(d catalog.Download) string {
	name := d.URL.Base()
	if name == "" || name == "." || name == ".." {
		name = "download"
	}
	return filepath.Join(m.dir(d), name)
}

func (m *Manager) dir(d catalog.Download) string {
	return filepath.Join(m.baseDir, "downloads", d.ID.String())
}

// Exists reports whether the download is cached.
func (m *Manager) Exists(d catalog.Download) bool {
	_, err := os.Stat(m.Path(d))
	return err == nil
}

// Remove deletes the cached download if it exists.
func (m *Manager) Remove(d catalog.Download) error {
	return m.withLock(func() error {
		err := os.RemoveAll(m.dir(d))
		if err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	})
}
