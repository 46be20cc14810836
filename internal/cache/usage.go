package cache

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Usage counts cached download files and their total size. Partial
// downloads (.tmp) are not counted.
func (m *Manager) Usage() (files int, size int64, err error) {
	root := filepath.Join(m.baseDir, "downloads")
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == root {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() || strings.HasSuffix(path, ".tmp") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		files++
		size += info.Size()
		return nil
	})
	return files, size, err
}

// Clear removes every cached download. The fetched catalog is kept.
func (m *Manager) Clear() error {
	return m.withLock(func() error {
		return os.RemoveAll(filepath.Join(m.baseDir, "downloads"))
	})
}
