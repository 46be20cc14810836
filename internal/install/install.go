package install

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/blackwell-systems/winefonts/internal/cache"
	"github.com/blackwell-systems/winefonts/internal/catalog"
	"github.com/blackwell-systems/winefonts/internal/logging"
	"github.com/blackwell-systems/winefonts/internal/remote"
	"github.com/blackwell-systems/winefonts/internal/util"
)

// Fetcher makes a download available as a local file.
type Fetcher interface {
	Ensure(ctx context.Context, d catalog.Download) (string, error)
}

// FileExtractor pulls one file out of an archive.
type FileExtractor interface {
	Extract(ctx context.Context, archive, destDir, file string) (string, error)
}

// Downloader fetches archives into the cache, reusing verified copies.
type Downloader struct {
	client *remote.Client
	cache  *cache.Manager
	log    *slog.Logger

	// Force re-downloads even when a verified copy is cached.
	Force bool
	// Wrap, if set, wraps the response body (e.g. for progress display).
	Wrap func(d catalog.Download, r io.Reader, size int64) io.Reader
}

func NewDownloader(client *remote.Client, c *cache.Manager, logger *slog.Logger) *Downloader {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Downloader{client: client, cache: c, log: logger}
}

// Cached reports whether d is already in the cache.
func (dl *Downloader) Cached(d catalog.Download) bool {
	return dl.cache.Exists(d)
}

// Ensure returns the cached path of d, downloading it if needed.
func (dl *Downloader) Ensure(ctx context.Context, d catalog.Download) (string, error) {
	if !dl.Force && dl.cache.Exists(d) {
		path := dl.cache.Path(d)
		err := cache.VerifyDownload(path, d)
		if err == nil {
			dl.log.Debug("cache hit", "download", d.ID, "path", path)
			return path, nil
		}
		dl.log.Warn("cached download failed verification, fetching again", "download", d.ID, "err", err)
	}

	rc, size, err := dl.client.Open(ctx, d.URL.String())
	if err != nil {
		return "", fmt.Errorf("download %s: %w", d.URL.Base(), err)
	}
	defer func() { _ = rc.Close() }()

	var r io.Reader = rc
	if dl.Wrap != nil {
		r = dl.Wrap(d, rc, size)
	}
	path, err := dl.cache.Store(d, r)
	if err != nil {
		return "", fmt.Errorf("cache %s: %w", d.URL.Base(), err)
	}
	return path, nil
}

// Installer executes planned steps: fetch each archive, extract the listed
// files into FontsDir, and collect registry entries.
type Installer struct {
	Fetcher   Fetcher
	Extractor FileExtractor
	FontsDir  string
	Log       *slog.Logger
}

// Result lists what an install run produced.
type Result struct {
	Files   []string
	Entries []RegistryEntry
}

// Run installs every step, stopping at the first failure.
func (in *Installer) Run(ctx context.Context, steps []Step) (*Result, error) {
	log := in.Log
	if log == nil {
		log = logging.Discard()
	}
	if err := util.EnsureDir(in.FontsDir); err != nil {
		return nil, fmt.Errorf("create fonts dir: %w", err)
	}

	res := &Result{}
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		archive, err := in.Fetcher.Ensure(ctx, *s.Download)
		if err != nil {
			return res, err
		}
		if err := in.extractStep(ctx, s, archive, res); err != nil {
			return res, fmt.Errorf("font %q: %w", s.Font.Name, err)
		}
		log.Info("installed font", "font", s.Font.Name, "files", len(s.Files))
	}
	return res, nil
}

func (in *Installer) extractStep(ctx context.Context, s Step, archive string, res *Result) error {
	tmp, err := os.MkdirTemp("", "winefonts-extract-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.RemoveAll(tmp) }()

	for _, f := range s.Files {
		extracted, err := in.Extractor.Extract(ctx, archive, tmp, f.File)
		if err != nil {
			return err
		}
		name := filepath.Base(f.File)
		dest := filepath.Join(in.FontsDir, name)
		if err := util.CopyFile(extracted, dest); err != nil {
			return fmt.Errorf("copy %s: %w", name, err)
		}
		res.Files = append(res.Files, dest)
		res.Entries = append(res.Entries, RegistryEntry{Name: f.RegistryName, File: name})
	}
	return nil
}
