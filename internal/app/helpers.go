package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/blackwell-systems/winefonts/internal/catalog"
	"github.com/blackwell-systems/winefonts/internal/install"
	"github.com/blackwell-systems/winefonts/internal/tui"
	"github.com/blackwell-systems/winefonts/internal/util"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

// catalogPath picks the catalog read commands use: --catalog, then
// catalog.path from config, then the fetched copy in the cache.
func catalogPath() string {
	if flagCatalog != "" {
		return flagCatalog
	}
	return cfg.EffectiveCatalogPath(cacheMgr.CatalogPath())
}

// loadIndex loads the active catalog and indexes it.
func loadIndex() (*catalog.Index, error) {
	path := catalogPath()
	f, err := catalog.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && path == cacheMgr.CatalogPath() {
			return nil, fmt.Errorf("no catalog found: run 'winefonts fetch' or pass --catalog")
		}
		return nil, err
	}
	logger.Debug("catalog loaded", "path", path, "fonts", len(f.Fonts), "downloads", len(f.Downloads))
	return catalog.NewIndex(f), nil
}

func categoryList(cats []catalog.Category) string {
	parts := make([]string, len(cats))
	for i, c := range cats {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}

// fontCached reports whether every download the font needs is cached.
func fontCached(idx *catalog.Index, f catalog.Font) bool {
	ds := idx.DownloadsForFont(f)
	for _, d := range ds {
		if !cacheMgr.Exists(*d) {
			return false
		}
	}
	return len(ds) > 0
}

func fontItems(idx *catalog.Index, fonts []catalog.Font) []tui.FontItem {
	items := make([]tui.FontItem, len(fonts))
	for i, f := range fonts {
		items[i] = tui.FontItem{
			Font:      f,
			Downloads: idx.DownloadsForFont(f),
			Cached:    fontCached(idx, f),
		}
	}
	return items
}

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range r {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

func newDownloader(force bool) *install.Downloader {
	dl := install.NewDownloader(client, cacheMgr, logger)
	dl.Force = force
	return dl
}

// fetchAll ensures every download is cached and returns their paths. A
// progress bar is shown per download when running interactively.
func fetchAll(ctx context.Context, cmd *cobra.Command, dl *install.Downloader, downloads []*catalog.Download) ([]string, error) {
	interactive := tui.ShouldUseTUI(cmd)
	paths := make([]string, 0, len(downloads))

	for _, d := range downloads {
		var (
			p   string
			err error
		)
		label := fmt.Sprintf("Downloading %s", d.URL.Base())
		if d.FileSize > 0 {
			label += " (" + util.HumanBytes(d.FileSize) + ")"
		}

		switch {
		case !dl.Force && dl.Cached(*d):
			p, err = dl.Ensure(ctx, *d)
		case interactive:
			p, err = ensureWithProgress(ctx, dl, *d, label)
		default:
			fmt.Println(label + " …")
			p, err = dl.Ensure(ctx, *d)
		}
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func ensureWithProgress(ctx context.Context, dl *install.Downloader, d catalog.Download, label string) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	progressCh := make(chan int64, 50)
	type result struct {
		path string
		err  error
	}
	done := make(chan result, 1)

	wrapped := *dl
	wrapped.Wrap = func(_ catalog.Download, r io.Reader, size int64) io.Reader {
		if size <= 0 {
			size = int64(d.FileSize)
		}
		return tui.NewProgressReader(r, size, progressCh)
	}
	go func() {
		p, err := wrapped.Ensure(ctx, d)
		close(progressCh)
		done <- result{p, err}
	}()

	if err := tui.ShowProgress(label, int64(d.FileSize), progressCh); err != nil {
		cancel()
		<-done
		return "", err
	}
	res := <-done
	return res.path, res.err
}

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(path, data, 0600)
}
