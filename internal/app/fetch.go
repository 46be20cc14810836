package app

import (
	"bytes"
	"fmt"

	"github.com/blackwell-systems/winefonts/internal/catalog"
	"github.com/blackwell-systems/winefonts/internal/util"
	"github.com/spf13/cobra"
)

func newFetchCmd() *cobra.Command {
	var (
		url string
		out string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the catalog into the local cache",
		Long: `Download the catalog from --url (or catalog.url in config), check that
it decodes, and store it in the cache where read commands find it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if url == "" {
				url = cfg.Catalog.URL
			}
			if url == "" {
				return fmt.Errorf("no catalog URL: pass --url or set catalog.url in config")
			}

			data, err := client.Fetch(cmd.Context(), url)
			if err != nil {
				return fmt.Errorf("fetching catalog: %w", err)
			}
			f, err := catalog.Decode(data)
			if err != nil {
				return fmt.Errorf("fetched catalog is invalid: %w", err)
			}

			// The cache always holds JSON.
			if catalog.FormatFor(url) != catalog.FormatJSON {
				if data, err = catalog.Marshal(f); err != nil {
					return err
				}
			}
			path, err := cacheMgr.StoreCatalog(bytes.NewReader(data))
			if err != nil {
				return fmt.Errorf("caching catalog: %w", err)
			}
			ok("Fetched catalog %s: %d fonts, %d downloads (%s)",
				f.Version, len(f.Fonts), len(f.Downloads), util.HumanBytes(float64(len(data))))
			logger.Info("catalog cached", "path", path, "url", url)

			if out != "" {
				if err := catalog.Save(out, f); err != nil {
					return err
				}
				ok("Saved to %s", out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Catalog URL (default: catalog.url)")
	cmd.Flags().StringVar(&out, "out", "", "Also save the catalog to this path (format by extension)")
	return cmd
}
