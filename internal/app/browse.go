package app

import (
	"errors"
	"fmt"

	"github.com/blackwell-systems/winefonts/internal/catalog"
	"github.com/blackwell-systems/winefonts/internal/install"
	"github.com/blackwell-systems/winefonts/internal/tui"
	"github.com/spf13/cobra"
)

func newBrowseCmd() *cobra.Command {
	var (
		ff   filterFlags
		opts installOptions
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog interactively and install or download fonts",
		Long: `Browse fonts in a filterable list. Select fonts with space, then press
i to install or g to download them. Without a terminal this prints the
same table as 'winefonts list'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := loadIndex()
			if err != nil {
				return err
			}
			f, err := ff.filter()
			if err != nil {
				return err
			}
			fonts := f.Apply(idx.File().Fonts)

			if !tui.ShouldUseTUI(cmd) {
				return printFontTable(cmd, idx, fonts)
			}

			title := fmt.Sprintf("Winefonts %s", idx.File().Version)
			res, err := tui.RunBrowser(title, fontItems(idx, fonts))
			if errors.Is(err, tui.ErrNoFonts) {
				warn("No fonts match.")
				return nil
			}
			if err != nil {
				return err
			}

			chosen := make([]*catalog.Font, 0, len(res.Fonts))
			for _, it := range res.Fonts {
				if font, found := idx.Font(it.Font.ID); found {
					chosen = append(chosen, font)
				}
			}

			switch res.Action {
			case tui.ActionInstall:
				return runInstall(cmd, idx, chosen, opts)
			case tui.ActionDownload:
				steps, err := install.Plan(idx, chosen)
				if err != nil {
					return err
				}
				return runGet(cmd, steps, opts.force, "")
			}
			return nil
		},
	}

	ff.register(cmd)
	cmd.Flags().StringVar(&opts.dest, "dest", "", "Fonts directory for installs (default: defaults.fonts_dir)")
	cmd.Flags().StringVar(&opts.reg, "reg", "", "Registry file to write (default: <dest>/winefonts.reg)")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Re-download even if already cached")
	return cmd
}
