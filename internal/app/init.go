package app

import (
	"fmt"
	"os"

	"github.com/blackwell-systems/winefonts/internal/config"
	"github.com/blackwell-systems/winefonts/internal/tui"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var (
		catalogURL string
		fontsDir   string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Long: `Write a config file with the current settings (defaults, environment
overrides, and the flags below) to --config or ~/.config/winefonts/config.yml.`,
		Example: `  winefonts init --catalog-url https://example.com/winefonts/index.json
  winefonts fetch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flagConfig
			if path == "" {
				path = config.Path()
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			if catalogURL != "" {
				cfg.Catalog.URL = catalogURL
			}
			if fontsDir != "" {
				cfg.Defaults.FontsDir = config.ExpandHome(fontsDir)
			}
			if catalogURL == "" && tui.ShouldUseTUI(cmd) {
				if err := runInitWizard(cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
					return err
				}
			}
			if err := config.Save(path, cfg); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}
			ok("Wrote %s", path)

			if cfg.Catalog.URL == "" {
				fmt.Printf("Set %s, then run %s\n", color.CyanString("catalog.url"), color.CyanString("winefonts fetch"))
			} else {
				fmt.Printf("Next: %s\n", color.CyanString("winefonts fetch"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogURL, "catalog-url", "", "Catalog URL to fetch from")
	cmd.Flags().StringVar(&fontsDir, "fonts-dir", "", "Where installed fonts go")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config")
	return cmd
}
