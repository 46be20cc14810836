package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/blackwell-systems/winefonts/internal/catalog"
	"github.com/blackwell-systems/winefonts/internal/install"
	"github.com/blackwell-systems/winefonts/internal/util"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type installOptions struct {
	dest   string
	reg    string
	force  bool
	dryRun bool
}

func newInstallCmd() *cobra.Command {
	var (
		group string
		opts  installOptions
	)

	cmd := &cobra.Command{
		Use:   "install [font...]",
		Short: "Download, extract, and register fonts",
		Long: `Install fonts (by ID, name, or short name) or a --group: download the
archives, extract the listed files with cabextract into --dest, and
write a REGEDIT4 file registering them (--reg, default <dest>/winefonts.reg).

Import the registry file into a Wine prefix with:
  wine regedit <dest>/winefonts.reg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && group == "" {
				return fmt.Errorf("name at least one font or pass --group")
			}
			idx, err := loadIndex()
			if err != nil {
				return err
			}
			fonts, err := install.SelectFonts(idx, args, group)
			if err != nil {
				return err
			}
			return runInstall(cmd, idx, fonts, opts)
		},
	}

	cmd.ValidArgsFunction = completeFonts
	cmd.Flags().StringVar(&group, "group", "", "Install every font in this group")
	cmd.Flags().StringVar(&opts.dest, "dest", "", "Fonts directory (default: defaults.fonts_dir)")
	cmd.Flags().StringVar(&opts.reg, "reg", "", "Registry file to write (default: <dest>/winefonts.reg)")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Re-download even if already cached")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Show what would be installed")
	return cmd
}

func runInstall(cmd *cobra.Command, idx *catalog.Index, fonts []*catalog.Font, opts installOptions) error {
	steps, err := install.Plan(idx, fonts)
	if err != nil {
		return err
	}
	dest := opts.dest
	if dest == "" {
		dest = cfg.Defaults.FontsDir
	}
	reg := opts.reg
	if reg == "" {
		reg = filepath.Join(dest, "winefonts.reg")
	}

	header("Installing %d fonts into %s (%s to download)", len(fonts), dest, util.HumanBytes(install.TotalSize(steps)))
	if opts.dryRun {
		for _, s := range steps {
			fmt.Printf("  %s  from %s\n", color.WhiteString(s.Font.Name), s.Download.URL.Base())
			for _, f := range s.Files {
				fmt.Printf("      %s → %q\n", f.File, f.RegistryName)
			}
		}
		return nil
	}

	extractor := install.NewExtractor(cfg.Install.EffectiveCabextract(), logger)
	if err := extractor.Check(); err != nil {
		return err
	}

	// Fetch up front so progress bars don't interleave with extraction.
	dl := newDownloader(opts.force)
	if _, err := fetchAll(cmd.Context(), cmd, dl, install.Downloads(steps)); err != nil {
		return err
	}
	dl.Force = false

	in := &install.Installer{Fetcher: dl, Extractor: extractor, FontsDir: dest, Log: logger}
	res, err := in.Run(cmd.Context(), steps)
	if res != nil {
		for _, f := range res.Files {
			ok("Installed %s", f)
		}
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(reg, []byte(install.RegistryFile(res.Entries)), 0644); err != nil {
		return fmt.Errorf("writing registry file: %w", err)
	}
	ok("Wrote %s (%d entries)", reg, len(res.Entries))
	return nil
}
