package app

import (
	"fmt"
	"path/filepath"

	"github.com/blackwell-systems/winefonts/internal/install"
	"github.com/blackwell-systems/winefonts/internal/util"
	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	var (
		group  string
		force  bool
		copyTo string
	)

	cmd := &cobra.Command{
		Use:   "get [font...]",
		Short: "Download the archives fonts need into the local cache",
		Long: `Download and verify every archive the given fonts (by ID, name, or short
name) or --group need. Verified cached copies are reused unless --force.`,
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
			steps, err := install.Plan(idx, fonts)
			if err != nil {
				return err
			}
			return runGet(cmd, steps, force, copyTo)
		},
	}

	cmd.ValidArgsFunction = completeFonts
	cmd.Flags().StringVar(&group, "group", "", "Download every font in this group")
	cmd.Flags().BoolVar(&force, "force", false, "Re-download even if already cached")
	cmd.Flags().StringVar(&copyTo, "to", "", "Copy the archives to this directory")
	return cmd
}

func runGet(cmd *cobra.Command, steps []install.Step, force bool, copyTo string) error {
	downloads := install.Downloads(steps)
	paths, err := fetchAll(cmd.Context(), cmd, newDownloader(force), downloads)
	if err != nil {
		return err
	}
	for _, p := range paths {
		ok("Cached: %s", p)
	}

	if copyTo != "" {
		if err := util.EnsureDir(copyTo); err != nil {
			return err
		}
		for _, p := range paths {
			dest := filepath.Join(copyTo, filepath.Base(p))
			if err := util.CopyFile(p, dest); err != nil {
				return err
			}
			ok("Copied to %s", dest)
		}
	}
	return nil
}
