package app

import (
	"fmt"

	"github.com/blackwell-systems/winefonts/internal/install"
	"github.com/blackwell-systems/winefonts/internal/util"
	"github.com/spf13/cobra"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local download cache",
	}
	cmd.AddCommand(newCacheInfoCmd(), newCacheClearCmd())
	return cmd
}

func newCacheInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache location and disk usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, size, err := cacheMgr.Usage()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Cache:     %s\n", cacheMgr.BaseDir())
			fmt.Fprintf(w, "Catalog:   %s\n", catalogPath())
			fmt.Fprintf(w, "Downloads: %d files, %s\n", files, util.HumanBytes(float64(size)))
			return nil
		},
	}
}

func newCacheClearCmd() *cobra.Command {
	var (
		all   bool
		group string
	)

	cmd := &cobra.Command{
		Use:   "clear [font...]",
		Short: "Remove cached downloads",
		Long: `Remove the cached archives of the given fonts or --group, or every
cached download with --all. The fetched catalog is kept.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				files, size, err := cacheMgr.Usage()
				if err != nil {
					return err
				}
				if err := cacheMgr.Clear(); err != nil {
					return fmt.Errorf("clearing cache: %w", err)
				}
				ok("Removed %d files (%s)", files, util.HumanBytes(float64(size)))
				return nil
			}
			if len(args) == 0 && group == "" {
				return fmt.Errorf("name fonts, pass --group, or use --all")
			}

			idx, err := loadIndex()
			if err != nil {
				return err
			}
			fonts, err := install.SelectFonts(idx, args, group)
			if err != nil {
				return err
			}
			removed := 0
			for _, f := range fonts {
				for _, d := range idx.DownloadsForFont(*f) {
					if !cacheMgr.Exists(*d) {
						continue
					}
					if err := cacheMgr.Remove(*d); err != nil {
						return err
					}
					removed++
				}
			}
			ok("Removed %d cached downloads", removed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Remove every cached download")
	cmd.Flags().StringVar(&group, "group", "", "Remove downloads for every font in this group")
	return cmd
}
