package app

import (
	"fmt"
	"strconv"

	"github.com/blackwell-systems/winefonts/internal/catalog"
	"github.com/blackwell-systems/winefonts/internal/install"
	"github.com/blackwell-systems/winefonts/internal/util"
	"github.com/spf13/cobra"
)

func newGroupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "groups [name]",
		Short: "List font groups, or the fonts in one group",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := loadIndex()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				g, found := idx.GroupByName(args[0])
				if !found {
					return fmt.Errorf("%w: %q", install.ErrUnknownGroup, args[0])
				}
				fonts, missing := idx.FontsInGroup(*g)
				for _, id := range missing {
					warn("group %q lists unknown font %s", g.Name, id)
				}
				list := make([]catalog.Font, len(fonts))
				for i, f := range fonts {
					list[i] = *f
				}
				header("%s", g.Name)
				return printFontTable(cmd, idx, list)
			}

			groups := idx.File().Groups
			if len(groups) == 0 {
				warn("The catalog has no groups.")
				return nil
			}
			rows := make([][]string, 0, len(groups))
			for _, g := range groups {
				fonts, missing := idx.FontsInGroup(g)
				var size float64
				seen := make(map[string]bool)
				for _, f := range fonts {
					for _, d := range idx.DownloadsForFont(*f) {
						if !seen[d.ID.String()] {
							seen[d.ID.String()] = true
							size += d.FileSize
						}
					}
				}
				broken := ""
				if len(missing) > 0 {
					broken = strconv.Itoa(len(missing))
				}
				rows = append(rows, []string{g.Name, strconv.Itoa(len(fonts)), util.HumanBytes(size), broken})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Group", "Fonts", "Size", "Missing"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}
}
