package app

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/winefonts/internal/catalog"
	"github.com/blackwell-systems/winefonts/internal/util"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <font>",
		Short: "Show a font's details and downloads",
		Long:  "Show a font by ID, name, or short name, with its installations resolved against the catalog.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := loadIndex()
			if err != nil {
				return err
			}
			f, found := idx.FindFont(args[0])
			if !found {
				return fmt.Errorf("font %q not found", args[0])
			}
			printFont(cmd, idx, f)
			return nil
		},
		ValidArgsFunction: completeFonts,
	}
}

func printFont(cmd *cobra.Command, idx *catalog.Index, f *catalog.Font) {
	w := cmd.OutOrStdout()
	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(w, "  %-12s %s\n", label+":", value)
		}
	}

	fmt.Fprintln(w, color.CyanString(f.Name))
	field("ID", f.ID.String())
	field("Short name", f.ShortName)
	field("Publisher", f.Publisher)
	field("Categories", categoryList(f.Categories))

	for i, inst := range f.Installations {
		fmt.Fprintf(w, "\n  Installation %d (%s)\n", i+1, inst.Type())
		c, isCab := inst.(catalog.Cabextract)
		if !isCab {
			continue
		}
		d, resolved := idx.DownloadFor(c)
		if !resolved {
			fmt.Fprintf(w, "    %s download %s is not in the catalog\n", color.RedString("✗"), c.Download)
		} else {
			state := "not cached"
			if cacheMgr.Exists(*d) {
				state = color.GreenString("cached")
			}
			fmt.Fprintf(w, "    %s  %s  %s\n", d.URL, util.HumanBytes(d.FileSize), state)
			if d.Hash != "" {
				fmt.Fprintf(w, "    hash %s\n", d.Hash)
			}
		}
		names := make([]string, len(c.Files))
		for j, cf := range c.Files {
			names[j] = fmt.Sprintf("%s → %q", cf.File, cf.RegistryName)
		}
		if len(names) > 0 {
			fmt.Fprintf(w, "    files:\n      %s\n", strings.Join(names, "\n      "))
		}
	}
}
