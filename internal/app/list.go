package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blackwell-systems/winefonts/internal/catalog"
	"github.com/blackwell-systems/winefonts/internal/util"
	"github.com/spf13/cobra"
)

// filterFlags are shared by list and browse.
type filterFlags struct {
	category  string
	publisher string
	search    string
}

func (ff *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ff.category, "category", "", "Only fonts in this category")
	cmd.Flags().StringVar(&ff.publisher, "publisher", "", "Only fonts from this publisher")
	cmd.Flags().StringVar(&ff.search, "search", "", "Match name, short name, or publisher")
}

func (ff *filterFlags) filter() (catalog.Filter, error) {
	f := catalog.Filter{Publisher: ff.publisher, Search: ff.search}
	if ff.category != "" {
		c, ok := catalog.ParseCategory(strings.ToLower(ff.category))
		if !ok {
			return f, fmt.Errorf("unknown category %q (want one of: %s)", ff.category, categoryList(catalog.Categories))
		}
		f.Category = c
	}
	return f, nil
}

func newListCmd() *cobra.Command {
	var ff filterFlags

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List fonts in the catalog",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := loadIndex()
			if err != nil {
				return err
			}
			f, err := ff.filter()
			if err != nil {
				return err
			}
			return printFontTable(cmd, idx, f.Apply(idx.File().Fonts))
		},
	}

	ff.register(cmd)
	return cmd
}

func printFontTable(cmd *cobra.Command, idx *catalog.Index, fonts []catalog.Font) error {
	if len(fonts) == 0 {
		warn("No fonts match.")
		return nil
	}

	rows := make([][]string, 0, len(fonts))
	for _, f := range fonts {
		var size float64
		ds := idx.DownloadsForFont(f)
		for _, d := range ds {
			size += d.FileSize
		}
		cached := ""
		if fontCached(idx, f) {
			cached = "✓"
		}
		rows = append(rows, []string{
			f.Name, f.ShortName, f.Publisher, categoryList(f.Categories),
			strconv.Itoa(len(ds)), util.HumanBytes(size), cached,
		})
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Name", "Short", "Publisher", "Categories", "Downloads", "Size", "Cached"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	))
	fmt.Fprintf(cmd.OutOrStdout(), "%d fonts\n", len(fonts))
	return nil
}
