package app

import (
	"errors"
	"fmt"

	"github.com/blackwell-systems/winefonts/internal/catalog"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate [file...]",
		Short: "Check that catalogs decode cleanly",
		Long: `Decode each catalog and report the first problem with its field path
and position. With no arguments the active catalog is checked.

--strict additionally checks that every group member and installation
download refers to an entry that exists, and that IDs are unique.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{catalogPath()}
			}

			failed := 0
			for _, path := range args {
				if !validateFile(path, strict) {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d catalogs invalid", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Also check references between entries")
	return cmd
}

func validateFile(path string, strict bool) bool {
	f, err := catalog.Load(path)
	if err != nil {
		bad("%v", err)
		return false
	}

	if strict {
		if err := catalog.CheckReferences(f); err != nil {
			bad("%s: broken references", path)
			for _, e := range unjoin(err) {
				fmt.Printf("    %s\n", e)
			}
			return false
		}
	}

	ok("%s: version %s, %d downloads, %d fonts, %d groups",
		path, color.CyanString(f.Version.String()), len(f.Downloads), len(f.Fonts), len(f.Groups))
	return true
}

// unjoin splits an errors.Join result back into its parts.
func unjoin(err error) []error {
	var j interface{ Unwrap() []error }
	if errors.As(err, &j) {
		return j.Unwrap()
	}
	return []error{err}
}
