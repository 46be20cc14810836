package app

import (
	"bytes"
	"fmt"
	"os"

	"github.com/blackwell-systems/winefonts/internal/catalog"
	"github.com/spf13/cobra"
)

func newFmtCmd() *cobra.Command {
	var (
		format string
		check  bool
	)

	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Rewrite a catalog in canonical form",
		Long: `Decode a catalog and re-encode it canonically in place: two-space
indentation, installation "type" first, empty lists as [].

--format prints the canonical form in the given format to stdout instead
of rewriting the file. --check only reports whether the file is already
canonical.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			raw, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			f, err := catalog.Decode(raw)
			if err != nil {
				return fmt.Errorf("parsing catalog %s: %w", path, err)
			}

			fm := catalog.FormatFor(path)
			if format != "" {
				if fm, err = catalog.ParseFormat(format); err != nil {
					return err
				}
			}
			data, err := catalog.Encode(f, fm)
			if err != nil {
				return fmt.Errorf("encoding catalog: %w", err)
			}

			switch {
			case check:
				if !bytes.Equal(raw, data) {
					return fmt.Errorf("%s is not canonically formatted", path)
				}
				ok("%s is canonical", path)
			case format != "":
				_, err = cmd.OutOrStdout().Write(data)
				return err
			case bytes.Equal(raw, data):
				ok("%s unchanged", path)
			default:
				if err := os.WriteFile(path, data, 0600); err != nil {
					return err
				}
				ok("Formatted %s", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Print in this format (json or yaml) instead of rewriting")
	cmd.Flags().BoolVar(&check, "check", false, "Fail if the file is not canonical")
	return cmd
}
