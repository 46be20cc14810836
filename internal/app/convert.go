package app

import (
	"fmt"

	"github.com/blackwell-systems/winefonts/internal/catalog"
	"github.com/spf13/cobra"
)

func newConvertCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert a catalog between JSON and YAML",
		Long: `Decode a catalog and write it back out. The output format follows the
extension of <out> (.yml/.yaml for YAML, anything else JSON) unless
--format is given. Use "-" as <out> to write to stdout.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]
			f, err := catalog.Load(in)
			if err != nil {
				return err
			}

			var fm catalog.Format
			switch {
			case format != "":
				if fm, err = catalog.ParseFormat(format); err != nil {
					return err
				}
			case out == "-":
				fm = catalog.FormatJSON
			default:
				fm = catalog.FormatFor(out)
			}

			data, err := catalog.Encode(f, fm)
			if err != nil {
				return fmt.Errorf("encoding catalog: %w", err)
			}
			if err := writeOutput(cmd, out, data); err != nil {
				return err
			}
			if out != "-" {
				ok("Wrote %s (%s)", out, fm)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Output format: json or yaml")
	return cmd
}
