package app

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/blackwell-systems/winefonts/internal/config"
	"github.com/fatih/color"
)

// showSetupHelp explains where winefonts keeps things.
func showSetupHelp(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, color.YellowString("How winefonts works:"))
	fmt.Fprintln(w, "  • The catalog (JSON or YAML) lists font archives and the files inside them")
	fmt.Fprintln(w, "  • 'winefonts fetch' downloads the catalog from catalog.url into the cache")
	fmt.Fprintln(w, "  • 'winefonts install' downloads archives, extracts fonts with cabextract,")
	fmt.Fprintln(w, "    and writes a .reg file for 'wine regedit'")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Cache:      %s\n", cfg.Defaults.CacheDir)
	fmt.Fprintf(w, "  Fonts dir:  %s\n", cfg.Defaults.FontsDir)
	fmt.Fprintln(w)
}

// runInitWizard prompts for the settings init would otherwise take from
// flags. Empty answers keep the current value; "?" shows help.
func runInitWizard(in io.Reader, w io.Writer) error {
	fmt.Fprintln(w, color.CyanString("Let's set up winefonts."))
	fmt.Fprintln(w, color.GreenString("Tip:")+" type '?' at any prompt for help")
	fmt.Fprintln(w)

	r := bufio.NewReader(in)
	ask := func(prompt, current string) (string, error) {
		for {
			if current != "" {
				fmt.Fprintf(w, "%s [%s]: ", prompt, current)
			} else {
				fmt.Fprintf(w, "%s: ", prompt)
			}
			line, err := r.ReadString('\n')
			if err != nil && err != io.EOF {
				return "", err
			}
			answer := strings.TrimSpace(line)
			if answer == "?" || answer == "help" {
				showSetupHelp(w)
				if err == io.EOF {
					return current, nil
				}
				continue
			}
			if answer == "" {
				return current, nil
			}
			return answer, nil
		}
	}

	url, err := ask("Catalog URL", cfg.Catalog.URL)
	if err != nil {
		return err
	}
	cfg.Catalog.URL = url

	dir, err := ask("Fonts directory", cfg.Defaults.FontsDir)
	if err != nil {
		return err
	}
	cfg.Defaults.FontsDir = config.ExpandHome(dir)
	return nil
}
