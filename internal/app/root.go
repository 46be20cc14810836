package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/blackwell-systems/winefonts/internal/cache"
	"github.com/blackwell-systems/winefonts/internal/config"
	"github.com/blackwell-systems/winefonts/internal/logging"
	"github.com/blackwell-systems/winefonts/internal/remote"
	"github.com/blackwell-systems/winefonts/internal/util"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	cfg      *config.Config
	cacheMgr *cache.Manager
	client   *remote.Client
	logger   *slog.Logger

	flagNoColor       bool
	flagNoInteractive bool
	flagConfig        string
	flagCatalog       string
	flagLogLevel      string
	flagLogFormat     string
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "winefonts",
		Short: "Read, validate, and install fonts from a Winefonts catalog",
		Long: `winefonts works with Winefonts catalogs: versioned JSON or YAML documents
listing downloadable font packages and how to install them.

Validate and convert catalogs, browse the fonts they describe, and
download and extract fonts into a Wine-ready fonts directory.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	pf := cmd.PersistentFlags()
	pf.BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	pf.BoolVar(&flagNoInteractive, "no-interactive", false, "Disable interactive TUI mode")
	pf.StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/winefonts/config.yml)")
	pf.StringVar(&flagCatalog, "catalog", "", "Catalog file to read (default: catalog.path or the fetched catalog)")
	pf.StringVar(&flagLogLevel, "log-level", "", "Diagnostic log level: debug, info, warn, error")
	pf.StringVar(&flagLogFormat, "log-format", "", "Diagnostic log format: text or json")

	cmd.AddCommand(
		newInitCmd(),
		newValidateCmd(),
		newConvertCmd(),
		newFmtCmd(),
		newFetchCmd(),
		newListCmd(),
		newShowCmd(),
		newGroupsCmd(),
		newGetCmd(),
		newInstallCmd(),
		newBrowseCmd(),
		newCacheCmd(),
		newCompletionCmd(),
		newVersionCmd(),
	)
	return cmd
}

// setup loads config and builds the shared clients before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	util.InitColor(flagNoColor)

	path := flagConfig
	if path == "" {
		path = config.Path()
	}
	var err error
	cfg, err = config.LoadFrom(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level, format := cfg.Log.Level, cfg.Log.Format
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	if flagLogFormat != "" {
		format = flagLogFormat
	}
	logger, err = logging.New(logging.Options{Level: level, Format: format, Output: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}

	cacheMgr = cache.New(cfg.Defaults.CacheDir)
	client = remote.New(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, logger)
	logger.Debug("config loaded", "path", path, "cache", cfg.Defaults.CacheDir)
	return nil
}

// Execute is the entry point called from main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// bad prints a red failure line without exiting.
func bad(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.RedString("✗"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}
