// Package cli implements the crossdoc command line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/crossdoc/internal/config"
	"github.com/mvp-joe/crossdoc/internal/manifest"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "crossdoc",
	Short: "Cross-linked API documentation for Rust/Python hybrid projects",
	Long: `crossdoc generates Markdown API documentation for projects that expose
a Rust core to Python through PyO3. It documents both sides, synthesizes
Python pages for binding modules that have no authored stubs, and links
every binding to the Rust item implementing it.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./crossdoc.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// initLogging maps the verbose flag onto the slog level.
func initLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

// loadConfig loads the project configuration, honoring the --config
// flag, and fills in manifest-derived defaults.
func loadConfig(rootDir string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.NewFileLoader(cfgFile).Load()
	} else {
		cfg, err = config.LoadFromDir(rootDir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := manifest.ApplyDefaults(cfg, rootDir); err != nil {
		return nil, fmt.Errorf("failed to read project manifests: %w", err)
	}

	for _, warning := range config.Warnings(cfg) {
		slog.Warn(warning)
	}

	return cfg, nil
}
