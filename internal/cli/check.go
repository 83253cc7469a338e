package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/crossdoc/internal/config"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the project configuration",
	Long: `Check loads crossdoc.toml, applies manifest defaults from Cargo.toml
and pyproject.toml, and reports configuration errors and warnings
without generating anything.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := loadConfig(rootDir)
	if err != nil {
		return err
	}

	warnings := config.Warnings(cfg)
	for _, warning := range warnings {
		fmt.Printf("warning: %s\n", warning)
	}

	fmt.Printf("Configuration OK: %s -> %s (%s, %s layout)\n",
		cfg.Rust.EntryPoint, cfg.Python.Package, cfg.Output.Format, cfg.Output.Layout)
	return nil
}
