package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/crossdoc/internal/generator"
)

var (
	quietFlag  bool
	watchFlag  bool
	outputFlag string
	formatFlag string
	layoutFlag string
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the documentation site",
	Long: `Generate parses the project's Rust and Python sources and writes the
Markdown documentation site.

The pipeline:
  - Discovers .rs and .py sources for the configured crates and package
  - Extracts items, doc comments and PyO3 metadata
  - Synthesizes Python pages for binding modules without authored stubs
  - Cross-links Python bindings with their Rust implementations
  - Writes pages plus navigation for mkdocs or mdBook

Examples:
  # Generate docs for the current directory
  crossdoc generate

  # Regenerate on every source change
  crossdoc generate --watch

  # Write an mdBook instead of mkdocs content
  crossdoc generate --format mdbook --output book
`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
	generateCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch for source changes and regenerate")
	generateCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output directory (overrides output.path)")
	generateCmd.Flags().StringVar(&formatFlag, "format", "", "Site generator: mkdocs or mdbook (overrides output.format)")
	generateCmd.Flags().StringVar(&layoutFlag, "layout", "", "Page layout: per-module or per-item (overrides output.layout)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted! Cancelling generation...")
		cancel()
	}()

	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := loadConfig(rootDir)
	if err != nil {
		return err
	}

	if outputFlag != "" {
		cfg.Output.Path = outputFlag
	}
	if formatFlag != "" {
		cfg.Output.Format = formatFlag
	}
	if layoutFlag != "" {
		cfg.Output.Layout = layoutFlag
	}

	progress := NewCLIProgressReporter(quietFlag)
	gen := generator.New(cfg, rootDir, progress)

	stats, err := gen.Generate(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("generation cancelled")
		}
		return fmt.Errorf("generation failed: %w", err)
	}

	if quietFlag {
		fmt.Printf("Generated %d pages in %.2fs\n", stats.PagesWritten, stats.ProcessingTimeSeconds)
	}

	if watchFlag {
		slog.Info("watching for source changes")
		if err := gen.Watch(ctx); err != nil && ctx.Err() == nil {
			return fmt.Errorf("watch mode failed: %w", err)
		}
	}

	return nil
}
