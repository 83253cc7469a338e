package cli

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/mvp-joe/crossdoc/internal/generator"
)

// CLIProgressReporter implements progress reporting with progress bars.
type CLIProgressReporter struct {
	quiet    bool
	parseBar *progressbar.ProgressBar
	writeBar *progressbar.ProgressBar
}

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{quiet: quiet}
}

func (c *CLIProgressReporter) OnParseStart(totalFiles int) {
	if c.quiet {
		return
	}

	c.parseBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Parsing sources"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (c *CLIProgressReporter) OnFileParsed(fileName string) {
	if c.quiet {
		return
	}
	if c.parseBar != nil {
		c.parseBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnWriteStart(totalPages int) {
	if c.quiet {
		return
	}

	c.writeBar = progressbar.NewOptions(totalPages,
		progressbar.OptionSetDescription("Writing pages"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (c *CLIProgressReporter) OnPageWritten(path string) {
	if c.quiet {
		return
	}
	if c.writeBar != nil {
		c.writeBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnComplete(stats *generator.Stats) {
	if c.quiet {
		return
	}

	fmt.Println()
	fmt.Printf("✓ Generated %d pages in %.1fs\n", stats.PagesWritten, stats.ProcessingTimeSeconds)
	fmt.Printf("  Rust modules:   %d\n", stats.RustModules)
	fmt.Printf("  Python modules: %d\n", stats.PythonModules)
	fmt.Printf("  Cross-links:    %d\n", stats.CrossRefs)
}
