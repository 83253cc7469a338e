// Package generator runs the documentation pipeline: discover sources,
// parse them, synthesize and cross-reference the Python view, render
// Markdown pages and write the site skeleton.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mvp-joe/crossdoc/internal/config"
	"github.com/mvp-joe/crossdoc/internal/crossref"
	"github.com/mvp-joe/crossdoc/internal/discovery"
	"github.com/mvp-joe/crossdoc/internal/manifest"
	"github.com/mvp-joe/crossdoc/internal/model"
	"github.com/mvp-joe/crossdoc/internal/parsers"
	"github.com/mvp-joe/crossdoc/internal/render"
	"github.com/mvp-joe/crossdoc/internal/render/layout"
	"github.com/mvp-joe/crossdoc/internal/watcher"
)

// Stats summarizes one generation run.
type Stats struct {
	RustModules           int
	PythonModules         int
	CrossRefs             int
	PagesWritten          int
	ProcessingTimeSeconds float64
}

// ProgressReporter receives pipeline progress events.
type ProgressReporter interface {
	OnParseStart(totalFiles int)
	OnFileParsed(fileName string)
	OnWriteStart(totalPages int)
	OnPageWritten(path string)
	OnComplete(stats *Stats)
}

// NoopProgress discards all progress events.
type NoopProgress struct{}

func (NoopProgress) OnParseStart(int)     {}
func (NoopProgress) OnFileParsed(string)  {}
func (NoopProgress) OnWriteStart(int)     {}
func (NoopProgress) OnPageWritten(string) {}
func (NoopProgress) OnComplete(*Stats)    {}

// Generator drives the pipeline for one project.
type Generator struct {
	cfg      *config.Config
	rootDir  string
	progress ProgressReporter

	rustParser   *parsers.RustParser
	pythonParser *parsers.PythonParser
}

// New creates a generator for the project rooted at rootDir.
func New(cfg *config.Config, rootDir string, progress ProgressReporter) *Generator {
	if progress == nil {
		progress = NoopProgress{}
	}
	return &Generator{
		cfg:          cfg,
		rootDir:      rootDir,
		progress:     progress,
		rustParser:   parsers.NewRustParser(),
		pythonParser: parsers.NewPythonParser(),
	}
}

// Generate runs the full pipeline once.
func (g *Generator) Generate(ctx context.Context) (*Stats, error) {
	start := time.Now()

	d, err := discovery.New(g.cfg.Ignore)
	if err != nil {
		return nil, fmt.Errorf("compiling ignore patterns: %w", err)
	}

	rustFiles, err := g.discoverRust(d)
	if err != nil {
		return nil, err
	}

	pythonFiles, err := g.discoverPython(d)
	if err != nil {
		return nil, err
	}

	g.progress.OnParseStart(len(rustFiles) + len(pythonFiles))

	rustModules, err := g.parseRust(ctx, rustFiles)
	if err != nil {
		return nil, err
	}

	authored, err := g.parsePython(ctx, pythonFiles)
	if err != nil {
		return nil, err
	}

	pythonModules, crossRefs := g.buildPythonView(rustModules, authored)

	pages, navContent, bookConfig, adapter, err := g.renderSite(pythonModules, rustModules, crossRefs)
	if err != nil {
		return nil, err
	}

	written, err := g.writeSite(ctx, pages, navContent, bookConfig, adapter)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		RustModules:           len(rustModules),
		PythonModules:         len(pythonModules),
		CrossRefs:             len(crossRefs),
		PagesWritten:          written,
		ProcessingTimeSeconds: time.Since(start).Seconds(),
	}
	g.progress.OnComplete(stats)

	return stats, nil
}

func (g *Generator) discoverRust(d *discovery.Discovery) ([]discovery.SourceFile, error) {
	var files []discovery.SourceFile

	for _, crate := range g.cfg.Rust.Crates {
		crateDir := filepath.Join(g.rootDir, crate)

		crateFiles, err := d.RustSources(crateDir, g.crateName(crateDir))
		if err != nil {
			if os.IsNotExist(err) {
				slog.Warn("crate has no src directory", "crate", crate)
				continue
			}
			return nil, fmt.Errorf("discovering rust sources in %s: %w", crate, err)
		}
		files = append(files, crateFiles...)
	}

	return files, nil
}

func (g *Generator) discoverPython(d *discovery.Discovery) ([]discovery.SourceFile, error) {
	if g.cfg.Python.Package == "" {
		return nil, nil
	}

	sourceDir := filepath.Join(g.rootDir, g.cfg.Python.Source)
	files, err := d.PythonSources(sourceDir, g.cfg.Python.Package)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("python package directory not found",
				"package", g.cfg.Python.Package,
				"source", g.cfg.Python.Source)
			return nil, nil
		}
		return nil, fmt.Errorf("discovering python sources: %w", err)
	}

	return files, nil
}

// crateName resolves the module-path root for a crate directory from
// its Cargo.toml, falling back to the configured entry point.
func (g *Generator) crateName(crateDir string) string {
	cargo, err := manifest.ReadCargo(crateDir)
	if err == nil {
		return cargo.LibName()
	}

	if g.cfg.Rust.EntryPoint != "" {
		return g.cfg.Rust.EntryPoint
	}
	return strings.ReplaceAll(filepath.Base(crateDir), "-", "_")
}

func (g *Generator) parseRust(ctx context.Context, files []discovery.SourceFile) ([]*model.RustModule, error) {
	var modules []*model.RustModule

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		module, err := g.rustParser.ParseFile(file.Path, file.ModulePath)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", file.Path, err)
		}
		modules = append(modules, module)
		g.progress.OnFileParsed(file.Path)
	}

	return modules, nil
}

func (g *Generator) parsePython(ctx context.Context, files []discovery.SourceFile) ([]*model.PythonModule, error) {
	var modules []*model.PythonModule

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		module, err := g.pythonParser.ParseFile(file.Path, file.ModulePath)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", file.Path, err)
		}
		modules = append(modules, module)
		g.progress.OnFileParsed(file.Path)
	}

	return modules, nil
}

// buildPythonView links authored modules to their Rust implementations
// and fills gaps with modules synthesized from the PyO3 bindings.
func (g *Generator) buildPythonView(rustModules []*model.RustModule, authored []*model.PythonModule) ([]*model.PythonModule, []model.CrossRef) {
	pythonModules, buildRefs := crossref.NewBuilder(g.pyo3Modules()).Build(rustModules, authored)

	var synthesized []crossref.SynthesizedModule
	if g.cfg.Rust.EntryPoint != "" && g.cfg.Python.Package != "" {
		synthesized = crossref.SynthesizePythonModules(rustModules, g.cfg.Python.Package, g.cfg.Rust.EntryPoint)
	}

	pythonModules, synthRefs := crossref.MergeSynthesized(pythonModules, synthesized)

	sort.Slice(pythonModules, func(i, j int) bool {
		return pythonModules[i].Path < pythonModules[j].Path
	})

	return pythonModules, append(buildRefs, synthRefs...)
}

func (g *Generator) pyo3Modules() map[string]bool {
	pyo3 := make(map[string]bool)
	for module, source := range g.cfg.Python.Modules {
		if source == "pyo3" {
			pyo3[module] = true
		}
	}
	return pyo3
}

func (g *Generator) renderSite(pythonModules []*model.PythonModule, rustModules []*model.RustModule, crossRefs []model.CrossRef) ([]render.RenderedPage, string, string, render.SSGAdapter, error) {
	l := layout.New(layout.ParseMode(g.cfg.Output.Layout))

	adapter, err := render.AdapterFor(g.cfg.Output.Format, l)
	if err != nil {
		return nil, "", "", nil, err
	}

	renderer := render.NewModuleRenderer(l, render.NewCrossRefLinker(l, crossRefs))

	var pages []render.RenderedPage
	for _, module := range pythonModules {
		pages = append(pages, renderer.RenderPythonModule(module)...)
	}
	for _, module := range rustModules {
		pages = append(pages, renderer.RenderRustModule(module)...)
	}

	navContent := adapter.GenerateNav(pythonModules, rustModules)

	bookConfig := ""
	if content, ok := adapter.GenerateConfig(g.siteTitle(), g.cfg.Project.Authors); ok {
		bookConfig = content
	}

	return pages, navContent, bookConfig, adapter, nil
}

func (g *Generator) siteTitle() string {
	if g.cfg.Project.Name != "" {
		return g.cfg.Project.Name
	}
	return g.cfg.Python.Package
}

func (g *Generator) writeSite(ctx context.Context, pages []render.RenderedPage, navContent, bookConfig string, adapter render.SSGAdapter) (int, error) {
	outputDir := filepath.Join(g.rootDir, g.cfg.Output.Path)
	contentDir := filepath.Join(outputDir, adapter.ContentDir())

	g.progress.OnWriteStart(len(pages) + 1)

	written := 0
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		path := filepath.Join(contentDir, filepath.FromSlash(page.Path))
		if err := writeFile(path, page.Content); err != nil {
			return written, err
		}
		written++
		g.progress.OnPageWritten(page.Path)
	}

	navPath := filepath.Join(contentDir, adapter.NavFilename())
	if err := writeFile(navPath, navContent); err != nil {
		return written, err
	}
	written++
	g.progress.OnPageWritten(adapter.NavFilename())

	if bookConfig != "" {
		if err := writeFile(filepath.Join(outputDir, "book.toml"), bookConfig); err != nil {
			return written, err
		}
	}

	return written, nil
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Watch regenerates the site whenever a Rust or Python source changes.
// Blocks until the context is cancelled.
func (g *Generator) Watch(ctx context.Context) error {
	var dirs []string
	for _, crate := range g.cfg.Rust.Crates {
		srcDir := filepath.Join(g.rootDir, crate, "src")
		if _, err := os.Stat(srcDir); err == nil {
			dirs = append(dirs, srcDir)
		}
	}
	if g.cfg.Python.Package != "" {
		packageDir := filepath.Join(g.rootDir, g.cfg.Python.Source, g.cfg.Python.Package)
		if _, err := os.Stat(packageDir); err == nil {
			dirs = append(dirs, packageDir)
		}
	}
	if len(dirs) == 0 {
		return fmt.Errorf("no source directories to watch")
	}

	fw, err := watcher.NewFileWatcher(dirs, []string{".rs", ".py"})
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}

	err = fw.Start(ctx, func(files []string) {
		slog.Info("sources changed, regenerating", "files", len(files))
		if _, err := g.Generate(ctx); err != nil && ctx.Err() == nil {
			slog.Error("regeneration failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}

	<-ctx.Done()
	return fw.Stop()
}
