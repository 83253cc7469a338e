package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mvp-joe/crossdoc/internal/model"
	"github.com/mvp-joe/crossdoc/internal/render/layout"
)

// NavEntry is one module in the generated navigation.
type NavEntry struct {
	Path     string // logical module path
	FilePath string // page path relative to the content root
	Depth    int    // nesting depth for hierarchical display
}

// PythonNavEntries builds sorted navigation entries for Python modules.
// File paths come from the layout resolver, so the navigation always
// agrees with where pages were actually written.
func PythonNavEntries(l layout.PageLayout, modules []*model.PythonModule) []NavEntry {
	entries := make([]NavEntry, 0, len(modules))
	for _, m := range modules {
		entries = append(entries, NavEntry{
			Path:     m.Path,
			FilePath: l.PythonModulePage(m.Path).Path,
			Depth:    strings.Count(m.Path, "."),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries
}

// RustNavEntries builds sorted navigation entries for Rust modules.
func RustNavEntries(l layout.PageLayout, modules []*model.RustModule) []NavEntry {
	entries := make([]NavEntry, 0, len(modules))
	for _, m := range modules {
		entries = append(entries, NavEntry{
			Path:     m.Path,
			FilePath: l.RustModulePage(m.Path).Path,
			Depth:    strings.Count(m.Path, "::"),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries
}

// SSGAdapter abstracts the differences between static site generators:
// where content goes, how navigation is expressed, and what extra files
// the generator wants.
type SSGAdapter interface {
	// Name is the adapter's identifier as used in configuration.
	Name() string

	// ContentDir is where content files are placed, relative to the
	// output root.
	ContentDir() string

	// NavFilename is the navigation file written into the content dir.
	NavFilename() string

	// GenerateNav renders the navigation for the given modules.
	GenerateNav(pythonModules []*model.PythonModule, rustModules []*model.RustModule) string

	// GenerateConfig renders the SSG's config file, or ok=false when
	// the config is user-managed and should not be generated.
	GenerateConfig(title string, authors []string) (string, bool)
}

// AdapterFor returns the adapter registered under name.
func AdapterFor(name string, l layout.PageLayout) (SSGAdapter, error) {
	switch name {
	case "mkdocs", "":
		return &MkDocsAdapter{layout: l}, nil
	case "mdbook":
		return &MdBookAdapter{layout: l}, nil
	}
	return nil, fmt.Errorf("unknown site generator %q", name)
}

// MkDocsAdapter targets MkDocs with the Material theme. It emits a YAML
// nav snippet for inclusion in a user-managed mkdocs.yml.
type MkDocsAdapter struct {
	layout layout.PageLayout
}

func (a *MkDocsAdapter) Name() string        { return "mkdocs" }
func (a *MkDocsAdapter) ContentDir() string  { return "docs" }
func (a *MkDocsAdapter) NavFilename() string { return "_nav.yml" }

func (a *MkDocsAdapter) GenerateNav(pythonModules []*model.PythonModule, rustModules []*model.RustModule) string {
	var b strings.Builder

	b.WriteString("# Recommended: add to markdown_extensions in mkdocs.yml\n")
	b.WriteString("# to hide method-level entries from the table of contents:\n")
	b.WriteString("#\n")
	b.WriteString("# markdown_extensions:\n")
	b.WriteString("#   - toc:\n")
	b.WriteString("#       toc_depth: 2\n\n")

	b.WriteString("nav:\n")

	if len(pythonModules) > 0 {
		b.WriteString("  - Python:\n")
		for _, entry := range PythonNavEntries(a.layout, pythonModules) {
			fmt.Fprintf(&b, "    - %s: %s\n", entry.Path, entry.FilePath)
		}
	}

	if len(rustModules) > 0 {
		b.WriteString("  - Rust:\n")
		for _, entry := range RustNavEntries(a.layout, rustModules) {
			fmt.Fprintf(&b, "    - %s: %s\n", entry.Path, entry.FilePath)
		}
	}

	return b.String()
}

// GenerateConfig returns nothing: mkdocs.yml typically pre-exists and
// is user-managed, only the nav snippet is generated.
func (a *MkDocsAdapter) GenerateConfig(string, []string) (string, bool) {
	return "", false
}

// MdBookAdapter targets mdBook, emitting SUMMARY.md and book.toml.
type MdBookAdapter struct {
	layout layout.PageLayout
}

func (a *MdBookAdapter) Name() string        { return "mdbook" }
func (a *MdBookAdapter) ContentDir() string  { return "src" }
func (a *MdBookAdapter) NavFilename() string { return "SUMMARY.md" }

func (a *MdBookAdapter) GenerateNav(pythonModules []*model.PythonModule, rustModules []*model.RustModule) string {
	var b strings.Builder

	b.WriteString("# Summary\n\n")

	if len(pythonModules) > 0 {
		b.WriteString("# Python\n\n")
		for _, entry := range PythonNavEntries(a.layout, pythonModules) {
			fmt.Fprintf(&b, "%s- [%s](%s)\n", strings.Repeat("  ", entry.Depth), entry.Path, entry.FilePath)
		}
	}

	if len(rustModules) > 0 {
		b.WriteString("\n# Rust\n\n")
		for _, entry := range RustNavEntries(a.layout, rustModules) {
			fmt.Fprintf(&b, "%s- [%s](%s)\n", strings.Repeat("  ", entry.Depth), entry.Path, entry.FilePath)
		}
	}

	return b.String()
}

func (a *MdBookAdapter) GenerateConfig(title string, authors []string) (string, bool) {
	quoted := make([]string, 0, len(authors))
	for _, author := range authors {
		quoted = append(quoted, fmt.Sprintf("%q", author))
	}

	var b strings.Builder
	b.WriteString("[book]\n")
	fmt.Fprintf(&b, "title = %q\n", title)
	fmt.Fprintf(&b, "authors = [%s]\n", strings.Join(quoted, ", "))
	b.WriteString("language = \"en\"\n")
	b.WriteString("src = \"src\"\n\n")
	b.WriteString("[build]\n")
	b.WriteString("build-dir = \"book\"\n\n")
	b.WriteString("[output.html]\n")
	b.WriteString("default-theme = \"rust\"\n")
	b.WriteString("preferred-dark-theme = \"coal\"\n\n")
	b.WriteString("[output.html.fold]\n")
	b.WriteString("enable = true\n")
	b.WriteString("level = 1\n")

	return b.String(), true
}
