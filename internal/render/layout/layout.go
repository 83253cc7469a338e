// Package layout maps logical module and item paths to rendered page
// locations and computes relative links between pages. All paths are
// root-relative and forward-slash separated regardless of platform.
package layout

import "strings"

// Mode selects the physical page layout convention.
type Mode string

const (
	// PerModule renders every item of a module inline on one page,
	// addressed by heading anchors.
	PerModule Mode = "per-module"

	// PerItem renders each item on its own page inside the module
	// directory, with an index page per module.
	PerItem Mode = "per-item"
)

// ParseMode converts a config string into a Mode. Unrecognized values
// fall back to PerModule, the default layout.
func ParseMode(s string) Mode {
	if Mode(s) == PerItem {
		return PerItem
	}
	return PerModule
}

// Page is a resolved page location. Anchor is set only when the active
// layout places the item inline on a shared module page.
type Page struct {
	Path   string
	Anchor string
}

// PageLayout resolves logical module and item paths to page locations
// under the active layout convention. The Rust and Python output trees
// live under the "rust/" and "python/" top-level directories.
type PageLayout struct {
	mode Mode
}

// New creates a PageLayout for the given mode.
func New(mode Mode) PageLayout {
	return PageLayout{mode: mode}
}

// Mode reports the active layout convention.
func (l PageLayout) Mode() Mode {
	return l.mode
}

// RustModulePage resolves the page for a Rust module given its scoped
// path, e.g. "mycrate::sub".
func (l PageLayout) RustModulePage(modulePath string) Page {
	dir := "rust/" + strings.ReplaceAll(modulePath, "::", "/")
	if l.mode == PerItem {
		return Page{Path: dir + "/index.md"}
	}
	return Page{Path: dir + ".md"}
}

// RustItemPage resolves the page for an item inside a Rust module. In
// the per-module layout the item lives on the module page under a
// kind-qualified anchor; in the per-item layout it gets its own page.
func (l PageLayout) RustItemPage(modulePath, kind, name string) Page {
	dir := "rust/" + strings.ReplaceAll(modulePath, "::", "/")
	if l.mode == PerItem {
		return Page{Path: dir + "/" + name + ".md"}
	}
	return Page{Path: dir + ".md", Anchor: Anchor(kind, name)}
}

// PythonModulePage resolves the page for a Python module given its
// dotted path, e.g. "mypackage.sub".
func (l PageLayout) PythonModulePage(modulePath string) Page {
	dir := "python/" + strings.ReplaceAll(modulePath, ".", "/")
	if l.mode == PerItem {
		return Page{Path: dir + "/index.md"}
	}
	return Page{Path: dir + ".md"}
}

// PythonItemPage resolves the page for an item inside a Python module.
func (l PageLayout) PythonItemPage(modulePath, kind, name string) Page {
	dir := "python/" + strings.ReplaceAll(modulePath, ".", "/")
	if l.mode == PerItem {
		return Page{Path: dir + "/" + name + ".md"}
	}
	return Page{Path: dir + ".md", Anchor: Anchor(kind, name)}
}

// Anchor builds the heading anchor for an item: the kind and name
// lowercased and hyphen-joined, with spaces normalized to hyphens.
// A struct named Task anchors as "struct-task".
func Anchor(kind, name string) string {
	slug := strings.ToLower(kind) + "-" + strings.ToLower(name)
	return strings.ReplaceAll(slug, " ", "-")
}

// RelativeLink computes the relative URL from one page to another.
// Both arguments are root-relative page paths. The depth of the source
// page is the number of path separators in its path; the link climbs
// that many directories and descends into the target.
//
// Every place that emits a cross-page link goes through this function.
// Keeping the depth arithmetic in one spot means a layout change only
// has to be right once.
func RelativeLink(fromPage, toPage string) string {
	depth := strings.Count(fromPage, "/")
	if depth == 0 {
		return "./" + toPage
	}
	return strings.Repeat("../", depth) + toPage
}

// LinkTo is RelativeLink plus the target's anchor fragment, when the
// target page has one.
func LinkTo(fromPage string, to Page) string {
	link := RelativeLink(fromPage, to.Path)
	if to.Anchor != "" {
		link += "#" + to.Anchor
	}
	return link
}
