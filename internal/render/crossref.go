package render

import (
	"strings"

	"github.com/mvp-joe/crossdoc/internal/model"
	"github.com/mvp-joe/crossdoc/internal/render/layout"
)

// Link is a resolved cross-reference link ready for embedding: the text
// to display, the relative URL from the source page, and the recorded
// relationship kind.
type Link struct {
	Display      string
	URL          string
	Relationship model.CrossRefKind
}

// CrossRefLinker resolves cross-reference links between the Python and
// Rust page trees. All URL arithmetic goes through the layout package,
// so the linker stays correct across layout conventions.
type CrossRefLinker struct {
	layout    layout.PageLayout
	crossRefs []model.CrossRef
}

// NewCrossRefLinker creates a linker over the finalized cross-reference
// list for the given page layout.
func NewCrossRefLinker(l layout.PageLayout, crossRefs []model.CrossRef) *CrossRefLinker {
	return &CrossRefLinker{layout: l, crossRefs: crossRefs}
}

// HasRefs reports whether any cross-references are available.
func (c *CrossRefLinker) HasRefs() bool {
	return len(c.crossRefs) > 0
}

func (c *CrossRefLinker) findByRustSuffix(rustModule, name string) *model.CrossRef {
	full := rustModule + "::" + name
	for i := range c.crossRefs {
		ref := &c.crossRefs[i]
		if ref.RustPath == full || strings.HasSuffix(ref.RustPath, "::"+name) {
			return ref
		}
	}
	return nil
}

func (c *CrossRefLinker) findByPythonSuffix(pythonModule, name string) *model.CrossRef {
	full := pythonModule + "." + name
	for i := range c.crossRefs {
		ref := &c.crossRefs[i]
		if ref.PythonPath == full || strings.HasSuffix(ref.PythonPath, "."+name) {
			return ref
		}
	}
	return nil
}

// splitDotted splits a dotted path into module and final segment.
func splitDotted(path string) (string, string) {
	if pos := strings.LastIndex(path, "."); pos >= 0 {
		return path[:pos], path[pos+1:]
	}
	return path, path
}

// splitScoped splits a scoped path into module and final segment.
func splitScoped(path string) (string, string) {
	if pos := strings.LastIndex(path, "::"); pos >= 0 {
		return path[:pos], path[pos+2:]
	}
	return path, path
}

// PythonLinkForRustClass resolves the link from a Rust module page to
// the Python class bound to the given struct or enum.
func (c *CrossRefLinker) PythonLinkForRustClass(rustModule, name string) (Link, bool) {
	ref := c.findByRustSuffix(rustModule, name)
	if ref == nil {
		return Link{}, false
	}

	pyModule, pyClass := splitDotted(ref.PythonPath)
	from := c.layout.RustModulePage(rustModule)
	// The heading shows the Python binding name, so the anchor uses it
	// rather than the Rust type name.
	to := c.layout.PythonItemPage(pyModule, "class", pyClass)

	return Link{
		Display:      ref.PythonPath,
		URL:          layout.LinkTo(from.Path, to),
		Relationship: ref.Kind,
	}, true
}

// PythonLinkForRustFunction resolves the link from a Rust module page to
// the Python function bound to the given free function.
func (c *CrossRefLinker) PythonLinkForRustFunction(rustModule, name string) (Link, bool) {
	ref := c.findByRustSuffix(rustModule, name)
	if ref == nil {
		return Link{}, false
	}

	pyModule, pyFunc := splitDotted(ref.PythonPath)
	from := c.layout.RustModulePage(rustModule)
	to := c.layout.PythonItemPage(pyModule, "function", pyFunc)

	return Link{
		Display:      ref.PythonPath,
		URL:          layout.LinkTo(from.Path, to),
		Relationship: ref.Kind,
	}, true
}

// PythonLinkForRustMethod resolves the link from a Rust module page to a
// Python method. The parent type locates the cross-reference; the
// method anchor is added on top of the class page. An empty parent falls
// back to free-function linking.
func (c *CrossRefLinker) PythonLinkForRustMethod(rustModule, methodName, parentType string) (Link, bool) {
	if parentType == "" {
		return c.PythonLinkForRustFunction(rustModule, methodName)
	}

	ref := c.findByRustSuffix(rustModule, parentType)
	if ref == nil {
		return Link{}, false
	}

	pyModule, pyClass := splitDotted(ref.PythonPath)
	from := c.layout.RustModulePage(rustModule)
	to := c.layout.PythonItemPage(pyModule, "class", pyClass)
	to.Anchor = layout.Anchor("method", methodName)

	return Link{
		Display:      ref.PythonPath + "." + methodName,
		URL:          layout.LinkTo(from.Path, to),
		Relationship: ref.Kind,
	}, true
}

// RustLinkForPythonClass resolves the link from a Python module page to
// the Rust struct or enum implementing the given class.
func (c *CrossRefLinker) RustLinkForPythonClass(pythonModule, name string) (Link, bool) {
	ref := c.findByPythonSuffix(pythonModule, name)
	if ref == nil {
		return Link{}, false
	}

	rustModule, rustName := splitScoped(ref.RustPath)
	from := c.layout.PythonModulePage(pythonModule)
	to := c.layout.RustItemPage(rustModule, "struct", rustName)

	return Link{
		Display:      ref.RustPath,
		URL:          layout.LinkTo(from.Path, to),
		Relationship: ref.Kind,
	}, true
}

// RustLinkForPythonFunction resolves the link from a Python module page
// to the Rust function implementing the given function.
func (c *CrossRefLinker) RustLinkForPythonFunction(pythonModule, name string) (Link, bool) {
	ref := c.findByPythonSuffix(pythonModule, name)
	if ref == nil {
		return Link{}, false
	}

	rustModule, rustName := splitScoped(ref.RustPath)
	from := c.layout.PythonModulePage(pythonModule)
	to := c.layout.RustItemPage(rustModule, "fn", rustName)

	return Link{
		Display:      ref.RustPath,
		URL:          layout.LinkTo(from.Path, to),
		Relationship: ref.Kind,
	}, true
}

// RustLinkForPythonMethod resolves the link from a Python module page to
// the Rust implementation of a method. An empty parent class falls back
// to free-function linking.
func (c *CrossRefLinker) RustLinkForPythonMethod(pythonModule, methodName, parentClass string) (Link, bool) {
	if parentClass == "" {
		return c.RustLinkForPythonFunction(pythonModule, methodName)
	}

	ref := c.findByPythonSuffix(pythonModule, parentClass)
	if ref == nil {
		return Link{}, false
	}

	rustModule, rustName := splitScoped(ref.RustPath)
	from := c.layout.PythonModulePage(pythonModule)
	to := c.layout.RustItemPage(rustModule, "struct", rustName)
	to.Anchor = layout.Anchor("method", methodName)

	return Link{
		Display:      ref.RustPath + "::" + methodName,
		URL:          layout.LinkTo(from.Path, to),
		Relationship: ref.Kind,
	}, true
}

// PythonAPICallout formats a resolved Rust-to-Python link as a Markdown
// blockquote callout.
func PythonAPICallout(link Link) string {
	return "> **Python API**: [" + link.Display + "](" + link.URL + ")\n\n"
}

// RustImplCallout formats a resolved Python-to-Rust link as a Markdown
// blockquote callout.
func RustImplCallout(link Link) string {
	return "> **Rust Implementation**: [" + link.Display + "](" + link.URL + ")\n\n"
}
