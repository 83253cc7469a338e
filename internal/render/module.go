package render

import (
	"fmt"
	"strings"

	"github.com/mvp-joe/crossdoc/internal/model"
	"github.com/mvp-joe/crossdoc/internal/render/layout"
)

// RenderedPage is one output file, path relative to the content root.
type RenderedPage struct {
	Path    string
	Content string
}

// ModuleRenderer renders module trees into Markdown pages. In the
// per-module layout each module becomes one page with every item
// inline; in the per-item layout each module gets an index page plus a
// page per item. Heading text is chosen so that the generated heading
// anchors match layout.Anchor for the item's kind and name.
type ModuleRenderer struct {
	layout layout.PageLayout
	linker *CrossRefLinker
}

// NewModuleRenderer creates a renderer for the given layout. linker may
// be a linker with no refs, in which case no callouts are emitted.
func NewModuleRenderer(l layout.PageLayout, linker *CrossRefLinker) *ModuleRenderer {
	return &ModuleRenderer{layout: l, linker: linker}
}

func renderDoc(doc *model.ParsedDocstring) string {
	if doc == nil {
		return ""
	}
	return RenderDocstring(*doc)
}

func sourceBadge(source model.SourceKind) string {
	if source == model.SourceBinding {
		return " `pyo3`"
	}
	return ""
}

// RenderPythonModule renders one Python module into one or more pages.
func (r *ModuleRenderer) RenderPythonModule(m *model.PythonModule) []RenderedPage {
	if r.layout.Mode() == layout.PerItem {
		return r.renderPythonPerItem(m)
	}
	page := r.layout.PythonModulePage(m.Path)
	return []RenderedPage{{Path: page.Path, Content: r.renderPythonInline(m)}}
}

func (r *ModuleRenderer) renderPythonInline(m *model.PythonModule) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s%s\n\n", m.Path, sourceBadge(m.Source))

	if doc := renderDoc(m.ParsedDoc); doc != "" {
		b.WriteString(doc)
		b.WriteString("\n\n")
	}

	variables := itemsOfKind(m.Items, "variable")
	classes := itemsOfKind(m.Items, "class")
	functions := itemsOfKind(m.Items, "function")

	if len(variables) > 0 {
		b.WriteString("## Variables\n\n")
		for _, item := range variables {
			b.WriteString(renderPythonVariable(item.(*model.PythonVariable)))
		}
		b.WriteString("\n")
	}

	if len(classes) > 0 {
		b.WriteString("## Classes\n\n")
		for _, item := range classes {
			r.writePythonClass(&b, item.(*model.PythonClass), m.Path, 3)
		}
	}

	if len(functions) > 0 {
		b.WriteString("## Functions\n\n")
		for _, item := range functions {
			r.writePythonFunction(&b, item.(*model.PythonFunction), m.Path, "", 3)
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func (r *ModuleRenderer) renderPythonPerItem(m *model.PythonModule) []RenderedPage {
	index := r.layout.PythonModulePage(m.Path)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s%s\n\n", m.Path, sourceBadge(m.Source))
	if doc := renderDoc(m.ParsedDoc); doc != "" {
		b.WriteString(doc)
		b.WriteString("\n\n")
	}

	pages := []RenderedPage{}
	var classLinks, funcLinks []string

	for _, item := range m.Items {
		switch it := item.(type) {
		case *model.PythonClass:
			page := r.layout.PythonItemPage(m.Path, "class", it.Name)
			var cb strings.Builder
			r.writePythonClass(&cb, it, m.Path, 1)
			pages = append(pages, RenderedPage{Path: page.Path, Content: cb.String()})
			classLinks = append(classLinks, fmt.Sprintf("- [`%s`](%s)", it.Name, layout.LinkTo(index.Path, page)))
		case *model.PythonFunction:
			page := r.layout.PythonItemPage(m.Path, "function", it.Name)
			var fb strings.Builder
			r.writePythonFunction(&fb, it, m.Path, "", 1)
			pages = append(pages, RenderedPage{Path: page.Path, Content: fb.String()})
			funcLinks = append(funcLinks, fmt.Sprintf("- [`%s`](%s)", it.Name, layout.LinkTo(index.Path, page)))
		case *model.PythonVariable:
			b.WriteString(renderPythonVariable(it))
		}
	}

	if len(classLinks) > 0 {
		b.WriteString("## Classes\n\n")
		b.WriteString(strings.Join(classLinks, "\n"))
		b.WriteString("\n\n")
	}
	if len(funcLinks) > 0 {
		b.WriteString("## Functions\n\n")
		b.WriteString(strings.Join(funcLinks, "\n"))
		b.WriteString("\n\n")
	}

	indexPage := RenderedPage{Path: index.Path, Content: strings.TrimRight(b.String(), "\n") + "\n"}
	return append([]RenderedPage{indexPage}, pages...)
}

func renderPythonVariable(v *model.PythonVariable) string {
	line := "- `" + v.Name + "`"
	if v.TypeHint != "" {
		line += ": `" + v.TypeHint + "`"
	}
	if v.Value != "" {
		line += " = `" + v.Value + "`"
	}
	return line + "\n"
}

// writePythonClass renders a class heading, its Rust callout, bases,
// docstring and methods. level is the heading depth for the class
// itself; methods nest one deeper.
func (r *ModuleRenderer) writePythonClass(b *strings.Builder, class *model.PythonClass, modulePath string, level int) {
	fmt.Fprintf(b, "%s `class %s`\n\n", strings.Repeat("#", level), class.Name)

	if link, ok := r.linker.RustLinkForPythonClass(modulePath, class.Name); ok {
		b.WriteString(RustImplCallout(link))
	}

	if len(class.Bases) > 0 {
		fmt.Fprintf(b, "Bases: `%s`\n\n", strings.Join(class.Bases, "`, `"))
	}

	if doc := renderDoc(class.ParsedDoc); doc != "" {
		b.WriteString(doc)
		b.WriteString("\n\n")
	}

	for _, method := range class.Methods {
		r.writePythonFunction(b, method, modulePath, class.Name, level+1)
	}
}

// writePythonFunction renders a function or method heading, callout,
// fenced signature and docstring. parentClass is empty for free
// functions.
func (r *ModuleRenderer) writePythonFunction(b *strings.Builder, fn *model.PythonFunction, modulePath, parentClass string, level int) {
	kind := "function"
	if parentClass != "" {
		kind = "method"
	}
	fmt.Fprintf(b, "%s `%s %s`\n\n", strings.Repeat("#", level), kind, fn.Name)

	if link, ok := r.linker.RustLinkForPythonMethod(modulePath, fn.Name, parentClass); ok {
		b.WriteString(RustImplCallout(link))
	}

	if fn.Signature != "" {
		fmt.Fprintf(b, "```python\n%s\n```\n\n", fn.Signature)
	}

	if doc := renderDoc(docWithSignatureTypes(fn)); doc != "" {
		b.WriteString(doc)
		b.WriteString("\n\n")
	}
}

// docWithSignatureTypes fills parameter types missing from the docstring
// with the type hints of the matching signature parameters. Returns a
// copy; the parsed docstring itself is never modified.
func docWithSignatureTypes(fn *model.PythonFunction) *model.ParsedDocstring {
	if fn.ParsedDoc == nil || len(fn.Params) == 0 || len(fn.ParsedDoc.Params) == 0 {
		return fn.ParsedDoc
	}

	hints := make(map[string]string, len(fn.Params))
	for _, p := range fn.Params {
		if p.TypeHint != "" {
			hints[p.Name] = p.TypeHint
		}
	}

	doc := *fn.ParsedDoc
	doc.Params = append([]model.ParamDoc(nil), fn.ParsedDoc.Params...)
	for i := range doc.Params {
		if doc.Params[i].Type == "" {
			doc.Params[i].Type = hints[doc.Params[i].Name]
		}
	}
	return &doc
}

// RenderRustModule renders one Rust module into one or more pages.
// Methods from #[pymethods] impl blocks render under their target type.
func (r *ModuleRenderer) RenderRustModule(m *model.RustModule) []RenderedPage {
	methods := methodsByTarget(m)

	if r.layout.Mode() == layout.PerItem {
		return r.renderRustPerItem(m, methods)
	}
	page := r.layout.RustModulePage(m.Path)
	return []RenderedPage{{Path: page.Path, Content: r.renderRustInline(m, methods)}}
}

func methodsByTarget(m *model.RustModule) map[string][]*model.RustFunction {
	methods := make(map[string][]*model.RustFunction)
	for _, item := range m.Items {
		if impl, ok := item.(*model.RustImpl); ok && impl.IsPyMethods {
			methods[impl.Target] = append(methods[impl.Target], impl.Methods...)
		}
	}
	return methods
}

func (r *ModuleRenderer) renderRustInline(m *model.RustModule, methods map[string][]*model.RustFunction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", m.Path)

	if doc := renderDoc(m.ParsedDoc); doc != "" {
		b.WriteString(doc)
		b.WriteString("\n\n")
	}

	structs := itemsOfKind(m.Items, "struct")
	enums := itemsOfKind(m.Items, "enum")
	functions := itemsOfKind(m.Items, "function")
	traits := itemsOfKind(m.Items, "trait")
	consts := itemsOfKind(m.Items, "const")
	aliases := itemsOfKind(m.Items, "typealias")

	if len(structs) > 0 {
		b.WriteString("## Structs\n\n")
		for _, item := range structs {
			r.writeRustStruct(&b, item.(*model.RustStruct), m.Path, methods, 3)
		}
	}

	if len(enums) > 0 {
		b.WriteString("## Enums\n\n")
		for _, item := range enums {
			r.writeRustEnum(&b, item.(*model.RustEnum), m.Path, methods, 3)
		}
	}

	if len(functions) > 0 {
		b.WriteString("## Functions\n\n")
		for _, item := range functions {
			r.writeRustFunction(&b, item.(*model.RustFunction), m.Path, "", 3)
		}
	}

	if len(traits) > 0 {
		b.WriteString("## Traits\n\n")
		for _, item := range traits {
			r.writeRustTrait(&b, item.(*model.RustTrait), 3)
		}
	}

	if len(consts) > 0 {
		b.WriteString("## Constants\n\n")
		for _, item := range consts {
			c := item.(*model.RustConst)
			fmt.Fprintf(&b, "- `%s: %s`\n", c.Name, c.Type)
		}
		b.WriteString("\n")
	}

	if len(aliases) > 0 {
		b.WriteString("## Type Aliases\n\n")
		for _, item := range aliases {
			a := item.(*model.RustTypeAlias)
			fmt.Fprintf(&b, "- `type %s = %s`\n", a.Name, a.Target)
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func (r *ModuleRenderer) renderRustPerItem(m *model.RustModule, methods map[string][]*model.RustFunction) []RenderedPage {
	index := r.layout.RustModulePage(m.Path)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", m.Path)
	if doc := renderDoc(m.ParsedDoc); doc != "" {
		b.WriteString(doc)
		b.WriteString("\n\n")
	}

	pages := []RenderedPage{}
	var links []string

	addPage := func(kind, name, content string) {
		page := r.layout.RustItemPage(m.Path, kind, name)
		pages = append(pages, RenderedPage{Path: page.Path, Content: content})
		links = append(links, fmt.Sprintf("- [`%s %s`](%s)", kind, name, layout.LinkTo(index.Path, page)))
	}

	for _, item := range m.Items {
		switch it := item.(type) {
		case *model.RustStruct:
			var sb strings.Builder
			r.writeRustStruct(&sb, it, m.Path, methods, 1)
			addPage("struct", it.Name, sb.String())
		case *model.RustEnum:
			var eb strings.Builder
			r.writeRustEnum(&eb, it, m.Path, methods, 1)
			addPage("enum", it.Name, eb.String())
		case *model.RustFunction:
			var fb strings.Builder
			r.writeRustFunction(&fb, it, m.Path, "", 1)
			addPage("fn", it.Name, fb.String())
		case *model.RustTrait:
			var tb strings.Builder
			r.writeRustTrait(&tb, it, 1)
			addPage("trait", it.Name, tb.String())
		}
	}

	if len(links) > 0 {
		b.WriteString("## Items\n\n")
		b.WriteString(strings.Join(links, "\n"))
		b.WriteString("\n\n")
	}

	indexPage := RenderedPage{Path: index.Path, Content: strings.TrimRight(b.String(), "\n") + "\n"}
	return append([]RenderedPage{indexPage}, pages...)
}

func (r *ModuleRenderer) writeRustStruct(b *strings.Builder, s *model.RustStruct, modulePath string, methods map[string][]*model.RustFunction, level int) {
	fmt.Fprintf(b, "%s `struct %s`\n\n", strings.Repeat("#", level), s.Name)

	if s.PyClass != nil {
		if link, ok := r.linker.PythonLinkForRustClass(modulePath, s.Name); ok {
			b.WriteString(PythonAPICallout(link))
		}
	}

	if doc := renderDoc(s.ParsedDoc); doc != "" {
		b.WriteString(doc)
		b.WriteString("\n\n")
	}

	if len(s.Fields) > 0 {
		fmt.Fprintf(b, "%s Fields\n\n", strings.Repeat("#", level+1))
		for _, f := range s.Fields {
			fmt.Fprintf(b, "- `%s: %s`\n", f.Name, f.Type)
		}
		b.WriteString("\n")
	}

	r.writeRustMethods(b, methods[s.Name], modulePath, s.Name, level)
}

func (r *ModuleRenderer) writeRustEnum(b *strings.Builder, e *model.RustEnum, modulePath string, methods map[string][]*model.RustFunction, level int) {
	fmt.Fprintf(b, "%s `enum %s`\n\n", strings.Repeat("#", level), e.Name)

	if e.PyClass != nil {
		if link, ok := r.linker.PythonLinkForRustClass(modulePath, e.Name); ok {
			b.WriteString(PythonAPICallout(link))
		}
	}

	if doc := renderDoc(e.ParsedDoc); doc != "" {
		b.WriteString(doc)
		b.WriteString("\n\n")
	}

	if len(e.Variants) > 0 {
		fmt.Fprintf(b, "%s Variants\n\n", strings.Repeat("#", level+1))
		for _, v := range e.Variants {
			fmt.Fprintf(b, "- `%s`\n", v)
		}
		b.WriteString("\n")
	}

	r.writeRustMethods(b, methods[e.Name], modulePath, e.Name, level)
}

func (r *ModuleRenderer) writeRustMethods(b *strings.Builder, methods []*model.RustFunction, modulePath, target string, level int) {
	if len(methods) == 0 {
		return
	}
	fmt.Fprintf(b, "%s Methods\n\n", strings.Repeat("#", level+1))
	for _, method := range methods {
		r.writeRustFunction(b, method, modulePath, target, level+2)
	}
}

// writeRustFunction renders a function or method. parentType is empty
// for free functions; methods use the "method" heading kind so anchors
// line up with method links.
func (r *ModuleRenderer) writeRustFunction(b *strings.Builder, fn *model.RustFunction, modulePath, parentType string, level int) {
	kind := "fn"
	if parentType != "" {
		kind = "method"
	}
	fmt.Fprintf(b, "%s `%s %s`\n\n", strings.Repeat("#", level), kind, fn.Name)

	if parentType != "" {
		if link, ok := r.linker.PythonLinkForRustMethod(modulePath, fn.Name, parentType); ok {
			b.WriteString(PythonAPICallout(link))
		}
	} else if fn.PyFunction != nil {
		if link, ok := r.linker.PythonLinkForRustFunction(modulePath, fn.Name); ok {
			b.WriteString(PythonAPICallout(link))
		}
	}

	fmt.Fprintf(b, "```rust\n%s\n```\n\n", rustSignature(fn))

	if doc := renderDoc(fn.ParsedDoc); doc != "" {
		b.WriteString(doc)
		b.WriteString("\n\n")
	}
}

func (r *ModuleRenderer) writeRustTrait(b *strings.Builder, tr *model.RustTrait, level int) {
	fmt.Fprintf(b, "%s `trait %s`\n\n", strings.Repeat("#", level), tr.Name)

	if doc := renderDoc(tr.ParsedDoc); doc != "" {
		b.WriteString(doc)
		b.WriteString("\n\n")
	}

	for _, method := range tr.Methods {
		fmt.Fprintf(b, "- `%s`\n", rustSignature(method))
	}
	if len(tr.Methods) > 0 {
		b.WriteString("\n")
	}
}

// rustSignature reassembles a fn signature from structured parts.
func rustSignature(fn *model.RustFunction) string {
	params := make([]string, 0, len(fn.Params))
	for _, p := range fn.Params {
		switch {
		case p.Name == "self" && p.Type != "":
			// Receiver params carry the raw form ("&self", "&mut self").
			params = append(params, p.Type)
		case p.Type == "":
			params = append(params, p.Name)
		default:
			params = append(params, p.Name+": "+p.Type)
		}
	}

	sig := "fn " + fn.Name + "(" + strings.Join(params, ", ") + ")"
	if fn.ReturnType != "" {
		sig += " -> " + fn.ReturnType
	}
	return sig
}

func itemsOfKind[T interface{ ItemKind() string }](items []T, kind string) []T {
	var out []T
	for _, item := range items {
		if item.ItemKind() == kind {
			out = append(out, item)
		}
	}
	return out
}
