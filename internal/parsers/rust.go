package parsers

import (
	"fmt"
	"os"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"

	"github.com/mvp-joe/crossdoc/internal/docstring"
	"github.com/mvp-joe/crossdoc/internal/model"
)

// RustParser parses Rust source files into module item trees, including
// doc comments and PyO3 attribute metadata.
type RustParser struct {
	language *sitter.Language
}

// NewRustParser creates a new Rust parser.
func NewRustParser() *RustParser {
	return &RustParser{language: sitter.NewLanguage(rust.Language())}
}

// ParseFile parses one Rust source file. modulePath is the logical
// "::"-scoped module path the file maps to.
func (p *RustParser) ParseFile(filePath, modulePath string) (*model.RustModule, error) {
	source, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return p.Parse(source, modulePath)
}

// Parse parses Rust source text.
func (p *RustParser) Parse(source []byte, modulePath string) (*model.RustModule, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(p.language)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("parsing rust module %s", modulePath)
	}
	defer tree.Close()

	module := &model.RustModule{Path: modulePath}

	var moduleDoc []string
	pending := pendingMeta{}

	root := tree.RootNode()
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(uint(i))
		switch child.Kind() {
		case "line_comment":
			text := extractNodeText(child, source)
			switch {
			case strings.HasPrefix(text, "//!"):
				moduleDoc = append(moduleDoc, stripDocMarker(text, "//!"))
			case strings.HasPrefix(text, "///"):
				pending.doc = append(pending.doc, stripDocMarker(text, "///"))
			}
		case "attribute_item":
			pending.attrs = append(pending.attrs, attrInner(extractNodeText(child, source)))
		default:
			if item := p.extractItem(child, source, pending); item != nil {
				module.Items = append(module.Items, item)
			}
			pending = pendingMeta{}
		}
	}

	if len(moduleDoc) > 0 {
		module.Doc = strings.Join(moduleDoc, "\n")
		parsed := docstring.ParseRustDoc(module.Doc)
		module.ParsedDoc = &parsed
	}

	return module, nil
}

// pendingMeta accumulates the doc comment lines and attributes seen
// before an item declaration.
type pendingMeta struct {
	doc   []string
	attrs []string
}

func (m pendingMeta) docText() string {
	return strings.Join(m.doc, "\n")
}

func (m pendingMeta) hasAttr(name string) bool {
	for _, attr := range m.attrs {
		if attr == name || strings.HasPrefix(attr, name+"(") {
			return true
		}
	}
	return false
}

func (m pendingMeta) attr(name string) (string, bool) {
	for _, attr := range m.attrs {
		if attr == name {
			return "", true
		}
		if strings.HasPrefix(attr, name+"(") && strings.HasSuffix(attr, ")") {
			return attr[len(name)+1 : len(attr)-1], true
		}
	}
	return "", false
}

func (p *RustParser) extractItem(node *sitter.Node, source []byte, pending pendingMeta) model.RustItem {
	switch node.Kind() {
	case "struct_item":
		return p.extractStruct(node, source, pending)
	case "enum_item":
		return p.extractEnum(node, source, pending)
	case "function_item":
		return p.extractFunction(node, source, pending)
	case "trait_item":
		return p.extractTrait(node, source)
	case "impl_item":
		return p.extractImpl(node, source, pending)
	case "const_item", "static_item":
		return &model.RustConst{
			Name:  childText(node, "name", source),
			Type:  childText(node, "type", source),
			Value: childText(node, "value", source),
			Doc:   pending.docText(),
		}
	case "type_item":
		return &model.RustTypeAlias{
			Name:   childText(node, "name", source),
			Target: childText(node, "type", source),
			Doc:    pending.docText(),
		}
	}
	return nil
}

func (p *RustParser) extractStruct(node *sitter.Node, source []byte, pending pendingMeta) *model.RustStruct {
	s := &model.RustStruct{
		Name:    childText(node, "name", source),
		Doc:     pending.docText(),
		PyClass: parsePyClassAttr(pending),
	}
	attachRustDoc(s.Doc, &s.ParsedDoc)

	body := node.ChildByFieldName("body")
	for _, field := range namedChildren(body, "field_declaration") {
		s.Fields = append(s.Fields, model.RustField{
			Name: childText(field, "name", source),
			Type: childText(field, "type", source),
		})
	}

	return s
}

func (p *RustParser) extractEnum(node *sitter.Node, source []byte, pending pendingMeta) *model.RustEnum {
	e := &model.RustEnum{
		Name:    childText(node, "name", source),
		Doc:     pending.docText(),
		PyClass: parsePyClassAttr(pending),
	}
	attachRustDoc(e.Doc, &e.ParsedDoc)

	body := node.ChildByFieldName("body")
	for _, variant := range namedChildren(body, "enum_variant") {
		e.Variants = append(e.Variants, childText(variant, "name", source))
	}

	return e
}

func (p *RustParser) extractFunction(node *sitter.Node, source []byte, pending pendingMeta) *model.RustFunction {
	fn := &model.RustFunction{
		Name:       childText(node, "name", source),
		Doc:        pending.docText(),
		ReturnType: childText(node, "return_type", source),
		PyFunction: parsePyFunctionAttr(pending),
	}
	attachRustDoc(fn.Doc, &fn.ParsedDoc)

	params := node.ChildByFieldName("parameters")
	if params != nil {
		for i := 0; i < int(params.ChildCount()); i++ {
			child := params.Child(uint(i))
			switch child.Kind() {
			case "self_parameter":
				fn.Params = append(fn.Params, model.RustParam{
					Name: "self",
					Type: extractNodeText(child, source),
				})
			case "parameter":
				fn.Params = append(fn.Params, model.RustParam{
					Name: childText(child, "pattern", source),
					Type: childText(child, "type", source),
				})
			}
		}
	}

	return fn
}

func (p *RustParser) extractTrait(node *sitter.Node, source []byte) *model.RustTrait {
	tr := &model.RustTrait{Name: childText(node, "name", source)}

	body := node.ChildByFieldName("body")
	if body == nil {
		return tr
	}

	pending := pendingMeta{}
	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(uint(i))
		switch child.Kind() {
		case "line_comment":
			if text := extractNodeText(child, source); strings.HasPrefix(text, "///") {
				pending.doc = append(pending.doc, stripDocMarker(text, "///"))
			}
		case "function_item", "function_signature_item":
			tr.Methods = append(tr.Methods, p.extractFunction(child, source, pending))
			pending = pendingMeta{}
		default:
			pending = pendingMeta{}
		}
	}

	return tr
}

func (p *RustParser) extractImpl(node *sitter.Node, source []byte, pending pendingMeta) *model.RustImpl {
	impl := &model.RustImpl{
		Target:      childText(node, "type", source),
		IsPyMethods: pending.hasAttr("pymethods"),
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return impl
	}

	inner := pendingMeta{}
	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(uint(i))
		switch child.Kind() {
		case "line_comment":
			if text := extractNodeText(child, source); strings.HasPrefix(text, "///") {
				inner.doc = append(inner.doc, stripDocMarker(text, "///"))
			}
		case "attribute_item":
			inner.attrs = append(inner.attrs, attrInner(extractNodeText(child, source)))
		case "function_item":
			impl.Methods = append(impl.Methods, p.extractFunction(child, source, inner))
			inner = pendingMeta{}
		default:
			inner = pendingMeta{}
		}
	}

	return impl
}

func attachRustDoc(doc string, target **model.ParsedDocstring) {
	if doc == "" {
		return
	}
	parsed := docstring.ParseRustDoc(doc)
	*target = &parsed
}

// stripDocMarker removes the comment marker and at most one following
// space, preserving deeper indentation inside the doc text.
func stripDocMarker(line, marker string) string {
	text := strings.TrimPrefix(line, marker)
	return strings.TrimPrefix(text, " ")
}

// attrInner unwraps "#[...]" to its inner text.
func attrInner(text string) string {
	text = strings.TrimPrefix(text, "#[")
	text = strings.TrimPrefix(text, "#![")
	return strings.TrimSpace(strings.TrimSuffix(text, "]"))
}

// parsePyClassAttr extracts #[pyclass] metadata: optional name and
// module overrides, e.g. #[pyclass(name = "Task", module = "mylib")].
func parsePyClassAttr(pending pendingMeta) *model.PyClassMeta {
	args, ok := pending.attr("pyclass")
	if !ok {
		return nil
	}

	meta := &model.PyClassMeta{}
	for _, part := range strings.Split(args, ",") {
		key, value, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"`)
		switch strings.TrimSpace(key) {
		case "name":
			meta.Name = value
		case "module":
			meta.Module = value
		}
	}
	return meta
}

// parsePyFunctionAttr extracts #[pyfunction] metadata plus any
// #[pyo3(signature = (...))] override on the same item.
func parsePyFunctionAttr(pending pendingMeta) *model.PyFunctionMeta {
	meta := &model.PyFunctionMeta{}
	found := false

	if args, ok := pending.attr("pyfunction"); ok {
		found = true
		for _, part := range strings.Split(args, ",") {
			key, value, cut := strings.Cut(part, "=")
			if cut && strings.TrimSpace(key) == "name" {
				meta.Name = strings.Trim(strings.TrimSpace(value), `"`)
			}
		}
	}

	if args, ok := pending.attr("pyo3"); ok {
		if sig := extractSignatureOverride(args); sig != "" {
			meta.Signature = sig
			found = true
		}
		for _, part := range strings.Split(args, ",") {
			key, value, cut := strings.Cut(part, "=")
			if cut && strings.TrimSpace(key) == "name" {
				meta.Name = strings.Trim(strings.TrimSpace(value), `"`)
				found = true
			}
		}
	}

	if !found {
		return nil
	}
	return meta
}

// extractSignatureOverride pulls the balanced parenthesized group out
// of "signature = (data, batch_size=100)".
func extractSignatureOverride(args string) string {
	idx := strings.Index(args, "signature")
	if idx < 0 {
		return ""
	}
	rest := args[idx:]
	open := strings.Index(rest, "(")
	if open < 0 {
		return ""
	}

	depth := 0
	for i := open; i < len(rest); i++ {
		switch rest[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return rest[open : i+1]
			}
		}
	}
	return ""
}
