package parsers

import (
	"fmt"
	"os"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/mvp-joe/crossdoc/internal/docstring"
	"github.com/mvp-joe/crossdoc/internal/model"
)

// PythonParser parses Python source files into module item trees with
// structured docstrings.
type PythonParser struct {
	language *sitter.Language
}

// NewPythonParser creates a new Python parser.
func NewPythonParser() *PythonParser {
	return &PythonParser{language: sitter.NewLanguage(python.Language())}
}

// ParseFile parses one Python source file. modulePath is the logical
// dotted module path the file maps to.
func (p *PythonParser) ParseFile(filePath, modulePath string) (*model.PythonModule, error) {
	source, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return p.Parse(source, modulePath)
}

// Parse parses Python source text.
func (p *PythonParser) Parse(source []byte, modulePath string) (*model.PythonModule, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(p.language)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("parsing python module %s", modulePath)
	}
	defer tree.Close()

	module := &model.PythonModule{
		Path:   modulePath,
		Source: model.SourceAuthored,
	}

	root := tree.RootNode()
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(uint(i))
		switch child.Kind() {
		case "expression_statement":
			if i == 0 {
				if doc, ok := docstringText(child, source); ok {
					module.Doc = doc
					parsed := docstring.Parse(doc)
					module.ParsedDoc = &parsed
					continue
				}
			}
			if v := extractVariable(child, source); v != nil {
				module.Items = append(module.Items, v)
			}
		case "class_definition":
			module.Items = append(module.Items, p.extractClass(child, source, nil))
		case "function_definition":
			module.Items = append(module.Items, p.extractFunction(child, source, nil))
		case "decorated_definition":
			if item := p.extractDecorated(child, source); item != nil {
				module.Items = append(module.Items, item)
			}
		}
	}

	return module, nil
}

func (p *PythonParser) extractDecorated(node *sitter.Node, source []byte) model.PythonItem {
	var decorators []string
	for _, dec := range namedChildren(node, "decorator") {
		decorators = append(decorators, strings.TrimPrefix(extractNodeText(dec, source), "@"))
	}

	definition := node.ChildByFieldName("definition")
	if definition == nil {
		return nil
	}

	switch definition.Kind() {
	case "class_definition":
		return p.extractClass(definition, source, decorators)
	case "function_definition":
		return p.extractFunction(definition, source, decorators)
	}
	return nil
}

func (p *PythonParser) extractClass(node *sitter.Node, source []byte, _ []string) *model.PythonClass {
	class := &model.PythonClass{Name: childText(node, "name", source)}

	if supers := node.ChildByFieldName("superclasses"); supers != nil {
		for i := 0; i < int(supers.ChildCount()); i++ {
			child := supers.Child(uint(i))
			if child.IsNamed() {
				class.Bases = append(class.Bases, extractNodeText(child, source))
			}
		}
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return class
	}

	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(uint(i))
		switch child.Kind() {
		case "expression_statement":
			if i == 0 {
				if doc, ok := docstringText(child, source); ok {
					class.Doc = doc
					parsed := docstring.Parse(doc)
					class.ParsedDoc = &parsed
				}
			}
		case "function_definition":
			class.Methods = append(class.Methods, p.extractFunction(child, source, nil))
		case "decorated_definition":
			if fn, ok := p.extractDecorated(child, source).(*model.PythonFunction); ok {
				class.Methods = append(class.Methods, fn)
			}
		}
	}

	return class
}

func (p *PythonParser) extractFunction(node *sitter.Node, source []byte, decorators []string) *model.PythonFunction {
	fn := &model.PythonFunction{
		Name:       childText(node, "name", source),
		ReturnType: childText(node, "return_type", source),
		Decorators: decorators,
	}

	params := node.ChildByFieldName("parameters")
	fn.Signature = buildPythonSignature(fn.Name, params, fn.ReturnType, source)

	if params != nil {
		for i := 0; i < int(params.ChildCount()); i++ {
			child := params.Child(uint(i))
			switch child.Kind() {
			case "identifier":
				fn.Params = append(fn.Params, model.PythonParam{Name: extractNodeText(child, source)})
			case "typed_parameter":
				fn.Params = append(fn.Params, model.PythonParam{
					Name:     extractNodeText(child.Child(0), source),
					TypeHint: childText(child, "type", source),
				})
			case "default_parameter":
				fn.Params = append(fn.Params, model.PythonParam{
					Name:    childText(child, "name", source),
					Default: childText(child, "value", source),
				})
			case "typed_default_parameter":
				fn.Params = append(fn.Params, model.PythonParam{
					Name:     childText(child, "name", source),
					TypeHint: childText(child, "type", source),
					Default:  childText(child, "value", source),
				})
			}
		}
	}

	if body := node.ChildByFieldName("body"); body != nil && body.ChildCount() > 0 {
		if doc, ok := docstringText(body.Child(0), source); ok {
			fn.Doc = doc
			parsed := docstring.Parse(doc)
			fn.ParsedDoc = &parsed
		}
	}

	return fn
}

func buildPythonSignature(name string, params *sitter.Node, returnType string, source []byte) string {
	sig := "def " + name
	if params != nil {
		sig += extractNodeText(params, source)
	} else {
		sig += "()"
	}
	if returnType != "" {
		sig += " -> " + returnType
	}
	return sig
}

func extractVariable(node *sitter.Node, source []byte) *model.PythonVariable {
	if node.ChildCount() == 0 {
		return nil
	}
	assignment := node.Child(0)
	if assignment.Kind() != "assignment" {
		return nil
	}

	left := assignment.ChildByFieldName("left")
	if left == nil || left.Kind() != "identifier" {
		return nil
	}

	return &model.PythonVariable{
		Name:     extractNodeText(left, source),
		TypeHint: childText(assignment, "type", source),
		Value:    childText(assignment, "right", source),
	}
}

// docstringText recognizes a string expression statement and returns
// its cleaned text: quotes stripped, PEP 257 style dedent applied.
func docstringText(node *sitter.Node, source []byte) (string, bool) {
	if node == nil || node.Kind() != "expression_statement" || node.ChildCount() == 0 {
		return "", false
	}
	str := node.Child(0)
	if str.Kind() != "string" {
		return "", false
	}
	return cleanDocstring(extractNodeText(str, source)), true
}

// cleanDocstring strips quotes and prefixes from a string literal and
// removes the common indentation of continuation lines.
func cleanDocstring(raw string) string {
	raw = strings.TrimLeft(raw, "rRbBuUfF")
	for _, quote := range []string{`"""`, "'''", `"`, "'"} {
		if strings.HasPrefix(raw, quote) && strings.HasSuffix(raw, quote) && len(raw) >= 2*len(quote) {
			raw = raw[len(quote) : len(raw)-len(quote)]
			break
		}
	}

	lines := strings.Split(raw, "\n")
	if len(lines) == 1 {
		return strings.TrimSpace(raw)
	}

	// Common indent over non-blank continuation lines, per PEP 257.
	indent := -1
	for _, line := range lines[1:] {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		width := len(line) - len(trimmed)
		if indent < 0 || width < indent {
			indent = width
		}
	}

	out := []string{strings.TrimSpace(lines[0])}
	for _, line := range lines[1:] {
		if indent > 0 && len(line) >= indent {
			line = line[indent:]
		}
		out = append(out, strings.TrimRight(line, " \t"))
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}
