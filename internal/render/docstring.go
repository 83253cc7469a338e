// Package render turns the linked module trees into Markdown pages and
// navigation files for a static site generator.
package render

import (
	"fmt"
	"strings"

	"github.com/mvp-joe/crossdoc/internal/model"
)

// RenderDocstring converts a parsed docstring into Markdown: summary and
// description paragraphs, a parameter table, a returns section, a raises
// table, and fenced example blocks. Empty sections are omitted.
func RenderDocstring(doc model.ParsedDocstring) string {
	var sections []string

	if doc.Summary != "" {
		sections = append(sections, doc.Summary)
	}
	if doc.Description != "" {
		sections = append(sections, doc.Description)
	}
	if len(doc.Params) > 0 {
		sections = append(sections, renderParamsTable(doc.Params))
	}
	if doc.Returns != nil {
		sections = append(sections, renderReturns(*doc.Returns))
	}
	if len(doc.Raises) > 0 {
		sections = append(sections, renderRaisesTable(doc.Raises))
	}
	if len(doc.Examples) > 0 {
		sections = append(sections, renderExamples(doc.Examples))
	}

	return strings.Join(sections, "\n\n")
}

func renderParamsTable(params []model.ParamDoc) string {
	var b strings.Builder
	b.WriteString("**Parameters:**\n\n")
	b.WriteString("| Name | Type | Description |\n")
	b.WriteString("|------|------|-------------|\n")

	for _, p := range params {
		ty := p.Type
		if ty == "" {
			ty = "-"
		}
		fmt.Fprintf(&b, "| `%s` | `%s` | %s |\n", p.Name, ty, escapeTableContent(p.Description))
	}

	return b.String()
}

func renderReturns(ret model.ReturnDoc) string {
	var b strings.Builder
	b.WriteString("**Returns:**")
	if ret.Type != "" {
		fmt.Fprintf(&b, " `%s`", ret.Type)
	}
	b.WriteString("\n\n")
	b.WriteString(ret.Description)
	return b.String()
}

func renderRaisesTable(raises []model.RaisesDoc) string {
	var b strings.Builder
	b.WriteString("**Raises:**\n\n")
	b.WriteString("| Exception | Description |\n")
	b.WriteString("|-----------|-------------|\n")

	for _, r := range raises {
		fmt.Fprintf(&b, "| `%s` | %s |\n", r.Type, escapeTableContent(r.Description))
	}

	return b.String()
}

func renderExamples(examples []string) string {
	var b strings.Builder
	b.WriteString("**Examples:**\n\n")

	for _, example := range examples {
		trimmed := strings.TrimSpace(example)
		if strings.HasPrefix(trimmed, "```") {
			// Already fenced, pass through as-is.
			b.WriteString(trimmed)
			b.WriteString("\n\n")
		} else {
			fmt.Fprintf(&b, "```%s\n%s\n```\n\n", detectExampleLanguage(trimmed), trimmed)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// detectExampleLanguage guesses the fence language from the first tokens
// of the example. Docstring examples default to python.
func detectExampleLanguage(example string) string {
	switch {
	case strings.HasPrefix(example, ">>>"),
		strings.HasPrefix(example, "def "),
		strings.HasPrefix(example, "class "),
		strings.HasPrefix(example, "import "),
		strings.HasPrefix(example, "from "),
		strings.Contains(example, "print("):
		return "python"
	case strings.HasPrefix(example, "fn "),
		strings.HasPrefix(example, "let "),
		strings.HasPrefix(example, "use "),
		strings.HasPrefix(example, "struct "),
		strings.HasPrefix(example, "impl "),
		strings.Contains(example, "println!"):
		return "rust"
	}
	return "python"
}

// escapeTableContent makes free text safe inside a Markdown table cell:
// pipes are escaped and newlines collapse to spaces.
func escapeTableContent(content string) string {
	escaped := strings.ReplaceAll(content, "|", "\\|")
	escaped = strings.ReplaceAll(escaped, "\n", " ")
	return strings.TrimSpace(escaped)
}
