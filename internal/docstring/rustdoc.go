package docstring

import (
	"strings"

	"github.com/mvp-joe/crossdoc/internal/model"
)

// ParseRustDoc parses a Rust doc comment (already stripped of the ///
// markers) into structured form. Sections are Markdown ATX headers:
//
//	# Arguments / # Parameters - parameter list items
//	# Returns                  - return value prose
//	# Errors                   - error conditions, labeled "Error"
//	# Panics                   - panic conditions, labeled "Panic"
//	# Safety                   - appended to the description
//	# Examples                 - code examples
//
// Unrecognized headers are skipped. Like Parse, this never fails.
func ParseRustDoc(doc string) model.ParsedDocstring {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return model.ParsedDocstring{}
	}

	lines := strings.Split(doc, "\n")
	summary, description, sectionStart := extractRustSummary(lines)

	result := model.ParsedDocstring{Summary: summary}
	var safetyNotes []string

	i := sectionStart
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		header, ok := parseMarkdownHeader(line)
		if !ok {
			i++
			continue
		}

		switch strings.ToLower(header) {
		case "arguments", "parameters", "args", "params":
			result.Params, i = parseRustArguments(lines, i+1)
		case "returns", "return":
			result.Returns, i = parseRustReturns(lines, i+1)
		case "errors", "error":
			var parsed []model.RaisesDoc
			parsed, i = parseRustErrors(lines, i+1, "Error")
			result.Raises = append(result.Raises, parsed...)
		case "panics", "panic":
			var parsed []model.RaisesDoc
			parsed, i = parseRustErrors(lines, i+1, "Panic")
			result.Raises = append(result.Raises, parsed...)
		case "safety":
			var notes string
			notes, i = parseRustSectionText(lines, i+1)
			safetyNotes = append(safetyNotes, notes)
		case "examples", "example":
			result.Examples, i = parseRustExamples(lines, i+1)
		default:
			i++
		}
	}

	if len(safetyNotes) > 0 {
		safety := "\n\n# Safety\n" + strings.Join(safetyNotes, "\n")
		if description != "" {
			description += safety
		} else {
			description = strings.TrimLeft(safety, "\n")
		}
	}
	result.Description = description

	return result
}

// extractRustSummary is like extractSummaryAndDescription but stops at
// the first Markdown header instead of colon/underline sections.
func extractRustSummary(lines []string) (summary, description string, next int) {
	var summaryLines, descriptionLines []string
	inDescription := false

	i := 0
	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		if _, ok := parseMarkdownHeader(line); ok {
			break
		}

		if line == "" {
			if len(summaryLines) > 0 {
				inDescription = true
			}
			continue
		}

		if inDescription {
			descriptionLines = append(descriptionLines, line)
		} else {
			summaryLines = append(summaryLines, line)
		}
	}

	return strings.Join(summaryLines, " "), strings.Join(descriptionLines, "\n"), i
}

// parseMarkdownHeader returns the section name of an ATX header line
// (up to three levels).
func parseMarkdownHeader(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	for _, prefix := range []string{"### ", "## ", "# "} {
		if rest, ok := strings.CutPrefix(trimmed, prefix); ok {
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}

// parseRustArguments parses list items of the form:
//
//	* `name` - description
//	- `name`: description
//	* name - description
func parseRustArguments(lines []string, start int) ([]model.ParamDoc, int) {
	var params []model.ParamDoc
	var currentName string
	var currentDesc []string

	flush := func() {
		if currentName != "" {
			params = appendParam(params, model.ParamDoc{
				Name:        currentName,
				Description: strings.TrimSpace(strings.Join(currentDesc, " ")),
			})
			currentName = ""
			currentDesc = nil
		}
	}

	i := start
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])

		if _, ok := parseMarkdownHeader(trimmed); ok {
			break
		}

		if trimmed == "" {
			flush()
			i++
			continue
		}

		if name, desc, ok := parseRustParamLine(trimmed); ok {
			flush()
			currentName = name
			currentDesc = []string{desc}
		} else if currentName != "" && !strings.HasPrefix(trimmed, "*") && !strings.HasPrefix(trimmed, "-") {
			currentDesc = append(currentDesc, trimmed)
		}

		i++
	}

	flush()
	return params, i
}

// parseRustParamLine splits a single parameter list item. Malformed
// items (no separator at all) are dropped by returning ok=false.
func parseRustParamLine(line string) (name, desc string, ok bool) {
	trimmed := strings.TrimSpace(line)

	if !strings.HasPrefix(trimmed, "*") && !strings.HasPrefix(trimmed, "-") {
		return "", "", false
	}

	rest := strings.TrimSpace(trimmed[1:])

	// Backtick-quoted name: `name` - description
	if strings.HasPrefix(rest, "`") {
		if end := strings.Index(rest[1:], "`"); end >= 0 {
			name = rest[1 : 1+end]
			after := strings.TrimSpace(rest[2+end:])
			if s, found := strings.CutPrefix(after, "-"); found {
				desc = strings.TrimSpace(s)
			} else if s, found := strings.CutPrefix(after, ":"); found {
				desc = strings.TrimSpace(s)
			} else {
				desc = after
			}
			return name, desc, true
		}
	}

	// Plain format: name - description
	if sep := strings.Index(rest, " - "); sep >= 0 {
		return strings.TrimSpace(rest[:sep]), strings.TrimSpace(rest[sep+3:]), true
	}

	// Colon format: name: description
	if sep := strings.Index(rest, ":"); sep >= 0 {
		return strings.TrimSpace(rest[:sep]), strings.TrimSpace(rest[sep+1:]), true
	}

	return "", "", false
}

// parseRustReturns takes the whole section body as the description.
// Rust doc returns sections carry no type annotation.
func parseRustReturns(lines []string, start int) (*model.ReturnDoc, int) {
	text, next := parseRustSectionText(lines, start)
	if text == "" {
		return nil, next
	}
	return &model.ReturnDoc{Description: text}, next
}

// parseRustErrors parses an Errors or Panics section. List items may
// carry a backtick-quoted error type; plain prose is labeled with the
// section's default kind.
func parseRustErrors(lines []string, start int, kind string) ([]model.RaisesDoc, int) {
	var raises []model.RaisesDoc
	var currentType string
	var currentDesc []string

	flush := func() {
		if currentType != "" || len(currentDesc) > 0 {
			ty := currentType
			if ty == "" {
				ty = kind
			}
			raises = append(raises, model.RaisesDoc{
				Type:        ty,
				Description: strings.TrimSpace(strings.Join(currentDesc, " ")),
			})
			currentType = ""
			currentDesc = nil
		}
	}

	i := start
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])

		if _, ok := parseMarkdownHeader(trimmed); ok {
			break
		}

		if trimmed == "" {
			flush()
			i++
			continue
		}

		if strings.HasPrefix(trimmed, "*") || strings.HasPrefix(trimmed, "-") {
			flush()
			rest := strings.TrimSpace(trimmed[1:])

			if after, found := strings.CutPrefix(rest, "`"); found {
				if end := strings.Index(after, "`"); end >= 0 {
					currentType = after[:end]
					desc := strings.TrimSpace(after[end+1:])
					desc = strings.TrimPrefix(desc, "-")
					desc = strings.TrimPrefix(desc, ":")
					currentDesc = []string{strings.TrimSpace(desc)}
				} else {
					currentType = kind
					currentDesc = []string{rest}
				}
			} else {
				currentType = kind
				currentDesc = []string{rest}
			}
		} else if len(currentDesc) > 0 {
			currentDesc = append(currentDesc, trimmed)
		} else {
			currentType = kind
			currentDesc = append(currentDesc, trimmed)
		}

		i++
	}

	flush()
	return raises, i
}

// parseRustExamples is the fence-aware example splitter for ATX-header
// docs: headers end the section unless inside a code fence.
func parseRustExamples(lines []string, start int) ([]string, int) {
	var examples []string
	var current []string
	inCodeBlock := false

	i := start
	for i < len(lines) {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		if !inCodeBlock {
			if _, ok := parseMarkdownHeader(trimmed); ok {
				break
			}
		}

		if strings.HasPrefix(trimmed, "```") {
			inCodeBlock = !inCodeBlock
			current = append(current, line)
			i++
			continue
		}

		if trimmed == "" && !inCodeBlock {
			if len(current) > 0 {
				examples = append(examples, strings.Join(current, "\n"))
				current = nil
			}
			i++
			continue
		}

		current = append(current, line)
		i++
	}

	if len(current) > 0 {
		examples = append(examples, strings.Join(current, "\n"))
	}

	return examples, i
}

// parseRustSectionText collects a section body as space-joined prose
// until the next header.
func parseRustSectionText(lines []string, start int) (string, int) {
	var textLines []string

	i := start
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])

		if _, ok := parseMarkdownHeader(trimmed); ok {
			break
		}

		if trimmed == "" && len(textLines) == 0 {
			i++
			continue
		}

		textLines = append(textLines, trimmed)
		i++
	}

	for len(textLines) > 0 && textLines[len(textLines)-1] == "" {
		textLines = textLines[:len(textLines)-1]
	}

	return strings.TrimSpace(strings.Join(textLines, " ")), i
}
