// Package docstring parses freeform documentation text into structured
// records. It understands Google-style and NumPy-style Python docstrings
// with automatic detection, plus Rust doc comments via a separate entry
// point (see rustdoc.go). Parsing never fails: unrecognizable input
// degrades to summary/description only.
package docstring

import (
	"strings"

	"github.com/mvp-joe/crossdoc/internal/model"
)

type style int

const (
	styleGoogle style = iota
	styleNumPy
	stylePlain
)

// googleMarkers are the standalone lines that identify a Google-style
// docstring. Detection matches the whole trimmed line.
var googleMarkers = []string{
	"Args:",
	"Arguments:",
	"Parameters:",
	"Returns:",
	"Raises:",
	"Example:",
	"Examples:",
	"Attributes:",
	"Note:",
	"Notes:",
	"Yields:",
}

// knownSections is the section-name vocabulary shared by Google and NumPy
// style parsing, lowercased.
var knownSections = map[string]bool{
	"args":       true,
	"arguments":  true,
	"parameters": true,
	"params":     true,
	"returns":    true,
	"return":     true,
	"raises":     true,
	"raise":      true,
	"exceptions": true,
	"except":     true,
	"example":    true,
	"examples":   true,
	"attributes": true,
	"note":       true,
	"notes":      true,
	"yields":     true,
	"yield":      true,
	"see also":   true,
	"references": true,
	"warnings":   true,
	"warning":    true,
}

// Parse converts a raw docstring into structured form, auto-detecting the
// style. NumPy underlined headers take priority over Google colon markers;
// anything else is treated as plain prose.
func Parse(doc string) model.ParsedDocstring {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return model.ParsedDocstring{}
	}

	lines := strings.Split(doc, "\n")

	switch detectStyle(lines) {
	case styleNumPy:
		return parseNumPy(lines)
	case styleGoogle:
		return parseGoogle(lines)
	default:
		summary, description, _ := extractSummaryAndDescription(lines)
		return model.ParsedDocstring{Summary: summary, Description: description}
	}
}

func detectStyle(lines []string) style {
	// NumPy: a known section title immediately underlined with dashes.
	for i := 0; i+1 < len(lines); i++ {
		title := strings.TrimSpace(lines[i])
		if isUnderline(strings.TrimSpace(lines[i+1])) && knownSections[strings.ToLower(title)] {
			return styleNumPy
		}
	}

	// Google: a marker as a standalone trimmed line.
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		for _, marker := range googleMarkers {
			if trimmed == marker {
				return styleGoogle
			}
		}
	}

	return stylePlain
}

// isUnderline reports whether a trimmed line is a NumPy section underline.
func isUnderline(s string) bool {
	if len(s) < 3 {
		return false
	}
	for _, c := range s {
		if c != '-' {
			return false
		}
	}
	return true
}

// isSectionHeader reports whether a trimmed line is a Google section
// header, returning the lowercased section name.
func isSectionHeader(trimmed string) (string, bool) {
	if !strings.HasSuffix(trimmed, ":") || strings.Contains(trimmed, " ") {
		return "", false
	}
	name := strings.ToLower(trimmed[:len(trimmed)-1])
	if !knownSections[name] {
		return "", false
	}
	return name, true
}

// extractSummaryAndDescription pulls the leading prose off a docstring.
// The first paragraph (up to the first blank line or section header)
// becomes the summary, joined with spaces; subsequent pre-section lines
// become the description, joined with newlines. Returns the index of the
// first section line.
func extractSummaryAndDescription(lines []string) (summary, description string, next int) {
	var summaryLines, descriptionLines []string
	inDescription := false

	i := 0
	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		if line == "" {
			if len(summaryLines) > 0 {
				inDescription = true
			}
			continue
		}

		if _, ok := isSectionHeader(line); ok {
			break
		}

		// NumPy-style header: known section title underlined with dashes.
		if i+1 < len(lines) &&
			isUnderline(strings.TrimSpace(lines[i+1])) &&
			knownSections[strings.ToLower(line)] {
			break
		}

		if inDescription {
			descriptionLines = append(descriptionLines, line)
		} else {
			summaryLines = append(summaryLines, line)
		}
	}

	return strings.Join(summaryLines, " "), strings.Join(descriptionLines, "\n"), i
}

// appendParam adds a parameter, dropping any earlier entry with the same
// name so the last occurrence in the source text wins.
func appendParam(params []model.ParamDoc, p model.ParamDoc) []model.ParamDoc {
	for i := range params {
		if params[i].Name == p.Name {
			params = append(params[:i], params[i+1:]...)
			break
		}
	}
	return append(params, p)
}

func parseGoogle(lines []string) model.ParsedDocstring {
	summary, description, sectionStart := extractSummaryAndDescription(lines)

	result := model.ParsedDocstring{Summary: summary, Description: description}

	i := sectionStart
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		name, ok := isSectionHeader(line)
		if !ok {
			i++
			continue
		}

		switch name {
		case "args", "arguments", "parameters", "params":
			result.Params, i = parseGoogleParams(lines, i+1)
		case "returns", "return":
			result.Returns, i = parseGoogleReturns(lines, i+1)
		case "raises", "raise", "exceptions", "except":
			result.Raises, i = parseGoogleRaises(lines, i+1)
		case "example", "examples":
			result.Examples, i = parseExamples(lines, i+1)
		default:
			i++
		}
	}

	return result
}

func leadingSpaces(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

// parseGoogleParams parses an Args/Parameters section. A line at <=4
// leading spaces containing a colon starts a new parameter; deeper lines
// continue the current description; a blank line flushes.
func parseGoogleParams(lines []string, start int) ([]model.ParamDoc, int) {
	var params []model.ParamDoc
	var currentName, currentType string
	var currentDesc []string

	flush := func() {
		if currentName != "" {
			params = appendParam(params, model.ParamDoc{
				Name:        currentName,
				Type:        currentType,
				Description: strings.TrimSpace(strings.Join(currentDesc, " ")),
			})
			currentName, currentType = "", ""
			currentDesc = nil
		}
	}

	i := start
	for i < len(lines) {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			flush()
			i++
			continue
		}

		if _, ok := isSectionHeader(trimmed); ok {
			break
		}

		if leadingSpaces(line) <= 4 && strings.Contains(trimmed, ":") {
			flush()
			name, ty, desc := parseParamLine(trimmed)
			currentName, currentType = name, ty
			currentDesc = []string{desc}
		} else if currentName != "" {
			currentDesc = append(currentDesc, trimmed)
		}

		i++
	}

	flush()
	return params, i
}

// parseParamLine splits "name (type): description" or "name: description".
func parseParamLine(line string) (name, ty, desc string) {
	colon := strings.Index(line, ":")
	if colon < 0 {
		return strings.TrimSpace(line), "", ""
	}

	before := line[:colon]
	desc = strings.TrimSpace(line[colon+1:])

	parenStart := strings.Index(before, "(")
	parenEnd := strings.LastIndex(before, ")")
	if parenStart >= 0 && parenEnd > parenStart {
		name = strings.TrimSpace(before[:parenStart])
		ty = strings.TrimSpace(before[parenStart+1 : parenEnd])
		return name, ty, desc
	}

	return strings.TrimSpace(before), "", desc
}

// parseGoogleReturns parses a Returns section. If the text before the
// first colon of the first line contains no space it is taken as a type
// annotation.
func parseGoogleReturns(lines []string, start int) (*model.ReturnDoc, int) {
	var descLines []string
	var ty string

	i := start
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])

		if trimmed == "" {
			if len(descLines) > 0 {
				break
			}
			i++
			continue
		}

		if _, ok := isSectionHeader(trimmed); ok {
			break
		}

		if len(descLines) == 0 && strings.Contains(trimmed, ":") {
			colon := strings.Index(trimmed, ":")
			if before := trimmed[:colon]; !strings.Contains(before, " ") {
				ty = strings.TrimSpace(before)
				descLines = append(descLines, strings.TrimSpace(trimmed[colon+1:]))
			} else {
				descLines = append(descLines, trimmed)
			}
		} else {
			descLines = append(descLines, trimmed)
		}

		i++
	}

	if len(descLines) == 0 {
		return nil, i
	}

	return &model.ReturnDoc{
		Type:        ty,
		Description: strings.TrimSpace(strings.Join(descLines, " ")),
	}, i
}

// parseGoogleRaises parses a Raises section: "ExceptionType: description"
// entries with indented continuations.
func parseGoogleRaises(lines []string, start int) ([]model.RaisesDoc, int) {
	var raises []model.RaisesDoc
	var currentType string
	var currentDesc []string

	flush := func() {
		if currentType != "" {
			raises = append(raises, model.RaisesDoc{
				Type:        currentType,
				Description: strings.TrimSpace(strings.Join(currentDesc, " ")),
			})
			currentType = ""
			currentDesc = nil
		}
	}

	i := start
	for i < len(lines) {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			flush()
			i++
			continue
		}

		if _, ok := isSectionHeader(trimmed); ok {
			break
		}

		if leadingSpaces(line) <= 4 && strings.Contains(trimmed, ":") {
			flush()
			colon := strings.Index(trimmed, ":")
			currentType = strings.TrimSpace(trimmed[:colon])
			currentDesc = []string{strings.TrimSpace(trimmed[colon+1:])}
		} else if currentType != "" {
			currentDesc = append(currentDesc, trimmed)
		}

		i++
	}

	flush()
	return raises, i
}

// parseExamples splits an Examples section into blank-line-delimited
// groups, except inside fenced code blocks where blank lines are kept.
// Shared by Google and NumPy styles.
func parseExamples(lines []string, start int) ([]string, int) {
	var examples []string
	var current []string
	inCodeBlock := false

	i := start
	for i < len(lines) {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		if !inCodeBlock {
			if _, ok := isSectionHeader(trimmed); ok {
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

func parseNumPy(lines []string) model.ParsedDocstring {
	summary, description, sectionStart := extractSummaryAndDescription(lines)

	result := model.ParsedDocstring{Summary: summary, Description: description}

	i := sectionStart
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		if i+1 >= len(lines) || !isUnderline(strings.TrimSpace(lines[i+1])) {
			i++
			continue
		}

		switch strings.ToLower(line) {
		case "parameters", "params", "arguments":
			result.Params, i = parseNumPyParams(lines, i+2)
		case "returns":
			result.Returns, i = parseNumPyReturns(lines, i+2)
		case "raises", "exceptions":
			result.Raises, i = parseNumPyRaises(lines, i+2)
		case "examples", "example":
			result.Examples, i = parseExamples(lines, i+2)
		default:
			i++
		}
	}

	return result
}

// atNumPySection reports whether line i starts a new underlined section.
func atNumPySection(lines []string, i int) bool {
	return i+1 < len(lines) && isUnderline(strings.TrimSpace(lines[i+1]))
}

// parseNumPyParams parses entries of the form "name : type" at zero
// indentation with indented description lines below.
func parseNumPyParams(lines []string, start int) ([]model.ParamDoc, int) {
	var params []model.ParamDoc
	var currentName, currentType string
	var currentDesc []string

	flush := func() {
		if currentName != "" {
			params = appendParam(params, model.ParamDoc{
				Name:        currentName,
				Type:        currentType,
				Description: strings.TrimSpace(strings.Join(currentDesc, " ")),
			})
			currentName, currentType = "", ""
			currentDesc = nil
		}
	}

	i := start
	for i < len(lines) {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		if atNumPySection(lines, i) {
			break
		}

		if trimmed == "" {
			i++
			continue
		}

		if leadingSpaces(line) == 0 && strings.Contains(trimmed, ":") {
			flush()
			colon := strings.Index(trimmed, ":")
			currentName = strings.TrimSpace(trimmed[:colon])
			currentType = strings.TrimSpace(trimmed[colon+1:])
		} else if leadingSpaces(line) > 0 && currentName != "" {
			currentDesc = append(currentDesc, trimmed)
		}

		i++
	}

	flush()
	return params, i
}

func parseNumPyReturns(lines []string, start int) (*model.ReturnDoc, int) {
	var ty string
	haveType := false
	var descLines []string

	i := start
	for i < len(lines) {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		if atNumPySection(lines, i) {
			break
		}

		if trimmed == "" {
			if haveType || len(descLines) > 0 {
				break
			}
			i++
			continue
		}

		if !haveType && leadingSpaces(line) == 0 {
			// First line is "type" or "name : type".
			if colon := strings.Index(trimmed, ":"); colon >= 0 {
				ty = strings.TrimSpace(trimmed[colon+1:])
			} else {
				ty = trimmed
			}
			haveType = true
		} else if leadingSpaces(line) > 0 {
			descLines = append(descLines, trimmed)
		}

		i++
	}

	if !haveType && len(descLines) == 0 {
		return nil, i
	}

	return &model.ReturnDoc{
		Type:        ty,
		Description: strings.TrimSpace(strings.Join(descLines, " ")),
	}, i
}

func parseNumPyRaises(lines []string, start int) ([]model.RaisesDoc, int) {
	var raises []model.RaisesDoc
	var currentType string
	var currentDesc []string

	flush := func() {
		if currentType != "" {
			raises = append(raises, model.RaisesDoc{
				Type:        currentType,
				Description: strings.TrimSpace(strings.Join(currentDesc, " ")),
			})
			currentType = ""
			currentDesc = nil
		}
	}

	i := start
	for i < len(lines) {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		if atNumPySection(lines, i) {
			break
		}

		if trimmed == "" {
			i++
			continue
		}

		if leadingSpaces(line) == 0 {
			flush()
			currentType = trimmed
		} else if currentType != "" {
			currentDesc = append(currentDesc, trimmed)
		}

		i++
	}

	flush()
	return raises, i
}
