package crossref

import "strings"

// pyO3TypeNames maps PyO3 type names (after path stripping) to Python
// type hints.
var pyO3TypeNames = map[string]string{
	"PyString":    "str",
	"PyList":      "list",
	"PyDict":      "dict",
	"PyTuple":     "tuple",
	"PySet":       "set",
	"PyFrozenSet": "frozenset",
	"PyBytes":     "bytes",
	"PyByteArray": "bytearray",
	"PyInt":       "int",
	"PyLong":      "int",
	"PyFloat":     "float",
	"PyBool":      "bool",
	"PyNone":      "None",
	"PyModule":    "ModuleType",
	"PyType":      "type",
	"PyObject":    "Any",
	"PyAny":       "Any",
}

// primitiveTypes maps Rust primitives to Python type hints.
var primitiveTypes = map[string]string{
	"i8": "int", "i16": "int", "i32": "int", "i64": "int", "i128": "int", "isize": "int",
	"u8": "int", "u16": "int", "u32": "int", "u64": "int", "u128": "int", "usize": "int",
	"f32": "float", "f64": "float",
	"bool":    "bool",
	"String":  "str",
	"str":     "str",
	"&str":    "str",
	"&String": "str",
	"char":    "str",
	"()":      "None",
	"Self":    "Self",
}

// rustTypeToPython converts a Rust type string to a best-effort Python
// type hint. Whitespace is normalized first so spaced forms like
// "PyResult < String >" convert the same as compact ones.
func rustTypeToPython(rustType string) string {
	var b strings.Builder
	for _, c := range rustType {
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			b.WriteRune(c)
		}
	}
	return convertNormalized(b.String())
}

func convertNormalized(s string) string {
	// Tuples: (T1, T2) -> Tuple[T1, T2], () -> None.
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		inner := s[1 : len(s)-1]
		if inner == "" {
			return "None"
		}
		elements := splitTupleElements(inner)
		converted := make([]string, len(elements))
		for i, e := range elements {
			converted[i] = convertNormalized(e)
		}
		return "Tuple[" + strings.Join(converted, ", ") + "]"
	}

	// Slices: [T] -> List[T], except [u8] -> bytes.
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		inner := s[1 : len(s)-1]
		if inner == "u8" {
			return "bytes"
		}
		return "List[" + convertNormalized(inner) + "]"
	}

	// PyO3 type names, with or without a path qualifier.
	baseType := s
	if idx := strings.LastIndex(s, "::"); idx >= 0 {
		baseType = s[idx+2:]
	}
	if hint, ok := pyO3TypeNames[baseType]; ok {
		return hint
	}

	if hint, ok := primitiveTypes[s]; ok {
		return hint
	}

	switch {
	case strings.HasPrefix(s, "Vec<") && strings.HasSuffix(s, ">"):
		return "List[" + convertNormalized(s[4:len(s)-1]) + "]"

	case strings.HasPrefix(s, "Option<") && strings.HasSuffix(s, ">"):
		return "Optional[" + convertNormalized(s[7:len(s)-1]) + "]"

	case (strings.HasPrefix(s, "HashMap<") || strings.HasPrefix(s, "BTreeMap<")) && strings.HasSuffix(s, ">"):
		inner := s[strings.Index(s, "<")+1 : len(s)-1]
		if key, val, ok := splitGenericPair(inner); ok {
			return "Dict[" + convertNormalized(key) + ", " + convertNormalized(val) + "]"
		}
		return "Dict[str, Any]"

	case (strings.HasPrefix(s, "HashSet<") || strings.HasPrefix(s, "BTreeSet<")) && strings.HasSuffix(s, ">"):
		inner := s[strings.Index(s, "<")+1 : len(s)-1]
		return "Set[" + convertNormalized(inner) + "]"

	// PyO3 wrappers unwrap to the inner type.
	case strings.HasPrefix(s, "PyResult<") && strings.HasSuffix(s, ">"):
		return convertNormalized(s[9 : len(s)-1])

	case strings.HasPrefix(s, "Py<") && strings.HasSuffix(s, ">"):
		return convertNormalized(s[3 : len(s)-1])

	case strings.HasPrefix(s, "Bound<") && strings.HasSuffix(s, ">"):
		// Bound<'_, PyDict> carries a lifetime before the type.
		inner := s[6 : len(s)-1]
		if comma := strings.Index(inner, ","); comma >= 0 {
			return convertNormalized(inner[comma+1:])
		}
		return convertNormalized(inner)

	case strings.HasPrefix(s, "Result<") && strings.HasSuffix(s, ">"):
		inner := s[7 : len(s)-1]
		if ok, _, found := splitGenericPair(inner); found {
			return convertNormalized(ok)
		}
		return convertNormalized(inner)

	case strings.HasPrefix(s, "&mut"):
		return convertNormalized(s[4:])

	case strings.HasPrefix(s, "&"):
		return convertNormalized(s[1:])

	// Python<'_> is the GIL token, not a value type.
	case strings.HasPrefix(s, "Python<"):
		return ""

	case strings.Contains(s, "::"):
		last := s[strings.LastIndex(s, "::")+2:]
		if converted := convertNormalized(last); converted != last {
			return converted
		}
		return last
	}

	return s
}

// splitGenericPair splits "K,V" at the top-level comma, respecting
// nested angle brackets and parentheses.
func splitGenericPair(s string) (first, second string, ok bool) {
	depth := 0
	for i, c := range s {
		switch c {
		case '<', '(':
			depth++
		case '>', ')':
			depth--
		case ',':
			if depth == 0 {
				return s[:i], strings.TrimLeft(s[i+1:], " "), true
			}
		}
	}
	return "", "", false
}

// splitTupleElements splits tuple element types at top-level commas.
func splitTupleElements(s string) []string {
	var elements []string
	depth := 0
	start := 0

	for i, c := range s {
		switch c {
		case '<', '(', '[':
			depth++
		case '>', ')', ']':
			depth--
		case ',':
			if depth == 0 {
				elements = append(elements, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}

	if last := strings.TrimSpace(s[start:]); last != "" {
		elements = append(elements, last)
	}

	return elements
}
