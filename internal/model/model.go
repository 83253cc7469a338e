// Package model defines the intermediate representation shared by the
// extraction, cross-referencing, and rendering stages: Rust module trees,
// Python module trees, structured docstrings, and the cross-references
// that tie the two languages together.
package model

// CrossRefKind describes how a Python symbol relates to a Rust item.
type CrossRefKind string

const (
	// RefBinding marks a Python symbol generated directly by a PyO3 macro.
	RefBinding CrossRefKind = "binding"
	// RefWraps marks a hand-written Python wrapper around a bound symbol.
	RefWraps CrossRefKind = "wraps"
	// RefDelegates marks a Python symbol that forwards to a bound symbol.
	RefDelegates CrossRefKind = "delegates"
)

// CrossRef links a Python symbol path to the Rust item that backs it.
type CrossRef struct {
	PythonPath string       // dot-separated, e.g. "mylib.tasks.Task"
	RustPath   string       // "::"-separated, e.g. "mylib::tasks::Task"
	Kind       CrossRefKind
}

// RustItemRef points at a Rust item from the Python side.
type RustItemRef struct {
	Path string // fully scoped item path, e.g. "mylib::tasks::Task"
	Name string // the item's own name
}

// SourceKind records where a Python module came from.
type SourceKind string

const (
	// SourceAuthored is a module parsed from .py source files.
	SourceAuthored SourceKind = "python"
	// SourceBinding is a module synthesized from PyO3-annotated Rust.
	SourceBinding SourceKind = "pyo3"
)

// ParsedDocstring is the structural decomposition of a documentation block.
// All fields are optional: a docstring with no recognized sections parses to
// summary and description only.
type ParsedDocstring struct {
	Summary     string
	Description string
	Params      []ParamDoc
	Returns     *ReturnDoc
	Raises      []RaisesDoc
	Examples    []string
}

// ParamDoc documents one parameter. Type is empty when the docstring does
// not annotate one.
type ParamDoc struct {
	Name        string
	Type        string
	Description string
}

// ReturnDoc documents a return value.
type ReturnDoc struct {
	Type        string
	Description string
}

// RaisesDoc documents one raised exception or error condition. For Rust
// docs the Type carries the section label ("Error", "Panic").
type RaisesDoc struct {
	Type        string
	Description string
}

// RustModule is one module of a crate, holding its doc comment and
// top-level items in source order.
type RustModule struct {
	Path      string // crate-rooted, "::"-separated
	Doc       string
	ParsedDoc *ParsedDocstring
	Items     []RustItem
}

// RustItem is a top-level item in a Rust module.
type RustItem interface {
	ItemKind() string
	ItemName() string
}

// RustStruct is a struct definition, with PyO3 class metadata when the
// struct carries #[pyclass].
type RustStruct struct {
	Name      string
	Doc       string
	ParsedDoc *ParsedDocstring
	Fields    []RustField
	PyClass   *PyClassMeta
}

func (s *RustStruct) ItemKind() string { return "struct" }
func (s *RustStruct) ItemName() string { return s.Name }

// RustField is a named struct field.
type RustField struct {
	Name string
	Type string
	Doc  string
}

// RustEnum is an enum definition.
type RustEnum struct {
	Name      string
	Doc       string
	ParsedDoc *ParsedDocstring
	Variants  []string
	PyClass   *PyClassMeta
}

func (e *RustEnum) ItemKind() string { return "enum" }
func (e *RustEnum) ItemName() string { return e.Name }

// RustFunction is a free function or an impl-block method.
type RustFunction struct {
	Name       string
	Doc        string
	ParsedDoc  *ParsedDocstring
	Params     []RustParam
	ReturnType string
	PyFunction *PyFunctionMeta
}

func (f *RustFunction) ItemKind() string { return "function" }
func (f *RustFunction) ItemName() string { return f.Name }

// RustParam is one parameter of a Rust function.
type RustParam struct {
	Name string
	Type string
}

// RustTrait is a trait definition with its method signatures.
type RustTrait struct {
	Name      string
	Doc       string
	ParsedDoc *ParsedDocstring
	Methods   []*RustFunction
}

func (t *RustTrait) ItemKind() string { return "trait" }
func (t *RustTrait) ItemName() string { return t.Name }

// RustImpl is an impl block. IsPyMethods is set for #[pymethods] blocks,
// whose methods become Python methods of the target class.
type RustImpl struct {
	Target      string
	IsPyMethods bool
	Methods     []*RustFunction
}

func (i *RustImpl) ItemKind() string { return "impl" }
func (i *RustImpl) ItemName() string { return i.Target }

// RustConst is a const or static item.
type RustConst struct {
	Name  string
	Type  string
	Value string
	Doc   string
}

func (c *RustConst) ItemKind() string { return "const" }
func (c *RustConst) ItemName() string { return c.Name }

// RustTypeAlias is a type alias declaration.
type RustTypeAlias struct {
	Name   string
	Target string
	Doc    string
}

func (a *RustTypeAlias) ItemKind() string { return "typealias" }
func (a *RustTypeAlias) ItemName() string { return a.Name }

// PyClassMeta carries #[pyclass] attribute metadata. Name is the
// Python-visible name override, empty when the Rust name is used as-is.
type PyClassMeta struct {
	Name   string
	Module string
}

// PyFunctionMeta carries #[pyfunction] / #[pyo3(...)] metadata. Signature
// is the raw text of a #[pyo3(signature = (...))] override, if any.
type PyFunctionMeta struct {
	Name      string
	Signature string
}

// PythonModule is one Python module, authored or synthesized.
type PythonModule struct {
	Path      string // dot-separated, e.g. "mylib.tasks"
	Source    SourceKind
	Doc       string
	ParsedDoc *ParsedDocstring
	Items     []PythonItem
}

// PythonItem is a top-level item in a Python module. Kind and name
// together identify an item for merging purposes.
type PythonItem interface {
	ItemKind() string
	ItemName() string
}

// PythonClass is a class definition. RustRef is set when the class is
// known to be backed by a Rust type.
type PythonClass struct {
	Name      string
	Doc       string
	ParsedDoc *ParsedDocstring
	Bases     []string
	Methods   []*PythonFunction
	RustRef   *RustItemRef
}

func (c *PythonClass) ItemKind() string { return "class" }
func (c *PythonClass) ItemName() string { return c.Name }

// PythonFunction is a function or method definition.
type PythonFunction struct {
	Name       string
	Signature  string // display form, e.g. "def add(a: int, b: int) -> int"
	Params     []PythonParam
	ReturnType string
	Doc        string
	ParsedDoc  *ParsedDocstring
	Decorators []string
	RustRef    *RustItemRef
}

func (f *PythonFunction) ItemKind() string { return "function" }
func (f *PythonFunction) ItemName() string { return f.Name }

// PythonParam is one parameter of a Python function signature.
type PythonParam struct {
	Name     string
	TypeHint string
	Default  string
}

// PythonVariable is a module-level assignment.
type PythonVariable struct {
	Name     string
	TypeHint string
	Value    string
}

func (v *PythonVariable) ItemKind() string { return "variable" }
func (v *PythonVariable) ItemName() string { return v.Name }
