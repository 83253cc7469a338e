package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/crossdoc/internal/model"
)

// Test Plan for RustParser:
// - Structs, enums, functions, traits, impls, consts and type aliases
//   extract with names, fields, variants and parameters
// - Doc comments attach to their item and parse into structured form
// - //! comments become the module doc
// - #[pyclass]/#[pyfunction]/#[pyo3] metadata is captured, including
//   name and signature overrides
// - #[pymethods] marks impl blocks and their methods

func parseRust(t *testing.T, source string) *model.RustModule {
	t.Helper()
	module, err := NewRustParser().Parse([]byte(source), "mycrate")
	require.NoError(t, err)
	return module
}

func TestRustParser_Struct(t *testing.T) {
	t.Parallel()

	module := parseRust(t, `
/// A simple struct.
pub struct MyStruct {
    pub name: String,
    count: usize,
}
`)

	require.Len(t, module.Items, 1)
	s, ok := module.Items[0].(*model.RustStruct)
	require.True(t, ok)

	assert.Equal(t, "MyStruct", s.Name)
	assert.Equal(t, "A simple struct.", s.Doc)
	require.NotNil(t, s.ParsedDoc)
	assert.Equal(t, "A simple struct.", s.ParsedDoc.Summary)
	require.Len(t, s.Fields, 2)
	assert.Equal(t, "name", s.Fields[0].Name)
	assert.Equal(t, "String", s.Fields[0].Type)
	assert.Equal(t, "count", s.Fields[1].Name)
	assert.Nil(t, s.PyClass)
}

func TestRustParser_PyClass(t *testing.T) {
	t.Parallel()

	module := parseRust(t, `
/// A Python class.
#[pyclass(name = "MyClass", module = "mylib")]
pub struct PyMyClass {
    value: i32,
}
`)

	s, ok := module.Items[0].(*model.RustStruct)
	require.True(t, ok)
	require.NotNil(t, s.PyClass)
	assert.Equal(t, "MyClass", s.PyClass.Name)
	assert.Equal(t, "mylib", s.PyClass.Module)
}

func TestRustParser_PyClassBare(t *testing.T) {
	t.Parallel()

	module := parseRust(t, `
#[pyclass]
pub struct Direct;
`)

	s, ok := module.Items[0].(*model.RustStruct)
	require.True(t, ok)
	require.NotNil(t, s.PyClass)
	assert.Empty(t, s.PyClass.Name)
}

func TestRustParser_Enum(t *testing.T) {
	t.Parallel()

	module := parseRust(t, `
/// Task status.
#[pyclass]
pub enum Status {
    Pending,
    Done,
}
`)

	e, ok := module.Items[0].(*model.RustEnum)
	require.True(t, ok)
	assert.Equal(t, "Status", e.Name)
	assert.Equal(t, []string{"Pending", "Done"}, e.Variants)
	assert.NotNil(t, e.PyClass)
}

func TestRustParser_Function(t *testing.T) {
	t.Parallel()

	source := "/// Adds two numbers.\n" +
		"///\n" +
		"/// # Arguments\n" +
		"///\n" +
		"/// * `a` - first\n" +
		"pub fn add(a: i64, b: i64) -> i64 {\n    a + b\n}\n"
	module := parseRust(t, source)

	fn, ok := module.Items[0].(*model.RustFunction)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, "i64", fn.ReturnType)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name)
	assert.Equal(t, "i64", fn.Params[0].Type)
	require.NotNil(t, fn.ParsedDoc)
	assert.Equal(t, "Adds two numbers.", fn.ParsedDoc.Summary)
}

func TestRustParser_PyFunction(t *testing.T) {
	t.Parallel()

	module := parseRust(t, `
#[pyfunction(name = "process")]
#[pyo3(signature = (data, batch_size=100))]
pub fn py_process(data: Vec<String>, batch_size: usize) -> PyResult<bool> {
    Ok(true)
}
`)

	fn, ok := module.Items[0].(*model.RustFunction)
	require.True(t, ok)
	require.NotNil(t, fn.PyFunction)
	assert.Equal(t, "process", fn.PyFunction.Name)
	assert.Equal(t, "(data, batch_size=100)", fn.PyFunction.Signature)
}

func TestRustParser_PyMethods(t *testing.T) {
	t.Parallel()

	module := parseRust(t, `
#[pymethods]
impl PyTask {
    /// Create a new task.
    #[new]
    fn new(name: &str) -> Self {
        Self {}
    }

    /// Run the task.
    fn run(&self, py: Python<'_>) -> PyResult<bool> {
        Ok(true)
    }
}
`)

	impl, ok := module.Items[0].(*model.RustImpl)
	require.True(t, ok)
	assert.True(t, impl.IsPyMethods)
	assert.Equal(t, "PyTask", impl.Target)
	require.Len(t, impl.Methods, 2)

	assert.Equal(t, "new", impl.Methods[0].Name)
	assert.Equal(t, "Create a new task.", impl.Methods[0].Doc)

	run := impl.Methods[1]
	assert.Equal(t, "run", run.Name)
	require.Len(t, run.Params, 2)
	assert.Equal(t, "self", run.Params[0].Name)
	assert.Equal(t, "&self", run.Params[0].Type)
	assert.Equal(t, "py", run.Params[1].Name)
}

func TestRustParser_PlainImpl(t *testing.T) {
	t.Parallel()

	module := parseRust(t, `
impl Helper {
    fn internal(&self) {}
}
`)

	impl, ok := module.Items[0].(*model.RustImpl)
	require.True(t, ok)
	assert.False(t, impl.IsPyMethods)
	assert.Len(t, impl.Methods, 1)
}

func TestRustParser_ModuleDoc(t *testing.T) {
	t.Parallel()

	module := parseRust(t, `//! Module documentation.
//!
//! More details here.

pub struct Foo;
`)

	assert.Equal(t, "Module documentation.\n\nMore details here.", module.Doc)
	require.NotNil(t, module.ParsedDoc)
	assert.Equal(t, "Module documentation.", module.ParsedDoc.Summary)
	assert.Equal(t, "More details here.", module.ParsedDoc.Description)
}

func TestRustParser_ConstAndTypeAlias(t *testing.T) {
	t.Parallel()

	module := parseRust(t, `
pub const MAX_RETRIES: u32 = 3;

pub type TaskId = u64;
`)

	require.Len(t, module.Items, 2)

	c, ok := module.Items[0].(*model.RustConst)
	require.True(t, ok)
	assert.Equal(t, "MAX_RETRIES", c.Name)
	assert.Equal(t, "u32", c.Type)
	assert.Equal(t, "3", c.Value)

	a, ok := module.Items[1].(*model.RustTypeAlias)
	require.True(t, ok)
	assert.Equal(t, "TaskId", a.Name)
	assert.Equal(t, "u64", a.Target)
}

func TestRustParser_Trait(t *testing.T) {
	t.Parallel()

	module := parseRust(t, `
pub trait Runner {
    /// Execute the runner.
    fn execute(&self) -> bool;
}
`)

	tr, ok := module.Items[0].(*model.RustTrait)
	require.True(t, ok)
	assert.Equal(t, "Runner", tr.Name)
	require.Len(t, tr.Methods, 1)
	assert.Equal(t, "execute", tr.Methods[0].Name)
	assert.Equal(t, "Execute the runner.", tr.Methods[0].Doc)
}

func TestRustParser_Empty(t *testing.T) {
	t.Parallel()

	module := parseRust(t, "")
	assert.Empty(t, module.Items)
	assert.Empty(t, module.Doc)
}
