package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/crossdoc/internal/model"
)

// Test Plan for PythonParser:
// - Module, class and function docstrings extract, dedent and parse
// - Classes capture bases and methods, decorated definitions included
// - Function signatures rebuild from parameters and return annotations
// - Typed, defaulted and plain parameters all extract
// - Module-level assignments become variables, other statements are
//   ignored

func parsePython(t *testing.T, source string) *model.PythonModule {
	t.Helper()
	module, err := NewPythonParser().Parse([]byte(source), "mypackage")
	require.NoError(t, err)
	return module
}

func TestPythonParser_ModuleDocstring(t *testing.T) {
	t.Parallel()

	module := parsePython(t, `"""Package documentation.

More details here.
"""

VERSION = "1.0"
`)

	assert.Equal(t, "mypackage", module.Path)
	assert.Equal(t, model.SourceAuthored, module.Source)
	assert.Equal(t, "Package documentation.\n\nMore details here.", module.Doc)
	require.NotNil(t, module.ParsedDoc)
	assert.Equal(t, "Package documentation.", module.ParsedDoc.Summary)

	require.Len(t, module.Items, 1)
	v, ok := module.Items[0].(*model.PythonVariable)
	require.True(t, ok)
	assert.Equal(t, "VERSION", v.Name)
	assert.Equal(t, `"1.0"`, v.Value)
}

func TestPythonParser_Class(t *testing.T) {
	t.Parallel()

	module := parsePython(t, `class Task(Base):
    """A task.

    Args:
        name (str): Task name
    """

    def run(self, force: bool = False) -> bool:
        """Run the task."""
        return True
`)

	require.Len(t, module.Items, 1)
	class, ok := module.Items[0].(*model.PythonClass)
	require.True(t, ok)

	assert.Equal(t, "Task", class.Name)
	assert.Equal(t, []string{"Base"}, class.Bases)
	require.NotNil(t, class.ParsedDoc)
	assert.Equal(t, "A task.", class.ParsedDoc.Summary)
	require.Len(t, class.ParsedDoc.Params, 1)
	assert.Equal(t, "name", class.ParsedDoc.Params[0].Name)
	assert.Equal(t, "str", class.ParsedDoc.Params[0].Type)

	require.Len(t, class.Methods, 1)
	run := class.Methods[0]
	assert.Equal(t, "run", run.Name)
	assert.Equal(t, "def run(self, force: bool = False) -> bool", run.Signature)
	assert.Equal(t, "bool", run.ReturnType)
	require.NotNil(t, run.ParsedDoc)
	assert.Equal(t, "Run the task.", run.ParsedDoc.Summary)
}

func TestPythonParser_FunctionParams(t *testing.T) {
	t.Parallel()

	module := parsePython(t, `def process(data, count: int, batch: int = 10, name="x"):
    pass
`)

	fn, ok := module.Items[0].(*model.PythonFunction)
	require.True(t, ok)

	require.Len(t, fn.Params, 4)
	assert.Equal(t, model.PythonParam{Name: "data"}, fn.Params[0])
	assert.Equal(t, model.PythonParam{Name: "count", TypeHint: "int"}, fn.Params[1])
	assert.Equal(t, model.PythonParam{Name: "batch", TypeHint: "int", Default: "10"}, fn.Params[2])
	assert.Equal(t, model.PythonParam{Name: "name", Default: `"x"`}, fn.Params[3])
	assert.Equal(t, `def process(data, count: int, batch: int = 10, name="x")`, fn.Signature)
}

func TestPythonParser_DecoratedFunction(t *testing.T) {
	t.Parallel()

	module := parsePython(t, `@staticmethod
def helper():
    pass
`)

	fn, ok := module.Items[0].(*model.PythonFunction)
	require.True(t, ok)
	assert.Equal(t, "helper", fn.Name)
	assert.Equal(t, []string{"staticmethod"}, fn.Decorators)
}

func TestPythonParser_DecoratedMethod(t *testing.T) {
	t.Parallel()

	module := parsePython(t, `class Config:
    @property
    def name(self) -> str:
        return self._name
`)

	class, ok := module.Items[0].(*model.PythonClass)
	require.True(t, ok)
	require.Len(t, class.Methods, 1)
	assert.Equal(t, "name", class.Methods[0].Name)
	assert.Equal(t, []string{"property"}, class.Methods[0].Decorators)
}

func TestPythonParser_IgnoresOtherStatements(t *testing.T) {
	t.Parallel()

	module := parsePython(t, `import os

from typing import Any

print("side effect")

if True:
    x = 1
`)

	assert.Empty(t, module.Items)
}

func TestPythonParser_Empty(t *testing.T) {
	t.Parallel()

	module := parsePython(t, "")
	assert.Empty(t, module.Items)
	assert.Empty(t, module.Doc)
}

func TestCleanDocstring(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "One line.", cleanDocstring(`"""One line."""`))
	assert.Equal(t, "Raw string.", cleanDocstring(`r"""Raw string."""`))

	multi := "\"\"\"Summary line.\n\n    Indented body.\n        Deeper.\n    \"\"\""
	assert.Equal(t, "Summary line.\n\nIndented body.\n    Deeper.", cleanDocstring(multi))
}
