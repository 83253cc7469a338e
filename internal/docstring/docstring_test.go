package docstring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Parse:
// - Empty and whitespace-only input yields an empty record
// - Summary-only docstrings parse to summary with no description
// - Blank line separates summary from description
// - Google Args section parses names, parenthesized types, continuations
// - Google Returns section with and without a leading type annotation
// - Google Raises section parses exception types and continuations
// - Google Examples split on blank lines but not inside code fences
// - NumPy underlined sections parse params, returns, raises
// - Style detection prefers NumPy underlines over Google markers
// - Duplicate parameter names keep only the last occurrence
// - Adversarial garbage never produces a malformed record

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	result := Parse("")
	assert.Empty(t, result.Summary)
	assert.Empty(t, result.Description)
	assert.Empty(t, result.Params)
	assert.Nil(t, result.Returns)

	result = Parse("   \n\t\n  ")
	assert.Empty(t, result.Summary)
	assert.Empty(t, result.Params)
}

func TestParse_SummaryOnly(t *testing.T) {
	t.Parallel()

	result := Parse("A simple summary.")

	assert.Equal(t, "A simple summary.", result.Summary)
	assert.Empty(t, result.Description)
	assert.Empty(t, result.Params)
}

func TestParse_SummaryAndDescription(t *testing.T) {
	t.Parallel()

	doc := "A short summary.\n\nThis is a longer description that spans\nmultiple lines and provides more detail."

	result := Parse(doc)

	assert.Equal(t, "A short summary.", result.Summary)
	assert.Equal(t, "This is a longer description that spans\nmultiple lines and provides more detail.", result.Description)
}

func TestParse_MultilineSummary(t *testing.T) {
	t.Parallel()

	// Contiguous leading lines join with spaces.
	result := Parse("First line\nsecond line.")

	assert.Equal(t, "First line second line.", result.Summary)
	assert.Empty(t, result.Description)
}

func TestParse_GoogleArgs(t *testing.T) {
	t.Parallel()

	doc := `Do something.

Args:
    name: The name of the thing.
    value (int): The value to use.
    optional: An optional parameter that
        spans multiple lines.
`

	result := Parse(doc)

	assert.Equal(t, "Do something.", result.Summary)
	require.Len(t, result.Params, 3)

	assert.Equal(t, "name", result.Params[0].Name)
	assert.Empty(t, result.Params[0].Type)
	assert.Equal(t, "The name of the thing.", result.Params[0].Description)

	assert.Equal(t, "value", result.Params[1].Name)
	assert.Equal(t, "int", result.Params[1].Type)
	assert.Equal(t, "The value to use.", result.Params[1].Description)

	assert.Equal(t, "optional", result.Params[2].Name)
	assert.Contains(t, result.Params[2].Description, "multiple lines")
}

func TestParse_GoogleReturns(t *testing.T) {
	t.Parallel()

	result := Parse("Calculate result.\n\nReturns:\n    The calculated result as an integer.\n")

	require.NotNil(t, result.Returns)
	assert.Empty(t, result.Returns.Type)
	assert.Contains(t, result.Returns.Description, "calculated result")
}

func TestParse_GoogleReturnsWithType(t *testing.T) {
	t.Parallel()

	result := Parse("Get value.\n\nReturns:\n    int: The integer value.\n")

	require.NotNil(t, result.Returns)
	assert.Equal(t, "int", result.Returns.Type)
	assert.Equal(t, "The integer value.", result.Returns.Description)
}

func TestParse_GoogleRaises(t *testing.T) {
	t.Parallel()

	doc := `Do dangerous thing.

Raises:
    ValueError: If the value is invalid.
    RuntimeError: If something goes wrong
        during execution.
`

	result := Parse(doc)

	require.Len(t, result.Raises, 2)
	assert.Equal(t, "ValueError", result.Raises[0].Type)
	assert.Contains(t, result.Raises[0].Description, "invalid")
	assert.Equal(t, "RuntimeError", result.Raises[1].Type)
	assert.Contains(t, result.Raises[1].Description, "execution")
}

func TestParse_GoogleExamples(t *testing.T) {
	t.Parallel()

	doc := `Do something.

Example:
    >>> x = do_something()
    >>> print(x)
    42
`

	result := Parse(doc)

	require.Len(t, result.Examples, 1)
	assert.Contains(t, result.Examples[0], ">>> x = do_something()")
}

func TestParse_GoogleExamplesCodeFence(t *testing.T) {
	t.Parallel()

	// Blank lines inside a code fence must not split the example.
	doc := "A data processing pipeline.\n\n" +
		"Example:\n" +
		"    ```python\n" +
		"    from bindings import Pipeline\n" +
		"\n" +
		"    pipeline = Pipeline(\"etl\")\n" +
		"\n" +
		"    result = pipeline.run()\n" +
		"    ```\n"

	result := Parse(doc)

	require.Len(t, result.Examples, 1)
	assert.Contains(t, result.Examples[0], "```python")
	assert.Contains(t, result.Examples[0], "Pipeline(\"etl\")")
	assert.Contains(t, result.Examples[0], "result = pipeline.run()")
}

func TestParse_GoogleFull(t *testing.T) {
	t.Parallel()

	doc := `Create a new task runner.

Args:
    max_parallel: Maximum number of concurrent tasks (default: 4).

Returns:
    A new Runner instance.

Raises:
    RuntimeError: If initialization fails.

Example:
    >>> runner = Runner(max_parallel=8)
`

	result := Parse(doc)

	assert.Equal(t, "Create a new task runner.", result.Summary)
	require.Len(t, result.Params, 1)
	assert.Equal(t, "max_parallel", result.Params[0].Name)
	require.NotNil(t, result.Returns)
	require.Len(t, result.Raises, 1)
	require.Len(t, result.Examples, 1)
}

// Literal worked example: Google style with typed params and returns.
func TestParse_GoogleTypedSum(t *testing.T) {
	t.Parallel()

	doc := "Calculate the sum.\n\nArgs:\n    a (int): First\n    b (int): Second\n\nReturns:\n    int: The sum"

	result := Parse(doc)

	assert.Equal(t, "Calculate the sum.", result.Summary)
	require.Len(t, result.Params, 2)
	assert.Equal(t, "a", result.Params[0].Name)
	assert.Equal(t, "int", result.Params[0].Type)
	assert.Equal(t, "First", result.Params[0].Description)
	assert.Equal(t, "b", result.Params[1].Name)
	assert.Equal(t, "int", result.Params[1].Type)
	assert.Equal(t, "Second", result.Params[1].Description)
	require.NotNil(t, result.Returns)
	assert.Equal(t, "int", result.Returns.Type)
	assert.Equal(t, "The sum", result.Returns.Description)
}

func TestParse_NumPyStyle(t *testing.T) {
	t.Parallel()

	doc := `Calculate the mean.

Parameters
----------
values : array-like
    The values to average.
weights : array-like, optional
    Optional weights.

Returns
-------
float
    The weighted mean.

Raises
------
ValueError
    If arrays have different lengths.
`

	result := Parse(doc)

	assert.Equal(t, "Calculate the mean.", result.Summary)

	require.Len(t, result.Params, 2)
	assert.Equal(t, "values", result.Params[0].Name)
	assert.Equal(t, "array-like", result.Params[0].Type)
	assert.Equal(t, "The values to average.", result.Params[0].Description)
	assert.Equal(t, "weights", result.Params[1].Name)

	require.NotNil(t, result.Returns)
	assert.Equal(t, "float", result.Returns.Type)
	assert.Equal(t, "The weighted mean.", result.Returns.Description)

	require.Len(t, result.Raises, 1)
	assert.Equal(t, "ValueError", result.Raises[0].Type)
	assert.Equal(t, "If arrays have different lengths.", result.Raises[0].Description)
}

func TestParse_DuplicateParamLastWins(t *testing.T) {
	t.Parallel()

	doc := `Do something.

Args:
    x (int): First mention.
    y: Another.
    x (str): Second mention.
`

	result := Parse(doc)

	require.Len(t, result.Params, 2)
	assert.Equal(t, "y", result.Params[0].Name)
	assert.Equal(t, "x", result.Params[1].Name)
	assert.Equal(t, "str", result.Params[1].Type)
	assert.Equal(t, "Second mention.", result.Params[1].Description)
}

func TestParse_AttributesSectionIgnored(t *testing.T) {
	t.Parallel()

	doc := `A task scheduler that runs tasks on configured schedules.

The scheduler supports both interval-based and cron-based scheduling.

Attributes:
    tasks: Dictionary of registered tasks by name.
    running: Whether the scheduler is currently running.

Example:
    >>> scheduler = Scheduler()
    >>> scheduler.run()`

	result := Parse(doc)

	assert.Contains(t, result.Summary, "task scheduler")
	assert.NotEmpty(t, result.Description)
	assert.Empty(t, result.Params)
	require.Len(t, result.Examples, 1)
}

func TestDetectStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want style
	}{
		{"google args", "Summary.\n\nArgs:\n    x: value", styleGoogle},
		{"google returns", "Summary.\n\nReturns:\n    value", styleGoogle},
		{"numpy underline", "Summary.\n\nParameters\n----------\nx : int", styleNumPy},
		{"numpy beats google", "Summary.\n\nReturns:\n    y\n\nParameters\n----------\nx : int", styleNumPy},
		{"plain", "Just a simple docstring.", stylePlain},
		{"marker not standalone", "Use Args: like this inline.", stylePlain},
		{"short underline is not a header", "Summary.\n\nParameters\n--\nx : int", stylePlain},
		{"underline without known title", "Summary.\n\nWhatever\n----------\n", stylePlain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, detectStyle(strings.Split(tt.doc, "\n")))
		})
	}
}

func TestParse_AdversarialInput(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Args:\nReturns:\nRaises:",
		":::::",
		"Args:\n    : no name\n    also no colon here",
		"Parameters\n----------",
		"```\nunclosed fence",
		"Returns:\n",
	}

	for _, doc := range inputs {
		result := Parse(doc)
		// Collections are well formed even for garbage.
		for _, p := range result.Params {
			assert.NotEmpty(t, p.Name)
		}
		for _, r := range result.Raises {
			assert.NotEmpty(t, r.Type)
		}
	}
}
