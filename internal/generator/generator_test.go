package generator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/crossdoc/internal/config"
)

// Test Plan for Generator:
// - A mixed Rust/Python project generates pages for both namespaces,
//   synthesizing the binding module from the PyO3 annotations
// - Authored Python items win over synthesized duplicates
// - mkdocs output writes pages plus the nav snippet under docs/
// - mdbook output writes SUMMARY.md under src/ and book.toml
// - Cancellation stops the pipeline

const libSource = `//! Native task engine.

/// A schedulable task.
#[pyclass(name = "Task")]
pub struct PyTask {
    name: String,
}

#[pymethods]
impl PyTask {
    /// Run the task.
    fn run(&self) -> PyResult<bool> {
        Ok(true)
    }
}

/// Count pending tasks.
#[pyfunction]
pub fn pending_count() -> usize {
    0
}
`

const initSource = `"""Task engine bindings."""

VERSION = "1.0"
`

func projectDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte("[package]\nname = \"mylib\"\nversion = \"1.0.0\"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "lib.rs"), []byte(libSource), 0o644))

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "mylib"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mylib", "__init__.py"), []byte(initSource), 0o644))

	return dir
}

func projectConfig() *config.Config {
	cfg := config.Default()
	cfg.Project.Name = "My Lib"
	cfg.Rust.EntryPoint = "mylib"
	cfg.Python.Package = "mylib"
	cfg.Python.Modules = map[string]string{"mylib": "pyo3"}
	return cfg
}

func readPage(t *testing.T, dir string, parts ...string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(dir, filepath.Join(parts...)))
	require.NoError(t, err)
	return string(content)
}

func TestGenerate_MkDocs(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	cfg := projectConfig()

	stats, err := New(cfg, dir, nil).Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.RustModules)
	assert.Equal(t, 1, stats.PythonModules)
	assert.Equal(t, 2, stats.CrossRefs)
	assert.Equal(t, 3, stats.PagesWritten)

	pythonPage := readPage(t, dir, "docs-site", "docs", "python", "mylib.md")
	assert.Contains(t, pythonPage, "# mylib")
	assert.Contains(t, pythonPage, "### `class Task`")
	assert.Contains(t, pythonPage, "#### `method run`")
	assert.Contains(t, pythonPage, "### `function pending_count`")
	assert.Contains(t, pythonPage, "`VERSION`")
	assert.Contains(t, pythonPage, "> **Rust Implementation**:")

	rustPage := readPage(t, dir, "docs-site", "docs", "rust", "mylib.md")
	assert.Contains(t, rustPage, "Native task engine.")
	assert.Contains(t, rustPage, "### `struct PyTask`")
	assert.Contains(t, rustPage, "> **Python API**:")

	nav := readPage(t, dir, "docs-site", "docs", "_nav.yml")
	assert.Contains(t, nav, "mylib: python/mylib.md")
	assert.Contains(t, nav, "mylib: rust/mylib.md")
}

func TestGenerate_MdBook(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	cfg := projectConfig()
	cfg.Output.Format = "mdbook"

	_, err := New(cfg, dir, nil).Generate(context.Background())
	require.NoError(t, err)

	summary := readPage(t, dir, "docs-site", "src", "SUMMARY.md")
	assert.Contains(t, summary, "# Summary")
	assert.Contains(t, summary, "[mylib](python/mylib.md)")

	book := readPage(t, dir, "docs-site", "book.toml")
	assert.Contains(t, book, `title = "My Lib"`)
}

func TestGenerate_AuthoredWins(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	authored := `"""Task engine bindings."""

def pending_count() -> int:
    """Authored description of pending_count."""
    return 0
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mylib", "__init__.py"), []byte(authored), 0o644))

	cfg := projectConfig()
	_, err := New(cfg, dir, nil).Generate(context.Background())
	require.NoError(t, err)

	pythonPage := readPage(t, dir, "docs-site", "docs", "python", "mylib.md")
	assert.Contains(t, pythonPage, "Authored description of pending_count.")
}

func TestGenerate_RustOnly(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	require.NoError(t, os.RemoveAll(filepath.Join(dir, "mylib")))

	cfg := projectConfig()

	stats, err := New(cfg, dir, nil).Generate(context.Background())
	require.NoError(t, err)

	// The binding module is synthesized even without authored sources.
	assert.Equal(t, 1, stats.PythonModules)
}

func TestGenerate_Cancelled(t *testing.T) {
	t.Parallel()

	dir := projectDir(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(projectConfig(), dir, nil).Generate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCrateNameFallbacks(t *testing.T) {
	t.Parallel()

	cfg := projectConfig()
	g := New(cfg, t.TempDir(), nil)
	assert.Equal(t, "mylib", g.crateName("missing-dir"))

	cfg2 := projectConfig()
	cfg2.Rust.EntryPoint = ""
	g2 := New(cfg2, t.TempDir(), nil)
	assert.Equal(t, "my_crate", g2.crateName("/tmp/does-not-exist/my-crate"))
}
