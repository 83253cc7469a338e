package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Discovery:
// - Rust sources map lib.rs, nested files and mod.rs to module paths,
//   skipping main.rs and bin targets
// - Python sources map __init__.py and nested files to dotted paths,
//   skipping underscore-prefixed files
// - Ignore patterns exclude files and whole directories
// - Results come back sorted by module path

func writeFiles(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("// source\n"), 0o644))
	}
}

func modulePaths(files []SourceFile) []string {
	var paths []string
	for _, f := range files {
		paths = append(paths, f.ModulePath)
	}
	return paths
}

func TestRustSources(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root,
		"src/lib.rs",
		"src/tasks.rs",
		"src/util/mod.rs",
		"src/util/strings.rs",
		"src/main.rs",
		"src/bin/tool.rs",
	)

	d, err := New(nil)
	require.NoError(t, err)

	files, err := d.RustSources(root, "mycrate")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"mycrate",
		"mycrate::tasks",
		"mycrate::util",
		"mycrate::util::strings",
	}, modulePaths(files))
}

func TestPythonSources(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root,
		"mypackage/__init__.py",
		"mypackage/tasks.py",
		"mypackage/sub/__init__.py",
		"mypackage/sub/helpers.py",
		"mypackage/_internal.py",
	)

	d, err := New(nil)
	require.NoError(t, err)

	files, err := d.PythonSources(root, "mypackage")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"mypackage",
		"mypackage.sub",
		"mypackage.sub.helpers",
		"mypackage.tasks",
	}, modulePaths(files))
}

func TestIgnorePatterns(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root,
		"src/lib.rs",
		"src/generated/schema.rs",
		"src/legacy.rs",
	)

	d, err := New([]string{"generated/**", "legacy.rs"})
	require.NoError(t, err)

	files, err := d.RustSources(root, "mycrate")
	require.NoError(t, err)

	assert.Equal(t, []string{"mycrate"}, modulePaths(files))
}

func TestIgnoreInvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := New([]string{"["})
	assert.Error(t, err)
}

func TestRustModulePath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "mycrate", rustModulePath("mycrate", "lib.rs"))
	assert.Equal(t, "mycrate::tasks", rustModulePath("mycrate", "tasks.rs"))
	assert.Equal(t, "mycrate::util", rustModulePath("mycrate", "util/mod.rs"))
	assert.Equal(t, "mycrate::a::b", rustModulePath("mycrate", "a/b.rs"))
}

func TestPythonModulePath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "mypackage", pythonModulePath("mypackage", "__init__.py"))
	assert.Equal(t, "mypackage.tasks", pythonModulePath("mypackage", "tasks.py"))
	assert.Equal(t, "mypackage.sub", pythonModulePath("mypackage", "sub/__init__.py"))
	assert.Equal(t, "mypackage.sub.helpers", pythonModulePath("mypackage", "sub/helpers.py"))
}
