package layout

import (
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for PageLayout and RelativeLink:
// - Module and item pages resolve under rust/ and python/ for both
//   layout conventions
// - Per-module pages carry kind-qualified anchors, per-item pages do not
// - Anchors lowercase the kind and name and normalize spaces to hyphens
// - RelativeLink climbs exactly the source page's directory depth
// - Round-trip property: resolving a link and re-joining it against the
//   source directory recovers the target path, under each layout

func TestRustModulePage(t *testing.T) {
	t.Parallel()

	perModule := New(PerModule)
	assert.Equal(t, "rust/mycrate.md", perModule.RustModulePage("mycrate").Path)
	assert.Equal(t, "rust/mycrate/sub.md", perModule.RustModulePage("mycrate::sub").Path)

	perItem := New(PerItem)
	assert.Equal(t, "rust/mycrate/index.md", perItem.RustModulePage("mycrate").Path)
	assert.Equal(t, "rust/mycrate/sub/index.md", perItem.RustModulePage("mycrate::sub").Path)
}

func TestRustItemPage(t *testing.T) {
	t.Parallel()

	page := New(PerModule).RustItemPage("mycrate::tasks", "struct", "Task")
	assert.Equal(t, "rust/mycrate/tasks.md", page.Path)
	assert.Equal(t, "struct-task", page.Anchor)

	page = New(PerItem).RustItemPage("mycrate::tasks", "struct", "Task")
	assert.Equal(t, "rust/mycrate/tasks/Task.md", page.Path)
	assert.Empty(t, page.Anchor)
}

func TestPythonModulePage(t *testing.T) {
	t.Parallel()

	perModule := New(PerModule)
	assert.Equal(t, "python/mypackage.md", perModule.PythonModulePage("mypackage").Path)
	assert.Equal(t, "python/mypackage/sub.md", perModule.PythonModulePage("mypackage.sub").Path)

	perItem := New(PerItem)
	assert.Equal(t, "python/mypackage/index.md", perItem.PythonModulePage("mypackage").Path)
}

func TestPythonItemPage(t *testing.T) {
	t.Parallel()

	page := New(PerModule).PythonItemPage("mypackage.sub", "class", "Task")
	assert.Equal(t, "python/mypackage/sub.md", page.Path)
	assert.Equal(t, "class-task", page.Anchor)

	page = New(PerItem).PythonItemPage("mypackage.sub", "class", "Task")
	assert.Equal(t, "python/mypackage/sub/Task.md", page.Path)
	assert.Empty(t, page.Anchor)
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, PerItem, ParseMode("per-item"))
	assert.Equal(t, PerModule, ParseMode("per-module"))
	assert.Equal(t, PerModule, ParseMode(""))
	assert.Equal(t, PerModule, ParseMode("bogus"))
}

func TestAnchor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "struct-task", Anchor("struct", "Task"))
	assert.Equal(t, "fn-create_task", Anchor("fn", "create_task"))
	assert.Equal(t, "class-myclass", Anchor("class", "MyClass"))
	assert.Equal(t, "typealias-task-id", Anchor("typealias", "Task Id"))
}

func TestRelativeLink(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		from string
		to   string
		want string
	}{
		{"root to root", "index.md", "about.md", "./about.md"},
		{"one deep", "rust/mycrate.md", "python/mypackage.md", "../python/mypackage.md"},
		{"two deep", "rust/mycrate/sub.md", "python/mypackage.md", "../../python/mypackage.md"},
		{"three deep", "rust/mycrate/sub/deep.md", "python/mypackage/sub.md", "../../../python/mypackage/sub.md"},
		{"sibling", "rust/mycrate.md", "rust/other.md", "../rust/other.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, RelativeLink(tt.from, tt.to))
		})
	}
}

func TestLinkTo(t *testing.T) {
	t.Parallel()

	to := Page{Path: "python/mypackage.md", Anchor: "class-task"}
	assert.Equal(t, "../python/mypackage.md#class-task", LinkTo("rust/mycrate.md", to))

	to = Page{Path: "rust/mycrate/tasks/Task.md"}
	assert.Equal(t, "../rust/mycrate/tasks/Task.md", LinkTo("python/mypackage.md", to))
}

// resolve interprets a relative link against the source page's
// directory, the way a browser or Markdown renderer would.
func resolve(fromPage, link string) string {
	resolved := path.Join(path.Dir(fromPage), link)
	return strings.TrimPrefix(path.Clean(resolved), "./")
}

func TestRelativeLink_RoundTrip(t *testing.T) {
	t.Parallel()

	rustModules := []string{"mycrate", "mycrate::tasks", "mycrate::tasks::deep"}
	pythonModules := []string{"mypackage", "mypackage.tasks", "mypackage.tasks.deep"}

	for _, mode := range []Mode{PerModule, PerItem} {
		l := New(mode)

		var pages []string
		for _, m := range rustModules {
			pages = append(pages, l.RustModulePage(m).Path)
			pages = append(pages, l.RustItemPage(m, "struct", "Task").Path)
			pages = append(pages, l.RustItemPage(m, "fn", "create_task").Path)
		}
		for _, m := range pythonModules {
			pages = append(pages, l.PythonModulePage(m).Path)
			pages = append(pages, l.PythonItemPage(m, "class", "Task").Path)
		}

		for _, from := range pages {
			for _, to := range pages {
				link := RelativeLink(from, to)
				require.Equal(t, to, resolve(from, link),
					"mode %s: link %s -> %s resolved through %q", mode, from, to, link)
			}
		}
	}
}
