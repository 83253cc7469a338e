// Package discovery locates Rust and Python source files and maps each
// file to the logical module path it defines.
package discovery

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// SourceFile pairs a file path on disk with the logical module path the
// file defines ("::"-scoped for Rust, dotted for Python).
type SourceFile struct {
	Path       string
	ModulePath string
}

// Discovery walks source trees applying ignore rules.
type Discovery struct {
	ignorePatterns []compiledPattern
}

// New creates a Discovery with the given ignore glob patterns.
func New(ignorePatterns []string) (*Discovery, error) {
	d := &Discovery{}

	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		d.ignorePatterns = append(d.ignorePatterns, compiledPattern{pattern: pattern, glob: g})
	}

	return d, nil
}

// RustSources walks crateDir/src and returns every .rs file with its
// module path under crateName. lib.rs maps to the crate root, foo.rs and
// foo/mod.rs map to crateName::foo. main.rs and bin targets are skipped.
func (d *Discovery) RustSources(crateDir, crateName string) ([]SourceFile, error) {
	srcDir := filepath.Join(crateDir, "src")

	var files []SourceFile
	err := filepath.WalkDir(srcDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(path, ".rs") {
			return nil
		}

		relPath, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if d.shouldIgnore(relPath) {
			return nil
		}
		if relPath == "main.rs" || strings.HasPrefix(relPath, "bin/") {
			return nil
		}

		files = append(files, SourceFile{
			Path:       path,
			ModulePath: rustModulePath(crateName, relPath),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortByModulePath(files)
	return files, nil
}

// PythonSources walks sourceDir and returns every .py file under the
// package directory with its dotted module path. Underscore-prefixed
// files other than __init__.py are skipped.
func (d *Discovery) PythonSources(sourceDir, packageName string) ([]SourceFile, error) {
	packageDir := filepath.Join(sourceDir, packageName)

	var files []SourceFile
	err := filepath.WalkDir(packageDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(path, ".py") {
			return nil
		}

		relPath, err := filepath.Rel(packageDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if d.shouldIgnore(relPath) {
			return nil
		}
		base := filepath.Base(relPath)
		if strings.HasPrefix(base, "_") && base != "__init__.py" {
			return nil
		}

		files = append(files, SourceFile{
			Path:       path,
			ModulePath: pythonModulePath(packageName, relPath),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortByModulePath(files)
	return files, nil
}

// shouldIgnore checks if a path matches any ignore pattern.
func (d *Discovery) shouldIgnore(relPath string) bool {
	for _, cp := range d.ignorePatterns {
		if cp.glob.Match(relPath) {
			return true
		}
	}

	// A directory prefix like "generated" should also match a pattern
	// written as "generated/**".
	return d.matchesWithSuffix(relPath)
}

func (d *Discovery) matchesWithSuffix(relPath string) bool {
	pathWithSuffix := relPath + "/**"
	for _, cp := range d.ignorePatterns {
		if cp.glob.Match(pathWithSuffix) {
			return true
		}
	}
	return false
}

// rustModulePath converts a path relative to src/ into a "::"-scoped
// module path under the crate name.
func rustModulePath(crateName, relPath string) string {
	relPath = strings.TrimSuffix(relPath, ".rs")

	switch {
	case relPath == "lib":
		return crateName
	case strings.HasSuffix(relPath, "/mod"):
		relPath = strings.TrimSuffix(relPath, "/mod")
	}

	return crateName + "::" + strings.ReplaceAll(relPath, "/", "::")
}

// pythonModulePath converts a path relative to the package directory
// into a dotted module path under the package name.
func pythonModulePath(packageName, relPath string) string {
	relPath = strings.TrimSuffix(relPath, ".py")

	if relPath == "__init__" {
		return packageName
	}
	relPath = strings.TrimSuffix(relPath, "/__init__")

	return packageName + "." + strings.ReplaceAll(relPath, "/", ".")
}

func sortByModulePath(files []SourceFile) {
	sort.Slice(files, func(i, j int) bool {
		return files[i].ModulePath < files[j].ModulePath
	})
}
