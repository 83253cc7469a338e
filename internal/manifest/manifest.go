// Package manifest reads Cargo.toml and pyproject.toml to fill in
// configuration values the user did not set explicitly.
package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/mvp-joe/crossdoc/internal/config"
)

// CargoManifest is the subset of Cargo.toml crossdoc reads.
type CargoManifest struct {
	Package struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
	Lib struct {
		Name string `toml:"name"`
	} `toml:"lib"`
}

// PyProject is the subset of pyproject.toml crossdoc reads.
type PyProject struct {
	Project struct {
		Name    string   `toml:"name"`
		Version string   `toml:"version"`
		Authors []Author `toml:"authors"`
	} `toml:"project"`
}

// Author is a pyproject author table entry.
type Author struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

// ReadCargo parses the Cargo.toml in the given crate directory.
func ReadCargo(crateDir string) (*CargoManifest, error) {
	path := filepath.Join(crateDir, "Cargo.toml")

	var m CargoManifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &m, nil
}

// ReadPyProject parses the pyproject.toml in the given directory.
func ReadPyProject(dir string) (*PyProject, error) {
	path := filepath.Join(dir, "pyproject.toml")

	var p PyProject
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &p, nil
}

// LibName returns the name the crate exposes as a library: the [lib]
// name if set, otherwise the package name with dashes replaced.
func (m *CargoManifest) LibName() string {
	if m.Lib.Name != "" {
		return m.Lib.Name
	}
	return importName(m.Package.Name)
}

// ApplyDefaults fills empty configuration fields from the manifests
// found under rootDir. Missing manifest files are not an error; fields
// that cannot be inferred stay empty.
func ApplyDefaults(cfg *config.Config, rootDir string) error {
	if cfg.Rust.EntryPoint == "" && len(cfg.Rust.Crates) > 0 {
		crateDir := filepath.Join(rootDir, cfg.Rust.Crates[0])
		cargo, err := ReadCargo(crateDir)
		switch {
		case err == nil:
			cfg.Rust.EntryPoint = cargo.LibName()
			if cfg.Project.Version == "" {
				cfg.Project.Version = cargo.Package.Version
			}
		case !isNotExist(err):
			return err
		}
	}

	py, err := ReadPyProject(rootDir)
	switch {
	case err == nil:
		if cfg.Python.Package == "" {
			cfg.Python.Package = importName(py.Project.Name)
		}
		if cfg.Project.Name == "" {
			cfg.Project.Name = py.Project.Name
		}
		if cfg.Project.Version == "" {
			cfg.Project.Version = py.Project.Version
		}
		if len(cfg.Project.Authors) == 0 {
			for _, author := range py.Project.Authors {
				cfg.Project.Authors = append(cfg.Project.Authors, author.Name)
			}
		}
	case !isNotExist(err):
		return err
	}

	if cfg.Project.Name == "" {
		cfg.Project.Name = cfg.Python.Package
	}

	return nil
}

// importName converts a distribution name to the importable module
// name, e.g. "my-lib" imports as "my_lib".
func importName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
