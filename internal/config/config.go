package config

// Config represents the complete crossdoc configuration.
// It can be loaded from crossdoc.toml with environment variable overrides.
type Config struct {
	Project ProjectConfig `toml:"project" mapstructure:"project"`
	Output  OutputConfig  `toml:"output" mapstructure:"output"`
	Rust    RustConfig    `toml:"rust" mapstructure:"rust"`
	Python  PythonConfig  `toml:"python" mapstructure:"python"`
	Ignore  []string      `toml:"ignore" mapstructure:"ignore"` // glob patterns excluded from discovery
}

// ProjectConfig names the documented project.
type ProjectConfig struct {
	Name    string   `toml:"name" mapstructure:"name"`
	Version string   `toml:"version" mapstructure:"version"`
	Authors []string `toml:"authors" mapstructure:"authors"`
}

// OutputConfig defines where and how pages are written.
type OutputConfig struct {
	Format string `toml:"format" mapstructure:"format"` // "mkdocs" or "mdbook"
	Path   string `toml:"path" mapstructure:"path"`     // site root directory
	Layout string `toml:"layout" mapstructure:"layout"` // "per-module" or "per-item"
}

// RustConfig locates the Rust side of the project.
type RustConfig struct {
	Crates     []string `toml:"crates" mapstructure:"crates"`           // crate directories containing Cargo.toml
	EntryPoint string   `toml:"entry_point" mapstructure:"entry_point"` // crate exposed to Python
}

// PythonConfig locates the Python side of the project.
type PythonConfig struct {
	Package string `toml:"package" mapstructure:"package"` // importable package name
	Source  string `toml:"source" mapstructure:"source"`   // directory containing the package

	// Modules overrides how a module path is sourced: "pyo3" synthesizes
	// it from the Rust bindings, "python" documents the authored file.
	Modules map[string]string `toml:"modules" mapstructure:"modules"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format: "mkdocs",
			Path:   "docs-site",
			Layout: "per-module",
		},
		Rust: RustConfig{
			Crates: []string{"."},
		},
		Python: PythonConfig{
			Source:  ".",
			Modules: map[string]string{},
		},
		Ignore: []string{
			"target/**",
			"__pycache__/**",
			".git/**",
			"node_modules/**",
			"*.pyc",
		},
	}
}
