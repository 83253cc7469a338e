package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidFormat indicates an unsupported output format
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrInvalidLayout indicates an unsupported output layout
	ErrInvalidLayout = errors.New("invalid output layout")

	// ErrEmptyOutputPath indicates a missing output path
	ErrEmptyOutputPath = errors.New("empty output path")

	// ErrEmptyCrates indicates no crate directories are configured
	ErrEmptyCrates = errors.New("no crates configured")

	// ErrInvalidModuleSource indicates an unknown module source override
	ErrInvalidModuleSource = errors.New("invalid module source")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateOutput(&cfg.Output); err != nil {
		errs = append(errs, err)
	}

	if err := validateRust(&cfg.Rust); err != nil {
		errs = append(errs, err)
	}

	if err := validatePython(&cfg.Python); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// Warnings reports non-fatal configuration problems. Generation can
// proceed, but results may be incomplete.
func Warnings(cfg *Config) []string {
	var warnings []string

	if strings.TrimSpace(cfg.Rust.EntryPoint) == "" {
		warnings = append(warnings, "rust.entry_point is not set; it will be inferred from Cargo.toml")
	}
	if strings.TrimSpace(cfg.Python.Package) == "" {
		warnings = append(warnings, "python.package is not set; it will be inferred from pyproject.toml")
	}
	if strings.TrimSpace(cfg.Project.Name) == "" {
		warnings = append(warnings, "project.name is not set; the site title will use the package name")
	}

	return warnings
}

func validateOutput(cfg *OutputConfig) error {
	var errs []error

	format := strings.ToLower(cfg.Format)
	if format != "mkdocs" && format != "mdbook" {
		errs = append(errs, fmt.Errorf("%w: must be 'mkdocs' or 'mdbook', got '%s'", ErrInvalidFormat, cfg.Format))
	}

	layout := strings.ToLower(cfg.Layout)
	if layout != "per-module" && layout != "per-item" {
		errs = append(errs, fmt.Errorf("%w: must be 'per-module' or 'per-item', got '%s'", ErrInvalidLayout, cfg.Layout))
	}

	if strings.TrimSpace(cfg.Path) == "" {
		errs = append(errs, fmt.Errorf("%w: output path is required", ErrEmptyOutputPath))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateRust(cfg *RustConfig) error {
	if len(cfg.Crates) == 0 {
		return fmt.Errorf("%w: at least one crate directory required", ErrEmptyCrates)
	}
	return nil
}

func validatePython(cfg *PythonConfig) error {
	var errs []error

	for module, source := range cfg.Modules {
		if source != "pyo3" && source != "python" {
			errs = append(errs, fmt.Errorf("%w: module %s must be 'pyo3' or 'python', got '%s'", ErrInvalidModuleSource, module, source))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
