package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
	cfgFile string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// NewFileLoader creates a loader reading a specific config file instead
// of searching the root directory.
func NewFileLoader(cfgFile string) Loader {
	return &loader{
		cfgFile: cfgFile,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (CROSSDOC_*)
// 2. Config file (crossdoc.toml in the root directory)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.cfgFile != "" {
		v.SetConfigFile(l.cfgFile)
	} else {
		v.SetConfigName("crossdoc")
		v.SetConfigType("toml")
		v.AddConfigPath(l.rootDir)
	}

	// Enable environment variable overrides
	v.SetEnvPrefix("CROSSDOC")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., CROSSDOC_OUTPUT_FORMAT)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("project.name")
	v.BindEnv("project.version")

	v.BindEnv("output.format")
	v.BindEnv("output.path")
	v.BindEnv("output.layout")

	v.BindEnv("rust.entry_point")

	v.BindEnv("python.package")
	v.BindEnv("python.source")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.path", defaults.Output.Path)
	v.SetDefault("output.layout", defaults.Output.Layout)

	v.SetDefault("rust.crates", defaults.Rust.Crates)

	v.SetDefault("python.source", defaults.Python.Source)

	v.SetDefault("ignore", defaults.Ignore)
}

// LoadFromDir loads configuration from a specific directory.
func LoadFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
