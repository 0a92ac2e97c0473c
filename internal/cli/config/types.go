// Package config provides configuration management for the autoloader CLI.
package config

import (
	"time"

	"github.com/leapstack-labs/autoloader/internal/codegen"
	"github.com/leapstack-labs/autoloader/internal/engine"
)

// Config holds all CLI configuration options.
type Config struct {
	ProjectDir   string          `koanf:"project_dir" yaml:"project_dir"`
	Environment  string          `koanf:"environment" yaml:"environment"`
	Platform     string          `koanf:"platform" yaml:"platform"`
	OutputDir    string          `koanf:"output_dir" yaml:"output_dir"`
	Mode         string          `koanf:"mode" yaml:"mode"`
	License      bool            `koanf:"license" yaml:"license"`
	Entry        string          `koanf:"entry" yaml:"entry"`
	Filename     string          `koanf:"filename" yaml:"filename"`
	Framework    FrameworkConfig `koanf:"framework" yaml:"framework"`
	Watch        WatchConfig     `koanf:"watch" yaml:"watch"`
	Verbose      bool            `koanf:"verbose" yaml:"verbose"`
	LogLevel     string          `koanf:"log_level" yaml:"log_level"`
	OutputFormat string          `koanf:"output" yaml:"output"`
}

// FrameworkConfig names the type annotating the generated config module.
type FrameworkConfig struct {
	ContractType   string `koanf:"contract_type" yaml:"contract_type"`
	ContractImport string `koanf:"contract_import" yaml:"contract_import"`
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	Debounce time.Duration `koanf:"debounce" yaml:"debounce"`
	// Ignore lists extra paths, relative to the project, that never trigger
	// a rebuild.
	Ignore []string `koanf:"ignore" yaml:"ignore"`
}

// Default configuration values.
const (
	DefaultEnv       = engine.DefaultEnvironment
	DefaultPlatform  = engine.DefaultPlatform
	DefaultOutputDir = engine.DefaultOutputDir
	DefaultMode      = engine.ModeDevelopment
	DefaultEntry     = "src/index.ts"
	DefaultFilename  = engine.DefaultFilename
	DefaultLogLevel  = "info"
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultDebounce  = 100 * time.Millisecond
)

// Config file names, in lookup order.
var configFileNames = []string{"autoloader.yaml", "autoloader.yml"}

// Codegen returns the options of the generated config module.
func (c *Config) Codegen() codegen.Options {
	return codegen.Options{
		ContractType:   c.Framework.ContractType,
		ContractImport: c.Framework.ContractImport,
	}
}

// Production reports whether the build runs in production mode.
func (c *Config) Production() bool {
	return c.Mode == engine.ModeProduction
}
