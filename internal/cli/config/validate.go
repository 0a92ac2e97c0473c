package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/autoloader/internal/engine"
)

var validOutputs = []string{"auto", "text", "markdown", "json"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Platform == "" {
		return fmt.Errorf("platform is required")
	}
	if c.Mode != engine.ModeDevelopment && c.Mode != engine.ModeProduction {
		return fmt.Errorf("invalid mode %q: expected %s or %s", c.Mode, engine.ModeDevelopment, engine.ModeProduction)
	}
	if c.Filename == "" || strings.ContainsAny(c.Filename, `/\`) {
		return fmt.Errorf("invalid filename %q: expected a bare file name", c.Filename)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if c.OutputFormat != "" && !contains(validOutputs, c.OutputFormat) {
		return fmt.Errorf("invalid output format %q: expected one of %s", c.OutputFormat, strings.Join(validOutputs, ", "))
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	return nil
}

// ValidateDirectories checks if required directories exist.
func (c *Config) ValidateDirectories() error {
	src := filepath.Join(c.ProjectDir, "src")
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return fmt.Errorf("source directory does not exist: %s\nHint: run 'autoloader init' or use --project-dir to point at an existing project", src)
	}
	return nil
}

// ParseLogLevel maps debug, info, warn or error to a slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: expected debug, info, warn or error", s)
	}
	return level, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
