// Package engine provides the autoloader build step.
// It merges the application config, scans src/, classifies exported classes
// and emits the generated Config and Packages modules, skipping writes whose
// content did not change since the previous step of the same Engine.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/leapstack-labs/autoloader/internal/codegen"
	"github.com/leapstack-labs/autoloader/internal/license"
	"github.com/leapstack-labs/autoloader/internal/scaffold"
)

// Build modes.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// Defaults applied by New.
const (
	DefaultEnvironment = "local"
	DefaultPlatform    = "web"
	DefaultOutputDir   = "dist"
	DefaultFilename    = "app.js"
)

// LocalEnvironment is the environment that gets an index.html scaffold.
const LocalEnvironment = "local"

// Step is a build step driven by a host pipeline. Calls are serialized by
// the host; a Step is never invoked concurrently.
type Step interface {
	// BeforeCompile regenerates the sources the compilation depends on.
	BeforeCompile() error
	// AfterEmit runs once the host has written its output.
	AfterEmit() error
}

// Engine is the autoloader build step.
type Engine struct {
	projectDir  string
	environment string
	platform    string
	outputDir   string
	filename    string
	mode        string
	keepLicense bool

	// cache is owned by the engine: empty at construction, updated after
	// each successful write, dropped with the engine.
	cache   *codegen.CacheState
	emitter *codegen.Emitter

	logger *slog.Logger
}

var _ Step = (*Engine)(nil)

// Config holds engine configuration.
type Config struct {
	// ProjectDir is the directory containing src/ (required)
	ProjectDir string
	// Environment selects the config.json overlay (default "local")
	Environment string
	// Platform seeds the platform field of the merged config (default "web")
	Platform string
	// OutputDir is where the host writes the bundle (default ProjectDir/dist)
	OutputDir string
	// Filename is the bundle file name inside OutputDir (default "app.js")
	Filename string
	// Mode is development or production (default development)
	Mode string
	// KeepLicense disables license file cleanup after production emits
	KeepLicense bool
	// Codegen customizes the generated config module
	Codegen codegen.Options
	// Writer persists generated files (optional, writes to disk if nil)
	Writer codegen.FileWriter
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates an engine.
func New(cfg Config) (*Engine, error) {
	if cfg.ProjectDir == "" {
		return nil, errors.New("project directory is required")
	}
	projectDir, err := filepath.Abs(cfg.ProjectDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project directory: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	mode := cfg.Mode
	switch mode {
	case "":
		mode = ModeDevelopment
	case ModeDevelopment, ModeProduction:
	default:
		return nil, fmt.Errorf("unknown mode %q (expected %s or %s)", mode, ModeDevelopment, ModeProduction)
	}

	outputDir := cfg.OutputDir
	if outputDir == "" {
		outputDir = filepath.Join(projectDir, DefaultOutputDir)
	} else if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(projectDir, outputDir)
	}

	cache := codegen.NewCacheState()
	e := &Engine{
		projectDir:  projectDir,
		environment: valueOr(cfg.Environment, DefaultEnvironment),
		platform:    valueOr(cfg.Platform, DefaultPlatform),
		outputDir:   outputDir,
		filename:    valueOr(cfg.Filename, DefaultFilename),
		mode:        mode,
		keepLicense: cfg.KeepLicense,
		cache:       cache,
		emitter: codegen.NewEmitter(codegen.Config{
			ProjectDir: projectDir,
			Options:    cfg.Codegen,
			State:      cache,
			Writer:     cfg.Writer,
			Logger:     logger,
		}),
		logger: logger,
	}

	logger.Debug("initializing engine",
		"project_dir", e.projectDir,
		"environment", e.environment,
		"platform", e.platform,
		"mode", e.mode)

	return e, nil
}

// ProjectDir returns the absolute project directory.
func (e *Engine) ProjectDir() string { return e.projectDir }

// SourceDir returns the scanned source directory.
func (e *Engine) SourceDir() string { return filepath.Join(e.projectDir, "src") }

// OutputDir returns the absolute output directory.
func (e *Engine) OutputDir() string { return e.outputDir }

// Filename returns the bundle file name.
func (e *Engine) Filename() string { return e.filename }

// Environment returns the selected environment.
func (e *Engine) Environment() string { return e.environment }

// Mode returns the build mode.
func (e *Engine) Mode() string { return e.mode }

// Prepare runs the one-time setup performed when the step is attached to a
// pipeline: in the local environment it writes an index.html scaffold into
// the output directory if none exists.
func (e *Engine) Prepare() (bool, error) {
	if e.environment != LocalEnvironment {
		return false, nil
	}

	written, err := scaffold.EnsureIndexHTML(e.outputDir, e.environment, e.filename)
	if err != nil {
		return false, err
	}
	if written {
		e.logger.Info("wrote index scaffold", "path", filepath.Join(e.outputDir, scaffold.IndexFile))
	}
	return written, nil
}

// BeforeCompile implements Step.
func (e *Engine) BeforeCompile() error {
	_, err := e.Generate()
	return err
}

// AfterEmit implements Step. In production mode it removes the license
// files emitted next to the bundle unless they are kept.
func (e *Engine) AfterEmit() error {
	if e.mode != ModeProduction {
		return nil
	}

	removed, err := license.Cleanup(e.outputDir, e.filename, e.keepLicense)
	if err != nil {
		return err
	}
	for _, path := range removed {
		e.logger.Info("removed license file", "path", path)
	}
	return nil
}

func valueOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
