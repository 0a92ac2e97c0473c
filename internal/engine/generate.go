package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/leapstack-labs/autoloader/internal/appconfig"
	"github.com/leapstack-labs/autoloader/internal/registry"
	"github.com/leapstack-labs/autoloader/internal/scan"
)

// Result contains statistics about one build step.
type Result struct {
	StepID string

	// Scan
	FilesScanned int
	Views        int
	Models       int
	Collisions   []string

	// Emit
	ConfigPath      string
	PackagesPath    string
	ConfigWritten   bool
	PackagesWritten bool

	Registry *registry.Registry
	Duration time.Duration
}

// Summary returns a one-line description of the step.
func (r *Result) Summary() string {
	return fmt.Sprintf("Files: %d scanned | Views: %d | Models: %d | Config: %s | Packages: %s | Duration: %s",
		r.FilesScanned, r.Views, r.Models,
		writtenLabel(r.ConfigWritten), writtenLabel(r.PackagesWritten),
		r.Duration.Round(time.Millisecond))
}

func writtenLabel(written bool) string {
	if written {
		return "written"
	}
	return "unchanged"
}

// Generate runs the whole pipeline once: merge config, scan src/, build the
// registry and emit both modules through the cache gate. Any failure aborts
// the step before the failing stage writes anything.
func (e *Engine) Generate() (*Result, error) {
	start := time.Now()
	result := &Result{StepID: uuid.New().String()}
	logger := e.logger.With("step_id", result.StepID)

	logger.Info("starting build step", "project_dir", e.projectDir, "environment", e.environment)

	// 1. Merge config.json, stage.json, routing.json
	doc, err := appconfig.MergeWithLogger(e.projectDir, e.environment, e.platform, logger)
	if err != nil {
		return nil, fmt.Errorf("config merge failed: %w", err)
	}

	// 2. Scan src/ and classify exported classes
	files, err := scan.ListFiles(e.SourceDir())
	if err != nil {
		return nil, fmt.Errorf("source scan failed: %w", err)
	}
	result.FilesScanned = len(files)

	reg, err := registry.NewBuilder(registry.Config{
		ProjectDir: e.projectDir,
		Logger:     logger,
	}).Build(files)
	if err != nil {
		return nil, fmt.Errorf("registry build failed: %w", err)
	}
	result.Registry = reg
	result.Views = reg.CountByRole(registry.RoleView)
	result.Models = reg.CountByRole(registry.RoleModel)
	result.Collisions = reg.Collisions()

	for _, key := range result.Collisions {
		logger.Debug("duplicate registry key, last scanned file wins", "key", key)
	}

	// 3. Render and write whatever changed
	emitted, err := e.emitter.Emit(doc, reg)
	if err != nil {
		return nil, fmt.Errorf("code generation failed: %w", err)
	}
	result.ConfigPath = emitted.ConfigPath
	result.PackagesPath = emitted.PackagesPath
	result.ConfigWritten = emitted.ConfigWritten
	result.PackagesWritten = emitted.PackagesWritten

	result.Duration = time.Since(start)

	logger.Info("build step completed",
		"files_scanned", result.FilesScanned,
		"entries", reg.Count(),
		"views", result.Views,
		"models", result.Models,
		"config_written", result.ConfigWritten,
		"packages_written", result.PackagesWritten,
		"duration_ms", result.Duration.Milliseconds())

	return result, nil
}

// Inspect scans src/ and builds the registry without writing anything.
func (e *Engine) Inspect() (*registry.Registry, error) {
	files, err := scan.ListFiles(e.SourceDir())
	if err != nil {
		return nil, fmt.Errorf("source scan failed: %w", err)
	}
	reg, err := registry.NewBuilder(registry.Config{
		ProjectDir: e.projectDir,
		Logger:     e.logger,
	}).Build(files)
	if err != nil {
		return nil, fmt.Errorf("registry build failed: %w", err)
	}
	return reg, nil
}
