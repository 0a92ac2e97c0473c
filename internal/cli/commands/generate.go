package commands

import (
	"path/filepath"

	"github.com/leapstack-labs/autoloader/internal/cli/output"
	"github.com/leapstack-labs/autoloader/internal/engine"
	"github.com/spf13/cobra"
)

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate src/config/Config.ts and src/Packages.ts",
		Long: `Run the build step once: merge src/config/*.json for the selected environment,
scan src/view and src/model for exported classes, and write the generated
Config and Packages modules.

Files whose content would not change are left untouched.`,
		Example: `  # Generate for the local environment
  autoloader generate

  # Generate for another environment and platform
  autoloader generate --env prd --platform steam:windows

  # Machine-readable result
  autoloader generate --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd)
		},
	}

	return cmd
}

func runGenerate(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	result, err := cmdCtx.Engine.Generate()
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(stepOutput(result))
	}
	renderStep(r, cmdCtx.Cfg.ProjectDir, result)
	return nil
}

// stepOutput converts an engine result for JSON and YAML output.
func stepOutput(result *engine.Result) *output.StepOutput {
	return &output.StepOutput{
		StepID:          result.StepID,
		FilesScanned:    result.FilesScanned,
		Views:           result.Views,
		Models:          result.Models,
		ConfigPath:      result.ConfigPath,
		ConfigWritten:   result.ConfigWritten,
		PackagesPath:    result.PackagesPath,
		PackagesWritten: result.PackagesWritten,
		Collisions:      result.Collisions,
		DurationMS:      result.Duration.Milliseconds(),
	}
}

// renderStep prints one status line per generated module and a summary.
func renderStep(r *output.Renderer, projectDir string, result *engine.Result) {
	r.StatusLine(relativeTo(projectDir, result.ConfigPath), writeStatus(result.ConfigWritten), writeDetail(result.ConfigWritten))
	r.StatusLine(relativeTo(projectDir, result.PackagesPath), writeStatus(result.PackagesWritten), writeDetail(result.PackagesWritten))

	r.Println(r.Muted(result.Summary()))
}

func writeStatus(written bool) string {
	if written {
		return "success"
	}
	return "skipped"
}

func writeDetail(written bool) string {
	if written {
		return "written"
	}
	return "unchanged"
}

func relativeTo(base, path string) string {
	if rel, err := filepath.Rel(base, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}
