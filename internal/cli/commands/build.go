package commands

import (
	"path/filepath"

	"github.com/leapstack-labs/autoloader/internal/bundle"
	"github.com/leapstack-labs/autoloader/internal/cli/output"
	"github.com/leapstack-labs/autoloader/internal/scaffold"
	"github.com/spf13/cobra"
)

// NewBuildCommand creates the build command.
func NewBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate sources and bundle the project with esbuild",
		Long: `Bundle the entry point into <output_dir>/<filename> with esbuild.

The autoloader step runs before compilation, so the generated Config and
Packages modules are always current. Imports starting with "@/" resolve
against src/.

In production mode the bundle is minified and license files emitted next to
it are removed unless --license is set. In the local environment an
index.html loading the bundle is created if missing.`,
		Example: `  # Development bundle
  autoloader build

  # Production bundle for the prd environment
  autoloader build --mode production --env prd

  # Keep the extracted license comments
  autoloader build --mode production --license`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd)
		},
	}

	return cmd
}

func runBuild(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	out := &output.BuildOutput{}

	wroteIndex, err := cmdCtx.Engine.Prepare()
	if err != nil {
		return err
	}
	if wroteIndex {
		out.Scaffold = filepath.Join(cmdCtx.Engine.OutputDir(), scaffold.IndexFile)
	}

	step := newRecordingStep(cmdCtx.Engine)
	result, err := bundle.Build(bundle.Options{
		ProjectDir: cfg.ProjectDir,
		Entry:      cfg.Entry,
		OutputDir:  cmdCtx.Engine.OutputDir(),
		Filename:   cfg.Filename,
		Production: cfg.Production(),
		Step:       step,
		Logger:     cmdCtx.Logger,
	})
	if err != nil {
		return err
	}
	out.Outfile = result.Outfile
	out.Warnings = result.Warnings

	last := step.Last()
	if last != nil {
		out.Step = stepOutput(last)
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(out)
	}

	if last != nil {
		renderStep(r, cfg.ProjectDir, last)
	}
	if out.Scaffold != "" {
		r.StatusLine(relativeTo(cfg.ProjectDir, out.Scaffold), "success", "scaffold")
	}
	for _, w := range out.Warnings {
		r.Warning(w)
	}
	r.Success("Bundle written to " + relativeTo(cfg.ProjectDir, out.Outfile))
	return nil
}
