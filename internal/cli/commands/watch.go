package commands

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/leapstack-labs/autoloader/internal/bundle"
	"github.com/leapstack-labs/autoloader/internal/watch"
	"github.com/spf13/cobra"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	var withBundle bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate sources whenever src/ changes",
		Long: `Run the build step once, then watch src/ recursively and run it again after
every change. Changes are debounced and steps never overlap.

The generated Config and Packages modules are ignored so writing them does not
trigger another step. A failing step is reported and watching continues.

With --bundle every step is an incremental esbuild rebuild.`,
		Example: `  # Keep the generated modules current
  autoloader watch

  # Also rebuild the bundle
  autoloader watch --bundle`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, withBundle)
		},
	}

	cmd.Flags().BoolVar(&withBundle, "bundle", false, "Rebuild the esbuild bundle on every change")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, withBundle bool) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer
	eng := cmdCtx.Engine

	if _, err := eng.Prepare(); err != nil {
		return err
	}

	step := newRecordingStep(eng)
	rebuild := func(context.Context, string) error {
		if err := step.BeforeCompile(); err != nil {
			return err
		}
		if last := step.Last(); last != nil {
			renderStep(r, cfg.ProjectDir, last)
		}
		return nil
	}

	if withBundle {
		bundler, err := bundle.NewBundler(bundle.Options{
			ProjectDir: cfg.ProjectDir,
			Entry:      cfg.Entry,
			OutputDir:  eng.OutputDir(),
			Filename:   cfg.Filename,
			Production: cfg.Production(),
			Step:       step,
			Logger:     cmdCtx.Logger,
		})
		if err != nil {
			return err
		}
		defer bundler.Close()

		rebuild = func(context.Context, string) error {
			result, err := bundler.Rebuild()
			if err != nil {
				return err
			}
			if last := step.Last(); last != nil {
				renderStep(r, cfg.ProjectDir, last)
			}
			r.StatusLine(relativeTo(cfg.ProjectDir, result.Outfile), "success", "bundled")
			return nil
		}
	}

	ignore := cmdCtx.GeneratedFiles()
	for _, rel := range cfg.Watch.Ignore {
		ignore = append(ignore, resolveIn(cfg.ProjectDir, rel))
	}

	w, err := watch.New(watch.Config{
		Dirs:     []string{eng.SourceDir()},
		Ignore:   ignore,
		Debounce: cfg.Watch.Debounce,
		Rebuild: func(ctx context.Context, reason string) error {
			err := rebuild(ctx, reason)
			if err != nil {
				r.Error(err.Error())
			}
			return err
		},
		Logger: cmdCtx.Logger,
	})
	if err != nil {
		return err
	}

	r.Println(r.Muted("Watching " + relativeTo(cfg.ProjectDir, eng.SourceDir()) + " for changes. Press Ctrl+C to stop."))
	return w.Run(ctx)
}

func resolveIn(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, filepath.FromSlash(path))
}
