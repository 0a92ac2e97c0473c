// Package bundle compiles the project with esbuild, running the autoloader
// step before every compilation and after every successful emit.
package bundle

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/leapstack-labs/autoloader/internal/engine"
)

// PluginName identifies messages reported by the autoloader plugin.
const PluginName = "autoloader"

// aliasPrefix is the import prefix mapped to the project's src/ directory.
const aliasPrefix = "@/"

// Options configures a bundle.
type Options struct {
	// ProjectDir is the directory containing src/ (required)
	ProjectDir string
	// Entry is the entry point relative to ProjectDir (default src/index.ts)
	Entry string
	// OutputDir is the absolute output directory (required)
	OutputDir string
	// Filename is the bundle file name inside OutputDir (default app.js)
	Filename string
	// Production enables minification and external legal comments
	Production bool
	// Step runs around every compilation (optional)
	Step engine.Step
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Result describes a finished build.
type Result struct {
	Outfile  string
	Warnings []string
}

// DefaultEntry is the entry point used when none is configured.
var DefaultEntry = filepath.Join("src", "index.ts")

// BuildOptions translates opts into esbuild options.
func BuildOptions(opts Options) api.BuildOptions {
	entry := opts.Entry
	if entry == "" {
		entry = DefaultEntry
	}
	if !filepath.IsAbs(entry) {
		entry = filepath.Join(opts.ProjectDir, entry)
	}
	filename := opts.Filename
	if filename == "" {
		filename = engine.DefaultFilename
	}

	mode := engine.ModeDevelopment
	if opts.Production {
		mode = engine.ModeProduction
	}

	plugins := []api.Plugin{AliasPlugin(filepath.Join(opts.ProjectDir, "src"))}
	if opts.Step != nil {
		plugins = append([]api.Plugin{Plugin(opts.Step)}, plugins...)
	}

	buildOpts := api.BuildOptions{
		EntryPoints:   []string{entry},
		Bundle:        true,
		Write:         true,
		Outfile:       filepath.Join(opts.OutputDir, filename),
		AbsWorkingDir: opts.ProjectDir,

		Loader: map[string]api.Loader{
			".ts":   api.LoaderTS,
			".json": api.LoaderJSON,
		},

		Platform: api.PlatformBrowser,
		Format:   api.FormatIIFE,
		Target:   api.ES2020,

		TreeShaking: api.TreeShakingTrue,
		Sourcemap:   api.SourceMapLinked,

		Define: map[string]string{
			"process.env.NODE_ENV": fmt.Sprintf("%q", mode),
		},

		Plugins:  plugins,
		LogLevel: api.LogLevelSilent,
	}

	if opts.Production {
		buildOpts.MinifyWhitespace = true
		buildOpts.MinifyIdentifiers = true
		buildOpts.MinifySyntax = true
		buildOpts.Sourcemap = api.SourceMapNone
		buildOpts.LegalComments = api.LegalCommentsExternal
	}

	return buildOpts
}

// Build runs a single build.
func Build(opts Options) (*Result, error) {
	if err := validate(opts); err != nil {
		return nil, err
	}
	logger := loggerOf(opts)

	buildOpts := BuildOptions(opts)
	logger.Debug("starting bundle", "entry", buildOpts.EntryPoints[0], "outfile", buildOpts.Outfile)

	return finish(buildOpts.Outfile, api.Build(buildOpts), logger)
}

// Bundler keeps an esbuild context alive between incremental rebuilds.
type Bundler struct {
	ctx     api.BuildContext
	outfile string
	logger  *slog.Logger
}

// NewBundler creates a rebuildable context. Call Close when done.
func NewBundler(opts Options) (*Bundler, error) {
	if err := validate(opts); err != nil {
		return nil, err
	}

	buildOpts := BuildOptions(opts)
	ctx, ctxErr := api.Context(buildOpts)
	if ctxErr != nil {
		return nil, fmt.Errorf("failed to create build context: %w", messagesError(ctxErr.Errors))
	}

	return &Bundler{ctx: ctx, outfile: buildOpts.Outfile, logger: loggerOf(opts)}, nil
}

// Rebuild compiles the project again, reusing previous work.
func (b *Bundler) Rebuild() (*Result, error) {
	return finish(b.outfile, b.ctx.Rebuild(), b.logger)
}

// Close releases the esbuild context.
func (b *Bundler) Close() {
	b.ctx.Dispose()
}

func finish(outfile string, result api.BuildResult, logger *slog.Logger) (*Result, error) {
	if len(result.Errors) > 0 {
		return nil, messagesError(result.Errors)
	}

	out := &Result{Outfile: outfile}
	for _, msg := range result.Warnings {
		text := formatMessage(msg)
		out.Warnings = append(out.Warnings, text)
		logger.Warn("bundle warning", "message", text)
	}
	logger.Info("bundle written", "outfile", outfile, "warnings", len(out.Warnings))
	return out, nil
}

func validate(opts Options) error {
	if opts.ProjectDir == "" {
		return errors.New("project directory is required")
	}
	if opts.OutputDir == "" {
		return errors.New("output directory is required")
	}
	return nil
}

func loggerOf(opts Options) *slog.Logger {
	if opts.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return opts.Logger
}

func messagesError(msgs []api.Message) error {
	var sb strings.Builder
	for _, msg := range msgs {
		sb.WriteString(formatMessage(msg))
		sb.WriteString("\n")
	}
	return fmt.Errorf("esbuild errors:\n%s", sb.String())
}

func formatMessage(msg api.Message) string {
	text := msg.Text
	if msg.PluginName != "" {
		text = fmt.Sprintf("[%s] %s", msg.PluginName, text)
	}
	if msg.Location == nil {
		return text
	}
	return fmt.Sprintf("%s:%d:%d: %s", msg.Location.File, msg.Location.Line, msg.Location.Column, text)
}
