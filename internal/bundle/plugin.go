package bundle

import (
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/leapstack-labs/autoloader/internal/engine"
)

// Plugin runs step.BeforeCompile when a build starts and step.AfterEmit when
// a build finished without errors. Step failures are reported as build
// errors.
func Plugin(step engine.Step) api.Plugin {
	return api.Plugin{
		Name: PluginName,
		Setup: func(build api.PluginBuild) {
			build.OnStart(func() (api.OnStartResult, error) {
				if err := step.BeforeCompile(); err != nil {
					return api.OnStartResult{Errors: []api.Message{{Text: err.Error()}}}, nil
				}
				return api.OnStartResult{}, nil
			})

			build.OnEnd(func(result *api.BuildResult) (api.OnEndResult, error) {
				if len(result.Errors) > 0 {
					return api.OnEndResult{}, nil
				}
				if err := step.AfterEmit(); err != nil {
					return api.OnEndResult{Errors: []api.Message{{Text: err.Error()}}}, nil
				}
				return api.OnEndResult{}, nil
			})
		},
	}
}

// AliasPlugin resolves "@/..." imports against srcDir, the way the
// generated modules reference project sources.
func AliasPlugin(srcDir string) api.Plugin {
	return api.Plugin{
		Name: PluginName + "-alias",
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: `^@/`}, func(args api.OnResolveArgs) (api.OnResolveResult, error) {
				rel := "./" + strings.TrimPrefix(args.Path, aliasPrefix)
				resolved := build.Resolve(rel, api.ResolveOptions{
					ResolveDir: filepath.Clean(srcDir),
					Importer:   args.Importer,
					Kind:       args.Kind,
				})
				if len(resolved.Errors) > 0 {
					return api.OnResolveResult{Errors: resolved.Errors}, nil
				}
				return api.OnResolveResult{
					Path:      resolved.Path,
					External:  resolved.External,
					Namespace: resolved.Namespace,
				}, nil
			})
		},
	}
}
