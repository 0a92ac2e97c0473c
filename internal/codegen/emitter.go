// Package codegen renders the generated Config and Packages TypeScript
// modules and writes them only when their text changes.
package codegen

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/leapstack-labs/autoloader/internal/appconfig"
	"github.com/leapstack-labs/autoloader/internal/registry"
)

// Defaults for the host framework's configuration contract.
const (
	DefaultContractType   = "ConfigImpl"
	DefaultContractImport = "@next2d/framework/dist/interface/ConfigImpl"
)

// Generated module locations, relative to the project directory.
var (
	ConfigModule   = filepath.Join("src", "config", "Config.ts")
	PackagesModule = filepath.Join("src", "Packages.ts")
)

var configTemplate = template.Must(template.New("config").Parse(
	`import { {{.ContractType}} } from "{{.ContractImport}}";
const config: {{.ContractType}} = {{.JSON}};
export { config };`))

var packagesTemplate = template.Must(template.New("packages").Parse(
	`{{range .Imports}}{{.}}
{{end}}
const packages: any[] = {{.Array}};
export { packages };`))

// Options customizes the config module's contract type.
type Options struct {
	ContractType   string
	ContractImport string
}

func (o Options) withDefaults() Options {
	if o.ContractType == "" {
		o.ContractType = DefaultContractType
	}
	if o.ContractImport == "" {
		o.ContractImport = DefaultContractImport
	}
	return o
}

// RenderConfig renders the config module for doc.
func RenderConfig(doc *appconfig.Object, opts Options) (string, error) {
	opts = opts.withDefaults()

	json, err := appconfig.Render(doc)
	if err != nil {
		return "", fmt.Errorf("failed to serialize config: %w", err)
	}

	var sb strings.Builder
	err = configTemplate.Execute(&sb, struct {
		Options
		JSON string
	}{opts, json})
	if err != nil {
		return "", fmt.Errorf("failed to render config module: %w", err)
	}
	return sb.String(), nil
}

// RenderPackages renders the packages module for reg.
func RenderPackages(reg *registry.Registry) (string, error) {
	var sb strings.Builder
	err := packagesTemplate.Execute(&sb, struct {
		Imports []string
		Array   string
	}{reg.Imports(), tupleArray(reg.Tuples())})
	if err != nil {
		return "", fmt.Errorf("failed to render packages module: %w", err)
	}
	return sb.String(), nil
}

// tupleArray lays tuples out one per line, 4-space indented, no trailing comma.
func tupleArray(tuples []string) string {
	if len(tuples) == 0 {
		return "[]"
	}
	return "[\n    " + strings.Join(tuples, ",\n    ") + "\n]"
}

// Config configures an Emitter.
type Config struct {
	ProjectDir string
	Options    Options
	// State is the cache owned by the caller (optional, a fresh one if nil).
	State *CacheState
	// Writer persists files (optional, writes to disk if nil).
	Writer FileWriter
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// Emitter renders both modules and passes them through a Gate.
type Emitter struct {
	projectDir string
	opts       Options
	gate       *Gate
	logger     *slog.Logger
}

// EmitResult reports what an Emit call wrote.
type EmitResult struct {
	ConfigPath      string
	PackagesPath    string
	ConfigWritten   bool
	PackagesWritten bool
}

// NewEmitter creates an Emitter.
func NewEmitter(cfg Config) *Emitter {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Emitter{
		projectDir: cfg.ProjectDir,
		opts:       cfg.Options.withDefaults(),
		gate:       NewGate(cfg.State, cfg.Writer),
		logger:     logger,
	}
}

// Emit renders doc and reg and writes whichever module changed since the
// previous Emit on the same cache.
func (e *Emitter) Emit(doc *appconfig.Object, reg *registry.Registry) (*EmitResult, error) {
	configText, err := RenderConfig(doc, e.opts)
	if err != nil {
		return nil, err
	}
	packagesText, err := RenderPackages(reg)
	if err != nil {
		return nil, err
	}

	result := &EmitResult{
		ConfigPath:   filepath.Join(e.projectDir, ConfigModule),
		PackagesPath: filepath.Join(e.projectDir, PackagesModule),
	}

	result.ConfigWritten, err = e.gate.WriteIfChanged(SlotConfig, result.ConfigPath, configText)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("config module", "path", result.ConfigPath, "written", result.ConfigWritten)

	result.PackagesWritten, err = e.gate.WriteIfChanged(SlotPackages, result.PackagesPath, packagesText)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("packages module", "path", result.PackagesPath, "written", result.PackagesWritten)

	return result, nil
}
