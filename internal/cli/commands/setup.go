package commands

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/autoloader/internal/cli/config"
	"github.com/leapstack-labs/autoloader/internal/cli/output"
	"github.com/leapstack-labs/autoloader/internal/codegen"
	"github.com/leapstack-labs/autoloader/internal/engine"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Engine   *engine.Engine
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with engine and renderer.
// The project must contain a src/ directory.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cmdCtx := NewCommandContextWithoutEngine(cmd)

	if err := cmdCtx.Cfg.ValidateDirectories(); err != nil {
		return nil, err
	}

	eng, err := createEngine(cmdCtx.Cfg, cmdCtx.Logger)
	if err != nil {
		return nil, err
	}
	cmdCtx.Engine = eng

	return cmdCtx, nil
}

// NewCommandContextWithoutEngine creates a CommandContext without an engine.
// Useful for commands that don't touch a project.
func NewCommandContextWithoutEngine(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// GeneratedFiles returns the absolute paths of the generated modules.
func (c *CommandContext) GeneratedFiles() []string {
	return []string{
		filepath.Join(c.Cfg.ProjectDir, codegen.ConfigModule),
		filepath.Join(c.Cfg.ProjectDir, codegen.PackagesModule),
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to defaults
// rooted at the working directory.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return &config.Config{
		ProjectDir:   cwd,
		Environment:  getEnvOrDefault("AUTOLOADER_ENVIRONMENT", config.DefaultEnv),
		Platform:     getEnvOrDefault("AUTOLOADER_PLATFORM", config.DefaultPlatform),
		OutputDir:    filepath.Join(cwd, config.DefaultOutputDir),
		Mode:         getEnvOrDefault("AUTOLOADER_MODE", config.DefaultMode),
		Entry:        config.DefaultEntry,
		Filename:     config.DefaultFilename,
		LogLevel:     config.DefaultLogLevel,
		OutputFormat: os.Getenv("AUTOLOADER_OUTPUT"),
		Watch:        config.WatchConfig{Debounce: config.DefaultDebounce},
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func createEngine(cfg *config.Config, logger *slog.Logger) (*engine.Engine, error) {
	engineCfg := engine.Config{
		ProjectDir:  cfg.ProjectDir,
		Environment: cfg.Environment,
		Platform:    cfg.Platform,
		OutputDir:   cfg.OutputDir,
		Filename:    cfg.Filename,
		Mode:        cfg.Mode,
		KeepLicense: cfg.License,
		Codegen:     cfg.Codegen(),
		Logger:      logger,
	}

	return engine.New(engineCfg)
}
