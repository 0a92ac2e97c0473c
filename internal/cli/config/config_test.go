package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leapstack-labs/autoloader/internal/testutil"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testFlags mirrors the root command's persistent flags.
func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("project-dir", "", "")
	fs.StringP("env", "e", "", "")
	fs.String("platform", "", "")
	fs.String("mode", "", "")
	fs.String("output-dir", "", "")
	fs.Bool("license", false, "")
	fs.BoolP("verbose", "v", false, "")
	fs.String("log-level", "", "")
	fs.StringP("output", "o", "", "")
	return fs
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	cwd, err := os.Getwd()
	require.NoError(t, err)

	assert.Equal(t, cwd, cfg.ProjectDir)
	assert.Equal(t, DefaultEnv, cfg.Environment)
	assert.Equal(t, DefaultPlatform, cfg.Platform)
	assert.Equal(t, filepath.Join(cwd, DefaultOutputDir), cfg.OutputDir)
	assert.Equal(t, DefaultMode, cfg.Mode)
	assert.Equal(t, DefaultEntry, cfg.Entry)
	assert.Equal(t, DefaultFilename, cfg.Filename)
	assert.Equal(t, DefaultDebounce, cfg.Watch.Debounce)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.False(t, cfg.License)
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_FileFoundUpward(t *testing.T) {
	ResetConfig()
	dir := testutil.WriteProject(t, map[string]string{
		"autoloader.yaml": `environment: stg
platform: steam:windows
mode: production
license: true
framework:
  contract_type: AppConfig
  contract_import: "@/interface/AppConfig"
watch:
  debounce: 250ms
  ignore:
    - src/generated.ts
`,
		"src/view/.gitkeep": "",
	})
	t.Chdir(filepath.Join(dir, "src", "view"))

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	root, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(cfg.ProjectDir)
	require.NoError(t, err)

	assert.Equal(t, root, got)
	assert.Equal(t, "stg", cfg.Environment)
	assert.Equal(t, "steam:windows", cfg.Platform)
	assert.True(t, cfg.Production())
	assert.True(t, cfg.License)
	assert.Equal(t, "AppConfig", cfg.Codegen().ContractType)
	assert.Equal(t, "@/interface/AppConfig", cfg.Codegen().ContractImport)
	assert.Equal(t, 250*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, []string{"src/generated.ts"}, cfg.Watch.Ignore)
	assert.Equal(t, "autoloader.yaml", filepath.Base(GetConfigFileUsed()))
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	ResetConfig()
	dir := testutil.WriteProject(t, map[string]string{
		"conf/custom.yml": "project_dir: ../app\noutput_dir: public\n",
	})
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig(filepath.Join(dir, "conf", "custom.yml"), nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "app"), cfg.ProjectDir)
	assert.Equal(t, filepath.Join(dir, "app", "public"), cfg.OutputDir)
}

func TestLoadConfig_Precedence(t *testing.T) {
	ResetConfig()
	dir := testutil.WriteProject(t, map[string]string{
		"autoloader.yaml": "environment: file-env\nplatform: file-platform\nlog_level: warn\n",
	})
	t.Chdir(dir)
	t.Setenv("AUTOLOADER_ENVIRONMENT", "env-env")
	t.Setenv("AUTOLOADER_PLATFORM", "env-platform")
	t.Setenv("AUTOLOADER_WATCH__DEBOUNCE", "1s")

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--env", "flag-env"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, "flag-env", cfg.Environment, "flags beat env vars")
	assert.Equal(t, "env-platform", cfg.Platform, "env vars beat the config file")
	assert.Equal(t, "warn", cfg.LogLevel, "config file beats defaults")
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
}

func TestLoadConfig_ProjectDirFlag(t *testing.T) {
	ResetConfig()
	dir := testutil.WriteProject(t, map[string]string{
		"autoloader.yaml": "environment: from-project\n",
	})
	t.Chdir(t.TempDir())

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--project-dir", dir, "--output-dir", "build"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.ProjectDir)
	assert.Equal(t, "from-project", cfg.Environment)
	assert.Equal(t, filepath.Join(dir, "build"), cfg.OutputDir)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name      string
		files     map[string]string
		args      []string
		errSubstr string
	}{
		{
			name:      "invalid yaml",
			files:     map[string]string{"autoloader.yaml": "environment: [unclosed\n"},
			errSubstr: "error reading config file",
		},
		{
			name:      "unknown mode",
			args:      []string{"--mode", "staging"},
			errSubstr: `invalid mode "staging"`,
		},
		{
			name:      "empty environment",
			args:      []string{"--env", ""},
			errSubstr: "environment is required",
		},
		{
			name:      "bad log level",
			args:      []string{"--log-level", "loud"},
			errSubstr: "invalid log_level",
		},
		{
			name:      "bad output format",
			args:      []string{"--output", "html"},
			errSubstr: "invalid output format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			dir := testutil.WriteProject(t, tt.files)
			t.Chdir(dir)

			flags := testFlags()
			require.NoError(t, flags.Parse(tt.args))

			_, err := LoadConfig("", flags)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestValidate_Filename(t *testing.T) {
	cfg := Config{Environment: "local", Platform: "web", Mode: DefaultMode, LogLevel: "info", Filename: "js/app.js"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filename")

	cfg.Filename = "app.js"
	assert.NoError(t, cfg.Validate())
}

func TestValidateDirectories(t *testing.T) {
	cfg := Config{ProjectDir: t.TempDir()}
	err := cfg.ValidateDirectories()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source directory does not exist")

	cfg.ProjectDir = testutil.WriteProject(t, map[string]string{"src/index.ts": ""})
	assert.NoError(t, cfg.ValidateDirectories())
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLogLevel("")
	assert.Error(t, err)
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()))

	logger := slog.New(slog.DiscardHandler)
	ctx := context.WithValue(context.Background(), LoggerKey(), logger)
	assert.Same(t, logger, GetLogger(ctx))
}
