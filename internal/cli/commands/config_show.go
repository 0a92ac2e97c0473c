package commands

import (
	"github.com/leapstack-labs/autoloader/internal/appconfig"
	"github.com/leapstack-labs/autoloader/internal/cli/config"
	"github.com/leapstack-labs/autoloader/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewConfigCommand creates the config command and its subcommands.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigMergedCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective CLI configuration as YAML",
		Long: `Print the configuration after applying defaults, autoloader.yaml,
AUTOLOADER_* environment variables and flags.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContextWithoutEngine(cmd)
			if file := config.GetConfigFileUsed(); file != "" {
				cmdCtx.Renderer.Println("# " + file)
			}
			return writeYAML(cmdCtx.Renderer.Writer(), cmdCtx.Cfg)
		},
	}
}

func newConfigMergedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "merged",
		Short: "Print the merged application config without writing it",
		Long: `Merge src/config/config.json, stage.json and routing.json for the selected
environment and print the JSON object embedded in the generated Config module.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContextWithoutEngine(cmd)
			cfg := cmdCtx.Cfg

			doc, err := appconfig.MergeWithLogger(cfg.ProjectDir, cfg.Environment, cfg.Platform, cmdCtx.Logger)
			if err != nil {
				return err
			}
			text, err := appconfig.Render(doc)
			if err != nil {
				return err
			}

			r := cmdCtx.Renderer
			if r.EffectiveMode() == output.ModeMarkdown {
				r.Println("```json")
				r.Println(text)
				r.Println("```")
				return nil
			}
			r.Println(text)
			return nil
		},
	}
}
