package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/autoloader/internal/cli/output"
	"github.com/spf13/cobra"
)

// projectTemplate is the embedded template used by init.
const projectTemplate = "project"

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new autoloader project",
		Long: `Initialize a new project with the default directory structure and configuration.

This creates:
  - autoloader.yaml configuration file
  - src/config/ with config.json, stage.json and routing.json
  - src/view/ and src/model/ for classes picked up by the registry
  - src/index.ts entry point`,
		Example: `  # Initialize in current directory
  autoloader init

  # Initialize in a new directory
  autoloader init my-game

  # Force overwrite existing files
  autoloader init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			r := NewCommandContextWithoutEngine(cmd).Renderer
			return runInit(r, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")

	return cmd
}

func runInit(r *output.Renderer, dir string, force bool) error {
	// Create directory if specified and doesn't exist
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	// Check if config already exists
	configPath := filepath.Join(dir, "autoloader.yaml")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("autoloader.yaml already exists. Use --force to overwrite")
	}

	if err := copyTemplate(projectTemplate, dir, force); err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}

	// List created files
	files, _ := listTemplateFiles(projectTemplate)
	for _, f := range files {
		r.StatusLine(f, "success", "")
	}

	r.Println("")
	r.Success("autoloader project initialized!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Add views to src/view/ and models to src/model/")
	r.Println("  2. Run 'autoloader generate' to write Config.ts and Packages.ts")
	r.Println("  3. Run 'autoloader list' to see the registry")
	r.Println("  4. Run 'autoloader watch --bundle' while developing")

	return nil
}
