package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schemadoc/schemadoc/configs"
)

const projectConfigName = ".schemadoc.yaml"

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a project configuration file",
		Long: `Write a commented .schemadoc.yaml template to the current directory.

The generated file documents every setting with its default value.`,
		Example: `  # Generate .schemadoc.yaml
  schemadoc init

  # Overwrite an existing configuration
  schemadoc init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(projectConfigName); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", projectConfigName)
			}

			if err := os.WriteFile(projectConfigName, []byte(configs.ProjectConfigTemplate), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", projectConfigName, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", projectConfigName)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}
