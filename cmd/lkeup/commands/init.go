package commands

import (
	"github.com/spf13/cobra"

	"github.com/chris-milsted/lkeup/cmd/lkeup/handlers"
)

// Init returns the command for interactively creating a configuration file.
//
// This command guides users through creating a cluster plus application
// configuration YAML file using an interactive wizard with text inputs and
// single-select prompts.
//
// Flags:
//
//	--output, -o: Path to output file (default "lkeup.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a configuration file",
		Long: `Interactively create a configuration file.

This command guides you through configuring your cluster and application
step by step. It will ask about:

  - Cluster label and region
  - Kubernetes version
  - Node pool size and instance type
  - Application name, container image, and port

The generated YAML contains only what you chose; everything else falls
back to defaults at load time.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "lkeup.yaml", "Output file path")

	return cmd
}
