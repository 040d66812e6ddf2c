package commands

import (
	"github.com/spf13/cobra"

	"github.com/chris-milsted/lkeup/cmd/lkeup/handlers"
)

// Status returns the command for displaying cluster and run status.
//
// This command shows the live provider view of the cluster (existence,
// endpoint, node pool readiness) alongside the journaled history of the
// most recent apply or destroy run.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect lkeup.yaml)
//
// Environment variables:
//
//	LINODE_TOKEN: Linode API token (required)
func Status() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show cluster and last run status",
		Long: `Display the current status of your lkeup cluster.

Shows:
  - Whether the cluster exists at the provider, its ID and API endpoint
  - Node pool readiness (ready/total per pool)
  - The most recent run from the local journal with its phase transitions

The provider is the source of truth for cluster existence; the journal
only adds history. A missing journal does not affect the cluster view.

Examples:
  # Show status for the cluster in lkeup.yaml
  lkeup status

  # Show status for a specific config
  lkeup status -c production.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Status(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: lkeup.yaml)")

	return cmd
}
