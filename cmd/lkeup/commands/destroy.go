package commands

import (
	"github.com/spf13/cobra"

	"github.com/chris-milsted/lkeup/cmd/lkeup/handlers"
)

// Destroy returns the destroy command.
//
// The destroy command removes the application and the LKE cluster. Workload
// resources are deleted in reverse creation order before the cluster itself
// so the provider-managed load balancer is released cleanly.
func Destroy() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Destroy the cluster and all deployed resources",
		Long: `Destroy removes the application and the LKE cluster.

Resources are deleted in reverse creation order:
  - Service (releases the cloud load balancer)
  - Deployment
  - Namespace
  - LKE cluster

The kubeconfig file written by apply is left in place; it simply stops
working once the cluster is gone. Resources that are already absent are
skipped, so destroy can be re-run after a partial failure.

Example:
  lkeup destroy -c lkeup.yaml

WARNING: This operation is irreversible. All cluster data will be lost.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Destroy(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: lkeup.yaml)")

	return cmd
}
