package commands

import (
	"github.com/spf13/cobra"

	"github.com/chris-milsted/lkeup/cmd/lkeup/handlers"
)

// Endpoint returns the command for printing the application URL.
//
// This command queries the live service in the cluster and prints the
// URL the application is reachable at, or "pending" while the load
// balancer address is still being assigned. The output is plain so it
// can be used in scripts.
func Endpoint() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "endpoint",
		Short: "Print the application URL",
		Long: `Print the URL the deployed application is reachable at.

Queries the service in the cluster using the kubeconfig written by apply.
Prints "pending" if the load balancer has not been assigned an address yet.

Examples:
  lkeup endpoint

  # Use in scripts
  curl "$(lkeup endpoint)/actuator/health"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Endpoint(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: lkeup.yaml)")

	return cmd
}
