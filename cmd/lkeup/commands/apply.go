package commands

import (
	"github.com/spf13/cobra"

	"github.com/chris-milsted/lkeup/cmd/lkeup/handlers"
)

// Apply returns the command for provisioning the cluster and deploying the app.
//
// This command handles the complete lifecycle: creating the LKE cluster,
// materializing credentials, waiting for the control plane to settle, and
// rolling out the application behind a public load balancer.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect lkeup.yaml)
//	--dry-run: Print the cluster plan and rendered manifests without touching the provider
//	--no-tui: Disable the progress dashboard and log events instead
//
// Environment variables:
//
//	LINODE_TOKEN: Linode API token (required)
func Apply() *cobra.Command {
	var (
		configPath string
		dryRun     bool
		noTUI      bool
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Create the cluster and deploy the application",
		Long: `Create your LKE cluster and deploy the application onto it.

This command provisions a Linode Kubernetes Engine cluster, writes the
kubeconfig to the configured path (default: kubeconfig.yaml), waits for the
control plane to answer, and rolls out the application with a public
LoadBalancer service. When it finishes it prints the URL your application
is reachable at.

Re-running apply against an existing cluster reuses it instead of creating
a duplicate.

If no config file is specified, it looks for lkeup.yaml in the current
directory. Use 'lkeup init' to create a configuration file.

Examples:
  # Provision using lkeup.yaml in current directory
  lkeup apply

  # Provision using specific config file
  lkeup apply -c production.yaml

  # Inspect what would be created without creating it
  lkeup apply --dry-run`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Apply(cmd.Context(), handlers.ApplyOptions{
				ConfigPath: configPath,
				DryRun:     dryRun,
				NoTUI:      noTUI,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: lkeup.yaml)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the plan and manifests without contacting the provider")
	cmd.Flags().BoolVar(&noTUI, "no-tui", false, "Disable the progress dashboard")

	return cmd
}
