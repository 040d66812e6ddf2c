// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/chris-milsted/lkeup/internal/config"
	"github.com/chris-milsted/lkeup/internal/k8s"
	"github.com/chris-milsted/lkeup/internal/linode"
	"github.com/chris-milsted/lkeup/internal/logging"
	"github.com/chris-milsted/lkeup/internal/statestore"
	"github.com/chris-milsted/lkeup/internal/ui/tui"
	"github.com/chris-milsted/lkeup/internal/util/tags"
	"github.com/chris-milsted/lkeup/internal/workflow"
	"github.com/chris-milsted/lkeup/internal/workflow/cluster"
	"github.com/chris-milsted/lkeup/internal/workflow/credentials"
	"github.com/chris-milsted/lkeup/internal/workflow/destroy"
	"github.com/chris-milsted/lkeup/internal/workflow/gate"
	"github.com/chris-milsted/lkeup/internal/workflow/workload"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newClusterClient creates the Linode API client.
	newClusterClient = func(token string) linode.ClusterManager {
		timeouts := config.LoadTimeouts()
		return linode.NewRealClient(linode.Options{
			Token:             token,
			UserAgent:         "lkeup",
			RetryMaxAttempts:  timeouts.RetryMaxAttempts,
			RetryInitialDelay: timeouts.RetryInitialDelay,
		})
	}

	// openStateStore opens the local run journal database.
	openStateStore = func(path string) (*statestore.Store, error) {
		return statestore.Open(path)
	}

	// newWorkflowContext creates the shared stage context.
	newWorkflowContext = workflow.NewContext

	// runApplyStages executes the provisioning pipeline.
	runApplyStages = func(wctx *workflow.Context) error {
		return workflow.RunStages(wctx,
			cluster.NewProvisioner(),
			credentials.NewMaterializer(),
			gate.NewGate(),
			workload.NewDeployer(),
		)
	}

	// runDestroyStages executes the teardown pipeline.
	runDestroyStages = func(wctx *workflow.Context) error {
		return workflow.RunStages(wctx, destroy.NewDestroyer())
	}

	// runDashboard drives the interactive progress display.
	runDashboard = tui.RunApply

	// loadConfigFile loads config from file (for testing injection).
	loadConfigFile = config.Load

	// findConfigFile finds the config file (for testing injection).
	findConfigFile = config.FindConfigFile

	// tokenFromEnv reads the provider token (for testing injection).
	tokenFromEnv = config.TokenFromEnv

	// isInteractiveTTY reports whether stdout is a terminal.
	isInteractiveTTY = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
)

// ApplyOptions carries the apply command flags.
type ApplyOptions struct {
	ConfigPath string
	DryRun     bool
	NoTUI      bool
}

// Apply provisions an LKE cluster and deploys the configured application.
//
// This function orchestrates the complete workflow:
//  1. Loads and validates the configuration
//  2. With --dry-run, prints the cluster plan and rendered manifests and stops
//     before any provider contact
//  3. Initializes the Linode client using the LINODE_TOKEN environment variable
//  4. Opens the run journal so phase transitions are recorded locally
//  5. Runs the stage pipeline: cluster, credentials, stabilize, workload
//  6. Prints the summary with the cluster ID, kubeconfig path and app URL
//
// Progress is shown on an interactive dashboard when stdout is a terminal,
// or as structured log events otherwise and under --no-tui.
func Apply(ctx context.Context, opts ApplyOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	if opts.DryRun {
		return printPlan(cfg)
	}

	token, err := tokenFromEnv()
	if err != nil {
		return err
	}

	logger := logging.FromContext(ctx)
	clusters := newClusterClient(token)
	journal, closeJournal := openJournal(ctx, cfg, logger)
	defer closeJournal()

	wctx := newWorkflowContext(ctx, cfg, clusters, nil)

	if isInteractiveTTY() && !opts.NoTUI {
		err = runDashboard(func(observer workflow.Observer) error {
			wctx.Observer = composeObservers(observer, journal)
			return runApplyStages(wctx)
		}, cfg.Cluster.Label, cfg.Cluster.Region)
	} else {
		wctx.Observer = composeObservers(workflow.NewLogObserver(logger), journal)
		err = runApplyStages(wctx)
	}
	if err != nil {
		return fmt.Errorf("apply failed: %w", err)
	}

	fmt.Println()
	fmt.Println(tui.RenderApplySummary(tui.Summary{
		ClusterID:      wctx.State.ClusterID,
		ClusterLabel:   wctx.State.ClusterLabel,
		Region:         cfg.Cluster.Region,
		APIEndpoint:    wctx.State.APIEndpoint,
		KubeconfigPath: wctx.State.KubeconfigPath,
		Namespace:      wctx.State.Namespace,
		AppURL:         wctx.State.AppURL(),
	}))
	return nil
}

// loadConfig loads and validates the configuration. If configPath is empty,
// it looks for lkeup.yaml in the current directory and its parents.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		path, err := findConfigFile()
		if err != nil {
			return nil, fmt.Errorf("no config file found: %w\nRun 'lkeup init' to create one", err)
		}
		configPath = path
	}

	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// openJournal opens the run journal and starts a run for this invocation.
// Journaling is best effort: any failure is logged and the workflow carries
// on without history, since cluster identity lives at the provider.
func openJournal(ctx context.Context, cfg *config.Config, logger logging.Logger) (workflow.Observer, func()) {
	store, err := openStateStore(cfg.Paths.StateDB)
	if err != nil {
		logger.Warn(ctx, "run journal unavailable", "path", cfg.Paths.StateDB, "error", err)
		return nil, func() {}
	}

	journal, err := statestore.NewJournal(ctx, store, cfg.Cluster.Label, logger)
	if err != nil {
		logger.Warn(ctx, "run journal unavailable", "path", cfg.Paths.StateDB, "error", err)
		_ = store.Close()
		return nil, func() {}
	}

	return journal, func() { _ = store.Close() }
}

// composeObservers fans events out to the primary observer and the journal.
func composeObservers(primary, journal workflow.Observer) workflow.Observer {
	if journal == nil {
		return primary
	}
	return workflow.MultiObserver{primary, journal}
}

// printPlan renders what apply would create without contacting the provider.
func printPlan(cfg *config.Config) error {
	manifests, err := k8s.RenderManifests(cfg.AppSpec())
	if err != nil {
		return fmt.Errorf("failed to render manifests: %w", err)
	}

	spec := cfg.ClusterSpec()
	fmt.Println("Cluster plan (no changes made):")
	fmt.Printf("  Label:       %s\n", spec.Label)
	fmt.Printf("  Region:      %s\n", spec.Region)
	fmt.Printf("  Kubernetes:  %s\n", spec.K8sVersion)
	fmt.Printf("  Node pool:   %d x %s\n", spec.NodeCount, spec.NodeType)
	fmt.Printf("  Tags:        %s\n", strings.Join(tags.ForCluster(spec.Label), ", "))
	fmt.Println()
	fmt.Println("Manifests that would be applied:")
	fmt.Println()
	fmt.Println(manifests)
	return nil
}
