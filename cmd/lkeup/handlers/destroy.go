package handlers

import (
	"context"
	"fmt"

	"github.com/chris-milsted/lkeup/internal/logging"
	"github.com/chris-milsted/lkeup/internal/workflow"
)

// Destroy handles the destroy command.
//
// It loads the configuration and tears down the application and the LKE
// cluster. Workload resources are deleted in reverse creation order before
// the cluster itself. Resources that are already absent are skipped, so
// destroy can be re-run after a partial failure.
func Destroy(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
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
	wctx.Observer = composeObservers(workflow.NewLogObserver(logger), journal)

	if err := runDestroyStages(wctx); err != nil {
		return fmt.Errorf("destroy failed: %w", err)
	}

	fmt.Printf("\nCluster %s destroyed.\n", cfg.Cluster.Label)
	return nil
}
