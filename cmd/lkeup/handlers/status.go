package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/chris-milsted/lkeup/internal/linode"
	"github.com/chris-milsted/lkeup/internal/logging"
	"github.com/chris-milsted/lkeup/internal/statestore"
	"github.com/chris-milsted/lkeup/internal/ui/tui"
)

// Status handles the status command.
//
// It combines two views: the live provider state of the cluster (existence,
// API endpoint, node pool readiness) and the journaled history of the most
// recent run. The provider is authoritative; a missing or empty journal only
// means there is no local history to show.
func Status(ctx context.Context, configPath string) error {
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

	view := tui.StatusView{
		ClusterLabel: cfg.Cluster.Label,
		Region:       cfg.Cluster.Region,
	}

	handle, err := clusters.ClusterByLabel(ctx, cfg.Cluster.Label)
	switch {
	case errors.Is(err, linode.ErrClusterNotFound):
		// Not provisioned; the view renders the pending state.
	case err != nil:
		return fmt.Errorf("failed to query cluster: %w", err)
	default:
		view.Found = true
		view.ClusterID = handle.ID
		view.Endpoint = handle.Endpoint

		pools, perr := clusters.NodePools(ctx, handle.ID)
		if perr != nil {
			logger.Warn(ctx, "failed to list node pools", "cluster_id", handle.ID, "error", perr)
		} else {
			view.Pools = pools
		}
	}

	view.Run, view.Transitions = latestRun(ctx, cfg.Paths.StateDB, cfg.Cluster.Label, logger)

	fmt.Println(tui.RenderStatus(view))
	return nil
}

// latestRun fetches the most recent journaled run and its transitions.
// Any journal failure degrades to no history.
func latestRun(ctx context.Context, dbPath, clusterLabel string, logger logging.Logger) (*statestore.Run, []statestore.Transition) {
	store, err := openStateStore(dbPath)
	if err != nil {
		logger.Warn(ctx, "run journal unavailable", "path", dbPath, "error", err)
		return nil, nil
	}
	defer func() { _ = store.Close() }()

	run, err := store.LatestRun(ctx, clusterLabel)
	if err != nil {
		if !errors.Is(err, statestore.ErrNoRuns) {
			logger.Warn(ctx, "failed to read run journal", "error", err)
		}
		return nil, nil
	}

	transitions, err := store.Transitions(ctx, run.ID)
	if err != nil {
		logger.Warn(ctx, "failed to read run transitions", "run_id", run.ID, "error", err)
		return run, nil
	}
	return run, transitions
}
