package linode

import (
	"context"
	"errors"
	"time"

	"github.com/chris-milsted/lkeup/internal/model"
)

// ErrClusterNotFound reports that no cluster carries the requested label or ID.
var ErrClusterNotFound = errors.New("cluster not found")

// PoolStatus summarizes a node pool for status reporting.
type PoolStatus struct {
	Type  string
	Count int
	Ready int
}

// ClusterManager is the provider surface the workflow depends on.
type ClusterManager interface {
	// EnsureCluster returns the cluster carrying the spec's label, creating
	// it when absent. The returned handle may not be ready yet; follow with
	// WaitClusterReady.
	EnsureCluster(ctx context.Context, spec model.ClusterSpec) (*model.ClusterHandle, error)

	// ClusterByLabel finds a cluster by label. Returns ErrClusterNotFound
	// when no cluster carries it.
	ClusterByLabel(ctx context.Context, label string) (*model.ClusterHandle, error)

	// WaitClusterReady blocks until the cluster reports ready, all node
	// pools are up, the API endpoint is published and the kubeconfig is
	// retrievable. The returned handle is fully populated.
	WaitClusterReady(ctx context.Context, clusterID int, timeout time.Duration) (*model.ClusterHandle, error)

	// NodePools reports the size and readiness of the cluster's node pools.
	NodePools(ctx context.Context, clusterID int) ([]PoolStatus, error)

	// DeleteCluster removes the cluster. Deleting an absent cluster is not
	// an error.
	DeleteCluster(ctx context.Context, clusterID int) error
}
