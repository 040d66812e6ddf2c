package linode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/linode/linodego"

	"github.com/chris-milsted/lkeup/internal/model"
	"github.com/chris-milsted/lkeup/internal/util/retry"
)

// EnsureCluster finds or creates the cluster carrying spec.Label. The spec
// is validated before any API call.
func (c *RealClient) EnsureCluster(ctx context.Context, spec model.ClusterSpec) (*model.ClusterHandle, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	existing, err := c.ClusterByLabel(ctx, spec.Label)
	if err != nil && !errors.Is(err, ErrClusterNotFound) {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	opts := linodego.LKEClusterCreateOptions{
		Label:      spec.Label,
		Region:     spec.Region,
		K8sVersion: spec.K8sVersion,
		Tags:       spec.Tags,
		NodePools: []linodego.LKENodePoolCreateOptions{
			{Count: spec.NodeCount, Type: spec.NodeType},
		},
	}

	var cluster *linodego.LKECluster
	err = c.do(ctx, func() error {
		var err error
		cluster, err = c.api.CreateLKECluster(ctx, opts)
		return err
	})
	if err != nil {
		return nil, classify("create cluster "+spec.Label, err)
	}

	return handleFrom(cluster), nil
}

// ClusterByLabel finds a cluster by label via a server-side filter.
func (c *RealClient) ClusterByLabel(ctx context.Context, label string) (*model.ClusterHandle, error) {
	filter, err := json.Marshal(map[string]string{"label": label})
	if err != nil {
		return nil, fmt.Errorf("build label filter: %w", err)
	}

	var clusters []linodego.LKECluster
	err = c.do(ctx, func() error {
		var err error
		clusters, err = c.api.ListLKEClusters(ctx, linodego.NewListOptions(0, string(filter)))
		return err
	})
	if err != nil {
		return nil, classify("list clusters", err)
	}

	for _, cluster := range clusters {
		if cluster.Label == label {
			return handleFrom(&cluster), nil
		}
	}
	return nil, ErrClusterNotFound
}

// WaitClusterReady polls until the cluster reports ready, every node pool is
// fully up, the API endpoint is published and the kubeconfig is retrievable.
func (c *RealClient) WaitClusterReady(ctx context.Context, clusterID int, timeout time.Duration) (*model.ClusterHandle, error) {
	var handle *model.ClusterHandle

	probe := func(ctx context.Context) (bool, error) {
		cluster, err := c.api.GetLKECluster(ctx, clusterID)
		if err != nil {
			return false, probeErr(err)
		}
		if cluster.Status != linodego.LKEClusterReady {
			return false, nil
		}

		ready, err := c.poolsReady(ctx, clusterID)
		if err != nil {
			return false, probeErr(err)
		}
		if !ready {
			return false, nil
		}

		endpoints, err := c.api.ListLKEClusterAPIEndpoints(ctx, clusterID, nil)
		if err != nil {
			return false, probeErr(err)
		}
		endpoint := firstEndpoint(endpoints)
		if endpoint == "" {
			return false, nil
		}

		// The kubeconfig endpoint keeps erroring until the control plane
		// finishes booting; tolerate that as not-ready.
		kubeconfig, err := c.api.GetLKEClusterKubeconfig(ctx, clusterID)
		if err != nil {
			return false, probeErr(err)
		}
		if kubeconfig.KubeConfig == "" {
			return false, nil
		}

		handle = &model.ClusterHandle{
			ID:            cluster.ID,
			Label:         cluster.Label,
			Endpoint:      endpoint,
			KubeconfigB64: kubeconfig.KubeConfig,
		}
		return true, nil
	}

	err := retry.Poll(ctx, timeout, probe,
		retry.WithInitialDelay(c.pollDelay()),
		retry.WithMaxDelay(30*time.Second))
	if err != nil {
		switch {
		case retry.IsFatal(err):
			return nil, classify(fmt.Sprintf("wait for cluster %d", clusterID), err)
		case errors.Is(err, context.Canceled):
			return nil, err
		default:
			return nil, &model.TimeoutError{
				Op:    fmt.Sprintf("cluster %d readiness", clusterID),
				Limit: timeout,
				Err:   err,
			}
		}
	}
	return handle, nil
}

// NodePools reports the size and readiness of the cluster's node pools.
func (c *RealClient) NodePools(ctx context.Context, clusterID int) ([]PoolStatus, error) {
	var pools []linodego.LKENodePool
	err := c.do(ctx, func() error {
		var err error
		pools, err = c.api.ListLKENodePools(ctx, clusterID, nil)
		return err
	})
	if err != nil {
		return nil, classify(fmt.Sprintf("list node pools for cluster %d", clusterID), err)
	}

	statuses := make([]PoolStatus, 0, len(pools))
	for _, pool := range pools {
		status := PoolStatus{Type: pool.Type, Count: pool.Count}
		for _, node := range pool.Linodes {
			if node.Status == linodego.LKELinodeReady {
				status.Ready++
			}
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// DeleteCluster removes the cluster. An already absent cluster is a no-op.
func (c *RealClient) DeleteCluster(ctx context.Context, clusterID int) error {
	err := c.do(ctx, func() error {
		if err := c.api.DeleteLKECluster(ctx, clusterID); err != nil {
			if IsNotFound(err) {
				return nil
			}
			return err
		}
		return nil
	})
	if err != nil {
		return classify(fmt.Sprintf("delete cluster %d", clusterID), err)
	}
	return nil
}

// do runs op with backed-off retries, marking non-retryable API responses
// fatal so they surface immediately.
func (c *RealClient) do(ctx context.Context, op func() error) error {
	wrapped := func() error {
		if err := op(); err != nil {
			if !isRetryable(err) {
				return retry.Fatal(err)
			}
			return err
		}
		return nil
	}
	return retry.Do(ctx, wrapped, c.retryOpts()...)
}

func (c *RealClient) retryOpts() []retry.Option {
	var opts []retry.Option
	if c.retryMaxAttempts > 0 {
		opts = append(opts, retry.WithMaxAttempts(c.retryMaxAttempts))
	}
	if c.retryInitialDelay > 0 {
		opts = append(opts, retry.WithInitialDelay(c.retryInitialDelay))
	}
	return opts
}

func (c *RealClient) pollDelay() time.Duration {
	if c.pollInterval > 0 {
		return c.pollInterval
	}
	return 5 * time.Second
}

func (c *RealClient) poolsReady(ctx context.Context, clusterID int) (bool, error) {
	pools, err := c.api.ListLKENodePools(ctx, clusterID, nil)
	if err != nil {
		return false, err
	}
	for _, pool := range pools {
		ready := 0
		for _, node := range pool.Linodes {
			if node.Status == linodego.LKELinodeReady {
				ready++
			}
		}
		if ready < pool.Count {
			return false, nil
		}
	}
	return true, nil
}

// probeErr marks non-retryable API responses fatal so polls abort at once
// instead of burning their whole time budget.
func probeErr(err error) error {
	if IsUnauthorized(err) || IsNotFound(err) {
		return retry.Fatal(err)
	}
	return err
}

func handleFrom(cluster *linodego.LKECluster) *model.ClusterHandle {
	return &model.ClusterHandle{ID: cluster.ID, Label: cluster.Label}
}

func firstEndpoint(endpoints []linodego.LKEClusterAPIEndpoint) string {
	for _, e := range endpoints {
		if e.Endpoint != "" {
			return e.Endpoint
		}
	}
	return ""
}
