package linode

import (
	"context"
	"time"

	"github.com/chris-milsted/lkeup/internal/model"
)

// MockClient is a mock implementation of ClusterManager.
type MockClient struct {
	EnsureClusterFunc    func(ctx context.Context, spec model.ClusterSpec) (*model.ClusterHandle, error)
	ClusterByLabelFunc   func(ctx context.Context, label string) (*model.ClusterHandle, error)
	WaitClusterReadyFunc func(ctx context.Context, clusterID int, timeout time.Duration) (*model.ClusterHandle, error)
	NodePoolsFunc        func(ctx context.Context, clusterID int) ([]PoolStatus, error)
	DeleteClusterFunc    func(ctx context.Context, clusterID int) error
}

// Ensure interface compliance
var _ ClusterManager = (*MockClient)(nil)

// EnsureCluster mocks cluster find-or-create.
func (m *MockClient) EnsureCluster(ctx context.Context, spec model.ClusterSpec) (*model.ClusterHandle, error) {
	if m.EnsureClusterFunc != nil {
		return m.EnsureClusterFunc(ctx, spec)
	}
	return &model.ClusterHandle{ID: 1, Label: spec.Label}, nil
}

// ClusterByLabel mocks the label lookup.
func (m *MockClient) ClusterByLabel(ctx context.Context, label string) (*model.ClusterHandle, error) {
	if m.ClusterByLabelFunc != nil {
		return m.ClusterByLabelFunc(ctx, label)
	}
	return &model.ClusterHandle{ID: 1, Label: label}, nil
}

// WaitClusterReady mocks the readiness wait.
func (m *MockClient) WaitClusterReady(ctx context.Context, clusterID int, timeout time.Duration) (*model.ClusterHandle, error) {
	if m.WaitClusterReadyFunc != nil {
		return m.WaitClusterReadyFunc(ctx, clusterID, timeout)
	}
	return &model.ClusterHandle{
		ID:            clusterID,
		Label:         "mock-cluster",
		Endpoint:      "https://mock.linodelke.net:443",
		KubeconfigB64: "YXBpVmVyc2lvbjogdjE=",
	}, nil
}

// NodePools mocks the pool status listing.
func (m *MockClient) NodePools(ctx context.Context, clusterID int) ([]PoolStatus, error) {
	if m.NodePoolsFunc != nil {
		return m.NodePoolsFunc(ctx, clusterID)
	}
	return []PoolStatus{{Type: "g6-standard-2", Count: 3, Ready: 3}}, nil
}

// DeleteCluster mocks cluster deletion.
func (m *MockClient) DeleteCluster(ctx context.Context, clusterID int) error {
	if m.DeleteClusterFunc != nil {
		return m.DeleteClusterFunc(ctx, clusterID)
	}
	return nil
}
