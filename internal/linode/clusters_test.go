package linode

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/linode/linodego"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris-milsted/lkeup/internal/model"
)

// fakeLKE implements lkeAPI for tests.
type fakeLKE struct {
	listClusters  func(ctx context.Context, opts *linodego.ListOptions) ([]linodego.LKECluster, error)
	createCluster func(ctx context.Context, opts linodego.LKEClusterCreateOptions) (*linodego.LKECluster, error)
	getCluster    func(ctx context.Context, clusterID int) (*linodego.LKECluster, error)
	deleteCluster func(ctx context.Context, clusterID int) error
	kubeconfig    func(ctx context.Context, clusterID int) (*linodego.LKEClusterKubeconfig, error)
	endpoints     func(ctx context.Context, clusterID int, opts *linodego.ListOptions) ([]linodego.LKEClusterAPIEndpoint, error)
	nodePools     func(ctx context.Context, clusterID int, opts *linodego.ListOptions) ([]linodego.LKENodePool, error)

	listCalls   int
	createCalls int
	deleteCalls int
}

func (f *fakeLKE) ListLKEClusters(ctx context.Context, opts *linodego.ListOptions) ([]linodego.LKECluster, error) {
	f.listCalls++
	if f.listClusters != nil {
		return f.listClusters(ctx, opts)
	}
	return nil, nil
}

func (f *fakeLKE) CreateLKECluster(ctx context.Context, opts linodego.LKEClusterCreateOptions) (*linodego.LKECluster, error) {
	f.createCalls++
	if f.createCluster != nil {
		return f.createCluster(ctx, opts)
	}
	return &linodego.LKECluster{ID: 1, Label: opts.Label}, nil
}

func (f *fakeLKE) GetLKECluster(ctx context.Context, clusterID int) (*linodego.LKECluster, error) {
	if f.getCluster != nil {
		return f.getCluster(ctx, clusterID)
	}
	return &linodego.LKECluster{ID: clusterID, Status: linodego.LKEClusterReady}, nil
}

func (f *fakeLKE) DeleteLKECluster(ctx context.Context, clusterID int) error {
	f.deleteCalls++
	if f.deleteCluster != nil {
		return f.deleteCluster(ctx, clusterID)
	}
	return nil
}

func (f *fakeLKE) GetLKEClusterKubeconfig(ctx context.Context, clusterID int) (*linodego.LKEClusterKubeconfig, error) {
	if f.kubeconfig != nil {
		return f.kubeconfig(ctx, clusterID)
	}
	return &linodego.LKEClusterKubeconfig{KubeConfig: "a3ViZWNvbmZpZw=="}, nil
}

func (f *fakeLKE) ListLKEClusterAPIEndpoints(ctx context.Context, clusterID int, opts *linodego.ListOptions) ([]linodego.LKEClusterAPIEndpoint, error) {
	if f.endpoints != nil {
		return f.endpoints(ctx, clusterID, opts)
	}
	return []linodego.LKEClusterAPIEndpoint{{Endpoint: "https://abc.linodelke.net:443"}}, nil
}

func (f *fakeLKE) ListLKENodePools(ctx context.Context, clusterID int, opts *linodego.ListOptions) ([]linodego.LKENodePool, error) {
	if f.nodePools != nil {
		return f.nodePools(ctx, clusterID, opts)
	}
	return []linodego.LKENodePool{readyPool(3)}, nil
}

func readyPool(count int) linodego.LKENodePool {
	pool := linodego.LKENodePool{Count: count, Type: "g6-standard-2"}
	for i := 0; i < count; i++ {
		pool.Linodes = append(pool.Linodes, linodego.LKENodePoolLinode{Status: linodego.LKELinodeReady})
	}
	return pool
}

func newTestClient(api lkeAPI) *RealClient {
	return &RealClient{
		api:               api,
		retryMaxAttempts:  3,
		retryInitialDelay: time.Millisecond,
		pollInterval:      time.Millisecond,
	}
}

func testSpec() model.ClusterSpec {
	return model.ClusterSpec{
		Label:      "demo",
		Region:     "gb-lon",
		K8sVersion: "1.33",
		NodeType:   "g6-standard-2",
		NodeCount:  3,
		Tags:       []string{"managed-by:lkeup", "cluster:demo"},
	}
}

func TestEnsureCluster_InvalidSpecMakesNoAPICalls(t *testing.T) {
	t.Parallel()
	api := &fakeLKE{}
	client := newTestClient(api)

	spec := testSpec()
	spec.NodeCount = 0

	_, err := client.EnsureCluster(context.Background(), spec)

	require.Error(t, err)
	assert.True(t, model.IsValidation(err))
	assert.Zero(t, api.listCalls, "invalid spec must not reach the API")
	assert.Zero(t, api.createCalls)
}

func TestEnsureCluster_AttachesToExisting(t *testing.T) {
	t.Parallel()
	api := &fakeLKE{
		listClusters: func(_ context.Context, _ *linodego.ListOptions) ([]linodego.LKECluster, error) {
			return []linodego.LKECluster{{ID: 42, Label: "demo"}}, nil
		},
	}
	client := newTestClient(api)

	handle, err := client.EnsureCluster(context.Background(), testSpec())

	require.NoError(t, err)
	assert.Equal(t, 42, handle.ID)
	assert.Equal(t, "demo", handle.Label)
	assert.Zero(t, api.createCalls, "existing cluster must be reused, not recreated")
}

func TestEnsureCluster_CreatesWhenAbsent(t *testing.T) {
	t.Parallel()
	var created linodego.LKEClusterCreateOptions
	api := &fakeLKE{
		createCluster: func(_ context.Context, opts linodego.LKEClusterCreateOptions) (*linodego.LKECluster, error) {
			created = opts
			return &linodego.LKECluster{ID: 7, Label: opts.Label}, nil
		},
	}
	client := newTestClient(api)

	handle, err := client.EnsureCluster(context.Background(), testSpec())

	require.NoError(t, err)
	assert.Equal(t, 7, handle.ID)
	assert.Equal(t, 1, api.createCalls)

	assert.Equal(t, "demo", created.Label)
	assert.Equal(t, "gb-lon", created.Region)
	assert.Equal(t, "1.33", created.K8sVersion)
	assert.Contains(t, created.Tags, "managed-by:lkeup")
	require.Len(t, created.NodePools, 1)
	assert.Equal(t, 3, created.NodePools[0].Count)
	assert.Equal(t, "g6-standard-2", created.NodePools[0].Type)
}

func TestEnsureCluster_RetriesServerErrors(t *testing.T) {
	t.Parallel()
	api := &fakeLKE{}
	api.createCluster = func(_ context.Context, opts linodego.LKEClusterCreateOptions) (*linodego.LKECluster, error) {
		if api.createCalls == 1 {
			return nil, &linodego.Error{Code: 500, Message: "internal error"}
		}
		return &linodego.LKECluster{ID: 9, Label: opts.Label}, nil
	}
	client := newTestClient(api)

	handle, err := client.EnsureCluster(context.Background(), testSpec())

	require.NoError(t, err)
	assert.Equal(t, 9, handle.ID)
	assert.Equal(t, 2, api.createCalls)
}

func TestEnsureCluster_AuthFailureDoesNotRetry(t *testing.T) {
	t.Parallel()
	api := &fakeLKE{
		createCluster: func(_ context.Context, _ linodego.LKEClusterCreateOptions) (*linodego.LKECluster, error) {
			return nil, &linodego.Error{Code: 401, Message: "invalid token"}
		},
	}
	client := newTestClient(api)

	_, err := client.EnsureCluster(context.Background(), testSpec())

	require.Error(t, err)
	assert.True(t, model.IsAuth(err))
	assert.Equal(t, 1, api.createCalls, "credential rejections must not be retried")
}

func TestClusterByLabel_NotFound(t *testing.T) {
	t.Parallel()
	client := newTestClient(&fakeLKE{})

	_, err := client.ClusterByLabel(context.Background(), "absent")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrClusterNotFound))
}

func TestClusterByLabel_IgnoresPartialMatches(t *testing.T) {
	t.Parallel()
	api := &fakeLKE{
		listClusters: func(_ context.Context, _ *linodego.ListOptions) ([]linodego.LKECluster, error) {
			return []linodego.LKECluster{{ID: 5, Label: "demo-staging"}}, nil
		},
	}
	client := newTestClient(api)

	_, err := client.ClusterByLabel(context.Background(), "demo")

	assert.True(t, errors.Is(err, ErrClusterNotFound))
}

func TestWaitClusterReady_Success(t *testing.T) {
	t.Parallel()
	probes := 0
	api := &fakeLKE{
		getCluster: func(_ context.Context, clusterID int) (*linodego.LKECluster, error) {
			probes++
			status := linodego.LKEClusterNotReady
			if probes >= 3 {
				status = linodego.LKEClusterReady
			}
			return &linodego.LKECluster{ID: clusterID, Label: "demo", Status: status}, nil
		},
	}
	client := newTestClient(api)

	handle, err := client.WaitClusterReady(context.Background(), 42, 5*time.Second)

	require.NoError(t, err)
	assert.Equal(t, 42, handle.ID)
	assert.Equal(t, "demo", handle.Label)
	assert.Equal(t, "https://abc.linodelke.net:443", handle.Endpoint)
	assert.Equal(t, "a3ViZWNvbmZpZw==", handle.KubeconfigB64)
	assert.GreaterOrEqual(t, probes, 3)
}

func TestWaitClusterReady_WaitsForNodePools(t *testing.T) {
	t.Parallel()
	lists := 0
	api := &fakeLKE{
		nodePools: func(_ context.Context, _ int, _ *linodego.ListOptions) ([]linodego.LKENodePool, error) {
			lists++
			if lists < 2 {
				pool := readyPool(3)
				pool.Linodes[2].Status = linodego.LKELinodeNotReady
				return []linodego.LKENodePool{pool}, nil
			}
			return []linodego.LKENodePool{readyPool(3)}, nil
		},
	}
	client := newTestClient(api)

	_, err := client.WaitClusterReady(context.Background(), 42, 5*time.Second)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, lists, 2)
}

func TestWaitClusterReady_Timeout(t *testing.T) {
	t.Parallel()
	api := &fakeLKE{
		getCluster: func(_ context.Context, clusterID int) (*linodego.LKECluster, error) {
			return &linodego.LKECluster{ID: clusterID, Status: linodego.LKEClusterNotReady}, nil
		},
	}
	client := newTestClient(api)

	_, err := client.WaitClusterReady(context.Background(), 42, 30*time.Millisecond)

	require.Error(t, err)
	assert.True(t, model.IsTimeout(err))
}

func TestWaitClusterReady_AuthFailureAbortsWait(t *testing.T) {
	t.Parallel()
	api := &fakeLKE{
		getCluster: func(_ context.Context, _ int) (*linodego.LKECluster, error) {
			return nil, &linodego.Error{Code: 401, Message: "invalid token"}
		},
	}
	client := newTestClient(api)

	start := time.Now()
	_, err := client.WaitClusterReady(context.Background(), 42, 10*time.Second)

	require.Error(t, err)
	assert.True(t, model.IsAuth(err))
	assert.Less(t, time.Since(start), time.Second, "auth failures must abort the wait immediately")
}

func TestWaitClusterReady_ToleratesTransientProbeErrors(t *testing.T) {
	t.Parallel()
	probes := 0
	api := &fakeLKE{
		getCluster: func(_ context.Context, clusterID int) (*linodego.LKECluster, error) {
			probes++
			if probes == 1 {
				return nil, &linodego.Error{Code: 500, Message: "internal error"}
			}
			return &linodego.LKECluster{ID: clusterID, Label: "demo", Status: linodego.LKEClusterReady}, nil
		},
	}
	client := newTestClient(api)

	handle, err := client.WaitClusterReady(context.Background(), 42, 5*time.Second)

	require.NoError(t, err)
	assert.Equal(t, 42, handle.ID)
}

func TestNodePools_ReportsReadiness(t *testing.T) {
	t.Parallel()
	api := &fakeLKE{
		nodePools: func(_ context.Context, _ int, _ *linodego.ListOptions) ([]linodego.LKENodePool, error) {
			pool := readyPool(3)
			pool.Linodes[0].Status = linodego.LKELinodeNotReady
			return []linodego.LKENodePool{pool}, nil
		},
	}
	client := newTestClient(api)

	pools, err := client.NodePools(context.Background(), 42)

	require.NoError(t, err)
	require.Len(t, pools, 1)
	assert.Equal(t, "g6-standard-2", pools[0].Type)
	assert.Equal(t, 3, pools[0].Count)
	assert.Equal(t, 2, pools[0].Ready)
}

func TestDeleteCluster_ToleratesAbsent(t *testing.T) {
	t.Parallel()
	api := &fakeLKE{
		deleteCluster: func(_ context.Context, _ int) error {
			return &linodego.Error{Code: 404, Message: "not found"}
		},
	}
	client := newTestClient(api)

	err := client.DeleteCluster(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, 1, api.deleteCalls)
}

func TestDeleteCluster_SurfacesPersistentFailures(t *testing.T) {
	t.Parallel()
	api := &fakeLKE{
		deleteCluster: func(_ context.Context, _ int) error {
			return &linodego.Error{Code: 500, Message: "internal error"}
		},
	}
	client := newTestClient(api)

	err := client.DeleteCluster(context.Background(), 42)

	require.Error(t, err)
	assert.True(t, model.IsProvider(err))
	assert.Equal(t, 3, api.deleteCalls, "server errors are retried up to the attempt budget")
}
