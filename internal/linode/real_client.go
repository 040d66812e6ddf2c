package linode

import (
	"context"
	"net/http"
	"time"

	"github.com/linode/linodego"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// lkeAPI is the slice of the linodego client the cluster operations need.
// Narrowing the SDK to an interface keeps the ensure and wait logic testable
// without HTTP fixtures.
type lkeAPI interface {
	ListLKEClusters(ctx context.Context, opts *linodego.ListOptions) ([]linodego.LKECluster, error)
	CreateLKECluster(ctx context.Context, opts linodego.LKEClusterCreateOptions) (*linodego.LKECluster, error)
	GetLKECluster(ctx context.Context, clusterID int) (*linodego.LKECluster, error)
	DeleteLKECluster(ctx context.Context, clusterID int) error
	GetLKEClusterKubeconfig(ctx context.Context, clusterID int) (*linodego.LKEClusterKubeconfig, error)
	ListLKEClusterAPIEndpoints(ctx context.Context, clusterID int, opts *linodego.ListOptions) ([]linodego.LKEClusterAPIEndpoint, error)
	ListLKENodePools(ctx context.Context, clusterID int, opts *linodego.ListOptions) ([]linodego.LKENodePool, error)
}

// Options configures the real Linode client.
type Options struct {
	// Token is the Linode API token. Sensitive: never logged.
	Token string

	// UserAgent is prepended to the SDK user agent.
	UserAgent string

	// RequestsPerSecond throttles outgoing API calls client-side so long
	// polls stay well inside Linode's rate limits. Zero means the default
	// of 5 requests per second with a burst of 5.
	RequestsPerSecond float64
	Burst             int

	// RetryMaxAttempts and RetryInitialDelay bound the retry loop around
	// transient API failures. Zero values take the retry package defaults.
	RetryMaxAttempts  int
	RetryInitialDelay time.Duration
}

// RealClient implements ClusterManager against the Linode API.
type RealClient struct {
	api               lkeAPI
	retryMaxAttempts  int
	retryInitialDelay time.Duration
	pollInterval      time.Duration
}

var _ ClusterManager = (*RealClient)(nil)

// NewRealClient builds a ClusterManager backed by linodego. The token rides
// an oauth2 static token transport, wrapped with a client-side rate limiter.
func NewRealClient(opts Options) *RealClient {
	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 5
	}

	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
	httpClient := &http.Client{
		Transport: &throttledTransport{
			base:    &oauth2.Transport{Source: tokenSource},
			limiter: rate.NewLimiter(rate.Limit(rps), burst),
		},
	}

	client := linodego.NewClient(httpClient)
	if opts.UserAgent != "" {
		client.SetUserAgent(opts.UserAgent)
	}

	return &RealClient{
		api:               &client,
		retryMaxAttempts:  opts.RetryMaxAttempts,
		retryInitialDelay: opts.RetryInitialDelay,
		pollInterval:      5 * time.Second,
	}
}

// throttledTransport delays requests until the limiter grants a slot.
type throttledTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

func (t *throttledTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}
