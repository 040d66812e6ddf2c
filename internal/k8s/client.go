// Package k8s wraps the client-go operations the deployment workflow needs:
// namespace and workload management plus the bounded waits for rollout and
// load balancer provisioning.
package k8s

import (
	"context"
	"fmt"
	"time"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// Client wraps the typed Kubernetes clientset.
type Client struct {
	Clientset kubernetes.Interface

	pollInterval time.Duration
}

// Options controls client construction tuning. All fields are optional.
type Options struct {
	// UserAgent adds a custom user agent to the REST config.
	UserAgent string
	// QPS sets the allowed queries per second on the REST client.
	QPS float32
	// Burst sets the client-side rate limiter burst.
	Burst int
}

func (o *Options) applyDefaults() {
	if o.QPS <= 0 {
		o.QPS = 20
	}
	if o.Burst <= 0 {
		o.Burst = 50
	}
}

// NewClientFromKubeconfig constructs a Client from kubeconfig bytes.
func NewClientFromKubeconfig(kubeconfig []byte, opts *Options) (*Client, error) {
	if len(kubeconfig) == 0 {
		return nil, fmt.Errorf("kubeconfig is empty")
	}
	cfg, err := clientcmd.RESTConfigFromKubeConfig(kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("build REST config from kubeconfig: %w", err)
	}
	return newClientFromRESTConfig(cfg, opts)
}

func newClientFromRESTConfig(cfg *rest.Config, opts *Options) (*Client, error) {
	if opts == nil {
		opts = &Options{}
	}
	opts.applyDefaults()

	cfg.QPS = opts.QPS
	cfg.Burst = opts.Burst
	if opts.UserAgent != "" {
		_ = rest.AddUserAgent(cfg, opts.UserAgent)
	}

	cs, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("build clientset: %w", err)
	}

	return &Client{Clientset: cs, pollInterval: 5 * time.Second}, nil
}

// NewForClientset wraps an existing clientset. Used by tests with the fake
// clientset and by callers that build their own REST config.
func NewForClientset(cs kubernetes.Interface) *Client {
	return &Client{Clientset: cs, pollInterval: 5 * time.Second}
}

// PingControlPlane performs a discovery round-trip against the API server.
// A nil return means the control plane answered.
func (c *Client) PingControlPlane(_ context.Context) error {
	if c == nil || c.Clientset == nil {
		return fmt.Errorf("kube client is not initialized")
	}
	if _, err := c.Clientset.Discovery().ServerVersion(); err != nil {
		return wrapAPIError("ping control plane", err)
	}
	return nil
}

func (c *Client) pollDelay() time.Duration {
	if c.pollInterval > 0 {
		return c.pollInterval
	}
	return 5 * time.Second
}
