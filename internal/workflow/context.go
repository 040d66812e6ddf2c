package workflow

import (
	"context"
	"fmt"

	"github.com/chris-milsted/lkeup/internal/config"
	"github.com/chris-milsted/lkeup/internal/k8s"
	"github.com/chris-milsted/lkeup/internal/linode"
	"github.com/chris-milsted/lkeup/internal/logging"
	"github.com/chris-milsted/lkeup/internal/model"
)

// Context wraps all dependencies and state needed by a workflow stage.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Clusters linode.ClusterManager
	Observer Observer
	Timeouts *config.Timeouts

	// NewKubeClient builds the Kubernetes client once credentials are
	// materialized. Replaceable in tests.
	NewKubeClient func(kubeconfig []byte) (*k8s.Client, error)

	kube *k8s.Client
}

// NewContext creates a new workflow context.
func NewContext(ctx context.Context, cfg *config.Config, clusters linode.ClusterManager, observer Observer) *Context {
	if observer == nil {
		observer = NewLogObserver(logging.FromContext(ctx))
	}
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		Clusters: clusters,
		Observer: observer,
		Timeouts: config.LoadTimeouts(),
		NewKubeClient: func(kubeconfig []byte) (*k8s.Client, error) {
			return k8s.NewClientFromKubeconfig(kubeconfig, &k8s.Options{UserAgent: "lkeup"})
		},
	}
}

// KubeClient returns the cluster client, building it from the materialized
// kubeconfig on first use.
func (c *Context) KubeClient() (*k8s.Client, error) {
	if c.kube != nil {
		return c.kube, nil
	}
	if len(c.State.Kubeconfig) == 0 {
		return nil, fmt.Errorf("no kubeconfig materialized yet")
	}
	kube, err := c.NewKubeClient(c.State.Kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("build cluster client: %w", err)
	}
	c.kube = kube
	return kube, nil
}

// Advance moves the workflow to the given phase, emitting a phase event.
// Anything but the legal next transition is a programming error.
func (c *Context) Advance(next model.Phase) error {
	current := c.State.Phase
	if !current.CanAdvance(next) {
		return fmt.Errorf("illegal phase transition %s -> %s", current, next)
	}
	c.State.Phase = next
	c.Observer.Event(Event{
		Type:    EventPhaseChanged,
		Phase:   next,
		Message: fmt.Sprintf("phase %s", next),
	})
	return nil
}

// Fail drops the workflow into the failed phase, recording the cause.
// No-op when the phase cannot fail anymore (already failed or destroyed).
func (c *Context) Fail(err error) {
	current := c.State.Phase
	if !current.CanAdvance(model.PhaseFailed) {
		return
	}
	c.State.Phase = model.PhaseFailed
	c.Observer.Event(Event{
		Type:    EventPhaseChanged,
		Phase:   model.PhaseFailed,
		Err:     err,
		Message: fmt.Sprintf("phase %s", model.PhaseFailed),
	})
}
