// Package cluster provisions the managed LKE cluster and waits for it to
// become ready.
package cluster

import (
	"strconv"

	"github.com/chris-milsted/lkeup/internal/model"
	"github.com/chris-milsted/lkeup/internal/workflow"
)

// Provisioner ensures the cluster exists and is ready.
type Provisioner struct{}

// NewProvisioner creates a new cluster provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the workflow.Stage interface.
func (p *Provisioner) Name() string {
	return "cluster"
}

// Run ensures a cluster carrying the configured label exists, then blocks
// until it reports ready. Re-running with an unchanged label attaches to
// the existing cluster instead of creating a second one.
func (p *Provisioner) Run(ctx *workflow.Context) error {
	spec := ctx.Config.ClusterSpec()

	if err := ctx.Advance(model.PhaseClusterRequested); err != nil {
		return err
	}

	handle, err := ctx.Clusters.EnsureCluster(ctx, spec)
	if err != nil {
		return err
	}

	ready, err := ctx.Clusters.WaitClusterReady(ctx, handle.ID, ctx.Timeouts.ClusterReady)
	if err != nil {
		return err
	}

	ctx.State.ClusterID = ready.ID
	ctx.State.ClusterLabel = ready.Label
	ctx.State.APIEndpoint = ready.Endpoint
	ctx.State.KubeconfigB64 = ready.KubeconfigB64

	workflow.LogResourceReady(ctx.Observer, p.Name(), "cluster", ready.Label, map[string]string{
		"id":       strconv.Itoa(ready.ID),
		"endpoint": ready.Endpoint,
	})

	return ctx.Advance(model.PhaseClusterReady)
}
