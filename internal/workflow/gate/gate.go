// Package gate blocks workload submission until the control plane answers.
//
// Freshly provisioned clusters reject API traffic for a while after the
// provider reports them ready. Instead of sleeping a fixed interval, the
// gate polls the apiserver with backoff until a discovery round-trip
// succeeds, bounded by the stabilization timeout. An optional fixed settle
// delay can be configured on top for environments where the probe itself
// is unreliable.
package gate

import (
	"context"
	"time"

	"github.com/chris-milsted/lkeup/internal/model"
	"github.com/chris-milsted/lkeup/internal/util/retry"
	"github.com/chris-milsted/lkeup/internal/workflow"
)

// Gate is the stabilization stage.
type Gate struct{}

// NewGate creates a new stabilization gate.
func NewGate() *Gate {
	return &Gate{}
}

// Name implements the workflow.Stage interface.
func (g *Gate) Name() string {
	return "stabilize"
}

// Run polls the control plane until it answers discovery requests, then
// applies the optional settle delay. Credential rejections abort the wait
// immediately; transient failures are retried until the timeout.
func (g *Gate) Run(ctx *workflow.Context) error {
	if err := ctx.Advance(model.PhaseStabilizing); err != nil {
		return err
	}

	kube, err := ctx.KubeClient()
	if err != nil {
		return err
	}

	probe := func(c context.Context) (bool, error) {
		if err := kube.PingControlPlane(c); err != nil {
			if model.IsAuth(err) {
				return false, retry.Fatal(err)
			}
			return false, err
		}
		return true, nil
	}

	err = retry.Poll(ctx, ctx.Timeouts.Stabilize, probe,
		retry.WithInitialDelay(2*time.Second),
		retry.WithMaxDelay(30*time.Second))
	if err != nil {
		if retry.IsFatal(err) {
			return err
		}
		return &model.TimeoutError{
			Op:    "control plane stabilization",
			Limit: ctx.Timeouts.Stabilize,
			Err:   err,
		}
	}

	if delay := ctx.Config.StabilizationDelay(); delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	workflow.LogResourceReady(ctx.Observer, g.Name(), "control plane", ctx.State.ClusterLabel, nil)
	return nil
}
