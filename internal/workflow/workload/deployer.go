// Package workload rolls the application out onto the cluster: namespace,
// deployment, then a LoadBalancer service, ending with the external address.
package workload

import (
	"github.com/chris-milsted/lkeup/internal/model"
	"github.com/chris-milsted/lkeup/internal/workflow"
)

// Deployer is the workload rollout stage.
type Deployer struct{}

// NewDeployer creates a new workload deployer.
func NewDeployer() *Deployer {
	return &Deployer{}
}

// Name implements the workflow.Stage interface.
func (d *Deployer) Name() string {
	return "workload"
}

// Run applies the workload in dependency order and waits at each step:
// namespace, deployment rollout, service, load balancer address. The
// external endpoint is only recorded once the provider assigns an address.
func (d *Deployer) Run(ctx *workflow.Context) error {
	app := ctx.Config.AppSpec()

	kube, err := ctx.KubeClient()
	if err != nil {
		return err
	}

	created, err := kube.EnsureNamespace(ctx, app.Namespace, map[string]string{"app": app.Name})
	if err != nil {
		return err
	}
	if created {
		workflow.LogResourceReady(ctx.Observer, d.Name(), "namespace", app.Namespace, nil)
	} else {
		workflow.LogResourceExists(ctx.Observer, d.Name(), "namespace", app.Namespace)
	}
	ctx.State.Namespace = app.Namespace
	if err := ctx.Advance(model.PhaseNamespaceReady); err != nil {
		return err
	}

	if err := kube.EnsureDeployment(ctx, app); err != nil {
		return err
	}
	if err := kube.WaitForDeployment(ctx, app.Namespace, app.Name, ctx.Timeouts.Rollout); err != nil {
		return err
	}
	workflow.LogResourceReady(ctx.Observer, d.Name(), "deployment", app.Name, map[string]string{
		"image": app.Image,
	})
	if err := ctx.Advance(model.PhaseDeploymentReady); err != nil {
		return err
	}

	if err := kube.EnsureService(ctx, app); err != nil {
		return err
	}
	if err := ctx.Advance(model.PhaseServiceReady); err != nil {
		return err
	}

	endpoint, err := kube.WaitForExternalEndpoint(ctx, app.Namespace, app.Name, ctx.Timeouts.LoadBalancer)
	if err != nil {
		return err
	}
	ctx.State.Endpoint = endpoint

	workflow.LogResourceReady(ctx.Observer, d.Name(), "service", app.Name, map[string]string{
		"url": endpoint.URL(),
	})

	return ctx.Advance(model.PhaseEndpointAssigned)
}
