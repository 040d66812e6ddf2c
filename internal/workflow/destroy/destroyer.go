// Package destroy tears the stack down in reverse creation order: service,
// deployment, namespace, then the cluster itself.
//
// Absent resources are skipped, so a destroy reconciles whatever partial
// state a failed apply left behind. The credential artifact on disk is
// deliberately left in place; it has its own lifecycle and deleting the
// cluster already invalidates it server-side.
package destroy

import (
	"errors"
	"os"

	"github.com/chris-milsted/lkeup/internal/k8s"
	"github.com/chris-milsted/lkeup/internal/linode"
	"github.com/chris-milsted/lkeup/internal/model"
	"github.com/chris-milsted/lkeup/internal/workflow"
)

// Destroyer is the teardown stage.
type Destroyer struct{}

// NewDestroyer creates a new destroyer.
func NewDestroyer() *Destroyer {
	return &Destroyer{}
}

// Name implements the workflow.Stage interface.
func (d *Destroyer) Name() string {
	return "destroy"
}

// Run removes the workload and then the cluster. When the cluster is
// already gone there is nothing left to tear down; the workload died with
// it.
func (d *Destroyer) Run(ctx *workflow.Context) error {
	if err := ctx.Advance(model.PhaseDestroying); err != nil {
		return err
	}

	label := ctx.Config.Cluster.Label

	handle, err := ctx.Clusters.ClusterByLabel(ctx, label)
	if err != nil {
		if errors.Is(err, linode.ErrClusterNotFound) {
			workflow.LogResourceDeleted(ctx.Observer, d.Name(), "cluster", label)
			return ctx.Advance(model.PhaseDestroyed)
		}
		return err
	}

	kube, err := d.kubeClient(ctx)
	if err != nil {
		ctx.Observer.Event(workflow.Event{
			Type:    workflow.EventProgress,
			Stage:   d.Name(),
			Message: "no usable credentials, skipping workload teardown; cluster deletion removes the workload",
		})
	} else if err := d.teardownWorkload(ctx, kube); err != nil {
		return err
	}

	if err := ctx.Clusters.DeleteCluster(ctx, handle.ID); err != nil {
		return err
	}
	workflow.LogResourceDeleted(ctx.Observer, d.Name(), "cluster", label)

	return ctx.Advance(model.PhaseDestroyed)
}

// kubeClient builds the cluster client from in-memory state or, on a fresh
// destroy run, from the credential artifact on disk.
func (d *Destroyer) kubeClient(ctx *workflow.Context) (*k8s.Client, error) {
	if len(ctx.State.Kubeconfig) == 0 {
		data, err := os.ReadFile(ctx.Config.Paths.Kubeconfig)
		if err != nil {
			return nil, err
		}
		ctx.State.Kubeconfig = data
	}
	return ctx.KubeClient()
}

func (d *Destroyer) teardownWorkload(ctx *workflow.Context, kube *k8s.Client) error {
	app := ctx.Config.AppSpec()

	if err := kube.DeleteService(ctx, app.Namespace, app.Name); err != nil {
		return err
	}
	workflow.LogResourceDeleted(ctx.Observer, d.Name(), "service", app.Name)

	if err := kube.DeleteDeployment(ctx, app.Namespace, app.Name); err != nil {
		return err
	}
	workflow.LogResourceDeleted(ctx.Observer, d.Name(), "deployment", app.Name)

	if err := kube.DeleteNamespace(ctx, app.Namespace); err != nil {
		return err
	}
	workflow.LogResourceDeleted(ctx.Observer, d.Name(), "namespace", app.Namespace)

	return nil
}
