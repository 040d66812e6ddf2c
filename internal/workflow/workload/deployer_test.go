package workload

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"

	"github.com/chris-milsted/lkeup/internal/config"
	"github.com/chris-milsted/lkeup/internal/k8s"
	"github.com/chris-milsted/lkeup/internal/linode"
	"github.com/chris-milsted/lkeup/internal/model"
	"github.com/chris-milsted/lkeup/internal/workflow"
)

type eventRecorder struct {
	events []workflow.Event
}

func (r *eventRecorder) Event(event workflow.Event) {
	r.events = append(r.events, event)
}

func (r *eventRecorder) has(eventType workflow.EventType) bool {
	for _, e := range r.events {
		if e.Type == eventType {
			return true
		}
	}
	return false
}

func newTestContext(t *testing.T, cs *fake.Clientset) (*workflow.Context, *eventRecorder) {
	t.Helper()
	cfg, err := config.LoadFromBytes([]byte("cluster:\n  label: demo\napp:\n  image: ghcr.io/example/springboot-app:1.0.0\n"))
	require.NoError(t, err)

	recorder := &eventRecorder{}
	ctx := workflow.NewContext(context.Background(), cfg, &linode.MockClient{}, recorder)
	ctx.State.Phase = model.PhaseStabilizing
	ctx.State.Kubeconfig = []byte("apiVersion: v1")
	ctx.NewKubeClient = func(_ []byte) (*k8s.Client, error) {
		return k8s.NewForClientset(cs), nil
	}
	return ctx, recorder
}

// completeRolloutOnCreate makes created deployments report a finished
// rollout. The reactor mutates the incoming object and lets the tracker
// store it, standing in for the controller manager.
func completeRolloutOnCreate(cs *fake.Clientset) {
	cs.PrependReactor("create", "deployments", func(action k8stesting.Action) (bool, runtime.Object, error) {
		deployment := action.(k8stesting.CreateAction).GetObject().(*appsv1.Deployment)
		want := int32(1)
		if deployment.Spec.Replicas != nil {
			want = *deployment.Spec.Replicas
		}
		deployment.Status = appsv1.DeploymentStatus{
			Replicas:          want,
			UpdatedReplicas:   want,
			AvailableReplicas: want,
			Conditions: []appsv1.DeploymentCondition{
				{Type: appsv1.DeploymentAvailable, Status: corev1.ConditionTrue},
			},
		}
		return false, nil, nil
	})
}

// assignAddressOnCreate makes created services carry a load balancer
// address, standing in for the cloud controller.
func assignAddressOnCreate(cs *fake.Clientset, ip string) {
	cs.PrependReactor("create", "services", func(action k8stesting.Action) (bool, runtime.Object, error) {
		svc := action.(k8stesting.CreateAction).GetObject().(*corev1.Service)
		svc.Status.LoadBalancer.Ingress = []corev1.LoadBalancerIngress{{IP: ip}}
		return false, nil, nil
	})
}

func TestRun_RollsOutWorkloadToExternalEndpoint(t *testing.T) {
	t.Parallel()
	cs := fake.NewSimpleClientset()
	completeRolloutOnCreate(cs)
	assignAddressOnCreate(cs, "203.0.113.10")
	ctx, recorder := newTestContext(t, cs)

	err := NewDeployer().Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, model.PhaseEndpointAssigned, ctx.State.Phase)
	assert.Equal(t, "springboot-app", ctx.State.Namespace)
	assert.Equal(t, "http://203.0.113.10", ctx.State.AppURL())

	_, err = cs.CoreV1().Namespaces().Get(context.Background(), "springboot-app", metav1.GetOptions{})
	assert.NoError(t, err)

	deployment, err := cs.AppsV1().Deployments("springboot-app").Get(context.Background(), "springboot-app", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "ghcr.io/example/springboot-app:1.0.0", deployment.Spec.Template.Spec.Containers[0].Image)

	assert.True(t, recorder.has(workflow.EventResourceReady))
}

func TestRun_ReusesExistingNamespace(t *testing.T) {
	t.Parallel()
	cs := fake.NewSimpleClientset(&corev1.Namespace{
		ObjectMeta: metav1.ObjectMeta{Name: "springboot-app"},
	})
	completeRolloutOnCreate(cs)
	assignAddressOnCreate(cs, "203.0.113.10")
	ctx, recorder := newTestContext(t, cs)

	require.NoError(t, NewDeployer().Run(ctx))

	assert.True(t, recorder.has(workflow.EventResourceExists), "an existing namespace is reused, not recreated")
}

func TestRun_SurfacesRolloutTimeout(t *testing.T) {
	t.Parallel()
	cs := fake.NewSimpleClientset()
	assignAddressOnCreate(cs, "203.0.113.10")
	ctx, _ := newTestContext(t, cs)
	ctx.Timeouts.Rollout = 30 * time.Millisecond

	err := NewDeployer().Run(ctx)

	require.Error(t, err)
	assert.True(t, model.IsTimeout(err))
	assert.Equal(t, model.PhaseNamespaceReady, ctx.State.Phase, "the rollout never completed")
}

func TestRun_SurfacesLoadBalancerTimeout(t *testing.T) {
	t.Parallel()
	cs := fake.NewSimpleClientset()
	completeRolloutOnCreate(cs)
	ctx, _ := newTestContext(t, cs)
	ctx.Timeouts.LoadBalancer = 30 * time.Millisecond

	err := NewDeployer().Run(ctx)

	require.Error(t, err)
	assert.True(t, model.IsTimeout(err))
	assert.Equal(t, model.PhaseServiceReady, ctx.State.Phase, "the service exists but never got an address")
	assert.False(t, ctx.State.Endpoint.Assigned())
}
