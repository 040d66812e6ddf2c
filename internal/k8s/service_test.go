package k8s

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/chris-milsted/lkeup/internal/model"
)

func TestBuildService(t *testing.T) {
	t.Parallel()
	svc := BuildService(testApp())

	assert.Equal(t, corev1.ServiceTypeLoadBalancer, svc.Spec.Type)
	assert.Equal(t, map[string]string{"app": "springboot-app"}, svc.Spec.Selector)
	require.Len(t, svc.Spec.Ports, 1)
	assert.Equal(t, int32(80), svc.Spec.Ports[0].Port)
	assert.Equal(t, intstr.FromInt32(8080), svc.Spec.Ports[0].TargetPort)
}

func TestEnsureService_CreatesWhenAbsent(t *testing.T) {
	t.Parallel()
	cs := fake.NewSimpleClientset()
	client := newFakeClient(cs)

	require.NoError(t, client.EnsureService(context.Background(), testApp()))

	svc, err := cs.CoreV1().Services("springboot-app").Get(context.Background(), "springboot-app", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, corev1.ServiceTypeLoadBalancer, svc.Spec.Type)
}

func TestEnsureService_KeepsExisting(t *testing.T) {
	t.Parallel()
	existing := BuildService(testApp())
	existing.Spec.Ports[0].Port = 8443
	cs := fake.NewSimpleClientset(existing)
	client := newFakeClient(cs)

	require.NoError(t, client.EnsureService(context.Background(), testApp()))

	svc, err := cs.CoreV1().Services("springboot-app").Get(context.Background(), "springboot-app", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, int32(8443), svc.Spec.Ports[0].Port)
}

func TestServiceExternalEndpoint_PendingIsNotAssigned(t *testing.T) {
	t.Parallel()
	cs := fake.NewSimpleClientset(BuildService(testApp()))
	client := newFakeClient(cs)

	endpoint, err := client.ServiceExternalEndpoint(context.Background(), "springboot-app", "springboot-app")

	require.NoError(t, err)
	assert.False(t, endpoint.Assigned(), "a pending load balancer must never be reported as assigned")
	assert.Empty(t, endpoint.URL())
}

func TestServiceExternalEndpoint_Assigned(t *testing.T) {
	t.Parallel()
	svc := BuildService(testApp())
	svc.Status.LoadBalancer.Ingress = []corev1.LoadBalancerIngress{{IP: "203.0.113.10"}}
	cs := fake.NewSimpleClientset(svc)
	client := newFakeClient(cs)

	endpoint, err := client.ServiceExternalEndpoint(context.Background(), "springboot-app", "springboot-app")

	require.NoError(t, err)
	assert.True(t, endpoint.Assigned())
	assert.Equal(t, "203.0.113.10", endpoint.IP)
	assert.Equal(t, "http://203.0.113.10", endpoint.URL())
}

func TestWaitForExternalEndpoint_ReturnsAssignedAddress(t *testing.T) {
	t.Parallel()
	svc := BuildService(testApp())
	svc.Status.LoadBalancer.Ingress = []corev1.LoadBalancerIngress{{IP: "203.0.113.10"}}
	cs := fake.NewSimpleClientset(svc)
	client := newFakeClient(cs)

	endpoint, err := client.WaitForExternalEndpoint(context.Background(), "springboot-app", "springboot-app", time.Second)

	require.NoError(t, err)
	assert.Equal(t, "http://203.0.113.10", endpoint.URL())
}

func TestWaitForExternalEndpoint_TimesOutWhilePending(t *testing.T) {
	t.Parallel()
	cs := fake.NewSimpleClientset(BuildService(testApp()))
	client := newFakeClient(cs)

	_, err := client.WaitForExternalEndpoint(context.Background(), "springboot-app", "springboot-app", 30*time.Millisecond)

	require.Error(t, err)
	assert.True(t, model.IsTimeout(err))
}

func TestDeleteService_ToleratesAbsent(t *testing.T) {
	t.Parallel()
	client := newFakeClient(fake.NewSimpleClientset())

	err := client.DeleteService(context.Background(), "springboot-app", "springboot-app")

	assert.NoError(t, err)
}

func TestPingControlPlane(t *testing.T) {
	t.Parallel()
	client := newFakeClient(fake.NewSimpleClientset())

	err := client.PingControlPlane(context.Background())

	assert.NoError(t, err)
}
