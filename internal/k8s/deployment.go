package k8s

import (
	"context"
	"fmt"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/chris-milsted/lkeup/internal/model"
	"github.com/chris-milsted/lkeup/internal/util/retry"
)

// BuildDeployment returns the typed deployment for the app: requested
// replica count, container port, resource envelope and the HTTP health
// probes wired to the app's health path.
func BuildDeployment(app model.AppSpec) (*appsv1.Deployment, error) {
	requirements, err := resourceRequirements(app.Resources)
	if err != nil {
		return nil, err
	}

	labels := selectorLabels(app)

	return &appsv1.Deployment{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "apps/v1",
			Kind:       "Deployment",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      app.Name,
			Namespace: app.Namespace,
			Labels:    labels,
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: int32Ptr(app.Replicas),
			Selector: &metav1.LabelSelector{MatchLabels: labels},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: labels},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{
						{
							Name:  app.Name,
							Image: app.Image,
							Ports: []corev1.ContainerPort{
								{Name: "http", ContainerPort: app.ContainerPort, Protocol: corev1.ProtocolTCP},
							},
							Resources:      requirements,
							ReadinessProbe: httpProbe(app.HealthPath, app.ContainerPort, app.Readiness),
							LivenessProbe:  httpProbe(app.HealthPath, app.ContainerPort, app.Liveness),
						},
					},
				},
			},
		},
	}, nil
}

// EnsureDeployment creates the deployment or updates it to the built spec
// when it already exists.
func (c *Client) EnsureDeployment(ctx context.Context, app model.AppSpec) error {
	if c == nil || c.Clientset == nil {
		return fmt.Errorf("kube client is not initialized")
	}

	deployment, err := BuildDeployment(app)
	if err != nil {
		return err
	}

	deployments := c.Clientset.AppsV1().Deployments(app.Namespace)
	_, err = deployments.Get(ctx, app.Name, metav1.GetOptions{})
	if err != nil {
		if !apierrors.IsNotFound(err) {
			return wrapAPIError("get deployment "+app.Name, err)
		}
		if _, err := deployments.Create(ctx, deployment, metav1.CreateOptions{}); err != nil {
			if apierrors.IsAlreadyExists(err) {
				return &model.ConflictError{Resource: "deployment", Name: app.Name, Err: err}
			}
			return wrapAPIError("create deployment "+app.Name, err)
		}
		return nil
	}

	if _, err := deployments.Update(ctx, deployment, metav1.UpdateOptions{}); err != nil {
		return wrapAPIError("update deployment "+app.Name, err)
	}
	return nil
}

// WaitForDeployment blocks until the rollout completes: all requested
// replicas updated, available and the Available condition true.
func (c *Client) WaitForDeployment(ctx context.Context, namespace, name string, timeout time.Duration) error {
	probe := func(ctx context.Context) (bool, error) {
		deployment, err := c.Clientset.AppsV1().Deployments(namespace).Get(ctx, name, metav1.GetOptions{})
		if err != nil {
			if apierrors.IsUnauthorized(err) || apierrors.IsForbidden(err) {
				return false, retry.Fatal(err)
			}
			return false, err
		}
		return isDeploymentReady(deployment), nil
	}

	err := retry.Poll(ctx, timeout, probe,
		retry.WithInitialDelay(c.pollDelay()),
		retry.WithMaxDelay(15*time.Second))
	if err != nil {
		if retry.IsFatal(err) {
			return wrapAPIError("wait for deployment "+name, err)
		}
		return &model.TimeoutError{
			Op:    fmt.Sprintf("deployment %s/%s rollout", namespace, name),
			Limit: timeout,
			Err:   err,
		}
	}
	return nil
}

// DeleteDeployment deletes the deployment. An absent deployment is a no-op.
func (c *Client) DeleteDeployment(ctx context.Context, namespace, name string) error {
	if c == nil || c.Clientset == nil {
		return fmt.Errorf("kube client is not initialized")
	}

	err := c.Clientset.AppsV1().Deployments(namespace).Delete(ctx, name, metav1.DeleteOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil
		}
		return wrapAPIError("delete deployment "+name, err)
	}
	return nil
}

func isDeploymentReady(deployment *appsv1.Deployment) bool {
	if deployment.Spec.Replicas == nil {
		return false
	}
	want := *deployment.Spec.Replicas
	if deployment.Status.UpdatedReplicas != want {
		return false
	}
	if deployment.Status.Replicas != want {
		return false
	}
	if deployment.Status.AvailableReplicas != want {
		return false
	}

	for _, condition := range deployment.Status.Conditions {
		if condition.Type == appsv1.DeploymentAvailable &&
			condition.Status == corev1.ConditionTrue {
			return true
		}
	}
	return false
}

func httpProbe(path string, port int32, timing model.Probe) *corev1.Probe {
	return &corev1.Probe{
		ProbeHandler: corev1.ProbeHandler{
			HTTPGet: &corev1.HTTPGetAction{
				Path: path,
				Port: intstr.FromInt32(port),
			},
		},
		InitialDelaySeconds: timing.InitialDelaySeconds,
		PeriodSeconds:       timing.PeriodSeconds,
	}
}

func resourceRequirements(res model.Resources) (corev1.ResourceRequirements, error) {
	requirements := corev1.ResourceRequirements{
		Requests: corev1.ResourceList{},
		Limits:   corev1.ResourceList{},
	}

	quantities := []struct {
		value string
		name  corev1.ResourceName
		list  corev1.ResourceList
	}{
		{res.CPURequest, corev1.ResourceCPU, requirements.Requests},
		{res.MemoryRequest, corev1.ResourceMemory, requirements.Requests},
		{res.CPULimit, corev1.ResourceCPU, requirements.Limits},
		{res.MemoryLimit, corev1.ResourceMemory, requirements.Limits},
	}
	for _, q := range quantities {
		if q.value == "" {
			continue
		}
		parsed, err := resource.ParseQuantity(q.value)
		if err != nil {
			return corev1.ResourceRequirements{}, fmt.Errorf("parse resource quantity %q: %w", q.value, err)
		}
		q.list[q.name] = parsed
	}

	return requirements, nil
}

func selectorLabels(app model.AppSpec) map[string]string {
	return map[string]string{"app": app.Name}
}

func int32Ptr(i int32) *int32 {
	return &i
}
