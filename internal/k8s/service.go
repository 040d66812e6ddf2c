package k8s

import (
	"context"
	"fmt"
	"time"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/chris-milsted/lkeup/internal/model"
	"github.com/chris-milsted/lkeup/internal/util/retry"
)

// BuildService returns the typed LoadBalancer service fronting the app,
// mapping the public service port onto the container port.
func BuildService(app model.AppSpec) *corev1.Service {
	return &corev1.Service{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Service",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      app.Name,
			Namespace: app.Namespace,
			Labels:    selectorLabels(app),
		},
		Spec: corev1.ServiceSpec{
			Type:     corev1.ServiceTypeLoadBalancer,
			Selector: selectorLabels(app),
			Ports: []corev1.ServicePort{
				{
					Name:       "http",
					Port:       app.ServicePort,
					TargetPort: intstr.FromInt32(app.ContainerPort),
					Protocol:   corev1.ProtocolTCP,
				},
			},
		},
	}
}

// EnsureService creates the service or leaves an existing one in place.
// Service specs are immutable enough (NodePort, cluster IP) that blind
// updates fail; an existing service with the right name is kept as is.
func (c *Client) EnsureService(ctx context.Context, app model.AppSpec) error {
	if c == nil || c.Clientset == nil {
		return fmt.Errorf("kube client is not initialized")
	}

	services := c.Clientset.CoreV1().Services(app.Namespace)
	_, err := services.Get(ctx, app.Name, metav1.GetOptions{})
	if err == nil {
		return nil
	}
	if !apierrors.IsNotFound(err) {
		return wrapAPIError("get service "+app.Name, err)
	}

	if _, err := services.Create(ctx, BuildService(app), metav1.CreateOptions{}); err != nil {
		if apierrors.IsAlreadyExists(err) {
			return nil
		}
		return wrapAPIError("create service "+app.Name, err)
	}
	return nil
}

// ServiceExternalEndpoint reports the load balancer address of the service.
// A pending assignment returns the zero endpoint without error; an endpoint
// is only ever reported once the provider has published an address.
func (c *Client) ServiceExternalEndpoint(ctx context.Context, namespace, name string) (model.ExternalEndpoint, error) {
	if c == nil || c.Clientset == nil {
		return model.ExternalEndpoint{}, fmt.Errorf("kube client is not initialized")
	}

	svc, err := c.Clientset.CoreV1().Services(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return model.ExternalEndpoint{}, wrapAPIError("get service "+name, err)
	}

	if len(svc.Status.LoadBalancer.Ingress) == 0 {
		return model.ExternalEndpoint{}, nil
	}

	ingress := svc.Status.LoadBalancer.Ingress[0]
	return model.ExternalEndpoint{IP: ingress.IP, Hostname: ingress.Hostname}, nil
}

// WaitForExternalEndpoint blocks until the provider assigns the service a
// load balancer address.
func (c *Client) WaitForExternalEndpoint(ctx context.Context, namespace, name string, timeout time.Duration) (model.ExternalEndpoint, error) {
	var endpoint model.ExternalEndpoint

	probe := func(ctx context.Context) (bool, error) {
		current, err := c.ServiceExternalEndpoint(ctx, namespace, name)
		if err != nil {
			if model.IsAuth(err) {
				return false, retry.Fatal(err)
			}
			return false, err
		}
		if !current.Assigned() {
			return false, nil
		}
		endpoint = current
		return true, nil
	}

	err := retry.Poll(ctx, timeout, probe,
		retry.WithInitialDelay(c.pollDelay()),
		retry.WithMaxDelay(15*time.Second))
	if err != nil {
		if retry.IsFatal(err) {
			return model.ExternalEndpoint{}, err
		}
		return model.ExternalEndpoint{}, &model.TimeoutError{
			Op:    fmt.Sprintf("service %s/%s load balancer assignment", namespace, name),
			Limit: timeout,
			Err:   err,
		}
	}
	return endpoint, nil
}

// DeleteService deletes the service. An absent service is a no-op.
func (c *Client) DeleteService(ctx context.Context, namespace, name string) error {
	if c == nil || c.Clientset == nil {
		return fmt.Errorf("kube client is not initialized")
	}

	err := c.Clientset.CoreV1().Services(namespace).Delete(ctx, name, metav1.DeleteOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil
		}
		return wrapAPIError("delete service "+name, err)
	}
	return nil
}
