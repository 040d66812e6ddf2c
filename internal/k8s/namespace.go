package k8s

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// BuildNamespace returns the typed namespace object.
func BuildNamespace(name string, labels map[string]string) *corev1.Namespace {
	return &corev1.Namespace{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Namespace",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:   name,
			Labels: labels,
		},
	}
}

// EnsureNamespace creates the namespace if it does not exist. An existing
// namespace is reused, not an error; created reports which case applied.
func (c *Client) EnsureNamespace(ctx context.Context, name string, labels map[string]string) (created bool, err error) {
	if c == nil || c.Clientset == nil {
		return false, fmt.Errorf("kube client is not initialized")
	}
	if name == "" {
		return false, fmt.Errorf("namespace name is empty")
	}

	_, err = c.Clientset.CoreV1().Namespaces().Get(ctx, name, metav1.GetOptions{})
	if err == nil {
		return false, nil
	}
	if !apierrors.IsNotFound(err) {
		return false, wrapAPIError("get namespace "+name, err)
	}

	_, err = c.Clientset.CoreV1().Namespaces().Create(ctx, BuildNamespace(name, labels), metav1.CreateOptions{})
	if err != nil {
		// Lost a creation race; the namespace is there, which is all
		// the workflow needs.
		if apierrors.IsAlreadyExists(err) {
			return false, nil
		}
		return false, wrapAPIError("create namespace "+name, err)
	}
	return true, nil
}

// DeleteNamespace deletes the namespace. An absent namespace is a no-op.
func (c *Client) DeleteNamespace(ctx context.Context, name string) error {
	if c == nil || c.Clientset == nil {
		return fmt.Errorf("kube client is not initialized")
	}
	if name == "" {
		return fmt.Errorf("namespace name is empty")
	}

	err := c.Clientset.CoreV1().Namespaces().Delete(ctx, name, metav1.DeleteOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil
		}
		return wrapAPIError("delete namespace "+name, err)
	}
	return nil
}
