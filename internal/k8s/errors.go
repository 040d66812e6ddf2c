package k8s

import (
	apierrors "k8s.io/apimachinery/pkg/api/errors"

	"github.com/chris-milsted/lkeup/internal/model"
)

// wrapAPIError maps a Kubernetes API failure into the workflow error
// taxonomy. AlreadyExists is handled at the call sites that tolerate it.
func wrapAPIError(op string, err error) error {
	if err == nil {
		return nil
	}
	if apierrors.IsUnauthorized(err) || apierrors.IsForbidden(err) {
		return &model.AuthError{Op: op, Err: err}
	}
	return &model.ProviderError{Op: op, Err: err}
}
