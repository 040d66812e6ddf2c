// Package credentials materializes the provider-issued kubeconfig to disk.
//
// The artifact is the authentication handle for every later Kubernetes
// operation. It is written with owner-only permissions and has a lifecycle
// independent of the cluster: teardown leaves it in place.
package credentials

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/chris-milsted/lkeup/internal/model"
	"github.com/chris-milsted/lkeup/internal/workflow"
)

// Materializer decodes and writes the kubeconfig artifact.
type Materializer struct{}

// NewMaterializer creates a new credential materializer.
func NewMaterializer() *Materializer {
	return &Materializer{}
}

// Name implements the workflow.Stage interface.
func (m *Materializer) Name() string {
	return "credentials"
}

// Run decodes the base64 kubeconfig blob delivered by the provider and
// writes it to the configured path with mode 0600, creating parent
// directories as needed. An existing artifact is overwritten so it always
// reflects the current cluster handle.
func (m *Materializer) Run(ctx *workflow.Context) error {
	blob := ctx.State.KubeconfigB64
	if blob == "" {
		return &model.DecodeError{What: "kubeconfig", Err: errors.New("provider returned an empty blob")}
	}

	decoded, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return &model.DecodeError{What: "kubeconfig", Err: err}
	}

	path := ctx.Config.Paths.Kubeconfig
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &model.IOError{Op: "create directory", Path: dir, Err: err}
		}
	}

	if err := os.WriteFile(path, decoded, 0o600); err != nil {
		return &model.IOError{Op: "write", Path: path, Err: err}
	}
	// WriteFile keeps the permissions of a pre-existing file; force them.
	if err := os.Chmod(path, 0o600); err != nil {
		return &model.IOError{Op: "chmod", Path: path, Err: err}
	}

	ctx.State.Kubeconfig = decoded
	ctx.State.KubeconfigPath = path

	workflow.LogResourceReady(ctx.Observer, m.Name(), "kubeconfig", path, map[string]string{
		"bytes": strconv.Itoa(len(decoded)),
	})

	return ctx.Advance(model.PhaseCredentialsWritten)
}
