package k8s

import (
	"fmt"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/chris-milsted/lkeup/internal/model"
)

// RenderManifests serializes the namespace, deployment and service the
// workload stage would apply, in application order. Used by dry runs.
func RenderManifests(app model.AppSpec) (string, error) {
	deployment, err := BuildDeployment(app)
	if err != nil {
		return "", err
	}

	objects := []any{
		BuildNamespace(app.Namespace, selectorLabels(app)),
		deployment,
		BuildService(app),
	}

	var docs []string
	for _, obj := range objects {
		data, err := yaml.Marshal(obj)
		if err != nil {
			return "", fmt.Errorf("marshal manifest: %w", err)
		}
		docs = append(docs, string(data))
	}
	return strings.Join(docs, "---\n"), nil
}
