package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/chris-milsted/lkeup/internal/k8s"
)

// Factory function variables for endpoint - can be replaced in tests.
var (
	// newKubeClient builds a cluster client from kubeconfig bytes.
	newKubeClient = func(kubeconfig []byte) (*k8s.Client, error) {
		return k8s.NewClientFromKubeconfig(kubeconfig, &k8s.Options{UserAgent: "lkeup"})
	}

	// readFile reads a file (for testing injection).
	readFile = os.ReadFile
)

// Endpoint handles the endpoint command.
//
// It queries the live service in the cluster and prints the URL the
// application is reachable at, or "pending" while the load balancer address
// is still unassigned. Output is a single line for script use.
func Endpoint(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	kubeconfig, err := readFile(cfg.Paths.Kubeconfig)
	if err != nil {
		return fmt.Errorf("no credentials at %s (run 'lkeup apply' first): %w", cfg.Paths.Kubeconfig, err)
	}

	kube, err := newKubeClient(kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to build cluster client: %w", err)
	}

	app := cfg.AppSpec()
	endpoint, err := kube.ServiceExternalEndpoint(ctx, app.Namespace, app.Name)
	if err != nil {
		return fmt.Errorf("failed to query service %s/%s: %w", app.Namespace, app.Name, err)
	}

	if !endpoint.Assigned() {
		fmt.Println("pending")
		return nil
	}
	fmt.Println(endpoint.URL())
	return nil
}
