package config

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
)

// WizardResult holds the user's choices from the init wizard.
type WizardResult struct {
	Label      string
	Region     string
	K8sVersion string
	NodeType   string
	NodeCount  int
	AppName    string
	Image      string
	Port       string
}

// RunWizard walks the user through a minimal cluster plus app configuration.
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{
		// Defaults
		Region:     DefaultRegion,
		K8sVersion: DefaultK8sVersion,
		NodeType:   DefaultNodeType,
		NodeCount:  DefaultNodeCount,
		Port:       strconv.Itoa(DefaultContainerPort),
	}

	form := huh.NewForm(
		// Cluster identity
		huh.NewGroup(
			huh.NewInput().
				Title("Cluster label").
				Description("A unique label for your cluster (DNS-safe, lowercase)").
				Placeholder("my-cluster").
				Value(&result.Label).
				Validate(validateName),
		),

		// Region and version
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Region").
				Description("Linode datacenter region").
				Options(
					huh.NewOption("London, UK (gb-lon)", "gb-lon"),
					huh.NewOption("Frankfurt, Germany (eu-central)", "eu-central"),
					huh.NewOption("Paris, France (fr-par)", "fr-par"),
					huh.NewOption("Amsterdam, Netherlands (nl-ams)", "nl-ams"),
					huh.NewOption("Washington, DC (us-iad)", "us-iad"),
					huh.NewOption("Chicago, IL (us-ord)", "us-ord"),
					huh.NewOption("Singapore (ap-south)", "ap-south"),
				).
				Value(&result.Region),

			huh.NewSelect[string]().
				Title("Kubernetes version").
				Options(
					huh.NewOption("1.33", "1.33"),
					huh.NewOption("1.34", "1.34"),
				).
				Value(&result.K8sVersion),
		),

		// Node pool
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Node type").
				Description("Shared vCPU instances (cost-effective)").
				Options(
					huh.NewOption("g6-standard-1 - 1 vCPU, 2GB RAM", "g6-standard-1"),
					huh.NewOption("g6-standard-2 - 2 vCPU, 4GB RAM", "g6-standard-2"),
					huh.NewOption("g6-standard-4 - 4 vCPU, 8GB RAM", "g6-standard-4"),
					huh.NewOption("g6-dedicated-4 - 4 vCPU dedicated, 8GB RAM", "g6-dedicated-4"),
				).
				Value(&result.NodeType),

			huh.NewSelect[int]().
				Title("Number of nodes").
				Description("Worker nodes run your application workloads").
				Options(
					huh.NewOption("1 node", 1),
					huh.NewOption("2 nodes", 2),
					huh.NewOption("3 nodes", 3),
					huh.NewOption("4 nodes", 4),
					huh.NewOption("5 nodes", 5),
				).
				Value(&result.NodeCount),
		),

		// Application
		huh.NewGroup(
			huh.NewInput().
				Title("Application name").
				Placeholder("springboot-app").
				Value(&result.AppName).
				Validate(validateName),

			huh.NewInput().
				Title("Container image").
				Description("Image reference for the web application").
				Placeholder("ghcr.io/example/springboot-demo:latest").
				Value(&result.Image).
				Validate(validateImageRef),

			huh.NewInput().
				Title("Container port").
				Description("Port the application listens on").
				Value(&result.Port).
				Validate(validatePortString),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}

	return result, nil
}

// ToConfig converts the wizard result to a Config with defaults applied.
func (r *WizardResult) ToConfig() *Config {
	port, _ := strconv.Atoi(r.Port)
	cfg := &Config{
		Cluster: ClusterConfig{
			Label:      r.Label,
			Region:     r.Region,
			K8sVersion: r.K8sVersion,
			NodeType:   r.NodeType,
			NodeCount:  &r.NodeCount,
		},
		App: AppConfig{
			Name:          r.AppName,
			Image:         r.Image,
			ContainerPort: port,
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

func validateImageRef(s string) error {
	if s == "" {
		return fmt.Errorf("container image is required")
	}
	return nil
}

func validatePortString(s string) error {
	p, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("port must be a number")
	}
	return validatePort(p)
}
