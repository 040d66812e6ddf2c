package config

import (
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/chris-milsted/lkeup/internal/model"
)

// Validate checks the configuration before any provider contact. The first
// problem found is returned as a model.ValidationError. Region, node type
// and Kubernetes version validity are the provider's call and are not
// checked here beyond being present.
func (c *Config) Validate() error {
	if err := validateName(c.Cluster.Label); err != nil {
		return &model.ValidationError{Field: "cluster.label", Reason: err.Error()}
	}
	if c.Cluster.Region == "" {
		return &model.ValidationError{Field: "cluster.region", Reason: "is required"}
	}
	if c.Cluster.K8sVersion == "" {
		return &model.ValidationError{Field: "cluster.k8s_version", Reason: "is required"}
	}
	if c.Cluster.NodeType == "" {
		return &model.ValidationError{Field: "cluster.node_type", Reason: "is required"}
	}
	if n := intOrZero(c.Cluster.NodeCount); n < 1 {
		return &model.ValidationError{Field: "cluster.node_count", Reason: fmt.Sprintf("must be at least 1, got %d", n)}
	}

	if err := validateName(c.App.Name); err != nil {
		return &model.ValidationError{Field: "app.name", Reason: err.Error()}
	}
	if err := validateName(c.App.Namespace); err != nil {
		return &model.ValidationError{Field: "app.namespace", Reason: err.Error()}
	}
	if c.App.Image == "" {
		return &model.ValidationError{Field: "app.image", Reason: "is required"}
	}
	if n := intOrZero(c.App.Replicas); n < 1 {
		return &model.ValidationError{Field: "app.replicas", Reason: fmt.Sprintf("must be at least 1, got %d", n)}
	}
	if err := validatePort(c.App.ContainerPort); err != nil {
		return &model.ValidationError{Field: "app.container_port", Reason: err.Error()}
	}
	if err := validatePort(c.App.ServicePort); err != nil {
		return &model.ValidationError{Field: "app.service_port", Reason: err.Error()}
	}
	if !strings.HasPrefix(c.App.HealthPath, "/") {
		return &model.ValidationError{Field: "app.health_path", Reason: "must start with /"}
	}

	// A pod must be able to pass readiness before liveness starts killing
	// it, so readiness timings may never exceed liveness timings.
	if c.App.Readiness.InitialDelaySeconds > c.App.Liveness.InitialDelaySeconds {
		return &model.ValidationError{
			Field:  "app.readiness_probe.initial_delay_seconds",
			Reason: fmt.Sprintf("must not exceed liveness initial delay (%d > %d)", c.App.Readiness.InitialDelaySeconds, c.App.Liveness.InitialDelaySeconds),
		}
	}
	if c.App.Readiness.PeriodSeconds > c.App.Liveness.PeriodSeconds {
		return &model.ValidationError{
			Field:  "app.readiness_probe.period_seconds",
			Reason: fmt.Sprintf("must not exceed liveness period (%d > %d)", c.App.Readiness.PeriodSeconds, c.App.Liveness.PeriodSeconds),
		}
	}
	if c.App.Readiness.PeriodSeconds < 1 {
		return &model.ValidationError{Field: "app.readiness_probe.period_seconds", Reason: "must be at least 1"}
	}
	if c.App.Liveness.PeriodSeconds < 1 {
		return &model.ValidationError{Field: "app.liveness_probe.period_seconds", Reason: "must be at least 1"}
	}

	for field, qty := range map[string]string{
		"app.resources.cpu_request":    c.App.Resources.CPURequest,
		"app.resources.memory_request": c.App.Resources.MemoryRequest,
		"app.resources.cpu_limit":      c.App.Resources.CPULimit,
		"app.resources.memory_limit":   c.App.Resources.MemoryLimit,
	} {
		if qty == "" {
			continue
		}
		if _, err := resource.ParseQuantity(qty); err != nil {
			return &model.ValidationError{Field: field, Reason: fmt.Sprintf("invalid quantity %q", qty)}
		}
	}

	if c.StabilizationDelaySeconds < 0 {
		return &model.ValidationError{Field: "stabilization_delay_seconds", Reason: "must not be negative"}
	}

	return nil
}

// validateName enforces DNS-safe naming for cluster labels, app names and
// namespaces: lowercase alphanumerics and hyphens, at most 63 characters.
func validateName(s string) error {
	if s == "" {
		return fmt.Errorf("is required")
	}
	if len(s) > 63 {
		return fmt.Errorf("must be 63 characters or less")
	}
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return fmt.Errorf("may only contain lowercase letters, numbers, and hyphens")
		}
	}
	if s[0] == '-' || s[len(s)-1] == '-' {
		return fmt.Errorf("must not start or end with a hyphen")
	}
	return nil
}

func validatePort(p int) error {
	if p < 1 || p > 65535 {
		return fmt.Errorf("must be between 1 and 65535, got %d", p)
	}
	return nil
}
