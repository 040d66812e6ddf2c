package config

import (
	"strings"
	"testing"

	"github.com/chris-milsted/lkeup/internal/model"
)

func baseConfig() *Config {
	cfg := &Config{
		Cluster: ClusterConfig{Label: "test"},
		App:     AppConfig{Image: "ghcr.io/example/app:1.0.0"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_DefaultsAreValid(t *testing.T) {
	t.Parallel()
	if err := baseConfig().Validate(); err != nil {
		t.Fatalf("Validate() on defaulted config = %v, want nil", err)
	}
}

func TestValidate_ProbeDefaultsOrdering(t *testing.T) {
	t.Parallel()
	cfg := baseConfig()

	// The stock timings must satisfy readiness <= liveness on both axes.
	if cfg.App.Readiness.InitialDelaySeconds > cfg.App.Liveness.InitialDelaySeconds {
		t.Error("default readiness initial delay exceeds liveness initial delay")
	}
	if cfg.App.Readiness.PeriodSeconds > cfg.App.Liveness.PeriodSeconds {
		t.Error("default readiness period exceeds liveness period")
	}
}

func TestValidate_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			name:      "missing label",
			mutate:    func(c *Config) { c.Cluster.Label = "" },
			wantField: "cluster.label",
		},
		{
			name:      "uppercase label",
			mutate:    func(c *Config) { c.Cluster.Label = "Test" },
			wantField: "cluster.label",
		},
		{
			name:      "label with leading hyphen",
			mutate:    func(c *Config) { c.Cluster.Label = "-test" },
			wantField: "cluster.label",
		},
		{
			name:      "missing region",
			mutate:    func(c *Config) { c.Cluster.Region = "" },
			wantField: "cluster.region",
		},
		{
			name:      "missing version",
			mutate:    func(c *Config) { c.Cluster.K8sVersion = "" },
			wantField: "cluster.k8s_version",
		},
		{
			name:      "missing node type",
			mutate:    func(c *Config) { c.Cluster.NodeType = "" },
			wantField: "cluster.node_type",
		},
		{
			name:      "zero node count",
			mutate:    func(c *Config) { zero := 0; c.Cluster.NodeCount = &zero },
			wantField: "cluster.node_count",
		},
		{
			name:      "negative node count",
			mutate:    func(c *Config) { n := -2; c.Cluster.NodeCount = &n },
			wantField: "cluster.node_count",
		},
		{
			name:      "missing image",
			mutate:    func(c *Config) { c.App.Image = "" },
			wantField: "app.image",
		},
		{
			name:      "zero replicas",
			mutate:    func(c *Config) { zero := 0; c.App.Replicas = &zero },
			wantField: "app.replicas",
		},
		{
			name:      "container port out of range",
			mutate:    func(c *Config) { c.App.ContainerPort = 70000 },
			wantField: "app.container_port",
		},
		{
			name:      "service port out of range",
			mutate:    func(c *Config) { c.App.ServicePort = -80 },
			wantField: "app.service_port",
		},
		{
			name:      "health path without slash",
			mutate:    func(c *Config) { c.App.HealthPath = "actuator/health" },
			wantField: "app.health_path",
		},
		{
			name:      "readiness delay exceeds liveness delay",
			mutate:    func(c *Config) { c.App.Readiness.InitialDelaySeconds = 90 },
			wantField: "app.readiness_probe.initial_delay_seconds",
		},
		{
			name:      "readiness period exceeds liveness period",
			mutate:    func(c *Config) { c.App.Readiness.PeriodSeconds = 30 },
			wantField: "app.readiness_probe.period_seconds",
		},
		{
			name:      "bad cpu quantity",
			mutate:    func(c *Config) { c.App.Resources.CPURequest = "two-cores" },
			wantField: "app.resources.cpu_request",
		},
		{
			name:      "bad memory quantity",
			mutate:    func(c *Config) { c.App.Resources.MemoryLimit = "512megs" },
			wantField: "app.resources.memory_limit",
		},
		{
			name:      "negative stabilization delay",
			mutate:    func(c *Config) { c.StabilizationDelaySeconds = -1 },
			wantField: "stabilization_delay_seconds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := baseConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}
			if !model.IsValidation(err) {
				t.Errorf("Expected ValidationError, got %T: %v", err, err)
			}
			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("Expected field %q in error, got: %v", tt.wantField, err)
			}
		})
	}
}

func TestTokenFromEnv(t *testing.T) {
	t.Run("set", func(t *testing.T) {
		t.Setenv(TokenEnvVar, "abc123")
		token, err := TokenFromEnv()
		if err != nil {
			t.Fatalf("TokenFromEnv() error = %v", err)
		}
		if token != "abc123" {
			t.Errorf("TokenFromEnv() = %q, want %q", token, "abc123")
		}
	})

	t.Run("unset", func(t *testing.T) {
		t.Setenv(TokenEnvVar, "")
		_, err := TokenFromEnv()
		if err == nil {
			t.Fatal("TokenFromEnv() expected error when unset")
		}
		if !model.IsValidation(err) {
			t.Errorf("Expected ValidationError, got: %v", err)
		}
	})
}
