package config

import (
	"time"

	"github.com/chris-milsted/lkeup/internal/model"
	"github.com/chris-milsted/lkeup/internal/util/tags"
)

// Config is the root configuration for a single cluster plus its workload.
type Config struct {
	Cluster ClusterConfig `yaml:"cluster"`
	App     AppConfig     `yaml:"app"`
	Paths   PathsConfig   `yaml:"paths,omitempty"`

	// StabilizationDelaySeconds adds a fixed settle delay before the first
	// control-plane readiness probe. Zero (the default) starts probing
	// immediately.
	StabilizationDelaySeconds int `yaml:"stabilization_delay_seconds,omitempty"`
}

// ClusterConfig describes the LKE cluster to provision.
type ClusterConfig struct {
	Label      string `yaml:"label"`
	Region     string `yaml:"region"`
	K8sVersion string `yaml:"k8s_version"`
	NodeType   string `yaml:"node_type"`

	// NodeCount is a pointer so an explicit zero is distinguishable from an
	// absent field: absent takes the default, zero fails validation.
	NodeCount *int `yaml:"node_count"`
}

// AppConfig describes the workload rolled out onto the cluster.
type AppConfig struct {
	Name          string          `yaml:"name"`
	Namespace     string          `yaml:"namespace,omitempty"`
	Image         string          `yaml:"image"`
	Replicas      *int            `yaml:"replicas"`
	ContainerPort int             `yaml:"container_port"`
	ServicePort   int             `yaml:"service_port"`
	HealthPath    string          `yaml:"health_path"`
	Resources     ResourcesConfig `yaml:"resources,omitempty"`
	Readiness     ProbeConfig     `yaml:"readiness_probe,omitempty"`
	Liveness      ProbeConfig     `yaml:"liveness_probe,omitempty"`
}

// ProbeConfig holds HTTP probe timings in seconds.
type ProbeConfig struct {
	InitialDelaySeconds int `yaml:"initial_delay_seconds"`
	PeriodSeconds       int `yaml:"period_seconds"`
}

// ResourcesConfig holds container resource quantities in Kubernetes notation.
type ResourcesConfig struct {
	CPURequest    string `yaml:"cpu_request,omitempty"`
	MemoryRequest string `yaml:"memory_request,omitempty"`
	CPULimit      string `yaml:"cpu_limit,omitempty"`
	MemoryLimit   string `yaml:"memory_limit,omitempty"`
}

// PathsConfig locates the local artifacts lkeup writes.
type PathsConfig struct {
	// Kubeconfig is where the cluster credentials are materialized.
	Kubeconfig string `yaml:"kubeconfig,omitempty"`

	// StateDB is the run journal database.
	StateDB string `yaml:"state_db,omitempty"`
}

// ClusterSpec converts the cluster section into the domain spec handed to
// the provider client, including the ownership tags.
func (c *Config) ClusterSpec() model.ClusterSpec {
	return model.ClusterSpec{
		Label:      c.Cluster.Label,
		Region:     c.Cluster.Region,
		K8sVersion: c.Cluster.K8sVersion,
		NodeType:   c.Cluster.NodeType,
		NodeCount:  intOrZero(c.Cluster.NodeCount),
		Tags:       tags.ForCluster(c.Cluster.Label),
	}
}

// AppSpec converts the app section into the domain spec handed to the
// workload deployer.
func (c *Config) AppSpec() model.AppSpec {
	return model.AppSpec{
		Name:          c.App.Name,
		Namespace:     c.App.Namespace,
		Image:         c.App.Image,
		Replicas:      int32(intOrZero(c.App.Replicas)),
		ContainerPort: int32(c.App.ContainerPort),
		ServicePort:   int32(c.App.ServicePort),
		HealthPath:    c.App.HealthPath,
		Resources: model.Resources{
			CPURequest:    c.App.Resources.CPURequest,
			MemoryRequest: c.App.Resources.MemoryRequest,
			CPULimit:      c.App.Resources.CPULimit,
			MemoryLimit:   c.App.Resources.MemoryLimit,
		},
		Readiness: model.Probe{
			InitialDelaySeconds: int32(c.App.Readiness.InitialDelaySeconds),
			PeriodSeconds:       int32(c.App.Readiness.PeriodSeconds),
		},
		Liveness: model.Probe{
			InitialDelaySeconds: int32(c.App.Liveness.InitialDelaySeconds),
			PeriodSeconds:       int32(c.App.Liveness.PeriodSeconds),
		},
	}
}

// StabilizationDelay returns the configured settle delay as a duration.
func (c *Config) StabilizationDelay() time.Duration {
	return time.Duration(c.StabilizationDelaySeconds) * time.Second
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
