package config

// Defaults mirror the stock single-app deployment: a three node LKE cluster
// in London running a Spring Boot style web app behind a LoadBalancer.
const (
	DefaultRegion     = "gb-lon"
	DefaultK8sVersion = "1.33"
	DefaultNodeType   = "g6-standard-2"
	DefaultNodeCount  = 3

	DefaultReplicas      = 2
	DefaultContainerPort = 8080
	DefaultServicePort   = 80
	DefaultHealthPath    = "/actuator/health"

	defaultCPURequest    = "250m"
	defaultMemoryRequest = "256Mi"
	defaultCPULimit      = "500m"
	defaultMemoryLimit   = "512Mi"

	// Readiness must never lag liveness, see Validate.
	defaultReadinessInitialDelaySeconds = 30
	defaultReadinessPeriodSeconds       = 5
	defaultLivenessInitialDelaySeconds  = 60
	defaultLivenessPeriodSeconds        = 10

	DefaultKubeconfigPath = "kubeconfig.yaml"
	DefaultStateDBPath    = ".lkeup/state.db"
)

// ApplyDefaults fills every unset field with its default. The cluster label
// and the app image have no defaults; Validate rejects them when missing.
func (c *Config) ApplyDefaults() {
	if c.Cluster.Region == "" {
		c.Cluster.Region = DefaultRegion
	}
	if c.Cluster.K8sVersion == "" {
		c.Cluster.K8sVersion = DefaultK8sVersion
	}
	if c.Cluster.NodeType == "" {
		c.Cluster.NodeType = DefaultNodeType
	}
	if c.Cluster.NodeCount == nil {
		n := DefaultNodeCount
		c.Cluster.NodeCount = &n
	}

	if c.App.Name == "" {
		c.App.Name = "springboot-app"
	}
	if c.App.Namespace == "" {
		c.App.Namespace = c.App.Name
	}
	if c.App.Replicas == nil {
		n := DefaultReplicas
		c.App.Replicas = &n
	}
	if c.App.ContainerPort == 0 {
		c.App.ContainerPort = DefaultContainerPort
	}
	if c.App.ServicePort == 0 {
		c.App.ServicePort = DefaultServicePort
	}
	if c.App.HealthPath == "" {
		c.App.HealthPath = DefaultHealthPath
	}
	if c.App.Resources.CPURequest == "" {
		c.App.Resources.CPURequest = defaultCPURequest
	}
	if c.App.Resources.MemoryRequest == "" {
		c.App.Resources.MemoryRequest = defaultMemoryRequest
	}
	if c.App.Resources.CPULimit == "" {
		c.App.Resources.CPULimit = defaultCPULimit
	}
	if c.App.Resources.MemoryLimit == "" {
		c.App.Resources.MemoryLimit = defaultMemoryLimit
	}
	if c.App.Readiness.InitialDelaySeconds == 0 {
		c.App.Readiness.InitialDelaySeconds = defaultReadinessInitialDelaySeconds
	}
	if c.App.Readiness.PeriodSeconds == 0 {
		c.App.Readiness.PeriodSeconds = defaultReadinessPeriodSeconds
	}
	if c.App.Liveness.InitialDelaySeconds == 0 {
		c.App.Liveness.InitialDelaySeconds = defaultLivenessInitialDelaySeconds
	}
	if c.App.Liveness.PeriodSeconds == 0 {
		c.App.Liveness.PeriodSeconds = defaultLivenessPeriodSeconds
	}

	if c.Paths.Kubeconfig == "" {
		c.Paths.Kubeconfig = DefaultKubeconfigPath
	}
	if c.Paths.StateDB == "" {
		c.Paths.StateDB = DefaultStateDBPath
	}
}
