// Package model defines the domain types and error taxonomy shared across
// the provider client, the Kubernetes adapter and the workflow stages.
package model

import "fmt"

// ClusterSpec describes the desired managed Kubernetes cluster.
type ClusterSpec struct {
	// Label is the cluster identity. Provisioning is idempotent per label:
	// an existing cluster with this label is attached to, not duplicated.
	Label      string
	Region     string
	K8sVersion string
	NodeType   string
	NodeCount  int
	Tags       []string
}

// Validate rejects structurally invalid specs before any provider contact.
func (s ClusterSpec) Validate() error {
	if s.Label == "" {
		return &ValidationError{Field: "cluster.label", Reason: "is required"}
	}
	if s.Region == "" {
		return &ValidationError{Field: "cluster.region", Reason: "is required"}
	}
	if s.K8sVersion == "" {
		return &ValidationError{Field: "cluster.k8s_version", Reason: "is required"}
	}
	if s.NodeType == "" {
		return &ValidationError{Field: "cluster.node_type", Reason: "is required"}
	}
	if s.NodeCount < 1 {
		return &ValidationError{Field: "cluster.node_count", Reason: fmt.Sprintf("must be at least 1, got %d", s.NodeCount)}
	}
	return nil
}

// ClusterHandle identifies a provisioned cluster and carries what downstream
// stages need to reach it.
type ClusterHandle struct {
	ID       int
	Label    string
	Endpoint string

	// KubeconfigB64 is the provider-issued kubeconfig, base64 encoded.
	// Sensitive: never log it, in whole or in part.
	KubeconfigB64 string
}

// AppSpec describes the workload rolled out onto the cluster.
type AppSpec struct {
	Name          string
	Namespace     string
	Image         string
	Replicas      int32
	ContainerPort int32
	ServicePort   int32
	HealthPath    string
	Resources     Resources
	Readiness     Probe
	Liveness      Probe
}

// Probe holds the HTTP health probe timings for a container.
type Probe struct {
	InitialDelaySeconds int32
	PeriodSeconds       int32
}

// Resources holds the container resource envelope as Kubernetes quantities.
type Resources struct {
	CPURequest    string
	MemoryRequest string
	CPULimit      string
	MemoryLimit   string
}

// ExternalEndpoint is the ingress address assigned to the app service by the
// provider's load balancer. The zero value means assignment is still pending.
type ExternalEndpoint struct {
	IP       string
	Hostname string
}

// Assigned reports whether the provider has handed out an address yet.
func (e ExternalEndpoint) Assigned() bool {
	return e.IP != "" || e.Hostname != ""
}

// URL composes the application URL from the assigned address: plain HTTP,
// host only, no path suffix. Empty while the endpoint is pending.
func (e ExternalEndpoint) URL() string {
	switch {
	case e.IP != "":
		return fmt.Sprintf("http://%s", e.IP)
	case e.Hostname != "":
		return fmt.Sprintf("http://%s", e.Hostname)
	default:
		return ""
	}
}
