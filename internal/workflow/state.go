package workflow

import "github.com/chris-milsted/lkeup/internal/model"

// State holds the shared results of workflow stages. It is progressively
// populated as each stage completes and is read by subsequent stages.
type State struct {
	Phase model.Phase

	// Cluster results (populated by the cluster stage)
	ClusterID    int
	ClusterLabel string
	APIEndpoint  string

	// KubeconfigB64 is the provider-issued credential blob as delivered.
	// Sensitive: never logged, in whole or in part.
	KubeconfigB64 string

	// Credential results (populated by the credentials stage)
	// Kubeconfig carries the decoded bytes; equally sensitive.
	Kubeconfig     []byte
	KubeconfigPath string

	// Workload results (populated by the workload stage)
	Namespace string
	Endpoint  model.ExternalEndpoint
}

// NewState creates the initial workflow state.
func NewState() *State {
	return &State{Phase: model.PhaseUnprovisioned}
}

// AppURL is the application URL once the external endpoint is assigned,
// empty while pending.
func (s *State) AppURL() string {
	return s.Endpoint.URL()
}
