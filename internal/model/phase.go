package model

// Phase is a checkpoint in the provisioning workflow. Forward phases are
// strictly ordered; a run advances one phase at a time and never skips.
type Phase string

const (
	PhaseUnprovisioned      Phase = "UNPROVISIONED"
	PhaseClusterRequested   Phase = "CLUSTER_REQUESTED"
	PhaseClusterReady       Phase = "CLUSTER_READY"
	PhaseCredentialsWritten Phase = "CREDENTIALS_WRITTEN"
	PhaseStabilizing        Phase = "STABILIZING"
	PhaseNamespaceReady     Phase = "NAMESPACE_READY"
	PhaseDeploymentReady    Phase = "DEPLOYMENT_READY"
	PhaseServiceReady       Phase = "SERVICE_READY"
	PhaseEndpointAssigned   Phase = "ENDPOINT_ASSIGNED"

	// PhaseFailed is reachable from any forward phase.
	PhaseFailed Phase = "FAILED"

	// Teardown phases. Destruction runs in reverse creation order and does
	// not touch the credential artifact.
	PhaseDestroying Phase = "DESTROYING"
	PhaseDestroyed  Phase = "DESTROYED"
)

var forwardOrder = []Phase{
	PhaseUnprovisioned,
	PhaseClusterRequested,
	PhaseClusterReady,
	PhaseCredentialsWritten,
	PhaseStabilizing,
	PhaseNamespaceReady,
	PhaseDeploymentReady,
	PhaseServiceReady,
	PhaseEndpointAssigned,
}

// Terminal reports whether no further forward transition is possible.
func (p Phase) Terminal() bool {
	return p == PhaseEndpointAssigned || p == PhaseFailed || p == PhaseDestroyed
}

// ForwardIndex returns the position of p in the forward order, or -1 for
// phases outside it.
func (p Phase) ForwardIndex() int {
	for i, q := range forwardOrder {
		if p == q {
			return i
		}
	}
	return -1
}

// CanAdvance reports whether moving from p to next is a legal transition:
// the immediate successor in the forward order, a drop to FAILED, or entering
// the teardown path.
func (p Phase) CanAdvance(next Phase) bool {
	if next == PhaseFailed {
		return !p.Terminal() || p == PhaseEndpointAssigned
	}
	if next == PhaseDestroying {
		return p != PhaseDestroying && p != PhaseDestroyed
	}
	if next == PhaseDestroyed {
		return p == PhaseDestroying
	}
	i, j := p.ForwardIndex(), next.ForwardIndex()
	return i >= 0 && j == i+1
}
