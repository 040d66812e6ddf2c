// Package linode wraps the Linode API for LKE cluster lifecycle operations.
//
// The workflow depends on the [ClusterManager] interface. [RealClient] backs
// it with the linodego SDK behind an OAuth2 token transport and a client-side
// rate limiter; [MockClient] backs it in tests. Provisioning is idempotent
// per cluster label: an existing cluster with the requested label is attached
// to, never duplicated.
package linode
