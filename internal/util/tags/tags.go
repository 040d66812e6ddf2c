// Package tags provides consistent tagging for Linode resources.
//
// Linode tags are flat strings, so ownership and grouping are encoded as
// "key:value" pairs. Every cluster created by lkeup carries the managed-by
// marker plus a cluster tag, so destroy and status can recognize resources
// that belong to a given configuration.
package tags

import "strings"

const (
	// Managed marks a resource as created by lkeup.
	Managed = "managed-by:lkeup"

	// clusterPrefix namespaces the cluster identity tag.
	clusterPrefix = "cluster:"
)

// ForCluster returns the tag set applied to a cluster with the given label.
func ForCluster(label string) []string {
	return []string{Managed, clusterPrefix + label}
}

// IsManaged reports whether the tag set carries the lkeup marker.
func IsManaged(tags []string) bool {
	for _, t := range tags {
		if t == Managed {
			return true
		}
	}
	return false
}

// ClusterLabel extracts the cluster label from a tag set.
func ClusterLabel(tags []string) (string, bool) {
	for _, t := range tags {
		if v, ok := strings.CutPrefix(t, clusterPrefix); ok {
			return v, true
		}
	}
	return "", false
}
