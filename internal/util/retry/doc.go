// Package retry provides exponential backoff retry logic for transient failures.
//
// [Do] retries an operation with configurable attempts, initial delay, and
// maximum delay; it serves Linode API calls that may fail transiently.
// [Poll] waits for a condition with backoff-spaced probes under a hard time
// bound; it serves the cluster-ready, control-plane and load-balancer waits.
package retry
