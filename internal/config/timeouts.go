package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds the wait bounds for every blocking step of the workflow.
// Each value can be customized via an environment variable.
type Timeouts struct {
	ClusterReady      time.Duration // Bound for cluster provisioning to reach ready
	Stabilize         time.Duration // Bound for the control-plane readiness gate
	Rollout           time.Duration // Bound for the deployment rollout
	LoadBalancer      time.Duration // Bound for external IP assignment
	Delete            time.Duration // Bound for teardown operations
	RetryMaxAttempts  int           // Attempts for retryable provider calls
	RetryInitialDelay time.Duration // First backoff delay
}

// LoadTimeouts loads the wait bounds from environment variables. Unset or
// unparsable variables fall back to their defaults.
//
// Environment Variables:
//   - LKEUP_TIMEOUT_CLUSTER (default: 20m)
//   - LKEUP_TIMEOUT_STABILIZE (default: 3m)
//   - LKEUP_TIMEOUT_ROLLOUT (default: 10m)
//   - LKEUP_TIMEOUT_LB (default: 10m)
//   - LKEUP_TIMEOUT_DELETE (default: 10m)
//   - LKEUP_RETRY_MAX_ATTEMPTS (default: 5)
//   - LKEUP_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		ClusterReady:      parseDuration("LKEUP_TIMEOUT_CLUSTER", 20*time.Minute),
		Stabilize:         parseDuration("LKEUP_TIMEOUT_STABILIZE", 3*time.Minute),
		Rollout:           parseDuration("LKEUP_TIMEOUT_ROLLOUT", 10*time.Minute),
		LoadBalancer:      parseDuration("LKEUP_TIMEOUT_LB", 10*time.Minute),
		Delete:            parseDuration("LKEUP_TIMEOUT_DELETE", 10*time.Minute),
		RetryMaxAttempts:  parseInt("LKEUP_RETRY_MAX_ATTEMPTS", 5),
		RetryInitialDelay: parseDuration("LKEUP_RETRY_INITIAL_DELAY", 1*time.Second),
	}
}

// parseDuration parses a duration from an environment variable, falling back
// to the default when unset or invalid.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable, falling back to
// the default when unset or invalid.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
