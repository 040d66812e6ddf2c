// Package config loads, defaults and validates the lkeup configuration.
//
// Configuration comes from a single YAML file (lkeup.yaml by default) plus
// the LINODE_TOKEN environment variable for the API token. Wait bounds are
// tunable through LKEUP_* environment variables, see [LoadTimeouts].
// Validation runs before any provider contact and reports
// [model.ValidationError] values.
package config
