// Package workflow provides shared types and orchestration for the
// provision-and-deploy pipeline.
//
// # Subpackages
//
//   - cluster/ — LKE cluster provisioning and readiness
//   - credentials/ — kubeconfig materialization to disk
//   - gate/ — control-plane stabilization before workload submission
//   - workload/ — namespace, deployment and service rollout
//   - destroy/ — reverse-order teardown
//
// # Core Types
//
// Context carries configuration, state, the provider client and the
// observer. Stage defines a workflow step with Name() and Run() methods.
// State accumulates results as stages complete: cluster identity, API
// endpoint, credentials, the external address. The phase machine in
// internal/model guards transition order.
package workflow
