// Package main is the entry point for the lkeup CLI.
//
// lkeup is a command-line tool for provisioning Linode Kubernetes Engine
// clusters and deploying a containerized Spring Boot web application onto
// them. It drives the full path from an empty account to a reachable
// application URL without requiring Terraform or other IaC tools.
//
// Commands: init, apply, destroy, status, endpoint, version.
//
// For detailed usage information, run:
//
//	lkeup --help
package main

import (
	"fmt"
	"os"

	"github.com/chris-milsted/lkeup/cmd/lkeup/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
