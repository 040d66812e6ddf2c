package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/chris-milsted/lkeup/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the interactive configuration wizard.
	runWizard = config.RunWizard

	// writeConfigFile writes the config to a file.
	writeConfigFile = config.Save
)

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return err
	}

	cfg := result.ToConfig()

	if err := writeConfigFile(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)

	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("lkeup - Kubernetes on Linode")
	fmt.Println("============================")
	fmt.Println()
	fmt.Println("This wizard creates a configuration with sensible defaults.")
	fmt.Println("Just answer a few questions about your cluster and application.")
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	// Summary
	fmt.Println("Cluster Summary")
	fmt.Println("---------------")
	fmt.Printf("  Label:      %s\n", cfg.Cluster.Label)
	fmt.Printf("  Region:     %s\n", cfg.Cluster.Region)
	fmt.Printf("  Kubernetes: %s\n", cfg.Cluster.K8sVersion)
	fmt.Printf("  Node pool:  %d x %s\n", cfg.ClusterSpec().NodeCount, cfg.Cluster.NodeType)
	fmt.Println()
	fmt.Println("Application")
	fmt.Println("-----------")
	fmt.Printf("  Name:  %s\n", cfg.App.Name)
	fmt.Printf("  Image: %s\n", cfg.App.Image)
	fmt.Printf("  Port:  %d\n", cfg.App.ContainerPort)
	fmt.Println()

	// Next steps
	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Println("  1. Set your Linode API token:")
	fmt.Println("     export LINODE_TOKEN=<your-token>")
	fmt.Println()
	fmt.Printf("  2. Review %s if needed\n", outputPath)
	fmt.Println()
	fmt.Println("  3. Create your cluster and deploy:")
	fmt.Println("     lkeup apply")
	fmt.Println()
}
