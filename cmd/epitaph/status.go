package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/catacombing/epitaph/internal/config"
	"github.com/catacombing/epitaph/internal/ipc"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check config and compositor connectivity",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Epitaph Status ===")
	fmt.Println()

	allOK := true

	fmt.Printf("Config file: %s\n", configPath)
	if _, err := os.Stat(configPath); err == nil {
		fmt.Println("  Status: found")
	} else {
		fmt.Println("  Status: not found (using defaults)")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("  Load error: %v\n", err)
		allOK = false
	} else {
		fmt.Printf("  Modules: %d enabled\n", len(cfg.EnabledModules()))
	}
	fmt.Println()

	fmt.Println("Compositor:")
	if scale, err := ipc.New().Scale(); err == nil {
		fmt.Printf("  Socket: CONNECTED (output scale %g)\n", scale)
	} else {
		fmt.Println("  Socket: not reachable")
		allOK = false
	}
	fmt.Println()

	if allOK {
		fmt.Println("All checks passed.")
	} else {
		fmt.Println("Some checks failed.")
	}
	return nil
}
