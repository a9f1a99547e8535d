// Command tncutoffs parses every registered allotment document and writes
// the cutoff summary JSON artifact.
package main

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/a3tai/tncutoffs/internal/config"
	"github.com/a3tai/tncutoffs/internal/pipeline"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	if err := pipeline.New(cfg).RunAndWrite(); err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("TN Cutoffs Pipeline\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
