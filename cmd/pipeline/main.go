// Package main runs the full lab pipeline: named scenarios through
// simulation, verification, the schedule gate, and the report files.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"token-emissions-lab/internal/config"
	"token-emissions-lab/internal/domain"
	"token-emissions-lab/internal/pipeline"
)

func main() {
	// Parse flags
	scenariosPath := flag.String("scenarios", "", "YAML scenario file (default: the predefined scenario set)")
	outputDir := flag.String("output-dir", "output", "Output directory for generated files")
	verbose := flag.Bool("verbose", false, "Verbose output")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stderr, "[pipeline] ", log.LstdFlags)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, cancelling pipeline...", sig)
		cancel()
	}()

	// Resolve scenarios: a named file, or the predefined set
	scenarios := domain.DefaultScenarios()
	if *scenariosPath != "" {
		var err error
		scenarios, err = config.LoadScenarios(*scenariosPath)
		if err != nil {
			logger.Fatalf("load scenarios: %v", err)
		}
	}

	// Run pipeline
	result, err := pipeline.New(*outputDir).WithVerbose(*verbose).Run(ctx, scenarios)
	if err != nil {
		logger.Fatalf("pipeline: %v", err)
	}

	fmt.Println("Pipeline completed:")
	for _, o := range result.Outcomes {
		fmt.Printf("  %s: %s\n", o.ScenarioID, o.Decision)
		for _, name := range []string{
			pipeline.ReportFile,
			pipeline.GateFile,
			pipeline.RunsCSVFile,
			pipeline.SummariesFile,
		} {
			fmt.Printf("    - %s\n", filepath.Join(o.OutputDir, name))
		}
		if len(o.RunErrors) > 0 {
			fmt.Printf("    Errors: %d\n", len(o.RunErrors))
			for _, e := range o.RunErrors {
				fmt.Printf("      - %s\n", e)
			}
		}
	}

	if !result.AllGO() {
		logger.Printf("one or more scenarios gated NO-GO; see %s", *outputDir)
	}
}
