// Package main checks simulated runs against the model invariants and
// replays them for bit-exact determinism. Exits nonzero on any
// violation or divergence.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"token-emissions-lab/internal/config"
	"token-emissions-lab/internal/domain"
	"token-emissions-lab/internal/scenario"
	"token-emissions-lab/internal/verification"
)

func main() {
	// Parse flags (defaults are the model defaults)
	cfg := domain.DefaultConfig()
	bindConfigFlags(&cfg)

	scenariosPath := flag.String("scenarios", "", "YAML scenario file (overrides parameter flags)")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stderr, "[verify] ", log.LstdFlags)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, shutting down...", sig)
		cancel()
	}()

	// Resolve scenarios: a named file, or the flag-built config
	scenarios := []domain.Scenario{{ScenarioID: "cli", Config: cfg}}
	if *scenariosPath != "" {
		var err error
		scenarios, err = config.LoadScenarios(*scenariosPath)
		if err != nil {
			logger.Fatalf("load scenarios: %v", err)
		}
	}

	failed := false
	for _, sc := range scenarios {
		result, err := scenario.New(scenario.Options{Config: sc.Config}).Run(ctx)
		if err != nil {
			logger.Fatalf("scenario %q: %v", sc.ScenarioID, err)
		}

		report := verification.VerifyAll(result.Runs, result.Config)
		printVerification(sc.ScenarioID, result, report)

		if report.DivergentRuns > 0 || len(result.Errors) > 0 {
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}

// bindConfigFlags registers one flag per model parameter, writing
// through to cfg.
func bindConfigFlags(cfg *domain.Config) {
	flag.Float64Var(&cfg.InitialCap, "initial-cap", cfg.InitialCap, "Initial hard cap in tokens")
	flag.BoolVar(&cfg.CapGrowthEnabled, "cap-growth", cfg.CapGrowthEnabled, "Enable logarithmic hard cap growth")
	flag.Float64Var(&cfg.CapGrowthRate, "cap-growth-rate", cfg.CapGrowthRate, "Hard cap growth rate")
	flag.Float64Var(&cfg.MaxCap, "max-cap", cfg.MaxCap, "Maximum hard cap in tokens (growth mode)")
	flag.Float64Var(&cfg.StartTVL, "start-tvl", cfg.StartTVL, "Initial TVL")
	flag.Float64Var(&cfg.DeltaMax, "delta-max", cfg.DeltaMax, "Maximum daily emission in tokens")
	flag.Float64Var(&cfg.Alpha, "alpha", cfg.Alpha, "TVL damping coefficient")
	flag.IntVar(&cfg.Years, "years", cfg.Years, "Simulation horizon in years")

	flag.Float64Var(&cfg.LinearGrowthRate, "linear-growth-rate", cfg.LinearGrowthRate, "LINEAR daily growth rate")
	flag.Float64Var(&cfg.SinGrowthRate, "sin-growth-rate", cfg.SinGrowthRate, "SINUSOIDAL trend growth rate")
	flag.Float64Var(&cfg.SinAmplitude, "sin-amplitude", cfg.SinAmplitude, "SINUSOIDAL oscillation amplitude")
	flag.IntVar(&cfg.SinPeriodDays, "sin-period-days", cfg.SinPeriodDays, "SINUSOIDAL period in days")
	flag.Float64Var(&cfg.ExpGrowthRate, "exp-growth-rate", cfg.ExpGrowthRate, "EXPONENTIAL daily growth rate")
	flag.IntVar(&cfg.LogisticMidpointDay, "logistic-midpoint-day", cfg.LogisticMidpointDay, "LOGISTIC midpoint day")
	flag.Float64Var(&cfg.LogisticSteepness, "logistic-steepness", cfg.LogisticSteepness, "LOGISTIC steepness")
	flag.Float64Var(&cfg.LogisticMaxTVL, "logistic-max-tvl", cfg.LogisticMaxTVL, "LOGISTIC TVL ceiling")
}

// printVerification outputs a human-readable verification report for
// one scenario.
func printVerification(scenarioID string, result *scenario.RunResult, report *verification.VerificationReport) {
	fmt.Printf("\n=== Verification: %s ===\n", scenarioID)
	fmt.Printf("Runs: %d verified, %d matched, %d divergent\n",
		report.TotalRuns, report.MatchedRuns, report.DivergentRuns)

	for _, e := range result.Errors {
		fmt.Printf("  RUN ERROR   %s\n", e)
	}

	for _, r := range report.Results {
		status := "PASS"
		if !r.Match {
			status = "FAIL"
		}
		fmt.Printf("  %-4s %-12s %s\n", status, r.Kind, shortID(r.RunID))
		for _, d := range r.Divergences {
			if d.Day >= 0 {
				fmt.Printf("       %s day %d: expected %v, got %v\n", d.Field, d.Day, d.Expected, d.Actual)
			} else {
				fmt.Printf("       %s: expected %v, got %v\n", d.Field, d.Expected, d.Actual)
			}
		}
	}
}

// shortID truncates a run ID for display.
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
