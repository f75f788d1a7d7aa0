// Package main runs one emission configuration across TVL trajectories
// and prints per-trajectory summaries.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"token-emissions-lab/internal/domain"
	"token-emissions-lab/internal/metrics"
	"token-emissions-lab/internal/reporting"
	"token-emissions-lab/internal/scenario"
)

func main() {
	// Parse flags (defaults are the model defaults)
	cfg := domain.DefaultConfig()
	bindConfigFlags(&cfg)

	trajectoryFlag := flag.String("trajectory", "", "Run a single trajectory: LINEAR, SINUSOIDAL, EXPONENTIAL, LOGISTIC (default all)")
	outputJSON := flag.Bool("json", false, "Output summaries as JSON")
	csvDir := flag.String("csv-dir", "", "Write day-indexed run CSVs into this directory")
	verbose := flag.Bool("verbose", false, "Verbose output")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stderr, "[simulate] ", log.LstdFlags)

	// Resolve trajectory selection
	kinds := domain.AllTrajectoryKinds
	if *trajectoryFlag != "" {
		kind := domain.TrajectoryKind(strings.ToUpper(*trajectoryFlag))
		if !validKind(kind) {
			logger.Fatalf("Invalid trajectory: %s. Must be LINEAR, SINUSOIDAL, EXPONENTIAL, or LOGISTIC", *trajectoryFlag)
		}
		kinds = []domain.TrajectoryKind{kind}
	}

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

	// Run simulation
	result, err := scenario.New(scenario.Options{
		Config:  cfg,
		Kinds:   kinds,
		Verbose: *verbose,
	}).Run(ctx)
	if err != nil {
		logger.Fatalf("simulate: %v", err)
	}

	for _, e := range result.Errors {
		logger.Printf("trajectory failed: %s", e)
	}
	if len(result.Runs) == 0 {
		logger.Fatal("no trajectory completed")
	}

	summaries, err := metrics.SummarizeAll(result.Runs)
	if err != nil {
		logger.Fatalf("summarize: %v", err)
	}

	// Output result
	if *outputJSON {
		output, err := json.MarshalIndent(summaries, "", "  ")
		if err != nil {
			logger.Fatalf("encode summaries: %v", err)
		}
		fmt.Println(string(output))
	} else {
		printSummaries(result.Config, summaries)
	}

	// Optional per-run CSV export
	if *csvDir != "" {
		if err := writeRunCSVs(*csvDir, result.Runs); err != nil {
			logger.Fatalf("write run CSVs: %v", err)
		}
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

// validKind reports whether kind is one of the supported trajectories.
func validKind(kind domain.TrajectoryKind) bool {
	for _, k := range domain.AllTrajectoryKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// printSummaries outputs a human-readable per-trajectory table.
func printSummaries(cfg domain.Config, summaries []metrics.RunSummary) {
	fmt.Println()
	fmt.Println("=== Emission Schedule Summary ===")
	fmt.Printf("Horizon:            %d days (%d years)\n", cfg.HorizonDays(), cfg.Years)
	fmt.Printf("Initial Hard Cap:   %.2fB tokens\n", cfg.InitialCap/1e9)
	fmt.Printf("Max Daily Tokens:   %.2fM\n", cfg.DeltaMax/1e6)
	fmt.Printf("Alpha:              %.1e\n", cfg.Alpha)
	fmt.Println()

	fmt.Printf("%-20s %16s %10s %16s %10s %14s\n",
		"Trajectory", "Total Emitted", "Cap Util", "Peak Emission", "Peak Day", "Half-Cap Day")
	for _, s := range summaries {
		fmt.Printf("%-20s %16.0f %9.1f%% %16.0f %10d %14s\n",
			s.Label,
			s.TotalEmitted,
			s.CapUtilization*100,
			s.PeakEmission,
			s.PeakEmissionDay,
			dayLabel(s.HalfCapDay),
		)
	}
}

// dayLabel renders a day index, "-" when the event never happened.
func dayLabel(day int) string {
	if day < 0 {
		return "-"
	}
	return strconv.Itoa(day)
}

// writeRunCSVs writes one day-indexed CSV per completed run.
func writeRunCSVs(dir string, runs []domain.Run) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Run CSVs written:")
	for _, run := range runs {
		name := strings.ToLower(string(run.Kind)) + "_run.csv"
		path := filepath.Join(dir, name)
		csv := reporting.RenderRunsCSV([]domain.Run{run})
		if err := os.WriteFile(path, []byte(csv), 0644); err != nil {
			return err
		}
		fmt.Printf("  - %s\n", path)
	}
	return nil
}
