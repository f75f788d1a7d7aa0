// Package main sweeps one model parameter across a range, simulating
// every trajectory at each point, and writes the results as CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"token-emissions-lab/internal/domain"
	"token-emissions-lab/internal/metrics"
	"token-emissions-lab/internal/observability"
	"token-emissions-lab/internal/reporting"
	"token-emissions-lab/internal/scenario"
)

// sweepParams maps sweepable parameter names to config setters.
var sweepParams = map[string]func(*domain.Config, float64){
	"alpha":       func(c *domain.Config, v float64) { c.Alpha = v },
	"delta-max":   func(c *domain.Config, v float64) { c.DeltaMax = v },
	"initial-cap": func(c *domain.Config, v float64) { c.InitialCap = v },
	"start-tvl":   func(c *domain.Config, v float64) { c.StartTVL = v },
}

func main() {
	// Parse flags
	param := flag.String("param", "", "Parameter to sweep: alpha, delta-max, initial-cap, start-tvl (required)")
	from := flag.Float64("from", 0, "Sweep range start (required)")
	to := flag.Float64("to", 0, "Sweep range end (required)")
	steps := flag.Int("steps", 10, "Number of sweep points")
	years := flag.Int("years", 10, "Simulation horizon in years")
	output := flag.String("output", "sweep_results.csv", "Output CSV path")
	metricsAddr := flag.String("metrics-addr", "", "Serve Prometheus metrics on this address while sweeping (e.g. :9090)")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stderr, "[sweep] ", log.LstdFlags)

	// Validate required flags
	if *param == "" {
		logger.Fatal("--param is required")
	}
	apply, ok := sweepParams[*param]
	if !ok {
		logger.Fatalf("Invalid param: %s. Must be alpha, delta-max, initial-cap, or start-tvl", *param)
	}
	if *steps < 1 {
		logger.Fatal("--steps must be at least 1")
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

	// Expose metrics for scraping during long sweeps
	if *metricsAddr != "" {
		go serveMetrics(*metricsAddr, logger)
	}

	base := domain.DefaultConfig()
	base.Years = *years

	stepSize := 0.0
	if *steps > 1 {
		stepSize = (*to - *from) / float64(*steps-1)
	}

	var rows []reporting.SweepRow
	for i := 0; i < *steps; i++ {
		if err := ctx.Err(); err != nil {
			logger.Fatalf("sweep cancelled: %v", err)
		}

		value := *from + stepSize*float64(i)
		cfg := base
		apply(&cfg, value)

		result, err := scenario.New(scenario.Options{Config: cfg}).Run(ctx)
		if err != nil {
			logger.Fatalf("sweep %s=%g: %v", *param, value, err)
		}
		for _, e := range result.Errors {
			logger.Printf("sweep %s=%g: %s", *param, value, e)
		}

		summaries, err := metrics.SummarizeAll(result.Runs)
		if err != nil {
			logger.Fatalf("sweep %s=%g: %v", *param, value, err)
		}
		for _, s := range summaries {
			rows = append(rows, reporting.SweepRow{
				Param:          *param,
				Value:          value,
				Kind:           s.Kind,
				TotalEmitted:   s.TotalEmitted,
				CapUtilization: s.CapUtilization,
				PeakEmission:   s.PeakEmission,
				HalfCapDay:     s.HalfCapDay,
			})
		}
		observability.RecordScenarioSwept()
		logger.Printf("swept %s=%g (%d/%d)", *param, value, i+1, *steps)
	}

	if err := os.WriteFile(*output, []byte(reporting.RenderSweepCSV(rows)), 0644); err != nil {
		logger.Fatalf("write %s: %v", *output, err)
	}

	fmt.Printf("Swept %s over [%g, %g] in %d steps:\n", *param, *from, *to, *steps)
	fmt.Printf("  - %s (%d rows)\n", *output, len(rows))
}

// serveMetrics exposes /metrics and /health while the sweep runs.
func serveMetrics(addr string, logger *log.Logger) {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", observability.Handler())

	logger.Printf("Serving metrics on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		logger.Printf("metrics server error: %v", err)
	}
}
