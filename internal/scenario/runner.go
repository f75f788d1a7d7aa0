// Package scenario runs the emission simulator across trajectory variants.
// It coordinates: validation → cap schedule → per-trajectory simulation
package scenario

import (
	"context"
	"fmt"
	"log"
	"time"

	"token-emissions-lab/internal/domain"
	"token-emissions-lab/internal/hardcap"
	"token-emissions-lab/internal/observability"
	"token-emissions-lab/internal/runid"
	"token-emissions-lab/internal/simulation"
	"token-emissions-lab/internal/trajectory"
)

// Runner executes one simulation per trajectory kind for a fixed config.
type Runner struct {
	cfg     domain.Config
	kinds   []domain.TrajectoryKind
	verbose bool
}

// Options for creating Runner.
type Options struct {
	Config domain.Config

	// Kinds restricts which trajectories run; empty means all four.
	Kinds []domain.TrajectoryKind

	Verbose bool
}

// New creates a new Runner.
func New(opts Options) *Runner {
	kinds := opts.Kinds
	if len(kinds) == 0 {
		kinds = domain.AllTrajectoryKinds
	}
	return &Runner{
		cfg:     opts.Config,
		kinds:   kinds,
		verbose: opts.Verbose,
	}
}

// RunResult contains results from one scenario execution.
// Runs holds the successful trajectories in request order; Errors holds
// one entry per failed trajectory so a single bad parameter set cannot
// sink the rest.
type RunResult struct {
	Config domain.Config
	Runs   []domain.Run
	Errors []string
}

// Run executes the scenario.
// Steps:
//  1. Validate the global configuration (fail-fast, dooms every run)
//  2. Compute the hard-cap schedule once (independent of TVL choice)
//  3. Simulate each trajectory kind with its own accumulator
func (r *Runner) Run(ctx context.Context) (*RunResult, error) {
	result := &RunResult{Config: r.cfg}

	// 1. Validate global configuration
	if err := r.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// 2. Cap schedule is shared by every run
	days := r.cfg.HorizonDays()
	capSeries := hardcap.FromConfig(r.cfg).Series(days)
	r.log("Computed %d-day cap schedule", days)

	// 3. Per-trajectory runs
	for _, kind := range r.kinds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		run, err := r.runOne(kind, capSeries, days)
		if err != nil {
			observability.RecordSimulationRun(string(kind), "error", 0, 0)
			result.Errors = append(result.Errors, fmt.Sprintf("trajectory %s: %v", kind, err))
			continue
		}
		result.Runs = append(result.Runs, run)
	}

	r.log("Completed %d/%d trajectory runs (%d errors)",
		len(result.Runs), len(r.kinds), len(result.Errors))

	return result, nil
}

// runOne simulates a single trajectory kind against the shared cap schedule.
func (r *Runner) runOne(kind domain.TrajectoryKind, capSeries []float64, days int) (domain.Run, error) {
	started := time.Now()

	tr, err := trajectory.FromConfig(kind, r.cfg)
	if err != nil {
		return domain.Run{}, err
	}

	tvl := tr.Series(days)
	emission, minted, err := simulation.Simulate(tvl, capSeries, r.cfg.DeltaMax, r.cfg.Alpha)
	if err != nil {
		return domain.Run{}, err
	}

	run := domain.Run{
		RunID:    runid.ComputeRunID(kind, r.cfg),
		Kind:     kind,
		Days:     days,
		TVL:      tvl,
		Emission: emission,
		Minted:   minted,
		Cap:      capSeries,
	}

	observability.RecordSimulationRun(string(kind), "ok", time.Since(started).Seconds(), days)
	if fc := run.FinalCap(); fc > 0 {
		observability.RecordEmissionOutcome(string(kind), run.TotalEmitted(), run.TotalEmitted()/fc)
	}
	r.log("  %s: total emitted %.0f", kind, run.TotalEmitted())

	return run, nil
}

func (r *Runner) log(format string, args ...interface{}) {
	if r.verbose {
		log.Printf("[scenario] "+format, args...)
	}
}
