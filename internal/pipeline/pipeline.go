// Package pipeline runs named scenarios end to end: simulation across
// all trajectories, summary metrics, verification, the schedule gate,
// and the report files for each scenario.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"token-emissions-lab/internal/decision"
	"token-emissions-lab/internal/domain"
	"token-emissions-lab/internal/metrics"
	"token-emissions-lab/internal/observability"
	"token-emissions-lab/internal/reporting"
	"token-emissions-lab/internal/scenario"
	"token-emissions-lab/internal/verification"
)

// Output file names, one set per scenario subdirectory.
const (
	ReportFile    = "EMISSIONS_REPORT.md"
	GateFile      = "SCHEDULE_GATE_REPORT.md"
	RunsCSVFile   = "emission_runs.csv"
	SummariesFile = "run_summaries.csv"
)

// ErrNoScenarios is returned when Run is called with nothing to do.
var ErrNoScenarios = errors.New("no scenarios to run")

// Pipeline orchestrates scenario runs and writes their report artifacts.
type Pipeline struct {
	outputDir string
	verbose   bool
	clock     func() time.Time
}

// New creates a pipeline writing into outputDir.
func New(outputDir string) *Pipeline {
	return &Pipeline{
		outputDir: outputDir,
		clock:     func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (p *Pipeline) WithClock(clock func() time.Time) *Pipeline {
	p.clock = clock
	return p
}

// WithVerbose enables phase logging to the standard logger.
func (p *Pipeline) WithVerbose(verbose bool) *Pipeline {
	p.verbose = verbose
	return p
}

// ScenarioOutcome records what one scenario run produced.
type ScenarioOutcome struct {
	ScenarioID string
	Decision   decision.Decision
	OutputDir  string
	RunErrors  []string
}

// Result aggregates the outcomes of one pipeline run in scenario order.
type Result struct {
	Outcomes []ScenarioOutcome
}

// AllGO reports whether every scenario passed its gate.
func (r *Result) AllGO() bool {
	for _, o := range r.Outcomes {
		if o.Decision != decision.DecisionGO {
			return false
		}
	}
	return len(r.Outcomes) > 0
}

// Run executes every scenario and writes its artifacts:
//   - EMISSIONS_REPORT.md
//   - SCHEDULE_GATE_REPORT.md
//   - emission_runs.csv
//   - run_summaries.csv
//
// Each scenario writes into its own subdirectory of the output dir so
// the artifact names stay stable. The context is checked between
// scenarios; a running scenario is never interrupted.
func (p *Pipeline) Run(ctx context.Context, scenarios []domain.Scenario) (*Result, error) {
	if len(scenarios) == 0 {
		return nil, ErrNoScenarios
	}
	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return nil, err
	}

	started := time.Now()
	result := &Result{}
	for _, sc := range scenarios {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		scenarioStart := time.Now()
		outcome, err := p.runScenario(ctx, sc)
		if err != nil {
			observability.RecordPipelineRun("scenario", "error", time.Since(scenarioStart).Seconds())
			return nil, fmt.Errorf("scenario %q: %w", sc.ScenarioID, err)
		}
		observability.RecordPipelineRun("scenario", "ok", time.Since(scenarioStart).Seconds())
		observability.RecordScenarioSwept()
		result.Outcomes = append(result.Outcomes, *outcome)
	}
	observability.RecordPipelineRun("total", "ok", time.Since(started).Seconds())

	return result, nil
}

// runScenario takes one parameter set through simulation, metrics,
// verification, and the gate, then writes the four artifacts.
func (p *Pipeline) runScenario(ctx context.Context, sc domain.Scenario) (*ScenarioOutcome, error) {
	dir := filepath.Join(p.outputDir, sc.ScenarioID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	// 1. Simulate every trajectory for this parameter set
	p.log("scenario %s: simulating", sc.ScenarioID)
	runResult, err := scenario.New(scenario.Options{Config: sc.Config, Verbose: p.verbose}).Run(ctx)
	if err != nil {
		return nil, err
	}

	// 2. Summarize the completed runs
	summaries, err := metrics.SummarizeAll(runResult.Runs)
	if err != nil {
		return nil, err
	}

	// 3. Invariant checks and the determinism replay
	invariants := verification.VerifyAllInvariants(runResult.Runs)
	replays := verification.VerifyAllReplays(runResult.Runs, runResult.Config)

	// 4. Evaluate the schedule gate
	input, err := decision.NewBuilder().Build(runResult, invariants, replays)
	if err != nil {
		return nil, err
	}
	gate := decision.NewEvaluator().Evaluate(*input)

	// 5. Generate the report
	report, err := reporting.NewGenerator().WithClock(p.clock).
		Generate(sc.ScenarioID, runResult, summaries, invariants, replays)
	if err != nil {
		return nil, err
	}

	// 6. Write EMISSIONS_REPORT.md
	if err := p.write(dir, ReportFile, reporting.RenderMarkdown(report)); err != nil {
		return nil, err
	}

	// 7. Write SCHEDULE_GATE_REPORT.md
	if err := p.write(dir, GateFile, decision.RenderMarkdown(gate)); err != nil {
		return nil, err
	}

	// 8. Write emission_runs.csv
	if err := p.write(dir, RunsCSVFile, reporting.RenderRunsCSV(runResult.Runs)); err != nil {
		return nil, err
	}

	// 9. Write run_summaries.csv
	if err := p.write(dir, SummariesFile, reporting.RenderSummariesCSV(report.Summaries)); err != nil {
		return nil, err
	}
	observability.RecordReportGenerated()

	p.log("scenario %s: %s (%d/%d trajectories)",
		sc.ScenarioID, gate.Decision, input.RunsCompleted, input.RunsRequested)

	return &ScenarioOutcome{
		ScenarioID: sc.ScenarioID,
		Decision:   gate.Decision,
		OutputDir:  dir,
		RunErrors:  runResult.Errors,
	}, nil
}

func (p *Pipeline) write(dir, name, content string) error {
	return os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
}

func (p *Pipeline) log(format string, args ...interface{}) {
	if p.verbose {
		log.Printf("[pipeline] "+format, args...)
	}
}
