package reporting

import (
	"errors"
	"fmt"
	"time"

	"token-emissions-lab/internal/metrics"
	"token-emissions-lab/internal/scenario"
	"token-emissions-lab/internal/verification"
)

// ErrSummaryMismatch is returned when the summaries do not line up
// with the sweep's runs.
var ErrSummaryMismatch = errors.New("summaries do not match runs")

// Generator produces reports from sweep artifacts.
type Generator struct {
	now func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator() *Generator {
	return &Generator{
		now: func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate assembles the report for one scenario sweep. Runs arrive in
// canonical kind order from the runner and the report preserves it.
func (g *Generator) Generate(scenarioName string, result *scenario.RunResult, summaries []metrics.RunSummary, invariants, replays *verification.VerificationReport) (*Report, error) {
	if len(summaries) != len(result.Runs) {
		return nil, ErrSummaryMismatch
	}

	return &Report{
		GeneratedAt:  g.now(),
		ScenarioName: scenarioName,
		HorizonDays:  result.Config.HorizonDays(),
		Parameters:   buildParameterSection(result),
		Summaries:    buildSummaryRows(summaries),
		Verification: buildVerificationSection(invariants, replays),
		RunErrors:    result.Errors,
	}, nil
}

// buildParameterSection copies the configured model parameters and
// reads the final cap off the computed schedule.
func buildParameterSection(result *scenario.RunResult) ParameterSection {
	cfg := result.Config
	p := ParameterSection{
		InitialCap:       cfg.InitialCap,
		CapGrowthEnabled: cfg.CapGrowthEnabled,
		CapGrowthRate:    cfg.CapGrowthRate,
		MaxCap:           cfg.MaxCap,
		StartTVL:         cfg.StartTVL,
		DeltaMax:         cfg.DeltaMax,
		Alpha:            cfg.Alpha,
		Years:            cfg.Years,
	}

	if len(result.Runs) > 0 {
		p.FinalCap = result.Runs[0].FinalCap()
	} else if !cfg.CapGrowthEnabled {
		p.FinalCap = cfg.InitialCap
	}

	return p
}

// buildSummaryRows maps run summaries into report rows.
func buildSummaryRows(summaries []metrics.RunSummary) []SummaryRow {
	rows := make([]SummaryRow, len(summaries))
	for i, s := range summaries {
		rows[i] = SummaryRow{
			Kind:             s.Kind,
			Label:            s.Label,
			RunID:            s.RunID,
			TotalEmitted:     s.TotalEmitted,
			CapUtilization:   s.CapUtilization,
			PeakEmission:     s.PeakEmission,
			PeakEmissionDay:  s.PeakEmissionDay,
			MeanEmission:     s.MeanEmission,
			MedianEmission:   s.MedianEmission,
			EmissionP10:      s.EmissionP10,
			EmissionP90:      s.EmissionP90,
			EmissionStddev:   s.EmissionStddev,
			ZeroEmissionDays: s.ZeroEmissionDays,
			HalfCapDay:       s.HalfCapDay,
			MinTVL:           s.MinTVL,
			MinTVLDay:        s.MinTVLDay,
			MaxTVL:           s.MaxTVL,
		}
	}
	return rows
}

// buildVerificationSection condenses the two verification reports.
func buildVerificationSection(invariants, replays *verification.VerificationReport) VerificationSection {
	v := VerificationSection{
		InvariantsChecked: invariants.TotalRuns,
		InvariantsPassed:  invariants.MatchedRuns,
		ReplaysChecked:    replays.TotalRuns,
		ReplaysMatched:    replays.MatchedRuns,
		AllPassed:         invariants.DivergentRuns == 0 && replays.DivergentRuns == 0,
	}
	v.Divergences = append(v.Divergences, describeDivergences("invariant", invariants)...)
	v.Divergences = append(v.Divergences, describeDivergences("replay", replays)...)
	return v
}

// describeDivergences renders divergences as display strings. Day -1
// marks run-level fields.
func describeDivergences(check string, report *verification.VerificationReport) []string {
	var out []string
	for _, result := range report.Results {
		for _, d := range result.Divergences {
			if d.Day >= 0 {
				out = append(out, fmt.Sprintf("%s %s: %s day %d: expected %v, got %v",
					result.Kind, check, d.Field, d.Day, d.Expected, d.Actual))
			} else {
				out = append(out, fmt.Sprintf("%s %s: %s: expected %v, got %v",
					result.Kind, check, d.Field, d.Expected, d.Actual))
			}
		}
	}
	return out
}
