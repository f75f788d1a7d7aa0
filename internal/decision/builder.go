package decision

import (
	"errors"

	"token-emissions-lab/internal/scenario"
	"token-emissions-lab/internal/verification"
)

// ErrNoRuns is returned when the sweep produced no runs to gate on.
var ErrNoRuns = errors.New("no trajectory runs to evaluate")

// ErrReportMismatch is returned when a verification report does not
// cover the sweep's completed runs.
var ErrReportMismatch = errors.New("verification report does not cover the sweep runs")

// Builder constructs DecisionInput from a sweep result and its
// verification reports.
type Builder struct{}

// NewBuilder creates a new decision input builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build assembles DecisionInput from one sweep and the two verification
// passes over its runs. Invariant divergences are bucketed by what they
// violate: minted-series fields count against the cap invariant,
// value-level fields against emission well-formedness. Replay counts
// come from the replay report as-is.
func (b *Builder) Build(result *scenario.RunResult, invariants, replays *verification.VerificationReport) (*DecisionInput, error) {
	requested := len(result.Runs) + len(result.Errors)
	if requested == 0 {
		return nil, ErrNoRuns
	}
	if invariants.TotalRuns != len(result.Runs) || replays.TotalRuns != len(result.Runs) {
		return nil, ErrReportMismatch
	}

	capExceeded := false
	invalidEmission := false
	for _, vr := range invariants.Results {
		for _, d := range vr.Divergences {
			switch d.Field {
			case "Minted", "TotalEmitted":
				capExceeded = true
			case "Emission", "Cap", "MintedRecurrence":
				invalidEmission = true
			}
		}
	}

	var total float64
	for _, run := range result.Runs {
		total += run.TotalEmitted()
	}

	input := &DecisionInput{
		RunsRequested:   requested,
		RunsCompleted:   len(result.Runs),
		CapExceeded:     capExceeded,
		InvalidEmission: invalidEmission,
		ReplayMatched:   replays.MatchedRuns,
		ReplayDivergent: replays.DivergentRuns,
		DeltaMax:        result.Config.DeltaMax,
		TotalEmitted:    total,
	}

	// Validate before returning (fail fast)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	return input, nil
}
