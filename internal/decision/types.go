package decision

import "errors"

// Decision represents the final GO/NO-GO result.
type Decision string

const (
	DecisionGO   Decision = "GO"
	DecisionNOGO Decision = "NO-GO"
)

// DecisionInput contains the soundness signals for gate evaluation,
// gathered from the scenario runs and the verification reports.
type DecisionInput struct {
	// Trajectory coverage
	RunsRequested int
	RunsCompleted int

	// Invariant verification
	CapExceeded     bool // cumulative mint passed the cap in some run
	InvalidEmission bool // negative or NaN emission found

	// Replay verification
	ReplayMatched   int
	ReplayDivergent int

	// Emission activity
	DeltaMax     float64
	TotalEmitted float64 // summed across all runs
}

// ErrInconsistentRunCounts is returned when the coverage counts cannot
// have come from one sweep.
var ErrInconsistentRunCounts = errors.New("inconsistent run counts")

// ErrInconsistentReplayCounts is returned when the replay counts exceed
// the completed runs.
var ErrInconsistentReplayCounts = errors.New("inconsistent replay counts")

// Validate checks the input for internal consistency before evaluation.
func (in *DecisionInput) Validate() error {
	if in.RunsRequested < 0 || in.RunsCompleted < 0 || in.RunsCompleted > in.RunsRequested {
		return ErrInconsistentRunCounts
	}
	if in.ReplayMatched < 0 || in.ReplayDivergent < 0 ||
		in.ReplayMatched+in.ReplayDivergent > in.RunsCompleted {
		return ErrInconsistentReplayCounts
	}
	return nil
}

// CriterionResult represents pass/fail for one criterion.
type CriterionResult struct {
	Name      string
	Threshold string
	Actual    string
	Pass      bool
}

// DecisionResult contains the final decision with checklist.
type DecisionResult struct {
	Decision   Decision
	GOCriteria []CriterionResult // 4 GO criteria
	NOGOChecks []CriterionResult // 4 NO-GO triggers
}
