package decision

import (
	"fmt"

	"token-emissions-lab/internal/observability"
)

// Evaluator evaluates gate criteria per GATE_CRITERIA.md.
type Evaluator struct{}

// NewEvaluator creates a new decision evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate produces DecisionResult from DecisionInput.
// GO if ALL criteria pass and NO NO-GO triggers.
// NO-GO if ANY criterion fails or ANY trigger fires.
func (e *Evaluator) Evaluate(input DecisionInput) *DecisionResult {
	goCriteria := e.evaluateGOCriteria(input)
	nogoChecks := e.evaluateNOGOTriggers(input)

	allGOPass := true
	for _, c := range goCriteria {
		if !c.Pass {
			allGOPass = false
			break
		}
	}

	anyNOGOTriggered := false
	for _, c := range nogoChecks {
		if !c.Pass { // Pass=false means triggered
			anyNOGOTriggered = true
			break
		}
	}

	decision := DecisionGO
	if !allGOPass || anyNOGOTriggered {
		decision = DecisionNOGO
	}

	observability.RecordDecision(string(decision))

	return &DecisionResult{
		Decision:   decision,
		GOCriteria: goCriteria,
		NOGOChecks: nogoChecks,
	}
}

// evaluateGOCriteria evaluates the 4 GO criteria.
func (e *Evaluator) evaluateGOCriteria(input DecisionInput) []CriterionResult {
	criteria := make([]CriterionResult, 4)

	// 1. Cap invariant holds across every run
	criteria[0] = CriterionResult{
		Name:      "Cap invariant holds",
		Threshold: "no run exceeds its hard cap",
		Actual:    fmt.Sprintf("exceeded=%t", input.CapExceeded),
		Pass:      !input.CapExceeded,
	}

	// 2. Emissions are well-formed
	criteria[1] = CriterionResult{
		Name:      "Emissions well-formed",
		Threshold: "no negative or NaN emission",
		Actual:    fmt.Sprintf("invalid=%t", input.InvalidEmission),
		Pass:      !input.InvalidEmission,
	}

	// 3. Replay is deterministic
	replayPass := input.ReplayDivergent == 0 && input.ReplayMatched == input.RunsCompleted
	criteria[2] = CriterionResult{
		Name:      "Replay deterministic",
		Threshold: "every run replays bit-exactly",
		Actual:    fmt.Sprintf("%d/%d matched", input.ReplayMatched, input.RunsCompleted),
		Pass:      replayPass,
	}

	// 4. Full trajectory coverage
	coveragePass := input.RunsRequested > 0 && input.RunsCompleted == input.RunsRequested
	criteria[3] = CriterionResult{
		Name:      "Trajectory coverage",
		Threshold: "all requested kinds simulated",
		Actual:    fmt.Sprintf("%d/%d completed", input.RunsCompleted, input.RunsRequested),
		Pass:      coveragePass,
	}

	return criteria
}

// evaluateNOGOTriggers evaluates the 4 NO-GO triggers.
// Pass=true means NOT triggered, Pass=false means triggered.
func (e *Evaluator) evaluateNOGOTriggers(input DecisionInput) []CriterionResult {
	checks := make([]CriterionResult, 4)

	// 1. Cumulative mint passed the hard cap
	checks[0] = CriterionResult{
		Name:      "Cap exceeded",
		Threshold: "minted > cap on any day",
		Actual:    fmt.Sprintf("%t", input.CapExceeded),
		Pass:      !input.CapExceeded,
	}

	// 2. Emission went negative or NaN
	checks[1] = CriterionResult{
		Name:      "Invalid emission values",
		Threshold: "emission < 0 or NaN",
		Actual:    fmt.Sprintf("%t", input.InvalidEmission),
		Pass:      !input.InvalidEmission,
	}

	// 3. Replay diverged from the stored series
	triggered3 := input.ReplayDivergent > 0
	checks[2] = CriterionResult{
		Name:      "Replay divergence",
		Threshold: "any divergent run",
		Actual:    fmt.Sprintf("%d divergent", input.ReplayDivergent),
		Pass:      !triggered3,
	}

	// 4. Schedule inert: a positive ceiling emitted nothing at all
	triggered4 := input.DeltaMax > 0 && input.TotalEmitted == 0
	checks[3] = CriterionResult{
		Name:      "Schedule inert",
		Threshold: "deltaMax > 0 with zero total emission",
		Actual:    fmt.Sprintf("deltaMax=%g, total=%g", input.DeltaMax, input.TotalEmitted),
		Pass:      !triggered4,
	}

	return checks
}
