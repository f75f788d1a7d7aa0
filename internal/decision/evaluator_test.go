package decision

import (
	"strings"
	"testing"
)

func TestEvaluate_AllSound(t *testing.T) {
	evaluator := NewEvaluator()

	result := evaluator.Evaluate(soundInput())

	if result.Decision != DecisionGO {
		t.Errorf("expected GO, got %s", result.Decision)
	}
	if len(result.GOCriteria) != 4 {
		t.Fatalf("expected 4 GO criteria, got %d", len(result.GOCriteria))
	}
	if len(result.NOGOChecks) != 4 {
		t.Fatalf("expected 4 NO-GO checks, got %d", len(result.NOGOChecks))
	}
	for _, c := range result.GOCriteria {
		if !c.Pass {
			t.Errorf("criterion %q should pass, actual %q", c.Name, c.Actual)
		}
	}
	for _, c := range result.NOGOChecks {
		if !c.Pass {
			t.Errorf("trigger %q should not fire, actual %q", c.Name, c.Actual)
		}
	}
}

func TestEvaluate_CapExceeded(t *testing.T) {
	input := soundInput()
	input.CapExceeded = true

	result := NewEvaluator().Evaluate(input)

	if result.Decision != DecisionNOGO {
		t.Errorf("expected NO-GO, got %s", result.Decision)
	}
	if result.GOCriteria[0].Pass {
		t.Error("cap invariant criterion should fail")
	}
	if result.NOGOChecks[0].Pass {
		t.Error("cap exceeded trigger should fire")
	}
}

func TestEvaluate_InvalidEmission(t *testing.T) {
	input := soundInput()
	input.InvalidEmission = true

	result := NewEvaluator().Evaluate(input)

	if result.Decision != DecisionNOGO {
		t.Errorf("expected NO-GO, got %s", result.Decision)
	}
	if result.GOCriteria[1].Pass {
		t.Error("well-formedness criterion should fail")
	}
	if result.NOGOChecks[1].Pass {
		t.Error("invalid emission trigger should fire")
	}
}

func TestEvaluate_ReplayDivergence(t *testing.T) {
	input := soundInput()
	input.ReplayMatched = 3
	input.ReplayDivergent = 1

	result := NewEvaluator().Evaluate(input)

	if result.Decision != DecisionNOGO {
		t.Errorf("expected NO-GO, got %s", result.Decision)
	}
	if result.GOCriteria[2].Pass {
		t.Error("replay criterion should fail")
	}
	if got := result.GOCriteria[2].Actual; got != "3/4 matched" {
		t.Errorf("expected actual 3/4 matched, got %q", got)
	}
	if result.NOGOChecks[2].Pass {
		t.Error("replay divergence trigger should fire")
	}
}

func TestEvaluate_IncompleteCoverage(t *testing.T) {
	// One trajectory failed to run. No trigger fires, the coverage
	// criterion alone forces NO-GO.
	input := soundInput()
	input.RunsCompleted = 3
	input.ReplayMatched = 3

	result := NewEvaluator().Evaluate(input)

	if result.Decision != DecisionNOGO {
		t.Errorf("expected NO-GO, got %s", result.Decision)
	}
	if result.GOCriteria[3].Pass {
		t.Error("coverage criterion should fail")
	}
	for _, c := range result.NOGOChecks {
		if !c.Pass {
			t.Errorf("trigger %q should not fire", c.Name)
		}
	}
}

func TestEvaluate_NoRunsRequested(t *testing.T) {
	result := NewEvaluator().Evaluate(DecisionInput{})

	if result.Decision != DecisionNOGO {
		t.Errorf("expected NO-GO, got %s", result.Decision)
	}
	if result.GOCriteria[3].Pass {
		t.Error("coverage criterion should fail on an empty sweep")
	}
}

func TestEvaluate_ScheduleInert(t *testing.T) {
	// Every structural check passes but a positive ceiling emitted
	// nothing across the whole horizon. The trigger alone forces NO-GO.
	input := soundInput()
	input.TotalEmitted = 0

	result := NewEvaluator().Evaluate(input)

	if result.Decision != DecisionNOGO {
		t.Errorf("expected NO-GO, got %s", result.Decision)
	}
	for _, c := range result.GOCriteria {
		if !c.Pass {
			t.Errorf("criterion %q should pass", c.Name)
		}
	}
	if result.NOGOChecks[3].Pass {
		t.Error("schedule inert trigger should fire")
	}
}

func TestEvaluate_ZeroDeltaMaxNotInert(t *testing.T) {
	// A deliberately disabled schedule emits nothing and that is sound.
	input := soundInput()
	input.DeltaMax = 0
	input.TotalEmitted = 0

	result := NewEvaluator().Evaluate(input)

	if result.Decision != DecisionGO {
		t.Errorf("expected GO, got %s", result.Decision)
	}
	if !result.NOGOChecks[3].Pass {
		t.Error("schedule inert trigger should not fire when deltaMax is zero")
	}
}

func TestRenderMarkdown_GO(t *testing.T) {
	result := NewEvaluator().Evaluate(soundInput())

	md := RenderMarkdown(result)

	for _, want := range []string{
		"# Decision Gate Report",
		"## Decision: GO",
		"GO Criteria: 4/4 passed",
		"NO-GO Triggers: 0/4 triggered",
		"| 1 | Cap invariant holds |",
		"The emission model is sound",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
	if strings.Contains(md, "NO-GO due to") {
		t.Error("GO report should not list failure reasons")
	}
}

func TestRenderMarkdown_NOGO(t *testing.T) {
	input := soundInput()
	input.CapExceeded = true
	input.ReplayMatched = 3
	input.ReplayDivergent = 1
	result := NewEvaluator().Evaluate(input)

	md := RenderMarkdown(result)

	for _, want := range []string{
		"## Decision: NO-GO",
		"GO Criteria: 2/4 passed",
		"NO-GO Triggers: 2/4 triggered",
		"| TRIGGERED |",
		"Decision is NO-GO due to:",
		"- GO criterion failed: Cap invariant holds",
		"- NO-GO trigger fired: Replay divergence",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}
