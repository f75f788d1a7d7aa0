package scenario

import (
	"context"
	"strings"
	"testing"

	"token-emissions-lab/internal/domain"
)

func TestRunner_AllKinds(t *testing.T) {
	ctx := context.Background()
	runner := New(Options{Config: domain.DefaultConfig()})

	result, err := runner.Run(ctx)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", result.Errors)
	}
	if len(result.Runs) != 4 {
		t.Fatalf("expected 4 runs, got %d", len(result.Runs))
	}

	seen := make(map[string]bool)
	for i, run := range result.Runs {
		if run.Kind != domain.AllTrajectoryKinds[i] {
			t.Errorf("run %d: expected kind %s, got %s", i, domain.AllTrajectoryKinds[i], run.Kind)
		}
		if run.Days != 3650 {
			t.Errorf("run %d: expected 3650 days, got %d", i, run.Days)
		}
		if len(run.TVL) != run.Days || len(run.Emission) != run.Days ||
			len(run.Minted) != run.Days || len(run.Cap) != run.Days {
			t.Errorf("run %d: series lengths do not match horizon", i)
		}
		if len(run.RunID) != 64 {
			t.Errorf("run %d: expected 64-char run ID, got %d", i, len(run.RunID))
		}
		if seen[run.RunID] {
			t.Errorf("run %d: duplicate run ID %s", i, run.RunID)
		}
		seen[run.RunID] = true
	}
}

func TestRunner_InvalidGlobalConfig(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Alpha = 0

	_, err := New(Options{Config: cfg}).Run(context.Background())
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
}

func TestRunner_TrajectoryFailureIsolated(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.LogisticMaxTVL = 1 // below start TVL

	result, err := New(Options{Config: cfg}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Runs) != 3 {
		t.Errorf("expected 3 surviving runs, got %d", len(result.Runs))
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(result.Errors))
	}
	if !strings.Contains(result.Errors[0], "LOGISTIC") {
		t.Errorf("expected LOGISTIC failure, got %q", result.Errors[0])
	}
}

func TestRunner_SingleKind(t *testing.T) {
	runner := New(Options{
		Config: domain.DefaultConfig(),
		Kinds:  []domain.TrajectoryKind{domain.TrajectoryExponential},
	})

	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Runs) != 1 || result.Runs[0].Kind != domain.TrajectoryExponential {
		t.Fatalf("expected one EXPONENTIAL run, got %+v", result.Runs)
	}
}

func TestRunner_SharedCapSchedule(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.CapGrowthEnabled = true

	result, err := New(Options{Config: cfg}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	base := result.Runs[0].Cap
	for i, run := range result.Runs[1:] {
		for day := range base {
			if run.Cap[day] != base[day] {
				t.Fatalf("run %d day %d: cap schedule differs across runs", i+1, day)
			}
		}
	}
}

func TestRunner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Options{Config: domain.DefaultConfig()}).Run(ctx)
	if err == nil {
		t.Fatal("expected context error, got nil")
	}
}
