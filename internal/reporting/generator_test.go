package reporting

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"token-emissions-lab/internal/domain"
	"token-emissions-lab/internal/metrics"
	"token-emissions-lab/internal/scenario"
	"token-emissions-lab/internal/verification"
)

func shortConfig() domain.Config {
	cfg := domain.DefaultConfig()
	cfg.Years = 1
	return cfg
}

func setupSweep(t *testing.T, cfg domain.Config) (*scenario.RunResult, []metrics.RunSummary, *verification.VerificationReport, *verification.VerificationReport) {
	t.Helper()

	result, err := scenario.New(scenario.Options{Config: cfg}).Run(context.Background())
	require.NoError(t, err)

	summaries, err := metrics.SummarizeAll(result.Runs)
	require.NoError(t, err)

	invariants := verification.VerifyAllInvariants(result.Runs)
	replays := verification.VerifyAllReplays(result.Runs, cfg)

	return result, summaries, invariants, replays
}

func TestGenerate_Deterministic(t *testing.T) {
	fixedTime := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	fixedClock := func() time.Time { return fixedTime }

	// Run multiple times and verify byte-stable rendering.
	var first string
	for run := 0; run < 3; run++ {
		result, summaries, invariants, replays := setupSweep(t, shortConfig())
		generator := NewGenerator().WithClock(fixedClock)

		report, err := generator.Generate("baseline", result, summaries, invariants, replays)
		require.NoError(t, err)

		md := RenderMarkdown(report)
		if first == "" {
			first = md
			continue
		}
		assert.Equal(t, first, md, "run %d: markdown not byte-stable", run)
	}
}

func TestGenerate_WithClock(t *testing.T) {
	result, summaries, invariants, replays := setupSweep(t, shortConfig())

	fixedTime := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	report, err := NewGenerator().
		WithClock(func() time.Time { return fixedTime }).
		Generate("baseline", result, summaries, invariants, replays)
	require.NoError(t, err)

	assert.True(t, report.GeneratedAt.Equal(fixedTime))
}

func TestGenerate_Sections(t *testing.T) {
	result, summaries, invariants, replays := setupSweep(t, shortConfig())

	report, err := NewGenerator().Generate("baseline", result, summaries, invariants, replays)
	require.NoError(t, err)

	assert.Equal(t, "baseline", report.ScenarioName)
	assert.Equal(t, 365, report.HorizonDays)
	assert.Len(t, report.Summaries, 4)
	assert.Equal(t, domain.TrajectoryLinear, report.Summaries[0].Kind)
	assert.Equal(t, 2.5e9, report.Parameters.InitialCap)
	assert.Equal(t, 2.5e9, report.Parameters.FinalCap, "constant schedule keeps the initial cap")
	assert.True(t, report.Verification.AllPassed)
	assert.Equal(t, 4, report.Verification.ReplaysMatched)
	assert.Empty(t, report.RunErrors)
}

func TestGenerate_SummaryMismatch(t *testing.T) {
	result, summaries, invariants, replays := setupSweep(t, shortConfig())

	_, err := NewGenerator().Generate("baseline", result, summaries[:2], invariants, replays)
	assert.ErrorIs(t, err, ErrSummaryMismatch)
}

func TestGenerate_SurfacesDivergences(t *testing.T) {
	cfg := shortConfig()
	result, err := scenario.New(scenario.Options{Config: cfg}).Run(context.Background())
	require.NoError(t, err)
	summaries, err := metrics.SummarizeAll(result.Runs)
	require.NoError(t, err)

	// Corrupt a stored value, then verify.
	result.Runs[2].Emission[7] = -5

	invariants := verification.VerifyAllInvariants(result.Runs)
	replays := verification.VerifyAllReplays(result.Runs, cfg)

	report, err := NewGenerator().Generate("baseline", result, summaries, invariants, replays)
	require.NoError(t, err)

	assert.False(t, report.Verification.AllPassed)
	assert.NotEmpty(t, report.Verification.Divergences)

	md := RenderMarkdown(report)
	assert.Contains(t, md, "### Divergences")
	assert.Contains(t, md, "Some checks failed")
}

func TestGenerate_SurfacesRunErrors(t *testing.T) {
	cfg := shortConfig()
	cfg.LogisticMaxTVL = 1 // dooms the logistic run only
	result, summaries, invariants, replays := setupSweep(t, cfg)

	report, err := NewGenerator().Generate("baseline", result, summaries, invariants, replays)
	require.NoError(t, err)

	require.Len(t, report.RunErrors, 1)
	assert.Len(t, report.Summaries, 3)

	md := RenderMarkdown(report)
	assert.Contains(t, md, "## Run Errors")
	assert.Contains(t, md, "LOGISTIC")
}

func TestRenderMarkdown_Format(t *testing.T) {
	result, summaries, invariants, replays := setupSweep(t, shortConfig())

	report, err := NewGenerator().Generate("baseline", result, summaries, invariants, replays)
	require.NoError(t, err)

	md := RenderMarkdown(report)

	requiredSections := []string{
		"# Emissions Report",
		"Scenario: baseline",
		"## Parameters",
		"| Initial Hard Cap | 2.50B tokens |",
		"| Initial TVL | 50.00M |",
		"| Max Daily Tokens | 100.00M |",
		"## Trajectory Summaries",
		"| Linear Growth |",
		"## Verification",
		"All checks passed",
	}
	for _, section := range requiredSections {
		assert.Contains(t, md, section)
	}

	// Constant schedule renders no growth rows.
	assert.NotContains(t, md, "Maximum Hard Cap")
}

func TestRenderMarkdown_GrowingCapParameters(t *testing.T) {
	cfg := shortConfig()
	cfg.CapGrowthEnabled = true
	result, summaries, invariants, replays := setupSweep(t, cfg)

	report, err := NewGenerator().Generate("growing-cap", result, summaries, invariants, replays)
	require.NoError(t, err)

	md := RenderMarkdown(report)
	assert.Contains(t, md, "| Cap Growth Rate | 0.10 |")
	assert.Contains(t, md, "| Maximum Hard Cap | 5.00B tokens |")
	assert.Contains(t, md, "| Final Hard Cap |")
}

func TestRenderRunsCSV(t *testing.T) {
	run := domain.Run{
		RunID:    "r",
		Kind:     domain.TrajectoryLinear,
		Days:     2,
		TVL:      []float64{50, 60},
		Emission: []float64{10, 9},
		Minted:   []float64{0, 10},
		Cap:      []float64{100, 100},
	}

	csv := RenderRunsCSV([]domain.Run{run})
	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, "trajectory,day,years,tvl,emission,minted,cap", lines[0])
	assert.Equal(t, "LINEAR,0,0.0000,50.000000,10.000000,0.000000,100.000000", lines[1])
	assert.Equal(t, "LINEAR,1,0.0027,60.000000,9.000000,10.000000,100.000000", lines[2])
}

func TestRenderSummariesCSV(t *testing.T) {
	rows := []SummaryRow{{
		Kind:             domain.TrajectorySinusoidal,
		RunID:            "abc",
		TotalEmitted:     1.5,
		CapUtilization:   0.25,
		PeakEmission:     2,
		PeakEmissionDay:  3,
		MeanEmission:     0.5,
		MedianEmission:   0.25,
		EmissionP10:      0.1,
		EmissionP90:      1.9,
		EmissionStddev:   0.7,
		ZeroEmissionDays: 4,
		HalfCapDay:       -1,
		MinTVL:           -10,
		MinTVLDay:        2,
		MaxTVL:           90,
	}}

	csv := RenderSummariesCSV(rows)
	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")

	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "trajectory,run_id,total_emitted"))
	assert.Equal(t,
		"SINUSOIDAL,abc,1.500000,0.250000,2.000000,3,0.500000,0.250000,0.100000,1.900000,0.700000,4,-1,-10.000000,2,90.000000",
		lines[1])
}

func TestRenderSweepCSV(t *testing.T) {
	rows := []SweepRow{{
		Param:          "alpha",
		Value:          1e-5,
		Kind:           domain.TrajectoryLinear,
		TotalEmitted:   100,
		CapUtilization: 0.5,
		PeakEmission:   10,
		HalfCapDay:     7,
	}}

	csv := RenderSweepCSV(rows)
	assert.Contains(t, csv, "param,value,trajectory,total_emitted")
	assert.Contains(t, csv, "alpha,1e-05,LINEAR,100.000000,0.500000,10.000000,7")
}
