package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Emissions Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	if r.ScenarioName != "" {
		sb.WriteString(fmt.Sprintf("Scenario: %s\n\n", r.ScenarioName))
	}
	sb.WriteString(fmt.Sprintf("Trajectories: %d | Horizon: %d days\n\n", len(r.Summaries), r.HorizonDays))

	// Parameters
	sb.WriteString("## Parameters\n\n")
	sb.WriteString("| Parameter | Value |\n")
	sb.WriteString("|-----------|-------|\n")
	p := r.Parameters
	sb.WriteString(fmt.Sprintf("| Initial Hard Cap | %.2fB tokens |\n", p.InitialCap/1e9))
	sb.WriteString(fmt.Sprintf("| Initial TVL | %.2fM |\n", p.StartTVL/1e6))
	sb.WriteString(fmt.Sprintf("| Max Daily Tokens | %.2fM |\n", p.DeltaMax/1e6))
	sb.WriteString(fmt.Sprintf("| Alpha | %.1e |\n", p.Alpha))
	sb.WriteString(fmt.Sprintf("| Years Simulated | %d |\n", p.Years))
	if p.CapGrowthEnabled {
		sb.WriteString(fmt.Sprintf("| Cap Growth Rate | %.2f |\n", p.CapGrowthRate))
		sb.WriteString(fmt.Sprintf("| Maximum Hard Cap | %.2fB tokens |\n", p.MaxCap/1e9))
		sb.WriteString(fmt.Sprintf("| Final Hard Cap | %.2fB tokens |\n", p.FinalCap/1e9))
	}
	sb.WriteString("\n")

	// Trajectory Summaries
	sb.WriteString("## Trajectory Summaries\n\n")
	if len(r.Summaries) > 0 {
		sb.WriteString("| Trajectory | Total Emitted | Cap Used | Peak | Peak Day | Mean | Median | Zero Days | Half-Cap Day | Min TVL | Min Day |\n")
		sb.WriteString("|------------|---------------|----------|------|----------|------|--------|-----------|--------------|---------|--------|\n")
		for _, s := range r.Summaries {
			sb.WriteString(fmt.Sprintf("| %s | %.4fB | %.1f%% | %.0f | %d | %.0f | %.0f | %d | %s | %.1fM | %d |\n",
				s.Label, s.TotalEmitted/1e9, s.CapUtilization*100,
				s.PeakEmission, s.PeakEmissionDay, s.MeanEmission, s.MedianEmission,
				s.ZeroEmissionDays, formatDay(s.HalfCapDay), s.MinTVL/1e6, s.MinTVLDay))
		}
	} else {
		sb.WriteString("No trajectory runs completed.\n")
	}
	sb.WriteString("\n")

	// Verification
	sb.WriteString("## Verification\n\n")
	v := r.Verification
	sb.WriteString("| Check | Result | Status |\n")
	sb.WriteString("|-------|--------|--------|\n")
	sb.WriteString(fmt.Sprintf("| Invariants | %d/%d runs clean | %s |\n",
		v.InvariantsPassed, v.InvariantsChecked, passFail(v.InvariantsPassed == v.InvariantsChecked)))
	sb.WriteString(fmt.Sprintf("| Replay | %d/%d bit-exact | %s |\n",
		v.ReplaysMatched, v.ReplaysChecked, passFail(v.ReplaysMatched == v.ReplaysChecked)))
	sb.WriteString("\n")

	if len(v.Divergences) > 0 {
		sb.WriteString("### Divergences\n\n")
		for _, d := range v.Divergences {
			sb.WriteString(fmt.Sprintf("- %s\n", d))
		}
		sb.WriteString("\n")
	}

	if v.AllPassed {
		sb.WriteString("**All checks passed.** Proceeding with gate evaluation.\n\n")
	} else {
		sb.WriteString("**Some checks failed.** See SCHEDULE_GATE_REPORT.md.\n\n")
	}

	// Run errors (always shown if present)
	if len(r.RunErrors) > 0 {
		sb.WriteString("## Run Errors\n\n")
		for _, err := range r.RunErrors {
			sb.WriteString(fmt.Sprintf("- %s\n", err))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func passFail(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}

// formatDay renders -1 (never reached) as a dash.
func formatDay(day int) string {
	if day < 0 {
		return "-"
	}
	return fmt.Sprintf("%d", day)
}
