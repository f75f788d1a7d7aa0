package verification

import (
	"token-emissions-lab/internal/domain"
	"token-emissions-lab/internal/hardcap"
	"token-emissions-lab/internal/observability"
	"token-emissions-lab/internal/runid"
	"token-emissions-lab/internal/simulation"
	"token-emissions-lab/internal/trajectory"
)

// VerifyReplay re-simulates the run's configuration and compares every
// series bit-exactly (==, no tolerance). The simulator is a pure fold,
// so any drift at all means the stored run and the current code no
// longer agree.
func VerifyReplay(run domain.Run, cfg domain.Config) *VerificationResult {
	result := &VerificationResult{RunID: run.RunID, Kind: run.Kind}

	if want := runid.ComputeRunID(run.Kind, cfg); run.RunID != want {
		result.addDivergence(FieldDivergence{
			Field:    "RunID",
			Day:      -1,
			Expected: want,
			Actual:   run.RunID,
		})
	}

	tr, err := trajectory.FromConfig(run.Kind, cfg)
	if err != nil {
		result.addDivergence(FieldDivergence{
			Field:    "Trajectory",
			Day:      -1,
			Expected: string(run.Kind),
			Actual:   err.Error(),
		})
		return result
	}

	days := cfg.HorizonDays()
	if run.Days != days {
		result.addDivergence(FieldDivergence{
			Field:    "Days",
			Day:      -1,
			Expected: days,
			Actual:   run.Days,
		})
		return result
	}

	tvl := tr.Series(days)
	capSeries := hardcap.FromConfig(cfg).Series(days)
	emission, minted, err := simulation.Simulate(tvl, capSeries, cfg.DeltaMax, cfg.Alpha)
	if err != nil {
		result.addDivergence(FieldDivergence{
			Field:    "Simulation",
			Day:      -1,
			Expected: "replayable",
			Actual:   err.Error(),
		})
		return result
	}

	for t := 0; t < days && len(result.Divergences) < maxDivergences; t++ {
		if run.TVL[t] != tvl[t] {
			result.addDivergence(FieldDivergence{Field: "TVL", Day: t, Expected: tvl[t], Actual: run.TVL[t]})
		}
		if run.Cap[t] != capSeries[t] {
			result.addDivergence(FieldDivergence{Field: "Cap", Day: t, Expected: capSeries[t], Actual: run.Cap[t]})
		}
		if run.Emission[t] != emission[t] {
			result.addDivergence(FieldDivergence{Field: "Emission", Day: t, Expected: emission[t], Actual: run.Emission[t]})
		}
		if run.Minted[t] != minted[t] {
			result.addDivergence(FieldDivergence{Field: "Minted", Day: t, Expected: minted[t], Actual: run.Minted[t]})
		}
	}

	result.Match = len(result.Divergences) == 0
	return result
}

// VerifyAllInvariants runs the invariant checks over every run.
func VerifyAllInvariants(runs []domain.Run) *VerificationReport {
	results := make([]VerificationResult, 0, len(runs))
	for _, run := range runs {
		results = append(results, *VerifyInvariants(run))
	}
	return buildReport(results)
}

// VerifyAllReplays runs the replay comparison over every run.
func VerifyAllReplays(runs []domain.Run, cfg domain.Config) *VerificationReport {
	results := make([]VerificationResult, 0, len(runs))
	for _, run := range runs {
		results = append(results, *VerifyReplay(run, cfg))
	}
	return buildReport(results)
}

// VerifyAll runs both checks per run and merges the divergences into
// one result per run.
func VerifyAll(runs []domain.Run, cfg domain.Config) *VerificationReport {
	results := make([]VerificationResult, 0, len(runs))

	for _, run := range runs {
		result := VerifyInvariants(run)
		for _, d := range VerifyReplay(run, cfg).Divergences {
			result.addDivergence(d)
		}
		result.Match = len(result.Divergences) == 0

		if result.Match {
			observability.RecordVerification("match", 0)
		} else {
			observability.RecordVerification("divergent", len(result.Divergences))
		}
		results = append(results, *result)
	}

	return buildReport(results)
}

// HasDivergence reports whether any result diverged on the named field.
func (r *VerificationReport) HasDivergence(field string) bool {
	for _, result := range r.Results {
		for _, d := range result.Divergences {
			if d.Field == field {
				return true
			}
		}
	}
	return false
}

func buildReport(results []VerificationResult) *VerificationReport {
	report := &VerificationReport{
		TotalRuns: len(results),
		Results:   results,
	}
	for _, result := range results {
		if result.Match {
			report.MatchedRuns++
		} else {
			report.DivergentRuns++
		}
	}
	return report
}
