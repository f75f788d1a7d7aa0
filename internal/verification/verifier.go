// Package verification implements run invariant and replay checks per MODEL_SPEC.md Section 6.
// It verifies that completed runs respect the hard-cap clamp and that
// re-simulating a run reproduces it bit-exactly.
package verification

import (
	"math"

	"token-emissions-lab/internal/domain"
)

// FloatTolerance is the relative tolerance for cap-bound comparisons.
// Per MODEL_SPEC.md Section 6.1: cumulative mint may sit within
// cap*(1+1e-7) to absorb last-place rounding from the clamp.
const FloatTolerance = 1e-7

// maxDivergences bounds how many divergences a single run reports.
// Enough to localize a fault without flooding the report when every
// day downstream of the first bad value disagrees.
const maxDivergences = 10

// FieldDivergence represents a violated bound or a mismatch between
// stored and replayed values. For bound checks Expected carries the
// bound itself. Day is -1 for run-level fields.
type FieldDivergence struct {
	Field    string
	Day      int
	Expected interface{}
	Actual   interface{}
}

// VerificationResult contains the result of verifying a single run.
type VerificationResult struct {
	RunID       string
	Kind        domain.TrajectoryKind
	Match       bool
	Divergences []FieldDivergence
}

// VerificationReport contains results for batch verification.
type VerificationReport struct {
	TotalRuns     int
	MatchedRuns   int
	DivergentRuns int
	Results       []VerificationResult
}

func (r *VerificationResult) addDivergence(d FieldDivergence) {
	if len(r.Divergences) < maxDivergences {
		r.Divergences = append(r.Divergences, d)
	}
}

// VerifyInvariants checks the structural invariants of a completed run:
// the cumulative mint starts at zero, never decreases, never passes the
// day's cap, follows the one-accumulator recurrence, and no emission is
// negative or NaN.
func VerifyInvariants(run domain.Run) *VerificationResult {
	result := &VerificationResult{RunID: run.RunID, Kind: run.Kind}

	if run.Days > 0 && run.Minted[0] != 0 {
		result.addDivergence(FieldDivergence{
			Field:    "Minted",
			Day:      0,
			Expected: 0.0,
			Actual:   run.Minted[0],
		})
	}

	for t := 0; t < run.Days; t++ {
		if run.Cap[t] <= 0 || math.IsNaN(run.Cap[t]) {
			result.addDivergence(FieldDivergence{
				Field:    "Cap",
				Day:      t,
				Expected: 0.0,
				Actual:   run.Cap[t],
			})
		}

		if run.Emission[t] < 0 || math.IsNaN(run.Emission[t]) {
			result.addDivergence(FieldDivergence{
				Field:    "Emission",
				Day:      t,
				Expected: 0.0,
				Actual:   run.Emission[t],
			})
		}

		if !withinCap(run.Minted[t], run.Cap[t]) {
			result.addDivergence(FieldDivergence{
				Field:    "Minted",
				Day:      t,
				Expected: run.Cap[t],
				Actual:   run.Minted[t],
			})
		}

		if t > 0 {
			if run.Minted[t] < run.Minted[t-1] {
				result.addDivergence(FieldDivergence{
					Field:    "Minted",
					Day:      t,
					Expected: run.Minted[t-1],
					Actual:   run.Minted[t],
				})
			}

			want := run.Minted[t-1] + run.Emission[t-1]
			if run.Minted[t] != want {
				result.addDivergence(FieldDivergence{
					Field:    "MintedRecurrence",
					Day:      t,
					Expected: want,
					Actual:   run.Minted[t],
				})
			}
		}
	}

	// The final day's emission never folds back into Minted, so the
	// horizon total needs its own cap check.
	if run.Days > 0 {
		last := run.Days - 1
		if !withinCap(run.TotalEmitted(), run.Cap[last]) {
			result.addDivergence(FieldDivergence{
				Field:    "TotalEmitted",
				Day:      last,
				Expected: run.Cap[last],
				Actual:   run.TotalEmitted(),
			})
		}
	}

	result.Match = len(result.Divergences) == 0
	return result
}

// withinCap reports whether minted respects the cap within the
// relative tolerance.
func withinCap(minted, capValue float64) bool {
	return minted <= capValue*(1+FloatTolerance)
}
