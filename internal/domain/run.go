package domain

// Run holds the full daily series produced by one simulation.
// All four slices share the same length (Days), indexed by day.
// Minted[t] is the cumulative supply before day t's emission, so the
// final day's emission is never folded back into the series.
type Run struct {
	RunID string
	Kind  TrajectoryKind
	Days  int

	TVL      []float64
	Emission []float64
	Minted   []float64
	Cap      []float64
}

// TotalEmitted returns the cumulative tokens distributed across the
// whole horizon, including the final day's emission.
func (r Run) TotalEmitted() float64 {
	if r.Days == 0 {
		return 0
	}
	return r.Minted[r.Days-1] + r.Emission[r.Days-1]
}

// FinalCap returns the hard cap on the last simulated day.
func (r Run) FinalCap() float64 {
	if r.Days == 0 {
		return 0
	}
	return r.Cap[r.Days-1]
}
