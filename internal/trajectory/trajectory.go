package trajectory

import (
	"math"

	"token-emissions-lab/internal/domain"
)

// Trajectory is a fully parameterized TVL curve. The Kind tag selects
// which parameter set is active; fields outside the active set are zero.
// It is a plain value type so two trajectories built from the same
// config are interchangeable.
type Trajectory struct {
	Kind     domain.TrajectoryKind
	StartTVL float64

	// LINEAR, SINUSOIDAL trend, and EXPONENTIAL
	GrowthRate float64

	// SINUSOIDAL seasonal term
	Amplitude  float64
	PeriodDays int

	// LOGISTIC shape
	MidpointDay int
	Steepness   float64
	MaxTVL      float64
}

// Value evaluates the curve at day t.
// SINUSOIDAL may go negative when the amplitude exceeds the trend at
// small t. That is deliberate: the dip is preserved, not clamped, and
// callers surface it through the run summary's MinTVL.
func (tr Trajectory) Value(t int) float64 {
	day := float64(t)
	switch tr.Kind {
	case domain.TrajectoryLinear:
		return tr.StartTVL * (1 + tr.GrowthRate*day)
	case domain.TrajectorySinusoidal:
		trend := tr.StartTVL * (1 + tr.GrowthRate*day)
		seasonal := tr.Amplitude * math.Sin(2*math.Pi*day/float64(tr.PeriodDays))
		return trend + seasonal
	case domain.TrajectoryExponential:
		return tr.StartTVL * math.Exp(tr.GrowthRate*day)
	case domain.TrajectoryLogistic:
		return tr.StartTVL + (tr.MaxTVL-tr.StartTVL)/(1+math.Exp(-tr.Steepness*float64(t-tr.MidpointDay)))
	default:
		return 0
	}
}

// Series evaluates the curve for every day in [0, days).
func (tr Trajectory) Series(days int) []float64 {
	out := make([]float64, days)
	for t := 0; t < days; t++ {
		out[t] = tr.Value(t)
	}
	return out
}
