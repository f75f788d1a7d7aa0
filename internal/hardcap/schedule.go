package hardcap

import (
	"math"

	"token-emissions-lab/internal/domain"
)

// Schedule produces the daily hard-cap series for one simulation.
// With Growing unset the cap stays flat at InitialCap. With Growing
// set it follows a logarithmic ramp from InitialCap toward MaxCap,
// normalized over the full horizon so the ramp shape is independent
// of the horizon length.
type Schedule struct {
	InitialCap float64
	Growing    bool
	GrowthRate float64
	MaxCap     float64
}

// FromConfig builds a Schedule from the cap fields of a validated config.
func FromConfig(cfg domain.Config) Schedule {
	return Schedule{
		InitialCap: cfg.InitialCap,
		Growing:    cfg.CapGrowthEnabled,
		GrowthRate: cfg.CapGrowthRate,
		MaxCap:     cfg.MaxCap,
	}
}

// Series returns the cap for every day in [0, days).
// A zero growth rate degenerates to the constant schedule: the
// normalizing log term would otherwise be 0/0.
func (s Schedule) Series(days int) []float64 {
	out := make([]float64, days)

	if !s.Growing || s.GrowthRate == 0 {
		for t := range out {
			out[t] = s.InitialCap
		}
		return out
	}

	norm := math.Log(1 + s.GrowthRate*float64(days))
	for t := range out {
		out[t] = s.InitialCap + (s.MaxCap-s.InitialCap)*math.Log(1+s.GrowthRate*float64(t))/norm
	}
	return out
}
