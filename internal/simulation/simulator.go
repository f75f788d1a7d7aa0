package simulation

import "errors"

// Simulator errors
var (
	ErrSeriesLengthMismatch = errors.New("tvl and cap series must have the same length")
)

// Step computes one day's emission from the running cumulative mint.
// The recurrence couples a cap-remaining factor with an inverse-TVL
// damping factor, then clamps so the cumulative mint can never pass
// the day's cap:
//
//	remaining = 1 - minted/cap
//	damping   = 1 / (1 + alpha*tvl)
//	actual    = min(deltaMax*remaining*damping, cap-minted), floored at 0
//
// The floor defends against negative emissions when a sinusoidal TVL
// dip drives the damping factor negative or floating-point drift pushes
// the clamp target below zero.
func Step(minted, capToday, tvl, deltaMax, alpha float64) float64 {
	remaining := 1 - minted/capToday
	damping := 1 / (1 + alpha*tvl)
	provisional := deltaMax * remaining * damping

	actual := provisional
	if headroom := capToday - minted; actual > headroom {
		actual = headroom
	}
	if actual < 0 {
		return 0
	}
	return actual
}

// Simulate folds Step over the whole horizon. The day loop is strictly
// sequential: each day's emission depends on the cumulative mint left
// by the previous day, and the clamp makes the recurrence nonlinear,
// so no prefix-sum shortcut applies.
//
// minted[t] is the cumulative supply before day t's emission, with
// minted[0] = 0. The final day's emission is returned in emission
// only; there is no day after it to accumulate into.
func Simulate(tvl, capSeries []float64, deltaMax, alpha float64) (emission, minted []float64, err error) {
	if len(tvl) != len(capSeries) {
		return nil, nil, ErrSeriesLengthMismatch
	}

	days := len(tvl)
	emission = make([]float64, days)
	minted = make([]float64, days)

	for t := 0; t < days; t++ {
		emission[t] = Step(minted[t], capSeries[t], tvl[t], deltaMax, alpha)
		if t+1 < days {
			minted[t+1] = minted[t] + emission[t]
		}
	}
	return emission, minted, nil
}
