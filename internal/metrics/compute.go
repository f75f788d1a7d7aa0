package metrics

import (
	"math"
	"sort"
)

// computeMean calculates the arithmetic mean of values.
func computeMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// computeStddev calculates sample standard deviation (n-1 denominator).
func computeStddev(values []float64, mean float64) float64 {
	n := len(values)
	if n < 2 {
		return 0 // Need at least 2 samples for sample stddev
	}
	sumSq := 0.0
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(n-1))
}

// computePercentile uses linear interpolation.
// sorted must be pre-sorted ASC.
// p is percentile (0.10 = 10th percentile).
func computePercentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}

	// Index for percentile (0-based, continuous)
	idx := p * float64(n-1)
	lower := int(idx)
	upper := lower + 1
	if upper >= n {
		return sorted[n-1]
	}

	// Linear interpolation
	frac := idx - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

// sortedCopy returns an ascending copy, leaving the day order intact
// for the positional statistics.
func sortedCopy(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	sort.Float64s(out)
	return out
}

// computePeak returns the maximum value and the first day it occurs.
func computePeak(values []float64) (float64, int) {
	if len(values) == 0 {
		return 0, 0
	}
	peak := values[0]
	day := 0
	for i, v := range values {
		if v > peak {
			peak = v
			day = i
		}
	}
	return peak, day
}

// computeTrough returns the minimum value and the first day it occurs.
func computeTrough(values []float64) (float64, int) {
	if len(values) == 0 {
		return 0, 0
	}
	trough := values[0]
	day := 0
	for i, v := range values {
		if v < trough {
			trough = v
			day = i
		}
	}
	return trough, day
}

// computeMax returns the maximum value.
func computeMax(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	max := values[0]
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	return max
}

// countZeros counts entries that are exactly zero, the days the clamp
// or the damping floor silenced emission entirely.
func countZeros(values []float64) int {
	n := 0
	for _, v := range values {
		if v == 0 {
			n++
		}
	}
	return n
}

// computeHalfCapDay returns the first day whose end-of-day cumulative
// mint reaches half the final cap, or -1 when it never does.
func computeHalfCapDay(minted, emission []float64, finalCap float64) int {
	target := finalCap / 2
	for t := range minted {
		if minted[t]+emission[t] >= target {
			return t
		}
	}
	return -1
}
