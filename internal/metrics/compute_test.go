package metrics

import (
	"math"
	"testing"
)

func TestComputeMean(t *testing.T) {
	if got := computeMean([]float64{1, 2, 3, 4}); got != 2.5 {
		t.Errorf("expected 2.5, got %f", got)
	}
	if got := computeMean(nil); got != 0 {
		t.Errorf("expected 0 for empty input, got %f", got)
	}
}

func TestComputeStddev(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	mean := computeMean(values)

	// Sample stddev with n-1 denominator.
	got := computeStddev(values, mean)
	want := math.Sqrt(32.0 / 7.0)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("expected %f, got %f", want, got)
	}

	if got := computeStddev([]float64{5}, 5); got != 0 {
		t.Errorf("expected 0 for single sample, got %f", got)
	}
}

func TestComputePercentile(t *testing.T) {
	sorted := []float64{10, 20, 30, 40, 50}

	tests := []struct {
		p    float64
		want float64
	}{
		{0.0, 10},
		{0.50, 30},
		{0.25, 20},
		{1.0, 50},
		{0.125, 15}, // interpolates halfway between 10 and 20
	}
	for _, tt := range tests {
		if got := computePercentile(sorted, tt.p); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("p=%.3f: expected %f, got %f", tt.p, tt.want, got)
		}
	}

	if got := computePercentile(nil, 0.5); got != 0 {
		t.Errorf("expected 0 for empty input, got %f", got)
	}
	if got := computePercentile([]float64{7}, 0.9); got != 7 {
		t.Errorf("expected 7 for single value, got %f", got)
	}
}

func TestComputePeak(t *testing.T) {
	peak, day := computePeak([]float64{3, 9, 9, 1})
	if peak != 9 {
		t.Errorf("expected peak 9, got %f", peak)
	}
	if day != 1 {
		t.Errorf("expected first peak day 1, got %d", day)
	}
}

func TestComputeTrough(t *testing.T) {
	values := []float64{5, -3, 8, -3, 0}
	trough, day := computeTrough(values)
	if trough != -3 {
		t.Errorf("expected -3, got %f", trough)
	}
	if day != 1 {
		t.Errorf("expected first trough day 1, got %d", day)
	}
	if got := computeMax(values); got != 8 {
		t.Errorf("expected 8, got %f", got)
	}
}

func TestComputeHalfCapDay(t *testing.T) {
	minted := []float64{0, 40, 70, 90, 100}
	emission := []float64{40, 30, 20, 10, 0}

	// Final cap 200: half is 100, first reached end of day 3 (90+10).
	if got := computeHalfCapDay(minted, emission, 200); got != 3 {
		t.Errorf("expected day 3, got %d", got)
	}
	// Half of 400 is never reached.
	if got := computeHalfCapDay(minted, emission, 400); got != -1 {
		t.Errorf("expected -1, got %d", got)
	}
	// Day 0 counts when its own emission crosses the mark.
	if got := computeHalfCapDay(minted, emission, 80); got != 0 {
		t.Errorf("expected day 0, got %d", got)
	}
}

func TestCountZeros(t *testing.T) {
	if got := countZeros([]float64{0, 1, 0, 2, 0}); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
}

func TestSortedCopy_LeavesInputIntact(t *testing.T) {
	in := []float64{3, 1, 2}
	out := sortedCopy(in)

	if out[0] != 1 || out[1] != 2 || out[2] != 3 {
		t.Errorf("expected sorted copy, got %v", out)
	}
	if in[0] != 3 || in[1] != 1 || in[2] != 2 {
		t.Errorf("input order must not change, got %v", in)
	}
}
