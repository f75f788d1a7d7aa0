package metrics

import (
	"errors"
	"fmt"

	"token-emissions-lab/internal/domain"
)

// Summary errors
var (
	ErrEmptyRun = errors.New("run has no simulated days")
)

// RunSummary condenses one simulation run into the headline figures
// reports are built from.
type RunSummary struct {
	RunID string
	Kind  domain.TrajectoryKind
	Label string

	// Emission distribution
	TotalEmitted     float64
	PeakEmission     float64
	PeakEmissionDay  int
	MeanEmission     float64
	MedianEmission   float64
	EmissionP10      float64
	EmissionP90      float64
	EmissionStddev   float64
	ZeroEmissionDays int

	// Cap position
	FinalCap       float64
	CapUtilization float64
	HalfCapDay     int // first day cumulative mint reaches half the final cap, -1 if never

	// TVL range. MinTVL goes negative when a sinusoidal dip outruns
	// the trend; the dip is surfaced here rather than clamped away.
	MinTVL    float64
	MinTVLDay int
	MaxTVL    float64
}

// Summarize computes the summary for one run.
func Summarize(run domain.Run) (RunSummary, error) {
	if run.Days == 0 {
		return RunSummary{}, ErrEmptyRun
	}

	sortedEmission := sortedCopy(run.Emission)
	mean := computeMean(run.Emission)
	peak, peakDay := computePeak(run.Emission)
	minTVL, minTVLDay := computeTrough(run.TVL)

	s := RunSummary{
		RunID: run.RunID,
		Kind:  run.Kind,
		Label: run.Kind.Label(),

		TotalEmitted:     run.TotalEmitted(),
		PeakEmission:     peak,
		PeakEmissionDay:  peakDay,
		MeanEmission:     mean,
		MedianEmission:   computePercentile(sortedEmission, 0.50),
		EmissionP10:      computePercentile(sortedEmission, 0.10),
		EmissionP90:      computePercentile(sortedEmission, 0.90),
		EmissionStddev:   computeStddev(run.Emission, mean),
		ZeroEmissionDays: countZeros(run.Emission),

		FinalCap:   run.FinalCap(),
		HalfCapDay: computeHalfCapDay(run.Minted, run.Emission, run.FinalCap()),

		MinTVL:    minTVL,
		MinTVLDay: minTVLDay,
		MaxTVL:    computeMax(run.TVL),
	}
	if s.FinalCap > 0 {
		s.CapUtilization = s.TotalEmitted / s.FinalCap
	}

	return s, nil
}

// SummarizeAll summarizes every run, preserving order.
func SummarizeAll(runs []domain.Run) ([]RunSummary, error) {
	out := make([]RunSummary, 0, len(runs))
	for _, run := range runs {
		s, err := Summarize(run)
		if err != nil {
			return nil, fmt.Errorf("summarize %s: %w", run.Kind, err)
		}
		out = append(out, s)
	}
	return out, nil
}
