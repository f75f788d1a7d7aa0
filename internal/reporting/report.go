package reporting

import (
	"time"

	"token-emissions-lab/internal/domain"
)

// Report represents the emissions report structure.
type Report struct {
	// Metadata
	GeneratedAt  time.Time
	ScenarioName string
	HorizonDays  int

	// Model parameters as configured
	Parameters ParameterSection

	// Per-trajectory summaries (canonical kind order)
	Summaries []SummaryRow

	// Verification outcome
	Verification VerificationSection

	// Trajectories that failed to run
	RunErrors []string
}

// ParameterSection mirrors the lab's parameter display. FinalCap is
// read off the computed schedule when at least one run completed.
type ParameterSection struct {
	InitialCap       float64
	CapGrowthEnabled bool
	CapGrowthRate    float64
	MaxCap           float64
	FinalCap         float64
	StartTVL         float64
	DeltaMax         float64
	Alpha            float64
	Years            int
}

// SummaryRow represents one row in the trajectory summary table.
type SummaryRow struct {
	Kind             domain.TrajectoryKind
	Label            string
	RunID            string
	TotalEmitted     float64
	CapUtilization   float64
	PeakEmission     float64
	PeakEmissionDay  int
	MeanEmission     float64
	MedianEmission   float64
	EmissionP10      float64
	EmissionP90      float64
	EmissionStddev   float64
	ZeroEmissionDays int
	HalfCapDay       int // -1 when half the final cap is never reached
	MinTVL           float64
	MinTVLDay        int
	MaxTVL           float64
}

// VerificationSection summarizes invariant and replay outcomes.
type VerificationSection struct {
	InvariantsChecked int
	InvariantsPassed  int
	ReplaysChecked    int
	ReplaysMatched    int
	Divergences       []string
	AllPassed         bool
}

// SweepRow is one (parameter value, trajectory) result of a parameter
// sweep.
type SweepRow struct {
	Param          string
	Value          float64
	Kind           domain.TrajectoryKind
	TotalEmitted   float64
	CapUtilization float64
	PeakEmission   float64
	HalfCapDay     int
}
