package domain

import "fmt"

// Config holds all model parameters for one emission-schedule simulation.
// Values are caller-supplied and must pass Validate before any simulation
// begins. Trajectory-specific bounds are checked by the trajectory factory
// so that one bad trajectory cannot invalidate the whole configuration.
type Config struct {
	// Hard cap
	InitialCap       float64 // initial hard cap in tokens
	CapGrowthEnabled bool    // false keeps the cap constant at InitialCap
	CapGrowthRate    float64 // logarithmic growth rate, [0, 1]
	MaxCap           float64 // ceiling the growing cap approaches

	// Emission model
	StartTVL float64 // TVL at day 0
	DeltaMax float64 // max tokens emittable per day before damping
	Alpha    float64 // TVL damping coefficient, strictly positive

	// Horizon
	Years int // simulated duration, [1, 20]

	// Linear trajectory
	LinearGrowthRate float64

	// Sinusoidal trajectory
	SinGrowthRate float64
	SinAmplitude  float64
	SinPeriodDays int

	// Exponential trajectory
	ExpGrowthRate float64

	// Logistic trajectory
	LogisticMidpointDay int
	LogisticSteepness   float64
	LogisticMaxTVL      float64
}

// DefaultConfig returns the model defaults.
func DefaultConfig() Config {
	return Config{
		InitialCap:       2.5e9,
		CapGrowthEnabled: false,
		CapGrowthRate:    0.1,
		MaxCap:           5e9,

		StartTVL: 50e6,
		DeltaMax: 100e6,
		Alpha:    1e-5,

		Years: 10,

		LinearGrowthRate: 0.01,

		SinGrowthRate: 0.005,
		SinAmplitude:  2e7,
		SinPeriodDays: 365,

		ExpGrowthRate: 0.001,

		LogisticMidpointDay: 1825,
		LogisticSteepness:   0.005,
		LogisticMaxTVL:      5e9,
	}
}

// HorizonDays returns the number of simulated days (365 per year).
func (c Config) HorizonDays() int {
	return 365 * c.Years
}

// Validate checks the cap, emission, and horizon fields.
// DeltaMax admits zero: a zero ceiling is the documented boundary where
// every emission is zero.
func (c Config) Validate() error {
	if c.InitialCap <= 0 {
		return fmt.Errorf("initial cap (%g) must be positive", c.InitialCap)
	}
	if c.CapGrowthEnabled {
		if c.CapGrowthRate < 0 || c.CapGrowthRate > 1 {
			return fmt.Errorf("cap growth rate (%g) must be within [0, 1]", c.CapGrowthRate)
		}
		if c.MaxCap < c.InitialCap {
			return fmt.Errorf("max cap (%g) must be >= initial cap (%g)", c.MaxCap, c.InitialCap)
		}
	}
	if c.StartTVL <= 0 {
		return fmt.Errorf("start TVL (%g) must be positive", c.StartTVL)
	}
	if c.DeltaMax < 0 {
		return fmt.Errorf("delta max (%g) must not be negative", c.DeltaMax)
	}
	if c.Alpha <= 0 {
		return fmt.Errorf("alpha (%g) must be strictly positive", c.Alpha)
	}
	if c.Years < 1 || c.Years > 20 {
		return fmt.Errorf("years (%d) must be within [1, 20]", c.Years)
	}
	return nil
}
