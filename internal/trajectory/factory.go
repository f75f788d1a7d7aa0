package trajectory

import (
	"errors"

	"token-emissions-lab/internal/domain"
)

// Factory errors
var (
	ErrUnknownTrajectoryKind = errors.New("unknown trajectory kind")
	ErrLinearGrowthRate      = errors.New("LINEAR growth rate must be within [0.001, 0.05]")
	ErrSinGrowthRate         = errors.New("SINUSOIDAL growth rate must be within [0.001, 0.05]")
	ErrSinAmplitude          = errors.New("SINUSOIDAL amplitude must be at least 1")
	ErrSinPeriod             = errors.New("SINUSOIDAL period must be within [30, 730] days")
	ErrExpGrowthRate         = errors.New("EXPONENTIAL growth rate must be within [0.0001, 0.01]")
	ErrLogisticMidpoint      = errors.New("LOGISTIC midpoint must be within [100, 3650] days")
	ErrLogisticSteepness     = errors.New("LOGISTIC steepness must be within [0.001, 0.05]")
	ErrLogisticMaxTVL        = errors.New("LOGISTIC max TVL must be >= start TVL")
)

// FromConfig builds a Trajectory of the given kind from domain.Config.
// Per-kind parameter bounds are validated here rather than in
// Config.Validate so that one out-of-range trajectory does not block
// the remaining kinds.
func FromConfig(kind domain.TrajectoryKind, cfg domain.Config) (Trajectory, error) {
	switch kind {
	case domain.TrajectoryLinear:
		return fromLinearConfig(cfg)
	case domain.TrajectorySinusoidal:
		return fromSinusoidalConfig(cfg)
	case domain.TrajectoryExponential:
		return fromExponentialConfig(cfg)
	case domain.TrajectoryLogistic:
		return fromLogisticConfig(cfg)
	default:
		return Trajectory{}, ErrUnknownTrajectoryKind
	}
}

func fromLinearConfig(cfg domain.Config) (Trajectory, error) {
	if cfg.LinearGrowthRate < 0.001 || cfg.LinearGrowthRate > 0.05 {
		return Trajectory{}, ErrLinearGrowthRate
	}

	return Trajectory{
		Kind:       domain.TrajectoryLinear,
		StartTVL:   cfg.StartTVL,
		GrowthRate: cfg.LinearGrowthRate,
	}, nil
}

func fromSinusoidalConfig(cfg domain.Config) (Trajectory, error) {
	if cfg.SinGrowthRate < 0.001 || cfg.SinGrowthRate > 0.05 {
		return Trajectory{}, ErrSinGrowthRate
	}
	if cfg.SinAmplitude < 1 {
		return Trajectory{}, ErrSinAmplitude
	}
	if cfg.SinPeriodDays < 30 || cfg.SinPeriodDays > 730 {
		return Trajectory{}, ErrSinPeriod
	}

	return Trajectory{
		Kind:       domain.TrajectorySinusoidal,
		StartTVL:   cfg.StartTVL,
		GrowthRate: cfg.SinGrowthRate,
		Amplitude:  cfg.SinAmplitude,
		PeriodDays: cfg.SinPeriodDays,
	}, nil
}

func fromExponentialConfig(cfg domain.Config) (Trajectory, error) {
	if cfg.ExpGrowthRate < 0.0001 || cfg.ExpGrowthRate > 0.01 {
		return Trajectory{}, ErrExpGrowthRate
	}

	return Trajectory{
		Kind:       domain.TrajectoryExponential,
		StartTVL:   cfg.StartTVL,
		GrowthRate: cfg.ExpGrowthRate,
	}, nil
}

func fromLogisticConfig(cfg domain.Config) (Trajectory, error) {
	if cfg.LogisticMidpointDay < 100 || cfg.LogisticMidpointDay > 3650 {
		return Trajectory{}, ErrLogisticMidpoint
	}
	if cfg.LogisticSteepness < 0.001 || cfg.LogisticSteepness > 0.05 {
		return Trajectory{}, ErrLogisticSteepness
	}
	if cfg.LogisticMaxTVL < cfg.StartTVL {
		return Trajectory{}, ErrLogisticMaxTVL
	}

	return Trajectory{
		Kind:        domain.TrajectoryLogistic,
		StartTVL:    cfg.StartTVL,
		MidpointDay: cfg.LogisticMidpointDay,
		Steepness:   cfg.LogisticSteepness,
		MaxTVL:      cfg.LogisticMaxTVL,
	}, nil
}
