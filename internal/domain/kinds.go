package domain

// TrajectoryKind identifies one of the supported TVL growth shapes.
type TrajectoryKind string

const (
	TrajectoryLinear      TrajectoryKind = "LINEAR"
	TrajectorySinusoidal  TrajectoryKind = "SINUSOIDAL"
	TrajectoryExponential TrajectoryKind = "EXPONENTIAL"
	TrajectoryLogistic    TrajectoryKind = "LOGISTIC"
)

// AllTrajectoryKinds lists every kind in canonical report order.
var AllTrajectoryKinds = []TrajectoryKind{
	TrajectoryLinear,
	TrajectorySinusoidal,
	TrajectoryExponential,
	TrajectoryLogistic,
}

// Label returns the human-readable name used in reports.
func (k TrajectoryKind) Label() string {
	switch k {
	case TrajectoryLinear:
		return "Linear Growth"
	case TrajectorySinusoidal:
		return "Sinusoidal Growth"
	case TrajectoryExponential:
		return "Exponential Growth"
	case TrajectoryLogistic:
		return "S-Curve Growth"
	default:
		return string(k)
	}
}
