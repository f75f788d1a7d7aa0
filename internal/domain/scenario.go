package domain

// Scenario pairs a stable identifier with a complete parameter set.
// From SWEEP_SCENARIOS.md.
type Scenario struct {
	ScenarioID string
	Config     Config
}

// Scenario ID constants
const (
	ScenarioBaseline    = "baseline"
	ScenarioGrowingCap  = "growing-cap"
	ScenarioDeepDamping = "deep-damping"
	ScenarioTightCap    = "tight-cap"
)

// DefaultScenarios returns the predefined sweep scenarios in report order.
// Each starts from the model defaults and overrides the fields under study.
func DefaultScenarios() []Scenario {
	baseline := DefaultConfig()

	growingCap := DefaultConfig()
	growingCap.CapGrowthEnabled = true

	deepDamping := DefaultConfig()
	deepDamping.Alpha = 1e-3

	tightCap := DefaultConfig()
	tightCap.InitialCap = 5e8

	return []Scenario{
		{ScenarioID: ScenarioBaseline, Config: baseline},
		{ScenarioID: ScenarioGrowingCap, Config: growingCap},
		{ScenarioID: ScenarioDeepDamping, Config: deepDamping},
		{ScenarioID: ScenarioTightCap, Config: tightCap},
	}
}
