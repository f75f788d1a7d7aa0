// Package config loads named scenario files for the emissions lab.
// Every scenario starts from the model defaults; keys present in the
// file override them, so an explicit zero is honored while an absent
// key keeps the default.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"token-emissions-lab/internal/domain"
)

// Scenario file errors
var (
	ErrNoScenarios       = errors.New("scenario file defines no scenarios")
	ErrUnnamedScenario   = errors.New("scenario has no name")
	ErrDuplicateScenario = errors.New("duplicate scenario name")
)

// scenarioEntry mirrors domain.Config field-for-field with YAML tags.
// The domain type stays serialization-free; this is the file-facing
// shape.
type scenarioEntry struct {
	Name string `yaml:"name"`

	InitialCap       float64 `yaml:"initial_cap"`
	CapGrowthEnabled bool    `yaml:"cap_growth_enabled"`
	CapGrowthRate    float64 `yaml:"cap_growth_rate"`
	MaxCap           float64 `yaml:"max_cap"`
	StartTVL         float64 `yaml:"start_tvl"`
	DeltaMax         float64 `yaml:"delta_max"`
	Alpha            float64 `yaml:"alpha"`
	Years            int     `yaml:"years"`

	LinearGrowthRate    float64 `yaml:"linear_growth_rate"`
	SinGrowthRate       float64 `yaml:"sin_growth_rate"`
	SinAmplitude        float64 `yaml:"sin_amplitude"`
	SinPeriodDays       int     `yaml:"sin_period_days"`
	ExpGrowthRate       float64 `yaml:"exp_growth_rate"`
	LogisticMidpointDay int     `yaml:"logistic_midpoint_day"`
	LogisticSteepness   float64 `yaml:"logistic_steepness"`
	LogisticMaxTVL      float64 `yaml:"logistic_max_tvl"`
}

// scenarioFile is the top-level document. Scenarios stay raw nodes so
// each one can be decoded over its own prefilled defaults.
type scenarioFile struct {
	Scenarios []yaml.Node `yaml:"scenarios"`
}

// LoadScenarios reads and parses a YAML scenario file.
func LoadScenarios(path string) ([]domain.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	return ParseScenarios(data)
}

// ParseScenarios decodes scenario YAML and validates each scenario's
// global fields. Trajectory-specific bounds are checked later by the
// factory, so one kind's bad parameter cannot reject a whole scenario
// here.
func ParseScenarios(data []byte) ([]domain.Scenario, error) {
	var file scenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing scenario file: %w", err)
	}
	if len(file.Scenarios) == 0 {
		return nil, ErrNoScenarios
	}

	out := make([]domain.Scenario, 0, len(file.Scenarios))
	seen := make(map[string]struct{}, len(file.Scenarios))

	for i := range file.Scenarios {
		entry := defaultEntry()
		if err := file.Scenarios[i].Decode(&entry); err != nil {
			return nil, fmt.Errorf("parsing scenario %d: %w", i, err)
		}
		if entry.Name == "" {
			return nil, fmt.Errorf("scenario %d: %w", i, ErrUnnamedScenario)
		}
		if _, dup := seen[entry.Name]; dup {
			return nil, fmt.Errorf("scenario %q: %w", entry.Name, ErrDuplicateScenario)
		}
		seen[entry.Name] = struct{}{}

		cfg := entry.toConfig()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", entry.Name, err)
		}

		out = append(out, domain.Scenario{ScenarioID: entry.Name, Config: cfg})
	}

	return out, nil
}

// defaultEntry prefills an entry with the model defaults.
func defaultEntry() scenarioEntry {
	cfg := domain.DefaultConfig()
	return scenarioEntry{
		InitialCap:       cfg.InitialCap,
		CapGrowthEnabled: cfg.CapGrowthEnabled,
		CapGrowthRate:    cfg.CapGrowthRate,
		MaxCap:           cfg.MaxCap,
		StartTVL:         cfg.StartTVL,
		DeltaMax:         cfg.DeltaMax,
		Alpha:            cfg.Alpha,
		Years:            cfg.Years,

		LinearGrowthRate:    cfg.LinearGrowthRate,
		SinGrowthRate:       cfg.SinGrowthRate,
		SinAmplitude:        cfg.SinAmplitude,
		SinPeriodDays:       cfg.SinPeriodDays,
		ExpGrowthRate:       cfg.ExpGrowthRate,
		LogisticMidpointDay: cfg.LogisticMidpointDay,
		LogisticSteepness:   cfg.LogisticSteepness,
		LogisticMaxTVL:      cfg.LogisticMaxTVL,
	}
}

func (e scenarioEntry) toConfig() domain.Config {
	return domain.Config{
		InitialCap:       e.InitialCap,
		CapGrowthEnabled: e.CapGrowthEnabled,
		CapGrowthRate:    e.CapGrowthRate,
		MaxCap:           e.MaxCap,
		StartTVL:         e.StartTVL,
		DeltaMax:         e.DeltaMax,
		Alpha:            e.Alpha,
		Years:            e.Years,

		LinearGrowthRate:    e.LinearGrowthRate,
		SinGrowthRate:       e.SinGrowthRate,
		SinAmplitude:        e.SinAmplitude,
		SinPeriodDays:       e.SinPeriodDays,
		ExpGrowthRate:       e.ExpGrowthRate,
		LogisticMidpointDay: e.LogisticMidpointDay,
		LogisticSteepness:   e.LogisticSteepness,
		LogisticMaxTVL:      e.LogisticMaxTVL,
	}
}
