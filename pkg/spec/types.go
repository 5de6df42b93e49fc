package spec

// Scenario is one gasifier operating case as written in a scenario file.
// Compositions and efficiencies are in percent, as on the parameter form.
type Scenario struct {
	Name      string            `yaml:"name" toml:"name" json:"name"`
	Biomass   Biomass           `yaml:"biomass" toml:"biomass" json:"biomass"`
	Reactor   Reactor           `yaml:"reactor" toml:"reactor" json:"reactor"`
	Agent     Agent             `yaml:"agent" toml:"agent" json:"agent"`
	Generator Generator         `yaml:"generator" toml:"generator" json:"generator"`
	Outputs   map[string]string `yaml:"outputs,omitempty" toml:"outputs,omitempty" json:"outputs,omitempty"`
}

// Biomass is the feedstock analysis and feed rate. Elemental percentages
// are on a dry, ash-free basis; ash and moisture are as received.
type Biomass struct {
	FlowKgH             float64 `yaml:"flow_kg_h" toml:"flow_kg_h" json:"flow_kg_h"`
	CarbonPct           float64 `yaml:"carbon_pct" toml:"carbon_pct" json:"carbon_pct"`
	HydrogenPct         float64 `yaml:"hydrogen_pct" toml:"hydrogen_pct" json:"hydrogen_pct"`
	OxygenPct           float64 `yaml:"oxygen_pct" toml:"oxygen_pct" json:"oxygen_pct"`
	NitrogenPct         float64 `yaml:"nitrogen_pct" toml:"nitrogen_pct" json:"nitrogen_pct"`
	SulfurPct           float64 `yaml:"sulfur_pct" toml:"sulfur_pct" json:"sulfur_pct"`
	AshPct              float64 `yaml:"ash_pct" toml:"ash_pct" json:"ash_pct"`
	MoisturePct         float64 `yaml:"moisture_pct" toml:"moisture_pct" json:"moisture_pct"`
	LHVMJKg             float64 `yaml:"lhv_mj_kg" toml:"lhv_mj_kg" json:"lhv_mj_kg"`
	CarbonConversionPct float64 `yaml:"carbon_conversion_pct" toml:"carbon_conversion_pct" json:"carbon_conversion_pct"`
}

// ElementalSumPct returns C+H+O+N+S in percent.
func (b Biomass) ElementalSumPct() float64 {
	return b.CarbonPct + b.HydrogenPct + b.OxygenPct + b.NitrogenPct + b.SulfurPct
}

type Reactor struct {
	TemperatureC float64 `yaml:"temperature_c" toml:"temperature_c" json:"temperature_c"`
	PressureBar  float64 `yaml:"pressure_bar" toml:"pressure_bar" json:"pressure_bar"`
	// MethaneSplit is the fraction (not percent) of converted carbon that
	// leaves as CH4.
	MethaneSplit  float64 `yaml:"methane_split" toml:"methane_split" json:"methane_split"`
	KpCorrelation string  `yaml:"kp_correlation,omitempty" toml:"kp_correlation,omitempty" json:"kp_correlation,omitempty"`
}

// Agent selects the gasifying agent. Ratios left out take the default for
// the agent type.
type Agent struct {
	Type                string   `yaml:"type" toml:"type" json:"type"`
	ER                  *float64 `yaml:"er,omitempty" toml:"er,omitempty" json:"er,omitempty"`
	SBR                 *float64 `yaml:"sbr,omitempty" toml:"sbr,omitempty" json:"sbr,omitempty"`
	OBR                 *float64 `yaml:"obr,omitempty" toml:"obr,omitempty" json:"obr,omitempty"`
	StoichiometricBasis string   `yaml:"stoichiometric_basis,omitempty" toml:"stoichiometric_basis,omitempty" json:"stoichiometric_basis,omitempty"`
}

type Generator struct {
	EngineEfficiencyPct float64 `yaml:"engine_efficiency_pct" toml:"engine_efficiency_pct" json:"engine_efficiency_pct"`
	Hours               float64 `yaml:"hours" toml:"hours" json:"hours"`
}

// Default returns the scenario the parameter form starts from: 100 kg/h of
// wood chips gasified with air at 800 °C.
func Default() *Scenario {
	return &Scenario{
		Name: "default",
		Biomass: Biomass{
			FlowKgH:             100,
			CarbonPct:           50,
			HydrogenPct:         6,
			OxygenPct:           43,
			NitrogenPct:         0.5,
			SulfurPct:           0,
			AshPct:              1,
			MoisturePct:         10,
			LHVMJKg:             18,
			CarbonConversionPct: 95,
		},
		Reactor: Reactor{
			TemperatureC: 800,
			PressureBar:  1,
			MethaneSplit: 0.08,
		},
		Agent: Agent{Type: "air"},
		Generator: Generator{
			EngineEfficiencyPct: 30,
			Hours:               8,
		},
	}
}
