package simulation

import (
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/agent"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/balance"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/energy"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/equilibrium"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/feedstock"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/syngas"
)

// Input is the complete parameter set for one run. Fractions are 0-1.
type Input struct {
	BiomassFlow      float64 // kg/h as received
	Composition      feedstock.Composition
	CarbonConversion float64
	MethaneSplit     float64

	TemperatureC float64
	PressureBar  float64
	Correlation  equilibrium.Correlation

	Agent agent.Agent
	Basis agent.StoichiometricBasis

	EngineEfficiency float64
	Hours            float64
}

// Result is everything one run produces.
type Result struct {
	AgentKind    agent.Kind             `json:"agent"`
	TemperatureK float64                `json:"temperature_k"`
	Feedstock    feedstock.Contribution `json:"feedstock"`
	AgentSupply  agent.Flow             `json:"agent_supply"`
	Atoms        balance.Inputs         `json:"atoms"`
	Products     equilibrium.Products   `json:"products"`
	Syngas       syngas.Composition     `json:"syngas"`
	Energy       energy.Balance         `json:"energy"`

	// CharKgH is the unconverted carbon leaving with the ash.
	CharKgH float64 `json:"char_kg_h"`
}
