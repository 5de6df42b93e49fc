// Package balance sums the atom flows entering the gasifier.
package balance

import (
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/agent"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/chem"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/feedstock"
)

// Inputs holds the atom flows entering the reactor per source and in total,
// kmol/h. Total is always Biomass + Moisture + Agent.
type Inputs struct {
	Biomass  chem.ElementalFlow `json:"biomass"`
	Moisture chem.ElementalFlow `json:"moisture"`
	Agent    chem.ElementalFlow `json:"agent"`
	Total    chem.ElementalFlow `json:"total"`
}

// Aggregate combines the feedstock and agent contributions.
func Aggregate(feed feedstock.Contribution, supply agent.Flow) Inputs {
	in := Inputs{
		Biomass:  feed.Biomass,
		Moisture: feed.Moisture(),
		Agent:    supply.Elements(),
	}
	in.Total = in.Biomass.Add(in.Moisture).Add(in.Agent)
	return in
}
