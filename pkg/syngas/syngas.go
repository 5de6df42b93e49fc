// Package syngas derives fractions, heating value and volumetric yield from
// the molar flows leaving the reactor.
package syngas

import (
	"gonum.org/v1/gonum/floats"

	"github.com/SMMiroE/Gasificacion-biomasa/pkg/chem"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/equilibrium"
)

// Composition holds the syngas properties. Flows are kmol/h, volumes Nm³/h
// and heating values MJ/Nm³.
type Composition struct {
	Flows        map[chem.Species]float64 `json:"flows_kmol_h"`
	Fractions    map[chem.Species]float64 `json:"fractions"`
	DryFractions map[chem.Species]float64 `json:"dry_fractions"`

	TotalFlow         float64 `json:"total_flow_kmol_h"`
	DryFlow           float64 `json:"dry_flow_kmol_h"`
	VolumetricFlow    float64 `json:"volumetric_flow_nm3_h"`
	DryVolumetricFlow float64 `json:"dry_volumetric_flow_nm3_h"`

	LHV    float64 `json:"lhv_mj_nm3"`
	DryLHV float64 `json:"dry_lhv_mj_nm3"`

	// H2ToCO is 0 when there is no CO.
	H2ToCO float64 `json:"h2_co_ratio"`
}

// Calculate converts reactor products into syngas properties. A zero total
// flow gives all-zero fractions and heating values.
func Calculate(p equilibrium.Products) Composition {
	c := Composition{Flows: p.Flows()}

	flows := make([]float64, 0, len(chem.AllSpecies))
	dry := make([]float64, 0, len(chem.AllSpecies))
	for _, s := range chem.AllSpecies {
		flows = append(flows, c.Flows[s])
		if s != chem.H2O {
			dry = append(dry, c.Flows[s])
		}
	}
	c.TotalFlow = floats.Sum(flows)
	c.DryFlow = floats.Sum(dry)

	c.Fractions = fractions(c.Flows, c.TotalFlow, false)
	c.DryFractions = fractions(c.Flows, c.DryFlow, true)

	c.VolumetricFlow = c.TotalFlow * chem.MolarVolumeNTP
	c.DryVolumetricFlow = c.DryFlow * chem.MolarVolumeNTP

	c.LHV = heatingValue(c.Fractions)
	c.DryLHV = heatingValue(c.DryFractions)

	if p.CO > 0 {
		c.H2ToCO = p.H2 / p.CO
	}
	return c
}

// Energy returns the chemical energy flow of the gas, MJ/h.
func (c Composition) Energy() float64 {
	return c.VolumetricFlow * c.LHV
}

func fractions(flows map[chem.Species]float64, total float64, dry bool) map[chem.Species]float64 {
	out := make(map[chem.Species]float64, len(chem.AllSpecies))
	for _, s := range chem.AllSpecies {
		if total <= 0 || (dry && s == chem.H2O) {
			out[s] = 0
			continue
		}
		out[s] = flows[s] / total
	}
	return out
}

func heatingValue(fractions map[chem.Species]float64) float64 {
	lhv := 0.0
	for _, s := range chem.Combustible {
		lhv += fractions[s] * s.LowerHeatingValue()
	}
	return lhv
}
