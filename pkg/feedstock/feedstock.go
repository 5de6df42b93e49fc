// Package feedstock converts a biomass analysis and feed rate into the
// molar flows of C, H, O and N entering the gasifier.
package feedstock

import (
	"math"

	"github.com/SMMiroE/Gasificacion-biomasa/pkg/chem"
)

// SumTolerance is the allowed deviation of C+H+O+N+S from 1.0 before the
// composition is flagged.
const SumTolerance = 0.001

// Composition is the ultimate and proximate analysis of a biomass.
// Elemental fractions are on a dry, ash-free basis; ash and moisture are
// as-received fractions. LHV is on a dry basis in MJ/kg.
type Composition struct {
	C        float64 `json:"c"`
	H        float64 `json:"h"`
	O        float64 `json:"o"`
	N        float64 `json:"n"`
	S        float64 `json:"s"`
	Ash      float64 `json:"ash"`
	Moisture float64 `json:"moisture"`
	LHV      float64 `json:"lhv_mj_kg"`
}

// ElementalSum returns C+H+O+N+S.
func (c Composition) ElementalSum() float64 {
	return c.C + c.H + c.O + c.N + c.S
}

// SumWithinTolerance reports whether the elemental fractions add up to 1
// within SumTolerance.
func (c Composition) SumWithinTolerance() bool {
	return math.Abs(c.ElementalSum()-1) <= SumTolerance
}

// DryFraction is the mass fraction of the as-received biomass left after
// removing moisture.
func (c Composition) DryFraction() float64 {
	return 1 - c.Moisture
}

// DAFFraction is the dry, ash-free (reactive) mass fraction of the
// as-received biomass.
func (c Composition) DAFFraction() float64 {
	return c.DryFraction() * (1 - c.Ash)
}

// StoichiometricO2 returns the O2 needed for complete combustion of one kg
// of DAF biomass, in kmol/kg. Sulfur is not oxidised.
func (c Composition) StoichiometricO2() float64 {
	return c.C/chem.MolarMassC + c.H/(4*chem.MolarMassH) - c.O/(2*chem.MolarMassO)
}

// Contribution is what the feedstock brings into the reactor per hour.
type Contribution struct {
	MassFlow    float64            `json:"mass_flow_kg_h"`
	DryMassFlow float64            `json:"dry_mass_flow_kg_h"`
	DAFMassFlow float64            `json:"daf_mass_flow_kg_h"`
	AshMassFlow float64            `json:"ash_mass_flow_kg_h"`
	Biomass     chem.ElementalFlow `json:"biomass_kmol_h"`
	MoistureH2O float64            `json:"moisture_h2o_kmol_h"`
	Sulfur      float64            `json:"sulfur_kmol_h"`
}

// Moisture returns the moisture water as H and O atom flows.
func (c Contribution) Moisture() chem.ElementalFlow {
	return chem.ElementalFlow{H: 2 * c.MoistureH2O, O: c.MoistureH2O}
}

// Normalize splits massFlow (kg/h, as received) into reactive DAF matter,
// ash and moisture and converts the reactive part into elemental molar
// flows. Sulfur is tracked but does not take part in the balance.
func Normalize(c Composition, massFlow float64) Contribution {
	dry := massFlow * c.DryFraction()
	daf := massFlow * c.DAFFraction()
	return Contribution{
		MassFlow:    massFlow,
		DryMassFlow: dry,
		DAFMassFlow: daf,
		AshMassFlow: dry - daf,
		Biomass: chem.ElementalFlow{
			C: daf * c.C / chem.MolarMassC,
			H: daf * c.H / chem.MolarMassH,
			O: daf * c.O / chem.MolarMassO,
			N: daf * c.N / chem.MolarMassN,
		},
		MoistureH2O: massFlow * c.Moisture / chem.MolarMassH2O,
		Sulfur:      daf * c.S / chem.MolarMassS,
	}
}
