package simulation

import (
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/chem"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/outputs"
)

// Variables returns the named scalar values of a result, for use in
// output expressions. Species flows are F_<species> (kmol/h), wet molar
// fractions X_<species> and dry fractions XD_<species>.
func (r *Result) Variables() map[string]float64 {
	v := map[string]float64{
		"BiomassFlowKgH":         r.Feedstock.MassFlow,
		"DryBiomassFlowKgH":      r.Feedstock.DryMassFlow,
		"DAFBiomassFlowKgH":      r.Feedstock.DAFMassFlow,
		"AshFlowKgH":             r.Feedstock.AshMassFlow,
		"CharKgH":                r.CharKgH,
		"TemperatureK":           r.TemperatureK,
		"Kp":                     r.Products.Kp,
		"ShiftIterations":        float64(r.Products.Iterations),
		"SyngasFlowKmolH":        r.Syngas.TotalFlow,
		"SyngasFlowNm3H":         r.Syngas.VolumetricFlow,
		"DrySyngasFlowNm3H":      r.Syngas.DryVolumetricFlow,
		"SyngasLHV":              r.Syngas.LHV,
		"DrySyngasLHV":           r.Syngas.DryLHV,
		"H2ToCO":                 r.Syngas.H2ToCO,
		"AgentO2KmolH":           r.AgentSupply.O2,
		"AgentN2KmolH":           r.AgentSupply.N2,
		"AgentH2OKmolH":          r.AgentSupply.H2O,
		"BiomassConsumedKg":      r.Energy.BiomassConsumedKg,
		"BiomassEnergyMJ":        r.Energy.BiomassEnergyMJ,
		"SyngasVolumeNm3":        r.Energy.SyngasVolumeNm3,
		"SyngasEnergyMJ":         r.Energy.SyngasEnergyMJ,
		"GasificationEfficiency": r.Energy.GasificationEfficiency,
		"ElectricMJ":             r.Energy.ElectricMJ,
		"ElectricKWh":            r.Energy.ElectricKWh,
		"AveragePowerKW":         r.Energy.AveragePowerKW,
		"CO2Kg":                  r.Energy.CO2Kg,
	}
	for _, e := range chem.Elements {
		v["In_"+string(e)] = r.Atoms.Total.Get(e)
	}
	for _, s := range chem.AllSpecies {
		v["F_"+string(s)] = r.Syngas.Flows[s]
		v["X_"+string(s)] = r.Syngas.Fractions[s]
		v["XD_"+string(s)] = r.Syngas.DryFractions[s]
	}
	return v
}

// EvaluateOutputs computes user-defined outputs over the result's
// variables. No definitions give a nil map.
func (r *Result) EvaluateOutputs(defs map[string]string) (map[string]float64, error) {
	if len(defs) == 0 {
		return nil, nil
	}
	o, err := outputs.New(defs)
	if err != nil {
		return nil, err
	}
	return o.Evaluate(r.Variables())
}
