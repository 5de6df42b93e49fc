// Package energy turns syngas output into electricity, power and CO2 figures
// for an engine-generator running over a fixed period.
package energy

import (
	"fmt"
	"math"

	"github.com/ctessum/unit"

	"github.com/SMMiroE/Gasificacion-biomasa/pkg/chem"
)

// Input is the syngas and generator state for one run. Flows are hourly.
type Input struct {
	BiomassFlow float64 // kg/h as received
	BiomassLHV  float64 // MJ/kg, dry basis
	SyngasFlow  float64 // Nm³/h
	SyngasLHV   float64 // MJ/Nm³
	COFlow      float64 // kmol/h
	CH4Flow     float64 // kmol/h

	EngineEfficiency float64
	Hours            float64
}

// Balance is the energy and emissions output over the operating period.
type Balance struct {
	BiomassConsumedKg      float64 `json:"biomass_consumed_kg"`
	BiomassEnergyMJ        float64 `json:"biomass_energy_mj"`
	SyngasVolumeNm3        float64 `json:"syngas_volume_nm3"`
	SyngasEnergyMJ         float64 `json:"syngas_energy_mj"`
	GasificationEfficiency float64 `json:"gasification_efficiency"`
	ElectricMJ             float64 `json:"electric_mj"`
	ElectricKWh            float64 `json:"electric_kwh"`
	AveragePowerKW         float64 `json:"average_power_kw"`
	CO2Kg                  float64 `json:"co2_kg"`
}

// Aggregate computes the balance for in. Zero hours, zero syngas or zero
// biomass energy give zero ratios rather than an error; negative or
// non-finite inputs are rejected.
func Aggregate(in Input) (*Balance, error) {
	if err := checkInputs(map[string]float64{
		"biomass flow":      in.BiomassFlow,
		"biomass LHV":       in.BiomassLHV,
		"syngas flow":       in.SyngasFlow,
		"syngas LHV":        in.SyngasLHV,
		"CO flow":           in.COFlow,
		"CH4 flow":          in.CH4Flow,
		"engine efficiency": in.EngineEfficiency,
		"hours":             in.Hours,
	}); err != nil {
		return nil, err
	}

	period := unit.New(in.Hours*SecondsPerHour, unit.Second)
	biomassFlow := unit.New(in.BiomassFlow/SecondsPerHour, kilogramPerSecond)
	syngasFlow := unit.New(in.SyngasFlow/SecondsPerHour, unit.Meter3PerSecond)
	// Complete combustion: one CO2 per carbon in CO and CH4.
	co2Flow := unit.New((in.COFlow+in.CH4Flow)*chem.MolarMassCO2/SecondsPerHour, kilogramPerSecond)

	consumed := unit.Mul(biomassFlow, period)
	volume := unit.Mul(syngasFlow, period)
	return finish(period, consumed, volume,
		unit.Mul(consumed, unit.New(in.BiomassLHV*JoulesPerMJ, joulePerKilogram)),
		unit.Mul(volume, unit.New(in.SyngasLHV*JoulesPerMJ, joulePerMeter3)),
		unit.Mul(co2Flow, period),
		in.EngineEfficiency)
}

// finish checks the dimensions of the period totals and fills in the parts
// of the balance shared by the equilibrium model and the lumped estimate.
func finish(period, consumed, volume, biomassEnergy, syngasEnergy, co2 *unit.Unit, engineEff float64) (*Balance, error) {
	for _, q := range []struct {
		name string
		u    *unit.Unit
		want unit.Dimensions
	}{
		{"operating period", period, unit.Second},
		{"biomass consumed", consumed, unit.Kilogram},
		{"syngas volume", volume, unit.Meter3},
		{"biomass energy", biomassEnergy, unit.Joule},
		{"syngas energy", syngasEnergy, unit.Joule},
		{"CO2", co2, unit.Kilogram},
	} {
		if err := q.u.Check(q.want); err != nil {
			return nil, fmt.Errorf("energy: %s: %w", q.name, err)
		}
	}

	b := &Balance{
		BiomassConsumedKg: consumed.Value(),
		BiomassEnergyMJ:   biomassEnergy.Value() / JoulesPerMJ,
		SyngasVolumeNm3:   volume.Value(),
		SyngasEnergyMJ:    syngasEnergy.Value() / JoulesPerMJ,
		CO2Kg:             co2.Value(),
	}
	if biomassEnergy.Value() > 0 {
		b.GasificationEfficiency = unit.Div(syngasEnergy, biomassEnergy).Value()
	}

	electric := unit.Mul(syngasEnergy, unit.New(engineEff, unit.Dimless))
	b.ElectricMJ = electric.Value() / JoulesPerMJ
	b.ElectricKWh = electric.Value() / JoulesPerKWh

	if period.Value() > 0 {
		power := unit.Div(electric, period)
		if err := power.Check(unit.Watt); err != nil {
			return nil, fmt.Errorf("energy: average power: %w", err)
		}
		b.AveragePowerKW = power.Value() / WattsPerKW
	}
	return b, nil
}

func checkInputs(vals map[string]float64) error {
	for name, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("energy: %s is not finite", name)
		}
		if v < 0 {
			return fmt.Errorf("energy: %s must be non-negative, got %g", name, v)
		}
	}
	return nil
}
