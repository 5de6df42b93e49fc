package energy

import (
	"fmt"

	"github.com/ctessum/unit"

	"github.com/SMMiroE/Gasificacion-biomasa/pkg/chem"
)

// LumpedInput drives the quick estimate, which takes the gasification
// efficiency and syngas heating value as given instead of solving the
// reactor.
type LumpedInput struct {
	BiomassFlow            float64 // kg/h
	BiomassLHV             float64 // MJ/kg
	GasificationEfficiency float64
	SyngasLHV              float64 // MJ/Nm³
	EngineEfficiency       float64
	Hours                  float64

	// Volume fractions of CO and CH4 in the gas. A nil fraction takes
	// DefaultCOFraction or DefaultCH4Fraction; an explicit zero is kept.
	COFraction  *float64
	CH4Fraction *float64
}

// Estimate computes a balance from assumed gasifier performance.
func Estimate(in LumpedInput) (*Balance, error) {
	coFrac := fractionOr(in.COFraction, DefaultCOFraction)
	ch4Frac := fractionOr(in.CH4Fraction, DefaultCH4Fraction)
	if err := checkInputs(map[string]float64{
		"biomass flow":            in.BiomassFlow,
		"biomass LHV":             in.BiomassLHV,
		"gasification efficiency": in.GasificationEfficiency,
		"syngas LHV":              in.SyngasLHV,
		"engine efficiency":       in.EngineEfficiency,
		"hours":                   in.Hours,
		"CO fraction":             coFrac,
		"CH4 fraction":            ch4Frac,
	}); err != nil {
		return nil, err
	}
	if coFrac+ch4Frac > 1 {
		return nil, fmt.Errorf("energy: CO and CH4 fractions add up to %g, more than the whole gas", coFrac+ch4Frac)
	}

	period := unit.New(in.Hours*SecondsPerHour, unit.Second)
	consumed := unit.Mul(unit.New(in.BiomassFlow/SecondsPerHour, kilogramPerSecond), period)
	biomassEnergy := unit.Mul(consumed, unit.New(in.BiomassLHV*JoulesPerMJ, joulePerKilogram))
	syngasEnergy := unit.Mul(biomassEnergy, unit.New(in.GasificationEfficiency, unit.Dimless))

	volume := unit.New(0, unit.Meter3)
	if in.SyngasLHV > 0 {
		volume = unit.Div(syngasEnergy, unit.New(in.SyngasLHV*JoulesPerMJ, joulePerMeter3))
	}
	// CO2 per Nm³ of gas once its CO and CH4 are burned.
	co2PerVolume := unit.New((coFrac+ch4Frac)/LumpedMolarVolume*chem.MolarMassCO2, unit.KilogramPerMeter3)

	return finish(period, consumed, volume, biomassEnergy, syngasEnergy,
		unit.Mul(volume, co2PerVolume), in.EngineEfficiency)
}

func fractionOr(f *float64, def float64) float64 {
	if f == nil {
		return def
	}
	return *f
}
