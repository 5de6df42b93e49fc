package feedstock

import (
	"math"
	"testing"

	"github.com/SMMiroE/Gasificacion-biomasa/pkg/chem"
)

func woodChips() Composition {
	return Composition{
		C: 0.50, H: 0.06, O: 0.43, N: 0.005, S: 0,
		Ash: 0.01, Moisture: 0.10, LHV: 18,
	}
}

func TestBasisFractions(t *testing.T) {
	c := woodChips()
	if math.Abs(c.DryFraction()-0.90) > 1e-12 {
		t.Errorf("DryFraction = %v, want 0.90", c.DryFraction())
	}
	if math.Abs(c.DAFFraction()-0.891) > 1e-12 {
		t.Errorf("DAFFraction = %v, want 0.891", c.DAFFraction())
	}
}

func TestSumWithinTolerance(t *testing.T) {
	c := woodChips()
	// 0.995 total: nitrogen rounding leaves it 0.5 % short.
	if c.SumWithinTolerance() {
		t.Errorf("sum %.4f should be flagged", c.ElementalSum())
	}
	c.O = 0.435
	if !c.SumWithinTolerance() {
		t.Errorf("sum %.4f should be accepted", c.ElementalSum())
	}
}

func TestNormalize(t *testing.T) {
	c := woodChips()
	got := Normalize(c, 100)

	if math.Abs(got.DAFMassFlow-89.1) > 1e-9 {
		t.Errorf("DAFMassFlow = %v, want 89.1", got.DAFMassFlow)
	}
	if math.Abs(got.AshMassFlow-0.9) > 1e-9 {
		t.Errorf("AshMassFlow = %v, want 0.9", got.AshMassFlow)
	}
	wantC := 89.1 * 0.50 / chem.MolarMassC
	if math.Abs(got.Biomass.C-wantC) > 1e-12 {
		t.Errorf("Biomass.C = %v, want %v", got.Biomass.C, wantC)
	}
	wantN := 89.1 * 0.005 / chem.MolarMassN
	if math.Abs(got.Biomass.N-wantN) > 1e-12 {
		t.Errorf("Biomass.N = %v, want %v", got.Biomass.N, wantN)
	}
	wantH2O := 10 / chem.MolarMassH2O
	if math.Abs(got.MoistureH2O-wantH2O) > 1e-12 {
		t.Errorf("MoistureH2O = %v, want %v", got.MoistureH2O, wantH2O)
	}

	m := got.Moisture()
	if m.H != 2*got.MoistureH2O || m.O != got.MoistureH2O || m.C != 0 || m.N != 0 {
		t.Errorf("Moisture() = %+v, want H=2x O=1x of %v", m, got.MoistureH2O)
	}
}

func TestNormalizeZeroFlow(t *testing.T) {
	got := Normalize(woodChips(), 0)
	if got.Biomass != (chem.ElementalFlow{}) || got.MoistureH2O != 0 {
		t.Errorf("zero flow should give zero molar flows, got %+v", got)
	}
}

func TestStoichiometricO2(t *testing.T) {
	c := woodChips()
	want := 0.50/12.011 + 0.06/(4*1.008) - 0.43/(2*15.999)
	if math.Abs(c.StoichiometricO2()-want) > 1e-12 {
		t.Errorf("StoichiometricO2 = %v, want %v", c.StoichiometricO2(), want)
	}
	// ~1.38 kg O2 per kg DAF for typical wood.
	kg := c.StoichiometricO2() * chem.MolarMassO2
	if kg < 1.2 || kg > 1.5 {
		t.Errorf("stoichiometric O2 = %.3f kg/kg DAF, expected 1.2-1.5", kg)
	}
}
