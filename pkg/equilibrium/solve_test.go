package equilibrium

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/SMMiroE/Gasificacion-biomasa/pkg/chem"
)

// airInflow is the atom inflow of 100 kg/h wood (10 % moisture, 1 % ash)
// gasified with air at ER 0.25, kmol/h.
func airInflow() chem.ElementalFlow {
	return chem.ElementalFlow{C: 3.7092, H: 6.4141, O: 4.8693, N: 7.2497}
}

func reactorAt(celsius float64) Reactor {
	return Reactor{
		TemperatureK:     chem.ToKelvin(celsius),
		PressureBar:      1,
		CarbonConversion: 0.95,
		MethaneSplit:     0.08,
		Correlation:      Fitted,
	}
}

func assertClosure(t *testing.T, in chem.ElementalFlow, p Products) {
	t.Helper()
	out := p.Atoms()
	for _, e := range chem.Elements {
		if !scalar.EqualWithinAbsOrRel(out.Get(e), in.Get(e), 1e-12, 1e-10) {
			t.Errorf("%s balance: out %.12g, in %.12g", e, out.Get(e), in.Get(e))
		}
	}
}

func assertNonNegative(t *testing.T, p Products) {
	t.Helper()
	for _, s := range chem.AllSpecies {
		if p.Flow(s) < 0 {
			t.Errorf("%s flow = %v, want >= 0", s, p.Flow(s))
		}
	}
	if p.Char < 0 {
		t.Errorf("char = %v, want >= 0", p.Char)
	}
}

func TestSolveAirGasification(t *testing.T) {
	in := airInflow()
	p, err := Solve(in, reactorAt(800))
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !p.Equilibrium {
		t.Error("expected equilibrium to be applied")
	}
	assertClosure(t, in, p)
	assertNonNegative(t, p)

	if math.Abs(p.N2-in.N/2) > 1e-12 {
		t.Errorf("N2 = %v, want %v", p.N2, in.N/2)
	}
	if want := in.C * 0.05; math.Abs(p.Char-want) > 1e-12 {
		t.Errorf("Char = %v, want %v", p.Char, want)
	}
	if want := in.C * 0.95 * 0.08; math.Abs(p.CH4-want) > 1e-12 {
		t.Errorf("CH4 = %v, want %v", p.CH4, want)
	}
	if p.CO <= 0 || p.H2 <= 0 {
		t.Errorf("expected combustible gas, got CO=%v H2=%v", p.CO, p.H2)
	}
}

func TestSolveEquilibriumConsistency(t *testing.T) {
	in := airInflow()
	for _, c := range []float64{700, 900, 1100} {
		for _, corr := range []Correlation{Fitted, Moe} {
			r := reactorAt(c)
			r.Correlation = corr
			p, err := Solve(in, r)
			if err != nil {
				t.Fatalf("Solve(%v °C, %s): %v", c, corr, err)
			}
			kp := corr.Kp(chem.ToKelvin(c))
			if !scalar.EqualWithinRel(p.ShiftRatio(), kp, 1e-6) {
				t.Errorf("%v °C %s: shift ratio %.10g, Kp %.10g", c, corr, p.ShiftRatio(), kp)
			}
			if p.Kp != kp {
				t.Errorf("%v °C %s: Products.Kp = %v, want %v", c, corr, p.Kp, kp)
			}
			assertClosure(t, in, p)
			assertNonNegative(t, p)
		}
	}
}

func TestSolveSteamGasification(t *testing.T) {
	// 100 kg/h wood with SBR 0.5 and no air.
	in := chem.ElementalFlow{C: 3.7092, H: 5.3040 + 1.1102 + 5.5507, O: 2.3946 + 0.5551 + 2.7754, N: 0.0318}
	p, err := Solve(in, reactorAt(850))
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	assertClosure(t, in, p)
	assertNonNegative(t, p)
	if p.H2 <= p.CO {
		t.Errorf("steam gasification should be H2-rich, got H2=%v CO=%v", p.H2, p.CO)
	}
}

func TestSolveMonotonicInConversion(t *testing.T) {
	in := airInflow()
	prev := -1.0
	for _, cce := range []float64{0.70, 0.80, 0.90, 0.95, 0.99} {
		r := reactorAt(800)
		r.CarbonConversion = cce
		p, err := Solve(in, r)
		if err != nil {
			t.Fatalf("Solve(cce=%v): %v", cce, err)
		}
		carbonGas := p.CO + p.CO2 + p.CH4
		if carbonGas < prev {
			t.Errorf("cce %v: carbon gas %v dropped below %v", cce, carbonGas, prev)
		}
		prev = carbonGas
	}
}

func TestSolveZeroInflow(t *testing.T) {
	p, err := Solve(chem.ElementalFlow{}, reactorAt(800))
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	for _, s := range chem.AllSpecies {
		if p.Flow(s) != 0 {
			t.Errorf("%s = %v, want 0", s, p.Flow(s))
		}
	}
	if p.Equilibrium {
		t.Error("equilibrium should not apply without carbon")
	}
}

func TestSolveNoCarbonLeftForOxides(t *testing.T) {
	r := reactorAt(800)
	r.MethaneSplit = 0
	in := chem.ElementalFlow{H: 4, O: 1, N: 2}
	p, err := Solve(in, r)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if p.H2O != 1 || p.H2 != 1 || p.N2 != 1 {
		t.Errorf("got H2O=%v H2=%v N2=%v, want 1, 1, 1", p.H2O, p.H2, p.N2)
	}
	assertClosure(t, in, p)
}

func TestSolveFailures(t *testing.T) {
	cases := []struct {
		name       string
		in         chem.ElementalFlow
		mutate     func(*Reactor)
		constraint Constraint
	}{
		{
			name:       "oxygen deficit",
			in:         chem.ElementalFlow{C: 4, H: 5, O: 1},
			constraint: ConstraintOxygen,
		},
		{
			name:       "oxygen excess",
			in:         chem.ElementalFlow{C: 1, H: 2, O: 10},
			constraint: ConstraintOxygen,
		},
		{
			name:       "complete combustion boundary",
			in:         chem.ElementalFlow{C: 1, H: 2, O: 3},
			mutate:     func(r *Reactor) { r.CarbonConversion = 1; r.MethaneSplit = 0 },
			constraint: ConstraintWGSR,
		},
		{
			name:       "methane starves hydrogen",
			in:         chem.ElementalFlow{C: 10, H: 1, O: 12},
			mutate:     func(r *Reactor) { r.MethaneSplit = 0.5 },
			constraint: ConstraintHydrogen,
		},
		{
			name:       "negative inflow",
			in:         chem.ElementalFlow{C: -1, H: 1, O: 1},
			constraint: ConstraintInput,
		},
		{
			name:       "zero conversion",
			in:         airInflow(),
			mutate:     func(r *Reactor) { r.CarbonConversion = 0 },
			constraint: ConstraintCarbon,
		},
		{
			name:       "non-positive temperature",
			in:         airInflow(),
			mutate:     func(r *Reactor) { r.TemperatureK = 0 },
			constraint: ConstraintWGSR,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := reactorAt(800)
			if tc.mutate != nil {
				tc.mutate(&r)
			}
			_, err := Solve(tc.in, r)
			if err == nil {
				t.Fatal("expected solve failure")
			}
			if !errors.Is(err, ErrSolveFailed) {
				t.Errorf("error %v does not wrap ErrSolveFailed", err)
			}
			var se *SolveError
			if !errors.As(err, &se) {
				t.Fatalf("error %T is not *SolveError", err)
			}
			if se.Constraint != tc.constraint {
				t.Errorf("constraint = %s, want %s (%v)", se.Constraint, tc.constraint, err)
			}
		})
	}
}

func TestFindRootNotBracketed(t *testing.T) {
	f := func(x float64) float64 { return x + 1 }
	df := func(float64) float64 { return 1 }
	if _, _, ok := findRoot(f, df, 0, 1); ok {
		t.Error("expected failure when f has no sign change")
	}
}

func TestFindRootQuadratic(t *testing.T) {
	f := func(x float64) float64 { return x*x - 2 }
	df := func(x float64) float64 { return 2 * x }
	x, iters, ok := findRoot(f, df, 0, 2)
	if !ok {
		t.Fatal("findRoot did not converge")
	}
	if math.Abs(x-math.Sqrt2) > 1e-14 {
		t.Errorf("root = %.16g, want sqrt(2)", x)
	}
	if iters > 20 {
		t.Errorf("took %d iterations, expected Newton convergence", iters)
	}
}
