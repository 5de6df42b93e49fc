// Package equilibrium distributes the atoms entering the gasifier among the
// syngas species under atomic balance and water-gas shift equilibrium.
package equilibrium

import (
	"math"

	"github.com/SMMiroE/Gasificacion-biomasa/pkg/chem"
)

const (
	// degenerateTol is the relative size below which a flow counts as zero.
	degenerateTol = 1e-12
	// rootTol is the relative width at which the root find stops.
	rootTol       = 1e-15
	maxIterations = 200
)

// Reactor is the operating state of the gasifier for one run.
type Reactor struct {
	TemperatureK float64
	// PressureBar is advisory: the WGSR has no net change in gas moles.
	PressureBar float64
	// CarbonConversion is the fraction of feed carbon leaving as gas.
	CarbonConversion float64
	// MethaneSplit is the fraction of converted carbon leaving as CH4.
	MethaneSplit float64
	Correlation  Correlation
}

// Products are the molar flows leaving the reactor, kmol/h.
type Products struct {
	CO   float64 `json:"co"`
	CO2  float64 `json:"co2"`
	H2   float64 `json:"h2"`
	CH4  float64 `json:"ch4"`
	H2O  float64 `json:"h2o"`
	N2   float64 `json:"n2"`
	Char float64 `json:"char_c"`

	Kp         float64 `json:"kp"`
	Iterations int     `json:"iterations"`
	// Equilibrium is false only when no carbon is left for CO/CO2, in
	// which case the WGSR does not apply.
	Equilibrium bool `json:"equilibrium"`
}

// Flow returns the flow of species s.
func (p Products) Flow(s chem.Species) float64 {
	switch s {
	case chem.CO:
		return p.CO
	case chem.CO2:
		return p.CO2
	case chem.H2:
		return p.H2
	case chem.CH4:
		return p.CH4
	case chem.H2O:
		return p.H2O
	case chem.N2:
		return p.N2
	}
	return 0
}

// Flows returns the gas species flows keyed by species.
func (p Products) Flows() map[chem.Species]float64 {
	m := make(map[chem.Species]float64, len(chem.AllSpecies))
	for _, s := range chem.AllSpecies {
		m[s] = p.Flow(s)
	}
	return m
}

// Atoms returns the atom flows carried by the gas plus the char.
func (p Products) Atoms() chem.ElementalFlow {
	total := chem.ElementalFlow{C: p.Char}
	for _, s := range chem.AllSpecies {
		total = total.Add(s.Atoms().Scale(p.Flow(s)))
	}
	return total
}

// ShiftRatio returns (CO2·H2)/(CO·H2O), or NaN when CO or H2O is zero.
func (p Products) ShiftRatio() float64 {
	den := p.CO * p.H2O
	if den == 0 {
		return math.NaN()
	}
	return p.CO2 * p.H2 / den
}

// Solve apportions the total atom inflow among char, CH4, N2, CO, CO2, H2
// and H2O. Carbon conversion and the methane split fix char and CH4; the
// rest satisfies the C, H and O balances and Kp(T) of the water-gas shift.
//
// With x the CO2 flow, the balances give CO = c - x, H2O = a - x and
// H2 = b + x, where c is the carbon left for CO/CO2, a = O - c and
// b = H/2 - a. The equilibrium x(b+x) = Kp(c-x)(a-x) has exactly one
// root on the interval where all four flows are non-negative.
func Solve(total chem.ElementalFlow, r Reactor) (Products, error) {
	if !total.NonNegative() || !finite(total.C, total.H, total.O, total.N) {
		return Products{}, fail(ConstraintInput, "atom inflow must be finite and non-negative, got %v", total)
	}
	if r.CarbonConversion <= 0 || r.CarbonConversion > 1 {
		return Products{}, fail(ConstraintCarbon, "carbon conversion %.4g outside (0, 1]", r.CarbonConversion)
	}
	if r.MethaneSplit < 0 || r.MethaneSplit >= 1 {
		return Products{}, fail(ConstraintCarbon, "methane split %.4g outside [0, 1)", r.MethaneSplit)
	}
	if !(r.TemperatureK > 0) {
		return Products{}, fail(ConstraintWGSR, "temperature %.4g K is not positive", r.TemperatureK)
	}

	kp := r.Correlation.Kp(r.TemperatureK)
	if !(kp > 0) || math.IsInf(kp, 0) {
		return Products{}, fail(ConstraintWGSR, "Kp(%.1f K) = %v is not a positive finite number", r.TemperatureK, kp)
	}

	p := Products{Kp: kp, N2: total.N / 2}
	converted := total.C * r.CarbonConversion
	p.Char = total.C - converted
	p.CH4 = converted * r.MethaneSplit

	carbon := converted - p.CH4
	hydrogen := total.H - 4*p.CH4
	oxygen := total.O
	scale := math.Max(math.Max(carbon, hydrogen/2), oxygen)
	tiny := degenerateTol * scale

	if hydrogen < -tiny {
		return Products{}, fail(ConstraintHydrogen,
			"methane takes %.4g kmol/h H but only %.4g kmol/h enters", 4*p.CH4, total.H)
	}
	hydrogen = math.Max(hydrogen, 0)

	if carbon <= tiny {
		// Nothing left for CO/CO2: oxygen can only leave as water.
		if oxygen > hydrogen/2+tiny {
			return Products{}, fail(ConstraintOxygen,
				"%.4g kmol/h O cannot leave as water with only %.4g kmol/h H and no carbon", oxygen, hydrogen)
		}
		p.H2O = oxygen
		p.H2 = math.Max(hydrogen/2-oxygen, 0)
		return p, nil
	}

	a := oxygen - carbon
	if a <= tiny {
		return Products{}, fail(ConstraintOxygen,
			"%.4g kmol/h O cannot oxidise %.4g kmol/h C even to CO", oxygen, carbon)
	}
	b := hydrogen/2 - a

	lo := math.Max(0, -b)
	hi := math.Min(carbon, a)
	if lo > hi+tiny {
		return Products{}, fail(ConstraintOxygen,
			"%.4g kmol/h O exceeds complete combustion of %.4g kmol/h C and %.4g kmol/h H; free O2 would remain",
			oxygen, carbon, hydrogen)
	}
	if hi-lo <= tiny {
		return Products{}, fail(ConstraintWGSR,
			"inflow only balances with CO or H2O at zero, so the shift ratio is undefined")
	}

	f := func(x float64) float64 { return x*(b+x) - kp*(carbon-x)*(a-x) }
	df := func(x float64) float64 { return b + 2*x + kp*((a-x)+(carbon-x)) }

	x, iters, ok := findRoot(f, df, lo, hi)
	if !ok {
		return Products{}, fail(ConstraintConvergence,
			"no shift equilibrium root found in [%.6g, %.6g] after %d iterations", lo, hi, iters)
	}

	p.CO2 = x
	p.CO = carbon - x
	p.H2O = a - x
	p.H2 = b + x
	p.Iterations = iters
	p.Equilibrium = true

	// Round-off can leave a flow a few ulps below zero at the interval ends.
	for _, v := range []*float64{&p.CO, &p.CO2, &p.H2, &p.H2O} {
		if *v < 0 {
			if *v < -tiny {
				return Products{}, fail(ConstraintWGSR, "solution has a negative flow %.4g", *v)
			}
			*v = 0
		}
	}
	return p, nil
}

// findRoot finds the root of f on [lo, hi], where f(lo) <= 0 <= f(hi),
// with Newton steps that fall back to bisection whenever a step leaves
// the bracket.
func findRoot(f, df func(float64) float64, lo, hi float64) (float64, int, bool) {
	flo, fhi := f(lo), f(hi)
	switch {
	case flo > 0 || fhi < 0:
		return 0, 0, false
	case flo == 0:
		return lo, 0, true
	case fhi == 0:
		return hi, 0, true
	}

	xtol := rootTol * math.Max(math.Abs(lo), math.Abs(hi))
	x := 0.5 * (lo + hi)
	for i := 1; i <= maxIterations; i++ {
		fx := f(x)
		if fx == 0 {
			return x, i, true
		}
		if fx < 0 {
			lo = x
		} else {
			hi = x
		}

		next := x - fx/df(x)
		if math.IsNaN(next) || next <= lo || next >= hi {
			next = 0.5 * (lo + hi)
		}
		if math.Abs(next-x) <= xtol || hi-lo <= xtol {
			return next, i, true
		}
		x = next
	}
	return x, maxIterations, false
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
