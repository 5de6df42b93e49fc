// Package chem holds the elements, syngas species and physical constants
// shared by the gasifier model.
package chem

import "fmt"

// Element is a chemical element tracked by the atomic balance.
type Element string

const (
	Carbon   Element = "C"
	Hydrogen Element = "H"
	Oxygen   Element = "O"
	Nitrogen Element = "N"
)

// Elements lists the balanced elements in report order.
var Elements = []Element{Carbon, Hydrogen, Oxygen, Nitrogen}

// Species is a component of the syngas.
type Species string

const (
	H2  Species = "H2"
	CO  Species = "CO"
	CO2 Species = "CO2"
	CH4 Species = "CH4"
	N2  Species = "N2"
	H2O Species = "H2O"
)

// AllSpecies lists the syngas species in report order.
var AllSpecies = []Species{H2, CO, CO2, CH4, N2, H2O}

// Combustible lists the species that contribute to the heating value.
var Combustible = []Species{H2, CO, CH4}

// Atoms returns the number of atoms of each element in one molecule of s.
func (s Species) Atoms() ElementalFlow {
	switch s {
	case H2:
		return ElementalFlow{H: 2}
	case CO:
		return ElementalFlow{C: 1, O: 1}
	case CO2:
		return ElementalFlow{C: 1, O: 2}
	case CH4:
		return ElementalFlow{C: 1, H: 4}
	case N2:
		return ElementalFlow{N: 2}
	case H2O:
		return ElementalFlow{H: 2, O: 1}
	}
	return ElementalFlow{}
}

// LowerHeatingValue returns the volumetric LHV of s in MJ/Nm³. Inert
// species return 0.
func (s Species) LowerHeatingValue() float64 {
	switch s {
	case H2:
		return LHVH2
	case CO:
		return LHVCO
	case CH4:
		return LHVCH4
	}
	return 0
}

// MolarMass returns the molar mass of s in kg/kmol.
func (s Species) MolarMass() float64 {
	switch s {
	case H2:
		return MolarMassH2
	case CO:
		return MolarMassCO
	case CO2:
		return MolarMassCO2
	case CH4:
		return MolarMassCH4
	case N2:
		return MolarMassN2
	case H2O:
		return MolarMassH2O
	}
	return 0
}

// ElementalFlow holds molar flows of C, H, O and N atoms in kmol/h.
type ElementalFlow struct {
	C float64 `json:"C"`
	H float64 `json:"H"`
	O float64 `json:"O"`
	N float64 `json:"N"`
}

// Add returns the element-wise sum of f and o.
func (f ElementalFlow) Add(o ElementalFlow) ElementalFlow {
	return ElementalFlow{C: f.C + o.C, H: f.H + o.H, O: f.O + o.O, N: f.N + o.N}
}

// Scale returns f with every flow multiplied by k.
func (f ElementalFlow) Scale(k float64) ElementalFlow {
	return ElementalFlow{C: f.C * k, H: f.H * k, O: f.O * k, N: f.N * k}
}

// Get returns the flow of element e.
func (f ElementalFlow) Get(e Element) float64 {
	switch e {
	case Carbon:
		return f.C
	case Hydrogen:
		return f.H
	case Oxygen:
		return f.O
	case Nitrogen:
		return f.N
	}
	return 0
}

// NonNegative reports whether every flow is >= 0.
func (f ElementalFlow) NonNegative() bool {
	return f.C >= 0 && f.H >= 0 && f.O >= 0 && f.N >= 0
}

func (f ElementalFlow) String() string {
	return fmt.Sprintf("C=%.4g H=%.4g O=%.4g N=%.4g kmol/h", f.C, f.H, f.O, f.N)
}

// ToKelvin converts a Celsius temperature to Kelvin.
func ToKelvin(celsius float64) float64 {
	return celsius + CelsiusToKelvin
}
