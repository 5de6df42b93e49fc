// Package agent accounts for the oxidant and steam fed to the gasifier by
// the gasifying agent.
package agent

import (
	"fmt"

	"github.com/SMMiroE/Gasificacion-biomasa/pkg/chem"
)

// Kind names a gasifying agent.
type Kind string

const (
	KindAir      Kind = "air"
	KindSteam    Kind = "steam"
	KindOxygen   Kind = "oxygen"
	KindAirSteam Kind = "air_steam"
)

// Kinds lists the supported agents.
var Kinds = []Kind{KindAir, KindSteam, KindOxygen, KindAirSteam}

// StoichiometricBasis selects how the O2 demand behind an equivalence
// ratio is computed.
type StoichiometricBasis string

const (
	// BasisComposition derives the demand from the C, H and O content of
	// the DAF biomass.
	BasisComposition StoichiometricBasis = "composition"
	// BasisEmpirical uses EmpiricalO2Demand per kg of dry biomass.
	BasisEmpirical StoichiometricBasis = "empirical"
)

// EmpiricalO2Demand is the reference stoichiometric oxygen demand in kg O2
// per kg of dry biomass.
const EmpiricalO2Demand = 1.2

// Default control ratios used when a scenario leaves them out.
const (
	DefaultER          = 0.25
	DefaultSBR         = 0.5
	DefaultOBR         = 0.3
	DefaultAirSteamER  = 0.2
	DefaultAirSteamSBR = 0.3
)

// Feed describes the biomass stream the agent ratios refer to.
type Feed struct {
	MassFlow         float64 // kg/h as received
	DryFraction      float64
	DAFFraction      float64
	StoichiometricO2 float64 // kmol O2 per kg DAF
	Basis            StoichiometricBasis
}

// Flow is the molar flow supplied by the agent, kmol/h. Only the fields
// relevant to the active agent are non-zero.
type Flow struct {
	O2  float64 `json:"o2_kmol_h"`
	N2  float64 `json:"n2_kmol_h"`
	H2O float64 `json:"h2o_kmol_h"`
}

// Elements returns the supplied flow as atom flows.
func (f Flow) Elements() chem.ElementalFlow {
	return chem.ElementalFlow{
		H: 2 * f.H2O,
		O: 2*f.O2 + f.H2O,
		N: 2 * f.N2,
	}
}

// Agent is a gasifying agent with its control ratios.
type Agent interface {
	Kind() Kind
	// Supply returns the O2, N2 and H2O fed for the given biomass stream.
	Supply(f Feed) (Flow, error)
}

// Air is air gasification controlled by the equivalence ratio.
type Air struct {
	ER float64 `json:"er"`
}

// Steam is steam gasification controlled by the steam-to-biomass ratio.
type Steam struct {
	SBR float64 `json:"sbr"`
}

// Oxygen is pure-oxygen gasification controlled by the oxygen-to-biomass
// mass ratio.
type Oxygen struct {
	OBR float64 `json:"obr"`
}

// AirSteam feeds both air (ER) and steam (SBR).
type AirSteam struct {
	ER  float64 `json:"er"`
	SBR float64 `json:"sbr"`
}

func (Air) Kind() Kind      { return KindAir }
func (Steam) Kind() Kind    { return KindSteam }
func (Oxygen) Kind() Kind   { return KindOxygen }
func (AirSteam) Kind() Kind { return KindAirSteam }

func (a Air) Supply(f Feed) (Flow, error) {
	o2, err := airO2(f, a.ER)
	if err != nil {
		return Flow{}, err
	}
	return Flow{O2: o2, N2: o2 * chem.AirN2Fraction / chem.AirO2Fraction}, nil
}

func (s Steam) Supply(f Feed) (Flow, error) {
	return Flow{H2O: steamH2O(f, s.SBR)}, nil
}

func (o Oxygen) Supply(f Feed) (Flow, error) {
	return Flow{O2: f.MassFlow * o.OBR / chem.MolarMassO2}, nil
}

func (a AirSteam) Supply(f Feed) (Flow, error) {
	air, err := Air{ER: a.ER}.Supply(f)
	if err != nil {
		return Flow{}, err
	}
	air.H2O = steamH2O(f, a.SBR)
	return air, nil
}

func steamH2O(f Feed, sbr float64) float64 {
	return f.MassFlow * sbr / chem.MolarMassH2O
}

// airO2 is the O2 fed with air at equivalence ratio er.
func airO2(f Feed, er float64) (float64, error) {
	switch f.Basis {
	case BasisEmpirical:
		return f.MassFlow * f.DryFraction * EmpiricalO2Demand / chem.MolarMassO2 * er, nil
	case BasisComposition, "":
		if f.StoichiometricO2 <= 0 {
			return 0, fmt.Errorf("agent: stoichiometric O2 demand %.4g kmol/kg is not positive; "+
				"biomass oxygen exceeds what C and H can consume", f.StoichiometricO2)
		}
		return f.MassFlow * f.DAFFraction * f.StoichiometricO2 * er, nil
	}
	return 0, fmt.Errorf("agent: unknown stoichiometric basis %q", f.Basis)
}

// New builds the agent of the given kind from its ratios. Ratios that do
// not apply to kind are ignored.
func New(kind Kind, er, sbr, obr float64) (Agent, error) {
	switch kind {
	case KindAir:
		return Air{ER: er}, nil
	case KindSteam:
		return Steam{SBR: sbr}, nil
	case KindOxygen:
		return Oxygen{OBR: obr}, nil
	case KindAirSteam:
		return AirSteam{ER: er, SBR: sbr}, nil
	}
	return nil, fmt.Errorf("agent: unknown kind %q", kind)
}

// WithDefaults builds the agent of the given kind, filling each omitted
// (nil) ratio with the default for that kind.
func WithDefaults(kind Kind, er, sbr, obr *float64) (Agent, error) {
	switch kind {
	case KindAir:
		return Air{ER: valueOr(er, DefaultER)}, nil
	case KindSteam:
		return Steam{SBR: valueOr(sbr, DefaultSBR)}, nil
	case KindOxygen:
		return Oxygen{OBR: valueOr(obr, DefaultOBR)}, nil
	case KindAirSteam:
		return AirSteam{ER: valueOr(er, DefaultAirSteamER), SBR: valueOr(sbr, DefaultAirSteamSBR)}, nil
	}
	return nil, fmt.Errorf("agent: unknown kind %q", kind)
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// ParseBasis converts a stoichiometric basis label. An empty label means
// BasisComposition.
func ParseBasis(label string) (StoichiometricBasis, error) {
	switch StoichiometricBasis(label) {
	case "", BasisComposition:
		return BasisComposition, nil
	case BasisEmpirical:
		return BasisEmpirical, nil
	}
	return "", fmt.Errorf("agent: unknown stoichiometric basis %q (want %q or %q)",
		label, BasisComposition, BasisEmpirical)
}
