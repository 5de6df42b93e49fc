// Package simulation runs the gasifier model end to end: feedstock, agent,
// atom balance, shift equilibrium, syngas properties and electricity.
package simulation

import (
	"errors"
	"fmt"

	"github.com/SMMiroE/Gasificacion-biomasa/pkg/agent"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/balance"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/chem"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/energy"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/equilibrium"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/feedstock"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/spec"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/syngas"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/validation"
)

// Run evaluates one parameter set. The report carries analytical warnings
// for the inputs and the result. A solver failure returns a nil result, a
// report with a solver-level error naming the constraint, and an error
// wrapping equilibrium.ErrSolveFailed.
func Run(in Input) (*Result, *validation.Report, error) {
	report := validation.NewReport()

	if in.Agent == nil {
		return nil, report, errors.New("simulation: no gasifying agent")
	}

	// 1. Feedstock
	checkComposition(in.Composition, report)
	feed := feedstock.Normalize(in.Composition, in.BiomassFlow)

	// 2. Agent
	supply, err := in.Agent.Supply(agent.Feed{
		MassFlow:         in.BiomassFlow,
		DryFraction:      in.Composition.DryFraction(),
		DAFFraction:      in.Composition.DAFFraction(),
		StoichiometricO2: in.Composition.StoichiometricO2(),
		Basis:            in.Basis,
	})
	if err != nil {
		report.AddError(validation.Finding{
			Stage:       validation.StageAnalytical,
			Message:     err.Error(),
			Path:        "agent",
			ActualValue: in.Composition.StoichiometricO2(),
			Suggestions: []string{"Check the biomass oxygen content or use the empirical stoichiometric basis"},
		})
		return nil, report, fmt.Errorf("simulation: %w", err)
	}

	// 3. Atom balance
	atoms := balance.Aggregate(feed, supply)

	// 4. Equilibrium
	tK := chem.ToKelvin(in.TemperatureC)
	products, err := equilibrium.Solve(atoms.Total, equilibrium.Reactor{
		TemperatureK:     tK,
		PressureBar:      in.PressureBar,
		CarbonConversion: in.CarbonConversion,
		MethaneSplit:     in.MethaneSplit,
		Correlation:      in.Correlation,
	})
	if err != nil {
		reportSolveFailure(err, report)
		return nil, report, fmt.Errorf("simulation: %w", err)
	}

	// 5. Syngas properties
	gas := syngas.Calculate(products)

	// 6. Energy and emissions
	bal, err := energy.Aggregate(energy.Input{
		BiomassFlow:      in.BiomassFlow,
		BiomassLHV:       in.Composition.LHV,
		SyngasFlow:       gas.VolumetricFlow,
		SyngasLHV:        gas.LHV,
		COFlow:           products.CO,
		CH4Flow:          products.CH4,
		EngineEfficiency: in.EngineEfficiency,
		Hours:            in.Hours,
	})
	if err != nil {
		return nil, report, fmt.Errorf("simulation: %w", err)
	}

	res := &Result{
		AgentKind:    in.Agent.Kind(),
		TemperatureK: tK,
		Feedstock:    feed,
		AgentSupply:  supply,
		Atoms:        atoms,
		Products:     products,
		Syngas:       gas,
		Energy:       *bal,
		CharKgH:      products.Char * chem.MolarMassC,
	}

	validateResult(in, res, report)

	return res, report, nil
}

// FromScenario converts a scenario file's percent-based values into a
// simulation input. The scenario should pass validation.ValidateSchema
// first; FromScenario only fails on labels it cannot resolve.
func FromScenario(s *spec.Scenario) (Input, error) {
	kind, err := agent.Parse(s.Agent.Type)
	if err != nil {
		return Input{}, err
	}
	ag, err := agent.WithDefaults(kind, s.Agent.ER, s.Agent.SBR, s.Agent.OBR)
	if err != nil {
		return Input{}, err
	}
	basis, err := agent.ParseBasis(s.Agent.StoichiometricBasis)
	if err != nil {
		return Input{}, err
	}
	corr, err := equilibrium.ParseCorrelation(s.Reactor.KpCorrelation)
	if err != nil {
		return Input{}, err
	}

	b := s.Biomass
	return Input{
		BiomassFlow: b.FlowKgH,
		Composition: feedstock.Composition{
			C:        b.CarbonPct / 100,
			H:        b.HydrogenPct / 100,
			O:        b.OxygenPct / 100,
			N:        b.NitrogenPct / 100,
			S:        b.SulfurPct / 100,
			Ash:      b.AshPct / 100,
			Moisture: b.MoisturePct / 100,
			LHV:      b.LHVMJKg,
		},
		CarbonConversion: b.CarbonConversionPct / 100,
		MethaneSplit:     s.Reactor.MethaneSplit,
		TemperatureC:     s.Reactor.TemperatureC,
		PressureBar:      s.Reactor.PressureBar,
		Correlation:      corr,
		Agent:            ag,
		Basis:            basis,
		EngineEfficiency: s.Generator.EngineEfficiencyPct / 100,
		Hours:            s.Generator.Hours,
	}, nil
}

// RunScenario validates a scenario, converts it and runs it. Schema errors
// stop the run with a nil result and a nil error; the report says why.
func RunScenario(s *spec.Scenario) (*Result, *validation.Report, error) {
	report := validation.ValidateSchema(s)
	if !report.Valid {
		return nil, report, nil
	}
	in, err := FromScenario(s)
	if err != nil {
		return nil, report, err
	}
	res, runReport, err := Run(in)
	report.Merge(runReport)
	return res, report, err
}
