package validation

import (
	"fmt"
	"sort"

	"github.com/SMMiroE/Gasificacion-biomasa/pkg/agent"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/equilibrium"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/spec"
)

// ValidateSchema checks a scenario's values before any computation.
// Values the model cannot run with are errors; values outside the range
// the model was built for are warnings.
func ValidateSchema(s *spec.Scenario) *Report {
	r := NewReport()

	validateBiomass(s, r)
	validateReactor(s, r)
	validateAgent(s, r)
	validateGenerator(s, r)
	validateOutputs(s, r)

	return r
}

func validateBiomass(s *spec.Scenario, r *Report) {
	b := s.Biomass

	if b.FlowKgH <= 0 {
		r.AddError(Finding{
			Stage:       StageSchema,
			Message:     "biomass flow must be greater than 0",
			Path:        "biomass.flow_kg_h",
			ActualValue: b.FlowKgH,
			Expected:    "> 0",
		})
	} else {
		warnOutside(r, "biomass.flow_kg_h", "biomass flow", b.FlowKgH, 50, 500, "kg/h")
	}

	elements := []struct {
		key   string
		value float64
	}{
		{"carbon_pct", b.CarbonPct},
		{"hydrogen_pct", b.HydrogenPct},
		{"oxygen_pct", b.OxygenPct},
		{"nitrogen_pct", b.NitrogenPct},
		{"sulfur_pct", b.SulfurPct},
	}
	for _, e := range elements {
		if e.value < 0 || e.value > 100 {
			r.AddError(Finding{
				Stage:       StageSchema,
				Message:     fmt.Sprintf("biomass.%s %.4g is not a valid percentage", e.key, e.value),
				Path:        "biomass." + e.key,
				ActualValue: e.value,
				Expected:    "0-100",
			})
		}
	}
	if b.SulfurPct > 0 {
		r.AddInfo(Finding{
			Stage:       StageSchema,
			Message:     fmt.Sprintf("sulfur (%.2f%%) is tracked but not part of the C-H-O-N balance", b.SulfurPct),
			Path:        "biomass.sulfur_pct",
			ActualValue: b.SulfurPct,
		})
	}

	if b.MoisturePct < 0 || b.MoisturePct >= 100 {
		r.AddError(Finding{
			Stage:       StageSchema,
			Message:     fmt.Sprintf("moisture %.4g%% must be >= 0 and < 100", b.MoisturePct),
			Path:        "biomass.moisture_pct",
			ActualValue: b.MoisturePct,
			Expected:    "0 <= moisture < 100",
		})
	} else {
		warnOutside(r, "biomass.moisture_pct", "moisture", b.MoisturePct, 0, 60, "%")
	}

	if b.AshPct < 0 || b.AshPct >= 100 {
		r.AddError(Finding{
			Stage:       StageSchema,
			Message:     fmt.Sprintf("ash %.4g%% must be >= 0 and < 100", b.AshPct),
			Path:        "biomass.ash_pct",
			ActualValue: b.AshPct,
			Expected:    "0 <= ash < 100",
		})
	} else {
		warnOutside(r, "biomass.ash_pct", "ash", b.AshPct, 0, 20, "%")
	}

	if b.LHVMJKg < 0 {
		r.AddError(Finding{
			Stage:       StageSchema,
			Message:     "biomass heating value must not be negative",
			Path:        "biomass.lhv_mj_kg",
			ActualValue: b.LHVMJKg,
			Expected:    ">= 0",
		})
	} else {
		warnOutside(r, "biomass.lhv_mj_kg", "biomass heating value", b.LHVMJKg, 15, 25, "MJ/kg")
	}

	if b.CarbonConversionPct <= 0 || b.CarbonConversionPct > 100 {
		r.AddError(Finding{
			Stage:       StageSchema,
			Message:     fmt.Sprintf("carbon conversion %.4g%% must be > 0 and <= 100", b.CarbonConversionPct),
			Path:        "biomass.carbon_conversion_pct",
			ActualValue: b.CarbonConversionPct,
			Expected:    "0 < cce <= 100",
		})
	} else {
		warnOutside(r, "biomass.carbon_conversion_pct", "carbon conversion", b.CarbonConversionPct, 70, 99, "%")
	}
}

// Reactor temperatures the model accepts, °C.
const (
	MinTemperatureC = 200.0
	MaxTemperatureC = 1200.0
)

func validateReactor(s *spec.Scenario, r *Report) {
	rc := s.Reactor

	if rc.TemperatureC < MinTemperatureC || rc.TemperatureC > MaxTemperatureC {
		r.AddError(Finding{
			Stage:       StageSchema,
			Message:     fmt.Sprintf("reactor temperature %.0f °C is outside the supported range (%.0f-%.0f °C)", rc.TemperatureC, MinTemperatureC, MaxTemperatureC),
			Path:        "reactor.temperature_c",
			ActualValue: rc.TemperatureC,
			Expected:    fmt.Sprintf("%.0f-%.0f", MinTemperatureC, MaxTemperatureC),
		})
	} else if rc.TemperatureC < equilibrium.FittedRangeC[0] {
		r.AddWarning(Finding{
			Stage:       StageSchema,
			Message:     fmt.Sprintf("reactor temperature %.0f °C is below the %.0f-%.0f °C range the Kp correlation was fitted over", rc.TemperatureC, equilibrium.FittedRangeC[0], equilibrium.FittedRangeC[1]),
			Path:        "reactor.temperature_c",
			ActualValue: rc.TemperatureC,
			Expected:    fmt.Sprintf("%.0f-%.0f", equilibrium.FittedRangeC[0], equilibrium.FittedRangeC[1]),
		})
	}

	if rc.PressureBar <= 0 {
		r.AddError(Finding{
			Stage:       StageSchema,
			Message:     "reactor pressure must be greater than 0",
			Path:        "reactor.pressure_bar",
			ActualValue: rc.PressureBar,
			Expected:    "> 0",
		})
	} else if rc.PressureBar < 1 || rc.PressureBar > 10 {
		r.AddWarning(Finding{
			Stage:       StageSchema,
			Message:     fmt.Sprintf("reactor pressure %.3g bar is outside 1-10 bar; pressure does not change the shift equilibrium", rc.PressureBar),
			Path:        "reactor.pressure_bar",
			ActualValue: rc.PressureBar,
			Expected:    "1-10",
		})
	}

	if rc.MethaneSplit < 0 || rc.MethaneSplit >= 1 {
		r.AddError(Finding{
			Stage:       StageSchema,
			Message:     fmt.Sprintf("methane split %.4g must be >= 0 and < 1", rc.MethaneSplit),
			Path:        "reactor.methane_split",
			ActualValue: rc.MethaneSplit,
			Expected:    "0 <= split < 1",
		})
	} else {
		warnOutside(r, "reactor.methane_split", "methane split", rc.MethaneSplit, 0.05, 0.15, "")
	}

	if _, err := equilibrium.ParseCorrelation(rc.KpCorrelation); err != nil {
		r.AddError(Finding{
			Stage:       StageSchema,
			Message:     fmt.Sprintf("unknown Kp correlation %q", rc.KpCorrelation),
			Path:        "reactor.kp_correlation",
			ActualValue: rc.KpCorrelation,
			Expected:    fmt.Sprintf("%q or %q", equilibrium.Fitted, equilibrium.Moe),
		})
	}
}

func validateAgent(s *spec.Scenario, r *Report) {
	a := s.Agent

	if _, err := agent.ParseBasis(a.StoichiometricBasis); err != nil {
		r.AddError(Finding{
			Stage:       StageSchema,
			Message:     fmt.Sprintf("unknown stoichiometric basis %q", a.StoichiometricBasis),
			Path:        "agent.stoichiometric_basis",
			ActualValue: a.StoichiometricBasis,
			Expected:    fmt.Sprintf("%q or %q", agent.BasisComposition, agent.BasisEmpirical),
		})
	}

	kind, err := agent.Parse(a.Type)
	if err != nil {
		res := Finding{
			Stage:       StageSchema,
			Message:     fmt.Sprintf("unknown gasifying agent %q", a.Type),
			Path:        "agent.type",
			ActualValue: a.Type,
			Expected:    "air, steam, oxygen or air_steam",
		}
		for _, alt := range agent.Suggest(a.Type) {
			res.Suggestions = append(res.Suggestions, fmt.Sprintf("Did you mean %q?", alt))
		}
		r.AddError(res)
		return
	}

	ag, err := agent.WithDefaults(kind, a.ER, a.SBR, a.OBR)
	if err != nil {
		r.AddError(Finding{Stage: StageSchema, Message: err.Error(), Path: "agent.type", ActualValue: a.Type})
		return
	}

	switch v := ag.(type) {
	case agent.Air:
		checkRatio(r, "agent.er", "equivalence ratio", v.ER, 0.1, 0.5)
		ignored(r, kind, "agent.sbr", a.SBR)
		ignored(r, kind, "agent.obr", a.OBR)
	case agent.Steam:
		checkRatio(r, "agent.sbr", "steam-to-biomass ratio", v.SBR, 0.1, 1.0)
		ignored(r, kind, "agent.er", a.ER)
		ignored(r, kind, "agent.obr", a.OBR)
	case agent.Oxygen:
		checkRatio(r, "agent.obr", "oxygen-to-biomass ratio", v.OBR, 0.1, 0.6)
		ignored(r, kind, "agent.er", a.ER)
		ignored(r, kind, "agent.sbr", a.SBR)
	case agent.AirSteam:
		checkRatio(r, "agent.er", "equivalence ratio", v.ER, 0.1, 0.5)
		checkRatio(r, "agent.sbr", "steam-to-biomass ratio", v.SBR, 0.1, 1.0)
		ignored(r, kind, "agent.obr", a.OBR)
	}
}

func checkRatio(r *Report, path, name string, v, lo, hi float64) {
	if v <= 0 {
		r.AddError(Finding{
			Stage:       StageSchema,
			Message:     fmt.Sprintf("%s must be greater than 0", name),
			Path:        path,
			ActualValue: v,
			Expected:    "> 0",
		})
		return
	}
	warnOutside(r, path, name, v, lo, hi, "")
}

func ignored(r *Report, kind agent.Kind, path string, v *float64) {
	if v == nil {
		return
	}
	r.AddInfo(Finding{
		Stage:       StageSchema,
		Message:     fmt.Sprintf("%s is ignored for the %s agent", path, kind),
		Path:        path,
		ActualValue: *v,
	})
}

func validateGenerator(s *spec.Scenario, r *Report) {
	g := s.Generator

	if g.EngineEfficiencyPct <= 0 || g.EngineEfficiencyPct > 100 {
		r.AddError(Finding{
			Stage:       StageSchema,
			Message:     fmt.Sprintf("engine efficiency %.4g%% must be > 0 and <= 100", g.EngineEfficiencyPct),
			Path:        "generator.engine_efficiency_pct",
			ActualValue: g.EngineEfficiencyPct,
			Expected:    "0 < efficiency <= 100",
		})
	} else {
		warnOutside(r, "generator.engine_efficiency_pct", "engine efficiency", g.EngineEfficiencyPct, 20, 45, "%")
	}

	if g.Hours < 0 {
		r.AddError(Finding{
			Stage:       StageSchema,
			Message:     "operating hours must not be negative",
			Path:        "generator.hours",
			ActualValue: g.Hours,
			Expected:    ">= 0",
		})
	} else {
		warnOutside(r, "generator.hours", "operating time", g.Hours, 1, 24, "h")
	}
}

func validateOutputs(s *spec.Scenario, r *Report) {
	names := make([]string, 0, len(s.Outputs))
	for name := range s.Outputs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if name == "" || s.Outputs[name] == "" {
			r.AddError(Finding{
				Stage:       StageSchema,
				Message:     "outputs need both a name and an expression",
				Path:        "outputs." + name,
				ActualValue: s.Outputs[name],
			})
		}
	}
}

// warnOutside adds a warning when v lies outside the typical range
// [lo, hi].
func warnOutside(r *Report, path, name string, v, lo, hi float64, unit string) {
	if v >= lo && v <= hi {
		return
	}
	expected := fmt.Sprintf("%g-%g", lo, hi)
	if unit != "" {
		expected += " " + unit
	}
	r.AddWarning(Finding{
		Stage:       StageSchema,
		Message:     fmt.Sprintf("%s %g is outside the typical range %s", name, v, expected),
		Path:        path,
		ActualValue: v,
		Expected:    expected,
	})
}
