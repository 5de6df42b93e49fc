package simulation

import (
	"errors"
	"fmt"

	"github.com/SMMiroE/Gasificacion-biomasa/pkg/equilibrium"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/feedstock"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/validation"
)

// MinEngineGasLHV is the syngas heating value below which gas engines run
// poorly, MJ/Nm³.
const MinEngineGasLHV = 4.0

// constraintPaths points each solver constraint at the input most likely
// to fix it.
var constraintPaths = map[equilibrium.Constraint]string{
	equilibrium.ConstraintInput:       "biomass",
	equilibrium.ConstraintCarbon:      "biomass.carbon_conversion_pct",
	equilibrium.ConstraintHydrogen:    "reactor.methane_split",
	equilibrium.ConstraintOxygen:      "agent",
	equilibrium.ConstraintWGSR:        "reactor.temperature_c",
	equilibrium.ConstraintConvergence: "reactor.temperature_c",
}

var constraintHints = map[equilibrium.Constraint][]string{
	equilibrium.ConstraintHydrogen: {"Reduce methane_split"},
	equilibrium.ConstraintOxygen: {
		"Adjust the agent ratio (ER, SBR or OBR)",
		"Too little oxygen leaves carbon without an oxide; too much burns the gas completely",
	},
	equilibrium.ConstraintWGSR: {"Move the agent ratio away from complete combustion"},
}

func checkComposition(c feedstock.Composition, report *validation.Report) {
	if c.SumWithinTolerance() {
		return
	}
	report.AddWarning(validation.Finding{
		Stage:       validation.StageAnalytical,
		Message:     fmt.Sprintf("biomass C+H+O+N+S sums to %.2f%%, not 100%%; running with the given values", c.ElementalSum()*100),
		Path:        "biomass",
		ActualValue: c.ElementalSum() * 100,
		Expected:    fmt.Sprintf("100 (±%.1f)", feedstock.SumTolerance*100),
		Suggestions: []string{"Check the ultimate analysis is on a dry, ash-free basis"},
	})
}

func reportSolveFailure(err error, report *validation.Report) {
	res := validation.Finding{
		Stage:   validation.StageSolver,
		Message: err.Error(),
		Path:    "reactor",
	}
	var se *equilibrium.SolveError
	if errors.As(err, &se) {
		res.Path = constraintPaths[se.Constraint]
		res.Constraint = string(se.Constraint)
		res.Suggestions = constraintHints[se.Constraint]
	}
	report.AddError(res)
}

// validateResult flags results that are computable but physically suspect.
func validateResult(in Input, res *Result, report *validation.Report) {
	validateEfficiency(res, report)
	validateGasQuality(res, report)
	validateChar(in, res, report)
}

func validateEfficiency(res *Result, report *validation.Report) {
	if res.Energy.GasificationEfficiency < 1 {
		return
	}
	report.AddWarning(validation.Finding{
		Stage:       validation.StageAnalytical,
		Message:     fmt.Sprintf("gasification efficiency %.2f is not below 1; the syngas carries more energy than the biomass", res.Energy.GasificationEfficiency),
		Path:        "biomass.lhv_mj_kg",
		ActualValue: res.Energy.GasificationEfficiency,
		Expected:    "< 1",
		Suggestions: []string{
			"Check the biomass heating value",
			"Steam gasification needs external heat the model does not charge for",
		},
	})
}

func validateGasQuality(res *Result, report *validation.Report) {
	if res.Syngas.TotalFlow == 0 || res.Syngas.LHV >= MinEngineGasLHV {
		return
	}
	report.AddWarning(validation.Finding{
		Stage:       validation.StageAnalytical,
		Message:     fmt.Sprintf("syngas heating value %.2f MJ/Nm³ is too low for reliable engine operation", res.Syngas.LHV),
		Path:        "syngas.lhv_mj_nm3",
		ActualValue: res.Syngas.LHV,
		Expected:    fmt.Sprintf(">= %.1f MJ/Nm³", MinEngineGasLHV),
		Suggestions: []string{"Lower the equivalence ratio", "Dry the biomass further"},
	})
}

func validateChar(in Input, res *Result, report *validation.Report) {
	if in.CarbonConversion >= 1 || res.CharKgH == 0 {
		return
	}
	report.AddInfo(validation.Finding{
		Stage:       validation.StageAnalytical,
		Message:     fmt.Sprintf("%.2f kg/h of carbon leaves unconverted as char", res.CharKgH),
		Path:        "biomass.carbon_conversion_pct",
		ActualValue: res.CharKgH,
	})
}
