package main

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/SMMiroE/Gasificacion-biomasa/pkg/chem"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/energy"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/simulation"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/validation"
)

func printValidationReport(w io.Writer, r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Fprintf(w, "ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Fprintf(w, "  [%s] %s\n", e.Stage, e.Message)
			if e.Path != "" {
				fmt.Fprintf(w, "    -> %s = %v\n", e.Path, e.ActualValue)
			}
			if e.Expected != "" {
				fmt.Fprintf(w, "    expected: %s\n", e.Expected)
			}
			if e.Constraint != "" {
				fmt.Fprintf(w, "    violated: %s constraint\n", e.Constraint)
			}
			for _, s := range e.Suggestions {
				fmt.Fprintf(w, "    * %s\n", s)
			}
		}
		fmt.Fprintln(w)
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(w, "WARNINGS (%d):\n", len(r.Warnings))
		for _, wr := range r.Warnings {
			fmt.Fprintf(w, "  [%s] %s\n", wr.Stage, wr.Message)
			if wr.Path != "" {
				fmt.Fprintf(w, "    -> %s = %v\n", wr.Path, wr.ActualValue)
			}
			if wr.Expected != "" {
				fmt.Fprintf(w, "    expected: %s\n", wr.Expected)
			}
			for _, s := range wr.Suggestions {
				fmt.Fprintf(w, "    * %s\n", s)
			}
		}
		fmt.Fprintln(w)
	}

	if len(r.Info) > 0 {
		fmt.Fprintf(w, "INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Fprintf(w, "  [%s] %s\n", i.Stage, i.Message)
		}
		fmt.Fprintln(w)
	}

	if r.Valid {
		fmt.Fprintf(w, "Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Fprintf(w, "Result: INVALID (%s)\n", r.Summary)
	}
}

func printResult(w io.Writer, name string, r *simulation.Result) {
	title := fmt.Sprintf("Gasifier: %s (%s, %.0f °C)", name, r.AgentKind, r.TemperatureK-chem.CelsiusToKelvin)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", utf8.RuneCountInString(title)))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-8s %14s %10s %10s\n", "Species", "Flow kmol/h", "Wet %", "Dry %")
	fmt.Fprintf(w, "%-8s %14s %10s %10s\n", "--------", "--------------", "----------", "----------")
	for _, s := range chem.AllSpecies {
		dry := "-"
		if s != chem.H2O {
			dry = fmt.Sprintf("%.2f", 100*r.Syngas.DryFractions[s])
		}
		fmt.Fprintf(w, "%-8s %14.4f %10.2f %10s\n", s, r.Syngas.Flows[s], 100*r.Syngas.Fractions[s], dry)
	}
	fmt.Fprintf(w, "%-8s %14.4f\n", "TOTAL", r.Syngas.TotalFlow)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Syngas")
	fmt.Fprintln(w, "------")
	fmt.Fprintf(w, "  Volumetric flow:        %.2f Nm³/h (%.2f dry)\n", r.Syngas.VolumetricFlow, r.Syngas.DryVolumetricFlow)
	fmt.Fprintf(w, "  LHV:                    %.3f MJ/Nm³ (%.3f dry)\n", r.Syngas.LHV, r.Syngas.DryLHV)
	fmt.Fprintf(w, "  H2/CO:                  %.3f\n", r.Syngas.H2ToCO)
	fmt.Fprintf(w, "  Kp:                     %.4f (achieved %.4f)\n", r.Products.Kp, r.Products.ShiftRatio())
	fmt.Fprintf(w, "  Char:                   %.3f kg/h\n", r.CharKgH)
	fmt.Fprintln(w)

	printBalance(w, &r.Energy)
}

func printBalance(w io.Writer, b *energy.Balance) {
	fmt.Fprintln(w, "Energy and emissions")
	fmt.Fprintln(w, "--------------------")
	fmt.Fprintf(w, "  Biomass consumed:       %.1f kg\n", b.BiomassConsumedKg)
	fmt.Fprintf(w, "  Biomass energy:         %.1f MJ\n", b.BiomassEnergyMJ)
	fmt.Fprintf(w, "  Syngas volume:          %.1f Nm³\n", b.SyngasVolumeNm3)
	fmt.Fprintf(w, "  Syngas energy:          %.1f MJ\n", b.SyngasEnergyMJ)
	fmt.Fprintf(w, "  Gasification eff.:      %.1f %%\n", 100*b.GasificationEfficiency)
	fmt.Fprintf(w, "  Electricity:            %.1f kWh (%.1f MJ)\n", b.ElectricKWh, b.ElectricMJ)
	fmt.Fprintf(w, "  Average power:          %.2f kW\n", b.AveragePowerKW)
	fmt.Fprintf(w, "  CO2 emitted:            %.1f kg\n", b.CO2Kg)
}

// printOutputs lists the outputs in evaluation order, so that an output
// comes after the outputs it refers to.
func printOutputs(w io.Writer, names []string, outs map[string]float64) {
	if len(names) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Outputs")
	fmt.Fprintln(w, "-------")
	for _, n := range names {
		fmt.Fprintf(w, "  %-22s  %.6g\n", n+":", outs[n])
	}
}

func printSweep(w io.Writer, param simulation.Parameter, rows []simulation.Row) {
	fmt.Fprintf(w, "%-18s %8s %8s %8s %10s %10s %10s\n",
		param, "H2 %", "CO %", "CH4 %", "LHV", "kWh", "CO2 kg")
	fmt.Fprintf(w, "%-18s %8s %8s %8s %10s %10s %10s\n",
		"------------------", "--------", "--------", "--------", "----------", "----------", "----------")
	for _, row := range rows {
		if row.Err != nil {
			fmt.Fprintf(w, "%-18.4g failed: %v\n", row.Value, row.Err)
			continue
		}
		r := row.Result
		fmt.Fprintf(w, "%-18.4g %8.2f %8.2f %8.2f %10.3f %10.1f %10.1f\n",
			row.Value,
			100*r.Syngas.DryFractions[chem.H2],
			100*r.Syngas.DryFractions[chem.CO],
			100*r.Syngas.DryFractions[chem.CH4],
			r.Syngas.LHV,
			r.Energy.ElectricKWh,
			r.Energy.CO2Kg,
		)
	}
}
