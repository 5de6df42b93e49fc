package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/SMMiroE/Gasificacion-biomasa/internal/server"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/chem"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/energy"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/equilibrium"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/outputs"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/simulation"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/spec"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/validation"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// loadAndValidate loads the scenario and runs schema validation.
func loadAndValidate(path string) (*spec.Scenario, *validation.Report, error) {
	sc, err := spec.LoadPath(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading scenario: %w", err)
	}
	logrus.WithFields(logrus.Fields{"path": path, "name": sc.Name}).Debug("scenario loaded")
	return sc, validation.ValidateSchema(sc), nil
}

func runValidate(w io.Writer, cfg *viper.Viper, path string) error {
	sc, report, err := loadAndValidate(path)
	if err != nil {
		return err
	}

	// Run the model too, so that analytical and solver problems show up.
	if report.Valid {
		in, err := simulation.FromScenario(sc)
		if err != nil {
			return err
		}
		_, runReport, err := simulation.Run(in)
		if err != nil && !errors.Is(err, equilibrium.ErrSolveFailed) {
			return err
		}
		report.Merge(runReport)
	}

	if cfg.GetString("format") == formatJSON {
		if err := writeJSON(w, report); err != nil {
			return err
		}
	} else {
		printValidationReport(w, report)
	}
	return report.Err()
}

func runSimulate(w io.Writer, cfg *viper.Viper, path string) error {
	sc, schemaReport, err := loadAndValidate(path)
	if err != nil {
		return err
	}
	if !schemaReport.Valid {
		printValidationReport(w, schemaReport)
		return schemaReport.Err()
	}

	res, report, err := simulation.RunScenario(sc)
	if err != nil {
		printValidationReport(w, report)
		return err
	}
	o, err := outputs.New(sc.Outputs)
	if err != nil {
		return fmt.Errorf("parsing outputs: %w", err)
	}
	outs, err := o.Evaluate(res.Variables())
	if err != nil {
		return fmt.Errorf("evaluating outputs: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"scenario": sc.Name,
		"lhv":      res.Syngas.LHV,
		"kwh":      res.Energy.ElectricKWh,
	}).Debug("simulation complete")

	if cfg.GetString("format") == formatJSON {
		return writeJSON(w, map[string]any{
			"scenario":   sc.Name,
			"result":     res,
			"outputs":    outs,
			"validation": report,
		})
	}
	printResult(w, sc.Name, res)
	printOutputs(w, o.Names(), outs)
	if len(report.Warnings)+len(report.Info) > 0 {
		fmt.Fprintln(w)
		printValidationReport(w, report)
	}
	return nil
}

func runEstimate(w io.Writer, cfg *viper.Viper) error {
	// The option defaults match the library's, so the fractions are always
	// passed explicitly and a zero stays zero.
	coFrac := cfg.GetFloat64("co-pct") / 100
	ch4Frac := cfg.GetFloat64("ch4-pct") / 100
	bal, err := energy.Estimate(energy.LumpedInput{
		BiomassFlow:            cfg.GetFloat64("flow"),
		BiomassLHV:             cfg.GetFloat64("biomass-lhv"),
		GasificationEfficiency: cfg.GetFloat64("gasification-efficiency") / 100,
		SyngasLHV:              cfg.GetFloat64("syngas-lhv"),
		EngineEfficiency:       cfg.GetFloat64("engine-efficiency") / 100,
		Hours:                  cfg.GetFloat64("hours"),
		COFraction:             &coFrac,
		CH4Fraction:            &ch4Frac,
	})
	if err != nil {
		return err
	}
	if cfg.GetString("format") == formatJSON {
		return writeJSON(w, bal)
	}
	printBalance(w, bal)
	return nil
}

func runSweep(w io.Writer, cfg *viper.Viper, path string) error {
	param, err := simulation.ParseParameter(cfg.GetString("param"))
	if err != nil {
		return err
	}
	values, err := parseValues(cfg.GetStringSlice("values"))
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return errors.New("sweep: no values given (use --values)")
	}

	sc, report, err := loadAndValidate(path)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(w, report)
		return report.Err()
	}
	base, err := simulation.FromScenario(sc)
	if err != nil {
		return err
	}
	rows, err := simulation.Sweep(base, param, values)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if row.Err != nil {
			logrus.WithFields(logrus.Fields{"param": param, "value": row.Value}).WithError(row.Err).Warn("sweep point failed")
		}
	}

	if cfg.GetString("format") == formatJSON {
		type jsonRow struct {
			simulation.Row
			Error string `json:"error,omitempty"`
		}
		out := make([]jsonRow, len(rows))
		for i, row := range rows {
			out[i].Row = row
			if row.Err != nil {
				out[i].Error = row.Err.Error()
			}
		}
		return writeJSON(w, map[string]any{"parameter": param, "rows": out})
	}
	printSweep(w, param, rows)
	return nil
}

// parseValues converts flag or config values to numbers.
func parseValues(raw []string) ([]float64, error) {
	values := make([]float64, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		v, err := cast.ToFloat64E(s)
		if err != nil {
			return nil, fmt.Errorf("sweep: value %q is not a number", s)
		}
		values = append(values, v)
	}
	return values, nil
}

func runKp(w io.Writer, cfg *viper.Viper) error {
	corr, err := equilibrium.ParseCorrelation(cfg.GetString("correlation"))
	if err != nil {
		return err
	}
	tC := cfg.GetFloat64("temperature-c")
	tK := chem.ToKelvin(tC)
	if tK <= 0 {
		return fmt.Errorf("temperature %.2f °C is below absolute zero", tC)
	}
	kp := corr.Kp(tK)
	if cfg.GetString("format") == formatJSON {
		return writeJSON(w, map[string]any{
			"temperature_c": tC,
			"temperature_k": tK,
			"correlation":   corr,
			"kp":            kp,
		})
	}
	fmt.Fprintf(w, "Kp(%s, %.1f °C = %.2f K) = %.4f\n", corr, tC, tK, kp)
	if lo, hi := equilibrium.FittedRangeC[0], equilibrium.FittedRangeC[1]; tC < lo || tC > hi {
		fmt.Fprintf(w, "warning: %.1f °C is outside the %.0f-%.0f °C fitted range\n", tC, lo, hi)
	}
	return nil
}

// runDefaults prints the default scenario, or writes it to a new file in the
// format its extension names. An existing file is never overwritten.
func runDefaults(w io.Writer, cfg *viper.Viper, args []string) error {
	sc := spec.Default()
	if len(args) == 0 {
		format := spec.Format(cfg.GetString("encoding"))
		if cfg.GetString("format") == formatJSON {
			format = spec.FormatJSON
		}
		return spec.Encode(w, sc, format)
	}

	path := args[0]
	format, err := spec.FormatOf(path)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	if err := spec.Encode(f, sc, format); err != nil {
		f.Close()
		return fmt.Errorf("defaults: writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	logrus.WithFields(logrus.Fields{"path": path, "format": format}).Info("default scenario written")
	return nil
}

func runServe(cfg *viper.Viper, args []string) error {
	project := ""
	if len(args) == 1 {
		project = args[0]
	}
	return server.New(project, cfg.GetInt("port")).Start()
}

func parameterList() string {
	names := make([]string, len(simulation.Parameters))
	for i, p := range simulation.Parameters {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
