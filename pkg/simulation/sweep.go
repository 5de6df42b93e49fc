package simulation

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/SMMiroE/Gasificacion-biomasa/pkg/agent"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/validation"
)

// Parameter names an input that Sweep can vary.
type Parameter string

const (
	ParamTemperature      Parameter = "temperature"
	ParamER               Parameter = "er"
	ParamSBR              Parameter = "sbr"
	ParamOBR              Parameter = "obr"
	ParamCCE              Parameter = "cce"
	ParamMoisture         Parameter = "moisture"
	ParamMethaneSplit     Parameter = "methane_split"
	ParamEngineEfficiency Parameter = "engine_efficiency"
)

// Parameters lists the sweepable inputs.
var Parameters = []Parameter{
	ParamTemperature, ParamER, ParamSBR, ParamOBR,
	ParamCCE, ParamMoisture, ParamMethaneSplit, ParamEngineEfficiency,
}

// ParseParameter converts a parameter name.
func ParseParameter(name string) (Parameter, error) {
	p := Parameter(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Parameters {
		if p == known {
			return p, nil
		}
	}
	names := make([]string, len(Parameters))
	for i, known := range Parameters {
		names[i] = string(known)
	}
	return "", fmt.Errorf("unknown sweep parameter %q (want one of %s)", name, strings.Join(names, ", "))
}

// ErrOutOfRange is wrapped by the error of a sweep row whose value the
// model does not accept.
var ErrOutOfRange = errors.New("sweep value out of range")

// bound is the accepted interval for a swept value. Open ends exclude the
// limit itself.
type bound struct {
	lo, hi         float64
	openLo, openHi bool
	path           string
}

// bounds hold the same hard limits validation.ValidateSchema applies, on
// fractions rather than percent. Agent ratios only need to be positive.
var bounds = map[Parameter]bound{
	ParamTemperature:      {lo: validation.MinTemperatureC, hi: validation.MaxTemperatureC, path: "reactor.temperature_c"},
	ParamER:               {lo: 0, hi: math.Inf(1), openLo: true, path: "agent.er"},
	ParamSBR:              {lo: 0, hi: math.Inf(1), openLo: true, path: "agent.sbr"},
	ParamOBR:              {lo: 0, hi: math.Inf(1), openLo: true, path: "agent.obr"},
	ParamCCE:              {lo: 0, hi: 1, openLo: true, path: "biomass.carbon_conversion_pct"},
	ParamMoisture:         {lo: 0, hi: 1, openHi: true, path: "biomass.moisture_pct"},
	ParamMethaneSplit:     {lo: 0, hi: 1, openHi: true, path: "reactor.methane_split"},
	ParamEngineEfficiency: {lo: 0, hi: 1, openLo: true, path: "generator.engine_efficiency_pct"},
}

func (b bound) contains(v float64) bool {
	if math.IsNaN(v) {
		return false
	}
	if v < b.lo || (b.openLo && v == b.lo) {
		return false
	}
	return v < b.hi || (!b.openHi && v == b.hi)
}

func (b bound) String() string {
	lo, hi := "[", "]"
	if b.openLo {
		lo = "("
	}
	if b.openHi || math.IsInf(b.hi, 1) {
		hi = ")"
	}
	return fmt.Sprintf("%s%g, %g%s", lo, b.lo, b.hi, hi)
}

// checkValue rejects a value outside the accepted range of param. The
// report carries the same finding as a schema error.
func checkValue(param Parameter, v float64) (*validation.Report, error) {
	b := bounds[param]
	if b.contains(v) {
		return nil, nil
	}
	err := fmt.Errorf("%w: %s = %g, want %s", ErrOutOfRange, param, v, b)
	report := validation.NewReport()
	report.AddError(validation.Finding{
		Stage:       validation.StageSchema,
		Message:     err.Error(),
		Path:        b.path,
		ActualValue: v,
		Expected:    b.String(),
	})
	return report, err
}

// Row is one point of a sweep. Err is set when that point could not be
// simulated; Result is nil then.
type Row struct {
	Value  float64            `json:"value"`
	Result *Result            `json:"result,omitempty"`
	Report *validation.Report `json:"validation"`
	Err    error              `json:"-"`
}

// Sweep runs base once for each value of param. Temperature is in °C; all
// other values are fractions. Each point is an independent run. A value
// outside the accepted range gives a row with an error wrapping
// ErrOutOfRange and is not simulated.
func Sweep(base Input, param Parameter, values []float64) ([]Row, error) {
	if _, err := ParseParameter(string(param)); err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(values))
	for _, v := range values {
		in, err := apply(base, param, v)
		if err != nil {
			return nil, err
		}
		if report, err := checkValue(param, v); err != nil {
			rows = append(rows, Row{Value: v, Report: report, Err: err})
			continue
		}
		res, report, err := Run(in)
		rows = append(rows, Row{Value: v, Result: res, Report: report, Err: err})
	}
	return rows, nil
}

// apply returns a copy of in with param set to v. Agent ratios can only be
// set on agents that use them.
func apply(in Input, param Parameter, v float64) (Input, error) {
	switch param {
	case ParamTemperature:
		in.TemperatureC = v
	case ParamCCE:
		in.CarbonConversion = v
	case ParamMoisture:
		in.Composition.Moisture = v
	case ParamMethaneSplit:
		in.MethaneSplit = v
	case ParamEngineEfficiency:
		in.EngineEfficiency = v
	case ParamER, ParamSBR, ParamOBR:
		ag, err := withRatio(in.Agent, param, v)
		if err != nil {
			return in, err
		}
		in.Agent = ag
	default:
		return in, fmt.Errorf("unknown sweep parameter %q", param)
	}
	return in, nil
}

func withRatio(a agent.Agent, param Parameter, v float64) (agent.Agent, error) {
	switch ag := a.(type) {
	case agent.Air:
		if param == ParamER {
			ag.ER = v
			return ag, nil
		}
	case agent.Steam:
		if param == ParamSBR {
			ag.SBR = v
			return ag, nil
		}
	case agent.Oxygen:
		if param == ParamOBR {
			ag.OBR = v
			return ag, nil
		}
	case agent.AirSteam:
		switch param {
		case ParamER:
			ag.ER = v
			return ag, nil
		case ParamSBR:
			ag.SBR = v
			return ag, nil
		}
	case nil:
		return nil, fmt.Errorf("cannot sweep %s without a gasifying agent", param)
	}
	return nil, fmt.Errorf("%s does not apply to the %s agent", param, a.Kind())
}
