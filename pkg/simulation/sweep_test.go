package simulation

import (
	"errors"
	"testing"

	"github.com/SMMiroE/Gasificacion-biomasa/pkg/agent"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/equilibrium"
)

func TestSweepTemperature(t *testing.T) {
	values := []float64{700, 800, 900, 1000}
	rows, err := Sweep(scenarioA(), ParamTemperature, values)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if len(rows) != len(values) {
		t.Fatalf("got %d rows, want %d", len(rows), len(values))
	}
	prevKp := 0.0
	for i, row := range rows {
		if row.Err != nil {
			t.Fatalf("row %d: %v", i, row.Err)
		}
		if row.Value != values[i] {
			t.Errorf("row %d value = %v, want %v", i, row.Value, values[i])
		}
		// Kp falls with temperature, so each row's Kp is below the last.
		if i > 0 && row.Result.Products.Kp >= prevKp {
			t.Errorf("row %d: Kp %v did not fall below %v", i, row.Result.Products.Kp, prevKp)
		}
		prevKp = row.Result.Products.Kp
	}
}

func TestSweepERLowersHeatingValue(t *testing.T) {
	rows, err := Sweep(scenarioA(), ParamER, []float64{0.15, 0.25, 0.35, 0.45})
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	prev := 1e9
	for _, row := range rows {
		if row.Err != nil {
			t.Fatalf("ER %v: %v", row.Value, row.Err)
		}
		if row.Result.Syngas.LHV >= prev {
			t.Errorf("ER %v: LHV %v did not fall below %v", row.Value, row.Result.Syngas.LHV, prev)
		}
		prev = row.Result.Syngas.LHV
	}
}

func TestSweepKeepsFailedRows(t *testing.T) {
	base := scenarioA()
	base.Agent = agent.Oxygen{OBR: 0.3}
	rows, err := Sweep(base, ParamOBR, []float64{0.3, 1.5})
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if rows[0].Err != nil || rows[0].Result == nil {
		t.Errorf("OBR 0.3 should succeed: %v", rows[0].Err)
	}
	if !errors.Is(rows[1].Err, equilibrium.ErrSolveFailed) || rows[1].Result != nil {
		t.Errorf("OBR 1.5 should fail the solve, got %v", rows[1].Err)
	}
}

func TestSweepDoesNotMutateBase(t *testing.T) {
	base := scenarioA()
	if _, err := Sweep(base, ParamMoisture, []float64{0.05, 0.3}); err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if base.Composition.Moisture != 0.10 {
		t.Errorf("base moisture changed to %v", base.Composition.Moisture)
	}
}

func TestSweepRatioMustApply(t *testing.T) {
	if _, err := Sweep(scenarioA(), ParamSBR, []float64{0.5}); err == nil {
		t.Error("expected error sweeping SBR on an air agent")
	}
	base := scenarioA()
	base.Agent = agent.AirSteam{ER: 0.2, SBR: 0.3}
	rows, err := Sweep(base, ParamSBR, []float64{0.2, 0.6})
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if got := rows[1].Result.AgentSupply.H2O; got <= rows[0].Result.AgentSupply.H2O {
		t.Errorf("more SBR should feed more steam, got %v", got)
	}
}

func TestParseParameter(t *testing.T) {
	for _, p := range Parameters {
		got, err := ParseParameter(string(p))
		if err != nil || got != p {
			t.Errorf("ParseParameter(%q) = %q, %v", p, got, err)
		}
	}
	if got, err := ParseParameter(" CCE "); err != nil || got != ParamCCE {
		t.Errorf("ParseParameter(CCE) = %q, %v", got, err)
	}
	if _, err := ParseParameter("pressure"); err == nil {
		t.Error("expected error for unsweepable parameter")
	}
}

func TestSweepRejectsOutOfRangeValues(t *testing.T) {
	cases := []struct {
		param Parameter
		bad   float64
		good  float64
	}{
		{ParamEngineEfficiency, 1.5, 0.3},
		{ParamEngineEfficiency, 0, 0.3},
		{ParamTemperature, 1500, 800},
		{ParamTemperature, 150, 800},
		{ParamCCE, 0, 0.95},
		{ParamCCE, 1.2, 1},
		{ParamMoisture, 1, 0},
		{ParamMethaneSplit, 1, 0},
		{ParamER, -0.1, 0.25},
	}
	for _, c := range cases {
		rows, err := Sweep(scenarioA(), c.param, []float64{c.good, c.bad})
		if err != nil {
			t.Fatalf("%s: Sweep: %v", c.param, err)
		}
		if rows[0].Err != nil || rows[0].Result == nil {
			t.Errorf("%s = %v should run, got %v", c.param, c.good, rows[0].Err)
		}
		bad := rows[1]
		if !errors.Is(bad.Err, ErrOutOfRange) {
			t.Errorf("%s = %v: err = %v, want ErrOutOfRange", c.param, c.bad, bad.Err)
		}
		if bad.Result != nil {
			t.Errorf("%s = %v: got a result for a rejected value", c.param, c.bad)
		}
		if bad.Report == nil || bad.Report.Valid || len(bad.Report.Errors) != 1 {
			t.Errorf("%s = %v: report = %+v, want one error", c.param, c.bad, bad.Report)
		}
	}
}
