package spec

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kr/pretty"
)

func TestLoadProject(t *testing.T) {
	s, err := LoadProject("../../examples/default")
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}

	if s.Name != "wood-chips-air" {
		t.Errorf("name = %q, want %q", s.Name, "wood-chips-air")
	}
	if s.Biomass.FlowKgH != 100 {
		t.Errorf("flow_kg_h = %v, want 100", s.Biomass.FlowKgH)
	}
	if s.Reactor.KpCorrelation != "fitted" {
		t.Errorf("kp_correlation = %q, want fitted", s.Reactor.KpCorrelation)
	}
	if s.Agent.ER == nil || *s.Agent.ER != 0.25 {
		t.Errorf("agent.er = %v, want 0.25", s.Agent.ER)
	}
	if len(s.Outputs) != 2 {
		t.Errorf("got %d outputs, want 2", len(s.Outputs))
	}
}

func TestLoadTOMLProject(t *testing.T) {
	s, err := LoadPath("../../examples/steam")
	if err != nil {
		t.Fatalf("LoadPath failed: %v", err)
	}
	if s.Agent.Type != "Vapor" {
		t.Errorf("agent.type = %q, want Vapor", s.Agent.Type)
	}
	if s.Agent.SBR == nil || *s.Agent.SBR != 0.5 {
		t.Errorf("agent.sbr = %v, want 0.5", s.Agent.SBR)
	}
	if s.Agent.ER != nil {
		t.Errorf("agent.er = %v, want unset", *s.Agent.ER)
	}
	// sulfur_pct is not in the file and keeps its default.
	if s.Biomass.SulfurPct != 0 {
		t.Errorf("sulfur_pct = %v, want 0", s.Biomass.SulfurPct)
	}
	if s.Generator.Hours != 12 {
		t.Errorf("hours = %v, want 12", s.Generator.Hours)
	}
}

func TestParseEmptyKeepsDefaults(t *testing.T) {
	for _, f := range []Format{FormatYAML, FormatTOML, FormatJSON} {
		s, err := Parse(nil, f)
		if err != nil {
			t.Fatalf("Parse(empty, %s): %v", f, err)
		}
		if diff := pretty.Diff(Default(), s); len(diff) > 0 {
			t.Errorf("%s: empty document changed defaults:\n%s", f, strings.Join(diff, "\n"))
		}
	}
}

func TestParsePartialOverride(t *testing.T) {
	s, err := Parse([]byte("reactor:\n  temperature_c: 900\n"), FormatYAML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := Default()
	want.Reactor.TemperatureC = 900
	if diff := pretty.Diff(want, s); len(diff) > 0 {
		t.Errorf("unexpected scenario:\n%s", strings.Join(diff, "\n"))
	}
}

func TestParseUnknownKeys(t *testing.T) {
	cases := map[Format]string{
		FormatYAML: "reactor:\n  temprature_c: 900\n",
		FormatTOML: "[reactor]\ntemprature_c = 900\n",
		FormatJSON: `{"reactor": {"temprature_c": 900}}`,
	}
	for f, doc := range cases {
		if _, err := Parse([]byte(doc), f); err == nil {
			t.Errorf("%s: expected error for misspelled key", f)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	er := 0.3
	orig := Default()
	orig.Agent.ER = &er
	orig.Outputs = map[string]string{"kwh_per_kg": "ElectricKWh / BiomassConsumedKg"}

	for _, f := range []Format{FormatYAML, FormatTOML, FormatJSON} {
		var buf bytes.Buffer
		if err := Encode(&buf, orig, f); err != nil {
			t.Fatalf("Encode(%s): %v", f, err)
		}
		got, err := Parse(buf.Bytes(), f)
		if err != nil {
			t.Fatalf("Parse(%s): %v\n%s", f, err, buf.String())
		}
		if diff := pretty.Diff(orig, got); len(diff) > 0 {
			t.Errorf("%s round trip:\n%s", f, strings.Join(diff, "\n"))
		}
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadProject(dir); err == nil {
		t.Error("expected error for project without scenario file")
	}
	bad := filepath.Join(dir, "scenario.ini")
	if err := os.WriteFile(bad, []byte("x=1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if _, err := LoadPath(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestElementalSumPct(t *testing.T) {
	if got := Default().Biomass.ElementalSumPct(); got != 99.5 {
		t.Errorf("ElementalSumPct = %v, want 99.5", got)
	}
}
