package balance

import (
	"testing"

	"github.com/SMMiroE/Gasificacion-biomasa/pkg/agent"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/chem"
	"github.com/SMMiroE/Gasificacion-biomasa/pkg/feedstock"
)

func TestAggregate(t *testing.T) {
	feed := feedstock.Contribution{
		Biomass:     chem.ElementalFlow{C: 3.7, H: 5.3, O: 2.4, N: 0.03},
		MoistureH2O: 0.5,
	}
	supply := agent.Flow{O2: 1, N2: 3.76, H2O: 0.25}

	in := Aggregate(feed, supply)

	want := chem.ElementalFlow{
		C: 3.7,
		H: 5.3 + 1.0 + 0.5,
		O: 2.4 + 0.5 + 2 + 0.25,
		N: 0.03 + 7.52,
	}
	for _, e := range chem.Elements {
		if d := in.Total.Get(e) - want.Get(e); d > 1e-12 || d < -1e-12 {
			t.Errorf("Total.%s = %v, want %v", e, in.Total.Get(e), want.Get(e))
		}
	}
	if in.Moisture.H != 1.0 || in.Moisture.O != 0.5 {
		t.Errorf("Moisture = %+v, want H=1 O=0.5", in.Moisture)
	}
	if in.Agent.N != 7.52 {
		t.Errorf("Agent.N = %v, want 7.52", in.Agent.N)
	}
}

func TestAggregateKeepsEverySource(t *testing.T) {
	// Each source alone must appear in the total.
	sources := []struct {
		name   string
		feed   feedstock.Contribution
		supply agent.Flow
	}{
		{"biomass", feedstock.Contribution{Biomass: chem.ElementalFlow{C: 1}}, agent.Flow{}},
		{"moisture", feedstock.Contribution{MoistureH2O: 1}, agent.Flow{}},
		{"agent", feedstock.Contribution{}, agent.Flow{O2: 1}},
	}
	for _, s := range sources {
		in := Aggregate(s.feed, s.supply)
		if in.Total == (chem.ElementalFlow{}) {
			t.Errorf("%s contribution dropped from total", s.name)
		}
		if !in.Total.NonNegative() {
			t.Errorf("%s: negative total %+v", s.name, in.Total)
		}
	}
}
