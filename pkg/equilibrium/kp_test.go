package equilibrium

import (
	"math"
	"testing"
)

func TestFittedKp(t *testing.T) {
	kp := Fitted.Kp(1073.15)
	if kp < 5.5 || kp > 7 {
		t.Errorf("Kp(800 °C) = %v, want about 6.2", kp)
	}
}

func TestMoeKpCrossesUnity(t *testing.T) {
	tK := 4577.8 / 4.33
	if kp := Moe.Kp(tK); math.Abs(kp-1) > 1e-12 {
		t.Errorf("Kp(%.1f K) = %v, want 1", tK, kp)
	}
}

func TestKpDecreasesWithTemperature(t *testing.T) {
	for _, c := range []Correlation{Fitted, Moe} {
		prev := math.Inf(1)
		for tC := FittedRangeC[0]; tC <= FittedRangeC[1]; tC += 50 {
			kp := c.Kp(tC + 273.15)
			if kp >= prev {
				t.Errorf("%s: Kp(%v °C) = %v did not fall below %v", c, tC, kp, prev)
			}
			prev = kp
		}
	}
}

func TestParseCorrelation(t *testing.T) {
	tests := []struct {
		label string
		want  Correlation
		err   bool
	}{
		{"", Fitted, false},
		{"fitted", Fitted, false},
		{"moe", Moe, false},
		{"gibbs", "", true},
	}
	for _, tt := range tests {
		got, err := ParseCorrelation(tt.label)
		if (err != nil) != tt.err {
			t.Errorf("ParseCorrelation(%q) error = %v, want error %v", tt.label, err, tt.err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCorrelation(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}
