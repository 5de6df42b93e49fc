package equilibrium

import (
	"fmt"
	"math"
)

// Correlation selects the temperature correlation for the water-gas shift
// equilibrium constant.
type Correlation string

const (
	// Fitted is the natural-log polynomial fitted over 600-1200 °C for
	// downdraft gasification.
	Fitted Correlation = "fitted"
	// Moe is Kp = exp(4577.8/T - 4.33).
	Moe Correlation = "moe"
)

// FittedRangeC is the temperature range, in °C, the Fitted correlation was
// fitted over.
var FittedRangeC = [2]float64{600, 1200}

// ParseCorrelation converts a correlation label. An empty label means Fitted.
func ParseCorrelation(label string) (Correlation, error) {
	switch Correlation(label) {
	case "", Fitted:
		return Fitted, nil
	case Moe:
		return Moe, nil
	}
	return "", fmt.Errorf("equilibrium: unknown Kp correlation %q (want %q or %q)", label, Fitted, Moe)
}

// Kp returns the WGSR equilibrium constant at temperature tK (Kelvin) for
// CO + H2O <=> CO2 + H2. The reaction does not change the number of gas
// moles, so Kp needs no pressure correction.
func (c Correlation) Kp(tK float64) float64 {
	switch c {
	case Moe:
		return math.Exp(4577.8/tK - 4.33)
	default:
		lnKp := -2.2562 + 1829.0/tK + 0.3546*math.Log(tK) - 1.189e-4*tK + 1.936e-8*tK*tK
		return math.Exp(lnKp)
	}
}
