package energy

import "github.com/ctessum/unit"

// Conversion factors.
const (
	JoulesPerMJ    = 1.0e6
	JoulesPerKWh   = 3.6e6
	SecondsPerHour = 3600.0
	WattsPerKW     = 1000.0
)

// Defaults for the lumped estimate. The CO and CH4 volume fractions are
// typical of air-blown downdraft gas.
const (
	DefaultCOFraction  = 0.20
	DefaultCH4Fraction = 0.03
	// LumpedMolarVolume is the rounded Nm³/kmol the lumped model uses.
	LumpedMolarVolume = 22.4
)

// Derived dimensions of the model inputs. Normal cubic metres are carried
// as m³.
var (
	kilogramPerSecond = unit.Dimensions{unit.MassDim: 1, unit.TimeDim: -1}
	joulePerKilogram  = unit.Dimensions{unit.LengthDim: 2, unit.TimeDim: -2}
	joulePerMeter3    = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -1, unit.TimeDim: -2}
)
