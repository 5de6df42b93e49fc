package chem

// Molar masses in kg/kmol (numerically g/mol).
const (
	MolarMassC = 12.011
	MolarMassH = 1.008
	MolarMassO = 15.999
	MolarMassN = 14.007
	MolarMassS = 32.06

	MolarMassH2  = 2 * MolarMassH
	MolarMassCO  = MolarMassC + MolarMassO
	MolarMassCO2 = MolarMassC + 2*MolarMassO
	MolarMassCH4 = MolarMassC + 4*MolarMassH
	MolarMassH2O = 2*MolarMassH + MolarMassO
	MolarMassO2  = 2 * MolarMassO
	MolarMassN2  = 2 * MolarMassN
)

// Gas constants and reference conditions.
const (
	MolarVolumeNTP  = 22.414 // Nm³/kmol at 0 °C, 1 atm
	CelsiusToKelvin = 273.15

	// Air composition by mole.
	AirO2Fraction = 0.21
	AirN2Fraction = 0.79
)

// Lower heating values of the combustible syngas species at normal
// conditions, MJ/Nm³.
const (
	LHVH2  = 10.79
	LHVCO  = 12.63
	LHVCH4 = 35.80
)
