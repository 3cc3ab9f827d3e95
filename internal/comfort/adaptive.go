package comfort

// EN 15251 adaptive comfort model, Category II tolerance band.
const (
	adaptiveSlope     = 0.33
	adaptiveIntercept = 18.8
	categoryIIBand    = 4.0

	// Outside 10..30 °C running mean the adaptive formula does not apply.
	adaptiveLowerThetaRM = 10.0
	adaptiveUpperThetaRM = 30.0
	coldClimateUpper     = 18.0
	hotClimateUpperCap   = 32.7
)

// NeutralTemp returns the neutral operative temperature for a running-mean
// outdoor temperature: T_op = 0.33·θ_rm + 18.8.
func NeutralTemp(thetaRM float64) float64 {
	return adaptiveSlope*thetaRM + adaptiveIntercept
}

// UpperComfortLimit returns the Category II upper comfort bound Top_up for
// a running-mean outdoor temperature, with the three regimes kept as
// independent guarded cases:
//
//	θ_rm < 10 °C  -> fixed 18.0 °C (adaptive formula does not apply)
//	10..30 °C     -> T_op + 4
//	θ_rm > 30 °C  -> clamped at 32.7 °C
func UpperComfortLimit(thetaRM float64) float64 {
	switch {
	case thetaRM < adaptiveLowerThetaRM:
		return coldClimateUpper
	case thetaRM > adaptiveUpperThetaRM:
		return hotClimateUpperCap
	default:
		upper := NeutralTemp(thetaRM) + categoryIIBand
		if upper > hotClimateUpperCap {
			return hotClimateUpperCap
		}
		return upper
	}
}
