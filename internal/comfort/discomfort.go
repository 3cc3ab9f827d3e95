package comfort

import "math"

// WetBulbTemp approximates the wet-bulb temperature (°C) from dry-bulb
// temperature (°C) and relative humidity (%) using Stull (2011). The
// published constants assume RH as a percentage, not a fraction.
func WetBulbTemp(ta, rh float64) float64 {
	return ta*math.Atan(0.151977*math.Sqrt(rh+8.313659)) +
		math.Atan(ta+rh) -
		math.Atan(rh-1.676331) +
		0.00391838*math.Pow(rh, 1.5)*math.Atan(0.023101*rh) -
		4.686035
}

// DiscomfortIndex is the Thom (1959) discomfort index: the mean of the
// outdoor dry-bulb and wet-bulb temperatures.
func DiscomfortIndex(ta, rh float64) float64 {
	return 0.5 * (ta + WetBulbTemp(ta, rh))
}

// Discomfort index bands. Ties resolve to the higher category.
const (
	DILevelComfortable      = "COMFORTABLE"
	DILevelSlightlyUncomf   = "SLIGHTLY UNCOMFORTABLE"
	DILevelUncomfortable    = "UNCOMFORTABLE"
	DILevelVeryUncomf       = "VERY UNCOMFORTABLE"
	DILevelDangerous        = "DANGEROUS"
)

// DiscomfortCategory maps a discomfort index value (°C) to its band.
func DiscomfortCategory(di float64) string {
	switch {
	case di < 21:
		return DILevelComfortable
	case di < 24:
		return DILevelSlightlyUncomf
	case di < 27:
		return DILevelUncomfortable
	case di < 29:
		return DILevelVeryUncomf
	default:
		return DILevelDangerous
	}
}
