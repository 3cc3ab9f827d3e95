package comfort

// Rothfusz heat index regression coefficients, V4 variant for Celsius
// inputs with relative humidity as a percentage.
const (
	hiC1 = -8.784694
	hiC2 = 1.611394
	hiC3 = 2.338548
	hiC4 = -0.146116
	hiC5 = -0.012308
	hiC6 = -0.016424
	hiC7 = 0.002211
	hiC8 = 0.000725
	hiC9 = -0.000003
)

// Below this temperature, or below 40 % RH, the regression is not valid
// and the heat index equals the temperature itself. The discontinuity at
// the branch boundary is part of the published definition.
const (
	hiSimpleBranchTemp = 26.7
	hiSimpleBranchRH   = 40.0
)

// HeatIndex returns the apparent temperature for an operative temperature
// (°C) and relative humidity (%). RH is clamped into [0,100] first.
func HeatIndex(temp, rh float64) float64 {
	rh = clampRH(rh)
	if temp <= hiSimpleBranchTemp || rh < hiSimpleBranchRH {
		return temp
	}
	t2 := temp * temp
	rh2 := rh * rh
	return hiC1 +
		hiC2*temp +
		hiC3*rh +
		hiC4*temp*rh +
		hiC5*t2 +
		hiC6*rh2 +
		hiC7*t2*rh +
		hiC8*temp*rh2 +
		hiC9*t2*rh2
}

// Heat index risk bands. Ties resolve to the higher category.
const (
	HILevelSafe           = "SAFE CONDITION"
	HILevelCaution        = "CAUTION"
	HILevelExtremeCaution = "EXTREME CAUTION"
	HILevelDanger         = "DANGER"
	HILevelExtremeDanger  = "EXTREME DANGER"
)

// HeatIndexCategory maps a heat index value (°C) to its risk band.
func HeatIndexCategory(hi float64) string {
	switch {
	case hi < 27:
		return HILevelSafe
	case hi < 32:
		return HILevelCaution
	case hi < 41:
		return HILevelExtremeCaution
	case hi < 54:
		return HILevelDanger
	default:
		return HILevelExtremeDanger
	}
}

func clampRH(rh float64) float64 {
	if rh < 0 {
		return 0
	}
	if rh > 100 {
		return 100
	}
	return rh
}
