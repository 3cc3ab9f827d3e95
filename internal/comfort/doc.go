// Package comfort implements the thermal comfort indicator engine for
// building-energy simulation output.
//
// The engine turns per-zone hourly series (operative temperature,
// humidity, occupancy, outdoor conditions) into comfort indicators and
// reshaped result layouts:
//
//  1. IOD: Indoor Overheating Degree, operative excess over the comfort
//     temperature during occupied hours
//  2. AWD: Ambient Warmness Degree, outdoor excess over the base
//     temperature for all hours (climate only, zone independent)
//  3. ALPHA / alphatot: overheating escalator factor, IOD relative to AWD
//  4. HI / HIlevel: Rothfusz heat index and its risk bands
//  5. DDH: degree-weighted discomfort hours against the EN 15251 adaptive
//     comfort upper bound derived from the outdoor running mean
//  6. DI / DIlevel: Thom discomfort index via the Stull wet-bulb
//     approximation and its bands
//
// # Architecture
//
//   - types.go: indicator enumeration, hourly records, result collection
//   - params.go: explicit immutable configuration threaded through calls
//   - runningmean.go: exponentially weighted outdoor running mean
//   - adaptive.go: EN 15251 neutral temperature and Category II bound
//   - heatindex.go, discomfort.go: piecewise published formulas
//   - indicators.go: one stateless calculator per indicator
//   - calculator.go: fan-out across zones, shared environment indicators
//   - reshape.go: WIDE / LONG / ULTRA-LONG projections of the result set
//   - filter.go: month/day range filtering ahead of any aggregation
//
// # Usage Example
//
//	params := comfort.DefaultParameters()
//	calc := comfort.NewCalculator("Baseline", params, slog.Default())
//	results, err := calc.Calculate(ctx, comfort.Input{Series: series, History: history})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	table := comfort.Wide(results, comfort.IndicatorIOD)
package comfort
