package comfort

import (
	"fmt"
	"time"
)

// Indicator identifies a thermal comfort indicator.
type Indicator string

const (
	// IndicatorIOD is the Indoor Overheating Degree (°C, occupied hours only)
	IndicatorIOD Indicator = "IOD"
	// IndicatorAWD is the Ambient Warmness Degree (°C, all hours, climate only)
	IndicatorAWD Indicator = "AWD"
	// IndicatorALPHA is the Overheating Escalator Factor (IOD/AWD, dimensionless)
	IndicatorALPHA Indicator = "ALPHA"
	// IndicatorHI is the Heat Index apparent temperature (°C)
	IndicatorHI Indicator = "HI"
	// IndicatorHILevel is the categorical Heat Index risk band
	IndicatorHILevel Indicator = "HIlevel"
	// IndicatorDDH is the Degree-weighted Discomfort Hours aggregate (°C·h)
	IndicatorDDH Indicator = "DDH"
	// IndicatorDI is the Thom Discomfort Index (°C)
	IndicatorDI Indicator = "DI"
	// IndicatorDILevel is the categorical Discomfort Index band
	IndicatorDILevel Indicator = "DIlevel"
	// IndicatorAlphaTot is the whole-period global ALPHA aggregate
	IndicatorAlphaTot Indicator = "alphatot"
)

// AllIndicators lists every supported indicator in output order.
var AllIndicators = []Indicator{
	IndicatorIOD,
	IndicatorAWD,
	IndicatorALPHA,
	IndicatorHI,
	IndicatorHILevel,
	IndicatorDDH,
	IndicatorDI,
	IndicatorDILevel,
	IndicatorAlphaTot,
}

// ParseIndicator maps a name to an Indicator. Unknown names fail fast
// rather than being silently ignored.
func ParseIndicator(name string) (Indicator, error) {
	for _, ind := range AllIndicators {
		if string(ind) == name {
			return ind, nil
		}
	}
	return "", fmt.Errorf("unknown indicator %q", name)
}

// IsTemporal reports whether the indicator carries one value per timestep.
// Aggregate indicators (DDH, alphatot) carry a single value per zone or globally.
func (i Indicator) IsTemporal() bool {
	switch i {
	case IndicatorDDH, IndicatorAlphaTot:
		return false
	default:
		return true
	}
}

// IsCategorical reports whether the indicator's values are risk-band labels
// rather than numbers.
func (i Indicator) IsCategorical() bool {
	return i == IndicatorHILevel || i == IndicatorDILevel
}

// EnvironmentZone is the pseudo-zone label for climate-only indicators (AWD).
const EnvironmentZone = "Environment"

// AggregateZone is the pseudo-zone label carried by global aggregates (alphatot).
const AggregateZone = "values"

// HourlyRecord is one timestep of simulation output for one zone.
// Records are parsed upstream and are never mutated by the engine.
type HourlyRecord struct {
	Timestamp            time.Time `json:"timestamp"`
	Zone                 string    `json:"zone"`
	OperativeTemp        float64   `json:"operative_temp"`        // °C
	AirTemp              float64   `json:"air_temp"`              // °C
	MeanRadiantTemp      float64   `json:"mean_radiant_temp"`     // °C
	RelativeHumidity     float64   `json:"relative_humidity"`     // % in [0,100]
	OutdoorDryBulbTemp   float64   `json:"outdoor_dry_bulb_temp"` // °C
	OutdoorDewpointTemp  float64   `json:"outdoor_dewpoint_temp"` // °C
	Occupancy            float64   `json:"occupancy"`             // derived people count, >= 0
}

// Occupied reports whether the zone was in use at this timestep.
func (r HourlyRecord) Occupied() bool {
	return r.Occupancy > 0
}

// ZoneSeries is the chronologically ordered hourly series for one zone.
type ZoneSeries struct {
	Zone    string         `json:"zone"`
	Records []HourlyRecord `json:"records"`
}

// DailyOutdoorTemp is one calendar day's mean outdoor dry-bulb temperature,
// used to seed the running-mean history before the evaluation range.
type DailyOutdoorTemp struct {
	Date     time.Time `json:"date"`
	MeanTemp float64   `json:"mean_temp"` // °C
}

// IndicatorResult is one computed value keyed by zone, indicator and,
// for temporal indicators, timestamp. Aggregates leave Timestamp zero.
type IndicatorResult struct {
	Zone      string    `json:"zone"`
	Indicator Indicator `json:"indicator"`
	Timestamp time.Time `json:"timestamp,omitempty"`
	Value     float64   `json:"value"`
	Label     string    `json:"label,omitempty"` // set for categorical indicators
}

// HasTimestamp reports whether this is a temporal (per-timestep) result.
func (r IndicatorResult) HasTimestamp() bool {
	return !r.Timestamp.IsZero()
}

// ResultSet is the canonical in-memory collection every output layout is
// projected from. Results are appended in computation order; projections
// must preserve each result exactly once.
type ResultSet struct {
	Simulation string            `json:"simulation"`
	Results    []IndicatorResult `json:"results"`
}

// Append adds results to the set.
func (rs *ResultSet) Append(results ...IndicatorResult) {
	rs.Results = append(rs.Results, results...)
}

// ByIndicator returns the subset of results for one indicator,
// preserving order.
func (rs *ResultSet) ByIndicator(ind Indicator) []IndicatorResult {
	var out []IndicatorResult
	for _, r := range rs.Results {
		if r.Indicator == ind {
			out = append(out, r)
		}
	}
	return out
}

// Zones returns the distinct real zone names present in the set, in first
// appearance order. Pseudo-zones (Environment, values) are excluded.
func (rs *ResultSet) Zones() []string {
	seen := make(map[string]bool)
	var zones []string
	for _, r := range rs.Results {
		if r.Zone == EnvironmentZone || r.Zone == AggregateZone {
			continue
		}
		if !seen[r.Zone] {
			seen[r.Zone] = true
			zones = append(zones, r.Zone)
		}
	}
	return zones
}
