package comfort

// Indicator calculators. Each is a stateless transform over one zone's
// chronological hourly series plus the shared parameters; the DDH
// calculator additionally takes the per-day adaptive upper bounds derived
// from the outdoor running mean. Every temperature excess is clamped to
// its positive part before aggregation.

// positivePart is the (x)⁺ operator used by IOD, AWD and DDH.
func positivePart(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}

// IODSeries returns the per-timestep Indoor Overheating Degree for one
// zone: max(Top − comfort_temp, 0) over occupied hours only. Unoccupied
// timesteps produce no result at all, keeping them out of both the
// numerator and the denominator of any downstream mean. A zone with zero
// occupied hours in range fails with NoOccupiedHoursError.
func IODSeries(zone string, records []HourlyRecord, params Parameters) ([]IndicatorResult, error) {
	var out []IndicatorResult
	for _, r := range records {
		if !r.Occupied() {
			continue
		}
		out = append(out, IndicatorResult{
			Zone:      zone,
			Indicator: IndicatorIOD,
			Timestamp: r.Timestamp,
			Value:     positivePart(r.OperativeTemp - params.ComfortTemp),
		})
	}
	if len(out) == 0 {
		return nil, &NoOccupiedHoursError{Zone: zone, Indicator: IndicatorIOD}
	}
	return out, nil
}

// MeanIOD is the whole-period IOD: the mean excess over occupied
// timesteps only.
func MeanIOD(zone string, records []HourlyRecord, params Parameters) (float64, error) {
	sum := 0.0
	n := 0
	for _, r := range records {
		if !r.Occupied() {
			continue
		}
		sum += positivePart(r.OperativeTemp - params.ComfortTemp)
		n++
	}
	if n == 0 {
		return 0, &NoOccupiedHoursError{Zone: zone, Indicator: IndicatorIOD}
	}
	return sum / float64(n), nil
}

// AWDSeries returns the per-timestep Ambient Warmness Degree:
// max(Toutdoor − base_temp, 0) over ALL timesteps, occupancy ignored.
// AWD is climate-only, so it is reported once under the Environment
// pseudo-zone rather than per zone.
func AWDSeries(records []HourlyRecord, params Parameters) []IndicatorResult {
	out := make([]IndicatorResult, 0, len(records))
	for _, r := range records {
		out = append(out, IndicatorResult{
			Zone:      EnvironmentZone,
			Indicator: IndicatorAWD,
			Timestamp: r.Timestamp,
			Value:     positivePart(r.OutdoorDryBulbTemp - params.BaseTemp),
		})
	}
	return out
}

// MeanAWD is the whole-period AWD mean over all timesteps.
func MeanAWD(records []HourlyRecord, params Parameters) float64 {
	if len(records) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range records {
		sum += positivePart(r.OutdoorDryBulbTemp - params.BaseTemp)
	}
	return sum / float64(len(records))
}

// AlphaSeries divides a zone's IOD series by the shared AWD series,
// aligned by timestamp. Cells where AWD is zero are undefined and are
// dropped rather than propagated as infinity; timestamps with no AWD
// value (outside the environment series) are dropped the same way.
func AlphaSeries(zone string, iod, awd []IndicatorResult) []IndicatorResult {
	awdByTime := make(map[int64]float64, len(awd))
	for _, a := range awd {
		awdByTime[a.Timestamp.Unix()] = a.Value
	}

	var out []IndicatorResult
	for _, i := range iod {
		ratio, err := safeRatio(i.Value, awdByTime[i.Timestamp.Unix()])
		if err != nil {
			continue
		}
		out = append(out, IndicatorResult{
			Zone:      zone,
			Indicator: IndicatorALPHA,
			Timestamp: i.Timestamp,
			Value:     ratio,
		})
	}
	return out
}

// safeRatio guards the IOD/AWD division. A zero denominator is reported
// as ErrDivisionByZero so the caller records the cell as missing.
func safeRatio(num, den float64) (float64, error) {
	if den == 0 {
		return 0, ErrDivisionByZero
	}
	return num / den, nil
}

// AlphaTot computes the whole-period aggregate ALPHA: the ratio of the
// period IOD mean across all zones combined to the period AWD mean.
// Undefined (ErrDivisionByZero) when the AWD mean is zero.
func AlphaTot(series []ZoneSeries, params Parameters) (float64, error) {
	iodSum := 0.0
	iodCount := 0
	for _, zs := range series {
		for _, r := range zs.Records {
			if !r.Occupied() {
				continue
			}
			iodSum += positivePart(r.OperativeTemp - params.ComfortTemp)
			iodCount++
		}
	}
	if iodCount == 0 {
		return 0, &NoOccupiedHoursError{Zone: AggregateZone, Indicator: IndicatorAlphaTot}
	}

	var awdMean float64
	if len(series) > 0 {
		awdMean = MeanAWD(series[0].Records, params)
	}
	return safeRatio(iodSum/float64(iodCount), awdMean)
}

// HISeries returns the per-timestep heat index for one zone.
func HISeries(zone string, records []HourlyRecord) []IndicatorResult {
	out := make([]IndicatorResult, 0, len(records))
	for _, r := range records {
		out = append(out, IndicatorResult{
			Zone:      zone,
			Indicator: IndicatorHI,
			Timestamp: r.Timestamp,
			Value:     HeatIndex(r.OperativeTemp, r.RelativeHumidity),
		})
	}
	return out
}

// HILevelSeries classifies the heat index into risk bands per timestep.
func HILevelSeries(zone string, records []HourlyRecord) []IndicatorResult {
	out := make([]IndicatorResult, 0, len(records))
	for _, r := range records {
		hi := HeatIndex(r.OperativeTemp, r.RelativeHumidity)
		out = append(out, IndicatorResult{
			Zone:      zone,
			Indicator: IndicatorHILevel,
			Timestamp: r.Timestamp,
			Value:     hi,
			Label:     HeatIndexCategory(hi),
		})
	}
	return out
}

// DISeries returns the per-timestep discomfort index for one zone, using
// the outdoor dry-bulb temperature and the zone's relative humidity.
func DISeries(zone string, records []HourlyRecord) []IndicatorResult {
	out := make([]IndicatorResult, 0, len(records))
	for _, r := range records {
		out = append(out, IndicatorResult{
			Zone:      zone,
			Indicator: IndicatorDI,
			Timestamp: r.Timestamp,
			Value:     DiscomfortIndex(r.OutdoorDryBulbTemp, r.RelativeHumidity),
		})
	}
	return out
}

// DILevelSeries classifies the discomfort index per timestep.
func DILevelSeries(zone string, records []HourlyRecord) []IndicatorResult {
	out := make([]IndicatorResult, 0, len(records))
	for _, r := range records {
		di := DiscomfortIndex(r.OutdoorDryBulbTemp, r.RelativeHumidity)
		out = append(out, IndicatorResult{
			Zone:      zone,
			Indicator: IndicatorDILevel,
			Timestamp: r.Timestamp,
			Value:     di,
			Label:     DiscomfortCategory(di),
		})
	}
	return out
}

// DDH sums the occupied positive exceedance of the operative temperature
// over the per-day adaptive upper bound across the whole evaluation
// window. It is a running sum, not a mean, and yields a single aggregate
// value per zone with no timestamp. upperByDay maps "2006-01-02" day keys
// to the Top_up derived from that day's running mean.
func DDH(zone string, records []HourlyRecord, upperByDay map[string]float64) (IndicatorResult, error) {
	total := 0.0
	for _, r := range records {
		if !r.Occupied() {
			continue
		}
		upper, ok := upperByDay[dayKey(r.Timestamp)]
		if !ok {
			return IndicatorResult{}, &InsufficientHistoryError{Date: truncateDay(r.Timestamp), Available: 0}
		}
		total += positivePart(r.OperativeTemp - upper)
	}
	return IndicatorResult{
		Zone:      zone,
		Indicator: IndicatorDDH,
		Value:     total,
	}, nil
}
