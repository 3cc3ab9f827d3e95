package comfort

// FilterRecords returns the subset of records inside the inclusive
// month/day range, preserving order. A nil range returns the input
// unchanged. Filtering happens before any computation so that both
// temporal series and aggregates (DDH, alphatot) cover only the
// requested period.
func FilterRecords(records []HourlyRecord, dr *DateRange) []HourlyRecord {
	if dr == nil {
		return records
	}
	var out []HourlyRecord
	for _, r := range records {
		if dr.Contains(r.Timestamp) {
			out = append(out, r)
		}
	}
	return out
}

// FilterSeries applies FilterRecords to every zone series.
func FilterSeries(series []ZoneSeries, dr *DateRange) []ZoneSeries {
	if dr == nil {
		return series
	}
	out := make([]ZoneSeries, len(series))
	for i, zs := range series {
		out[i] = ZoneSeries{Zone: zs.Zone, Records: FilterRecords(zs.Records, dr)}
	}
	return out
}
