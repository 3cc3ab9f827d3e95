package comfort

import (
	"sort"
	"time"
)

// Projections of the canonical ResultSet into the three output layouts.
// These are pure reshapes: no new values are computed and every
// IndicatorResult appears exactly once in each projection that covers it.

// WideCell is one zone/timestamp cell of a WIDE table. Absent cells
// (e.g. unoccupied IOD hours or undefined ALPHA ratios) keep Valid false.
type WideCell struct {
	Valid bool
	Value float64
	Label string
}

// WideRow is one timestamp of a WIDE table, one cell per zone column.
type WideRow struct {
	Timestamp time.Time
	Cells     []WideCell
}

// WideTable is the one-column-per-zone layout for a single temporal
// indicator. AWD uses the single Environment column.
type WideTable struct {
	Indicator Indicator
	Zones     []string
	Rows      []WideRow
}

// Wide projects one temporal indicator's results into a WIDE table with
// rows ordered by timestamp and columns in first-appearance zone order.
func Wide(rs *ResultSet, ind Indicator) *WideTable {
	results := rs.ByIndicator(ind)

	var zones []string
	zoneIdx := make(map[string]int)
	for _, r := range results {
		if _, ok := zoneIdx[r.Zone]; !ok {
			zoneIdx[r.Zone] = len(zones)
			zones = append(zones, r.Zone)
		}
	}

	rowIdx := make(map[int64]int)
	var rows []WideRow
	for _, r := range results {
		key := r.Timestamp.Unix()
		i, ok := rowIdx[key]
		if !ok {
			i = len(rows)
			rowIdx[key] = i
			rows = append(rows, WideRow{Timestamp: r.Timestamp, Cells: make([]WideCell, 0)})
		}
		for len(rows[i].Cells) < len(zones) {
			rows[i].Cells = append(rows[i].Cells, WideCell{})
		}
		rows[i].Cells[zoneIdx[r.Zone]] = WideCell{Valid: true, Value: r.Value, Label: r.Label}
	}
	// Late-appearing zones leave earlier rows short.
	for i := range rows {
		for len(rows[i].Cells) < len(zones) {
			rows[i].Cells = append(rows[i].Cells, WideCell{})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Timestamp.Before(rows[j].Timestamp) })

	return &WideTable{Indicator: ind, Zones: zones, Rows: rows}
}

// LongRow is one row of the LONG layout: a single (timestamp, zone,
// indicator, value) observation. Aggregate rows carry a zero Timestamp.
type LongRow struct {
	Timestamp time.Time
	Zone      string
	Indicator Indicator
	Value     float64
	Label     string
}

// Long projects the full result set into LONG rows, preserving the
// canonical result order exactly once per result.
func Long(rs *ResultSet) []LongRow {
	rows := make([]LongRow, 0, len(rs.Results))
	for _, r := range rs.Results {
		rows = append(rows, LongRow{
			Timestamp: r.Timestamp,
			Zone:      r.Zone,
			Indicator: r.Indicator,
			Value:     r.Value,
			Label:     r.Label,
		})
	}
	return rows
}

// WideToLong flattens a WIDE table back into LONG rows, skipping absent
// cells. Together with LongToWide it round-trips the (zone, indicator,
// timestamp, value) set exactly.
func WideToLong(t *WideTable) []LongRow {
	var rows []LongRow
	for _, row := range t.Rows {
		for i, cell := range row.Cells {
			if !cell.Valid {
				continue
			}
			rows = append(rows, LongRow{
				Timestamp: row.Timestamp,
				Zone:      t.Zones[i],
				Indicator: t.Indicator,
				Value:     cell.Value,
				Label:     cell.Label,
			})
		}
	}
	return rows
}

// LongToWide rebuilds a WIDE table for one indicator from LONG rows.
func LongToWide(rows []LongRow, ind Indicator) *WideTable {
	rs := &ResultSet{}
	for _, row := range rows {
		if row.Indicator != ind {
			continue
		}
		rs.Append(IndicatorResult{
			Zone:      row.Zone,
			Indicator: row.Indicator,
			Timestamp: row.Timestamp,
			Value:     row.Value,
			Label:     row.Label,
		})
	}
	return Wide(rs, ind)
}

// UltraLongRow is one row of the fully normalized five-column Power BI
// layout. Temporal rows set HasTime; DDH aggregates keep the zone with no
// timestamp; alphatot carries the "values" pseudo-zone and no timestamp.
type UltraLongRow struct {
	Simulation string
	Indicator  Indicator
	Timestamp  time.Time
	HasTime    bool
	Zone       string
	Value      float64
	Label      string
}

// UltraLong projects the result set into ULTRA-LONG rows, one per result.
// The projection streams in canonical order so callers can write rows as
// they are produced instead of materializing intermediate WIDE tables.
func UltraLong(rs *ResultSet) []UltraLongRow {
	rows := make([]UltraLongRow, 0, len(rs.Results))
	for _, r := range rs.Results {
		rows = append(rows, UltraLongRow{
			Simulation: rs.Simulation,
			Indicator:  r.Indicator,
			Timestamp:  r.Timestamp,
			HasTime:    r.HasTimestamp(),
			Zone:       r.Zone,
			Value:      r.Value,
			Label:      r.Label,
		})
	}
	return rows
}

// StreamUltraLong invokes fn for every ULTRA-LONG row in canonical order
// without building the full slice; the ULTRA-LONG layout has the largest
// row blow-up and is the one worth streaming for year-long multi-zone runs.
func StreamUltraLong(rs *ResultSet, fn func(UltraLongRow) error) error {
	for _, r := range rs.Results {
		row := UltraLongRow{
			Simulation: rs.Simulation,
			Indicator:  r.Indicator,
			Timestamp:  r.Timestamp,
			HasTime:    r.HasTimestamp(),
			Zone:       r.Zone,
			Value:      r.Value,
			Label:      r.Label,
		}
		if err := fn(row); err != nil {
			return err
		}
	}
	return nil
}
