package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"climametrics/internal/comfort"
)

// EnergyPlus hourly output column patterns. Zone-specific columns are
// prefixed with the upper-cased zone name; environment columns are global.
const (
	colDateTime        = "Date/Time"
	colAirTempSuffix   = ":Zone Mean Air Temperature [C](Hourly)"
	colOperativeSuffix = ":Zone Operative Temperature [C](Hourly)"
	colRadiantSuffix   = ":Zone Mean Radiant Temperature [C](Hourly)"
	colHumiditySuffix  = ":Zone Air Relative Humidity [%](Hourly)"
	colOccupancySuffix = ":Zone People Sensible Heating Rate [W](Hourly)"

	colOutdoorDryBulb  = "Environment:Site Outdoor Air Drybulb Temperature [C](Hourly)"
	colOutdoorDewpoint = "Environment:Site Outdoor Air Dewpoint Temperature [C](Hourly)"
)

// zoneColumns holds the resolved header indices for one zone. A value of
// -1 means the column is absent and the configured default applies.
type zoneColumns struct {
	air       int
	operative int
	radiant   int
	humidity  int
	occupancy int
}

// Parser turns an EnergyPlus simulation output CSV into per-zone hourly
// series. Bad rows are skipped with a warning; absent optional columns
// fall back to configured defaults rather than failing the parse.
type Parser struct {
	logger           *slog.Logger
	year             int
	wattsPerPerson   float64
	defaultHumidity  float64
	defaultOccupancy float64
}

// NewParser creates a parser materializing timestamps into the given year.
func NewParser(year int, wattsPerPerson float64, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	if wattsPerPerson <= 0 {
		wattsPerPerson = comfort.DefaultWattsPerPerson
	}
	return &Parser{
		logger:           logger,
		year:             year,
		wattsPerPerson:   wattsPerPerson,
		defaultHumidity:  comfort.DefaultRelativeHumidity,
		defaultOccupancy: comfort.DefaultOccupancy,
	}
}

// ParseFile reads an EnergyPlus output CSV from disk. An empty zone list
// loads every zone discovered in the header.
func (p *Parser) ParseFile(path string, zones []string) ([]comfort.ZoneSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open simulation output: %w", err)
	}
	defer f.Close()
	return p.Parse(f, zones)
}

// Parse reads an EnergyPlus output CSV stream into zone series.
func (p *Parser) Parse(r io.Reader, zones []string) ([]comfort.ZoneSeries, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(col)] = i
	}

	dateIdx, ok := index[colDateTime]
	if !ok {
		return nil, fmt.Errorf("required column %q not found", colDateTime)
	}
	dryBulbIdx, ok := index[colOutdoorDryBulb]
	if !ok {
		return nil, fmt.Errorf("required column %q not found", colOutdoorDryBulb)
	}
	dewpointIdx := -1
	if i, ok := index[colOutdoorDewpoint]; ok {
		dewpointIdx = i
	}

	available := discoverZones(header)
	if len(available) == 0 {
		return nil, fmt.Errorf("no zone columns found in header")
	}

	if len(zones) == 0 {
		zones = available
	}
	columns := make(map[string]zoneColumns, len(zones))
	for _, zone := range zones {
		cols, ok := p.resolveZone(index, zone)
		if !ok {
			return nil, &comfort.ZoneNotFoundError{Zone: zone}
		}
		columns[zone] = cols
	}

	p.logger.Info("parsing simulation output",
		"zones", len(zones),
		"columns", len(header),
	)

	series := make(map[string]*comfort.ZoneSeries, len(zones))
	for _, zone := range zones {
		series[zone] = &comfort.ZoneSeries{Zone: zone}
	}

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record (line %d): %w", line+1, err)
		}
		line++

		if dateIdx >= len(record) {
			p.logger.Warn("skipping short record", "line", line, "fields", len(record))
			continue
		}
		ts, err := p.parseTimestamp(record[dateIdx])
		if err != nil {
			p.logger.Warn("skipping record with unparseable timestamp",
				"line", line,
				"value", record[dateIdx],
				"error", err,
			)
			continue
		}

		dryBulb, err := parseFloat(record, dryBulbIdx)
		if err != nil {
			p.logger.Warn("skipping record with bad outdoor temperature", "line", line, "error", err)
			continue
		}
		dewpoint := 0.0
		if dewpointIdx >= 0 {
			if v, err := parseFloat(record, dewpointIdx); err == nil {
				dewpoint = v
			}
		}

		for _, zone := range zones {
			rec, err := p.parseZoneRecord(record, columns[zone], ts, zone, dryBulb, dewpoint)
			if err != nil {
				p.logger.Warn("skipping zone record",
					"zone", zone,
					"line", line,
					"error", err,
				)
				continue
			}
			series[zone].Records = append(series[zone].Records, rec)
		}
	}

	out := make([]comfort.ZoneSeries, 0, len(zones))
	for _, zone := range zones {
		out = append(out, *series[zone])
	}
	return out, nil
}

// parseZoneRecord builds one HourlyRecord, substituting defaults for
// columns the output file does not carry.
func (p *Parser) parseZoneRecord(record []string, cols zoneColumns, ts time.Time, zone string, dryBulb, dewpoint float64) (comfort.HourlyRecord, error) {
	air, err := parseFloat(record, cols.air)
	if err != nil {
		return comfort.HourlyRecord{}, fmt.Errorf("air temperature: %w", err)
	}

	radiant := air
	if cols.radiant >= 0 {
		if v, err := parseFloat(record, cols.radiant); err == nil {
			radiant = v
		}
	}

	// Prefer the operative temperature EnergyPlus reports; fall back to
	// the air/radiant mean, then to the air temperature alone.
	operative := air
	if cols.operative >= 0 {
		v, err := parseFloat(record, cols.operative)
		if err != nil {
			return comfort.HourlyRecord{}, fmt.Errorf("operative temperature: %w", err)
		}
		operative = v
	} else if cols.radiant >= 0 {
		operative = (air + radiant) / 2
	}

	humidity := p.defaultHumidity
	if cols.humidity >= 0 {
		if v, err := parseFloat(record, cols.humidity); err == nil {
			humidity = v
		}
	}

	occupancy := p.defaultOccupancy
	if cols.occupancy >= 0 {
		if watts, err := parseFloat(record, cols.occupancy); err == nil {
			occupancy = watts / p.wattsPerPerson
			if occupancy < 0 {
				occupancy = 0
			}
		}
	}

	return comfort.HourlyRecord{
		Timestamp:           ts,
		Zone:                zone,
		OperativeTemp:       operative,
		AirTemp:             air,
		MeanRadiantTemp:     radiant,
		RelativeHumidity:    humidity,
		OutdoorDryBulbTemp:  dryBulb,
		OutdoorDewpointTemp: dewpoint,
		Occupancy:           occupancy,
	}, nil
}

// resolveZone maps one zone's columns from the header index. The air
// temperature column is the minimum for a zone to count as present.
func (p *Parser) resolveZone(index map[string]int, zone string) (zoneColumns, bool) {
	key := strings.ToUpper(zone)
	cols := zoneColumns{air: -1, operative: -1, radiant: -1, humidity: -1, occupancy: -1}

	if i, ok := index[key+colAirTempSuffix]; ok {
		cols.air = i
	} else {
		return cols, false
	}
	if i, ok := index[key+colOperativeSuffix]; ok {
		cols.operative = i
	}
	if i, ok := index[key+colRadiantSuffix]; ok {
		cols.radiant = i
	}
	if i, ok := index[key+colHumiditySuffix]; ok {
		cols.humidity = i
	} else {
		p.logger.Debug("humidity column absent, using default",
			"zone", zone,
			"default", p.defaultHumidity,
		)
	}
	if i, ok := index[key+colOccupancySuffix]; ok {
		cols.occupancy = i
	}
	return cols, true
}

// discoverZones extracts the zone names present in the header, in header
// order, from the mandatory air temperature column.
func discoverZones(header []string) []string {
	var zones []string
	for _, col := range header {
		col = strings.TrimSpace(col)
		if name, ok := strings.CutSuffix(col, colAirTempSuffix); ok {
			zones = append(zones, name)
		}
	}
	return zones
}

// parseTimestamp handles the EnergyPlus "MM/DD  HH:MM:SS" format,
// including the 24:00:00 hour that denotes midnight of the following day,
// and materializes the parser's configured year.
func (p *Parser) parseTimestamp(raw string) (time.Time, error) {
	s := strings.Join(strings.Fields(strings.TrimSpace(raw)), " ")

	rollover := false
	if strings.HasSuffix(s, " 24:00:00") {
		s = strings.TrimSuffix(s, " 24:00:00") + " 00:00:00"
		rollover = true
	}

	formats := []string{"01/02 15:04:05", "01/02/2006 15:04:05", "2006-01-02 15:04:05"}
	var ts time.Time
	var err error
	for _, format := range formats {
		ts, err = time.Parse(format, s)
		if err == nil {
			break
		}
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse timestamp %q", raw)
	}

	ts = time.Date(p.year, ts.Month(), ts.Day(), ts.Hour(), ts.Minute(), ts.Second(), 0, time.UTC)
	if rollover {
		ts = ts.AddDate(0, 0, 1)
	}
	return ts, nil
}

func parseFloat(record []string, idx int) (float64, error) {
	if idx < 0 || idx >= len(record) {
		return 0, fmt.Errorf("column index %d out of range", idx)
	}
	s := strings.TrimSpace(record[idx])
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", s, err)
	}
	return v, nil
}

// OutdoorHistory folds the days strictly before the given date into daily
// mean outdoor temperatures, for seeding the running mean when a date
// range cuts into the middle of the simulated year.
func OutdoorHistory(series []comfort.ZoneSeries, before time.Time) []comfort.DailyOutdoorTemp {
	if len(series) == 0 {
		return nil
	}
	var prior []comfort.HourlyRecord
	for _, r := range series[0].Records {
		if r.Timestamp.Before(before) {
			prior = append(prior, r)
		}
	}
	return comfort.DailyMeans(prior)
}
