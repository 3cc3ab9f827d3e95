package comfort

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Input is everything one invocation of the engine consumes: the parsed
// per-zone hourly series, the outdoor daily history preceding the first
// evaluated day, and the zone selection. The engine holds no state
// between invocations.
type Input struct {
	Series  []ZoneSeries       `json:"series"`
	History []DailyOutdoorTemp `json:"history"` // preceding days, for the running mean
	Zones   []string           `json:"zones"`   // requested subset; empty means every parsed zone
}

// Calculator fans the indicator calculators out across zones and collects
// their results into one canonical ResultSet.
type Calculator struct {
	params         Parameters
	simulation     string
	logger         *slog.Logger
	maxConcurrency int
}

// NewCalculator creates a calculator for one simulation's output.
func NewCalculator(simulation string, params Parameters, logger *slog.Logger) *Calculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{
		params:         params,
		simulation:     simulation,
		logger:         logger,
		maxConcurrency: 4,
	}
}

// SetMaxConcurrency bounds the number of zones processed in parallel.
func (c *Calculator) SetMaxConcurrency(n int) {
	if n > 0 {
		c.maxConcurrency = n
	}
}

// zoneResults holds one zone's computed series keyed by indicator, so the
// final set can be assembled in deterministic indicator-then-zone order
// regardless of worker completion order.
type zoneResults map[Indicator][]IndicatorResult

// Calculate runs every selected indicator over the requested zones.
// Structural failures (unknown zone, missing running-mean history when DDH
// is selected, a zone with no occupied hours for an occupancy-gated
// indicator) abort the whole computation; per-cell gaps such as an
// undefined ALPHA ratio are dropped locally and never abort the batch.
func (c *Calculator) Calculate(ctx context.Context, input Input) (*ResultSet, error) {
	start := time.Now()

	if err := c.params.Validate(); err != nil {
		return nil, err
	}

	byZone := make(map[string]ZoneSeries, len(input.Series))
	for _, zs := range input.Series {
		byZone[zs.Zone] = zs
	}

	zones := input.Zones
	if len(zones) == 0 {
		for _, zs := range input.Series {
			zones = append(zones, zs.Zone)
		}
	}
	if len(zones) == 0 {
		return nil, fmt.Errorf("no zones to calculate")
	}
	for _, zone := range zones {
		if _, ok := byZone[zone]; !ok {
			return nil, &ZoneNotFoundError{Zone: zone}
		}
	}

	c.logger.InfoContext(ctx, "starting indicator calculation",
		"simulation", c.simulation,
		"zones", len(zones),
		"indicators", len(c.params.Indicators),
	)

	// The environment series is shared by every zone; any requested zone's
	// records carry the same outdoor columns.
	envRecords := FilterRecords(byZone[zones[0]].Records, c.params.Range)

	// The running mean for a day inside the range may depend on days just
	// before it, so daily means come from the unfiltered series plus the
	// caller-supplied history.
	var upperByDay map[string]float64
	if c.params.Selected(IndicatorDDH) {
		history := append(append([]DailyOutdoorTemp(nil), input.History...),
			DailyMeans(byZone[zones[0]].Records)...)
		var err error
		upperByDay, err = c.dailyUpperBounds(ctx, history, envRecords)
		if err != nil {
			return nil, fmt.Errorf("derive adaptive comfort bounds: %w", err)
		}
	}

	var sharedAWD []IndicatorResult
	if c.params.Selected(IndicatorAWD) || c.params.Selected(IndicatorALPHA) {
		sharedAWD = AWDSeries(envRecords, c.params)
	}

	perZone := make([]zoneResults, len(zones))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxConcurrency)
	for i, zone := range zones {
		g.Go(func() error {
			records := FilterRecords(byZone[zone].Records, c.params.Range)
			zr, err := c.calculateZone(gctx, zone, records, sharedAWD, upperByDay)
			if err != nil {
				return err
			}
			perZone[i] = zr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		c.logger.ErrorContext(ctx, "indicator calculation failed", "error", err)
		return nil, err
	}

	rs := &ResultSet{Simulation: c.simulation}
	for _, ind := range AllIndicators {
		if !c.params.Selected(ind) {
			continue
		}
		switch ind {
		case IndicatorAWD:
			rs.Append(sharedAWD...)
		case IndicatorAlphaTot:
			filtered := FilterSeries(c.selectSeries(byZone, zones), c.params.Range)
			value, err := AlphaTot(filtered, c.params)
			if err != nil {
				// Undefined ratio is a data gap, not a structural failure.
				c.logger.WarnContext(ctx, "alphatot undefined, omitting", "error", err)
				continue
			}
			rs.Append(IndicatorResult{Zone: AggregateZone, Indicator: IndicatorAlphaTot, Value: value})
		default:
			for _, zr := range perZone {
				rs.Append(zr[ind]...)
			}
		}
	}

	c.logger.InfoContext(ctx, "indicator calculation completed",
		"duration", time.Since(start),
		"results", len(rs.Results),
	)
	return rs, nil
}

// calculateZone runs the zone-level calculators for one zone.
func (c *Calculator) calculateZone(ctx context.Context, zone string, records []HourlyRecord, sharedAWD []IndicatorResult, upperByDay map[string]float64) (zoneResults, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	c.logger.DebugContext(ctx, "calculating zone indicators",
		"zone", zone,
		"records", len(records),
	)

	zr := make(zoneResults)

	var iod []IndicatorResult
	if c.params.Selected(IndicatorIOD) || c.params.Selected(IndicatorALPHA) {
		var err error
		iod, err = IODSeries(zone, records, c.params)
		if err != nil {
			return nil, err
		}
		zr[IndicatorIOD] = iod
	}
	if c.params.Selected(IndicatorALPHA) {
		zr[IndicatorALPHA] = AlphaSeries(zone, iod, sharedAWD)
	}
	if c.params.Selected(IndicatorHI) {
		zr[IndicatorHI] = HISeries(zone, records)
	}
	if c.params.Selected(IndicatorHILevel) {
		zr[IndicatorHILevel] = HILevelSeries(zone, records)
	}
	if c.params.Selected(IndicatorDI) {
		zr[IndicatorDI] = DISeries(zone, records)
	}
	if c.params.Selected(IndicatorDILevel) {
		zr[IndicatorDILevel] = DILevelSeries(zone, records)
	}
	if c.params.Selected(IndicatorDDH) {
		ddh, err := DDH(zone, records, upperByDay)
		if err != nil {
			return nil, err
		}
		zr[IndicatorDDH] = []IndicatorResult{ddh}
	}
	return zr, nil
}

// dailyUpperBounds derives one adaptive upper comfort bound per evaluated
// day from the running mean of the preceding days' outdoor temperatures.
// The bound is reused across all 24 hourly records of that day.
func (c *Calculator) dailyUpperBounds(ctx context.Context, history []DailyOutdoorTemp, records []HourlyRecord) (map[string]float64, error) {
	days := make(map[string]time.Time)
	for _, r := range records {
		days[dayKey(r.Timestamp)] = truncateDay(r.Timestamp)
	}

	upper := make(map[string]float64, len(days))
	for key, day := range days {
		thetaRM, err := RunningMean(history, day)
		if err != nil {
			return nil, err
		}
		upper[key] = UpperComfortLimit(thetaRM)
	}

	c.logger.DebugContext(ctx, "derived adaptive upper bounds", "days", len(upper))
	return upper, nil
}

// selectSeries returns the requested zones' series in request order.
func (c *Calculator) selectSeries(byZone map[string]ZoneSeries, zones []string) []ZoneSeries {
	out := make([]ZoneSeries, 0, len(zones))
	for _, zone := range zones {
		out = append(out, byZone[zone])
	}
	return out
}
