package comfort

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// buildDay produces 24 hourly records for one zone and day: warm afternoon,
// occupied 9..17.
func buildDay(zone string, date time.Time, peakTop float64) []HourlyRecord {
	var records []HourlyRecord
	for h := 0; h < 24; h++ {
		top := 24.0
		if h >= 12 && h <= 16 {
			top = peakTop
		}
		occ := 0.0
		if h >= 9 && h <= 17 {
			occ = 4.0
		}
		records = append(records, HourlyRecord{
			Timestamp:          time.Date(date.Year(), date.Month(), date.Day(), h, 0, 0, 0, time.UTC),
			Zone:               zone,
			OperativeTemp:      top,
			AirTemp:            top,
			MeanRadiantTemp:    top,
			RelativeHumidity:   55,
			OutdoorDryBulbTemp: 28,
			Occupancy:          occ,
		})
	}
	return records
}

func testInput() Input {
	date := time.Date(2020, 7, 15, 0, 0, 0, 0, time.UTC)
	history := sevenDayHistory(date, [7]float64{20, 22, 23, 25, 26, 28, 30})
	return Input{
		Series: []ZoneSeries{
			{Zone: "Office", Records: buildDay("Office", date, 33.0)},
			{Zone: "Lab", Records: buildDay("Lab", date, 29.0)},
		},
		History: history,
	}
}

func TestCalculatorCalculate(t *testing.T) {
	params := DefaultParameters()
	calc := NewCalculator("Baseline", params, testLogger())

	rs, err := calc.Calculate(context.Background(), testInput())
	require.NoError(t, err)
	assert.Equal(t, "Baseline", rs.Simulation)

	t.Run("occupancy gated IOD", func(t *testing.T) {
		iod := rs.ByIndicator(IndicatorIOD)
		// 9 occupied hours per zone, 2 zones.
		assert.Len(t, iod, 18)
		for _, r := range iod {
			assert.GreaterOrEqual(t, r.Value, 0.0)
		}
	})

	t.Run("AWD computed once under Environment", func(t *testing.T) {
		awd := rs.ByIndicator(IndicatorAWD)
		require.Len(t, awd, 24) // one per timestep, not per zone
		for _, r := range awd {
			assert.Equal(t, EnvironmentZone, r.Zone)
			assert.InDelta(t, 10.0, r.Value, 1e-9) // 28 − 18
		}
	})

	t.Run("DDH one aggregate per zone", func(t *testing.T) {
		ddh := rs.ByIndicator(IndicatorDDH)
		require.Len(t, ddh, 2)
		// θ_rm = 26.39 gives Top_up ≈ 31.51; Office peaks at 33.0 for
		// 5 occupied hours, Lab stays under the bound.
		byZone := map[string]float64{}
		for _, r := range ddh {
			assert.False(t, r.HasTimestamp())
			byZone[r.Zone] = r.Value
		}
		assert.InDelta(t, 5*(33.0-31.51), byZone["Office"], 0.05)
		assert.InDelta(t, 0.0, byZone["Lab"], 1e-9)
	})

	t.Run("alphatot single global aggregate", func(t *testing.T) {
		tot := rs.ByIndicator(IndicatorAlphaTot)
		require.Len(t, tot, 1)
		assert.Equal(t, AggregateZone, tot[0].Zone)
		assert.False(t, tot[0].HasTimestamp())
	})

	t.Run("every result appears once in ultra long", func(t *testing.T) {
		assert.Len(t, UltraLong(rs), len(rs.Results))
	})
}

func TestCalculatorZoneNotFound(t *testing.T) {
	params := DefaultParameters()
	calc := NewCalculator("Baseline", params, testLogger())

	input := testInput()
	input.Zones = []string{"Office", "Basement"}

	_, err := calc.Calculate(context.Background(), input)
	var notFound *ZoneNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "Basement", notFound.Zone)
}

func TestCalculatorDDHWithoutCallerHistory(t *testing.T) {
	t.Run("single day seeds from its own mean", func(t *testing.T) {
		input := testInput()
		input.History = nil

		params := DefaultParameters()
		calc := NewCalculator("Baseline", params, testLogger())

		rs, err := calc.Calculate(context.Background(), input)
		require.NoError(t, err)

		// Outdoor is a flat 28 °C, so θ_rm = 28 and the upper bound is
		// 0.33·28 + 18.8 + 4 = 32.04. Office peaks at 33 for the five
		// occupied hours 12..16.
		var office float64
		for _, r := range rs.ByIndicator(IndicatorDDH) {
			if r.Zone == "Office" {
				office = r.Value
			}
		}
		assert.InDelta(t, 5*(33.0-32.04), office, 0.05)
	})

	t.Run("full multi-day series never aborts", func(t *testing.T) {
		start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
		var records []HourlyRecord
		for d := 0; d < 8; d++ {
			records = append(records, buildDay("Office", start.AddDate(0, 0, d), 33.0)...)
		}
		input := Input{Series: []ZoneSeries{{Zone: "Office", Records: records}}}

		calc := NewCalculator("Baseline", DefaultParameters(), testLogger())
		rs, err := calc.Calculate(context.Background(), input)
		require.NoError(t, err)
		assert.Len(t, rs.ByIndicator(IndicatorDDH), 1)
	})
}

func TestCalculatorNoOccupiedHoursAborts(t *testing.T) {
	date := time.Date(2020, 7, 15, 0, 0, 0, 0, time.UTC)
	records := buildDay("Warehouse", date, 33.0)
	for i := range records {
		records[i].Occupancy = 0
	}

	params := DefaultParameters()
	params.Indicators = []Indicator{IndicatorIOD}
	calc := NewCalculator("Baseline", params, testLogger())

	_, err := calc.Calculate(context.Background(), Input{
		Series: []ZoneSeries{{Zone: "Warehouse", Records: records}},
	})
	var noOcc *NoOccupiedHoursError
	require.True(t, errors.As(err, &noOcc))
	assert.Equal(t, "Warehouse", noOcc.Zone)
}

func TestCalculatorDateRangeFilter(t *testing.T) {
	july := time.Date(2020, 7, 15, 0, 0, 0, 0, time.UTC)
	august := time.Date(2020, 8, 15, 0, 0, 0, 0, time.UTC)

	series := ZoneSeries{Zone: "Office"}
	series.Records = append(series.Records, buildDay("Office", july, 33.0)...)
	series.Records = append(series.Records, buildDay("Office", august, 33.0)...)

	dr, err := ParseDateRange("07/01", "07/31")
	require.NoError(t, err)

	params := DefaultParameters()
	params.Indicators = []Indicator{IndicatorHI}
	params.Range = dr
	calc := NewCalculator("Baseline", params, testLogger())

	rs, err := calc.Calculate(context.Background(), Input{Series: []ZoneSeries{series}})
	require.NoError(t, err)

	hi := rs.ByIndicator(IndicatorHI)
	require.Len(t, hi, 24)
	for _, r := range hi {
		assert.Equal(t, time.July, r.Timestamp.Month())
	}
}

func TestParseIndicator(t *testing.T) {
	ind, err := ParseIndicator("DDH")
	require.NoError(t, err)
	assert.Equal(t, IndicatorDDH, ind)

	_, err = ParseIndicator("bogus")
	assert.Error(t, err)
}

func TestParseDateRange(t *testing.T) {
	t.Run("both empty means no filter", func(t *testing.T) {
		dr, err := ParseDateRange("", "")
		require.NoError(t, err)
		assert.Nil(t, dr)
		assert.True(t, dr.Contains(time.Now()))
	})

	t.Run("inclusive bounds", func(t *testing.T) {
		dr, err := ParseDateRange("06/22", "08/30")
		require.NoError(t, err)
		assert.True(t, dr.Contains(time.Date(2020, 6, 22, 0, 0, 0, 0, time.UTC)))
		assert.True(t, dr.Contains(time.Date(2020, 8, 30, 23, 0, 0, 0, time.UTC)))
		assert.False(t, dr.Contains(time.Date(2020, 6, 21, 23, 0, 0, 0, time.UTC)))
		assert.False(t, dr.Contains(time.Date(2020, 8, 31, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("malformed input", func(t *testing.T) {
		_, err := ParseDateRange("22-06", "")
		assert.Error(t, err)
	})
}
