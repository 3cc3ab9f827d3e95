package dataprocessing

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"climametrics/internal/comfort"
)

func testParser(t *testing.T) *Parser {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewParser(2020, 100.0, logger)
}

const sampleHeader = "Date/Time," +
	"Environment:Site Outdoor Air Drybulb Temperature [C](Hourly)," +
	"Environment:Site Outdoor Air Dewpoint Temperature [C](Hourly)," +
	"OFFICE:Zone Mean Air Temperature [C](Hourly)," +
	"OFFICE:Zone Operative Temperature [C](Hourly)," +
	"OFFICE:Zone Air Relative Humidity [%](Hourly)," +
	"OFFICE:Zone People Sensible Heating Rate [W](Hourly)," +
	"LAB:Zone Mean Air Temperature [C](Hourly)," +
	"LAB:Zone Mean Radiant Temperature [C](Hourly)\n"

func TestParse_ZoneDiscoveryAndValues(t *testing.T) {
	input := sampleHeader +
		" 07/15  09:00:00,28.0,16.0,27.5,28.1,55.0,400.0,24.0,26.0\n" +
		" 07/15  10:00:00,29.0,16.5,28.0,28.6,54.0,0.0,24.5,26.5\n"

	series, err := testParser(t).Parse(strings.NewReader(input), nil)
	require.NoError(t, err)
	require.Len(t, series, 2)

	office := series[0]
	assert.Equal(t, "OFFICE", office.Zone)
	require.Len(t, office.Records, 2)

	first := office.Records[0]
	assert.Equal(t, time.Date(2020, 7, 15, 9, 0, 0, 0, time.UTC), first.Timestamp)
	assert.InDelta(t, 28.1, first.OperativeTemp, 1e-9)
	assert.InDelta(t, 27.5, first.AirTemp, 1e-9)
	assert.InDelta(t, 55.0, first.RelativeHumidity, 1e-9)
	assert.InDelta(t, 28.0, first.OutdoorDryBulbTemp, 1e-9)
	assert.InDelta(t, 16.0, first.OutdoorDewpointTemp, 1e-9)

	// 400 W at 100 W/person is four occupants.
	assert.InDelta(t, 4.0, first.Occupancy, 1e-9)
	assert.True(t, first.Occupied())
	assert.False(t, office.Records[1].Occupied())

	lab := series[1]
	assert.Equal(t, "LAB", lab.Zone)
	require.Len(t, lab.Records, 2)

	// LAB has no operative column: fall back to the air/radiant mean,
	// and no humidity or occupancy columns: defaults apply.
	assert.InDelta(t, 25.0, lab.Records[0].OperativeTemp, 1e-9)
	assert.InDelta(t, comfort.DefaultRelativeHumidity, lab.Records[0].RelativeHumidity, 1e-9)
	assert.InDelta(t, comfort.DefaultOccupancy, lab.Records[0].Occupancy, 1e-9)
}

func TestParse_ZoneSelection(t *testing.T) {
	input := sampleHeader +
		" 07/15  09:00:00,28.0,16.0,27.5,28.1,55.0,400.0,24.0,26.0\n"

	t.Run("subset", func(t *testing.T) {
		series, err := testParser(t).Parse(strings.NewReader(input), []string{"LAB"})
		require.NoError(t, err)
		require.Len(t, series, 1)
		assert.Equal(t, "LAB", series[0].Zone)
	})

	t.Run("case insensitive", func(t *testing.T) {
		series, err := testParser(t).Parse(strings.NewReader(input), []string{"Office"})
		require.NoError(t, err)
		require.Len(t, series, 1)
		assert.Equal(t, "Office", series[0].Zone)
	})

	t.Run("unknown zone", func(t *testing.T) {
		_, err := testParser(t).Parse(strings.NewReader(input), []string{"BASEMENT"})
		var znf *comfort.ZoneNotFoundError
		require.ErrorAs(t, err, &znf)
		assert.Equal(t, "BASEMENT", znf.Zone)
	})
}

func TestParse_MidnightRollover(t *testing.T) {
	input := sampleHeader +
		" 07/15  23:00:00,22.0,14.0,26.0,26.5,50.0,0.0,24.0,25.0\n" +
		" 07/15  24:00:00,21.0,13.5,25.5,26.0,51.0,0.0,23.5,24.5\n"

	series, err := testParser(t).Parse(strings.NewReader(input), []string{"OFFICE"})
	require.NoError(t, err)
	records := series[0].Records
	require.Len(t, records, 2)

	assert.Equal(t, time.Date(2020, 7, 15, 23, 0, 0, 0, time.UTC), records[0].Timestamp)
	assert.Equal(t, time.Date(2020, 7, 16, 0, 0, 0, 0, time.UTC), records[1].Timestamp)
}

func TestParse_SkipsBadRows(t *testing.T) {
	input := sampleHeader +
		" 07/15  09:00:00,28.0,16.0,27.5,28.1,55.0,400.0,24.0,26.0\n" +
		" not-a-date,28.0,16.0,27.5,28.1,55.0,400.0,24.0,26.0\n" +
		" 07/15  11:00:00,broken,16.0,27.5,28.1,55.0,400.0,24.0,26.0\n" +
		" 07/15  12:00:00,30.0,17.0,29.0,29.5,53.0,400.0,25.0,27.0\n"

	series, err := testParser(t).Parse(strings.NewReader(input), []string{"OFFICE"})
	require.NoError(t, err)
	require.Len(t, series[0].Records, 2)
	assert.Equal(t, 9, series[0].Records[0].Timestamp.Hour())
	assert.Equal(t, 12, series[0].Records[1].Timestamp.Hour())
}

func TestParse_HeaderErrors(t *testing.T) {
	t.Run("missing date column", func(t *testing.T) {
		input := "OFFICE:Zone Mean Air Temperature [C](Hourly)\n26.0\n"
		_, err := testParser(t).Parse(strings.NewReader(input), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Date/Time")
	})

	t.Run("missing outdoor column", func(t *testing.T) {
		input := "Date/Time,OFFICE:Zone Mean Air Temperature [C](Hourly)\n 07/15  09:00:00,26.0\n"
		_, err := testParser(t).Parse(strings.NewReader(input), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Outdoor Air Drybulb")
	})

	t.Run("no zones", func(t *testing.T) {
		input := "Date/Time,Environment:Site Outdoor Air Drybulb Temperature [C](Hourly)\n"
		_, err := testParser(t).Parse(strings.NewReader(input), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no zone columns")
	})
}

func TestOutdoorHistory(t *testing.T) {
	mk := func(day, hour int, outdoor float64) comfort.HourlyRecord {
		return comfort.HourlyRecord{
			Timestamp:          time.Date(2020, 7, day, hour, 0, 0, 0, time.UTC),
			Zone:               "OFFICE",
			OutdoorDryBulbTemp: outdoor,
		}
	}
	series := []comfort.ZoneSeries{{
		Zone: "OFFICE",
		Records: []comfort.HourlyRecord{
			mk(13, 0, 20.0), mk(13, 12, 24.0),
			mk(14, 0, 21.0), mk(14, 12, 25.0),
			mk(15, 0, 22.0), mk(15, 12, 26.0),
		},
	}}

	history := OutdoorHistory(series, time.Date(2020, 7, 15, 0, 0, 0, 0, time.UTC))
	require.Len(t, history, 2)
	assert.Equal(t, time.Date(2020, 7, 13, 0, 0, 0, 0, time.UTC), history[0].Date)
	assert.InDelta(t, 22.0, history[0].MeanTemp, 1e-9)
	assert.InDelta(t, 23.0, history[1].MeanTemp, 1e-9)

	assert.Empty(t, OutdoorHistory(nil, time.Now()))
}
