package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"climametrics/internal/comfort"
)

func sampleResultSet() *comfort.ResultSet {
	ts := func(h int) time.Time {
		return time.Date(2020, 7, 15, h, 0, 0, 0, time.UTC)
	}
	rs := &comfort.ResultSet{Simulation: "baseline"}
	rs.Append(comfort.IndicatorResult{Zone: "Office", Indicator: comfort.IndicatorIOD, Timestamp: ts(9), Value: 1.5})
	rs.Append(comfort.IndicatorResult{Zone: "Office", Indicator: comfort.IndicatorIOD, Timestamp: ts(10), Value: 2.5})
	rs.Append(comfort.IndicatorResult{Zone: "Lab", Indicator: comfort.IndicatorIOD, Timestamp: ts(9), Value: 0})
	rs.Append(comfort.IndicatorResult{Zone: "Lab", Indicator: comfort.IndicatorIOD, Timestamp: ts(10), Value: 0.5})
	rs.Append(comfort.IndicatorResult{Zone: "Office", Indicator: comfort.IndicatorHILevel, Timestamp: ts(9), Value: 29.0, Label: comfort.HILevelCaution})
	rs.Append(comfort.IndicatorResult{Zone: comfort.EnvironmentZone, Indicator: comfort.IndicatorAWD, Timestamp: ts(9), Value: 10.0})
	rs.Append(comfort.IndicatorResult{Zone: "Office", Indicator: comfort.IndicatorDDH, Value: 14.9})
	rs.Append(comfort.IndicatorResult{Zone: "Lab", Indicator: comfort.IndicatorDDH, Value: 0})
	rs.Append(comfort.IndicatorResult{Zone: comfort.AggregateZone, Indicator: comfort.IndicatorAlphaTot, Value: 0.25})
	return rs
}

func readCSV(t *testing.T, path string, delimiter rune) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := strings.TrimPrefix(string(data), "\xEF\xBB\xBF")
	reader := csv.NewReader(strings.NewReader(content))
	if delimiter != 0 {
		reader.Comma = delimiter
	}
	records, err := reader.ReadAll()
	require.NoError(t, err)
	return records
}

func TestCSVWriter_WriteSimpleCSV(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	err := writer.WriteSimpleCSV("nested/out.csv",
		[]string{"a", "b"},
		[][]string{{"1", "2"}, {"3", "4"}})
	require.NoError(t, err)

	path := filepath.Join(dir, "nested", "out.csv")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "\xEF\xBB\xBF"), "expected UTF-8 BOM")

	records := readCSV(t, path, 0)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"a", "b"}, records[0])
	assert.Equal(t, []string{"3", "4"}, records[2])
}

func TestCSVWriter_StreamWriter(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	stream, err := writer.CreateStreamWriter("stream.csv", []string{"x"})
	require.NoError(t, err)
	require.NoError(t, stream.WriteRecord([]string{"1"}))
	require.NoError(t, stream.WriteRecord([]string{"2"}))
	require.NoError(t, stream.Close())

	records := readCSV(t, filepath.Join(dir, "stream.csv"), 0)
	assert.Equal(t, [][]string{{"x"}, {"1"}, {"2"}}, records)
}

func TestWideExporter_Export(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewWideExporter(dir).Export(sampleResultSet()))

	t.Run("temporal indicator", func(t *testing.T) {
		records := readCSV(t, filepath.Join(dir, "IOD_baseline.csv"), 0)
		require.Len(t, records, 3)
		assert.Equal(t, []string{"DateTime", "Office", "Lab"}, records[0])
		assert.Equal(t, []string{"2020-07-15 09:00:00", "1.5", "0"}, records[1])
		assert.Equal(t, []string{"2020-07-15 10:00:00", "2.5", "0.5"}, records[2])
	})

	t.Run("environment indicator", func(t *testing.T) {
		records := readCSV(t, filepath.Join(dir, "AWD_baseline.csv"), 0)
		require.Len(t, records, 2)
		assert.Equal(t, []string{"DateTime", comfort.EnvironmentZone}, records[0])
		assert.Equal(t, []string{"2020-07-15 09:00:00", "10"}, records[1])
	})

	t.Run("categorical labels", func(t *testing.T) {
		records := readCSV(t, filepath.Join(dir, "HIlevel_baseline.csv"), 0)
		require.Len(t, records, 2)
		assert.Equal(t, comfort.HILevelCaution, records[1][1])
	})

	t.Run("aggregate indicator", func(t *testing.T) {
		records := readCSV(t, filepath.Join(dir, "DDH_baseline.csv"), 0)
		require.Len(t, records, 2)
		assert.Equal(t, []string{"DateTime", "Office", "Lab"}, records[0])
		assert.Equal(t, []string{"", "14.9", "0"}, records[1])
	})

	t.Run("unselected indicator has no file", func(t *testing.T) {
		_, err := os.Stat(filepath.Join(dir, "DI_baseline.csv"))
		assert.True(t, os.IsNotExist(err))
	})
}

func TestLongExporter_Export(t *testing.T) {
	dir := t.TempDir()
	rs := sampleResultSet()
	require.NoError(t, NewLongExporter(dir).Export(rs, "long.csv"))

	records := readCSV(t, filepath.Join(dir, "long.csv"), ';')
	require.Len(t, records, len(rs.Results)+1)
	assert.Equal(t, []string{"Date/Time", "Zone", "Indicator", "Value", "Simulation"}, records[0])
	assert.Equal(t, []string{"2020-07-15 09:00:00", "Office", "IOD", "1.5", "baseline"}, records[1])

	last := records[len(records)-1]
	assert.Equal(t, []string{"", comfort.AggregateZone, "alphatot", "0.25", "baseline"}, last)
}

func TestLongExporter_NoSimulationColumn(t *testing.T) {
	dir := t.TempDir()
	rs := sampleResultSet()
	rs.Simulation = ""
	require.NoError(t, NewLongExporter(dir).Export(rs, "long.csv"))

	records := readCSV(t, filepath.Join(dir, "long.csv"), ';')
	assert.Equal(t, []string{"Date/Time", "Zone", "Indicator", "Value"}, records[0])
	for _, record := range records {
		assert.Len(t, record, 4)
	}
}

func TestPowerBIExporter_Export(t *testing.T) {
	dir := t.TempDir()
	rs := sampleResultSet()
	require.NoError(t, NewPowerBIExporter(dir).Export(rs, "powerbi.csv"))

	records := readCSV(t, filepath.Join(dir, "powerbi.csv"), 0)
	require.Len(t, records, len(rs.Results)+1)
	assert.Equal(t, []string{"Simulation", "Indicator", "DateTime", "Zone", "Value"}, records[0])

	byIndicatorZone := make(map[string][]string)
	for _, record := range records[1:] {
		byIndicatorZone[record[1]+"/"+record[3]] = record
	}

	ddh := byIndicatorZone["DDH/Office"]
	require.NotNil(t, ddh)
	assert.Equal(t, "", ddh[2], "aggregate rows carry no timestamp")
	assert.Equal(t, "14.9", ddh[4])

	alphatot := byIndicatorZone["alphatot/"+comfort.AggregateZone]
	require.NotNil(t, alphatot)
	assert.Equal(t, "", alphatot[2])
	assert.Equal(t, "0.25", alphatot[4])

	hilevel := byIndicatorZone["HIlevel/Office"]
	require.NotNil(t, hilevel)
	assert.Equal(t, "2020-07-15 09:00:00", hilevel[2])
	assert.Equal(t, comfort.HILevelCaution, hilevel[4])
}

func TestExcelExporter_Export(t *testing.T) {
	dir := t.TempDir()
	rs := sampleResultSet()
	require.NoError(t, NewExcelExporter(dir).Export(rs, "indicators.xlsx"))

	f, err := excelize.OpenFile(filepath.Join(dir, "indicators.xlsx"))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "IOD")
	assert.Contains(t, sheets, "AWD")
	assert.Contains(t, sheets, "DDH")
	assert.NotContains(t, sheets, "DI")

	rows, err := f.GetRows("IOD")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"DateTime", "Office", "Lab"}, rows[0])
	assert.Equal(t, "1.5", rows[1][1])

	value, err := f.GetCellValue("HIlevel", "B2")
	require.NoError(t, err)
	assert.Equal(t, comfort.HILevelCaution, value)
}

func TestExcelExporter_EmptyResultSet(t *testing.T) {
	err := NewExcelExporter(t.TempDir()).Export(&comfort.ResultSet{Simulation: "x"}, "empty.xlsx")
	require.Error(t, err)
}
