package exporter

import (
	"fmt"

	"climametrics/internal/comfort"
)

// PowerBIExporter writes the fully normalized five-column ULTRA-LONG
// layout (Simulation, Indicator, DateTime, Zone, Value) consumed by
// analytical tools. Rows are streamed one at a time so a year of hourly
// data across many zones never has to be materialized as WIDE tables.
type PowerBIExporter struct {
	csvWriter *CSVWriter
}

// NewPowerBIExporter creates an ULTRA-LONG exporter writing into outputDir
func NewPowerBIExporter(outputDir string) *PowerBIExporter {
	return &PowerBIExporter{csvWriter: NewCSVWriter(outputDir)}
}

// ultraLongHeaders is the fixed ULTRA-LONG column set
var ultraLongHeaders = []string{"Simulation", "Indicator", "DateTime", "Zone", "Value"}

// Export streams the result set into one ULTRA-LONG file
func (e *PowerBIExporter) Export(rs *comfort.ResultSet, filename string) error {
	stream, err := e.csvWriter.CreateStreamWriter(filename, ultraLongHeaders)
	if err != nil {
		return fmt.Errorf("failed to create ultra-long stream: %w", err)
	}

	err = comfort.StreamUltraLong(rs, func(row comfort.UltraLongRow) error {
		return stream.WriteRecord(e.rowToRecord(row))
	})
	if err != nil {
		stream.Close()
		return fmt.Errorf("failed to write ultra-long rows: %w", err)
	}

	if err := stream.Close(); err != nil {
		return fmt.Errorf("failed to close ultra-long stream: %w", err)
	}
	return nil
}

// rowToRecord renders one ULTRA-LONG row. Aggregate rows (DDH per zone,
// the global alphatot) leave DateTime empty.
func (e *PowerBIExporter) rowToRecord(row comfort.UltraLongRow) []string {
	dateTime := ""
	if row.HasTime {
		dateTime = formatTimestamp(row.Timestamp)
	}
	value := formatValue(row.Value)
	if row.Indicator.IsCategorical() {
		value = row.Label
	}
	return []string{row.Simulation, string(row.Indicator), dateTime, row.Zone, value}
}
