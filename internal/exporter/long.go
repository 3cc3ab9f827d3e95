package exporter

import (
	"fmt"

	"climametrics/internal/comfort"
)

// LongExporter writes the semicolon-delimited LONG pivot layout:
// Date/Time;Zone;Indicator;Value with an optional trailing Simulation
// column when the result set carries a simulation label.
type LongExporter struct {
	csvWriter *CSVWriter
}

// NewLongExporter creates a long-layout exporter writing into outputDir
func NewLongExporter(outputDir string) *LongExporter {
	return &LongExporter{csvWriter: NewCSVWriter(outputDir)}
}

// Export writes the full result set as one LONG pivot file
func (e *LongExporter) Export(rs *comfort.ResultSet, filename string) error {
	withSimulation := rs.Simulation != ""

	headers := []string{"Date/Time", "Zone", "Indicator", "Value"}
	if withSimulation {
		headers = append(headers, "Simulation")
	}

	rows := comfort.Long(rs)
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		record := make([]string, 0, len(headers))
		if row.Indicator.IsTemporal() {
			record = append(record, formatTimestamp(row.Timestamp))
		} else {
			record = append(record, "")
		}
		record = append(record, row.Zone, string(row.Indicator), e.formatRow(row))
		if withSimulation {
			record = append(record, rs.Simulation)
		}
		records = append(records, record)
	}

	err := e.csvWriter.WriteCSV(filename, WriteOptions{
		Headers:   headers,
		Records:   records,
		Delimiter: ';',
	})
	if err != nil {
		return fmt.Errorf("failed to export long pivot: %w", err)
	}
	return nil
}

func (e *LongExporter) formatRow(row comfort.LongRow) string {
	if row.Indicator.IsCategorical() {
		return row.Label
	}
	return formatValue(row.Value)
}
