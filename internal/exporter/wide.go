package exporter

import (
	"fmt"

	"climametrics/internal/comfort"
)

// WideExporter writes one CSV file per indicator, with a DateTime column
// followed by one column per zone. Aggregate indicators (DDH, alphatot)
// collapse to a single row with an empty DateTime cell.
type WideExporter struct {
	csvWriter *CSVWriter
}

// NewWideExporter creates a wide-layout exporter writing into outputDir
func NewWideExporter(outputDir string) *WideExporter {
	return &WideExporter{csvWriter: NewCSVWriter(outputDir)}
}

// Export writes one file per indicator present in the result set, named
// <Indicator>_<simulation>.csv
func (e *WideExporter) Export(rs *comfort.ResultSet) error {
	for _, indicator := range comfort.AllIndicators {
		table := comfort.Wide(rs, indicator)
		if len(table.Rows) == 0 {
			continue
		}

		filename := fmt.Sprintf("%s_%s.csv", indicator, rs.Simulation)
		if err := e.exportTable(filename, table); err != nil {
			return fmt.Errorf("failed to export %s: %w", indicator, err)
		}
	}
	return nil
}

func (e *WideExporter) exportTable(filename string, table *comfort.WideTable) error {
	headers := append([]string{"DateTime"}, table.Zones...)

	records := make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		record := make([]string, 0, len(headers))
		if table.Indicator.IsTemporal() {
			record = append(record, formatTimestamp(row.Timestamp))
		} else {
			record = append(record, "")
		}
		for _, cell := range row.Cells {
			record = append(record, e.formatCell(table.Indicator, cell))
		}
		records = append(records, record)
	}

	return e.csvWriter.WriteSimpleCSV(filename, headers, records)
}

// formatCell renders one cell, leaving dropped cells (e.g. ALPHA with
// AWD=0) empty rather than writing a sentinel value
func (e *WideExporter) formatCell(indicator comfort.Indicator, cell comfort.WideCell) string {
	if !cell.Valid {
		return ""
	}
	if indicator.IsCategorical() {
		return cell.Label
	}
	return formatValue(cell.Value)
}
