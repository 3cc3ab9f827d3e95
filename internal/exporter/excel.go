package exporter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"climametrics/internal/comfort"
)

// ExcelExporter writes the result set as a single XLSX workbook with one
// wide-layout sheet per indicator.
type ExcelExporter struct {
	outputDir string
}

// NewExcelExporter creates an XLSX exporter writing into outputDir
func NewExcelExporter(outputDir string) *ExcelExporter {
	return &ExcelExporter{outputDir: outputDir}
}

// Export writes one workbook containing every indicator present in the
// result set
func (e *ExcelExporter) Export(rs *comfort.ResultSet, filename string) error {
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for _, indicator := range comfort.AllIndicators {
		table := comfort.Wide(rs, indicator)
		if len(table.Rows) == 0 {
			continue
		}

		sheet := string(indicator)
		if first {
			f.SetSheetName(f.GetSheetName(0), sheet)
			first = false
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
			}
		}

		if err := e.writeSheet(f, sheet, table); err != nil {
			return fmt.Errorf("failed to write sheet %s: %w", sheet, err)
		}
	}

	if first {
		return fmt.Errorf("result set is empty, nothing to export")
	}

	fullPath := filename
	if !filepath.IsAbs(fullPath) {
		fullPath = filepath.Join(e.outputDir, filename)
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := f.SaveAs(fullPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (e *ExcelExporter) writeSheet(f *excelize.File, sheet string, table *comfort.WideTable) error {
	header := append([]interface{}{"DateTime"}, toAny(table.Zones)...)
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, row := range table.Rows {
		cells := make([]interface{}, 0, len(row.Cells)+1)
		if table.Indicator.IsTemporal() {
			cells = append(cells, formatTimestamp(row.Timestamp))
		} else {
			cells = append(cells, "")
		}
		for _, cell := range row.Cells {
			switch {
			case !cell.Valid:
				cells = append(cells, nil)
			case table.Indicator.IsCategorical():
				cells = append(cells, cell.Label)
			default:
				cells = append(cells, cell.Value)
			}
		}
		anchor, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, anchor, &cells); err != nil {
			return err
		}
	}
	return nil
}

func toAny(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
