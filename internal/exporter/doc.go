// Package exporter writes computed comfort indicator results to disk.
//
// This package contains four main components:
//
// CSVWriter: Core CSV writing functionality with support for headers,
// streaming, alternate delimiters, and UTF-8 BOM for Excel compatibility.
//
// WideExporter: One CSV file per indicator with a DateTime column and one
// column per zone (the Environment pseudo-zone for AWD).
//
// LongExporter: Semicolon-delimited pivot rows Date/Time;Zone;Indicator;
// Value with an optional Simulation column.
//
// PowerBIExporter: Streams the fully normalized five-column ULTRA-LONG
// layout row by row, mixing temporal and aggregate rows.
//
// ExcelExporter: One XLSX workbook with a wide-layout sheet per indicator.
//
// Example usage:
//
//	wide := exporter.NewWideExporter("/path/to/reports")
//	err := wide.Export(results)
//
//	powerbi := exporter.NewPowerBIExporter("/path/to/reports")
//	err = powerbi.Export(results, "indicators_powerbi.csv")
package exporter
