package exporter

import (
	"strconv"
	"time"
)

// timestampLayout is the Date/Time format used across all CSV layouts
const timestampLayout = "2006-01-02 15:04:05"

// formatValue formats an indicator value for CSV output with the shortest
// representation that round-trips, so 0.5 stays 0.5 and 14.899999 keeps
// its full precision
func formatValue(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatTimestamp formats a timestamp for CSV output
func formatTimestamp(t time.Time) string {
	return t.Format(timestampLayout)
}
