package comfort

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for the per-cell failure modes. Structural errors carry
// their own types below so callers can report which zone and why.
var (
	// ErrDivisionByZero marks an ALPHA cell whose AWD denominator is zero.
	// It is recovered locally: the cell is reported absent, never as ±Inf.
	ErrDivisionByZero = errors.New("division by zero")
)

// InsufficientHistoryError indicates the running mean had fewer than one
// prior day of outdoor history. Fatal for DDH; other indicators are unaffected.
type InsufficientHistoryError struct {
	Date      time.Time
	Available int
}

func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf("insufficient outdoor history for %s: %d prior days available, need at least 1",
		e.Date.Format("2006-01-02"), e.Available)
}

// ZoneNotFoundError indicates a requested zone is absent from the input.
// The whole request aborts rather than partially succeeding.
type ZoneNotFoundError struct {
	Zone string
}

func (e *ZoneNotFoundError) Error() string {
	return fmt.Sprintf("zone %q not found in input data", e.Zone)
}

// NoOccupiedHoursError indicates a zone has zero occupied hours in the
// evaluated range, so occupancy-gated indicators are undefined for it.
type NoOccupiedHoursError struct {
	Zone      string
	Indicator Indicator
}

func (e *NoOccupiedHoursError) Error() string {
	return fmt.Sprintf("zone %q has no occupied hours in range: %s is undefined", e.Zone, e.Indicator)
}
