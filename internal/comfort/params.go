package comfort

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Default engine constants. Callers override them through Parameters;
// they are never read from ambient state.
const (
	DefaultComfortTemp      = 26.5  // °C, IOD threshold
	DefaultBaseTemp         = 18.0  // °C, AWD threshold
	DefaultYear             = 2020  // timestamp materialization only
	DefaultWattsPerPerson   = 100.0 // occupancy proxy conversion
	DefaultRelativeHumidity = 50.0  // % substituted when the column is absent
	DefaultOccupancy        = 0.0   // people substituted when the column is absent
)

// DateRange is an optional inclusive month/day filter applied to the input
// series before any computation or aggregation.
type DateRange struct {
	StartMonth int `json:"start_month" validate:"min=1,max=12"`
	StartDay   int `json:"start_day" validate:"min=1,max=31"`
	EndMonth   int `json:"end_month" validate:"min=1,max=12"`
	EndDay     int `json:"end_day" validate:"min=1,max=31"`
}

// ParseDateRange parses "MM/DD" start and end strings. Either may be empty;
// a nil range means no filtering.
func ParseDateRange(start, end string) (*DateRange, error) {
	if start == "" && end == "" {
		return nil, nil
	}
	dr := &DateRange{StartMonth: 1, StartDay: 1, EndMonth: 12, EndDay: 31}
	if start != "" {
		m, d, err := parseMonthDay(start)
		if err != nil {
			return nil, fmt.Errorf("parse start date: %w", err)
		}
		dr.StartMonth, dr.StartDay = m, d
	}
	if end != "" {
		m, d, err := parseMonthDay(end)
		if err != nil {
			return nil, fmt.Errorf("parse end date: %w", err)
		}
		dr.EndMonth, dr.EndDay = m, d
	}
	return dr, nil
}

func parseMonthDay(s string) (month, day int, err error) {
	if _, err := fmt.Sscanf(s, "%d/%d", &month, &day); err != nil {
		return 0, 0, fmt.Errorf("expected MM/DD, got %q", s)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return 0, 0, fmt.Errorf("month/day out of range: %q", s)
	}
	return month, day, nil
}

// Contains reports whether t falls inside the inclusive range, comparing
// month and day only. A nil range contains everything.
func (dr *DateRange) Contains(t time.Time) bool {
	if dr == nil {
		return true
	}
	md := int(t.Month())*100 + t.Day()
	start := dr.StartMonth*100 + dr.StartDay
	end := dr.EndMonth*100 + dr.EndDay
	return md >= start && md <= end
}

// Parameters is the immutable configuration threaded through every
// calculator call.
type Parameters struct {
	ComfortTemp    float64     `json:"comfort_temp" validate:"gt=-60,lt=80"`
	BaseTemp       float64     `json:"base_temp" validate:"gt=-60,lt=80"`
	Year           int         `json:"year" validate:"min=1900,max=2200"`
	Indicators     []Indicator `json:"indicators" validate:"min=1"`
	Range          *DateRange  `json:"range,omitempty"`
	WattsPerPerson float64     `json:"watts_per_person" validate:"gt=0"`
}

// DefaultParameters returns the engine defaults with every indicator selected.
func DefaultParameters() Parameters {
	return Parameters{
		ComfortTemp:    DefaultComfortTemp,
		BaseTemp:       DefaultBaseTemp,
		Year:           DefaultYear,
		Indicators:     append([]Indicator(nil), AllIndicators...),
		WattsPerPerson: DefaultWattsPerPerson,
	}
}

// Selected reports whether the indicator was requested.
func (p Parameters) Selected(ind Indicator) bool {
	for _, i := range p.Indicators {
		if i == ind {
			return true
		}
	}
	return false
}

var validate = validator.New()

// Validate checks the parameter values and the indicator selection.
func (p Parameters) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	for _, ind := range p.Indicators {
		if _, err := ParseIndicator(string(ind)); err != nil {
			return err
		}
	}
	if p.Range != nil {
		if err := validate.Struct(p.Range); err != nil {
			return fmt.Errorf("invalid date range: %w", err)
		}
	}
	return nil
}
