package validation

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the fixed layout of date strings accepted by selectors and loaders.
const DateLayout = "2006-01-02"

// timeLayouts are tried in order by ParseTime.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DateLayout,
}

// ValidateDate validates a date string in YYYY-MM-DD format
func ValidateDate(value string) error {
	_, err := ParseDate(value)
	return err
}

// ParseDate parses a date string in YYYY-MM-DD format as midnight UTC.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD (e.g., '2017-01-01')", value)
	}
	return t, nil
}

// ValidateTime validates a timestamp string in one of the accepted layouts
// (RFC 3339, "YYYY-MM-DDTHH:MM:SS", "YYYY-MM-DD HH:MM:SS" or a bare date).
func ValidateTime(value string) error {
	_, err := ParseTime(value)
	return err
}

// ParseTime parses a timestamp string; results without a zone are UTC.
func ParseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q, expected RFC 3339 or YYYY-MM-DD[ HH:MM:SS]", value)
}

// ValidateQuarter checks q is in 1..4.
func ValidateQuarter(q int) error {
	if q < 1 || q > 4 {
		return fmt.Errorf("quarter must be in 1..4, got %d", q)
	}
	return nil
}

// ValidateMonth checks m is in 1..12.
func ValidateMonth(m int) error {
	if m < 1 || m > 12 {
		return fmt.Errorf("month must be in 1..12, got %d", m)
	}
	return nil
}
