package period

import (
	"fmt"
	"strings"
	"time"

	tferrors "github.com/leengari/timeframe/internal/domain/errors"
)

// Unit is a calendar or clock unit used to bucket TIME indexes.
type Unit int

const (
	Second Unit = iota
	Minute
	Hour
	Day
	Week // Monday-based
	Month
	Quarter
	Year
)

func (u Unit) String() string {
	switch u {
	case Second:
		return "second"
	case Minute:
		return "minute"
	case Hour:
		return "hour"
	case Day:
		return "day"
	case Week:
		return "week"
	case Month:
		return "month"
	case Quarter:
		return "quarter"
	case Year:
		return "year"
	default:
		return "unknown"
	}
}

// ParseUnit parses a unit name; plural forms are accepted.
func ParseUnit(s string) (Unit, error) {
	name := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s")
	for u := Second; u <= Year; u++ {
		if u.String() == name {
			return u, nil
		}
	}
	return 0, tferrors.NewParameterError("period", s, "unknown period unit")
}

// Period is N consecutive units.
type Period struct {
	Unit Unit
	N    int
}

func Of(u Unit, n int) Period { return Period{Unit: u, N: n} }

// Parse reads "unit" or "N unit", e.g. "month" or "15 minutes".
func Parse(s string) (Period, error) {
	fields := strings.Fields(s)
	switch len(fields) {
	case 1:
		u, err := ParseUnit(fields[0])
		if err != nil {
			return Period{}, err
		}
		return Period{Unit: u, N: 1}, nil
	case 2:
		var n int
		if _, err := fmt.Sscanf(fields[0], "%d", &n); err != nil {
			return Period{}, tferrors.NewParameterError("period", s, "expected a count before the unit")
		}
		u, err := ParseUnit(fields[1])
		if err != nil {
			return Period{}, err
		}
		p := Period{Unit: u, N: n}
		return p, p.Validate()
	}
	return Period{}, tferrors.NewParameterError("period", s, "expected \"unit\" or \"N unit\"")
}

func (p Period) String() string {
	if p.N == 1 {
		return p.Unit.String()
	}
	return fmt.Sprintf("%d %ss", p.N, p.Unit)
}

// Validate checks the count is positive and the unit known.
func (p Period) Validate() error {
	if p.N < 1 {
		return tferrors.NewParameterError("period", p.N, "period count must be >= 1")
	}
	if p.Unit < Second || p.Unit > Year {
		return tferrors.NewParameterError("period", int(p.Unit), "unknown period unit")
	}
	return nil
}

// epoch anchors every floor: 0001-01-01T00:00:00Z, a Monday.
var epoch = time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)

var epochUnix = epoch.Unix()

// seconds returns the length of fixed-size units in seconds, 0 for calendar units.
func (u Unit) seconds() int64 {
	switch u {
	case Second:
		return 1
	case Minute:
		return 60
	case Hour:
		return 3600
	case Day:
		return 86400
	case Week:
		return 7 * 86400
	}
	return 0
}

func (u Unit) months() int {
	switch u {
	case Month:
		return 1
	case Quarter:
		return 3
	case Year:
		return 12
	}
	return 0
}

// Floor returns the start of the period bucket holding t, in UTC.
func (p Period) Floor(t time.Time) time.Time {
	t = t.UTC()
	if s := p.Unit.seconds(); s > 0 {
		width := s * int64(p.N)
		since := t.Unix() - epochUnix
		return time.Unix(epochUnix+floorDiv(since, width)*width, 0).UTC()
	}
	width := p.Unit.months() * p.N
	m := (t.Year()-1)*12 + int(t.Month()) - 1
	m = int(floorDiv(int64(m), int64(width))) * width
	return time.Date(1+m/12, time.Month(m%12+1), 1, 0, 0, 0, 0, time.UTC)
}

// FloorKey floors a TIME index key (nanoseconds since the Unix epoch).
func (p Period) FloorKey(key int64) int64 {
	return p.Floor(time.Unix(0, key)).UnixNano()
}

// MaxSpan is the longest time one bucket can cover.
func (p Period) MaxSpan() time.Duration {
	if s := p.Unit.seconds(); s > 0 {
		return time.Duration(s*int64(p.N)) * time.Second
	}
	days := map[Unit]int{Month: 31, Quarter: 92, Year: 366}[p.Unit]
	return time.Duration(days*p.N) * 24 * time.Hour
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
