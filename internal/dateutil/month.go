package dateutil

import (
	"fmt"
	"time"
)

// Month identifies a calendar month. It is the only month/year
// representation used internally; formatted month strings are parsed
// once at the boundary and never re-parsed.
type Month struct {
	Year  int
	Month time.Month
}

func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Start returns the first instant of the month in UTC.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the first instant of the following month, i.e. the
// exclusive upper bound of the month's date window.
func (m Month) End() time.Time {
	return m.Start().AddDate(0, 1, 0)
}

func (m Month) Next() Month {
	return MonthOf(m.Start().AddDate(0, 1, 0))
}

func (m Month) Prev() Month {
	return MonthOf(m.Start().AddDate(0, -1, 0))
}

func (m Month) AddMonths(n int) Month {
	return MonthOf(m.Start().AddDate(0, n, 0))
}

func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}

	return m.Month < other.Month
}

func (m Month) After(other Month) bool {
	return other.Before(m)
}

func (m Month) String() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

// MonthsBetween returns the signed number of whole months from a to b.
func MonthsBetween(a, b Month) int {
	return (b.Year-a.Year)*12 + int(b.Month) - int(a.Month)
}

// Window is a trailing history span expressed in years and months.
type Window struct {
	Years  int
	Months int
}

func (w Window) TotalMonths() int {
	return w.Years*12 + w.Months
}

// EpochMillis converts a time to milliseconds since the Unix epoch.
// The curve axes use milliseconds rather than ordinal days or raw
// nanosecond timestamps so values stay small enough for float64 math.
func EpochMillis(t time.Time) float64 {
	return float64(t.UnixMilli())
}

func FromEpochMillis(ms float64) time.Time {
	return time.UnixMilli(int64(ms)).UTC()
}
