package recurrence

import (
	"time"

	"github.com/samber/mo"
)

// Clock supplies the current instant used for the year cap.
type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// FixedClock always returns t.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

// EndOfYear returns the last representable instant of t's year in loc.
func EndOfYear(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.In(loc).Year(), time.December, 31, 23, 59, 59, 999999999, loc)
}

// EffectiveEnd bounds a series: the end of now's year, or endRecurrence when
// that comes sooner.
func EffectiveEnd(now time.Time, endRecurrence mo.Option[time.Time], loc *time.Location) time.Time {
	yearEnd := EndOfYear(now, loc)
	if end, ok := endRecurrence.Get(); ok && end.Before(yearEnd) {
		return end.In(loc)
	}
	return yearEnd
}
