package recurrence

import (
	"time"

	"github.com/gdg-garage/venue-events-api/internal/models"
)

type stepFunc func(t time.Time, metadata int) time.Time

// steps maps every recurrence kind to its calendar step. NewRule rejects any
// kind missing here.
var steps = map[models.Recurrence]stepFunc{
	models.EveryXDays:            everyXDays,
	models.EveryMonthAtDayX:      monthAtDay,
	models.EveryFirstDayInMonth:  nthWeekday(1),
	models.EverySecondDayInMonth: nthWeekday(2),
	models.EveryThirdDayInMonth:  nthWeekday(3),
	models.EveryLastDayInMonth:   lastWeekday,
}

func everyXDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

func monthAtDay(t time.Time, day int) time.Time {
	year, month := nextMonth(t)
	return onDay(t, year, month, min(day, daysIn(year, month)))
}

func nthWeekday(n int) stepFunc {
	return func(t time.Time, weekday int) time.Time {
		year, month := nextMonth(t)
		first := weekdayOf(year, month, 1)
		offset := (weekday - int(first) + 7) % 7
		return onDay(t, year, month, 1+offset+7*(n-1))
	}
}

func lastWeekday(t time.Time, weekday int) time.Time {
	year, month := nextMonth(t)
	last := daysIn(year, month)
	back := (int(weekdayOf(year, month, last)) - weekday + 7) % 7
	return onDay(t, year, month, last-back)
}

// nextMonth returns the calendar month after t's month.
func nextMonth(t time.Time) (int, time.Month) {
	first := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	return first.Year(), first.Month()
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func weekdayOf(year int, month time.Month, day int) time.Weekday {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Weekday()
}

// onDay places t's time of day on the given date in t's location.
func onDay(t time.Time, year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
