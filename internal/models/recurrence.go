package models

// Recurrence is the rule governing how a RecurringEvent repeats. The meaning
// of RecurringEvent.RecurrenceMetadata depends on it:
//
//	EveryXDays                  days between occurrences (> 0)
//	EveryMonthAtDayX            day of month 1-31, clamped to the month's last day
//	Every{First,Second,Third,Last}DayInMonth
//	                            weekday 0-6, Sunday = 0
type Recurrence string

const (
	EveryXDays            Recurrence = "EveryXDays"
	EveryMonthAtDayX      Recurrence = "EveryMonthAtDayX"
	EveryLastDayInMonth   Recurrence = "EveryLastDayInMonth"
	EveryFirstDayInMonth  Recurrence = "EveryFirstDayInMonth"
	EverySecondDayInMonth Recurrence = "EverySecondDayInMonth"
	EveryThirdDayInMonth  Recurrence = "EveryThirdDayInMonth"
)

// Recurrences lists every kind.
var Recurrences = []Recurrence{
	EveryXDays,
	EveryMonthAtDayX,
	EveryLastDayInMonth,
	EveryFirstDayInMonth,
	EverySecondDayInMonth,
	EveryThirdDayInMonth,
}
