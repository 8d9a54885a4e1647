package recurrence

import (
	"fmt"
	"time"

	"github.com/gdg-garage/venue-events-api/internal/models"
	"github.com/teambition/rrule-go"
)

var rruleWeekdays = []rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}

// Options renders the rule as RFC 5545 recurrence options anchored at dtstart
// and bounded by until. Day-of-month rules past the 28th select the last of
// the candidate days present in each month, which is the clamping Next does.
func (r Rule) Options(dtstart, until time.Time) rrule.ROption {
	opt := rrule.ROption{
		Dtstart: dtstart,
		Until:   until,
		Freq:    rrule.MONTHLY,
	}

	switch r.kind {
	case models.EveryXDays:
		opt.Freq = rrule.DAILY
		opt.Interval = r.metadata
	case models.EveryMonthAtDayX:
		if r.metadata <= 28 {
			opt.Bymonthday = []int{r.metadata}
			break
		}
		for d := 28; d <= r.metadata; d++ {
			opt.Bymonthday = append(opt.Bymonthday, d)
		}
		opt.Bysetpos = []int{-1}
	case models.EveryFirstDayInMonth:
		opt.Byweekday = []rrule.Weekday{rruleWeekdays[r.metadata].Nth(1)}
	case models.EverySecondDayInMonth:
		opt.Byweekday = []rrule.Weekday{rruleWeekdays[r.metadata].Nth(2)}
	case models.EveryThirdDayInMonth:
		opt.Byweekday = []rrule.Weekday{rruleWeekdays[r.metadata].Nth(3)}
	case models.EveryLastDayInMonth:
		opt.Byweekday = []rrule.Weekday{rruleWeekdays[r.metadata].Nth(-1)}
	}
	return opt
}

// RRule returns the RRULE property value (without DTSTART) for the rule.
func (r Rule) RRule(dtstart, until time.Time) (string, error) {
	opt := r.Options(dtstart, until)
	if _, err := rrule.NewRRule(opt); err != nil {
		return "", fmt.Errorf("render rrule for %s: %w", r.kind, err)
	}
	return opt.RRuleString(), nil
}
