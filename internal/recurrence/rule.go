package recurrence

import (
	"errors"
	"fmt"
	"time"

	"github.com/gdg-garage/venue-events-api/internal/models"
)

// ErrInvalidRecurrence is returned for an unknown recurrence kind or metadata
// outside the kind's domain.
var ErrInvalidRecurrence = errors.New("invalid recurrence")

// Window is the time span of one occurrence.
type Window struct {
	Start time.Time
	End   time.Time
}

// Duration of the window.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// In returns the window with both instants expressed in loc.
func (w Window) In(loc *time.Location) Window {
	return Window{Start: w.Start.In(loc), End: w.End.In(loc)}
}

// Rule is a validated recurrence kind with its metadata. The zero Rule is not
// usable; build one with NewRule.
type Rule struct {
	kind     models.Recurrence
	metadata int
}

func NewRule(kind models.Recurrence, metadata int) (Rule, error) {
	if _, ok := steps[kind]; !ok {
		return Rule{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidRecurrence, kind)
	}
	switch kind {
	case models.EveryXDays:
		if metadata <= 0 {
			return Rule{}, fmt.Errorf("%w: %s needs a positive day count, got %d", ErrInvalidRecurrence, kind, metadata)
		}
	case models.EveryMonthAtDayX:
		if metadata < 1 || metadata > 31 {
			return Rule{}, fmt.Errorf("%w: %s needs a day of month 1-31, got %d", ErrInvalidRecurrence, kind, metadata)
		}
	default:
		if metadata < 0 || metadata > 6 {
			return Rule{}, fmt.Errorf("%w: %s needs a weekday 0-6, got %d", ErrInvalidRecurrence, kind, metadata)
		}
	}
	return Rule{kind: kind, metadata: metadata}, nil
}

func (r Rule) Kind() models.Recurrence { return r.kind }

func (r Rule) Metadata() int { return r.metadata }

// Next returns the occurrence following w. The start is advanced by calendar
// arithmetic in w.Start's location, keeping the wall-clock time of day; the
// end keeps the window's duration. The result always lies strictly after w.
func (r Rule) Next(w Window) Window {
	start := steps[r.kind](w.Start, r.metadata)
	return Window{Start: start, End: start.Add(w.Duration())}
}
