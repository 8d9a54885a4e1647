// Package timerange holds the start/end validation and the interval overlap
// rule used by event range queries.
package timerange

import (
	"errors"
	"time"
)

// ErrInvalidTimeRange is returned when a start is not strictly before its end.
var ErrInvalidTimeRange = errors.New("start must be before end")

// Valid reports whether start is strictly before end.
func Valid(start, end time.Time) bool {
	return start.Before(end)
}

// Validate is Valid as an error.
func Validate(start, end time.Time) error {
	if !Valid(start, end) {
		return ErrInvalidTimeRange
	}
	return nil
}

// Overlaps reports whether the event [es, ee] matches the query window
// [qs, qe]. An event matches when it lies strictly inside the window, or
// straddles the window start, or straddles the window end. All comparisons
// are strict, so an event touching a window boundary exactly does not match
// unless it also crosses it.
func Overlaps(qs, qe, es, ee time.Time) bool {
	contained := es.After(qs) && ee.Before(qe)
	straddlesStart := es.Before(qs) && ee.After(qs)
	straddlesEnd := ee.After(qe) && es.Before(qe)
	return contained || straddlesStart || straddlesEnd
}

// OverlapClause is Overlaps as a SQL condition over the given columns. It
// takes six arguments: qs, qe, qs, qs, qe, qe.
func OverlapClause(startCol, endCol string) string {
	return "((" + startCol + " > ? AND " + endCol + " < ?)" +
		" OR (" + startCol + " < ? AND " + endCol + " > ?)" +
		" OR (" + endCol + " > ? AND " + startCol + " < ?))"
}

// OverlapArgs returns the arguments for OverlapClause.
func OverlapArgs(qs, qe time.Time) []any {
	return []any{qs, qe, qs, qs, qe, qe}
}
