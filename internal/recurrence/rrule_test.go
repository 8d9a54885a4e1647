package recurrence

import (
	"testing"
	"time"

	"github.com/gdg-garage/venue-events-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teambition/rrule-go"
)

func TestRule_RRule(t *testing.T) {
	start := utc(2024, 1, 11, 18, 0)
	until := EndOfYear(start, time.UTC)

	tests := []struct {
		kind     models.Recurrence
		metadata int
		contains []string
	}{
		{models.EveryXDays, 2, []string{"FREQ=DAILY", "INTERVAL=2"}},
		{models.EveryMonthAtDayX, 15, []string{"FREQ=MONTHLY", "BYMONTHDAY=15"}},
		{models.EveryMonthAtDayX, 30, []string{"FREQ=MONTHLY", "BYMONTHDAY=28,29,30", "BYSETPOS=-1"}},
		{models.EveryFirstDayInMonth, 3, []string{"FREQ=MONTHLY", "BYDAY=+1WE"}},
		{models.EveryThirdDayInMonth, 0, []string{"BYDAY=+3SU"}},
		{models.EveryLastDayInMonth, 5, []string{"BYDAY=-1FR"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			s, err := mustRule(t, tt.kind, tt.metadata).RRule(start, until)
			require.NoError(t, err)
			assert.NotContains(t, s, "DTSTART")
			assert.Contains(t, s, "UNTIL=20241231T235959Z")
			for _, part := range tt.contains {
				assert.Contains(t, s, part)
			}
		})
	}
}

// The step arithmetic and the rendered RRULE must describe the same series.
func TestRule_MatchesRRuleExpansion(t *testing.T) {
	start := utc(2024, 1, 11, 18, 0)
	until := EndOfYear(start, time.UTC)
	first := Window{Start: start, End: start.Add(2 * time.Hour)}

	for _, kind := range models.Recurrences {
		var metadata []int
		switch kind {
		case models.EveryXDays:
			metadata = []int{1, 3, 10}
		case models.EveryMonthAtDayX:
			metadata = []int{1, 11, 28, 29, 30, 31}
		default:
			metadata = []int{0, 3, 6}
		}

		for _, md := range metadata {
			rule := mustRule(t, kind, md)
			opt := rule.Options(start, until)
			set, err := rrule.NewRRule(opt)
			require.NoError(t, err)

			windows := Expand(first, rule, until)
			require.NotEmpty(t, windows)

			// Monthly rules restart in the month after the first occurrence,
			// so compare from there on.
			from, got := start, windows
			if kind != models.EveryXDays {
				from = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
				got = windows[1:]
			}
			want := set.Between(from, until, true)

			require.Len(t, got, len(want), "%s(%d)", kind, md)
			for i := range want {
				assert.True(t, want[i].Equal(got[i].Start), "%s(%d) #%d: want %s, got %s", kind, md, i, want[i], got[i].Start)
			}
		}
	}
}
