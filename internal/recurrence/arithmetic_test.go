package recurrence

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/gdg-garage/venue-events-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRule(t *testing.T, kind models.Recurrence, metadata int) Rule {
	t.Helper()
	rule, err := NewRule(kind, metadata)
	require.NoError(t, err)
	return rule
}

func utc(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func TestNewRule(t *testing.T) {
	for _, kind := range models.Recurrences {
		metadata := 3
		_, err := NewRule(kind, metadata)
		assert.NoError(t, err, "kind %s has no step", kind)
	}

	invalid := []struct {
		kind     models.Recurrence
		metadata int
	}{
		{models.EveryXDays, 0},
		{models.EveryXDays, -2},
		{models.EveryMonthAtDayX, 0},
		{models.EveryMonthAtDayX, 32},
		{models.EveryFirstDayInMonth, -1},
		{models.EveryLastDayInMonth, 7},
		{"EveryFullMoon", 1},
	}
	for _, tt := range invalid {
		_, err := NewRule(tt.kind, tt.metadata)
		assert.ErrorIs(t, err, ErrInvalidRecurrence, "%s(%d)", tt.kind, tt.metadata)
	}
}

func TestNext(t *testing.T) {
	tests := []struct {
		name      string
		kind      models.Recurrence
		metadata  int
		start     time.Time
		wantStart time.Time
	}{
		{"days within month", models.EveryXDays, 1, utc(2024, 1, 11, 18, 0), utc(2024, 1, 12, 18, 0)},
		{"days across year end", models.EveryXDays, 12, utc(2024, 12, 31, 18, 0), utc(2025, 1, 12, 18, 0)},
		{"days across leap day", models.EveryXDays, 1, utc(2024, 2, 28, 9, 30), utc(2024, 2, 29, 9, 30)},
		{"month day plain", models.EveryMonthAtDayX, 15, utc(2024, 1, 31, 18, 0), utc(2024, 2, 15, 18, 0)},
		{"month day clamps in leap year", models.EveryMonthAtDayX, 31, utc(2024, 1, 31, 18, 0), utc(2024, 2, 29, 18, 0)},
		{"month day clamps in common year", models.EveryMonthAtDayX, 31, utc(2023, 1, 31, 18, 0), utc(2023, 2, 28, 18, 0)},
		{"month day clamps to 30", models.EveryMonthAtDayX, 31, utc(2024, 3, 31, 18, 0), utc(2024, 4, 30, 18, 0)},
		{"month day across year end", models.EveryMonthAtDayX, 31, utc(2024, 12, 31, 18, 0), utc(2025, 1, 31, 18, 0)},
		{"month day earlier in month", models.EveryMonthAtDayX, 20, utc(2024, 1, 5, 18, 0), utc(2024, 2, 20, 18, 0)},
		{"first wednesday", models.EveryFirstDayInMonth, 3, utc(2024, 1, 11, 18, 0), utc(2024, 2, 7, 18, 0)},
		{"second wednesday", models.EverySecondDayInMonth, 3, utc(2024, 1, 11, 18, 0), utc(2024, 2, 14, 18, 0)},
		{"third wednesday", models.EveryThirdDayInMonth, 3, utc(2024, 1, 11, 18, 0), utc(2024, 2, 21, 18, 0)},
		{"last wednesday", models.EveryLastDayInMonth, 3, utc(2024, 1, 11, 18, 0), utc(2024, 2, 28, 18, 0)},
		{"last sunday on month end", models.EveryLastDayInMonth, 0, utc(2024, 2, 25, 10, 0), utc(2024, 3, 31, 10, 0)},
		{"first monday across year end", models.EveryFirstDayInMonth, 1, utc(2024, 12, 2, 19, 0), utc(2025, 1, 6, 19, 0)},
		{"first weekday on day one", models.EveryFirstDayInMonth, 4, utc(2024, 1, 4, 19, 0), utc(2024, 2, 1, 19, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := mustRule(t, tt.kind, tt.metadata)
			in := Window{Start: tt.start, End: tt.start.Add(2 * time.Hour)}

			got := rule.Next(in)

			assert.True(t, tt.wantStart.Equal(got.Start), "start: want %s, got %s", tt.wantStart, got.Start)
			assert.Equal(t, 2*time.Hour, got.Duration())
			assert.Equal(t, tt.start, in.Start, "input must not change")
		})
	}
}

func TestNext_Monotonic(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	starts := []time.Time{
		time.Date(2024, 1, 31, 18, 15, 30, 250, time.UTC),
		time.Date(2024, 2, 29, 23, 59, 59, 999999999, time.UTC),
		time.Date(2023, 12, 31, 0, 0, 0, 1, time.UTC),
		time.Date(2024, 3, 30, 18, 0, 0, 0, berlin),
		time.Date(2024, 10, 26, 20, 45, 0, 0, berlin),
	}
	durations := []time.Duration{time.Minute, 2 * time.Hour, 30 * time.Hour}

	for _, kind := range models.Recurrences {
		var metadata []int
		switch kind {
		case models.EveryXDays:
			metadata = []int{1, 7, 12, 40}
		case models.EveryMonthAtDayX:
			metadata = []int{1, 15, 28, 29, 30, 31}
		default:
			metadata = []int{0, 1, 2, 3, 4, 5, 6}
		}

		for _, md := range metadata {
			rule := mustRule(t, kind, md)
			for _, start := range starts {
				for _, d := range durations {
					w := Window{Start: start, End: start.Add(d)}
					for i := 0; i < 24; i++ {
						next := rule.Next(w)
						require.True(t, next.Start.After(w.Start), "%s(%d) from %s", kind, md, w.Start)
						require.True(t, next.End.After(w.End), "%s(%d) from %s", kind, md, w.End)
						require.Equal(t, d, next.Duration())

						require.Equal(t, start.Location(), next.Start.Location())
						h, m, s := next.Start.Clock()
						wh, wm, ws := start.Clock()
						require.Equal(t, []int{wh, wm, ws, start.Nanosecond()}, []int{h, m, s, next.Start.Nanosecond()},
							"%s(%d) from %s lost its time of day", kind, md, w.Start)
						w = next
					}
				}
			}
		}
	}
}

func TestNext_KeepsWallClockAcrossDST(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	start := time.Date(2024, 3, 30, 18, 0, 0, 0, berlin)
	w := Window{Start: start, End: start.Add(2 * time.Hour)}

	next := mustRule(t, models.EveryXDays, 1).Next(w)

	assert.Equal(t, 31, next.Start.Day())
	assert.Equal(t, 18, next.Start.Hour())
	assert.Equal(t, 23*time.Hour, next.Start.Sub(w.Start))
	assert.Equal(t, 2*time.Hour, next.Duration())
}
