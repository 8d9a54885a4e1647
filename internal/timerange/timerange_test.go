package timerange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	base := time.Date(2024, 1, 11, 18, 0, 0, 0, time.UTC)

	assert.True(t, Valid(base, base.Add(time.Nanosecond)))
	assert.False(t, Valid(base, base), "equal instants are invalid")
	assert.False(t, Valid(base.Add(time.Hour), base))

	assert.NoError(t, Validate(base, base.Add(2*time.Hour)))
	assert.ErrorIs(t, Validate(base, base), ErrInvalidTimeRange)
}

func TestOverlaps(t *testing.T) {
	day := func(d, h, m int) time.Time {
		return time.Date(2024, 1, d, h, m, 0, 0, time.UTC)
	}
	qs, qe := day(6, 0, 0), day(11, 0, 0)

	tests := []struct {
		name     string
		es, ee   time.Time
		expected bool
	}{
		{"A inside window", day(6, 16, 30), day(6, 18, 0), true},
		{"B straddles window start", day(4, 16, 30), day(6, 18, 0), true},
		{"C straddles window end", day(10, 16, 30), day(12, 18, 0), true},
		{"D before window", day(5, 16, 30), day(5, 18, 0), false},
		{"E after window", day(11, 16, 30), day(11, 18, 0), false},
		{"starts exactly at window start", qs, day(6, 2, 0), false},
		{"ends exactly at window end", day(10, 22, 0), qe, false},
		{"covers window exactly", qs, qe, false},
		{"covers window with margin", day(5, 0, 0), day(12, 0, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Overlaps(qs, qe, tt.es, tt.ee))
		})
	}
}
