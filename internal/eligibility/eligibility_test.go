package eligibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) *time.Time {
	t := now.Add(-time.Duration(n) * day)
	return &t
}

func TestEvaluate(t *testing.T) {
	t.Run("never donated is eligible", func(t *testing.T) {
		state := Evaluate(nil, now)
		assert.True(t, state.IsEligible)
		assert.Nil(t, state.DaysSinceLastDonation)
		assert.Equal(t, 0, state.DaysUntilEligible)
		assert.Equal(t, 100.0, state.ProgressPercent)
	})

	t.Run("exactly 56 days is eligible", func(t *testing.T) {
		state := Evaluate(daysAgo(56), now)
		assert.True(t, state.IsEligible)
		require.NotNil(t, state.DaysSinceLastDonation)
		assert.Equal(t, 56, *state.DaysSinceLastDonation)
		assert.Equal(t, 100.0, state.ProgressPercent)
	})

	t.Run("55 days is one day short", func(t *testing.T) {
		state := Evaluate(daysAgo(55), now)
		assert.False(t, state.IsEligible)
		assert.Equal(t, 1, state.DaysUntilEligible)
	})

	t.Run("partial days floor", func(t *testing.T) {
		last := now.Add(-(55*day + 23*time.Hour))
		state := Evaluate(&last, now)
		assert.Equal(t, 55, *state.DaysSinceLastDonation)
		assert.False(t, state.IsEligible)
	})

	t.Run("progress caps at 100", func(t *testing.T) {
		assert.Equal(t, 100.0, Evaluate(daysAgo(400), now).ProgressPercent)
		assert.Equal(t, float64(28)/56*100, Evaluate(daysAgo(28), now).ProgressPercent)
	})

	t.Run("future donation is not eligible", func(t *testing.T) {
		future := now.Add(3 * day)
		state := Evaluate(&future, now)
		assert.False(t, state.IsEligible)
		assert.Equal(t, -3, *state.DaysSinceLastDonation)
		assert.Equal(t, 59, state.DaysUntilEligible)
	})

	t.Run("pure across calls", func(t *testing.T) {
		last := daysAgo(10)
		assert.Equal(t, Evaluate(last, now), Evaluate(last, now))
		assert.NotEqual(t, Evaluate(last, now), Evaluate(last, now.Add(50*day)))
	})
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		last *time.Time
		want Badge
	}{
		{"never", nil, BadgeReady},
		{"yesterday", daysAgo(1), BadgeRecent},
		{"55 days", daysAgo(55), BadgeRecent},
		{"56 days", daysAgo(56), BadgeAvailableSoon},
		{"111 days", daysAgo(111), BadgeAvailableSoon},
		{"112 days", daysAgo(112), BadgeReady},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.last, now))
		})
	}
}
