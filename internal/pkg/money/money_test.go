package money

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.0, Round2(10.004))
	assert.Equal(t, 10.01, Round2(10.005))
	assert.Equal(t, -10.01, Round2(-10.005))
	assert.Equal(t, 0.1, Round2(0.1))
	assert.Equal(t, 100.0, Round2(100))
}

func TestDailyShare(t *testing.T) {
	// 310 over a 31-day month lands exactly on whole cents.
	assert.Equal(t, 10.0, DailyShare(310, 31))
	// 100 over 30 days rounds to 3.33 per day.
	assert.Equal(t, 3.33, DailyShare(100, 30))
	// February of a leap year.
	assert.Equal(t, 1.72, DailyShare(50, 29))
}

func TestDailyShareDriftBound(t *testing.T) {
	// Sum of daily shares stays within daysInMonth cents of the monthly amount.
	for _, days := range []int{28, 29, 30, 31} {
		daily := DailyShare(100, days)
		total := 0.0
		for i := 0; i < days; i++ {
			total += daily
		}
		drift := Round2(total - 100)
		if drift < 0 {
			drift = -drift
		}
		if drift > float64(days)*0.01 {
			t.Fatalf("drift %.4f exceeds %d cents", drift, days)
		}
	}
}
