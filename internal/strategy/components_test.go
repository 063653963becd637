package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"QuantumPulse/internal/model"
)

func TestScoreRSIFilter(t *testing.T) {
	assert.Equal(t, 1.0, ScoreRSIFilter(34.9, DefaultRSIOversold))
	// Exactly at the threshold does not qualify.
	assert.Equal(t, 0.0, ScoreRSIFilter(35.0, DefaultRSIOversold))
	assert.Equal(t, 0.0, ScoreRSIFilter(60.0, DefaultRSIOversold))
}

func TestScoreFairValue(t *testing.T) {
	// 90% of 100 = 90: strictly below qualifies.
	assert.Equal(t, 1.0, ScoreFairValue(89.99, 100, DefaultFairValueDiscount))
	assert.Equal(t, 0.0, ScoreFairValue(90.0, 100, DefaultFairValueDiscount))
	assert.Equal(t, 0.0, ScoreFairValue(95.0, 100, DefaultFairValueDiscount))

	// Unknown fair value never scores.
	assert.Equal(t, 0.0, ScoreFairValue(10.0, 0, DefaultFairValueDiscount))
	assert.Equal(t, 0.0, ScoreFairValue(10.0, -5, DefaultFairValueDiscount))
}

func monthBars(year int, month time.Month, first, last float64) []model.PriceBar {
	return []model.PriceBar{
		{Date: time.Date(year, month, 3, 0, 0, 0, 0, time.UTC), Close: first},
		{Date: time.Date(year, month, 27, 0, 0, 0, 0, time.UTC), Close: last},
	}
}

func TestScoreSeasonality_PositiveMonth(t *testing.T) {
	now := time.Date(2026, time.April, 15, 0, 0, 0, 0, time.UTC)
	var bars []model.PriceBar
	bars = append(bars, monthBars(2024, time.April, 100, 110)...)
	bars = append(bars, monthBars(2025, time.April, 100, 105)...)
	// Current-year April must be excluded from the average.
	bars = append(bars, monthBars(2026, time.April, 100, 10)...)

	score, ok := ScoreSeasonality(bars, now)
	assert.True(t, ok)
	assert.Equal(t, 1.0, score)
}

func TestScoreSeasonality_NegativeMonth(t *testing.T) {
	now := time.Date(2026, time.April, 15, 0, 0, 0, 0, time.UTC)
	var bars []model.PriceBar
	bars = append(bars, monthBars(2024, time.April, 100, 90)...)
	bars = append(bars, monthBars(2025, time.April, 100, 95)...)

	score, ok := ScoreSeasonality(bars, now)
	assert.True(t, ok)
	assert.Equal(t, 0.0, score)
}

func TestScoreSeasonality_AbstainsOnThinHistory(t *testing.T) {
	now := time.Date(2026, time.April, 15, 0, 0, 0, 0, time.UTC)

	_, ok := ScoreSeasonality(nil, now)
	assert.False(t, ok)

	// One completed year of the month is not enough.
	_, ok = ScoreSeasonality(monthBars(2025, time.April, 100, 110), now)
	assert.False(t, ok)

	// History from other months does not count.
	var bars []model.PriceBar
	bars = append(bars, monthBars(2024, time.March, 100, 110)...)
	bars = append(bars, monthBars(2025, time.March, 100, 110)...)
	_, ok = ScoreSeasonality(bars, now)
	assert.False(t, ok)
}

func TestScoreBreakEven(t *testing.T) {
	score, ok := ScoreBreakEven(105, 100)
	assert.True(t, ok)
	assert.Equal(t, 1.0, score)

	// At entry counts as recovered.
	score, ok = ScoreBreakEven(100, 100)
	assert.True(t, ok)
	assert.Equal(t, 1.0, score)

	score, ok = ScoreBreakEven(95, 100)
	assert.True(t, ok)
	assert.Equal(t, 0.0, score)

	// Not held: abstain.
	_, ok = ScoreBreakEven(95, 0)
	assert.False(t, ok)
}
