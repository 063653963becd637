package strategy

import (
	"time"

	"QuantumPulse/internal/model"
)

// Default thresholds for the simple binary components.
const (
	DefaultRSIOversold       = 35.0
	DefaultFairValueDiscount = 0.90
)

// ScoreRSIFilter scores 1 when the latest RSI is below the oversold
// threshold.
func ScoreRSIFilter(latestRSI, threshold float64) float64 {
	if latestRSI < threshold {
		return 1
	}
	return 0
}

// ScoreFairValue scores 1 when the latest close trades below the
// discount fraction of the externally supplied fair value. The fair
// value is always a collaborator input; the core never derives one
// from price history.
func ScoreFairValue(latestClose, fairValue, discount float64) float64 {
	if fairValue > 0 && latestClose < fairValue*discount {
		return 1
	}
	return 0
}

// ScoreSeasonality scores 1 when the current calendar month has
// averaged a positive return over the prior years of history. It
// needs at least two completed observations of the month; otherwise
// the component abstains (ok=false).
func ScoreSeasonality(bars []model.PriceBar, now time.Time) (score float64, ok bool) {
	month := now.Month()
	currentYear := now.Year()

	type span struct{ first, last float64 }
	byYear := map[int]*span{}
	for _, b := range bars {
		if b.Date.Month() != month || b.Date.Year() == currentYear {
			continue
		}
		y := b.Date.Year()
		if s, found := byYear[y]; found {
			s.last = b.Close
		} else {
			byYear[y] = &span{first: b.Close, last: b.Close}
		}
	}

	if len(byYear) < 2 {
		return 0, false
	}

	total := 0.0
	for _, s := range byYear {
		if s.first > 0 {
			total += s.last/s.first - 1
		}
	}
	if total/float64(len(byYear)) > 0 {
		return 1, true
	}
	return 0, true
}

// ScoreBreakEven scores 1 when a held position trades at or above its
// entry price. entryPrice <= 0 means the ticker is not held, in which
// case the component abstains (ok=false).
func ScoreBreakEven(latestClose, entryPrice float64) (score float64, ok bool) {
	if entryPrice <= 0 {
		return 0, false
	}
	if latestClose >= entryPrice {
		return 1, true
	}
	return 0, true
}
