package calculator

import (
	"errors"
	"math"
)

// ErrInsufficientHistory is returned when a price series is too short
// for the requested indicator window. Callers must treat the affected
// indicator as undefined, never as zero.
var ErrInsufficientHistory = errors.New("insufficient price history")

// CalculateRSISeries computes the Wilder-smoothed RSI over the given
// period for every bar. The result has the same length as the input;
// the first `period` entries are NaN and must not be read.
// Requires at least period+1 closes.
func CalculateRSISeries(closes []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("rsi period must be positive")
	}
	if len(closes) < period+1 {
		return nil, ErrInsufficientHistory
	}

	rsi := make([]float64, len(closes))
	for i := 0; i < period; i++ {
		rsi[i] = math.NaN()
	}

	// Initial average gain/loss over the first `period` changes.
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change // make positive
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	rsi[period] = rsiFromAverages(avgGain, avgLoss)

	// Wilder smoothing for remaining bars.
	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		rsi[i] = rsiFromAverages(avgGain, avgLoss)
	}

	return rsi, nil
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
