package strategy

import "math"

// DefaultDivergenceLookback is the window, in bars, scanned for
// price/RSI divergence.
const DefaultDivergenceLookback = 20

// DetectDivergence looks for RSI divergence over the last `lookback`
// bars of the given close and RSI series (date-aligned, same length).
// Returns +1 for bullish divergence, -1 for bearish, 0 for none.
//
// Bullish: the window's lowest close is strictly below the close one
// bar earlier while the RSI at that bar is strictly above the RSI one
// bar earlier (price makes a lower low, RSI makes a higher low).
// Bearish is symmetric around the window's highest close. This is a
// single-point comparison against the bar immediately preceding the
// extremum, not a full peak/trough pattern matcher. Bullish is
// evaluated first and short-circuits bearish.
//
// A series shorter than the lookback yields 0 (no signal, not an
// error), as does an extremum sitting on the first bar of the window.
// NaN RSI entries (warm-up) fail the comparison and yield 0.
func DetectDivergence(closes, rsi []float64, lookback int) int {
	if lookback <= 0 || len(closes) < lookback || len(rsi) != len(closes) {
		return 0
	}
	start := len(closes) - lookback
	window := closes[start:]
	rsiWindow := rsi[start:]

	minIdx, maxIdx := extrema(window)

	// Bullish: price lower low, RSI higher low.
	if minIdx > 0 {
		priceLower := window[minIdx] < window[minIdx-1]
		rsiHigher := rsiWindow[minIdx] > rsiWindow[minIdx-1]
		if priceLower && rsiHigher {
			return 1
		}
	}

	// Bearish: price higher high, RSI lower high.
	if maxIdx > 0 {
		priceHigher := window[maxIdx] > window[maxIdx-1]
		rsiLower := rsiWindow[maxIdx] < rsiWindow[maxIdx-1]
		if priceHigher && rsiLower {
			return -1
		}
	}

	return 0
}

// extrema returns the indexes of the minimum and maximum values,
// skipping NaN entries. Returns -1 when no valid value exists.
func extrema(values []float64) (minIdx, maxIdx int) {
	minIdx, maxIdx = -1, -1
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if minIdx < 0 || v < values[minIdx] {
			minIdx = i
		}
		if maxIdx < 0 || v > values[maxIdx] {
			maxIdx = i
		}
	}
	return minIdx, maxIdx
}
