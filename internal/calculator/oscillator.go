package calculator

import "math"

// EMATrendSpan is the moving-average span used by the exit evaluator.
const EMATrendSpan = 20

// OscillatorSet holds the date-aligned oscillator series derived from
// one price series. All slices have the same length as the input
// closes; leading warm-up entries are NaN. Recomputed fresh each scan
// cycle, never persisted.
type OscillatorSet struct {
	RSI      []float64
	EMA20    []float64
	MACDHist []float64
}

// Latest returns the last value of each series. ok is false when any
// of them is still in its warm-up window.
func (o *OscillatorSet) Latest() (rsi, ema20, macdHist float64, ok bool) {
	n := len(o.RSI)
	if n == 0 {
		return 0, 0, 0, false
	}
	rsi = o.RSI[n-1]
	ema20 = o.EMA20[n-1]
	macdHist = o.MACDHist[n-1]
	ok = !math.IsNaN(rsi) && !math.IsNaN(ema20) && !math.IsNaN(macdHist)
	return rsi, ema20, macdHist, ok
}

// ComputeOscillators derives RSI, EMA20, and MACD histogram series
// from the given closes. rsiPeriod is typically 14. Returns
// ErrInsufficientHistory when the series cannot warm up any of the
// three indicators.
func ComputeOscillators(closes []float64, rsiPeriod int) (*OscillatorSet, error) {
	rsi, err := CalculateRSISeries(closes, rsiPeriod)
	if err != nil {
		return nil, err
	}
	ema20, err := CalculateEMASeries(closes, EMATrendSpan)
	if err != nil {
		return nil, err
	}
	macd, err := CalculateMACDHistogram(closes)
	if err != nil {
		return nil, err
	}
	return &OscillatorSet{RSI: rsi, EMA20: ema20, MACDHist: macd}, nil
}
