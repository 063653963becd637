package calculator

import "math"

// MACD parameters: the standard 12/26/9 configuration.
const (
	macdFastSpan   = 12
	macdSlowSpan   = 26
	macdSignalSpan = 9
)

// CalculateMACDHistogram computes the MACD histogram (MACD line minus
// signal line) for every bar. The result has the same length as the
// input; entries before the slow EMA plus signal EMA have warmed up
// are NaN. Requires at least slow+signal-1 closes (34 for 26/9).
func CalculateMACDHistogram(closes []float64) ([]float64, error) {
	minLen := macdSlowSpan + macdSignalSpan - 1
	if len(closes) < minLen {
		return nil, ErrInsufficientHistory
	}

	fast, err := CalculateEMASeries(closes, macdFastSpan)
	if err != nil {
		return nil, err
	}
	slow, err := CalculateEMASeries(closes, macdSlowSpan)
	if err != nil {
		return nil, err
	}

	// MACD line is defined from the slow EMA's first valid index.
	macdStart := macdSlowSpan - 1
	macdLine := make([]float64, len(closes)-macdStart)
	for i := range macdLine {
		macdLine[i] = fast[macdStart+i] - slow[macdStart+i]
	}

	signal, err := CalculateEMASeries(macdLine, macdSignalSpan)
	if err != nil {
		return nil, err
	}

	hist := make([]float64, len(closes))
	for i := 0; i < macdStart; i++ {
		hist[i] = math.NaN()
	}
	for i, s := range signal {
		if math.IsNaN(s) {
			hist[macdStart+i] = math.NaN()
			continue
		}
		hist[macdStart+i] = macdLine[i] - s
	}

	return hist, nil
}
