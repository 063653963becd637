package calculator

import (
	"errors"
	"math"
)

// CalculateEMASeries computes the exponential moving average with the
// given span for every bar. The result has the same length as the
// input; the first span-1 entries are NaN. The EMA is seeded with the
// simple average of the first span values.
func CalculateEMASeries(values []float64, span int) ([]float64, error) {
	if span <= 0 {
		return nil, errors.New("ema span must be positive")
	}
	if len(values) < span {
		return nil, ErrInsufficientHistory
	}

	ema := make([]float64, len(values))
	for i := 0; i < span-1; i++ {
		ema[i] = math.NaN()
	}

	k := 2.0 / (float64(span) + 1.0)

	sum := 0.0
	for i := 0; i < span; i++ {
		sum += values[i]
	}
	ema[span-1] = sum / float64(span)

	for i := span; i < len(values); i++ {
		ema[i] = values[i]*k + ema[i-1]*(1-k)
	}

	return ema, nil
}
