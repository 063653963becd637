package strategy

import (
	"errors"
	"math"

	"QuantumPulse/internal/model"
)

// ErrZeroWeights is returned when the weight table is empty or sums to
// zero; normalization would divide by zero. This is a configuration
// error and must surface to the caller.
var ErrZeroWeights = errors.New("weight table sums to zero")

// Composite combines the component scores into one normalized 0-10
// score. Negative raw scores (a bearish divergence) are clamped to 0
// before weighting so a bearish hint never drags the composite below
// what the remaining components earn; the raw value is still carried
// in the result for logging. Triggers are the component names with a
// strictly positive raw score, in the fixed component order.
func Composite(ticker string, scores model.ComponentScoreSet, weights model.WeightTable) (model.CompositeResult, error) {
	maxPossible := weights.Total()
	if maxPossible == 0 {
		return model.CompositeResult{}, ErrZeroWeights
	}

	rawScores := scores.Values()
	weightVals := weights.Values()

	raw := 0.0
	var triggers []string
	for i, s := range rawScores {
		if s > 0 {
			triggers = append(triggers, model.ComponentNames[i])
		}
		if s < 0 {
			s = 0
		}
		raw += weightVals[i] * s
	}

	return model.CompositeResult{
		Ticker:     ticker,
		Normalized: Round2(10 * raw / maxPossible),
		Components: scores,
		Triggers:   triggers,
	}, nil
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
