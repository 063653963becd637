package strategy

import (
	"sort"

	"QuantumPulse/internal/model"
)

// Selection defaults.
const (
	DefaultBuyThreshold = 8.0
	DefaultTopN         = 3
)

// SelectTop filters a cycle's composite results to those at or above
// the buy threshold, sorts them descending by normalized score, and
// returns at most n. The sort is stable so ties keep their original
// discovery order.
func SelectTop(results []model.CompositeResult, threshold float64, n int) []model.CompositeResult {
	selected := make([]model.CompositeResult, 0, len(results))
	for _, r := range results {
		if r.Normalized >= threshold {
			selected = append(selected, r)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Normalized > selected[j].Normalized
	})
	if n >= 0 && len(selected) > n {
		selected = selected[:n]
	}
	return selected
}
