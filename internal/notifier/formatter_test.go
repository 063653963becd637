package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"QuantumPulse/internal/model"
)

func TestFormatBuyAlert(t *testing.T) {
	res := &model.CompositeResult{
		Ticker:     "AAPL",
		Normalized: 8.57,
		Components: model.ComponentScoreSet{Divergence: 1, Piotroski: 1, RSI: 1},
		Triggers:   []string{"divergence", "piotroski", "rsi"},
	}
	text := FormatBuyAlert(res)

	assert.Contains(t, text, "🔷 [Quantum Pulse]")
	assert.Contains(t, text, "📈 BUY AAPL")
	assert.Contains(t, text, "Composite Score: 8.57")
	// All seven components are listed, triggered or not.
	assert.Contains(t, text, "divergence=1")
	assert.Contains(t, text, "cot=0")
}

func TestFormatExitAlert(t *testing.T) {
	dec := &model.ExitDecision{
		Ticker:    "MSFT",
		Triggered: true,
		Reasons:   []string{"RSI overbought", "Below 20 EMA"},
	}
	text := FormatExitAlert(dec)

	assert.Contains(t, text, "⚠️ EXIT MSFT")
	assert.Contains(t, text, "Reasons: RSI overbought, Below 20 EMA")
}

func TestFormatCycleSummary(t *testing.T) {
	text := FormatCycleSummary(&CycleSummary{
		Scanned:  25,
		Skipped:  3,
		Buys:     2,
		Exits:    1,
		Triggers: []string{"AAPL", "NVDA"},
	})

	assert.Contains(t, text, "25 scanned, 3 skipped")
	assert.Contains(t, text, "BUY signals: 2 | EXIT signals: 1")
	assert.Contains(t, text, "Top picks: AAPL, NVDA")

	// No picks line when nothing qualified.
	empty := FormatCycleSummary(&CycleSummary{Scanned: 5})
	assert.NotContains(t, empty, "Top picks")
}
