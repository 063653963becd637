package notifier

import (
	"fmt"
	"strconv"
	"strings"

	"QuantumPulse/internal/model"
)

const alertHeader = "🔷 [Quantum Pulse]"

// TriggerSeparator joins triggered component names in log rows.
const TriggerSeparator = " + "

// FormatBuyAlert formats a BUY selection for delivery.
func FormatBuyAlert(res *model.CompositeResult) string {
	parts := make([]string, 0, model.NumComponents)
	values := res.Components.Values()
	for i, name := range model.ComponentNames {
		parts = append(parts, name+"="+strconv.FormatFloat(values[i], 'g', -1, 64))
	}

	var b strings.Builder
	b.WriteString(alertHeader + "\n")
	b.WriteString(fmt.Sprintf("📈 BUY %s\n", res.Ticker))
	b.WriteString(fmt.Sprintf("Composite Score: %.2f\n", res.Normalized))
	b.WriteString("Components: " + strings.Join(parts, ", "))
	return b.String()
}

// FormatExitAlert formats a triggered exit decision for delivery.
func FormatExitAlert(dec *model.ExitDecision) string {
	var b strings.Builder
	b.WriteString(alertHeader + "\n")
	b.WriteString(fmt.Sprintf("⚠️ EXIT %s\n", dec.Ticker))
	b.WriteString("Reasons: " + strings.Join(dec.Reasons, ", "))
	return b.String()
}

// CycleSummary is the per-cycle outcome shown in the summary message.
type CycleSummary struct {
	Scanned  int
	Skipped  int
	Buys     int
	Exits    int
	Triggers []string // tickers selected to buy, best first
}

// FormatCycleSummary formats the end-of-cycle report.
func FormatCycleSummary(s *CycleSummary) string {
	var b strings.Builder
	b.WriteString(alertHeader + "\n")
	b.WriteString(fmt.Sprintf("Scan complete: %d scanned, %d skipped\n", s.Scanned, s.Skipped))
	b.WriteString(fmt.Sprintf("BUY signals: %d | EXIT signals: %d", s.Buys, s.Exits))
	if len(s.Triggers) > 0 {
		b.WriteString("\nTop picks: " + strings.Join(s.Triggers, ", "))
	}
	return b.String()
}
