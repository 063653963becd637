package strategy

import (
	"math"

	"QuantumPulse/internal/calculator"
	"QuantumPulse/internal/model"
)

// Exit evaluation defaults.
const (
	DefaultExitRSIOverbought = 70.0
	DefaultFairValuePremium  = 1.10
	DefaultExitVotesRequired = 2
)

// Reason strings in the fixed evaluation order.
const (
	reasonOverbought     = "RSI overbought"
	reasonFairValue      = "Near/exceeds fair value"
	reasonMACDBearish    = "MACD bearish crossover"
	reasonBelowTrendLine = "Below 20 EMA"
)

// ExitInputs carries the latest-bar values the exit evaluator reads.
type ExitInputs struct {
	Close     float64
	RSI       float64
	EMA20     float64
	MACDHist  float64
	FairValue float64
}

// EvaluateExit votes on the four exit criteria for the latest bar:
// RSI overbought, close at/above a 10% premium to fair value, negative
// MACD histogram, and close below the 20 EMA. The decision triggers
// when at least votesRequired criteria are satisfied. Reasons are
// reported in the fixed evaluation order above. Stateless per call.
func EvaluateExit(ticker string, in ExitInputs, premium float64, votesRequired int) (model.ExitDecision, error) {
	if math.IsNaN(in.RSI) || math.IsNaN(in.EMA20) || math.IsNaN(in.MACDHist) {
		return model.ExitDecision{}, calculator.ErrInsufficientHistory
	}

	var reasons []string
	if in.RSI > DefaultExitRSIOverbought {
		reasons = append(reasons, reasonOverbought)
	}
	if in.Close >= in.FairValue*premium {
		reasons = append(reasons, reasonFairValue)
	}
	if in.MACDHist < 0 {
		reasons = append(reasons, reasonMACDBearish)
	}
	if in.Close < in.EMA20 {
		reasons = append(reasons, reasonBelowTrendLine)
	}

	return model.ExitDecision{
		Ticker:    ticker,
		Triggered: len(reasons) >= votesRequired,
		Reasons:   reasons,
	}, nil
}
