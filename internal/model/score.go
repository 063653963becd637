package model

// NumComponents is the size of the closed component vocabulary.
const NumComponents = 7

// ComponentNames lists the component vocabulary in its fixed order.
// Trigger strings, recorder columns, and weight iteration all share
// this ordering.
var ComponentNames = [NumComponents]string{
	"divergence",
	"piotroski",
	"rsi",
	"seasonality",
	"fair_value",
	"break_even",
	"cot",
}

// ComponentScoreSet holds one raw score per component. Components that
// abstained (no data) carry 0. Divergence is the only component with a
// signed range ({-1, 0, 1}); all others score in {0, 1}.
type ComponentScoreSet struct {
	Divergence  float64
	Piotroski   float64
	RSI         float64
	Seasonality float64
	FairValue   float64
	BreakEven   float64
	COT         float64
}

// Values returns the scores in ComponentNames order.
func (c ComponentScoreSet) Values() [NumComponents]float64 {
	return [NumComponents]float64{
		c.Divergence, c.Piotroski, c.RSI, c.Seasonality, c.FairValue, c.BreakEven, c.COT,
	}
}

// WeightTable assigns a non-negative weight to each component. Loaded
// once from configuration and read-only for the duration of a cycle.
type WeightTable struct {
	Divergence  float64 `yaml:"divergence"`
	Piotroski   float64 `yaml:"piotroski"`
	RSI         float64 `yaml:"rsi"`
	Seasonality float64 `yaml:"seasonality"`
	FairValue   float64 `yaml:"fair_value"`
	BreakEven   float64 `yaml:"break_even"`
	COT         float64 `yaml:"cot"`
}

// Values returns the weights in ComponentNames order.
func (w WeightTable) Values() [NumComponents]float64 {
	return [NumComponents]float64{
		w.Divergence, w.Piotroski, w.RSI, w.Seasonality, w.FairValue, w.BreakEven, w.COT,
	}
}

// Total returns the sum of all weights.
func (w WeightTable) Total() float64 {
	total := 0.0
	for _, v := range w.Values() {
		total += v
	}
	return total
}

// CompositeResult is the final scoring output for one ticker in one
// scan cycle. Read-only after creation.
type CompositeResult struct {
	Ticker     string
	Normalized float64 // 0-10, rounded to 2 decimals
	Components ComponentScoreSet
	Triggers   []string // component names with positive raw score, in fixed order
}

// ExitDecision is the exit vote for one ticker in one scan cycle.
type ExitDecision struct {
	Ticker    string
	Triggered bool
	Reasons   []string // in fixed evaluation order
}
