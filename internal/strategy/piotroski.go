package strategy

import (
	"errors"
	"fmt"

	"QuantumPulse/internal/model"
)

// FScorePassThreshold is the F-score at which the piotroski component
// scores 1 for the composite.
const FScorePassThreshold = 6

// ErrMissingFundamentals is returned when a statement set has fewer
// than two periods per statement type or a required field is unusable.
// The fundamental score is undefined in that case, never zero.
var ErrMissingFundamentals = errors.New("missing fundamental data")

// CalculateFScore computes the 9-criterion Piotroski F-score by
// comparing the two most recent reporting periods (index 0 = current,
// index 1 = prior). Each satisfied criterion adds one point.
func CalculateFScore(set *model.FinancialStatementSet) (int, error) {
	if set == nil || !set.HasTwoPeriods() {
		return 0, ErrMissingFundamentals
	}

	income := set.Income
	balance := set.Balance
	cashFlow := set.CashFlow

	// A zero denominator means the required field was absent upstream.
	if balance[0].TotalAssets == 0 || balance[1].TotalAssets == 0 ||
		balance[0].TotalCurrentLiabilities == 0 || balance[1].TotalCurrentLiabilities == 0 ||
		income[0].Revenue == 0 || income[1].Revenue == 0 {
		return 0, fmt.Errorf("%w: zero denominator", ErrMissingFundamentals)
	}

	score := 0

	// 1. Positive net income (current period).
	if income[0].NetIncome > 0 {
		score++
	}

	// 2. Positive operating cash flow (current period).
	if cashFlow[0].OperatingCashFlow > 0 {
		score++
	}

	// 3. ROA improvement.
	roaCurr := income[0].NetIncome / balance[0].TotalAssets
	roaPrev := income[1].NetIncome / balance[1].TotalAssets
	if roaCurr > roaPrev {
		score++
	}

	// 4. Operating cash flow exceeds net income (earnings quality).
	if cashFlow[0].OperatingCashFlow > income[0].NetIncome {
		score++
	}

	// 5. Leverage decrease.
	levCurr := balance[0].LongTermDebt / balance[0].TotalAssets
	levPrev := balance[1].LongTermDebt / balance[1].TotalAssets
	if levCurr < levPrev {
		score++
	}

	// 6. Current-ratio improvement.
	crCurr := balance[0].TotalCurrentAssets / balance[0].TotalCurrentLiabilities
	crPrev := balance[1].TotalCurrentAssets / balance[1].TotalCurrentLiabilities
	if crCurr > crPrev {
		score++
	}

	// 7. No dilution.
	if balance[0].SharesOutstanding <= balance[1].SharesOutstanding {
		score++
	}

	// 8. Gross-margin improvement.
	gmCurr := income[0].GrossProfit / income[0].Revenue
	gmPrev := income[1].GrossProfit / income[1].Revenue
	if gmCurr > gmPrev {
		score++
	}

	// 9. Asset-turnover improvement.
	atCurr := income[0].Revenue / balance[0].TotalAssets
	atPrev := income[1].Revenue / balance[1].TotalAssets
	if atCurr > atPrev {
		score++
	}

	return score, nil
}

// ScorePiotroski thresholds the F-score into the binary component
// contribution: 1 when the F-score is at least FScorePassThreshold.
func ScorePiotroski(set *model.FinancialStatementSet) (float64, error) {
	fscore, err := CalculateFScore(set)
	if err != nil {
		return 0, err
	}
	if fscore >= FScorePassThreshold {
		return 1, nil
	}
	return 0, nil
}
