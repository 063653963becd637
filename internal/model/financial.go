package model

import "time"

// FinancialPeriod holds the fields of one reporting period needed for
// fundamental scoring. Fields come from the income statement, balance
// sheet, and cash-flow statement for the same period end date.
type FinancialPeriod struct {
	PeriodEnd               time.Time
	NetIncome               float64
	OperatingCashFlow       float64
	TotalAssets             float64
	LongTermDebt            float64
	TotalCurrentAssets      float64
	TotalCurrentLiabilities float64
	SharesOutstanding       float64
	GrossProfit             float64
	Revenue                 float64
}

// FinancialStatementSet holds per-statement periods for one ticker,
// sorted descending by period end date (index 0 = most recent).
type FinancialStatementSet struct {
	Ticker   string
	Income   []FinancialPeriod
	Balance  []FinancialPeriod
	CashFlow []FinancialPeriod
}

// HasTwoPeriods reports whether every statement type carries at least
// the two periods the fundamental scorer needs.
func (f *FinancialStatementSet) HasTwoPeriods() bool {
	return len(f.Income) >= 2 && len(f.Balance) >= 2 && len(f.CashFlow) >= 2
}
