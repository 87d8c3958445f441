package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountState holds the three balances stepped by the simulation engine.
// Debt is only ever subtracted; it is never updated during a run.
type AccountState struct {
	Earning decimal.Decimal `json:"earning"` // invested principal, compounds monthly
	Cash    decimal.Decimal `json:"cash"`    // liquid buffer, does not compound
	Debt    decimal.Decimal `json:"debt"`    // static liability
}

// NetWorth returns earning + cash - debt
func (a AccountState) NetWorth() decimal.Decimal {
	return a.Earning.Add(a.Cash).Sub(a.Debt)
}

// MonthlyRecord represents the recorded state at the end of a single simulated month
type MonthlyRecord struct {
	Month          int             `json:"month"` // 1-based sequence number
	Date           time.Time       `json:"date"`
	NetWorth       decimal.Decimal `json:"net_worth"`
	EarningBalance decimal.Decimal `json:"earning_balance"`
	CashBalance    decimal.Decimal `json:"cash_balance"`
}

// GoalHit records the first month whose net worth met or exceeded the target
type GoalHit struct {
	MonthIndex int             `json:"month_index"` // equals the Month of the crossing record
	Date       time.Time       `json:"date"`
	NetWorth   decimal.Decimal `json:"net_worth"`
}

// SimulationResult is the output of one engine run. Hit is nil when the
// target was never reached within the horizon.
type SimulationResult struct {
	Target  decimal.Decimal `json:"target"`
	Records []MonthlyRecord `json:"records"`
	Hit     *GoalHit        `json:"hit,omitempty"`
}

// Reached reports whether the target was crossed within the horizon
func (sr *SimulationResult) Reached() bool {
	return sr != nil && sr.Hit != nil
}

// Final returns the last recorded month, or false for an empty series
func (sr *SimulationResult) Final() (MonthlyRecord, bool) {
	if sr == nil || len(sr.Records) == 0 {
		return MonthlyRecord{}, false
	}
	return sr.Records[len(sr.Records)-1], true
}

// FinalNetWorth returns the net worth of the last recorded month (zero if empty)
func (sr *SimulationResult) FinalNetWorth() decimal.Decimal {
	rec, ok := sr.Final()
	if !ok {
		return decimal.Zero
	}
	return rec.NetWorth
}

// RecordAt returns the record for a 1-based month number
func (sr *SimulationResult) RecordAt(month int) (MonthlyRecord, bool) {
	if sr == nil || month < 1 || month > len(sr.Records) {
		return MonthlyRecord{}, false
	}
	return sr.Records[month-1], true
}

// Shortfall returns how far the final net worth is below the target.
// It is zero when the target was reached.
func (sr *SimulationResult) Shortfall() decimal.Decimal {
	if sr.Reached() {
		return decimal.Zero
	}
	gap := sr.Target.Sub(sr.FinalNetWorth())
	if gap.IsNegative() {
		return decimal.Zero
	}
	return gap
}

// NetWorthSeries returns the net worth of every record as float64 values for charting
func (sr *SimulationResult) NetWorthSeries() []float64 {
	if sr == nil {
		return nil
	}
	points := make([]float64, len(sr.Records))
	for i, rec := range sr.Records {
		points[i] = rec.NetWorth.InexactFloat64()
	}
	return points
}
