package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// IncomeFunction maps a zero-based month index to that month's cash inflow.
// Implementations must be deterministic and free of side effects.
type IncomeFunction func(month int) decimal.Decimal

// LumpSumSchedule maps a month index to a one-time cash amount.
//
// Keys are zero-based, pre-increment loop indices: key 3 is applied while
// producing the record with Month == 4. The amount is added to cash after the
// sweep, so it is only swept into earning on the following month.
type LumpSumSchedule map[int]decimal.Decimal

// Scenario names produced by the scenario runner
const (
	ScenarioAggressive   = "Aggressive"
	ScenarioBase         = "Base"
	ScenarioConservative = "Conservative"
)

// Scenario is a named bundle of return-rate and income-schedule overrides
type Scenario struct {
	Label            string          `json:"label"`
	Description      string          `json:"description"`
	AnnualReturnRate decimal.Decimal `json:"annual_return_rate"`
	Income           IncomeFunction  `json:"-"`
}

// IncomeParams are the base income inputs every scenario is built from
type IncomeParams struct {
	GrantMonthly   decimal.Decimal `json:"grant_monthly"`
	GrantMonths    int             `json:"grant_months"`
	WorkMonthly    decimal.Decimal `json:"work_monthly"`
	WorkStartMonth int             `json:"work_start_month"` // zero-based month index
}

// GoalTarget is a net-worth threshold paired with the horizon it is simulated over
type GoalTarget struct {
	Name          string          `json:"name"`
	Amount        decimal.Decimal `json:"amount"`
	HorizonMonths int             `json:"horizon_months"`
}

// RequiredContributionParams are the inputs of the required-contribution solver
type RequiredContributionParams struct {
	Target              decimal.Decimal `json:"target"`
	HorizonMonths       int             `json:"horizon_months"`
	AnnualReturnRate    decimal.Decimal `json:"annual_return_rate"`
	StartEarningBalance decimal.Decimal `json:"start_earning_balance"`
	BufferAmount        decimal.Decimal `json:"buffer_amount"`
	DebtAmount          decimal.Decimal `json:"debt_amount"`
}

// PlanInputs are the fully derived, caller-supplied inputs of a projection run.
// Everything the core needs is explicit here; there are no hidden defaults.
type PlanInputs struct {
	StartDate        time.Time       `json:"start_date"`
	Start            AccountState    `json:"start"`
	MonthlyExpenses  decimal.Decimal `json:"monthly_expenses"`
	InvestBuffer     decimal.Decimal `json:"invest_buffer"`
	AnnualReturnRate decimal.Decimal `json:"annual_return_rate"`
	Income           IncomeParams    `json:"income"`
	LumpSums         LumpSumSchedule `json:"lump_sums"`
	NearTarget       GoalTarget      `json:"near_target"`
	FarTarget        GoalTarget      `json:"far_target"`
}

// Targets returns the near and far targets in run order
func (p *PlanInputs) Targets() []GoalTarget {
	return []GoalTarget{p.NearTarget, p.FarTarget}
}

// ContributionParams builds solver inputs for a target using the plan's starting balances
func (p *PlanInputs) ContributionParams(target GoalTarget) RequiredContributionParams {
	return RequiredContributionParams{
		Target:              target.Amount,
		HorizonMonths:       target.HorizonMonths,
		AnnualReturnRate:    p.AnnualReturnRate,
		StartEarningBalance: p.Start.Earning,
		BufferAmount:        p.Start.Cash,
		DebtAmount:          p.Start.Debt,
	}
}

// ScenarioConfig is the serializable form of a scenario: a return rate and the
// income parameters its income function is built from
type ScenarioConfig struct {
	Label            string          `json:"label"`
	Description      string          `json:"description,omitempty"`
	AnnualReturnRate decimal.Decimal `json:"annual_return_rate"`
	Income           IncomeParams    `json:"income"`
}

// DeepCopy returns an independent copy of the configuration
func (c *ScenarioConfig) DeepCopy() *ScenarioConfig {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// BaseScenarioConfig returns the unmodified scenario configuration of a plan
func (p *PlanInputs) BaseScenarioConfig() *ScenarioConfig {
	return &ScenarioConfig{
		Label:            ScenarioBase,
		AnnualReturnRate: p.AnnualReturnRate,
		Income:           p.Income,
	}
}
