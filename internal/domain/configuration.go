package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StartingBalances are the balances the user holds today
type StartingBalances struct {
	Brokerage  decimal.Decimal `yaml:"brokerage" toml:"brokerage" json:"brokerage"`
	IRA        decimal.Decimal `yaml:"ira" toml:"ira" json:"ira"`
	RothIRA    decimal.Decimal `yaml:"roth_ira" toml:"roth_ira" json:"roth_ira"`
	CashTotal  decimal.Decimal `yaml:"cash_total" toml:"cash_total" json:"cash_total"`    // aggregate of all cash-like accounts
	CashBuffer decimal.Decimal `yaml:"cash_buffer" toml:"cash_buffer" json:"cash_buffer"` // desired liquid buffer
	CarLoan    decimal.Decimal `yaml:"car_loan" toml:"car_loan" json:"car_loan"`
	CreditCard decimal.Decimal `yaml:"credit_card" toml:"credit_card" json:"credit_card"`
}

// IncomeConfig describes grant income, work income and scheduled lump sums
type IncomeConfig struct {
	GrantMonthly   decimal.Decimal `yaml:"grant_monthly" toml:"grant_monthly" json:"grant_monthly"`
	GrantMonths    int             `yaml:"grant_months" toml:"grant_months" json:"grant_months"`
	WorkMonthly    decimal.Decimal `yaml:"work_monthly" toml:"work_monthly" json:"work_monthly"`
	WorkStartMonth int             `yaml:"work_start_month" toml:"work_start_month" json:"work_start_month"` // zero-based
	LumpSumTotal   decimal.Decimal `yaml:"lump_sum_total" toml:"lump_sum_total" json:"lump_sum_total"`
	LumpSumMonths  []int           `yaml:"lump_sum_months,omitempty" toml:"lump_sum_months,omitempty" json:"lump_sum_months,omitempty"` // zero-based, pre-increment
}

// GlobalAssumptions contains the rate and expense parameters shared by all scenarios
type GlobalAssumptions struct {
	AnnualReturnRate decimal.Decimal `yaml:"annual_return_rate" toml:"annual_return_rate" json:"annual_return_rate"`
	YearlyExpenses   decimal.Decimal `yaml:"yearly_expenses" toml:"yearly_expenses" json:"yearly_expenses"`
}

// TargetConfig is a single net-worth goal
type TargetConfig struct {
	Name          string          `yaml:"name,omitempty" toml:"name,omitempty" json:"name,omitempty"`
	Amount        decimal.Decimal `yaml:"amount" toml:"amount" json:"amount"`
	HorizonMonths int             `yaml:"horizon_months" toml:"horizon_months" json:"horizon_months"`
}

// Targets holds the nearer, smaller goal and the farther, larger goal
type Targets struct {
	Near TargetConfig `yaml:"near" toml:"near" json:"near"`
	Far  TargetConfig `yaml:"far" toml:"far" json:"far"`
}

// Configuration represents the complete input configuration
type Configuration struct {
	StartDate         time.Time         `yaml:"start_date,omitempty" toml:"start_date,omitempty" json:"start_date,omitempty"`
	StartingBalances  StartingBalances  `yaml:"starting_balances" toml:"starting_balances" json:"starting_balances"`
	Income            IncomeConfig      `yaml:"income" toml:"income" json:"income"`
	GlobalAssumptions GlobalAssumptions `yaml:"global_assumptions" toml:"global_assumptions" json:"global_assumptions"`
	Targets           Targets           `yaml:"targets" toml:"targets" json:"targets"`
}

// GenerateAssumptions returns human-readable assumption lines for reports
func (c *Configuration) GenerateAssumptions() []string {
	hundred := decimal.NewFromInt(100)
	return []string{
		"Annual return: " + c.GlobalAssumptions.AnnualReturnRate.Mul(hundred).StringFixed(2) + "% (monthly rate = annual / 12)",
		"Yearly expenses: $" + c.GlobalAssumptions.YearlyExpenses.StringFixed(0),
		"Cash above the $" + c.StartingBalances.CashBuffer.StringFixed(0) + " buffer is swept into investments monthly",
		"Debt is held constant (no amortization)",
		"No taxes, no inflation, deterministic returns",
	}
}
