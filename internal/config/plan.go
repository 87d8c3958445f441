package config

import (
	"time"

	"github.com/rgehrsitz/networth/internal/calculation"
	"github.com/rgehrsitz/networth/internal/domain"
	"github.com/shopspring/decimal"
)

// DerivePlan turns a validated configuration into engine inputs. Clamps the
// engine does not perform happen here: the investable part of cash is never
// negative and the starting cash never exceeds the buffer. now supplies the
// start month when the configuration has no start date.
func DerivePlan(config *domain.Configuration, now time.Time) *domain.PlanInputs {
	b := config.StartingBalances

	start := config.StartDate
	if start.IsZero() {
		start = now
	}

	surplusCash := decimal.Max(decimal.Zero, b.CashTotal.Sub(b.CashBuffer))
	cash := decimal.Max(decimal.Zero, decimal.Min(b.CashTotal, b.CashBuffer))

	lumpMonths := config.Income.LumpSumMonths
	if len(lumpMonths) == 0 {
		lumpMonths = calculation.DefaultLumpSumMonths
	}

	return &domain.PlanInputs{
		StartDate: FirstOfMonth(start),
		Start: domain.AccountState{
			Earning: b.Brokerage.Add(b.IRA).Add(b.RothIRA).Add(surplusCash),
			Cash:    cash,
			Debt:    b.CarLoan.Add(b.CreditCard),
		},
		MonthlyExpenses:  config.GlobalAssumptions.YearlyExpenses.Div(decimal.NewFromInt(12)),
		InvestBuffer:     b.CashBuffer,
		AnnualReturnRate: config.GlobalAssumptions.AnnualReturnRate,
		Income: domain.IncomeParams{
			GrantMonthly:   config.Income.GrantMonthly,
			GrantMonths:    config.Income.GrantMonths,
			WorkMonthly:    config.Income.WorkMonthly,
			WorkStartMonth: config.Income.WorkStartMonth,
		},
		LumpSums:   calculation.SplitLumpSum(config.Income.LumpSumTotal, lumpMonths...),
		NearTarget: goalTarget(config.Targets.Near, "Near"),
		FarTarget:  goalTarget(config.Targets.Far, "Far"),
	}
}

// FirstOfMonth returns midnight UTC on the first day of t's month
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func goalTarget(t domain.TargetConfig, fallback string) domain.GoalTarget {
	name := t.Name
	if name == "" {
		name = fallback
	}
	return domain.GoalTarget{
		Name:          name,
		Amount:        t.Amount,
		HorizonMonths: t.HorizonMonths,
	}
}
