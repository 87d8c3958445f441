package calculation

import (
	"github.com/rgehrsitz/networth/internal/domain"
	"github.com/shopspring/decimal"
)

// ConstantIncome pays the same amount every month
func ConstantIncome(amount decimal.Decimal) domain.IncomeFunction {
	return func(int) decimal.Decimal {
		return amount
	}
}

// GrantIncome pays amount for months [0, months) and nothing afterwards
func GrantIncome(amount decimal.Decimal, months int) domain.IncomeFunction {
	return func(month int) decimal.Decimal {
		if month >= 0 && month < months {
			return amount
		}
		return decimal.Zero
	}
}

// WorkIncome pays amount from startMonth (zero-based) onwards
func WorkIncome(amount decimal.Decimal, startMonth int) domain.IncomeFunction {
	return func(month int) decimal.Decimal {
		if month >= startMonth {
			return amount
		}
		return decimal.Zero
	}
}

// CombineIncome sums the given income functions. Nil entries are skipped.
func CombineIncome(fns ...domain.IncomeFunction) domain.IncomeFunction {
	return func(month int) decimal.Decimal {
		total := decimal.Zero
		for _, fn := range fns {
			if fn == nil {
				continue
			}
			total = total.Add(fn(month))
		}
		return total
	}
}

// PlanIncome is the grant income plus the work income described by p
func PlanIncome(p domain.IncomeParams) domain.IncomeFunction {
	return CombineIncome(
		GrantIncome(p.GrantMonthly, p.GrantMonths),
		WorkIncome(p.WorkMonthly, p.WorkStartMonth),
	)
}

// IncomeSchedule evaluates fn for months [0, months), useful for reporting
func IncomeSchedule(fn domain.IncomeFunction, months int) []decimal.Decimal {
	schedule := make([]decimal.Decimal, 0, max(months, 0))
	for m := 0; m < months; m++ {
		schedule = append(schedule, fn(m))
	}
	return schedule
}
