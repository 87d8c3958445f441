package calculation

import (
	"github.com/rgehrsitz/networth/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultLumpSumMonths are the loop indices a lump sum is disbursed at when
// none are configured.
var DefaultLumpSumMonths = []int{3, 8}

// SplitLumpSum divides total into equal disbursements at the given zero-based
// month indices. Repeated indices accumulate. A zero total or an empty month
// list yields an empty schedule.
func SplitLumpSum(total decimal.Decimal, months ...int) domain.LumpSumSchedule {
	schedule := domain.LumpSumSchedule{}
	if total.IsZero() || len(months) == 0 {
		return schedule
	}

	share := total.Div(decimal.NewFromInt(int64(len(months))))
	for _, m := range months {
		if existing, ok := schedule[m]; ok {
			schedule[m] = existing.Add(share)
			continue
		}
		schedule[m] = share
	}
	return schedule
}

// TotalLumpSums returns the sum of every scheduled disbursement
func TotalLumpSums(schedule domain.LumpSumSchedule) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range schedule {
		total = total.Add(amount)
	}
	return total
}
