package calculation

import (
	"time"

	"github.com/rgehrsitz/networth/internal/domain"
	"github.com/shopspring/decimal"
)

// balancePrecision bounds the number of fractional digits carried by the
// compounding balance from one month to the next.
const balancePrecision = 10

var monthsPerYear = decimal.NewFromInt(12)

// SimulationParams are the inputs of a single engine run
type SimulationParams struct {
	StartDate        time.Time
	Months           int
	AnnualReturnRate decimal.Decimal
	MonthlyExpenses  decimal.Decimal
	Start            domain.AccountState
	Income           domain.IncomeFunction
	LumpSums         domain.LumpSumSchedule
	InvestBuffer     decimal.Decimal
	Target           decimal.Decimal
}

// PlanParams builds the run of one scenario against one target of a plan
func PlanParams(plan *domain.PlanInputs, scenario domain.Scenario, target domain.GoalTarget) SimulationParams {
	return SimulationParams{
		StartDate:        plan.StartDate,
		Months:           target.HorizonMonths,
		AnnualReturnRate: scenario.AnnualReturnRate,
		MonthlyExpenses:  plan.MonthlyExpenses,
		Start:            plan.Start,
		Income:           scenario.Income,
		LumpSums:         plan.LumpSums,
		InvestBuffer:     plan.InvestBuffer,
		Target:           target.Amount,
	}
}

// CalculationEngine steps an account state forward one month at a time
type CalculationEngine struct {
	Debug  bool // Enable per-month trace output
	Logger Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Logger: NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// MonthlyRate converts an annual rate to the simple monthly rate (annual / 12)
func MonthlyRate(annualRate decimal.Decimal) decimal.Decimal {
	return annualRate.Div(monthsPerYear)
}

// Simulate runs the monthly stepping procedure and returns a fresh result.
//
// Each month, in order: income minus expenses lands in cash, earning grows by
// annualRate/12, cash above the buffer is swept into earning, the month's lump
// sum (if any) is added to cash, the month is recorded, and the goal latch is
// checked. Debt is never modified. The run never fails: a target that is not
// reached leaves Hit nil, and a non-positive month count yields no records.
func (ce *CalculationEngine) Simulate(p SimulationParams) *domain.SimulationResult {
	result := &domain.SimulationResult{
		Target:  p.Target,
		Records: make([]domain.MonthlyRecord, 0, max(p.Months, 0)),
	}

	growth := decimal.NewFromInt(1).Add(MonthlyRate(p.AnnualReturnRate))
	earning := p.Start.Earning
	cash := p.Start.Cash
	debt := p.Start.Debt

	for m := 0; m < p.Months; m++ {
		income := decimal.Zero
		if p.Income != nil {
			income = p.Income(m)
		}
		cash = cash.Add(income).Sub(p.MonthlyExpenses)

		earning = earning.Mul(growth).Round(balancePrecision)

		if cash.GreaterThan(p.InvestBuffer) {
			earning = earning.Add(cash.Sub(p.InvestBuffer))
			cash = p.InvestBuffer
		}

		if lump, ok := p.LumpSums[m]; ok {
			cash = cash.Add(lump)
		}

		record := domain.MonthlyRecord{
			Month:          m + 1,
			Date:           p.StartDate.AddDate(0, m+1, 0),
			NetWorth:       earning.Add(cash).Sub(debt),
			EarningBalance: earning,
			CashBalance:    cash,
		}
		result.Records = append(result.Records, record)

		if result.Hit == nil && record.NetWorth.GreaterThanOrEqual(p.Target) {
			result.Hit = &domain.GoalHit{
				MonthIndex: record.Month,
				Date:       record.Date,
				NetWorth:   record.NetWorth,
			}
			ce.logger().Debugf("target %s reached in month %d (%s)", p.Target.StringFixed(0), record.Month, record.Date.Format("2006-01"))
		}

		if ce.Debug {
			ce.logger().Debugf("month %3d income=%s earning=%s cash=%s net=%s",
				record.Month, income.StringFixed(2), earning.StringFixed(2), cash.StringFixed(2), record.NetWorth.StringFixed(2))
		}
	}

	return result
}

func (ce *CalculationEngine) logger() Logger {
	if ce == nil || ce.Logger == nil {
		return NopLogger{}
	}
	return ce.Logger
}
