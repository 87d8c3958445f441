package calculation

import (
	"context"
	"testing"

	"github.com/rgehrsitz/networth/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sensitivityPlan() *domain.PlanInputs {
	return &domain.PlanInputs{
		StartDate:        testStart,
		Start:            domain.AccountState{Earning: d(100000), Cash: d(10000), Debt: d(5000)},
		MonthlyExpenses:  d(4000),
		InvestBuffer:     d(10000),
		AnnualReturnRate: decimal.NewFromFloat(0.07),
		Income: domain.IncomeParams{
			WorkMonthly:    d(8000),
			WorkStartMonth: 0,
		},
		NearTarget: domain.GoalTarget{Name: "Near", Amount: d(180000), HorizonMonths: 36},
		FarTarget:  domain.GoalTarget{Name: "Far", Amount: d(1000000), HorizonMonths: 120},
	}
}

func TestGenerateParameterValues(t *testing.T) {
	sa := NewSensitivityAnalyzer(nil)

	values := sa.generateParameterValues(domain.ReturnRateParameter(decimal.NewFromFloat(0.07)))
	require.Len(t, values, 7)
	assert.True(t, values[0].Equal(decimal.NewFromFloat(0.04)), "got %s", values[0])
	assert.True(t, values[3].Equal(decimal.NewFromFloat(0.07)), "got %s", values[3])
	assert.True(t, values[6].Equal(decimal.NewFromFloat(0.10)), "got %s", values[6])

	single := sa.generateParameterValues(domain.SensitivityParameter{BaseValue: d(5), Steps: 1})
	assert.Equal(t, []decimal.Decimal{d(5)}, single)
}

func TestAnalyzeSingleParameter_ReturnRate(t *testing.T) {
	sa := NewSensitivityAnalyzer(nil)
	plan := sensitivityPlan()
	param := domain.ReturnRateParameter(plan.AnnualReturnRate)

	analysis, err := sa.AnalyzeSingleParameter(context.Background(), plan, plan.FarTarget, param)
	require.NoError(t, err)

	assert.Equal(t, "single", analysis.AnalysisType)
	require.Len(t, analysis.Results, 7)

	base := analysis.Results[3]
	assert.True(t, base.IsBase)
	assert.True(t, base.KeyMetrics.NetWorthChange.IsZero())

	// Higher returns never lower final net worth
	for i := 1; i < len(analysis.Results); i++ {
		prev := analysis.Results[i-1].KeyMetrics.FinalNetWorth
		cur := analysis.Results[i].KeyMetrics.FinalNetWorth
		assert.True(t, cur.GreaterThan(prev), "step %d: %s <= %s", i, cur, prev)
	}
	assert.True(t, analysis.Results[0].KeyMetrics.NetWorthChange.IsNegative())
	assert.True(t, analysis.Results[6].KeyMetrics.NetWorthChange.IsPositive())

	assert.Equal(t, domain.ParamAnnualReturnRate, analysis.Summary.MostSensitiveParameter)
	assert.Contains(t, analysis.Summary.SensitivityScores, domain.ParamAnnualReturnRate)
	assert.NotEmpty(t, analysis.Summary.RiskLevel)
	assert.NotEmpty(t, analysis.Summary.Recommendations)
}

func TestAnalyzeSingleParameter_MatchesEngine(t *testing.T) {
	engine := NewCalculationEngine()
	sa := NewSensitivityAnalyzer(engine)
	plan := sensitivityPlan()

	analysis, err := sa.AnalyzeSingleParameter(context.Background(), plan, plan.NearTarget, domain.MonthlyExpensesParameter(plan.MonthlyExpenses))
	require.NoError(t, err)

	var base *domain.SensitivityResult
	for i := range analysis.Results {
		if analysis.Results[i].IsBase {
			base = &analysis.Results[i]
		}
	}
	require.NotNil(t, base)

	scenario := domain.Scenario{AnnualReturnRate: plan.AnnualReturnRate, Income: PlanIncome(plan.Income)}
	direct := engine.Simulate(PlanParams(plan, scenario, plan.NearTarget))
	assert.True(t, base.KeyMetrics.FinalNetWorth.Equal(direct.FinalNetWorth()))
	assert.Equal(t, direct.Reached(), base.KeyMetrics.Reached)
}

func TestAnalyzeSingleParameter_MonthsChange(t *testing.T) {
	sa := NewSensitivityAnalyzer(nil)
	plan := sensitivityPlan()

	analysis, err := sa.AnalyzeSingleParameter(context.Background(), plan, plan.NearTarget, domain.WorkIncomeParameter(plan.Income.WorkMonthly))
	require.NoError(t, err)
	require.Len(t, analysis.Results, 5)

	low := analysis.Results[0].KeyMetrics
	high := analysis.Results[4].KeyMetrics
	require.True(t, low.Reached)
	require.True(t, high.Reached)
	require.NotNil(t, low.MonthsChange)
	require.NotNil(t, high.MonthsChange)

	// Less work income reaches the target later, more income sooner
	assert.GreaterOrEqual(t, *low.MonthsChange, 0)
	assert.LessOrEqual(t, *high.MonthsChange, 0)
	assert.Greater(t, low.MonthsToGoal, high.MonthsToGoal)
}

func TestAnalyzeSingleParameter_Errors(t *testing.T) {
	sa := NewSensitivityAnalyzer(nil)
	plan := sensitivityPlan()

	_, err := sa.AnalyzeSingleParameter(context.Background(), nil, plan.NearTarget, domain.ReturnRateParameter(d(0)))
	assert.Error(t, err)

	_, err = sa.AnalyzeSingleParameter(context.Background(), plan, plan.NearTarget, domain.SensitivityParameter{Name: "inflation", Steps: 3})
	assert.ErrorContains(t, err, "unknown sensitivity parameter")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = sa.AnalyzeSingleParameter(ctx, plan, plan.NearTarget, domain.ReturnRateParameter(plan.AnnualReturnRate))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeMultipleParameters(t *testing.T) {
	sa := NewSensitivityAnalyzer(nil)
	plan := sensitivityPlan()
	params := domain.GetCommonParameters(plan)

	analysis, err := sa.AnalyzeMultipleParameters(context.Background(), plan, plan.FarTarget, params)
	require.NoError(t, err)

	assert.Equal(t, "multi", analysis.AnalysisType)
	assert.Len(t, analysis.Results, 7+5+5)
	assert.Len(t, analysis.Summary.SensitivityScores, 3)

	best := analysis.Summary.SensitivityScores[analysis.Summary.MostSensitiveParameter]
	for name, score := range analysis.Summary.SensitivityScores {
		assert.True(t, best.GreaterThanOrEqual(score), "%s scored higher than most sensitive", name)
	}

	_, err = sa.AnalyzeMultipleParameters(context.Background(), plan, plan.FarTarget, nil)
	assert.Error(t, err)
}
