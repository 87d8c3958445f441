package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/networth/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SensitivityAnalyzer sweeps one plan parameter at a time through the base
// scenario and measures how the goal metrics move
type SensitivityAnalyzer struct {
	calculationEngine *CalculationEngine
}

// NewSensitivityAnalyzer creates a new sensitivity analyzer. A nil engine uses a default one.
func NewSensitivityAnalyzer(engine *CalculationEngine) *SensitivityAnalyzer {
	if engine == nil {
		engine = NewCalculationEngine()
	}
	return &SensitivityAnalyzer{
		calculationEngine: engine,
	}
}

// AnalyzeSingleParameter performs a single parameter sensitivity analysis
func (sa *SensitivityAnalyzer) AnalyzeSingleParameter(
	ctx context.Context,
	plan *domain.PlanInputs,
	target domain.GoalTarget,
	parameter domain.SensitivityParameter,
) (*domain.ParameterSensitivityAnalysis, error) {
	if plan == nil {
		return nil, fmt.Errorf("plan inputs cannot be nil")
	}

	base, err := sa.run(plan, target, parameter.Name, parameter.BaseValue)
	if err != nil {
		return nil, err
	}
	baseMetrics := metricsFor(base)

	values := sa.generateParameterValues(parameter)
	results := make([]domain.SensitivityResult, 0, len(values))
	for _, value := range values {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sim, err := sa.run(plan, target, parameter.Name, value)
		if err != nil {
			return nil, err
		}
		metrics := compareMetrics(metricsFor(sim), baseMetrics)

		results = append(results, domain.SensitivityResult{
			Parameter:      parameter.Name,
			ParameterValue: value,
			IsBase:         value.Equal(parameter.BaseValue),
			KeyMetrics:     metrics,
		})
		sa.calculationEngine.logger().Debugf("sensitivity %s=%s: reached=%t month=%d final=%s",
			parameter.Name, value.String(), metrics.Reached, metrics.MonthsToGoal, metrics.FinalNetWorth.StringFixed(2))
	}

	return &domain.ParameterSensitivityAnalysis{
		Target:       target,
		Parameters:   []domain.SensitivityParameter{parameter},
		Results:      results,
		Summary:      sa.calculateSensitivitySummary([]domain.SensitivityParameter{parameter}, results),
		AnalysisType: "single",
	}, nil
}

// AnalyzeMultipleParameters runs each parameter sweep independently and ranks them
func (sa *SensitivityAnalyzer) AnalyzeMultipleParameters(
	ctx context.Context,
	plan *domain.PlanInputs,
	target domain.GoalTarget,
	parameters []domain.SensitivityParameter,
) (*domain.ParameterSensitivityAnalysis, error) {
	if len(parameters) == 0 {
		return nil, fmt.Errorf("at least one parameter is required")
	}

	var allResults []domain.SensitivityResult
	for _, param := range parameters {
		analysis, err := sa.AnalyzeSingleParameter(ctx, plan, target, param)
		if err != nil {
			return nil, fmt.Errorf("failed to analyze parameter %s: %w", param.Name, err)
		}
		allResults = append(allResults, analysis.Results...)
	}

	return &domain.ParameterSensitivityAnalysis{
		Target:       target,
		Parameters:   parameters,
		Results:      allResults,
		Summary:      sa.calculateSensitivitySummary(parameters, allResults),
		AnalysisType: "multi",
	}, nil
}

// generateParameterValues generates evenly spaced values from MinValue to MaxValue
func (sa *SensitivityAnalyzer) generateParameterValues(param domain.SensitivityParameter) []decimal.Decimal {
	if param.Steps <= 1 {
		return []decimal.Decimal{param.BaseValue}
	}

	values := make([]decimal.Decimal, 0, param.Steps)
	stepSize := param.MaxValue.Sub(param.MinValue).Div(decimal.NewFromInt(int64(param.Steps - 1)))
	for i := range param.Steps {
		values = append(values, param.MinValue.Add(stepSize.Mul(decimal.NewFromInt(int64(i)))))
	}
	return values
}

// run simulates the base scenario with one parameter replaced
func (sa *SensitivityAnalyzer) run(plan *domain.PlanInputs, target domain.GoalTarget, name string, value decimal.Decimal) (*domain.SimulationResult, error) {
	income := plan.Income
	scenario := domain.Scenario{
		Label:            domain.ScenarioBase,
		AnnualReturnRate: plan.AnnualReturnRate,
	}
	params := PlanParams(plan, scenario, target)

	switch name {
	case domain.ParamAnnualReturnRate:
		params.AnnualReturnRate = value
	case domain.ParamMonthlyExpenses:
		params.MonthlyExpenses = value
	case domain.ParamWorkMonthly:
		income.WorkMonthly = value
	default:
		return nil, fmt.Errorf("unknown sensitivity parameter: %s", name)
	}
	params.Income = PlanIncome(income)

	return sa.calculationEngine.Simulate(params), nil
}

func metricsFor(sim *domain.SimulationResult) domain.SensitivityMetrics {
	m := domain.SensitivityMetrics{
		Reached:       sim.Reached(),
		FinalNetWorth: sim.FinalNetWorth(),
		Shortfall:     sim.Shortfall(),
	}
	if sim.Hit != nil {
		m.MonthsToGoal = sim.Hit.MonthIndex
	}
	return m
}

func compareMetrics(m, base domain.SensitivityMetrics) domain.SensitivityMetrics {
	m.NetWorthChange = m.FinalNetWorth.Sub(base.FinalNetWorth)
	if !base.FinalNetWorth.IsZero() {
		m.NetWorthChangePct = m.NetWorthChange.Div(base.FinalNetWorth.Abs()).Mul(hundred)
	}
	if m.Reached && base.Reached {
		diff := m.MonthsToGoal - base.MonthsToGoal
		m.MonthsChange = &diff
	}
	return m
}

// calculateSensitivitySummary scores each parameter by its largest elasticity
func (sa *SensitivityAnalyzer) calculateSensitivitySummary(parameters []domain.SensitivityParameter, results []domain.SensitivityResult) domain.SensitivitySummary {
	summary := domain.SensitivitySummary{
		SensitivityScores: make(map[string]decimal.Decimal),
	}

	maxScore := decimal.NewFromInt(-1)
	for _, param := range parameters {
		score := decimal.Zero
		for i := range results {
			r := &results[i]
			if r.Parameter != param.Name || r.IsBase || param.BaseValue.IsZero() {
				continue
			}
			change := r.ParameterValue.Sub(param.BaseValue).Div(param.BaseValue.Abs()).Mul(hundred)
			if s := r.KeyMetrics.CalculateSensitivityScore(change); s.GreaterThan(score) {
				score = s
			}
		}

		summary.SensitivityScores[param.Name] = score.Round(4)
		if score.GreaterThan(maxScore) {
			maxScore = score
			summary.MostSensitiveParameter = param.Name
		}
	}

	summary.RiskLevel = summary.DetermineRiskLevel()
	summary.Recommendations = summary.GenerateRecommendations()
	return summary
}
