package domain

import (
	"github.com/shopspring/decimal"
)

// Sensitivity parameter names
const (
	ParamAnnualReturnRate = "annual_return_rate"
	ParamMonthlyExpenses  = "monthly_expenses"
	ParamWorkMonthly      = "work_monthly"
)

// SensitivityParameter represents a parameter to sweep in sensitivity analysis
type SensitivityParameter struct {
	Name        string          `yaml:"name" json:"name"`
	MinValue    decimal.Decimal `yaml:"min_value" json:"minValue"`
	MaxValue    decimal.Decimal `yaml:"max_value" json:"maxValue"`
	Steps       int             `yaml:"steps" json:"steps"`
	BaseValue   decimal.Decimal `yaml:"base_value" json:"baseValue"`
	Unit        string          `yaml:"unit" json:"unit"` // "percent" or "dollars"
	Description string          `yaml:"description" json:"description"`
}

// ParameterSensitivityAnalysis is a sweep of one or more parameters against one target
type ParameterSensitivityAnalysis struct {
	Target       GoalTarget             `json:"target"`
	Parameters   []SensitivityParameter `json:"parameters"`
	Results      []SensitivityResult    `json:"results"`
	Summary      SensitivitySummary     `json:"summary"`
	AnalysisType string                 `json:"analysisType"` // "single" or "multi"
}

// SensitivityResult is one engine run at one parameter value
type SensitivityResult struct {
	Parameter      string             `json:"parameter"`
	ParameterValue decimal.Decimal    `json:"parameterValue"`
	IsBase         bool               `json:"isBase"`
	KeyMetrics     SensitivityMetrics `json:"keyMetrics"`
}

// SensitivityMetrics are the goal metrics of a run and their change from the base value
type SensitivityMetrics struct {
	Reached           bool            `json:"reached"`
	MonthsToGoal      int             `json:"monthsToGoal,omitempty"`
	FinalNetWorth     decimal.Decimal `json:"finalNetWorth"`
	Shortfall         decimal.Decimal `json:"shortfall"`
	NetWorthChange    decimal.Decimal `json:"netWorthChange"`
	NetWorthChangePct decimal.Decimal `json:"netWorthChangePct"`
	MonthsChange      *int            `json:"monthsChange,omitempty"` // nil unless both runs reached the target
}

// SensitivitySummary provides overall analysis summary
type SensitivitySummary struct {
	MostSensitiveParameter string                     `json:"mostSensitiveParameter"`
	SensitivityScores      map[string]decimal.Decimal `json:"sensitivityScores"`
	Recommendations        []string                   `json:"recommendations"`
	RiskLevel              string                     `json:"riskLevel"` // "LOW", "MEDIUM", "HIGH", "CRITICAL"
}

// GetCommonParameters returns the standard sweeps centred on the plan's own values
func GetCommonParameters(plan *PlanInputs) []SensitivityParameter {
	return []SensitivityParameter{
		ReturnRateParameter(plan.AnnualReturnRate),
		MonthlyExpensesParameter(plan.MonthlyExpenses),
		WorkIncomeParameter(plan.Income.WorkMonthly),
	}
}

// ReturnRateParameter sweeps the annual return three points either side of base
func ReturnRateParameter(base decimal.Decimal) SensitivityParameter {
	spread := decimal.NewFromFloat(0.03)
	return SensitivityParameter{
		Name:        ParamAnnualReturnRate,
		MinValue:    base.Sub(spread),
		MaxValue:    base.Add(spread),
		Steps:       7,
		BaseValue:   base,
		Unit:        "percent",
		Description: "Annual investment return applied monthly as rate / 12",
	}
}

// MonthlyExpensesParameter sweeps monthly expenses 25% either side of base
func MonthlyExpensesParameter(base decimal.Decimal) SensitivityParameter {
	return dollarsParameter(ParamMonthlyExpenses, base, "Monthly expenses deducted from cash")
}

// WorkIncomeParameter sweeps monthly work income 25% either side of base
func WorkIncomeParameter(base decimal.Decimal) SensitivityParameter {
	return dollarsParameter(ParamWorkMonthly, base, "Monthly work income once work starts")
}

func dollarsParameter(name string, base decimal.Decimal, description string) SensitivityParameter {
	spread := base.Mul(decimal.NewFromFloat(0.25)).Round(2)
	return SensitivityParameter{
		Name:        name,
		MinValue:    base.Sub(spread),
		MaxValue:    base.Add(spread),
		Steps:       5,
		BaseValue:   base,
		Unit:        "dollars",
		Description: description,
	}
}

// CalculateSensitivityScore is the elasticity of final net worth: the percent
// change in net worth per percent change in the parameter
func (sm *SensitivityMetrics) CalculateSensitivityScore(parameterChangePct decimal.Decimal) decimal.Decimal {
	if parameterChangePct.IsZero() {
		return decimal.Zero
	}
	return sm.NetWorthChangePct.Abs().Div(parameterChangePct.Abs())
}

// DetermineRiskLevel determines the risk level based on sensitivity scores
func (ss *SensitivitySummary) DetermineRiskLevel() string {
	maxScore := decimal.Zero
	for _, score := range ss.SensitivityScores {
		if score.GreaterThan(maxScore) {
			maxScore = score
		}
	}

	if maxScore.LessThan(decimal.NewFromFloat(0.5)) {
		return "LOW"
	} else if maxScore.LessThan(decimal.NewFromFloat(1.5)) {
		return "MEDIUM"
	} else if maxScore.LessThan(decimal.NewFromFloat(3.0)) {
		return "HIGH"
	} else {
		return "CRITICAL"
	}
}

// GenerateRecommendations generates recommendations based on sensitivity analysis
func (ss *SensitivitySummary) GenerateRecommendations() []string {
	recommendations := []string{}

	switch ss.DetermineRiskLevel() {
	case "LOW":
		recommendations = append(recommendations, "Plan is robust to parameter changes")
	case "MEDIUM":
		recommendations = append(recommendations, "Monitor key parameters regularly")
	case "HIGH":
		recommendations = append(recommendations, "Plan is sensitive to parameter changes")
		recommendations = append(recommendations, "Compare against the Conservative scenario before committing")
	case "CRITICAL":
		recommendations = append(recommendations, "⚠️ Plan is highly sensitive to parameter changes")
		recommendations = append(recommendations, "Build a larger margin into the target horizon")
	}

	switch ss.MostSensitiveParameter {
	case ParamAnnualReturnRate:
		recommendations = append(recommendations, "Outcome depends mostly on investment returns")
	case ParamMonthlyExpenses:
		recommendations = append(recommendations, "Reducing expenses has the largest effect")
	case ParamWorkMonthly:
		recommendations = append(recommendations, "Work income has the largest effect")
	}

	return recommendations
}
