package compare

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/networth/internal/domain"
	"github.com/shopspring/decimal"
)

// TargetOutcome is one engine run of a scenario against one target, with its metrics
type TargetOutcome struct {
	Target domain.GoalTarget        `json:"target"`
	Result *domain.SimulationResult `json:"result"`

	// Key Metrics
	Reached       bool            `json:"reached"`
	MonthsToGoal  int             `json:"monthsToGoal,omitempty"` // 1-based month of the first crossing
	GoalDate      *time.Time      `json:"goalDate,omitempty"`
	FinalNetWorth decimal.Decimal `json:"finalNetWorth"`
	Shortfall     decimal.Decimal `json:"shortfall"`

	// Comparison to Base. MonthsDiffFromBase is nil unless both runs reached the target.
	MonthsDiffFromBase   *int            `json:"monthsDiffFromBase,omitempty"`
	NetWorthDiffFromBase decimal.Decimal `json:"netWorthDiffFromBase"`
	NetWorthPctFromBase  decimal.Decimal `json:"netWorthPctFromBase"`
}

// ComparisonResult holds both target runs of a single scenario
type ComparisonResult struct {
	ScenarioName     string                 `json:"scenarioName"`
	Description      string                 `json:"description"`
	Config           *domain.ScenarioConfig `json:"config"`
	AnnualReturnRate decimal.Decimal        `json:"annualReturnRate"`

	Near TargetOutcome `json:"near"`
	Far  TargetOutcome `json:"far"`
}

// Outcomes returns the near and far outcomes in run order
func (cr *ComparisonResult) Outcomes() []*TargetOutcome {
	return []*TargetOutcome{&cr.Near, &cr.Far}
}

// ComparisonSet is the runner output: every scenario against both targets
type ComparisonSet struct {
	BaseScenarioName string             `json:"baseScenarioName"`
	StartDate        time.Time          `json:"startDate"`
	Results          []ComparisonResult `json:"results"`
	Recommendations  []string           `json:"recommendations"`
	ConfigPath       string             `json:"configPath,omitempty"`
	Fingerprint      string             `json:"fingerprint,omitempty"`
}

// Find returns the result for a scenario name, or nil
func (cs *ComparisonSet) Find(name string) *ComparisonResult {
	for i := range cs.Results {
		if cs.Results[i].ScenarioName == name {
			return &cs.Results[i]
		}
	}
	return nil
}

// Base returns the result the others are compared against, or nil
func (cs *ComparisonSet) Base() *ComparisonResult {
	return cs.Find(cs.BaseScenarioName)
}

// RunCount returns the number of engine runs in the set
func (cs *ComparisonSet) RunCount() int {
	count := 0
	for i := range cs.Results {
		for _, o := range cs.Results[i].Outcomes() {
			if o.Result != nil {
				count++
			}
		}
	}
	return count
}

// MetricsCalculator extracts key metrics from simulation results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateOutcome computes the metrics of one engine run
func (mc *MetricsCalculator) CalculateOutcome(target domain.GoalTarget, result *domain.SimulationResult) TargetOutcome {
	outcome := TargetOutcome{
		Target:        target,
		Result:        result,
		Reached:       result.Reached(),
		FinalNetWorth: result.FinalNetWorth(),
		Shortfall:     result.Shortfall(),
	}

	if result.Reached() {
		outcome.MonthsToGoal = result.Hit.MonthIndex
		date := result.Hit.Date
		outcome.GoalDate = &date
	}

	return outcome
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.Near = mc.compareOutcome(scenario.Near, base.Near)
	scenario.Far = mc.compareOutcome(scenario.Far, base.Far)
	return scenario
}

func (mc *MetricsCalculator) compareOutcome(outcome, base TargetOutcome) TargetOutcome {
	outcome.NetWorthDiffFromBase = outcome.FinalNetWorth.Sub(base.FinalNetWorth)

	if !base.FinalNetWorth.IsZero() {
		outcome.NetWorthPctFromBase = outcome.NetWorthDiffFromBase.
			Div(base.FinalNetWorth.Abs()).
			Mul(decimal.NewFromInt(100))
	}

	if outcome.Reached && base.Reached {
		diff := outcome.MonthsToGoal - base.MonthsToGoal
		outcome.MonthsDiffFromBase = &diff
	}

	return outcome
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.Results) == 0 {
		return recommendations
	}

	labels := []string{"near", "far"}
	for idx, label := range labels {
		var fastest *ComparisonResult
		var fastestOutcome *TargetOutcome
		var missed []string

		for i := range compSet.Results {
			res := &compSet.Results[i]
			outcome := res.Outcomes()[idx]
			if !outcome.Reached {
				missed = append(missed, fmt.Sprintf("%s (short $%s)", res.ScenarioName, outcome.Shortfall.StringFixed(0)))
				continue
			}
			if fastestOutcome == nil || outcome.MonthsToGoal < fastestOutcome.MonthsToGoal {
				fastest = res
				fastestOutcome = outcome
			}
		}

		name := targetLabel(compSet.Results[0].Outcomes()[idx].Target, label)
		if fastest != nil {
			recommendations = append(recommendations,
				fmt.Sprintf("Fastest to %s: %s reaches $%s in %d months (%s)",
					name, fastest.ScenarioName,
					fastestOutcome.Target.Amount.StringFixed(0),
					fastestOutcome.MonthsToGoal,
					fastestOutcome.GoalDate.Format("Jan 2006")))
		} else {
			recommendations = append(recommendations,
				fmt.Sprintf("No scenario reaches the %s target within its horizon", name))
		}

		if fastest != nil {
			for _, m := range missed {
				recommendations = append(recommendations,
					fmt.Sprintf("Misses the %s target: %s", name, m))
			}
		}
	}

	// Largest far-horizon net worth
	best := &compSet.Results[0]
	for i := range compSet.Results {
		if compSet.Results[i].Far.FinalNetWorth.GreaterThan(best.Far.FinalNetWorth) {
			best = &compSet.Results[i]
		}
	}
	recommendations = append(recommendations,
		fmt.Sprintf("Highest net worth after %d months: %s with $%s",
			best.Far.Target.HorizonMonths, best.ScenarioName, best.Far.FinalNetWorth.StringFixed(0)))

	return recommendations
}

func targetLabel(target domain.GoalTarget, fallback string) string {
	if target.Name != "" {
		return target.Name
	}
	return fallback
}
