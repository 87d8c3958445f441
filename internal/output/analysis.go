package output

import (
	"sort"

	"github.com/rgehrsitz/networth/internal/compare"
	"github.com/shopspring/decimal"
)

// Recommendation encapsulates the selection result of the best scenario.
type Recommendation struct {
	ScenarioName  string
	Reached       bool
	MonthsToGoal  int
	FinalNetWorth decimal.Decimal
	MonthsVsBase  int // negative is sooner than base
}

// AnalyzeScenarios picks the scenario that reaches the far target soonest.
// Scenarios that never reach it rank after those that do, by final net worth.
func AnalyzeScenarios(set *compare.ComparisonSet) Recommendation {
	if set == nil || len(set.Results) == 0 {
		return Recommendation{}
	}

	ranked := make([]compare.ComparisonResult, len(set.Results))
	copy(ranked, set.Results)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].Far, ranked[j].Far
		if a.Reached != b.Reached {
			return a.Reached
		}
		if a.Reached && a.MonthsToGoal != b.MonthsToGoal {
			return a.MonthsToGoal < b.MonthsToGoal
		}
		return a.FinalNetWorth.GreaterThan(b.FinalNetWorth)
	})

	best := ranked[0]
	rec := Recommendation{
		ScenarioName:  best.ScenarioName,
		Reached:       best.Far.Reached,
		MonthsToGoal:  best.Far.MonthsToGoal,
		FinalNetWorth: best.Far.FinalNetWorth,
	}
	if best.Far.MonthsDiffFromBase != nil {
		rec.MonthsVsBase = *best.Far.MonthsDiffFromBase
	}
	return rec
}
