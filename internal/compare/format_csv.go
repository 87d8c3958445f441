package compare

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVFormatter formats comparison results as CSV, one row per scenario and target
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Target",
		"Target Amount",
		"Horizon (Months)",
		"Annual Return",
		"Reached",
		"Months To Goal",
		"Goal Date",
		"Final Net Worth",
		"Shortfall",
		"Net Worth Diff from Base",
		"Net Worth % Change",
		"Months Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for i := range compSet.Results {
		res := &compSet.Results[i]
		scenarioType := "alternative"
		if res.ScenarioName == compSet.BaseScenarioName {
			scenarioType = "base"
		}
		for _, o := range res.Outcomes() {
			if err := writer.Write(cf.formatRow(res, o, scenarioType)); err != nil {
				return "", err
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a single target outcome as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, o *TargetOutcome, scenarioType string) []string {
	goalDate := ""
	monthsToGoal := ""
	if o.Reached && o.GoalDate != nil {
		goalDate = o.GoalDate.Format("2006-01-02")
		monthsToGoal = formatInt(o.MonthsToGoal)
	}

	monthsDiff := ""
	if o.MonthsDiffFromBase != nil {
		monthsDiff = formatInt(*o.MonthsDiffFromBase)
	}

	return []string{
		result.ScenarioName,
		scenarioType,
		o.Target.Name,
		o.Target.Amount.StringFixed(2),
		formatInt(o.Target.HorizonMonths),
		result.AnnualReturnRate.String(),
		fmt.Sprintf("%t", o.Reached),
		monthsToGoal,
		goalDate,
		o.FinalNetWorth.StringFixed(2),
		o.Shortfall.StringFixed(2),
		o.NetWorthDiffFromBase.StringFixed(2),
		o.NetWorthPctFromBase.StringFixed(2),
		monthsDiff,
	}
}

func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
