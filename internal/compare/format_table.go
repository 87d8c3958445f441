package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	// Header
	sb.WriteString("NET WORTH SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	if !compSet.StartDate.IsZero() {
		sb.WriteString(fmt.Sprintf("Start Date:    %s\n", compSet.StartDate.Format("2006-01-02")))
	}
	sb.WriteString("\n")

	if len(compSet.Results) == 0 {
		sb.WriteString("No scenarios were run.\n")
		return sb.String()
	}

	nearName := targetLabel(compSet.Results[0].Near.Target, "Near")
	farName := targetLabel(compSet.Results[0].Far.Target, "Far")

	nameWidth := 16
	rateWidth := 7
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		rateWidth, "Return",
		numWidth, tf.truncate(nearName, numWidth),
		numWidth, "Net Worth",
		numWidth, tf.truncate(farName, numWidth),
		numWidth, "Net Worth"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for i := range compSet.Results {
		res := &compSet.Results[i]
		sb.WriteString(tf.formatRow(res, res.ScenarioName == compSet.BaseScenarioName, nameWidth, rateWidth, numWidth))
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	// Deltas from base
	if len(compSet.Results) > 1 && compSet.Base() != nil {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, res := range compSet.Results {
			if res.ScenarioName == compSet.BaseScenarioName {
				continue
			}
			sb.WriteString(fmt.Sprintf("\n%s:\n", res.ScenarioName))
			for _, o := range res.Outcomes() {
				label := targetLabel(o.Target, "target")
				sb.WriteString(fmt.Sprintf("  %-14s %s$%s (%s%%)",
					label+":",
					tf.deltaSymbol(o.NetWorthDiffFromBase),
					tf.formatDecimal(o.NetWorthDiffFromBase.Abs()),
					o.NetWorthPctFromBase.StringFixed(1)))
				if o.MonthsDiffFromBase != nil && *o.MonthsDiffFromBase != 0 {
					sb.WriteString(fmt.Sprintf(", %s", tf.formatMonthsDiff(*o.MonthsDiffFromBase)))
				}
				sb.WriteString("\n")
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, isBase bool, nameWidth, rateWidth, numWidth int) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		rateWidth, result.AnnualReturnRate.Mul(decimal.NewFromInt(100)).StringFixed(1)+"%",
		numWidth, tf.formatGoal(&result.Near),
		numWidth, "$"+tf.formatDecimal(result.Near.FinalNetWorth),
		numWidth, tf.formatGoal(&result.Far),
		numWidth, "$"+tf.formatDecimal(result.Far.FinalNetWorth))
}

// formatGoal shows when the target was hit, or that it was not
func (tf *TableFormatter) formatGoal(o *TargetOutcome) string {
	if !o.Reached || o.GoalDate == nil {
		return "not reached"
	}
	return fmt.Sprintf("%s (%d)", o.GoalDate.Format("Jan 2006"), o.MonthsToGoal)
}

func (tf *TableFormatter) formatMonthsDiff(diff int) string {
	if diff < 0 {
		return fmt.Sprintf("%d months sooner", -diff)
	}
	return fmt.Sprintf("%d months later", diff)
}

// formatDecimal formats a decimal for display (in thousands)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns a + or - symbol for deltas
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s", compSet.BaseScenarioName))

	for _, res := range compSet.Results {
		sb.WriteString(" | ")
		sb.WriteString(fmt.Sprintf("%s: %s / %s", res.ScenarioName, tf.compactGoal(&res.Near), tf.compactGoal(&res.Far)))
	}

	return sb.String()
}

func (tf *TableFormatter) compactGoal(o *TargetOutcome) string {
	if !o.Reached {
		return "miss"
	}
	return fmt.Sprintf("%dmo", o.MonthsToGoal)
}
