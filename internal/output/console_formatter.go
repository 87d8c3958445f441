package output

import (
	"bytes"
	"fmt"

	"github.com/rgehrsitz/networth/internal/breakeven"
	"github.com/rgehrsitz/networth/internal/compare"
)

// ConsoleFormatter provides the concise summary tables via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	table := &compare.TableFormatter{}
	buf.WriteString(table.Format(report.Comparison))

	if report.Contributions != nil {
		fmt.Fprintln(&buf)
		solved := &breakeven.TableFormatter{}
		buf.WriteString(solved.FormatMultiTarget(report.Contributions))
	}

	rec := AnalyzeScenarios(report.Comparison)
	if rec.ScenarioName != "" {
		fmt.Fprintf(&buf, "Recommended: %s (%s, final %s)\n",
			rec.ScenarioName,
			recommendationGoal(rec),
			FormatCurrency(rec.FinalNetWorth))
	}
	return buf.Bytes(), nil
}

func recommendationGoal(rec Recommendation) string {
	if !rec.Reached {
		return "far target not reached"
	}
	return fmt.Sprintf("far target in %d months", rec.MonthsToGoal)
}
