package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/networth/internal/compare"
	"github.com/rgehrsitz/networth/internal/domain"
	"github.com/rgehrsitz/networth/internal/tui/components"
	"github.com/rgehrsitz/networth/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorSecondary)
	mutedStyle   = lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	goodStyle    = lipgloss.NewStyle().Foreground(tuistyles.ColorSuccess)
	badStyle     = lipgloss.NewStyle().Foreground(tuistyles.ColorDanger)
)

// ChartWidth is the width of the net worth charts in the detailed console report
var ChartWidth = 72

// ConsoleVerboseFormatter renders the detailed console report: assumptions,
// per-scenario goal metrics, a net worth chart per target and the required
// contributions.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	set := report.Comparison

	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintln(&buf, headingStyle.Render("DETAILED NET WORTH PROJECTION"))
	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	if !set.StartDate.IsZero() {
		fmt.Fprintf(&buf, "Start: %s\n", set.StartDate.Format("January 2006"))
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, sectionStyle.Render("KEY ASSUMPTIONS:"))
	assumptions := report.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}
	for _, a := range assumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i := range set.Results {
		writeScenario(&buf, i+1, &set.Results[i], set.BaseScenarioName)
	}

	if len(set.Results) > 0 {
		for idx, o := range set.Results[0].Outcomes() {
			writeChart(&buf, set, idx, o.Target)
		}
	}

	if report.Contributions != nil {
		fmt.Fprintln(&buf, sectionStyle.Render("REQUIRED MONTHLY CONTRIBUTIONS:"))
		for _, r := range report.Contributions.Results {
			status := goodStyle.Render("on track")
			if !r.OnTrack {
				status = badStyle.Render("needs saving")
			}
			fmt.Fprintf(&buf, "  %-20s %s over %d months: %s per month (%s)\n",
				r.Name,
				FormatCurrency(r.Params.Target),
				r.Params.HorizonMonths,
				FormatCurrency(r.Display),
				status)
		}
		fmt.Fprintln(&buf)
	}

	if len(set.Recommendations) > 0 {
		fmt.Fprintln(&buf, sectionStyle.Render("SUMMARY & RECOMMENDATIONS"))
		for _, r := range set.Recommendations {
			fmt.Fprintf(&buf, "• %s\n", r)
		}
	}

	return buf.Bytes(), nil
}

func writeScenario(buf *bytes.Buffer, n int, res *compare.ComparisonResult, baseName string) {
	title := fmt.Sprintf("SCENARIO %d: %s", n, res.ScenarioName)
	if res.ScenarioName == baseName {
		title += " (base)"
	}
	fmt.Fprintln(buf, headingStyle.Render(title))
	fmt.Fprintln(buf, strings.Repeat("-", 50))
	if res.Description != "" {
		fmt.Fprintln(buf, mutedStyle.Render(res.Description))
	}
	fmt.Fprintf(buf, "  Annual Return:          %s\n", FormatRate(res.AnnualReturnRate))
	if res.Config != nil {
		inc := res.Config.Income
		fmt.Fprintf(buf, "  Grant Income:           %s x %d months\n", FormatCurrency(inc.GrantMonthly), inc.GrantMonths)
		fmt.Fprintf(buf, "  Work Income:            %s from month %d\n", FormatCurrency(inc.WorkMonthly), inc.WorkStartMonth)
	}

	for _, o := range res.Outcomes() {
		fmt.Fprintf(buf, "  %s target %s in %d months:\n", o.Target.Name, FormatCurrency(o.Target.Amount), o.Target.HorizonMonths)
		if o.Reached {
			fmt.Fprintf(buf, "    Reached:              %s\n", goodStyle.Render(FormatGoal(o.GoalDate, o.MonthsToGoal)))
		} else {
			fmt.Fprintf(buf, "    Reached:              %s (short %s)\n", badStyle.Render("no"), FormatCurrency(o.Shortfall))
		}
		fmt.Fprintf(buf, "    Final Net Worth:      %s\n", FormatCurrency(o.FinalNetWorth))
		if res.ScenarioName != baseName {
			fmt.Fprintf(buf, "    vs Base:              %s (%s)", signedCurrency(o.NetWorthDiffFromBase), FormatPercentage(o.NetWorthPctFromBase))
			if o.MonthsDiffFromBase != nil {
				fmt.Fprintf(buf, ", %s", monthsDiff(*o.MonthsDiffFromBase))
			}
			fmt.Fprintln(buf)
		}
	}
	fmt.Fprintln(buf)
}

func writeChart(buf *bytes.Buffer, set *compare.ComparisonSet, idx int, target domain.GoalTarget) {
	chart := components.NewASCIIChart(fmt.Sprintf("NET WORTH: %s target", target.Name)).
		WithSize(ChartWidth, 12).
		WithThreshold(target.Amount.InexactFloat64())

	for i := range set.Results {
		o := set.Results[i].Outcomes()[idx]
		chart.AddSeries(set.Results[i].ScenarioName, o.Result.NetWorthSeries(), tuistyles.ChartColors(i))
		if i == 0 {
			chart.WithLabels(monthLabels(o.Result))
		}
	}

	fmt.Fprintln(buf, chart.Render())
}

func monthLabels(result *domain.SimulationResult) []string {
	if result == nil {
		return nil
	}
	labels := make([]string, len(result.Records))
	for i, rec := range result.Records {
		labels[i] = rec.Date.Format("Jan 06")
	}
	return labels
}

func signedCurrency(v decimal.Decimal) string {
	if v.IsPositive() {
		return "+" + FormatCurrency(v)
	}
	if v.IsNegative() {
		return "-" + FormatCurrency(v.Abs())
	}
	return FormatCurrency(v)
}

func monthsDiff(diff int) string {
	switch {
	case diff < 0:
		return fmt.Sprintf("%d months sooner", -diff)
	case diff > 0:
		return fmt.Sprintf("%d months later", diff)
	default:
		return "same month"
	}
}
