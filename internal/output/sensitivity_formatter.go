package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rgehrsitz/networth/internal/domain"
	"github.com/shopspring/decimal"
)

// SensitivityFormatter defines a formatter for sensitivity analysis
type SensitivityFormatter interface {
	FormatSensitivityAnalysis(analysis *domain.ParameterSensitivityAnalysis) (string, error)
	Name() string
}

// SensitivityConsoleFormatter formats sensitivity analysis output for console
type SensitivityConsoleFormatter struct{}

func (scf SensitivityConsoleFormatter) Name() string { return "console" }

func (scf SensitivityConsoleFormatter) FormatSensitivityAnalysis(analysis *domain.ParameterSensitivityAnalysis) (string, error) {
	if analysis == nil || len(analysis.Parameters) == 0 || len(analysis.Results) == 0 {
		return "", fmt.Errorf("no parameters or results in analysis")
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "SENSITIVITY ANALYSIS: %s\n", analysis.Target.Name)
	fmt.Fprintln(&buf, strings.Repeat("=", 65))
	fmt.Fprintf(&buf, "Target: %s within %d months\n", FormatCurrency(analysis.Target.Amount), analysis.Target.HorizonMonths)
	fmt.Fprintln(&buf)

	for _, param := range analysis.Parameters {
		scf.writeParameter(&buf, param, analysis.Results)
	}

	riskEmoji := ""
	switch analysis.Summary.RiskLevel {
	case "LOW":
		riskEmoji = "✅"
	case "MEDIUM":
		riskEmoji = "⚠️"
	case "HIGH":
		riskEmoji = "🔴"
	case "CRITICAL":
		riskEmoji = "🚨"
	}

	if analysis.AnalysisType == "multi" {
		fmt.Fprintf(&buf, "MOST SENSITIVE: %s\n", parameterTitle(analysis.Summary.MostSensitiveParameter))
	}
	fmt.Fprintf(&buf, "RISK LEVEL: %s %s\n", riskEmoji, analysis.Summary.RiskLevel)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "RECOMMENDATIONS:")
	for _, rec := range analysis.Summary.Recommendations {
		fmt.Fprintf(&buf, "  • %s\n", rec)
	}

	return buf.String(), nil
}

func (scf SensitivityConsoleFormatter) writeParameter(buf *bytes.Buffer, param domain.SensitivityParameter, results []domain.SensitivityResult) {
	fmt.Fprintln(buf, strings.ToUpper(parameterTitle(param.Name)))
	fmt.Fprintln(buf, strings.Repeat("-", 65))
	fmt.Fprintf(buf, "Base Case: %s\n", formatParameterValue(param, param.BaseValue))
	fmt.Fprintf(buf, "Range: %s to %s (%d steps)\n",
		formatParameterValue(param, param.MinValue), formatParameterValue(param, param.MaxValue), param.Steps)
	if param.Description != "" {
		fmt.Fprintf(buf, "Description: %s\n", param.Description)
	}
	fmt.Fprintln(buf)

	fmt.Fprintf(buf, "%-20s %-16s %-18s %-12s\n", "Value", "Goal Month", "Final Net Worth", "Change")
	for _, result := range results {
		if result.Parameter != param.Name {
			continue
		}

		value := formatParameterValue(param, result.ParameterValue)
		if result.IsBase {
			value += " ← BASE"
		}

		goal := "not reached"
		if result.KeyMetrics.Reached {
			goal = strconv.Itoa(result.KeyMetrics.MonthsToGoal)
			if mc := result.KeyMetrics.MonthsChange; mc != nil && *mc != 0 {
				goal += fmt.Sprintf(" (%+d)", *mc)
			}
		}

		fmt.Fprintf(buf, "%-20s %-16s %-18s %s\n",
			value,
			goal,
			FormatCurrency(result.KeyMetrics.FinalNetWorth),
			signedPercent(result.KeyMetrics.NetWorthChangePct))
	}
	fmt.Fprintln(buf)
}

// SensitivityCSVFormatter formats sensitivity analysis output as CSV
type SensitivityCSVFormatter struct{}

func (scf SensitivityCSVFormatter) Name() string { return "csv" }

func (scf SensitivityCSVFormatter) FormatSensitivityAnalysis(analysis *domain.ParameterSensitivityAnalysis) (string, error) {
	if analysis == nil || len(analysis.Results) == 0 {
		return "", fmt.Errorf("no parameters or results in analysis")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"parameter", "value", "is_base", "reached", "months_to_goal", "final_net_worth", "shortfall", "net_worth_change", "net_worth_change_pct"})
	for _, r := range analysis.Results {
		m := r.KeyMetrics
		_ = w.Write([]string{
			r.Parameter,
			r.ParameterValue.String(),
			boolToString(r.IsBase),
			boolToString(m.Reached),
			intToString(m.MonthsToGoal),
			m.FinalNetWorth.StringFixed(2),
			m.Shortfall.StringFixed(2),
			m.NetWorthChange.StringFixed(2),
			m.NetWorthChangePct.StringFixed(4),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SensitivityJSONFormatter formats sensitivity analysis output as JSON
type SensitivityJSONFormatter struct{}

func (sjf SensitivityJSONFormatter) Name() string { return "json" }

func (sjf SensitivityJSONFormatter) FormatSensitivityAnalysis(analysis *domain.ParameterSensitivityAnalysis) (string, error) {
	if analysis == nil {
		return "", fmt.Errorf("no analysis to format")
	}
	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// NewSensitivityFormatter creates a sensitivity formatter based on the format name
func NewSensitivityFormatter(format string) SensitivityFormatter {
	switch NormalizeFormatName(format) {
	case "console", "console-lite":
		return SensitivityConsoleFormatter{}
	case "csv":
		return SensitivityCSVFormatter{}
	case "json":
		return SensitivityJSONFormatter{}
	default:
		return SensitivityConsoleFormatter{}
	}
}

func parameterTitle(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

func formatParameterValue(param domain.SensitivityParameter, v decimal.Decimal) string {
	if param.Unit == "percent" {
		return FormatRate(v)
	}
	return FormatCurrency(v)
}

func signedPercent(v decimal.Decimal) string {
	if v.IsPositive() {
		return "+" + FormatPercentage(v)
	}
	return FormatPercentage(v)
}
