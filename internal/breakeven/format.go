package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a single contribution result
func (tf *TableFormatter) Format(result *ContributionResult) string {
	var sb strings.Builder

	sb.WriteString("REQUIRED MONTHLY CONTRIBUTION\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	tf.writeResult(&sb, result)

	return sb.String()
}

// FormatMultiTarget formats results for several targets
func (tf *TableFormatter) FormatMultiTarget(result *MultiTargetResult) string {
	var sb strings.Builder

	sb.WriteString("REQUIRED MONTHLY CONTRIBUTIONS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	sb.WriteString("SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-20s %15s %10s %15s %12s\n",
		"Target", "Amount", "Horizon", "Monthly", "Status"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for _, res := range result.Results {
		sb.WriteString(fmt.Sprintf("%-20s %15s %10s %15s %12s\n",
			tf.truncate(res.Name, 20),
			"$"+tf.formatShort(res.Params.Target),
			fmt.Sprintf("%d mo", res.Params.HorizonMonths),
			"$"+tf.formatCurrency(res.Display),
			tf.formatStatus(res.OnTrack)))
	}
	sb.WriteString("\n")

	for i := range result.Results {
		res := result.Results[i]
		sb.WriteString(strings.ToUpper(res.Name) + "\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		tf.writeResult(&sb, &res)
	}

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (tf *TableFormatter) writeResult(sb *strings.Builder, result *ContributionResult) {
	p := result.Params
	pct := p.AnnualReturnRate.Mul(decimal.NewFromInt(100))

	sb.WriteString(fmt.Sprintf("Target:                $%s\n", tf.formatCurrency(p.Target)))
	sb.WriteString(fmt.Sprintf("Horizon:               %d months\n", p.HorizonMonths))
	sb.WriteString(fmt.Sprintf("Annual Return:         %s%%\n", pct.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Start Earning Balance: $%s\n", tf.formatCurrency(p.StartEarningBalance)))
	sb.WriteString(fmt.Sprintf("Cash Buffer:           $%s\n", tf.formatCurrency(p.BufferAmount)))
	sb.WriteString(fmt.Sprintf("Debt:                  $%s\n", tf.formatCurrency(p.DebtAmount)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Grown Balance (FV):    $%s\n", tf.formatCurrency(result.FutureValue)))
	sb.WriteString(fmt.Sprintf("Annuity Factor:        %s\n", result.AnnuityFactor.StringFixed(4)))
	sb.WriteString(fmt.Sprintf("Remaining Gap:         %s$%s\n", tf.deltaSymbol(result.Gap), tf.formatCurrency(result.Gap.Abs())))
	sb.WriteString(fmt.Sprintf("Required Monthly:      $%s\n", tf.formatCurrency(result.Display)))
	if result.OnTrack {
		sb.WriteString(fmt.Sprintf("Surplus:               $%s per month\n", tf.formatCurrency(result.Required.Neg())))
	}
	sb.WriteString(fmt.Sprintf("Status:                %s\n", tf.formatStatus(result.OnTrack)))
	sb.WriteString("\n")
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *ContributionResult) (string, error) {
	return jf.marshal(result)
}

// FormatMultiTarget formats multi-target results as JSON
func (jf *JSONFormatter) FormatMultiTarget(result *MultiTargetResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) formatStatus(onTrack bool) string {
	if onTrack {
		return "✓ On track"
	}
	return "⚠ Needs saving"
}

func (tf *TableFormatter) formatCurrency(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
