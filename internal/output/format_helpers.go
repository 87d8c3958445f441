package output

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as USD currency with 2 decimals.
func FormatCurrency(amount decimal.Decimal) string { return "$" + amount.StringFixed(2) }

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate formats a fractional rate (0.07) as a percentage.
func FormatRate(rate decimal.Decimal) string {
	return FormatPercentage(rate.Mul(decimal.NewFromInt(100)))
}

// FormatGoal describes when a goal was reached, e.g. "Mar 2027 (month 26)".
func FormatGoal(date *time.Time, months int) string {
	if date == nil {
		return "not reached"
	}
	return fmt.Sprintf("%s (month %d)", date.Format("Jan 2006"), months)
}

func intToString(v int) string { return fmt.Sprintf("%d", v) }

func boolToString(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
