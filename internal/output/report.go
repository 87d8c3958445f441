package output

import (
	"fmt"
	"io"
	"time"

	"github.com/rgehrsitz/networth/internal/breakeven"
	"github.com/rgehrsitz/networth/internal/compare"
)

// Report bundles everything the detailed formatters render: the scenario
// comparison and, when available, the required contribution per target.
type Report struct {
	GeneratedAt   time.Time                    `json:"generatedAt"`
	Comparison    *compare.ComparisonSet       `json:"comparison"`
	Contributions *breakeven.MultiTargetResult `json:"contributions,omitempty"`
	Assumptions   []string                     `json:"assumptions,omitempty"`
}

// NewReport creates a report stamped with the current time
func NewReport(set *compare.ComparisonSet, contributions *breakeven.MultiTargetResult, assumptions []string) *Report {
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}
	return &Report{
		GeneratedAt:   time.Now(),
		Comparison:    set,
		Contributions: contributions,
		Assumptions:   assumptions,
	}
}

// GenerateReport renders the report in the named format to w
func GenerateReport(w io.Writer, report *Report, format string) error {
	if report == nil || report.Comparison == nil {
		return fmt.Errorf("report has no comparison results")
	}

	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unsupported format: %s", format)
	}

	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("formatting %s report: %w", f.Name(), err)
	}

	_, err = w.Write(data)
	return err
}
