package output

import (
	"github.com/rgehrsitz/networth/internal/compare"
)

// CSVSummarizer implements the summary CSV output (one row per scenario and target).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *Report) ([]byte, error) {
	formatter := &compare.CSVFormatter{}
	out, err := formatter.Format(report.Comparison)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}
