package output

import (
	"bytes"
	"encoding/csv"
)

// CSVDetailedExporter exports every monthly record per scenario and target.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Target", "Month", "Date", "NetWorth", "EarningBalance", "CashBalance", "GoalReached"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for i := range report.Comparison.Results {
		res := &report.Comparison.Results[i]
		for _, o := range res.Outcomes() {
			if o.Result == nil {
				continue
			}
			for _, rec := range o.Result.Records {
				reached := o.Result.Hit != nil && rec.Month >= o.Result.Hit.MonthIndex
				row := []string{
					res.ScenarioName,
					o.Target.Name,
					intToString(rec.Month),
					rec.Date.Format("2006-01-02"),
					rec.NetWorth.StringFixed(2),
					rec.EarningBalance.StringFixed(2),
					rec.CashBalance.StringFixed(2),
					boolToString(reached),
				}
				if err := w.Write(row); err != nil {
					return nil, err
				}
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
