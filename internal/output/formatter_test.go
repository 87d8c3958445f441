package output

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rgehrsitz/networth/internal/breakeven"
	"github.com/rgehrsitz/networth/internal/compare"
	"github.com/rgehrsitz/networth/internal/domain"
	"github.com/shopspring/decimal"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func buildTestPlan() *domain.PlanInputs {
	return &domain.PlanInputs{
		StartDate:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Start:            domain.AccountState{Earning: d(50000), Cash: d(10000), Debt: d(15000)},
		MonthlyExpenses:  d(4000),
		InvestBuffer:     d(10000),
		AnnualReturnRate: decimal.NewFromFloat(0.07),
		Income: domain.IncomeParams{
			GrantMonthly:   d(3000),
			GrantMonths:    12,
			WorkMonthly:    d(9000),
			WorkStartMonth: 6,
		},
		LumpSums:   domain.LumpSumSchedule{3: d(10000), 8: d(10000)},
		NearTarget: domain.GoalTarget{Name: "Near", Amount: d(100000), HorizonMonths: 24},
		FarTarget:  domain.GoalTarget{Name: "Far", Amount: d(1000000), HorizonMonths: 120},
	}
}

func buildTestReport(t *testing.T) *Report {
	t.Helper()
	ctx := context.Background()
	plan := buildTestPlan()

	set, err := compare.NewCompareEngine(nil).Run(ctx, plan)
	if err != nil {
		t.Fatalf("compare run failed: %v", err)
	}
	contributions, err := breakeven.NewDefaultSolver().SolveTargets(ctx, plan)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	report := NewReport(set, contributions, nil)
	report.GeneratedAt = time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	return report
}

func TestGetFormatterByName(t *testing.T) {
	cases := map[string]string{
		"console":      "console",
		"VERBOSE":      "console",
		" table ":      "console-lite",
		"csv":          "csv",
		"monthly-csv":  "detailed-csv",
		"html-report":  "html",
		"json":         "json",
		"console-lite": "console-lite",
	}
	for in, want := range cases {
		f := GetFormatterByName(in)
		if f == nil {
			t.Fatalf("GetFormatterByName(%q) returned nil", in)
		}
		if f.Name() != want {
			t.Errorf("GetFormatterByName(%q) = %s, want %s", in, f.Name(), want)
		}
	}
	if GetFormatterByName("pdf") != nil {
		t.Error("expected nil formatter for unknown name")
	}
}

func TestAvailableFormatterNames(t *testing.T) {
	names := AvailableFormatterNames()
	want := []string{"console", "console-lite", "csv", "detailed-csv", "html", "json"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("names = %v, want %v", names, want)
	}
	if len(AvailableFormatAliases()) != len(aliasMap) {
		t.Fatal("alias list incomplete")
	}
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	for _, want := range []string{"NET WORTH SCENARIO COMPARISON", "REQUIRED MONTHLY CONTRIBUTIONS", "Recommended: Aggressive"} {
		if !strings.Contains(content, want) {
			t.Errorf("expected %q in output", want)
		}
	}
}

func TestConsoleVerboseFormatter(t *testing.T) {
	out, err := ConsoleVerboseFormatter{}.Format(buildTestReport(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	for _, want := range []string{
		"DETAILED NET WORTH PROJECTION",
		"Start: January 2025",
		"KEY ASSUMPTIONS:",
		"SCENARIO 2: Base (base)",
		"NET WORTH: Near target",
		"NET WORTH: Far target",
		"REQUIRED MONTHLY CONTRIBUTIONS:",
		"SUMMARY & RECOMMENDATIONS",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("expected %q in output", want)
		}
	}
}

func TestCSVSummarizer(t *testing.T) {
	out, err := CSVSummarizer{}.Format(buildTestReport(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv: %v", err)
	}
	// header + 3 scenarios x 2 targets
	if len(records) != 7 {
		t.Fatalf("expected 7 records, got %d", len(records))
	}
}

func TestCSVDetailedExporter(t *testing.T) {
	report := buildTestReport(t)
	out, err := CSVDetailedExporter{}.Format(report)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv: %v", err)
	}
	// 3 scenarios x (24 + 120) months + header
	if len(records) != 1+3*(24+120) {
		t.Fatalf("unexpected row count %d", len(records))
	}
	first := records[1]
	if first[0] != "Aggressive" || first[1] != "Near" || first[2] != "1" || first[3] != "2025-02-01" {
		t.Fatalf("unexpected first row: %v", first)
	}

	// GoalReached flips exactly at the latched month
	hit := report.Comparison.Results[0].Near.Result.Hit
	if hit == nil {
		t.Fatal("expected the aggressive scenario to reach the near target")
	}
	if records[hit.MonthIndex][7] != "true" || records[hit.MonthIndex-1][7] != "false" {
		t.Fatalf("goal flag mismatch around month %d", hit.MonthIndex)
	}
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestReport(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded struct {
		Comparison struct {
			BaseScenarioName string `json:"baseScenarioName"`
			Results          []struct {
				Near struct {
					Result struct {
						Records []json.RawMessage `json:"records"`
					} `json:"result"`
				} `json:"near"`
			} `json:"results"`
		} `json:"comparison"`
		Contributions struct {
			Results []json.RawMessage `json:"results"`
		} `json:"contributions"`
	}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if decoded.Comparison.BaseScenarioName != "Base" {
		t.Errorf("base = %q", decoded.Comparison.BaseScenarioName)
	}
	if len(decoded.Comparison.Results) != 3 || len(decoded.Comparison.Results[0].Near.Result.Records) != 24 {
		t.Error("expected full monthly records in the JSON report")
	}
	if len(decoded.Contributions.Results) != 2 {
		t.Error("expected two contribution results")
	}
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestReport(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	for _, want := range []string{"<!DOCTYPE html>", "Generated on: 2025-02-03 04:05", "Base (base)", "<polyline", "Required Monthly Contributions", "Recommended: Aggressive"} {
		if !strings.Contains(content, want) {
			t.Errorf("expected %q in html output", want)
		}
	}
	if strings.Count(content, "<svg") != 2 {
		t.Errorf("expected one chart per target")
	}
}

func TestGenerateReport(t *testing.T) {
	report := buildTestReport(t)

	var buf bytes.Buffer
	if err := GenerateReport(&buf, report, "csv-summary"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "Scenario") {
		t.Errorf("unexpected csv output: %.40s", buf.String())
	}

	if err := GenerateReport(&buf, report, "pdf"); err == nil || !strings.Contains(err.Error(), "unsupported format") {
		t.Errorf("expected unsupported format error, got %v", err)
	}
	if err := GenerateReport(&buf, &Report{}, "json"); err == nil {
		t.Error("expected error for empty report")
	}
}

func TestWriteFormatted(t *testing.T) {
	dir := t.TempDir()
	report := buildTestReport(t)

	path, err := WriteFormatted(JSONFormatter{}, report, dir, "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(path, "networth_report_20250203_040506.json") {
		t.Errorf("unexpected path %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("report not written: %v", err)
	}
}

func TestFormatterFunc(t *testing.T) {
	f := FormatterFunc{ID: "custom", F: func(r *Report) ([]byte, error) { return []byte("ok"), nil }}
	out, _ := f.Format(nil)
	if f.Name() != "custom" || string(out) != "ok" {
		t.Fatal("FormatterFunc did not delegate")
	}
}
