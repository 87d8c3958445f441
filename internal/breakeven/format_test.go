package breakeven

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/rgehrsitz/networth/internal/domain"
)

func sampleResult(t *testing.T) *ContributionResult {
	t.Helper()
	result, err := NewDefaultSolver().Solve(domain.RequiredContributionParams{
		Target:              dec(120000),
		HorizonMonths:       24,
		AnnualReturnRate:    dec(0.06),
		StartEarningBalance: dec(50000),
		BufferAmount:        dec(5000),
		DebtAmount:          dec(3000),
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	result.Name = "House"
	return result
}

func TestTableFormatter_Format(t *testing.T) {
	tf := &TableFormatter{}
	out := tf.Format(sampleResult(t))

	for _, want := range []string{"REQUIRED MONTHLY CONTRIBUTION", "Target:                $120000.00", "Horizon:               24 months", "Annual Return:         6.00%", "Needs saving"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q\n%s", want, out)
		}
	}
}

func TestTableFormatter_FormatMultiTarget(t *testing.T) {
	res := sampleResult(t)
	multi := &MultiTargetResult{
		Results:         []ContributionResult{*res},
		Hardest:         res,
		Recommendations: []string{"invest more"},
	}

	out := (&TableFormatter{}).FormatMultiTarget(multi)
	for _, want := range []string{"SUMMARY", "HOUSE", "$120.0K", "24 mo", "RECOMMENDATIONS", "• invest more"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	res := sampleResult(t)

	out, err := (&JSONFormatter{Pretty: true}).Format(res)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, "\n  \"name\": \"House\"") {
		t.Errorf("Expected pretty JSON with name, got %s", out)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if _, ok := decoded["required"]; !ok {
		t.Error("Expected required field")
	}
}

func TestTableFormatter_Helpers(t *testing.T) {
	tf := &TableFormatter{}

	if got := tf.formatShort(dec(2500000)); got != "2.50M" {
		t.Errorf("Expected 2.50M, got %s", got)
	}
	if got := tf.formatShort(dec(999)); got != "999" {
		t.Errorf("Expected 999, got %s", got)
	}
	if got := tf.truncate("a very long target name indeed", 10); got != "a very ..." {
		t.Errorf("Unexpected truncation: %s", got)
	}
	if tf.deltaSymbol(dec(-1)) != "-" {
		t.Error("Expected minus sign for negative delta")
	}
}
