package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rgehrsitz/networth/internal/config"
)

func init() {
	now = func() time.Time { return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC) }
}

// execute runs the CLI with args and returns stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writePlan(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if _, err := execute(t, "init", path, "--defaults"); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()

	if cmd.Use != "networth" {
		t.Errorf("Expected root command use to be 'networth', got %s", cmd.Use)
	}
	if cmd.Short == "" {
		t.Error("Expected root command to have a short description")
	}
	if cmd.Long == "" {
		t.Error("Expected root command to have a long description")
	}
}

func TestRootCommand_Help(t *testing.T) {
	out, err := execute(t, "--help")
	if err != nil {
		t.Errorf("Expected no error for help command, got %v", err)
	}
	if !strings.Contains(out, "project") {
		t.Error("Expected help to list the project command")
	}
}

func TestCommandSubcommands(t *testing.T) {
	expectedCommands := []string{"project", "solve", "sensitivity", "validate", "example", "init", "cache", "version"}

	cmd := newRootCmd()
	for _, name := range expectedCommands {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected command %s to be registered", name)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "networth dev") {
		t.Errorf("unexpected version output: %q", out)
	}
}

func TestInitCommand_Defaults(t *testing.T) {
	path := writePlan(t, "plan.yaml")

	cfg, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		t.Fatalf("written plan does not load: %v", err)
	}
	want := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	if !cfg.StartDate.Equal(want) {
		t.Errorf("start date = %v, want %v", cfg.StartDate, want)
	}

	if _, err := execute(t, "init", path, "--defaults"); err == nil {
		t.Error("Expected init to refuse overwriting an existing file")
	}
	if _, err := execute(t, "init", path, "--defaults", "--force"); err != nil {
		t.Errorf("Expected --force to overwrite, got %v", err)
	}
}

func TestValidateCommand(t *testing.T) {
	path := writePlan(t, "plan.toml")

	out, err := execute(t, "validate", path)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out, "is valid") {
		t.Errorf("unexpected output: %q", out)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("targets:\n  near:\n    amount: -5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "validate", bad); err == nil {
		t.Error("Expected validation error for a negative target")
	}
}

func TestExampleCommand(t *testing.T) {
	yamlOut, err := execute(t, "example")
	if err != nil {
		t.Fatalf("example failed: %v", err)
	}
	if !strings.Contains(yamlOut, "starting_balances:") {
		t.Errorf("Expected YAML example, got %q", yamlOut)
	}

	tomlOut, err := execute(t, "example", "--format", "toml")
	if err != nil {
		t.Fatalf("example --format toml failed: %v", err)
	}
	if !strings.Contains(tomlOut, "[starting_balances]") {
		t.Errorf("Expected TOML example, got %q", tomlOut)
	}

	if _, err := execute(t, "example", "--format", "ini"); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestProjectCommand_Formats(t *testing.T) {
	path := writePlan(t, "plan.yaml")

	tests := []struct {
		format string
		want   string
	}{
		{"console", "DETAILED NET WORTH PROJECTION"},
		{"table", "Recommended:"},
		{"csv", "Scenario"},
		{"detailed-csv", "EarningBalance"},
		{"json", "\"comparison\""},
		{"html", "<html"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := execute(t, "project", path, "--format", tt.format)
			if err != nil {
				t.Fatalf("project failed: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("Expected %q in %s output", tt.want, tt.format)
			}
		})
	}

	if _, err := execute(t, "project", path, "--format", "pdf"); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestProjectCommand_Options(t *testing.T) {
	path := writePlan(t, "plan.yaml")

	out, err := execute(t, "project", path, "--format", "csv", "--scenarios", "Base",
		"--with", "set_return_rate:rate=0.05", "--name", "Five Percent", "--start", "2027-03")
	if err != nil {
		t.Fatalf("project failed: %v", err)
	}
	if strings.Contains(out, "Aggressive") {
		t.Error("Expected only the selected scenarios")
	}
	if !strings.Contains(out, "Five Percent") {
		t.Error("Expected the custom scenario in the output")
	}

	if _, err := execute(t, "project", path, "--scenarios", "Nope"); err == nil {
		t.Error("Expected error for an unknown scenario")
	}
	if _, err := execute(t, "project", path, "--start", "March"); err == nil {
		t.Error("Expected error for a malformed --start")
	}
	if _, err := execute(t, "project"); err == nil {
		t.Error("Expected error without an input file")
	}

	list, err := execute(t, "project", "--list-scenarios")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(list, "Conservative") || !strings.Contains(list, "set_return_rate") {
		t.Errorf("unexpected scenario list: %q", list)
	}
}

func TestProjectCommand_OutputDir(t *testing.T) {
	path := writePlan(t, "plan.yaml")
	dir := t.TempDir()

	out, err := execute(t, "project", path, "--format", "html", "--output", dir)
	if err != nil {
		t.Fatalf("project failed: %v", err)
	}
	if !strings.Contains(out, "Report written to") {
		t.Errorf("unexpected output: %q", out)
	}

	files, _ := filepath.Glob(filepath.Join(dir, "networth_report_*.html"))
	if len(files) != 1 {
		t.Errorf("Expected one html report, found %d", len(files))
	}
}

func TestProjectCommand_CacheLifecycle(t *testing.T) {
	path := writePlan(t, "plan.yaml")
	db := filepath.Join(t.TempDir(), "cache.db")

	for range 2 {
		if _, err := execute(t, "project", path, "--format", "csv", "--cache", "--cache-path", db); err != nil {
			t.Fatalf("project with cache failed: %v", err)
		}
	}

	out, err := execute(t, "cache", "list", "--cache-path", db)
	if err != nil {
		t.Fatalf("cache list failed: %v", err)
	}
	if lines := strings.Count(strings.TrimSpace(out), "\n"); lines != 1 {
		t.Errorf("Expected header plus one entry, got %q", out)
	}

	if out, err := execute(t, "cache", "prune", "--cache-path", db); err != nil || !strings.Contains(out, "Removed 0") {
		t.Errorf("prune: %q, %v", out, err)
	}

	if _, err := execute(t, "cache", "clear", "--cache-path", db); err != nil {
		t.Fatalf("cache clear failed: %v", err)
	}
	out, _ = execute(t, "cache", "list", "--cache-path", db)
	if !strings.Contains(out, "Cache is empty") {
		t.Errorf("Expected empty cache, got %q", out)
	}
}

func TestSolveCommand(t *testing.T) {
	path := writePlan(t, "plan.yaml")

	out, err := execute(t, "solve", path)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if !strings.Contains(out, "REQUIRED MONTHLY CONTRIBUTIONS") || !strings.Contains(out, "MILLIONAIRE") {
		t.Errorf("unexpected solve output: %q", out)
	}

	single, err := execute(t, "solve", path, "--target", "500000", "--horizon", "96", "--rate", "0")
	if err != nil {
		t.Fatalf("solve --target failed: %v", err)
	}
	if !strings.Contains(single, "Horizon:               96 months") {
		t.Errorf("Expected the overridden horizon, got %q", single)
	}

	js, err := execute(t, "solve", path, "--format", "json")
	if err != nil {
		t.Fatalf("solve json failed: %v", err)
	}
	if !strings.Contains(js, "\"required\"") {
		t.Errorf("unexpected json: %q", js)
	}

	if _, err := execute(t, "solve", path, "--target", "lots"); err == nil {
		t.Error("Expected error for a non-numeric target")
	}
}

func TestParseMonthList(t *testing.T) {
	got, err := parseMonthList(" 3, 8,,12 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 || got[0] != 3 || got[1] != 8 || got[2] != 12 {
		t.Errorf("got %v", got)
	}

	if _, err := parseMonthList("3,-1"); err == nil {
		t.Error("Expected error for a negative month")
	}
}

func TestWizardValues_Apply(t *testing.T) {
	parser := config.NewInputParser()
	example := parser.CreateExampleConfiguration()

	vals := newWizardValues(example)
	vals.NearAmount = "300000"
	vals.LumpSumMonths = "2, 5"

	cfg := parser.CreateExampleConfiguration()
	if err := vals.apply(cfg); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if err := parser.ValidateConfiguration(cfg); err != nil {
		t.Fatalf("applied config is invalid: %v", err)
	}
	if cfg.Targets.Near.Amount.String() != "300000" {
		t.Errorf("near amount = %s", cfg.Targets.Near.Amount)
	}
	if len(cfg.Income.LumpSumMonths) != 2 || cfg.Income.LumpSumMonths[1] != 5 {
		t.Errorf("lump sum months = %v", cfg.Income.LumpSumMonths)
	}

	a := config.DerivePlan(example, now())
	b := config.DerivePlan(cfg, now())
	if !a.Start.Earning.Equal(b.Start.Earning) || !a.Start.Debt.Equal(b.Start.Debt) {
		t.Error("Expected the wizard to preserve the starting position")
	}

	vals.GrantMonths = "many"
	if err := vals.apply(cfg); err == nil {
		t.Error("Expected error for a non-numeric field")
	}
}

func TestSensitivityCommand(t *testing.T) {
	path := writePlan(t, "plan.yaml")

	out, err := execute(t, "sensitivity", path)
	if err != nil {
		t.Fatalf("sensitivity failed: %v", err)
	}
	for _, want := range []string{"SENSITIVITY ANALYSIS", "ANNUAL RETURN RATE", "MONTHLY EXPENSES", "MOST SENSITIVE", "← BASE"} {
		if !strings.Contains(out, want) {
			t.Errorf("sensitivity output missing %q", want)
		}
	}

	out, err = execute(t, "sensitivity", path, "--param", "annual_return_rate", "--range", "0.03-0.09", "--steps", "4", "--target", "near", "--format", "csv")
	if err != nil {
		t.Fatalf("sensitivity csv failed: %v", err)
	}
	if lines := strings.Split(strings.TrimSpace(out), "\n"); len(lines) != 5 {
		t.Errorf("expected header plus 4 rows, got %d:\n%s", len(lines), out)
	}

	js, err := execute(t, "sensitivity", path, "--param", "monthly_expenses", "--format", "json")
	if err != nil {
		t.Fatalf("sensitivity json failed: %v", err)
	}
	if !strings.Contains(js, "\"analysisType\": \"single\"") {
		t.Errorf("unexpected json: %q", js)
	}

	for _, args := range [][]string{
		{"--param", "inflation"},
		{"--target", "middle"},
		{"--steps", "1"},
		{"--range", "0.03-0.09"},
		{"--param", "annual_return_rate", "--range", "0.09-0.03"},
		{"--format", "xml"},
	} {
		if _, err := execute(t, append([]string{"sensitivity", path}, args...)...); err == nil {
			t.Errorf("Expected error for %v", args)
		}
	}
}

func TestParseRange(t *testing.T) {
	lo, hi, err := parseRange("-0.01-0.05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lo.String() != "-0.01" || hi.String() != "0.05" {
		t.Errorf("got %s to %s", lo, hi)
	}

	for _, bad := range []string{"0.05", "-0.05", "a-b", "1-x"} {
		if _, _, err := parseRange(bad); err == nil {
			t.Errorf("Expected error for %q", bad)
		}
	}
}
