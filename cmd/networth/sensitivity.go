package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/networth/internal/calculation"
	"github.com/rgehrsitz/networth/internal/config"
	"github.com/rgehrsitz/networth/internal/domain"
	"github.com/rgehrsitz/networth/internal/output"
)

func sensitivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sensitivity [input-file]",
		Short: "Sweep plan parameters and measure the effect on a target",
		Long: `Run the Base scenario repeatedly while sweeping one plan parameter at a time,
and report how the goal month and final net worth respond.

Parameters: annual_return_rate, monthly_expenses, work_monthly, all

Examples:
  networth sensitivity plan.yaml
  networth sensitivity plan.yaml --param annual_return_rate --range 0.03-0.09 --steps 7
  networth sensitivity plan.yaml --param monthly_expenses --target near --format csv
`,
		Args: cobra.ExactArgs(1),
		RunE: runSensitivity,
	}

	cmd.Flags().String("param", "all", "Parameter to sweep")
	cmd.Flags().String("range", "", "Sweep range for a single parameter (format: min-max)")
	cmd.Flags().Int("steps", 0, "Number of values in the sweep (default depends on the parameter)")
	cmd.Flags().String("target", "far", "Target to measure against (near, far)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")
	cmd.Flags().Bool("debug", false, "Enable debug output")
	return cmd
}

func runSensitivity(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args[0])
	if err != nil {
		return err
	}
	plan := config.DerivePlan(cfg, now())

	targetName, _ := cmd.Flags().GetString("target")
	var target domain.GoalTarget
	switch strings.ToLower(targetName) {
	case "near":
		target = plan.NearTarget
	case "far", "":
		target = plan.FarTarget
	default:
		return fmt.Errorf("unknown target: %s (valid: near, far)", targetName)
	}

	params, err := sensitivityParamsFromFlags(cmd, plan)
	if err != nil {
		return err
	}

	engine := calculation.NewCalculationEngine()
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.SetLogger(simpleCLILogger{})
	}
	analyzer := calculation.NewSensitivityAnalyzer(engine)

	var analysis *domain.ParameterSensitivityAnalysis
	if len(params) == 1 {
		analysis, err = analyzer.AnalyzeSingleParameter(cmd.Context(), plan, target, params[0])
	} else {
		analysis, err = analyzer.AnalyzeMultipleParameters(cmd.Context(), plan, target, params)
	}
	if err != nil {
		return fmt.Errorf("sensitivity analysis failed: %w", err)
	}

	format, _ := cmd.Flags().GetString("format")
	switch output.NormalizeFormatName(format) {
	case "console", "console-lite", "csv", "json", "":
	default:
		return fmt.Errorf("unknown output format: %s (valid: table, csv, json)", format)
	}

	out, err := output.NewSensitivityFormatter(format).FormatSensitivityAnalysis(analysis)
	if err != nil {
		return fmt.Errorf("failed to format analysis: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	if !strings.HasSuffix(out, "\n") {
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}

func sensitivityParamsFromFlags(cmd *cobra.Command, plan *domain.PlanInputs) ([]domain.SensitivityParameter, error) {
	name, _ := cmd.Flags().GetString("param")
	rangeFlag, _ := cmd.Flags().GetString("range")
	steps, _ := cmd.Flags().GetInt("steps")

	var params []domain.SensitivityParameter
	switch strings.ToLower(name) {
	case "all", "":
		if rangeFlag != "" {
			return nil, fmt.Errorf("--range requires a single --param")
		}
		params = domain.GetCommonParameters(plan)
	case domain.ParamAnnualReturnRate:
		params = append(params, domain.ReturnRateParameter(plan.AnnualReturnRate))
	case domain.ParamMonthlyExpenses:
		params = append(params, domain.MonthlyExpensesParameter(plan.MonthlyExpenses))
	case domain.ParamWorkMonthly:
		params = append(params, domain.WorkIncomeParameter(plan.Income.WorkMonthly))
	default:
		return nil, fmt.Errorf("unknown parameter: %s (valid: %s, %s, %s, all)",
			name, domain.ParamAnnualReturnRate, domain.ParamMonthlyExpenses, domain.ParamWorkMonthly)
	}

	if rangeFlag != "" {
		lo, hi, err := parseRange(rangeFlag)
		if err != nil {
			return nil, err
		}
		params[0].MinValue = lo
		params[0].MaxValue = hi
	}

	if steps < 0 || steps == 1 {
		return nil, fmt.Errorf("--steps must be at least 2")
	}
	if steps > 0 {
		for i := range params {
			params[i].Steps = steps
		}
	}
	return params, nil
}

// parseRange parses "min-max"; the minimum may itself be negative
func parseRange(s string) (decimal.Decimal, decimal.Decimal, error) {
	idx := strings.LastIndex(s, "-")
	if idx <= 0 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("invalid --range %q (format: min-max)", s)
	}
	lo, err := decimal.NewFromString(strings.TrimSpace(s[:idx]))
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("invalid --range minimum %q: %w", s[:idx], err)
	}
	hi, err := decimal.NewFromString(strings.TrimSpace(s[idx+1:]))
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("invalid --range maximum %q: %w", s[idx+1:], err)
	}
	if hi.LessThan(lo) {
		return decimal.Zero, decimal.Zero, fmt.Errorf("invalid --range %q: maximum is below minimum", s)
	}
	return lo, hi, nil
}
