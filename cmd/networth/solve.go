package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/networth/internal/breakeven"
	"github.com/rgehrsitz/networth/internal/config"
	"github.com/rgehrsitz/networth/internal/domain"
)

func solveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve [input-file]",
		Short: "Solve the constant monthly contribution required to reach each target",
		Long: `Solve, in closed form, the monthly contribution that grows today's invested
balance to each target within its horizon. The starting cash buffer counts
toward the target and debt is subtracted from it.

Examples:
  networth solve plan.yaml
  networth solve plan.yaml --target 500000 --horizon 96
  networth solve plan.yaml --rate 0.05 --format json
`,
		Args: cobra.ExactArgs(1),
		RunE: runSolve,
	}

	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	cmd.Flags().String("target", "", "Solve a single target amount instead of the plan's targets")
	cmd.Flags().Int("horizon", 0, "Horizon in months for --target (default: the far target's horizon)")
	cmd.Flags().String("rate", "", "Annual return rate override, e.g. 0.06")
	cmd.Flags().Bool("debug", false, "Enable debug output")
	return cmd
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args[0])
	if err != nil {
		return err
	}
	plan := config.DerivePlan(cfg, now())

	if rate, _ := cmd.Flags().GetString("rate"); rate != "" {
		r, err := decimal.NewFromString(rate)
		if err != nil {
			return fmt.Errorf("invalid --rate %q: %w", rate, err)
		}
		plan.AnnualReturnRate = r
	}

	solver := breakeven.NewDefaultSolver()
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		solver.Logger = simpleCLILogger{}
	}

	var result *breakeven.MultiTargetResult
	if target, _ := cmd.Flags().GetString("target"); target != "" {
		amount, err := decimal.NewFromString(target)
		if err != nil {
			return fmt.Errorf("invalid --target %q: %w", target, err)
		}
		horizon, _ := cmd.Flags().GetInt("horizon")
		if horizon == 0 {
			horizon = plan.FarTarget.HorizonMonths
		}
		goal := domain.GoalTarget{Name: "Target", Amount: amount, HorizonMonths: horizon}

		solved, err := solver.Solve(plan.ContributionParams(goal))
		if err != nil {
			return err
		}
		solved.Name = goal.Name
		result = &breakeven.MultiTargetResult{Results: []breakeven.ContributionResult{*solved}}
		result.Hardest = &result.Results[0]
	} else {
		result, err = solver.SolveTargets(cmd.Context(), plan)
		if err != nil {
			return err
		}
	}

	format, _ := cmd.Flags().GetString("format")
	switch strings.ToLower(format) {
	case "json":
		out, err := (&breakeven.JSONFormatter{Pretty: true}).FormatMultiTarget(result)
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
	case "table", "console", "":
		fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).FormatMultiTarget(result))
	default:
		return fmt.Errorf("unknown output format: %s (valid: table, json)", format)
	}
	return nil
}
