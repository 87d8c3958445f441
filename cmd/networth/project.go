package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/networth/internal/breakeven"
	"github.com/rgehrsitz/networth/internal/calculation"
	"github.com/rgehrsitz/networth/internal/compare"
	"github.com/rgehrsitz/networth/internal/config"
	"github.com/rgehrsitz/networth/internal/domain"
	"github.com/rgehrsitz/networth/internal/output"
	"github.com/rgehrsitz/networth/internal/store"
	"github.com/rgehrsitz/networth/internal/transform"
)

// extensions maps canonical formatter names to output file extensions
var extensions = map[string]string{
	"console":      "txt",
	"console-lite": "txt",
	"csv":          "csv",
	"detailed-csv": "csv",
	"html":         "html",
	"json":         "json",
}

func projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project [input-file]",
		Short: "Project net worth under every scenario and solve the required contributions",
		Long: `Run the Aggressive, Base and Conservative scenarios against the near and far
targets of a plan file, then solve the monthly contribution each target needs.

Examples:
  networth project plan.yaml
  networth project plan.yaml --format csv
  networth project plan.yaml --scenarios Base,Conservative
  networth project plan.yaml --with "set_return_rate:rate=0.06" --name "Six Percent"
  networth project plan.yaml --format html --output reports/
  networth project --list-scenarios
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runProject,
	}

	cmd.Flags().StringP("format", "f", "console", "Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	cmd.Flags().String("scenarios", "", "Comma-separated scenarios to run (default: all)")
	cmd.Flags().String("with", "", "Semicolon-separated transforms for an extra custom scenario")
	cmd.Flags().String("name", "Custom", "Name of the custom scenario built from --with")
	cmd.Flags().String("start", "", "Projection start month (YYYY-MM), overriding the plan file")
	cmd.Flags().StringP("output", "o", "", "Write the report to a timestamped file in this directory")
	cmd.Flags().Bool("cache", false, "Memoize scenario results in the local SQLite cache")
	cmd.Flags().String("cache-path", "", "Cache database path (default: user cache dir)")
	cmd.Flags().Bool("list-scenarios", false, "List the available scenarios and transforms")
	cmd.Flags().Bool("debug", false, "Enable debug output for monthly calculations")
	return cmd
}

func runProject(cmd *cobra.Command, args []string) error {
	if list, _ := cmd.Flags().GetBool("list-scenarios"); list {
		out := cmd.OutOrStdout()
		fmt.Fprint(out, transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
		fmt.Fprintf(out, "Transforms for --with: %s\n", strings.Join(transform.NewTransformRegistry().List(), ", "))
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("input file required (use --list-scenarios to see available scenarios)")
	}
	inputFile := args[0]

	format, _ := cmd.Flags().GetString("format")
	formatter := output.GetFormatterByName(format)
	if formatter == nil {
		return fmt.Errorf("unknown output format: %s (valid: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
	}

	cfg, err := loadConfig(inputFile)
	if err != nil {
		return err
	}
	plan, err := planFromFlags(cmd, cfg)
	if err != nil {
		return err
	}

	debugMode, _ := cmd.Flags().GetBool("debug")
	engine := calculation.NewCalculationEngine()
	if debugMode {
		engine.SetLogger(simpleCLILogger{})
		engine.Debug = true
	}

	compareEngine := compare.NewCompareEngine(engine)
	if debugMode {
		compareEngine.Logger = simpleCLILogger{}
	}

	if useCache, _ := cmd.Flags().GetBool("cache"); useCache {
		cachePath, _ := cmd.Flags().GetString("cache-path")
		if cachePath == "" {
			cachePath = store.DefaultPath()
		}
		cache, err := store.Open(cachePath)
		if err != nil {
			return fmt.Errorf("opening result cache: %w", err)
		}
		defer func() { _ = cache.Close() }()
		compareEngine.Cache = cache
	}

	options, err := compareOptionsFromFlags(cmd)
	if err != nil {
		return err
	}
	options.ConfigPath = inputFile

	ctx := cmd.Context()
	comparisonSet, err := compareEngine.Compare(ctx, plan, options)
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	solver := breakeven.NewDefaultSolver()
	if debugMode {
		solver.Logger = simpleCLILogger{}
	}
	contributions, err := solver.SolveTargets(ctx, plan)
	if err != nil {
		return fmt.Errorf("solving contributions: %w", err)
	}

	report := output.NewReport(comparisonSet, contributions, cfg.GenerateAssumptions())

	if dir, _ := cmd.Flags().GetString("output"); dir != "" {
		filename, err := output.WriteFormatted(formatter, report, dir, extensions[formatter.Name()])
		if err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filepath.Clean(filename))
		return nil
	}

	return output.GenerateReport(cmd.OutOrStdout(), report, formatter.Name())
}

// planFromFlags derives the engine inputs, applying the --start override
func planFromFlags(cmd *cobra.Command, cfg *domain.Configuration) (*domain.PlanInputs, error) {
	plan := config.DerivePlan(cfg, now())

	if start, _ := cmd.Flags().GetString("start"); start != "" {
		t, err := time.Parse("2006-01", start)
		if err != nil {
			return nil, fmt.Errorf("invalid --start %q, expected YYYY-MM: %w", start, err)
		}
		plan.StartDate = config.FirstOfMonth(t)
	}
	return plan, nil
}

func compareOptionsFromFlags(cmd *cobra.Command) (compare.CompareOptions, error) {
	scenarios, _ := cmd.Flags().GetString("scenarios")
	with, _ := cmd.Flags().GetString("with")
	name, _ := cmd.Flags().GetString("name")

	options := compare.CompareOptions{
		Scenarios:  transform.ParseTemplateList(scenarios),
		CustomName: name,
	}
	if with != "" {
		transforms, err := transform.NewTransformRegistry().ParseTransformList(with)
		if err != nil {
			return options, fmt.Errorf("parsing --with: %w", err)
		}
		options.CustomTransforms = transforms
	}
	return options, nil
}
