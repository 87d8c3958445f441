package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/networth/internal/config"
	"github.com/rgehrsitz/networth/internal/domain"
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [output-file]",
		Short: "Create a plan file with an interactive wizard",
		Long: `Walk through the plan inputs and write a starter plan file. A .toml extension
writes TOML, anything else writes YAML. Use --defaults to skip the prompts and
write the example plan.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}

	cmd.Flags().Bool("defaults", false, "Write the example plan without prompting")
	cmd.Flags().Bool("force", false, "Overwrite an existing file")
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	path := "plan.yaml"
	if len(args) == 1 {
		path = args[0]
	}

	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	parser := config.NewInputParser()
	cfg := parser.CreateExampleConfiguration()
	cfg.StartDate = config.FirstOfMonth(now())

	if defaults, _ := cmd.Flags().GetBool("defaults"); !defaults {
		vals := newWizardValues(cfg)
		if err := newPlanForm(vals).Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted, nothing written")
				return nil
			}
			return err
		}
		if err := vals.apply(cfg); err != nil {
			return err
		}
	}

	if err := parser.ValidateConfiguration(cfg); err != nil {
		return err
	}
	if err := parser.SaveToFile(cfg, path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\nNext: networth project %s\n", filepath.Clean(path), path)
	return nil
}

// wizardValues holds the form fields as text while the user edits them
type wizardValues struct {
	StartMonth     string
	Brokerage      string
	Retirement     string
	CashTotal      string
	CashBuffer     string
	Debt           string
	GrantMonthly   string
	GrantMonths    string
	WorkMonthly    string
	WorkStartMonth string
	LumpSumTotal   string
	LumpSumMonths  string
	ReturnRate     string
	YearlyExpenses string
	NearName       string
	NearAmount     string
	NearHorizon    string
	FarName        string
	FarAmount      string
	FarHorizon     string
}

func newWizardValues(cfg *domain.Configuration) *wizardValues {
	b := cfg.StartingBalances
	inc := cfg.Income
	months := make([]string, len(inc.LumpSumMonths))
	for i, m := range inc.LumpSumMonths {
		months[i] = strconv.Itoa(m)
	}

	return &wizardValues{
		StartMonth:     cfg.StartDate.Format("2006-01"),
		Brokerage:      b.Brokerage.String(),
		Retirement:     b.IRA.Add(b.RothIRA).String(),
		CashTotal:      b.CashTotal.String(),
		CashBuffer:     b.CashBuffer.String(),
		Debt:           b.CarLoan.Add(b.CreditCard).String(),
		GrantMonthly:   inc.GrantMonthly.String(),
		GrantMonths:    strconv.Itoa(inc.GrantMonths),
		WorkMonthly:    inc.WorkMonthly.String(),
		WorkStartMonth: strconv.Itoa(inc.WorkStartMonth),
		LumpSumTotal:   inc.LumpSumTotal.String(),
		LumpSumMonths:  strings.Join(months, ","),
		ReturnRate:     cfg.GlobalAssumptions.AnnualReturnRate.String(),
		YearlyExpenses: cfg.GlobalAssumptions.YearlyExpenses.String(),
		NearName:       cfg.Targets.Near.Name,
		NearAmount:     cfg.Targets.Near.Amount.String(),
		NearHorizon:    strconv.Itoa(cfg.Targets.Near.HorizonMonths),
		FarName:        cfg.Targets.Far.Name,
		FarAmount:      cfg.Targets.Far.Amount.String(),
		FarHorizon:     strconv.Itoa(cfg.Targets.Far.HorizonMonths),
	}
}

func newPlanForm(v *wizardValues) *huh.Form {
	money := func(title string, value *string) *huh.Input {
		return huh.NewInput().Title(title).Value(value).Validate(validateDecimal)
	}
	months := func(title string, value *string) *huh.Input {
		return huh.NewInput().Title(title).Value(value).Validate(validateMonths)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Start month (YYYY-MM)").Value(&v.StartMonth).Validate(validateStartMonth),
			money("Brokerage balance", &v.Brokerage),
			money("IRA + Roth IRA balance", &v.Retirement),
			money("Total cash", &v.CashTotal),
			money("Cash buffer to keep liquid", &v.CashBuffer),
			money("Total debt", &v.Debt),
		).Title("Starting balances"),
		huh.NewGroup(
			money("Monthly grant income", &v.GrantMonthly),
			months("Grant months", &v.GrantMonths),
			money("Monthly work income", &v.WorkMonthly),
			months("Work starts at month (0 = now)", &v.WorkStartMonth),
			money("Lump sum total", &v.LumpSumTotal),
			huh.NewInput().Title("Lump sum months (comma separated)").Value(&v.LumpSumMonths).Validate(validateMonthList),
		).Title("Income"),
		huh.NewGroup(
			money("Annual return rate (0.07 = 7%)", &v.ReturnRate),
			money("Yearly expenses", &v.YearlyExpenses),
		).Title("Assumptions"),
		huh.NewGroup(
			huh.NewInput().Title("Near target name").Value(&v.NearName),
			money("Near target amount", &v.NearAmount),
			months("Near target horizon (months)", &v.NearHorizon),
			huh.NewInput().Title("Far target name").Value(&v.FarName),
			money("Far target amount", &v.FarAmount),
			months("Far target horizon (months)", &v.FarHorizon),
		).Title("Targets"),
	)
}

// apply parses the form text into the configuration
func (v *wizardValues) apply(cfg *domain.Configuration) error {
	var errs []error
	dec := func(s string) decimal.Decimal {
		d, err := decimal.NewFromString(strings.TrimSpace(s))
		errs = append(errs, err)
		return d
	}
	num := func(s string) int {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		errs = append(errs, err)
		return n
	}

	start, err := time.Parse("2006-01", strings.TrimSpace(v.StartMonth))
	errs = append(errs, err)
	cfg.StartDate = start

	cfg.StartingBalances = domain.StartingBalances{
		Brokerage:  dec(v.Brokerage),
		IRA:        dec(v.Retirement),
		CashTotal:  dec(v.CashTotal),
		CashBuffer: dec(v.CashBuffer),
		CarLoan:    dec(v.Debt),
	}

	months, err := parseMonthList(v.LumpSumMonths)
	errs = append(errs, err)
	cfg.Income = domain.IncomeConfig{
		GrantMonthly:   dec(v.GrantMonthly),
		GrantMonths:    num(v.GrantMonths),
		WorkMonthly:    dec(v.WorkMonthly),
		WorkStartMonth: num(v.WorkStartMonth),
		LumpSumTotal:   dec(v.LumpSumTotal),
		LumpSumMonths:  months,
	}

	cfg.GlobalAssumptions = domain.GlobalAssumptions{
		AnnualReturnRate: dec(v.ReturnRate),
		YearlyExpenses:   dec(v.YearlyExpenses),
	}

	cfg.Targets = domain.Targets{
		Near: domain.TargetConfig{Name: strings.TrimSpace(v.NearName), Amount: dec(v.NearAmount), HorizonMonths: num(v.NearHorizon)},
		Far:  domain.TargetConfig{Name: strings.TrimSpace(v.FarName), Amount: dec(v.FarAmount), HorizonMonths: num(v.FarHorizon)},
	}

	return errors.Join(errs...)
}

func validateDecimal(s string) error {
	if _, err := decimal.NewFromString(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("enter a number")
	}
	return nil
}

func validateMonths(s string) error {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err != nil || n < 0 {
		return fmt.Errorf("enter a whole number of months")
	}
	return nil
}

func validateStartMonth(s string) error {
	if _, err := time.Parse("2006-01", strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM")
	}
	return nil
}

func validateMonthList(s string) error {
	_, err := parseMonthList(s)
	return err
}

func parseMonthList(s string) ([]int, error) {
	var months []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid month %q", part)
		}
		months = append(months, n)
	}
	return months, nil
}
