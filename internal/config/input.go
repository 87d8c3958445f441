package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rgehrsitz/networth/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// MaxHorizonMonths bounds target horizons to 100 years
const MaxHorizonMonths = 1200

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML file, or TOML when the file has a .toml extension
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	config, err := ip.Parse(data, formatFor(filename))
	if err != nil {
		return nil, err
	}

	if err := ip.ValidateConfiguration(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Parse decodes configuration bytes in the given format ("yaml" or "toml") without validating
func (ip *InputParser) Parse(data []byte, format string) (*domain.Configuration, error) {
	var config domain.Configuration

	switch format {
	case "toml":
		if _, err := toml.Decode(string(data), &config); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case "yaml", "":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported configuration format: %s", format)
	}

	return &config, nil
}

// Marshal encodes the configuration as "yaml" (the default) or "toml"
func (ip *InputParser) Marshal(config *domain.Configuration, format string) ([]byte, error) {
	var buf bytes.Buffer

	switch strings.ToLower(format) {
	case "toml":
		if err := toml.NewEncoder(&buf).Encode(config); err != nil {
			return nil, fmt.Errorf("failed to encode TOML: %w", err)
		}
	case "yaml", "yml", "":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(config); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported configuration format: %s", format)
	}

	return buf.Bytes(), nil
}

// SaveToFile writes the configuration as YAML, or TOML when the file has a .toml extension
func (ip *InputParser) SaveToFile(config *domain.Configuration, filename string) error {
	data, err := ip.Marshal(config, formatFor(filename))
	if err != nil {
		return err
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config dir: %w", err)
		}
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

func formatFor(filename string) string {
	if strings.EqualFold(filepath.Ext(filename), ".toml") {
		return "toml"
	}
	return "yaml"
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config == nil {
		return fmt.Errorf("configuration is required")
	}
	if err := ip.validateStartingBalances(&config.StartingBalances); err != nil {
		return fmt.Errorf("starting balances validation failed: %w", err)
	}
	if err := ip.validateIncome(&config.Income); err != nil {
		return fmt.Errorf("income validation failed: %w", err)
	}
	if err := ip.validateGlobalAssumptions(&config.GlobalAssumptions); err != nil {
		return fmt.Errorf("global assumptions validation failed: %w", err)
	}
	if err := ip.validateTarget("near", &config.Targets.Near); err != nil {
		return fmt.Errorf("targets validation failed: %w", err)
	}
	if err := ip.validateTarget("far", &config.Targets.Far); err != nil {
		return fmt.Errorf("targets validation failed: %w", err)
	}
	return nil
}

// validateStartingBalances validates account balances and debts
func (ip *InputParser) validateStartingBalances(b *domain.StartingBalances) error {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"brokerage", b.Brokerage},
		{"ira", b.IRA},
		{"roth_ira", b.RothIRA},
		{"cash_total", b.CashTotal},
		{"cash_buffer", b.CashBuffer},
		{"car_loan", b.CarLoan},
		{"credit_card", b.CreditCard},
	}
	for _, f := range fields {
		if f.value.IsNegative() {
			return fmt.Errorf("%s cannot be negative", f.name)
		}
	}
	return nil
}

// validateIncome validates the grant, work and lump-sum parameters
func (ip *InputParser) validateIncome(income *domain.IncomeConfig) error {
	if income.GrantMonthly.IsNegative() {
		return fmt.Errorf("grant_monthly cannot be negative")
	}
	if income.GrantMonths < 0 {
		return fmt.Errorf("grant_months cannot be negative")
	}
	if income.WorkMonthly.IsNegative() {
		return fmt.Errorf("work_monthly cannot be negative")
	}
	if income.WorkStartMonth < 0 {
		return fmt.Errorf("work_start_month cannot be negative")
	}
	if income.LumpSumTotal.IsNegative() {
		return fmt.Errorf("lump_sum_total cannot be negative")
	}
	for _, m := range income.LumpSumMonths {
		if m < 0 {
			return fmt.Errorf("lump_sum_months cannot contain negative month %d", m)
		}
	}
	return nil
}

// validateGlobalAssumptions validates global assumptions
func (ip *InputParser) validateGlobalAssumptions(assumptions *domain.GlobalAssumptions) error {
	if assumptions.AnnualReturnRate.LessThan(decimal.NewFromFloat(-1.0)) {
		return fmt.Errorf("annual return rate cannot be less than -100%%")
	}
	if assumptions.AnnualReturnRate.GreaterThan(decimal.NewFromFloat(1.0)) {
		return fmt.Errorf("annual return rate cannot exceed 100%%")
	}
	if assumptions.YearlyExpenses.IsNegative() {
		return fmt.Errorf("yearly expenses cannot be negative")
	}
	return nil
}

// validateTarget validates a single goal
func (ip *InputParser) validateTarget(label string, target *domain.TargetConfig) error {
	if !target.Amount.IsPositive() {
		return fmt.Errorf("%s target amount must be positive", label)
	}
	if target.HorizonMonths <= 0 || target.HorizonMonths > MaxHorizonMonths {
		return fmt.Errorf("%s target horizon must be between 1 and %d months", label, MaxHorizonMonths)
	}
	return nil
}

// CreateExampleConfiguration returns a complete starter configuration
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	return &domain.Configuration{
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		StartingBalances: domain.StartingBalances{
			Brokerage:  decimal.NewFromInt(40000),
			IRA:        decimal.NewFromInt(25000),
			RothIRA:    decimal.NewFromInt(15000),
			CashTotal:  decimal.NewFromInt(30000),
			CashBuffer: decimal.NewFromInt(10000),
			CarLoan:    decimal.NewFromInt(12000),
			CreditCard: decimal.NewFromInt(3000),
		},
		Income: domain.IncomeConfig{
			GrantMonthly:   decimal.NewFromInt(3000),
			GrantMonths:    12,
			WorkMonthly:    decimal.NewFromInt(9000),
			WorkStartMonth: 6,
			LumpSumTotal:   decimal.NewFromInt(20000),
			LumpSumMonths:  []int{3, 8},
		},
		GlobalAssumptions: domain.GlobalAssumptions{
			AnnualReturnRate: decimal.NewFromFloat(0.07),
			YearlyExpenses:   decimal.NewFromInt(48000),
		},
		Targets: domain.Targets{
			Near: domain.TargetConfig{Name: "Quarter Million", Amount: decimal.NewFromInt(250000), HorizonMonths: 60},
			Far:  domain.TargetConfig{Name: "Millionaire", Amount: decimal.NewFromInt(1000000), HorizonMonths: 240},
		},
	}
}
