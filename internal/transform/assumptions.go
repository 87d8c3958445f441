package transform

import (
	"fmt"

	"github.com/rgehrsitz/networth/internal/domain"
	"github.com/shopspring/decimal"
)

var maxAnnualRate = decimal.NewFromInt(1)

// SetReturnRate replaces the annual return rate.
type SetReturnRate struct {
	Rate decimal.Decimal // e.g., 0.07 for 7%
}

func (sr *SetReturnRate) Name() string {
	return "set_return_rate"
}

func (sr *SetReturnRate) Description() string {
	return fmt.Sprintf("Set annual return rate to %s%%", percent(sr.Rate))
}

func (sr *SetReturnRate) Validate(base *domain.ScenarioConfig) error {
	if base == nil {
		return NewTransformError(sr.Name(), "validate", "base scenario cannot be nil", nil)
	}
	return validateRate(sr.Name(), sr.Rate)
}

func (sr *SetReturnRate) Apply(base *domain.ScenarioConfig) (*domain.ScenarioConfig, error) {
	modified := base.DeepCopy()
	modified.AnnualReturnRate = sr.Rate
	return modified, nil
}

// FloorReturnRate raises the annual return rate to at least Min.
type FloorReturnRate struct {
	Min decimal.Decimal
}

func (fr *FloorReturnRate) Name() string {
	return "floor_return_rate"
}

func (fr *FloorReturnRate) Description() string {
	return fmt.Sprintf("Assume at least %s%% annual return", percent(fr.Min))
}

func (fr *FloorReturnRate) Validate(base *domain.ScenarioConfig) error {
	if base == nil {
		return NewTransformError(fr.Name(), "validate", "base scenario cannot be nil", nil)
	}
	return validateRate(fr.Name(), fr.Min)
}

func (fr *FloorReturnRate) Apply(base *domain.ScenarioConfig) (*domain.ScenarioConfig, error) {
	modified := base.DeepCopy()
	modified.AnnualReturnRate = decimal.Max(base.AnnualReturnRate, fr.Min)
	return modified, nil
}

// CapReturnRate lowers the annual return rate to at most Max.
type CapReturnRate struct {
	Max decimal.Decimal
}

func (cr *CapReturnRate) Name() string {
	return "cap_return_rate"
}

func (cr *CapReturnRate) Description() string {
	return fmt.Sprintf("Assume at most %s%% annual return", percent(cr.Max))
}

func (cr *CapReturnRate) Validate(base *domain.ScenarioConfig) error {
	if base == nil {
		return NewTransformError(cr.Name(), "validate", "base scenario cannot be nil", nil)
	}
	return validateRate(cr.Name(), cr.Max)
}

func (cr *CapReturnRate) Apply(base *domain.ScenarioConfig) (*domain.ScenarioConfig, error) {
	modified := base.DeepCopy()
	modified.AnnualReturnRate = decimal.Min(base.AnnualReturnRate, cr.Max)
	return modified, nil
}

func validateRate(name string, rate decimal.Decimal) error {
	if rate.Abs().GreaterThan(maxAnnualRate) {
		return NewTransformError(name, "validate",
			fmt.Sprintf("annual return rate must be between -1 and 1, got %s", rate.String()), nil)
	}
	return nil
}

func percent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(1)
}
