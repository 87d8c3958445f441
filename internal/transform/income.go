package transform

import (
	"fmt"

	"github.com/rgehrsitz/networth/internal/domain"
	"github.com/shopspring/decimal"
)

// FloorWorkIncome raises the monthly work income to at least Min.
type FloorWorkIncome struct {
	Min decimal.Decimal
}

func (fw *FloorWorkIncome) Name() string {
	return "floor_work_income"
}

func (fw *FloorWorkIncome) Description() string {
	return fmt.Sprintf("Earn at least $%s per month from work", fw.Min.StringFixed(0))
}

func (fw *FloorWorkIncome) Validate(base *domain.ScenarioConfig) error {
	if base == nil {
		return NewTransformError(fw.Name(), "validate", "base scenario cannot be nil", nil)
	}
	if fw.Min.IsNegative() {
		return NewTransformError(fw.Name(), "validate", "minimum work income cannot be negative", nil)
	}
	return nil
}

func (fw *FloorWorkIncome) Apply(base *domain.ScenarioConfig) (*domain.ScenarioConfig, error) {
	modified := base.DeepCopy()
	modified.Income.WorkMonthly = decimal.Max(base.Income.WorkMonthly, fw.Min)
	return modified, nil
}

// SetWorkIncome replaces the monthly work income.
type SetWorkIncome struct {
	Amount decimal.Decimal
}

func (sw *SetWorkIncome) Name() string {
	return "set_work_income"
}

func (sw *SetWorkIncome) Description() string {
	return fmt.Sprintf("Earn $%s per month from work", sw.Amount.StringFixed(0))
}

func (sw *SetWorkIncome) Validate(base *domain.ScenarioConfig) error {
	if base == nil {
		return NewTransformError(sw.Name(), "validate", "base scenario cannot be nil", nil)
	}
	if sw.Amount.IsNegative() {
		return NewTransformError(sw.Name(), "validate", "work income cannot be negative", nil)
	}
	return nil
}

func (sw *SetWorkIncome) Apply(base *domain.ScenarioConfig) (*domain.ScenarioConfig, error) {
	modified := base.DeepCopy()
	modified.Income.WorkMonthly = sw.Amount
	return modified, nil
}

// SetWorkStart moves the zero-based month index work income begins at.
type SetWorkStart struct {
	Month int
}

func (ws *SetWorkStart) Name() string {
	return "set_work_start"
}

func (ws *SetWorkStart) Description() string {
	if ws.Month == 0 {
		return "Start working immediately"
	}
	return fmt.Sprintf("Start working at month %d", ws.Month)
}

func (ws *SetWorkStart) Validate(base *domain.ScenarioConfig) error {
	if base == nil {
		return NewTransformError(ws.Name(), "validate", "base scenario cannot be nil", nil)
	}
	if ws.Month < 0 {
		return NewTransformError(ws.Name(), "validate",
			fmt.Sprintf("work start month cannot be negative, got %d", ws.Month), nil)
	}
	return nil
}

func (ws *SetWorkStart) Apply(base *domain.ScenarioConfig) (*domain.ScenarioConfig, error) {
	modified := base.DeepCopy()
	modified.Income.WorkStartMonth = ws.Month
	return modified, nil
}

// StartWorkAfterGrant begins work income the month the grant ends.
type StartWorkAfterGrant struct{}

func (sa *StartWorkAfterGrant) Name() string {
	return "start_work_after_grant"
}

func (sa *StartWorkAfterGrant) Description() string {
	return "Start working when the grant ends"
}

func (sa *StartWorkAfterGrant) Validate(base *domain.ScenarioConfig) error {
	if base == nil {
		return NewTransformError(sa.Name(), "validate", "base scenario cannot be nil", nil)
	}
	if base.Income.GrantMonths < 0 {
		return NewTransformError(sa.Name(), "validate", "grant duration cannot be negative", nil)
	}
	return nil
}

func (sa *StartWorkAfterGrant) Apply(base *domain.ScenarioConfig) (*domain.ScenarioConfig, error) {
	modified := base.DeepCopy()
	modified.Income.WorkStartMonth = base.Income.GrantMonths
	return modified, nil
}
