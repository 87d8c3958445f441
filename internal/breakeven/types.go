package breakeven

import (
	"github.com/rgehrsitz/networth/internal/domain"
	"github.com/shopspring/decimal"
)

// ContributionResult is the solved monthly contribution for one target
type ContributionResult struct {
	Name   string                            `json:"name,omitempty"`
	Params domain.RequiredContributionParams `json:"params"`

	// Required is the signed contribution. A negative value means the
	// starting balances alone already reach the target.
	Required decimal.Decimal `json:"required"`
	// Display is Required clamped at zero for presentation
	Display decimal.Decimal `json:"display"`
	OnTrack bool            `json:"on_track"`

	MonthlyRate   decimal.Decimal `json:"monthly_rate"`
	FutureValue   decimal.Decimal `json:"future_value"`   // start earning compounded over the horizon
	AnnuityFactor decimal.Decimal `json:"annuity_factor"` // ((1+r)^n - 1) / r, or n when r = 0
	Gap           decimal.Decimal `json:"gap"`            // target + debt - buffer - future value
}

// MultiTargetResult contains solved contributions for several targets
type MultiTargetResult struct {
	Results         []ContributionResult `json:"results"`
	Hardest         *ContributionResult  `json:"hardest,omitempty"`
	Recommendations []string             `json:"recommendations"`
}

// SolverOptions configures the solver
type SolverOptions struct {
	// Precision is the number of fractional digits carried while compounding
	Precision int32
	// DisplayPlaces is the rounding applied to the display amount
	DisplayPlaces int32
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Precision:     18,
		DisplayPlaces: 2,
	}
}

// ValidateParams checks that the solver inputs have a meaningful closed form
func ValidateParams(p domain.RequiredContributionParams) error {
	if p.HorizonMonths <= 0 {
		return &BreakEvenError{
			Operation: "validate_params",
			Message:   "horizon_months must be positive",
		}
	}
	if p.AnnualReturnRate.LessThanOrEqual(decimal.NewFromInt(-12)) {
		return &BreakEvenError{
			Operation: "validate_params",
			Message:   "annual_return_rate must be greater than -12 (-1200%)",
		}
	}
	return nil
}

// BreakEvenError represents errors from the contribution solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
