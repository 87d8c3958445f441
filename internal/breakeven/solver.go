package breakeven

import (
	"github.com/rgehrsitz/networth/internal/calculation"
	"github.com/rgehrsitz/networth/internal/domain"
	"github.com/shopspring/decimal"
)

// Solver computes the constant monthly contribution needed to reach a target.
// It is closed form and independent of the simulation engine.
type Solver struct {
	Options SolverOptions
	Logger  calculation.Logger
}

// NewSolver creates a new contribution solver
func NewSolver(options SolverOptions) *Solver {
	return &Solver{
		Options: options,
		Logger:  calculation.NopLogger{},
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultSolverOptions())
}

// RequiredMonthlyToHit returns the signed monthly contribution that grows the
// starting earning balance to the target (plus debt, minus buffer) over the
// horizon. The result is never clamped.
func RequiredMonthlyToHit(p domain.RequiredContributionParams) (decimal.Decimal, error) {
	result, err := NewDefaultSolver().Solve(p)
	if err != nil {
		return decimal.Zero, err
	}
	return result.Required, nil
}

// Solve evaluates the closed form and returns the contribution with its components
func (s *Solver) Solve(p domain.RequiredContributionParams) (*ContributionResult, error) {
	if err := ValidateParams(p); err != nil {
		return nil, err
	}

	precision := s.Options.Precision
	if precision <= 0 {
		precision = DefaultSolverOptions().Precision
	}

	n := p.HorizonMonths
	r := calculation.MonthlyRate(p.AnnualReturnRate)
	growth := compound(decimal.NewFromInt(1).Add(r), n, precision)

	fv := p.StartEarningBalance.Mul(growth)

	var annuity decimal.Decimal
	if r.IsZero() {
		annuity = decimal.NewFromInt(int64(n))
	} else {
		annuity = growth.Sub(decimal.NewFromInt(1)).DivRound(r, precision)
	}
	if annuity.IsZero() {
		return nil, &BreakEvenError{
			Operation: "solve",
			Message:   "annuity factor is zero for the given rate and horizon",
		}
	}

	gap := p.Target.Add(p.DebtAmount).Sub(p.BufferAmount).Sub(fv)
	required := gap.DivRound(annuity, precision)

	display := required
	if display.IsNegative() {
		display = decimal.Zero
	}
	places := s.Options.DisplayPlaces
	if places < 0 {
		places = 0
	}

	s.logger().Debugf("solve target=%s n=%d r=%s fv=%s annuity=%s required=%s",
		p.Target.StringFixed(0), n, r.String(), fv.StringFixed(2), annuity.StringFixed(4), required.StringFixed(2))

	return &ContributionResult{
		Params:        p,
		Required:      required,
		Display:       display.Round(places),
		OnTrack:       !required.IsPositive(),
		MonthlyRate:   r,
		FutureValue:   fv,
		AnnuityFactor: annuity,
		Gap:           gap,
	}, nil
}

// compound returns base^n by repeated squaring, rounding each product so the
// digit count stays bounded over long horizons
func compound(base decimal.Decimal, n int, precision int32) decimal.Decimal {
	result := decimal.NewFromInt(1)
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base).Round(precision)
		}
		base = base.Mul(base).Round(precision)
		n >>= 1
	}
	return result
}

func (s *Solver) logger() calculation.Logger {
	if s == nil || s.Logger == nil {
		return calculation.NopLogger{}
	}
	return s.Logger
}
