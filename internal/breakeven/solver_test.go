package breakeven

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rgehrsitz/networth/internal/calculation"
	"github.com/rgehrsitz/networth/internal/domain"
	"github.com/shopspring/decimal"
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func TestNewSolver(t *testing.T) {
	options := SolverOptions{Precision: 12, DisplayPlaces: 0}

	solver := NewSolver(options)

	if solver == nil {
		t.Fatal("Expected solver to be created, got nil")
	}

	if solver.Options != options {
		t.Error("Expected Options to match input")
	}

	if solver.Logger == nil {
		t.Error("Expected default logger to be set")
	}
}

func TestNewDefaultSolver(t *testing.T) {
	solver := NewDefaultSolver()

	if solver.Options != DefaultSolverOptions() {
		t.Error("Expected default options to be applied")
	}
}

func TestRequiredMonthlyToHit_ZeroRate(t *testing.T) {
	tests := []struct {
		name     string
		params   domain.RequiredContributionParams
		expected float64
	}{
		{
			name: "empty start",
			params: domain.RequiredContributionParams{
				Target:        dec(10000),
				HorizonMonths: 10,
			},
			expected: 1000,
		},
		{
			name: "balances and debt",
			params: domain.RequiredContributionParams{
				Target:              dec(10000),
				HorizonMonths:       6,
				StartEarningBalance: dec(5000),
				BufferAmount:        dec(1000),
				DebtAmount:          dec(2000),
			},
			expected: 1000,
		},
		{
			name: "already on track",
			params: domain.RequiredContributionParams{
				Target:              dec(10000),
				HorizonMonths:       10,
				StartEarningBalance: dec(20000),
			},
			expected: -1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RequiredMonthlyToHit(tt.params)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !got.Equal(dec(tt.expected)) {
				t.Errorf("Expected %v, got %s", tt.expected, got.String())
			}
		})
	}
}

func TestRequiredMonthlyToHit_KnownAnnuity(t *testing.T) {
	// (1.01^12 - 1) / 0.01 = 12.682503013196972...
	params := domain.RequiredContributionParams{
		Target:           dec(12682.503013196972),
		HorizonMonths:    12,
		AnnualReturnRate: dec(0.12),
	}

	got, err := RequiredMonthlyToHit(params)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got.Sub(dec(1000)).Abs().GreaterThan(dec(0.000001)) {
		t.Errorf("Expected 1000, got %s", got.String())
	}
}

func TestRequiredMonthlyToHit_InvalidHorizon(t *testing.T) {
	for _, horizon := range []int{0, -12} {
		_, err := RequiredMonthlyToHit(domain.RequiredContributionParams{
			Target:        dec(1000),
			HorizonMonths: horizon,
		})
		if err == nil {
			t.Fatalf("Expected error for horizon %d", horizon)
		}

		var beErr *BreakEvenError
		if !errors.As(err, &beErr) {
			t.Errorf("Expected BreakEvenError, got %T", err)
		}
	}
}

func TestSolver_Solve_Components(t *testing.T) {
	solver := NewDefaultSolver()

	result, err := solver.Solve(domain.RequiredContributionParams{
		Target:              dec(10000),
		HorizonMonths:       10,
		StartEarningBalance: dec(20000),
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !result.Required.Equal(dec(-1000)) {
		t.Errorf("Expected signed -1000, got %s", result.Required.String())
	}
	if !result.Display.IsZero() {
		t.Errorf("Expected display clamped to 0, got %s", result.Display.String())
	}
	if !result.OnTrack {
		t.Error("Expected OnTrack for negative requirement")
	}
	if !result.AnnuityFactor.Equal(dec(10)) {
		t.Errorf("Expected annuity factor n=10 at zero rate, got %s", result.AnnuityFactor.String())
	}
	if !result.FutureValue.Equal(dec(20000)) {
		t.Errorf("Expected FV 20000 at zero rate, got %s", result.FutureValue.String())
	}
	if !result.Gap.Equal(dec(-10000)) {
		t.Errorf("Expected gap -10000, got %s", result.Gap.String())
	}
}

func TestCompound(t *testing.T) {
	got := compound(dec(1.01), 12, 18)
	expected := dec(1.1268250301319697)

	if got.Sub(expected).Abs().GreaterThan(dec(0.0000000001)) {
		t.Errorf("Expected %s, got %s", expected.String(), got.String())
	}

	if !compound(dec(1.5), 0, 18).Equal(decimal.NewFromInt(1)) {
		t.Error("Expected base^0 = 1")
	}
}

// The closed form must agree with stepping the engine when income equals
// the solved contribution and expenses are zero.
func TestRequiredMonthlyToHit_MatchesEngine(t *testing.T) {
	tests := []struct {
		name   string
		buffer decimal.Decimal
	}{
		{name: "no buffer", buffer: decimal.Zero},
		{name: "with buffer", buffer: dec(5000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := domain.RequiredContributionParams{
				Target:              dec(300000),
				HorizonMonths:       120,
				AnnualReturnRate:    dec(0.07),
				StartEarningBalance: dec(50000),
				BufferAmount:        tt.buffer,
				DebtAmount:          dec(10000),
			}

			contribution, err := RequiredMonthlyToHit(params)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !contribution.IsPositive() {
				t.Fatalf("Expected positive contribution, got %s", contribution.String())
			}

			engine := calculation.NewCalculationEngine()
			result := engine.Simulate(calculation.SimulationParams{
				StartDate:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
				Months:           params.HorizonMonths,
				AnnualReturnRate: params.AnnualReturnRate,
				Start: domain.AccountState{
					Earning: params.StartEarningBalance,
					Cash:    tt.buffer,
					Debt:    params.DebtAmount,
				},
				Income:       calculation.ConstantIncome(contribution),
				InvestBuffer: tt.buffer,
				Target:       params.Target,
			})

			final := result.FinalNetWorth()
			if final.Sub(params.Target).Abs().GreaterThan(dec(0.01)) {
				t.Errorf("Expected final net worth %s, got %s", params.Target.String(), final.StringFixed(6))
			}
		})
	}
}

func TestSolver_SolveTargets(t *testing.T) {
	solver := NewDefaultSolver()
	plan := &domain.PlanInputs{
		Start:            domain.AccountState{Earning: dec(40000), Cash: dec(5000), Debt: dec(8000)},
		AnnualReturnRate: dec(0.06),
		NearTarget:       domain.GoalTarget{Name: "Near", Amount: dec(100000), HorizonMonths: 36},
		FarTarget:        domain.GoalTarget{Name: "Far", Amount: dec(1000000), HorizonMonths: 240},
	}

	result, err := solver.SolveTargets(context.Background(), plan)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(result.Results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(result.Results))
	}
	if result.Results[0].Name != "Near" || result.Results[1].Name != "Far" {
		t.Errorf("Expected results in target order, got %s, %s", result.Results[0].Name, result.Results[1].Name)
	}
	if result.Results[0].Params.BufferAmount.Cmp(dec(5000)) != 0 {
		t.Errorf("Expected plan cash as buffer, got %s", result.Results[0].Params.BufferAmount.String())
	}
	if result.Hardest == nil {
		t.Fatal("Expected hardest target to be set")
	}
	if len(result.Recommendations) == 0 {
		t.Error("Expected recommendations")
	}
}

func TestSolver_SolveTargets_Errors(t *testing.T) {
	solver := NewDefaultSolver()

	if _, err := solver.SolveTargets(context.Background(), nil); err == nil {
		t.Error("Expected error for nil plan")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	plan := &domain.PlanInputs{
		NearTarget: domain.GoalTarget{Name: "Near", Amount: dec(1000), HorizonMonths: 12},
		FarTarget:  domain.GoalTarget{Name: "Far", Amount: dec(2000), HorizonMonths: 24},
	}
	if _, err := solver.SolveTargets(ctx, plan); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled error, got %v", err)
	}

	plan.FarTarget.HorizonMonths = 0
	_, err := solver.SolveTargets(context.Background(), plan)
	var beErr *BreakEvenError
	if !errors.As(err, &beErr) {
		t.Fatalf("Expected BreakEvenError, got %v", err)
	}
	if beErr.Unwrap() == nil {
		t.Error("Expected wrapped cause")
	}
}
