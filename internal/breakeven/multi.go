package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/networth/internal/domain"
)

// SolveTargets solves the required contribution for each of the plan's targets
func (s *Solver) SolveTargets(ctx context.Context, plan *domain.PlanInputs) (*MultiTargetResult, error) {
	if plan == nil {
		return nil, &BreakEvenError{
			Operation: "solve_targets",
			Message:   "plan inputs are required",
		}
	}

	result := &MultiTargetResult{}
	for _, target := range plan.Targets() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		solved, err := s.Solve(plan.ContributionParams(target))
		if err != nil {
			return nil, &BreakEvenError{
				Operation: "solve_targets",
				Message:   fmt.Sprintf("failed to solve target %q", target.Name),
				Cause:     err,
			}
		}
		solved.Name = target.Name
		result.Results = append(result.Results, *solved)
	}

	for i := range result.Results {
		if result.Hardest == nil || result.Results[i].Required.GreaterThan(result.Hardest.Required) {
			result.Hardest = &result.Results[i]
		}
	}

	result.Recommendations = generateRecommendations(result)
	return result, nil
}

func generateRecommendations(result *MultiTargetResult) []string {
	var recommendations []string

	for _, r := range result.Results {
		if r.OnTrack {
			recommendations = append(recommendations,
				fmt.Sprintf("%s: starting balances alone reach $%s in %d months; no contribution needed",
					r.Name, r.Params.Target.StringFixed(0), r.Params.HorizonMonths))
			continue
		}
		recommendations = append(recommendations,
			fmt.Sprintf("%s: invest $%s per month for %d months to reach $%s",
				r.Name, r.Display.StringFixed(2), r.Params.HorizonMonths, r.Params.Target.StringFixed(0)))
	}

	if result.Hardest != nil && !result.Hardest.OnTrack && len(result.Results) > 1 {
		recommendations = append(recommendations,
			fmt.Sprintf("%s needs the largest contribution: $%s per month",
				result.Hardest.Name, result.Hardest.Display.StringFixed(2)))
	}

	return recommendations
}
