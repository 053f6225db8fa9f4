package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/fiscalpro/internal/brl"
	"github.com/rgehrsitz/fiscalpro/internal/calculation"
	"github.com/rgehrsitz/fiscalpro/internal/domain"
	"github.com/shopspring/decimal"
)

// Sweep evaluates the scenario at evenly spaced revenues across the
// constraint range and reports where the cheapest regime changes
func (s *Solver) Sweep(ctx context.Context, base domain.ScenarioInput, catalog calculation.RateCatalog, constraints Constraints) (*SweepResult, error) {
	if err := constraints.Validate(); err != nil {
		return nil, err
	}
	if catalog == nil {
		return nil, &BreakEvenError{Operation: "sweep", Message: "no rate catalog"}
	}

	n := s.Options.GridResolution
	if n < 2 {
		n = 2
	}
	lo, hi := constraints.Bounds()
	step := hi.Sub(lo).Div(decimal.NewFromInt(int64(n - 1)))

	result := &SweepResult{Points: make([]SweepPoint, 0, n)}
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		revenue := lo.Add(step.Mul(decimal.NewFromInt(int64(i))))
		if i == n-1 {
			revenue = hi
		}
		cmp, err := s.evaluate(base, catalog, revenue)
		if err != nil {
			return nil, err
		}

		point := SweepPoint{
			Revenue: revenue,
			Totals:  make(map[domain.RegimeID]decimal.Decimal, len(cmp.Results)),
		}
		for _, r := range cmp.Results {
			point.Totals[r.Regime] = r.TotalTax
		}
		if len(cmp.Ranked) > 0 {
			point.Cheapest = cmp.Ranked[0].Regime
		}
		result.Points = append(result.Points, point)
	}

	result.Recommendations = sweepRecommendations(result.Points)
	return result, nil
}

func sweepRecommendations(points []SweepPoint) []string {
	recommendations := []string{}
	if len(points) == 0 {
		return recommendations
	}

	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		if prev.Cheapest == cur.Cheapest {
			continue
		}
		recommendations = append(recommendations, fmt.Sprintf(
			"Entre %s e %s o regime mais barato passa de %s para %s",
			brl.FormatCurrency(prev.Revenue), brl.FormatCurrency(cur.Revenue),
			prev.Cheapest.DisplayName(), cur.Cheapest.DisplayName()))
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, fmt.Sprintf(
			"%s é o regime mais barato em toda a faixa analisada", points[0].Cheapest.DisplayName()))
	}
	return recommendations
}
