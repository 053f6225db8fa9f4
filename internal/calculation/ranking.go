package calculation

import (
	"sort"

	"github.com/rgehrsitz/fiscalpro/internal/domain"
	"github.com/shopspring/decimal"
)

// EffectiveRate returns total as a percentage of revenue, or zero when there
// is no revenue
func EffectiveRate(total, revenue decimal.Decimal) decimal.Decimal {
	if revenue.IsZero() {
		return decimal.Zero
	}
	return total.Div(revenue).Mul(hundred)
}

// Rank returns a copy of results sorted by ascending total tax. Ties keep
// their input order.
func Rank(results []domain.RegimeResult) []domain.RegimeResult {
	ranked := make([]domain.RegimeResult, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalTax.LessThan(ranked[j].TotalTax)
	})
	return ranked
}
