package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/fiscalpro/internal/brl"
	"github.com/rgehrsitz/fiscalpro/internal/calculation"
	"github.com/rgehrsitz/fiscalpro/internal/domain"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Solver finds the revenue at which the cheaper of two regimes changes
type Solver struct {
	CalcEngine *calculation.Calculator
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.Calculator, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.Calculator) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// ScaleRevenue returns a copy of in whose revenue lines are scaled to reach
// total while keeping their mix. Costs, expenses and payroll stay fixed.
func ScaleRevenue(in domain.ScenarioInput, total decimal.Decimal) (domain.ScenarioInput, error) {
	current := in.TotalRevenue()
	if !current.IsPositive() {
		return in, &BreakEvenError{
			Operation: "scale_revenue",
			Message:   "scenario has no revenue to scale",
		}
	}
	factor := total.Div(current)
	in.ProductRevenue = in.ProductRevenue.Mul(factor)
	in.MonophasicProductRevenue = in.MonophasicProductRevenue.Mul(factor)
	in.ServiceRevenue = in.ServiceRevenue.Mul(factor)
	return in, nil
}

// Solve bisects the revenue range for the point where RegimeA and RegimeB
// swap places. Simples Nacional bands make the tax curve discontinuous, so
// the answer may be a band edge rather than an exact tie.
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}
	if err := validateRegimes(req.RegimeA, req.RegimeB); err != nil {
		return nil, err
	}
	if req.Catalog == nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "no rate catalog"}
	}

	// Apply defaults
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}

	lo, hi := req.Constraints.Bounds()
	result := &Result{RegimeA: req.RegimeA, RegimeB: req.RegimeB}

	diffLo, loA, loB, err := s.diff(req, lo)
	if err != nil {
		return nil, err
	}
	diffHi, taxA, taxB, err := s.diff(req, hi)
	if err != nil {
		return nil, err
	}
	result.CheaperBelow = cheaper(req, diffLo)
	result.CheaperAbove = cheaper(req, diffHi)

	if diffLo.IsZero() {
		result.Found = true
		result.Revenue, result.TaxA, result.TaxB = lo, loA, loB
		result.ConvergenceInfo = "Carga igual no limite inferior"
		return result, nil
	}

	if diffLo.Sign() == diffHi.Sign() {
		result.Revenue, result.TaxA, result.TaxB = hi, taxA, taxB
		result.ConvergenceInfo = fmt.Sprintf("%s é mais barato em todo o intervalo", result.CheaperBelow.DisplayName())
		return result, nil
	}

	for result.Iterations < req.MaxIterations && hi.Sub(lo).GreaterThan(req.Tolerance) {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		result.Iterations++

		mid := lo.Add(hi).Div(two)
		d, a, b, err := s.diff(req, mid)
		if err != nil {
			return nil, err
		}
		if d.Sign() == diffLo.Sign() {
			lo = mid
			continue
		}
		hi, taxA, taxB = mid, a, b
		if d.IsZero() {
			break
		}
	}

	result.Found = true
	result.Revenue, result.TaxA, result.TaxB = hi, taxA, taxB
	if hi.Sub(lo).GreaterThan(req.Tolerance) && !taxA.Equal(taxB) {
		result.ConvergenceInfo = fmt.Sprintf("Máximo de %d iterações atingido", req.MaxIterations)
	} else {
		result.ConvergenceInfo = "Convergiu com tolerância de " + brl.FormatCurrency(req.Tolerance)
	}
	return result, nil
}

// diff returns taxA - taxB at the given revenue, with both taxes
func (s *Solver) diff(req Request, revenue decimal.Decimal) (decimal.Decimal, decimal.Decimal, decimal.Decimal, error) {
	cmp, err := s.evaluate(req.Base, req.Catalog, revenue)
	if err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, err
	}
	a, _ := cmp.Result(req.RegimeA)
	b, _ := cmp.Result(req.RegimeB)
	return a.TotalTax.Sub(b.TotalTax), a.TotalTax, b.TotalTax, nil
}

// evaluate runs the calculator on the scenario scaled to revenue
func (s *Solver) evaluate(base domain.ScenarioInput, catalog calculation.RateCatalog, revenue decimal.Decimal) (*domain.Comparison, error) {
	in, err := ScaleRevenue(base, revenue)
	if err != nil {
		return nil, err
	}
	cmp := s.CalcEngine.Calculate(in, catalog)
	if cmp.Diagnostic == calculation.UnexpectedErrorMessage {
		return nil, &BreakEvenError{
			Operation: "evaluate",
			Message:   fmt.Sprintf("calculation failed at revenue %s", revenue.StringFixed(2)),
		}
	}
	return cmp, nil
}

func cheaper(req Request, diff decimal.Decimal) domain.RegimeID {
	switch {
	case diff.IsNegative():
		return req.RegimeA
	case diff.IsPositive():
		return req.RegimeB
	default:
		return ""
	}
}

func validateRegimes(a, b domain.RegimeID) error {
	for _, id := range []domain.RegimeID{a, b} {
		if !knownRegime(id) {
			return &BreakEvenError{
				Operation: "validate_regimes",
				Message:   fmt.Sprintf("unknown regime %q (valid: presumed, real, simples, ret)", id),
			}
		}
	}
	if a == b {
		return &BreakEvenError{
			Operation: "validate_regimes",
			Message:   "regimes must differ",
		}
	}
	return nil
}

func knownRegime(id domain.RegimeID) bool {
	for _, r := range domain.Regimes {
		if r == id {
			return true
		}
	}
	return false
}
