package breakeven

import (
	"github.com/rgehrsitz/fiscalpro/internal/calculation"
	"github.com/rgehrsitz/fiscalpro/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultMaxRevenue is the upper end of the default search range, the
// Simples Nacional revenue ceiling
var DefaultMaxRevenue = decimal.NewFromInt(4800000)

// Constraints bound the total revenue the solver may try
type Constraints struct {
	MinRevenue *decimal.Decimal `json:"min_revenue,omitempty"`
	MaxRevenue *decimal.Decimal `json:"max_revenue,omitempty"`
}

// Bounds returns the search range with defaults applied
func (c Constraints) Bounds() (decimal.Decimal, decimal.Decimal) {
	lo := decimal.NewFromInt(1)
	hi := DefaultMaxRevenue
	if c.MinRevenue != nil {
		lo = *c.MinRevenue
	}
	if c.MaxRevenue != nil {
		hi = *c.MaxRevenue
	}
	return lo, hi
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	lo, hi := c.Bounds()
	if lo.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_revenue cannot be negative",
		}
	}
	if !lo.LessThan(hi) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_revenue must be below max_revenue",
		}
	}
	return nil
}

// Request asks for the revenue at which two regimes carry the same tax
type Request struct {
	Base        domain.ScenarioInput
	Catalog     calculation.RateCatalog
	RegimeA     domain.RegimeID
	RegimeB     domain.RegimeID
	Constraints Constraints

	MaxIterations int             // Maximum bisection steps
	Tolerance     decimal.Decimal // Width of the final revenue interval
}

// Result is the outcome of a break-even search
type Result struct {
	RegimeA domain.RegimeID `json:"regime_a"`
	RegimeB domain.RegimeID `json:"regime_b"`

	// Found is false when one regime is cheaper over the whole range
	Found           bool   `json:"found"`
	Iterations      int    `json:"iterations"`
	ConvergenceInfo string `json:"convergence_info"`

	// Revenue is the first revenue, within tolerance, at which the cheaper
	// regime changes
	Revenue decimal.Decimal `json:"revenue"`
	TaxA    decimal.Decimal `json:"tax_a"`
	TaxB    decimal.Decimal `json:"tax_b"`

	// Cheaper regime at each end of the range; equal when nothing changes
	CheaperBelow domain.RegimeID `json:"cheaper_below"`
	CheaperAbove domain.RegimeID `json:"cheaper_above"`
}

// SweepPoint is the comparison at one revenue level
type SweepPoint struct {
	Revenue  decimal.Decimal                     `json:"revenue"`
	Totals   map[domain.RegimeID]decimal.Decimal `json:"totals"`
	Cheapest domain.RegimeID                     `json:"cheapest"`
}

// SweepResult lists the comparison across a revenue grid
type SweepResult struct {
	Points          []SweepPoint `json:"points"`
	Recommendations []string     `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	GridResolution int             // Points in a sweep
	Tolerance      decimal.Decimal // Convergence tolerance in reais
	MaxIterations  int             // Maximum iterations
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		GridResolution: 10,
		Tolerance:      decimal.NewFromInt(1), // R$ 1,00
		MaxIterations:  100,
	}
}

// BreakEvenError represents errors from break-even solver
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
