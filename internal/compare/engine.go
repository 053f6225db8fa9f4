package compare

import (
	"github.com/rgehrsitz/fiscalpro/internal/calculation"
	"github.com/rgehrsitz/fiscalpro/internal/domain"
)

// CompareEngine runs the calculator and builds the ranked comparison
type CompareEngine struct {
	CalcEngine        *calculation.Calculator
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calc *calculation.Calculator) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calc,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// Compare evaluates a scenario against the catalog
func (ce *CompareEngine) Compare(name string, input domain.ScenarioInput, catalog calculation.RateCatalog) *ComparisonSet {
	cmp := ce.CalcEngine.Calculate(input, catalog)
	return ce.MetricsCalculator.Build(name, input, cmp)
}
