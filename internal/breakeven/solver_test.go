package breakeven

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/fiscalpro/internal/calculation"
	"github.com/rgehrsitz/fiscalpro/internal/catalog"
	"github.com/rgehrsitz/fiscalpro/internal/domain"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		States: []domain.StateOption{
			domain.Separator{},
			domain.StateIcmsRecord{State: "São Paulo", RatePercent: dec("18")},
		},
		Presumed: []domain.SegmentTaxRecord{{
			SegmentName:                       "Comércio",
			PIS:                               dec("1.65"),
			COFINS:                            dec("7.6"),
			IncomeTaxRate:                     dec("15"),
			IncomeTaxPresumptionRate:          dec("8"),
			SocialContributionRate:            dec("9"),
			SocialContributionPresumptionRate: dec("12"),
		}},
		Real: []domain.SegmentTaxRecord{{
			SegmentName:            "Comércio",
			PIS:                    dec("1.65"),
			COFINS:                 dec("7.6"),
			IncomeTaxRate:          dec("15"),
			SocialContributionRate: dec("9"),
		}},
	}
}

func commerceScenario() domain.ScenarioInput {
	return domain.ScenarioInput{
		SelectedState:   "São Paulo",
		ICMSSource:      domain.ICMSSourceState,
		SelectedSegment: "Comércio",
		SimplesAnnex:    domain.AnnexI,
		ProductRevenue:  dec("200000"),
	}
}

type failingCatalog struct{}

func (failingCatalog) StateOptions() ([]domain.StateOption, error) {
	return nil, errors.New("catalog offline")
}

func (failingCatalog) SegmentTable(domain.SegmentRegime) ([]domain.SegmentTaxRecord, error) {
	return nil, errors.New("catalog offline")
}

func TestNewDefaultSolver(t *testing.T) {
	calc := calculation.NewCalculator()
	solver := NewDefaultSolver(calc)

	if solver.CalcEngine != calc {
		t.Error("Expected CalcEngine to match input")
	}
	if solver.Options != DefaultSolverOptions() {
		t.Error("Expected default options to be applied")
	}
}

func TestScaleRevenue(t *testing.T) {
	in := domain.ScenarioInput{
		ProductRevenue: dec("300"),
		ServiceRevenue: dec("100"),
		ProductCost:    dec("50"),
		Payroll:        dec("10"),
	}

	scaled, err := ScaleRevenue(in, dec("800"))
	require.NoError(t, err)
	assert.True(t, scaled.ProductRevenue.Equal(dec("600")))
	assert.True(t, scaled.ServiceRevenue.Equal(dec("200")))
	assert.True(t, scaled.ProductCost.Equal(dec("50")), "costs stay fixed")
	assert.True(t, scaled.Payroll.Equal(dec("10")), "payroll stays fixed")
	assert.True(t, in.ProductRevenue.Equal(dec("300")), "input is not modified")

	_, err = ScaleRevenue(domain.ScenarioInput{}, dec("100"))
	var bee *BreakEvenError
	require.ErrorAs(t, err, &bee)
	assert.Equal(t, "scale_revenue", bee.Operation)
}

func TestSolve_RealVersusPresumed(t *testing.T) {
	// With fixed costs C, Real beats Presumed while 0.2172*R < 0.24*C
	base := commerceScenario()
	base.ProductCost = dec("100000")

	solver := NewDefaultSolver(calculation.NewCalculator())
	res, err := solver.Solve(context.Background(), Request{
		Base:    base,
		Catalog: testCatalog(),
		RegimeA: domain.RegimeReal,
		RegimeB: domain.RegimePresumed,
	})
	require.NoError(t, err)

	assert.True(t, res.Found)
	assert.Equal(t, domain.RegimeReal, res.CheaperBelow)
	assert.Equal(t, domain.RegimePresumed, res.CheaperAbove)
	assert.Greater(t, res.Iterations, 0)

	want := dec("24000000").Div(dec("217.2"))
	assert.True(t, res.Revenue.Sub(want).Abs().LessThanOrEqual(dec("1")),
		"break-even %s, want about %s", res.Revenue, want.StringFixed(2))
	assert.True(t, res.TaxA.GreaterThanOrEqual(res.TaxB))
	assert.Contains(t, res.ConvergenceInfo, "Convergiu")
}

func TestSolve_SimplesCeiling(t *testing.T) {
	maxRev := dec("6000000")
	solver := NewDefaultSolver(calculation.NewCalculator())
	res, err := solver.Solve(context.Background(), Request{
		Base:        commerceScenario(),
		Catalog:     testCatalog(),
		RegimeA:     domain.RegimeSimples,
		RegimeB:     domain.RegimePresumed,
		Constraints: Constraints{MaxRevenue: &maxRev},
	})
	require.NoError(t, err)

	// The 33% band starts right above R$ 4.800.000,00
	assert.True(t, res.Found)
	assert.True(t, res.Revenue.GreaterThan(dec("4800000")))
	assert.True(t, res.Revenue.LessThanOrEqual(dec("4800001")))
	assert.Equal(t, domain.RegimeSimples, res.CheaperBelow)
	assert.Equal(t, domain.RegimePresumed, res.CheaperAbove)
}

func TestSolve_NoCrossing(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculator())
	res, err := solver.Solve(context.Background(), Request{
		Base:    commerceScenario(),
		Catalog: testCatalog(),
		RegimeA: domain.RegimeSimples,
		RegimeB: domain.RegimePresumed,
	})
	require.NoError(t, err)

	assert.False(t, res.Found)
	assert.Equal(t, 0, res.Iterations)
	assert.Equal(t, domain.RegimeSimples, res.CheaperBelow)
	assert.Equal(t, res.CheaperBelow, res.CheaperAbove)
	assert.Equal(t, "Simples Nacional é mais barato em todo o intervalo", res.ConvergenceInfo)
	assert.True(t, res.Revenue.Equal(DefaultMaxRevenue))
}

func TestSolve_EqualAtLowerBound(t *testing.T) {
	// Simples and RET both charge 4% in the first band
	base := commerceScenario()
	base.RETSingleTaxEnabled = true
	minRev, maxRev := dec("1000"), dec("150000")

	solver := NewDefaultSolver(calculation.NewCalculator())
	res, err := solver.Solve(context.Background(), Request{
		Base:        base,
		Catalog:     testCatalog(),
		RegimeA:     domain.RegimeSimples,
		RegimeB:     domain.RegimeRET,
		Constraints: Constraints{MinRevenue: &minRev, MaxRevenue: &maxRev},
	})
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.True(t, res.Revenue.Equal(minRev))
	assert.True(t, res.TaxA.Equal(res.TaxB))
}

func TestSolve_Errors(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculator())
	ctx := context.Background()

	tests := []struct {
		name string
		req  Request
		op   string
	}{
		{
			name: "same regime",
			req:  Request{Base: commerceScenario(), Catalog: testCatalog(), RegimeA: domain.RegimeReal, RegimeB: domain.RegimeReal},
			op:   "validate_regimes",
		},
		{
			name: "unknown regime",
			req:  Request{Base: commerceScenario(), Catalog: testCatalog(), RegimeA: "mei", RegimeB: domain.RegimeReal},
			op:   "validate_regimes",
		},
		{
			name: "inverted bounds",
			req: Request{Base: commerceScenario(), Catalog: testCatalog(), RegimeA: domain.RegimeReal, RegimeB: domain.RegimeRET,
				Constraints: Constraints{MinRevenue: decPtr("500"), MaxRevenue: decPtr("100")}},
			op: "validate_constraints",
		},
		{
			name: "negative minimum",
			req: Request{Base: commerceScenario(), Catalog: testCatalog(), RegimeA: domain.RegimeReal, RegimeB: domain.RegimeRET,
				Constraints: Constraints{MinRevenue: decPtr("-1")}},
			op: "validate_constraints",
		},
		{
			name: "no revenue",
			req:  Request{Base: domain.ScenarioInput{}, Catalog: testCatalog(), RegimeA: domain.RegimeReal, RegimeB: domain.RegimeRET},
			op:   "scale_revenue",
		},
		{
			name: "failing catalog",
			req:  Request{Base: commerceScenario(), Catalog: failingCatalog{}, RegimeA: domain.RegimeReal, RegimeB: domain.RegimeRET},
			op:   "evaluate",
		},
		{
			name: "nil catalog",
			req:  Request{Base: commerceScenario(), RegimeA: domain.RegimeReal, RegimeB: domain.RegimeRET},
			op:   "solve",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := solver.Solve(ctx, tt.req)
			assert.Nil(t, res)
			var bee *BreakEvenError
			require.ErrorAs(t, err, &bee)
			assert.Equal(t, tt.op, bee.Operation)
		})
	}
}

func TestSolve_Cancelled(t *testing.T) {
	base := commerceScenario()
	base.ProductCost = dec("100000")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDefaultSolver(calculation.NewCalculator()).Solve(ctx, Request{
		Base:    base,
		Catalog: testCatalog(),
		RegimeA: domain.RegimeReal,
		RegimeB: domain.RegimePresumed,
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSweep(t *testing.T) {
	base := commerceScenario()
	base.RETSingleTaxEnabled = true
	minRev, maxRev := dec("100000"), dec("1000000")

	solver := NewDefaultSolver(calculation.NewCalculator())
	res, err := solver.Sweep(context.Background(), base, testCatalog(), Constraints{MinRevenue: &minRev, MaxRevenue: &maxRev})
	require.NoError(t, err)
	require.Len(t, res.Points, 10)

	assert.True(t, res.Points[0].Revenue.Equal(minRev))
	assert.True(t, res.Points[1].Revenue.Equal(dec("200000")))
	assert.True(t, res.Points[9].Revenue.Equal(maxRev))

	// Simples and RET tie at 4% in the first band and Simples is listed first
	assert.Equal(t, domain.RegimeSimples, res.Points[0].Cheapest)
	assert.Equal(t, domain.RegimeRET, res.Points[1].Cheapest)
	assert.Equal(t, "8000.00", res.Points[1].Totals[domain.RegimeRET].StringFixed(2))

	require.Len(t, res.Recommendations, 1)
	assert.Equal(t,
		"Entre R$ 100.000,00 e R$ 200.000,00 o regime mais barato passa de Simples Nacional para RET",
		res.Recommendations[0])
}

func TestSweep_SingleWinner(t *testing.T) {
	maxRev := dec("150000")
	solver := NewSolver(calculation.NewCalculator(), SolverOptions{GridResolution: 1})
	res, err := solver.Sweep(context.Background(), commerceScenario(), testCatalog(), Constraints{MaxRevenue: &maxRev})
	require.NoError(t, err)

	assert.Len(t, res.Points, 2, "resolution is raised to two points")
	assert.Equal(t, []string{"RET é o regime mais barato em toda a faixa analisada"}, res.Recommendations)
}
