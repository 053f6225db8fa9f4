package calculation

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/fiscalpro/internal/domain"
	"github.com/shopspring/decimal"
)

// UnexpectedErrorMessage is surfaced when the catalog could not be read
const UnexpectedErrorMessage = "Ocorreu um erro inesperado. Tente novamente."

// RateCatalog supplies the rate tables the calculator reads
type RateCatalog interface {
	// StateOptions returns the ordered state list, separators included
	StateOptions() ([]domain.StateOption, error)
	// SegmentTable returns the segment rows of one regime
	SegmentTable(regime domain.SegmentRegime) ([]domain.SegmentTaxRecord, error)
}

// Calculator evaluates a scenario under every regime
type Calculator struct {
	Logger Logger
	Debug  bool // Log every intermediate figure
}

// NewCalculator creates a calculator that logs nothing
func NewCalculator() *Calculator {
	return &Calculator{Logger: NopLogger{}}
}

// SetLogger replaces the logger; nil restores the no-op logger
func (c *Calculator) SetLogger(l Logger) {
	if l == nil {
		c.Logger = NopLogger{}
		return
	}
	c.Logger = l
}

func (c *Calculator) logger() Logger {
	if c.Logger == nil {
		return NopLogger{}
	}
	return c.Logger
}

// Calculate recomputes the four regime totals for input. It never returns an
// error: missing segments are reported in Diagnostic, and catalog failures
// yield zeroed totals with a generic message.
func (c *Calculator) Calculate(input domain.ScenarioInput, catalog RateCatalog) (result *domain.Comparison) {
	defer func() {
		if r := recover(); r != nil {
			c.logger().Errorf("calculation aborted: %v", r)
			result = failedComparison(input)
		}
	}()

	cmp, err := c.calculate(input, catalog)
	if err != nil {
		c.logger().Errorf("calculation failed: %v", err)
		return failedComparison(input)
	}
	return cmp
}

func (c *Calculator) calculate(input domain.ScenarioInput, catalog RateCatalog) (*domain.Comparison, error) {
	if catalog == nil {
		return nil, errors.New("no rate catalog")
	}

	states, err := catalog.StateOptions()
	if err != nil {
		return nil, fmt.Errorf("failed to read state list: %w", err)
	}
	presumed, err := catalog.SegmentTable(domain.SegmentPresumed)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s table: %w", domain.SegmentPresumed.DisplayName(), err)
	}
	realRows, err := catalog.SegmentTable(domain.SegmentReal)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s table: %w", domain.SegmentReal.DisplayName(), err)
	}

	icms := ResolveICMSRate(input, states)
	rows := LookupSegment(input.SelectedSegment, presumed, realRows)
	diagnostic := MissingSegmentMessage(input.SelectedSegment, rows)
	if diagnostic != "" {
		c.logger().Warnf("segment lookup incomplete: %s", diagnostic)
	}

	revenue := input.TotalRevenue()
	totals := map[domain.RegimeID]decimal.Decimal{
		domain.RegimePresumed: PresumedProfitTax(input, rows.Presumed, icms),
		domain.RegimeReal:     RealProfitTax(input, rows.Real, icms),
		domain.RegimeSimples:  SimplesTax(input),
		domain.RegimeRET:      RETTax(input),
	}

	results := make([]domain.RegimeResult, 0, len(domain.Regimes))
	for _, id := range domain.Regimes {
		total := totals[id]
		results = append(results, domain.RegimeResult{
			Regime:               id,
			TotalTax:             total,
			EffectiveRatePercent: EffectiveRate(total, revenue),
		})
		if c.Debug {
			c.logger().Debugf("%s: total=%s effective=%s%%", id.DisplayName(), total.StringFixed(2), EffectiveRate(total, revenue).StringFixed(2))
		}
	}

	if c.Debug {
		c.logger().Debugf("icms=%s%% revenue=%s segment=%q", icms.String(), revenue.StringFixed(2), input.SelectedSegment)
	}

	return &domain.Comparison{
		Results:         results,
		Ranked:          Rank(results),
		ICMSRatePercent: icms,
		TotalRevenue:    revenue,
		Segment:         rows,
		Diagnostic:      diagnostic,
	}, nil
}

// failedComparison resets every regime to zero
func failedComparison(input domain.ScenarioInput) *domain.Comparison {
	results := make([]domain.RegimeResult, 0, len(domain.Regimes))
	for _, id := range domain.Regimes {
		results = append(results, domain.RegimeResult{Regime: id, TotalTax: decimal.Zero, EffectiveRatePercent: decimal.Zero})
	}
	return &domain.Comparison{
		Results:      results,
		Ranked:       Rank(results),
		TotalRevenue: input.TotalRevenue(),
		Diagnostic:   UnexpectedErrorMessage,
	}
}
