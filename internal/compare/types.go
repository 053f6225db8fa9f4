package compare

import (
	"github.com/rgehrsitz/fiscalpro/internal/brl"
	"github.com/rgehrsitz/fiscalpro/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult is one regime's line in a comparison
type ComparisonResult struct {
	Regime     domain.RegimeID `json:"regime"`
	RegimeName string          `json:"regimeName"`
	Rank       int             `json:"rank"` // 1 is the lowest burden
	IsLowest   bool            `json:"isLowest"`
	IsHighest  bool            `json:"isHighest"`

	TotalTax             decimal.Decimal `json:"totalTax"`
	EffectiveRatePercent decimal.Decimal `json:"effectiveRatePercent"`

	// Comparison to the cheapest regime
	DiffFromLowest decimal.Decimal `json:"diffFromLowest"`

	// Revenue minus costs, expenses and this regime's taxes
	NetResult decimal.Decimal `json:"netResult"`
}

// ComparisonSet is a ranked view of a calculator comparison
type ComparisonSet struct {
	ScenarioName    string             `json:"scenarioName"`
	ScenarioPath    string             `json:"scenarioPath,omitempty"`
	Segment         string             `json:"segment,omitempty"`
	TotalRevenue    decimal.Decimal    `json:"totalRevenue"`
	ICMSRatePercent decimal.Decimal    `json:"icmsRatePercent"`
	Results         []ComparisonResult `json:"results"` // ranked, lowest first
	Diagnostic      string             `json:"diagnostic,omitempty"`
	Recommendations []string           `json:"recommendations"`
}

// Lowest returns the cheapest regime, if any
func (cs *ComparisonSet) Lowest() *ComparisonResult {
	if len(cs.Results) == 0 {
		return nil
	}
	return &cs.Results[0]
}

// MetricsCalculator derives presentation metrics from a comparison
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// Build ranks the comparison and computes the per-regime metrics
func (mc *MetricsCalculator) Build(name string, input domain.ScenarioInput, cmp *domain.Comparison) *ComparisonSet {
	set := &ComparisonSet{
		ScenarioName:    name,
		Segment:         input.SelectedSegment,
		TotalRevenue:    cmp.TotalRevenue,
		ICMSRatePercent: cmp.ICMSRatePercent,
		Diagnostic:      cmp.Diagnostic,
		Results:         make([]ComparisonResult, 0, len(cmp.Ranked)),
	}
	if len(cmp.Ranked) == 0 {
		return set
	}

	lowest := cmp.Ranked[0].TotalTax
	highest := cmp.Ranked[len(cmp.Ranked)-1].TotalTax
	outflows := input.TotalCost().Add(input.TotalExpenses())

	for i, r := range cmp.Ranked {
		set.Results = append(set.Results, ComparisonResult{
			Regime:               r.Regime,
			RegimeName:           r.Regime.DisplayName(),
			Rank:                 i + 1,
			IsLowest:             r.TotalTax.Equal(lowest),
			IsHighest:            r.TotalTax.Equal(highest) && !highest.Equal(lowest),
			TotalTax:             r.TotalTax,
			EffectiveRatePercent: r.EffectiveRatePercent,
			DiffFromLowest:       r.TotalTax.Sub(lowest),
			NetResult:            cmp.TotalRevenue.Sub(outflows).Sub(r.TotalTax),
		})
	}

	set.Recommendations = GenerateRecommendations(set)
	return set
}

// GenerateRecommendations summarizes the ranking in a few sentences
func GenerateRecommendations(set *ComparisonSet) []string {
	recommendations := []string{}
	if len(set.Results) < 2 || set.TotalRevenue.IsZero() {
		return recommendations
	}

	best := set.Results[0]
	next := set.Results[1]
	worst := set.Results[len(set.Results)-1]

	if best.TotalTax.Equal(next.TotalTax) {
		recommendations = append(recommendations,
			"Empate: "+best.RegimeName+" e "+next.RegimeName+" têm a mesma carga ("+brl.FormatCurrency(best.TotalTax)+")")
	} else {
		recommendations = append(recommendations,
			"Menor carga: "+best.RegimeName+", economia de "+brl.FormatCurrency(next.TotalTax.Sub(best.TotalTax))+
				" frente a "+next.RegimeName)
	}

	if worst.DiffFromLowest.IsPositive() {
		recommendations = append(recommendations,
			"Maior carga: "+worst.RegimeName+", "+brl.FormatCurrency(worst.DiffFromLowest)+" acima da menor")
	}

	if best.NetResult.IsNegative() {
		recommendations = append(recommendations,
			"Resultado negativo mesmo no regime mais barato ("+brl.FormatCurrency(best.NetResult)+")")
	}

	return recommendations
}
