package calculation

import (
	"github.com/rgehrsitz/fiscalpro/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX MODEL ASSUMPTIONS:
//
// 1. Payroll charges: FGTS 8% and employer INSS 20% on the full payroll
//    under Lucro Presumido and Lucro Real; Simples Nacional only adds FGTS.
//
// 2. ICMS: a single resolved rate applied to product revenue only. Service
//    and monophasic revenue never carry ICMS.
//
// 3. ISS: the operator's service tax rate applied to service revenue.
//
// 4. Simples Nacional: one flat rate for the whole revenue, picked by revenue
//    band. The selected annex does not change the rate table.
//
// 5. RET: 4% unified tax on total revenue plus optional FGTS.

var (
	hundred = decimal.NewFromInt(100)

	// FGTSRate is the employer's severance fund deposit on payroll
	FGTSRate = decimal.NewFromFloat(0.08)
	// EmployerINSSRate is the employer's social security charge on payroll
	EmployerINSSRate = decimal.NewFromFloat(0.20)
	// RETRate is the unified RET rate on total revenue
	RETRate = decimal.NewFromFloat(0.04)
)

// SimplesBracket is one revenue band of the Simples Nacional table. Max is
// inclusive; a zero Max marks the open-ended last band.
type SimplesBracket struct {
	Max  decimal.Decimal
	Rate decimal.Decimal
}

// SimplesBrackets is the revenue band table. Each band applies its own rate
// to the entire revenue.
var SimplesBrackets = []SimplesBracket{
	{decimal.NewFromInt(180000), decimal.NewFromFloat(0.040)},
	{decimal.NewFromInt(360000), decimal.NewFromFloat(0.073)},
	{decimal.NewFromInt(720000), decimal.NewFromFloat(0.095)},
	{decimal.NewFromInt(1800000), decimal.NewFromFloat(0.107)},
	{decimal.NewFromInt(3600000), decimal.NewFromFloat(0.143)},
	{decimal.NewFromInt(4800000), decimal.NewFromFloat(0.190)},
	{decimal.Zero, decimal.NewFromFloat(0.330)},
}

// SimplesRate returns the flat rate of the band that contains revenue
func SimplesRate(revenue decimal.Decimal) decimal.Decimal {
	for _, b := range SimplesBrackets {
		if b.Max.IsZero() || revenue.LessThanOrEqual(b.Max) {
			return b.Rate
		}
	}
	return SimplesBrackets[len(SimplesBrackets)-1].Rate
}

// pct converts a percentage into a fraction
func pct(p decimal.Decimal) decimal.Decimal {
	return p.Div(hundred)
}

// segmentOrZero returns the row or an all-zero record
func segmentOrZero(row *domain.SegmentTaxRecord) domain.SegmentTaxRecord {
	if row == nil {
		return domain.SegmentTaxRecord{}
	}
	return *row
}

// commonCharges are the parts shared by Lucro Presumido and Lucro Real:
// ICMS on products, FGTS, ISS on services and employer INSS.
func commonCharges(in domain.ScenarioInput, icmsPercent decimal.Decimal) decimal.Decimal {
	return in.ProductRevenue.Mul(pct(icmsPercent)).
		Add(in.Payroll.Mul(FGTSRate)).
		Add(in.ServiceRevenue.Mul(pct(in.ServiceTaxRatePercent))).
		Add(in.Payroll.Mul(EmployerINSSRate))
}

// PresumedProfitTax computes the Lucro Presumido total. Income tax and CSLL
// are levied on the presumed share of total revenue.
func PresumedProfitTax(in domain.ScenarioInput, row *domain.SegmentTaxRecord, icmsPercent decimal.Decimal) decimal.Decimal {
	seg := segmentOrZero(row)
	revenue := in.TotalRevenue()

	total := revenue.Mul(pct(seg.PIS)).
		Add(revenue.Mul(pct(seg.COFINS))).
		Add(revenue.Mul(pct(seg.IncomeTaxPresumptionRate)).Mul(pct(seg.IncomeTaxRate))).
		Add(revenue.Mul(pct(seg.SocialContributionPresumptionRate)).Mul(pct(seg.SocialContributionRate)))

	return total.Add(commonCharges(in, icmsPercent))
}

// RealProfitTax computes the Lucro Real total. Income tax and CSLL are
// levied on revenue minus product costs.
func RealProfitTax(in domain.ScenarioInput, row *domain.SegmentTaxRecord, icmsPercent decimal.Decimal) decimal.Decimal {
	seg := segmentOrZero(row)
	revenue := in.TotalRevenue()
	profit := revenue.Sub(in.TotalCost())

	total := revenue.Mul(pct(seg.PIS)).
		Add(revenue.Mul(pct(seg.COFINS))).
		Add(profit.Mul(pct(seg.IncomeTaxRate))).
		Add(profit.Mul(pct(seg.SocialContributionRate)))

	return total.Add(commonCharges(in, icmsPercent))
}

// SimplesTax computes the Simples Nacional total
func SimplesTax(in domain.ScenarioInput) decimal.Decimal {
	revenue := in.TotalRevenue()
	return revenue.Mul(SimplesRate(revenue)).Add(in.Payroll.Mul(FGTSRate))
}

// RETTax computes the RET total from the enabled components
func RETTax(in domain.ScenarioInput) decimal.Decimal {
	total := decimal.Zero
	if in.RETSingleTaxEnabled {
		total = total.Add(in.TotalRevenue().Mul(RETRate))
	}
	if in.RETFGTSEnabled {
		total = total.Add(in.Payroll.Mul(FGTSRate))
	}
	return total
}
