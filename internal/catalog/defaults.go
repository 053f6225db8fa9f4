package catalog

import (
	"github.com/rgehrsitz/fiscalpro/internal/domain"
	"github.com/shopspring/decimal"
)

// DEFAULT RATES:
//
// 1. Internal ICMS rates of the 27 federative units as of 2024. Incentive
//    rates are illustrative presumed-credit rates and should be replaced by
//    the operator's own.
//
// 2. Segment tables use the standard federal rates: cumulative PIS/COFINS
//    (0.65% / 3%) under Lucro Presumido, non-cumulative (1.65% / 7.6%) under
//    Lucro Real, IRPJ 15% and CSLL 9%.

func pctOf(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func incentive(f float64) *decimal.Decimal {
	v := decimal.NewFromFloat(f)
	return &v
}

func state(name string, rate float64) domain.StateIcmsRecord {
	return domain.StateIcmsRecord{State: name, RatePercent: pctOf(rate)}
}

func stateWithIncentive(name string, rate, inc float64) domain.StateIcmsRecord {
	return domain.StateIcmsRecord{State: name, RatePercent: pctOf(rate), IncentivePercent: incentive(inc)}
}

func presumedRow(name string, pis, cofins, irpjBase, csllBase float64) domain.SegmentTaxRecord {
	return domain.SegmentTaxRecord{
		SegmentName:                       name,
		PIS:                               pctOf(pis),
		COFINS:                            pctOf(cofins),
		IncomeTaxRate:                     pctOf(15),
		IncomeTaxPresumptionRate:          pctOf(irpjBase),
		SocialContributionRate:            pctOf(9),
		SocialContributionPresumptionRate: pctOf(csllBase),
	}
}

func realRow(name string, pis, cofins float64) domain.SegmentTaxRecord {
	return domain.SegmentTaxRecord{
		SegmentName:            name,
		PIS:                    pctOf(pis),
		COFINS:                 pctOf(cofins),
		IncomeTaxRate:          pctOf(15),
		SocialContributionRate: pctOf(9),
	}
}

// Default returns the seeded catalog. Every call builds a fresh copy.
func Default() *Catalog {
	return &Catalog{
		States: []domain.StateOption{
			domain.Separator{},
			state("Acre", 19),
			state("Alagoas", 19),
			state("Amapá", 18),
			state("Amazonas", 20),
			state("Bahia", 20.5),
			state("Ceará", 20),
			state("Distrito Federal", 20),
			stateWithIncentive("Espírito Santo", 17, 7),
			stateWithIncentive("Goiás", 19, 3),
			state("Maranhão", 22),
			state("Mato Grosso", 17),
			state("Mato Grosso do Sul", 17),
			stateWithIncentive("Minas Gerais", 18, 3),
			state("Pará", 19),
			state("Paraíba", 20),
			state("Paraná", 19.5),
			state("Pernambuco", 20.5),
			state("Piauí", 21),
			state("Rio de Janeiro", 22),
			state("Rio Grande do Norte", 18),
			state("Rio Grande do Sul", 17),
			state("Rondônia", 19.5),
			state("Roraima", 20),
			stateWithIncentive("Santa Catarina", 17, 3),
			state("São Paulo", 18),
			state("Sergipe", 19),
			state("Tocantins", 20),
		},
		Presumed: []domain.SegmentTaxRecord{
			presumedRow("Comércio", 0.65, 3, 8, 12),
			presumedRow("Indústria", 0.65, 3, 8, 12),
			presumedRow("Serviços em Geral", 0.65, 3, 32, 32),
			presumedRow("Transporte de Cargas", 0.65, 3, 8, 12),
			presumedRow("Transporte de Passageiros", 0.65, 3, 16, 12),
			presumedRow("Serviços Hospitalares", 0.65, 3, 8, 12),
			presumedRow("Construção Civil", 0.65, 3, 8, 12),
		},
		Real: []domain.SegmentTaxRecord{
			realRow("Comércio", 1.65, 7.6),
			realRow("Indústria", 1.65, 7.6),
			realRow("Serviços em Geral", 1.65, 7.6),
			realRow("Transporte de Cargas", 1.65, 7.6),
			realRow("Transporte de Passageiros", 1.65, 7.6),
			realRow("Serviços Hospitalares", 1.65, 7.6),
		},
	}
}
