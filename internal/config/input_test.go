package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/fiscalpro/internal/catalog"
	"github.com/rgehrsitz/fiscalpro/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validScenarioYAML = `
name: "Loja Centro"
state: "São Paulo"
incentive_state: "Goiás"
icms_source: estado
service_tax_rate: "5%"
segment: "Comércio"
simples_annex: "Anexo II"
revenue:
  products: "R$ 100.000,00"
  monophasic_products: "20.000"
  services: "15000,50"
costs:
  products: "R$ 40.000,00"
expenses:
  fixed: "5.000"
  payroll: "R$ 12.000,00"
ret:
  single_tax: true
`

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser, "Should create input parser")
}

func TestInputParser_ParseScenario(t *testing.T) {
	parser := NewInputParser()

	s, err := parser.ParseScenario([]byte(validScenarioYAML))
	require.NoError(t, err)

	in := s.Input
	assert.Equal(t, "Loja Centro", s.Name)
	assert.Empty(t, s.Warnings)
	assert.Equal(t, "São Paulo", in.SelectedState)
	assert.Equal(t, "Goiás", in.SelectedIncentiveState)
	assert.Equal(t, domain.ICMSSourceState, in.ICMSSource)
	assert.Equal(t, domain.AnnexII, in.SimplesAnnex)
	assert.Equal(t, "Comércio", in.SelectedSegment)
	assert.True(t, in.ServiceTaxRatePercent.Equal(decimal.NewFromInt(5)))
	assert.True(t, in.ProductRevenue.Equal(decimal.NewFromInt(100000)))
	assert.True(t, in.MonophasicProductRevenue.Equal(decimal.NewFromInt(20000)))
	assert.True(t, in.ServiceRevenue.Equal(decimal.RequireFromString("15000.5")))
	assert.True(t, in.ProductCost.Equal(decimal.NewFromInt(40000)))
	assert.True(t, in.FixedExpenses.Equal(decimal.NewFromInt(5000)))
	assert.True(t, in.Payroll.Equal(decimal.NewFromInt(12000)))
	assert.True(t, in.VariableExpenses.IsZero())
	assert.True(t, in.RETSingleTaxEnabled)
	assert.False(t, in.RETFGTSEnabled)
}

func TestInputParser_ParseScenario_MalformedFigureWarns(t *testing.T) {
	parser := NewInputParser()

	s, err := parser.ParseScenario([]byte(`
revenue:
  products: "cem mil"
  services: "1.000"
`))
	require.NoError(t, err)

	assert.True(t, s.Input.ProductRevenue.IsZero())
	assert.True(t, s.Input.ServiceRevenue.Equal(decimal.NewFromInt(1000)))
	require.Len(t, s.Warnings, 1)
	assert.Contains(t, s.Warnings[0], "revenue.products")
	assert.Equal(t, domain.AnnexI, s.Input.SimplesAnnex, "annex defaults to I")
}

func TestInputParser_ParseScenario_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"invalid yaml", "revenue: [unclosed", "failed to parse YAML"},
		{"bad icms source", "icms_source: federal", "unknown ICMS source"},
		{"bad annex", "simples_annex: VI", "unknown Simples Nacional annex"},
		{"negative figure", "expenses:\n  payroll: \"-10\"", "payroll cannot be negative"},
		{"service rate over 100", "service_tax_rate: \"150%\"", "service tax rate must be between 0 and 100"},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := parser.ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Nil(t, s)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInputParser_LoadScenario(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.LoadScenario("nonexistent.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")

	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validScenarioYAML), 0644))

	s, err := parser.LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "Loja Centro", s.Name)
}

func TestInputParser_ValidateScenario_Annex(t *testing.T) {
	parser := NewInputParser()

	err := parser.ValidateScenario(&Scenario{Input: domain.ScenarioInput{SimplesAnnex: 0}})
	assert.Error(t, err)
	assert.NoError(t, parser.ValidateScenario(&Scenario{Input: domain.ScenarioInput{SimplesAnnex: domain.AnnexV}}))
}

func TestInputParser_CatalogYAML(t *testing.T) {
	parser := NewInputParser()
	original := catalog.Default()

	data, err := parser.MarshalCatalog(original)
	require.NoError(t, err)
	assert.Contains(t, string(data), "lucro_presumido:")
	assert.Contains(t, string(data), "separator: true")

	parsed, err := parser.ParseCatalog(data)
	require.NoError(t, err)
	require.Len(t, parsed.States, len(original.States))
	assert.IsType(t, domain.Separator{}, parsed.States[0])

	es, ok := parsed.FindState("Espírito Santo")
	require.True(t, ok)
	require.NotNil(t, es.IncentivePercent)
	assert.True(t, es.IncentivePercent.Equal(decimal.NewFromInt(7)))

	sp, _ := parsed.FindState("São Paulo")
	assert.Nil(t, sp.IncentivePercent)

	assert.Equal(t, len(original.Presumed), len(parsed.Presumed))
	assert.True(t, parsed.Presumed[2].IncomeTaxPresumptionRate.Equal(decimal.NewFromInt(32)))
}

func TestInputParser_ParseCatalog_HandWritten(t *testing.T) {
	parser := NewInputParser()

	c, err := parser.ParseCatalog([]byte(`
states:
  - separator: true
  - state: " Bahia "
    rate_percent: 20.5
  - state: Goiás
    rate_percent: 19
    incentive_percent: 3
lucro_presumido:
  - segment: Comércio
    pis: 0.65
    cofins: 3
    irpj: 15
    irpj_presumption: 8
    csll: 9
    csll_presumption: 12
lucro_real: []
`))
	require.NoError(t, err)

	bahia, ok := c.FindState("Bahia")
	require.True(t, ok)
	assert.Equal(t, "Bahia", bahia.State)
	assert.True(t, bahia.RatePercent.Equal(decimal.RequireFromString("20.5")))
	assert.Len(t, c.Presumed, 1)
	assert.Empty(t, c.Real)

	_, err = parser.ParseCatalog([]byte("states:\n  - state: Acre\n    rate_percent: 120\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog validation failed")
}
