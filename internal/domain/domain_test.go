package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseICMSSource(t *testing.T) {
	tests := []struct {
		input    string
		expected ICMSSource
	}{
		{"", ICMSSourceUnset},
		{"state", ICMSSourceState},
		{" Estado ", ICMSSourceState},
		{"INCENTIVE", ICMSSourceIncentive},
		{"incentivo", ICMSSourceIncentive},
	}
	for _, tt := range tests {
		got, err := ParseICMSSource(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.expected, got, tt.input)
	}

	_, err := ParseICMSSource("federal")
	assert.Error(t, err)
}

func TestParseSimplesAnnex(t *testing.T) {
	tests := []struct {
		input    string
		expected SimplesAnnex
	}{
		{"", AnnexI},
		{"I", AnnexI},
		{"iii", AnnexIII},
		{"4", AnnexIV},
		{"Anexo V", AnnexV},
	}
	for _, tt := range tests {
		got, err := ParseSimplesAnnex(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.expected, got, tt.input)
	}

	for _, bad := range []string{"VI", "0", "Anexo"} {
		_, err := ParseSimplesAnnex(bad)
		assert.Error(t, err, bad)
	}

	assert.Equal(t, "III", AnnexIII.String())
	assert.Equal(t, "", SimplesAnnex(9).String())
}

func TestScenarioInput_Totals(t *testing.T) {
	in := ScenarioInput{
		ProductRevenue:           decimal.NewFromInt(100),
		MonophasicProductRevenue: decimal.NewFromInt(20),
		ServiceRevenue:           decimal.NewFromInt(30),
		ProductCost:              decimal.NewFromInt(40),
		MonophasicProductCost:    decimal.NewFromInt(5),
		FixedExpenses:            decimal.NewFromInt(1),
		VariableExpenses:         decimal.NewFromInt(2),
		OwnerDraw:                decimal.NewFromInt(3),
		Payroll:                  decimal.NewFromInt(4),
	}

	assert.True(t, in.TotalRevenue().Equal(decimal.NewFromInt(150)))
	assert.True(t, in.TotalCost().Equal(decimal.NewFromInt(45)))
	assert.True(t, in.TotalExpenses().Equal(decimal.NewFromInt(10)))
}

func TestScenarioInput_StateSelection(t *testing.T) {
	sp := StateIcmsRecord{State: "São Paulo", RatePercent: decimal.NewFromInt(18)}
	goias := StateIcmsRecord{State: "Goiás", RatePercent: decimal.NewFromInt(19)}

	var in ScenarioInput
	in.SelectState(sp)
	in.SelectIncentiveState(goias)
	in.SetICMSSource(ICMSSourceIncentive)
	assert.Equal(t, "São Paulo", in.SelectedState)
	assert.Equal(t, "Goiás", in.SelectedIncentiveState)

	// clearing the incentive keeps the source while a state is selected
	in.SelectIncentiveState(Separator{})
	assert.Empty(t, in.SelectedIncentiveState)
	assert.Equal(t, ICMSSourceIncentive, in.ICMSSource)

	// with no state left, clearing the incentive also clears the source
	in.SelectState(Separator{})
	in.SelectIncentiveState(goias)
	in.SelectIncentiveState(Separator{})
	assert.Empty(t, in.SelectedState)
	assert.Equal(t, ICMSSourceUnset, in.ICMSSource)

	in.SelectState(nil)
	assert.Empty(t, in.SelectedState)
}

func TestStateOptions(t *testing.T) {
	inc := decimal.NewFromInt(3)
	options := []StateOption{Separator{}, StateIcmsRecord{State: "Goiás", IncentivePercent: &inc}}

	assert.Equal(t, SeparatorLabel, options[0].Label())
	assert.Equal(t, "Goiás", options[1].Label())
	assert.True(t, options[1].(StateIcmsRecord).HasIncentive())

	assert.True(t, SameState(" goiás", "GOIÁS "))
	assert.False(t, SameState("Goiás", "Goias"))
}

func TestSegmentRows_Missing(t *testing.T) {
	row := &SegmentTaxRecord{SegmentName: "Comércio"}

	assert.Empty(t, SegmentRows{Presumed: row, Real: row}.Missing())
	assert.Equal(t, []SegmentRegime{SegmentReal}, SegmentRows{Presumed: row}.Missing())
	assert.Equal(t, []SegmentRegime{SegmentPresumed, SegmentReal}, SegmentRows{}.Missing())

	assert.True(t, SegmentPresumed.Valid())
	assert.False(t, SegmentRegime("mei").Valid())
	assert.Equal(t, "Lucro Real", SegmentReal.DisplayName())
}

func TestComparison_Result(t *testing.T) {
	cmp := &Comparison{Results: []RegimeResult{{Regime: RegimeSimples, TotalTax: decimal.NewFromInt(7)}}}

	r, ok := cmp.Result(RegimeSimples)
	require.True(t, ok)
	assert.True(t, r.TotalTax.Equal(decimal.NewFromInt(7)))

	_, ok = cmp.Result(RegimeRET)
	assert.False(t, ok)

	assert.Equal(t, "Simples Nacional", RegimeSimples.DisplayName())
	assert.Equal(t, []RegimeID{RegimePresumed, RegimeReal, RegimeSimples, RegimeRET}, Regimes)
}

func TestParseRegimeID(t *testing.T) {
	tests := map[string]RegimeID{
		"presumed":         RegimePresumed,
		"Lucro Presumido":  RegimePresumed,
		"lucro-real":       RegimeReal,
		"REAL":             RegimeReal,
		"Simples Nacional": RegimeSimples,
		" ret ":            RegimeRET,
	}
	for input, want := range tests {
		got, err := ParseRegimeID(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseRegimeID("mei")
	assert.ErrorContains(t, err, `unknown regime "mei"`)
}
