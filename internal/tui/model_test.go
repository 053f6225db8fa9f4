package tui

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/fiscalpro/internal/catalog"
	"github.com/rgehrsitz/fiscalpro/internal/domain"
	"github.com/rgehrsitz/fiscalpro/internal/store"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testCatalog() *catalog.Catalog {
	goias := dec("3")
	return &catalog.Catalog{
		States: []domain.StateOption{
			domain.Separator{},
			domain.StateIcmsRecord{State: "São Paulo", RatePercent: dec("18")},
			domain.StateIcmsRecord{State: "Goiás", RatePercent: dec("19"), IncentivePercent: &goias},
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

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok, "Update should return a Model")
	return model
}

func loadedModel(t *testing.T) Model {
	t.Helper()
	return update(t, NewModel(nil, nil), CatalogLoadedMsg{Catalog: testCatalog()})
}

func focusField(t *testing.T, m Model, f int) Model {
	t.Helper()
	for i := 0; m.focus != f; i++ {
		require.Less(t, i, fieldCount, "field %d never focused", f)
		m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	}
	return m
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

var right = tea.KeyMsg{Type: tea.KeyRight}

func totals(m Model) map[domain.RegimeID]string {
	out := map[domain.RegimeID]string{}
	for _, r := range m.Result().Results {
		out[r.Regime] = r.TotalTax.StringFixed(2)
	}
	return out
}

func TestInit_NilStoreUsesDefaultCatalog(t *testing.T) {
	cmd := NewModel(nil, nil).Init()
	require.NotNil(t, cmd)

	msg, ok := cmd().(CatalogLoadedMsg)
	require.True(t, ok)
	assert.Len(t, msg.Catalog.StateRecords(), 27)
}

func TestInit_LoadsFromStore(t *testing.T) {
	s := store.NewYAMLStore(filepath.Join(t.TempDir(), "catalog.yaml"))
	require.NoError(t, s.Save(context.Background(), testCatalog()))

	msg, ok := NewModel(s, nil).Init()().(CatalogLoadedMsg)
	require.True(t, ok)
	assert.Len(t, msg.Catalog.StateRecords(), 2)
}

func TestCatalogLoaded_ComputesEmptyScenario(t *testing.T) {
	m := NewModel(nil, nil)
	assert.Nil(t, m.Result())
	assert.Contains(t, m.View(), "Carregando")

	m = update(t, m, CatalogLoadedMsg{Catalog: testCatalog()})
	require.NotNil(t, m.Result())
	assert.Len(t, m.Result().Results, 4)
	assert.True(t, m.Result().TotalRevenue.IsZero())
	assert.Equal(t, domain.AnnexI, m.Input().SimplesAnnex)
}

func TestEditScenario_Recomputes(t *testing.T) {
	m := loadedModel(t)

	m = update(t, m, right)
	assert.Equal(t, "São Paulo", m.Input().SelectedState)

	m = focusField(t, m, fieldICMSSource)
	m = update(t, m, right)
	assert.Equal(t, domain.ICMSSourceState, m.Input().ICMSSource)

	m = focusField(t, m, fieldSegment)
	m = update(t, m, right)
	assert.Equal(t, "Comércio", m.Input().SelectedSegment)

	m = focusField(t, m, fieldProductRevenue)
	m = typeText(t, m, "100.000,00")
	assert.True(t, m.Input().ProductRevenue.Equal(dec("100000")))

	got := totals(m)
	assert.Equal(t, "29530.00", got[domain.RegimePresumed])
	assert.Equal(t, "51250.00", got[domain.RegimeReal])
	assert.Equal(t, "4000.00", got[domain.RegimeSimples])
	assert.Equal(t, "0.00", got[domain.RegimeRET])
	assert.Equal(t, domain.RegimeRET, m.Result().Results[0].Regime)

	m = focusField(t, m, fieldRETSingle)
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.True(t, m.Input().RETSingleTaxEnabled)
	assert.Equal(t, "4000.00", totals(m)[domain.RegimeRET])

	view := m.View()
	assert.Contains(t, view, "R$ 29.530,00")
	assert.Contains(t, view, "Lucro Presumido")
	assert.Contains(t, view, "18,00%")
}

func TestEditScenario_InvalidFigureCountsAsZero(t *testing.T) {
	m := focusField(t, loadedModel(t), fieldServiceRevenue)

	m = typeText(t, m, "12x")
	assert.True(t, m.invalid[fieldServiceRevenue])
	assert.True(t, m.Input().ServiceRevenue.IsZero())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.False(t, m.invalid[fieldServiceRevenue])
	assert.True(t, m.Input().ServiceRevenue.Equal(dec("12")))

	m = typeText(t, focusField(t, m, fieldPayroll), "-5")
	assert.True(t, m.invalid[fieldPayroll], "negative figures are rejected")
	assert.True(t, m.Input().Payroll.IsZero())
}

func TestIncentiveSelection(t *testing.T) {
	m := focusField(t, loadedModel(t), fieldIncentiveState)
	m = update(t, m, right)
	assert.Equal(t, "Goiás", m.Input().SelectedIncentiveState)

	m = focusField(t, m, fieldICMSSource)
	m = update(t, m, right)
	m = update(t, m, right)
	assert.Equal(t, domain.ICMSSourceIncentive, m.Input().ICMSSource)
	assert.True(t, m.Result().ICMSRatePercent.Equal(dec("3")))

	// Back to the separator with no state selected clears the source
	m = focusField(t, m, fieldIncentiveState)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Empty(t, m.Input().SelectedIncentiveState)
	assert.Equal(t, domain.ICMSSourceUnset, m.Input().ICMSSource)
	assert.True(t, m.Result().ICMSRatePercent.IsZero())
}

func TestEmptyStateList(t *testing.T) {
	c := testCatalog()
	c.States = nil
	require.NoError(t, c.Validate())

	m := update(t, NewModel(nil, nil), CatalogLoadedMsg{Catalog: c})
	require.Equal(t, fieldState, m.focus)

	m = update(t, m, right)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Empty(t, m.Input().SelectedState)
	assert.True(t, m.Result().ICMSRatePercent.IsZero())
	assert.Contains(t, m.View(), "(nenhum)")
}

func TestStateListWithoutSeparator(t *testing.T) {
	c := testCatalog()
	c.States = c.States[1:]

	m := update(t, NewModel(nil, nil), CatalogLoadedMsg{Catalog: c})
	assert.Empty(t, m.Input().SelectedState, "no state is chosen until the user picks one")

	m = focusField(t, m, fieldICMSSource)
	m = update(t, m, right)
	assert.Equal(t, domain.ICMSSourceState, m.Input().ICMSSource)
	assert.True(t, m.Result().ICMSRatePercent.IsZero())

	m = focusField(t, m, fieldState)
	m = update(t, m, right)
	assert.Equal(t, "São Paulo", m.Input().SelectedState)
	m = update(t, m, right)
	assert.Equal(t, "Goiás", m.Input().SelectedState)
	m = update(t, m, right)
	assert.Empty(t, m.Input().SelectedState, "wraps back to the separator")
}

func TestServiceRateAboveHundredIsInvalid(t *testing.T) {
	m := focusField(t, loadedModel(t), fieldServiceRate)

	m = typeText(t, m, "150")
	assert.True(t, m.invalid[fieldServiceRate])
	assert.True(t, m.Input().ServiceTaxRatePercent.IsZero())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.False(t, m.invalid[fieldServiceRate])
	assert.True(t, m.Input().ServiceTaxRatePercent.Equal(dec("15")))

	// Amount fields have no upper bound
	m = typeText(t, focusField(t, m, fieldServiceRevenue), "150")
	assert.False(t, m.invalid[fieldServiceRevenue])
}

func TestChoiceWrapsAround(t *testing.T) {
	m := loadedModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, "Goiás", m.Input().SelectedState)

	m = focusField(t, m, fieldAnnex)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, domain.AnnexV, m.Input().SimplesAnnex)
	m = update(t, m, right)
	assert.Equal(t, domain.AnnexI, m.Input().SimplesAnnex)
}

func TestFocusNavigation(t *testing.T) {
	m := loadedModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, fieldCount-1, m.focus)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, m.focus)

	m = focusField(t, m, fieldProductRevenue)
	assert.True(t, m.inputs[fieldProductRevenue].Focused())
	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.False(t, m.inputs[fieldProductRevenue].Focused())
}

func TestReloadKeepsSelections(t *testing.T) {
	m := update(t, loadedModel(t), right)
	require.Equal(t, "São Paulo", m.Input().SelectedState)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.loading)

	m = update(t, m, CatalogLoadedMsg{Catalog: testCatalog()})
	assert.False(t, m.loading)
	assert.Equal(t, "São Paulo", m.Input().SelectedState)
	assert.Equal(t, 1, m.stateIdx)
}

func TestErrorMessage(t *testing.T) {
	m := update(t, loadedModel(t), ErrorMsg{Err: errors.New("disk on fire")})
	assert.Contains(t, m.View(), "Erro: disk on fire")

	m = typeText(t, m, "x")
	assert.NoError(t, m.err)
	assert.NotContains(t, m.View(), "disk on fire")
}

func TestCatalogScene(t *testing.T) {
	m := update(t, loadedModel(t), tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, SceneCatalog, m.currentScene)

	view := m.View()
	assert.Contains(t, view, "ICMS por estado")
	assert.Contains(t, view, "Goiás")
	assert.Contains(t, view, "incentivo 3,00%")

	// Field keys are ignored outside the calculator
	m = update(t, m, right)
	assert.Empty(t, m.Input().SelectedState)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, SceneCalculator, m.currentScene)
}

func TestHelpAndQuit(t *testing.T) {
	m := typeText(t, loadedModel(t), "?")
	assert.True(t, m.help.ShowAll)

	m = update(t, m, tea.WindowSizeMsg{Width: 140, Height: 40})
	assert.Equal(t, 140, m.width)
	assert.Equal(t, 140, m.help.Width)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
