// Package tui is an interactive front end for the regime comparison. Every
// edit recomputes the ranking against the catalog loaded from a store.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/fiscalpro/internal/brl"
	"github.com/rgehrsitz/fiscalpro/internal/calculation"
	"github.com/rgehrsitz/fiscalpro/internal/catalog"
	"github.com/rgehrsitz/fiscalpro/internal/compare"
	"github.com/rgehrsitz/fiscalpro/internal/domain"
	"github.com/rgehrsitz/fiscalpro/internal/store"
)

// Form fields in display order
const (
	fieldState = iota
	fieldIncentiveState
	fieldICMSSource
	fieldSegment
	fieldAnnex
	fieldServiceRate
	fieldProductRevenue
	fieldMonophasicRevenue
	fieldServiceRevenue
	fieldProductCost
	fieldMonophasicCost
	fieldFixedExpenses
	fieldVariableExpenses
	fieldOwnerDraw
	fieldPayroll
	fieldRETSingle
	fieldRETFGTS
	fieldCount
)

type fieldKind int

const (
	kindChoice fieldKind = iota
	kindAmount
	kindPercent
	kindToggle
)

type fieldSpec struct {
	label string
	kind  fieldKind
}

var fields = [fieldCount]fieldSpec{
	fieldState:             {"Estado", kindChoice},
	fieldIncentiveState:    {"Estado (incentivo)", kindChoice},
	fieldICMSSource:        {"Origem do ICMS", kindChoice},
	fieldSegment:           {"Segmento", kindChoice},
	fieldAnnex:             {"Anexo do Simples", kindChoice},
	fieldServiceRate:       {"Alíquota ISS %", kindPercent},
	fieldProductRevenue:    {"Receita produtos", kindAmount},
	fieldMonophasicRevenue: {"Receita monofásicos", kindAmount},
	fieldServiceRevenue:    {"Receita serviços", kindAmount},
	fieldProductCost:       {"Custo produtos", kindAmount},
	fieldMonophasicCost:    {"Custo monofásicos", kindAmount},
	fieldFixedExpenses:     {"Despesas fixas", kindAmount},
	fieldVariableExpenses:  {"Despesas variáveis", kindAmount},
	fieldOwnerDraw:         {"Pró-labore", kindAmount},
	fieldPayroll:           {"Folha de pagamento", kindAmount},
	fieldRETSingle:         {"RET imposto único", kindToggle},
	fieldRETFGTS:           {"RET FGTS", kindToggle},
}

var hundred = decimal.NewFromInt(100)

var icmsSources = []domain.ICMSSource{
	domain.ICMSSourceUnset,
	domain.ICMSSourceState,
	domain.ICMSSourceIncentive,
}

// Model represents the entire application state
type Model struct {
	currentScene Scene

	// Terminal dimensions
	width  int
	height int

	store   store.Store
	catalog *catalog.Catalog
	engine  *compare.CompareEngine

	// Scenario being edited
	input   domain.ScenarioInput
	inputs  [fieldCount]textinput.Model
	invalid [fieldCount]bool
	focus   int

	// Positions in the choice lists
	stateIdx     int
	incentiveIdx int
	sourceIdx    int
	segmentIdx   int

	stateOptions     []domain.StateOption
	incentiveOptions []domain.StateOption
	segments         []string

	result *compare.ComparisonSet

	keys keyMap
	help help.Model

	err     error
	loading bool
}

// NewModel creates a model that loads its catalog from s. A nil store uses
// the built-in catalog. A nil logger discards calculator output.
func NewModel(s store.Store, logger calculation.Logger) Model {
	calc := calculation.NewCalculator()
	calc.SetLogger(logger)

	m := Model{
		currentScene: SceneCalculator,
		store:        s,
		engine:       compare.NewCompareEngine(calc),
		keys:         newKeyMap(),
		help:         help.New(),
		width:        100,
		height:       30,
		loading:      true,
	}
	m.input.SimplesAnnex = domain.AnnexI

	for i, f := range fields {
		if f.kind != kindAmount && f.kind != kindPercent {
			continue
		}
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 20
		ti.Width = 16
		if f.kind == kindAmount {
			ti.Placeholder = "0,00"
		} else {
			ti.Placeholder = "0"
		}
		m.inputs[i] = ti
	}
	return m
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadCatalogCmd(m.store)
}

// loadCatalogCmd returns a command that loads the catalog snapshot
func loadCatalogCmd(s store.Store) tea.Cmd {
	return func() tea.Msg {
		if s == nil {
			return CatalogLoadedMsg{Catalog: catalog.Default()}
		}
		c, err := s.Load(context.Background())
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("loading catalog: %w", err)}
		}
		return CatalogLoadedMsg{Catalog: c}
	}
}

// Result returns the latest comparison, nil until a catalog is loaded
func (m Model) Result() *compare.ComparisonSet {
	return m.result
}

// Input returns the scenario as currently edited
func (m Model) Input() domain.ScenarioInput {
	return m.input
}

// setCatalog installs a catalog and rebuilds the choice lists, keeping the
// current selections when they still exist
func (m *Model) setCatalog(c *catalog.Catalog) {
	m.catalog = c

	// The state list always opens with the separator so that nothing is
	// selected until the user picks a state
	m.stateOptions = []domain.StateOption{domain.Separator{}}
	for _, opt := range c.States {
		if _, ok := opt.(domain.Separator); !ok {
			m.stateOptions = append(m.stateOptions, opt)
		}
	}

	m.incentiveOptions = []domain.StateOption{domain.Separator{}}
	for _, rec := range c.StateRecords() {
		if rec.HasIncentive() {
			m.incentiveOptions = append(m.incentiveOptions, rec)
		}
	}
	m.segments = append([]string{""}, c.SegmentNames()...)

	m.stateIdx = indexOfState(m.stateOptions, m.input.SelectedState)
	m.incentiveIdx = indexOfState(m.incentiveOptions, m.input.SelectedIncentiveState)
	m.segmentIdx = 0
	for i, name := range m.segments {
		if name == m.input.SelectedSegment {
			m.segmentIdx = i
		}
	}
	m.input.SelectState(m.stateOptions[m.stateIdx])
	m.input.SelectIncentiveState(m.incentiveOptions[m.incentiveIdx])
	m.input.SelectedSegment = m.segments[m.segmentIdx]
	m.sourceIdx = sourceIndex(m.input.ICMSSource)
}

// indexOfState finds a state by name, falling back to the leading separator
func indexOfState(opts []domain.StateOption, name string) int {
	if name == "" {
		return 0
	}
	for i, opt := range opts {
		if rec, ok := opt.(domain.StateIcmsRecord); ok && domain.SameState(rec.State, name) {
			return i
		}
	}
	return 0
}

// recompute runs the comparison for the current input
func (m *Model) recompute() {
	if m.catalog == nil {
		return
	}
	m.result = m.engine.Compare("", m.input, m.catalog)
}

// applyText copies a text field into the scenario. Malformed or negative
// figures, and percentages above 100, count as zero and flag the field.
func (m *Model) applyText(f int) {
	raw := m.inputs[f].Value()
	v, err := brl.ParseAmount(raw)
	m.invalid[f] = err != nil || v.IsNegative() ||
		(fields[f].kind == kindPercent && v.GreaterThan(hundred))
	if m.invalid[f] {
		v = decimal.Zero
	}
	*m.amountField(f) = v
}

func (m *Model) amountField(f int) *decimal.Decimal {
	switch f {
	case fieldServiceRate:
		return &m.input.ServiceTaxRatePercent
	case fieldProductRevenue:
		return &m.input.ProductRevenue
	case fieldMonophasicRevenue:
		return &m.input.MonophasicProductRevenue
	case fieldServiceRevenue:
		return &m.input.ServiceRevenue
	case fieldProductCost:
		return &m.input.ProductCost
	case fieldMonophasicCost:
		return &m.input.MonophasicProductCost
	case fieldFixedExpenses:
		return &m.input.FixedExpenses
	case fieldVariableExpenses:
		return &m.input.VariableExpenses
	case fieldOwnerDraw:
		return &m.input.OwnerDraw
	case fieldPayroll:
		return &m.input.Payroll
	default:
		panic(fmt.Sprintf("field %d is not numeric", f))
	}
}

// cycle moves a choice field by delta, wrapping around
func (m *Model) cycle(f, delta int) {
	if m.catalog == nil {
		return
	}
	switch f {
	case fieldState:
		if len(m.stateOptions) == 0 {
			return
		}
		m.stateIdx = wrap(m.stateIdx+delta, len(m.stateOptions))
		m.input.SelectState(m.stateOptions[m.stateIdx])
	case fieldIncentiveState:
		m.incentiveIdx = wrap(m.incentiveIdx+delta, len(m.incentiveOptions))
		m.input.SelectIncentiveState(m.incentiveOptions[m.incentiveIdx])
		m.sourceIdx = sourceIndex(m.input.ICMSSource)
	case fieldICMSSource:
		m.sourceIdx = wrap(m.sourceIdx+delta, len(icmsSources))
		m.input.SetICMSSource(icmsSources[m.sourceIdx])
	case fieldSegment:
		m.segmentIdx = wrap(m.segmentIdx+delta, len(m.segments))
		m.input.SelectedSegment = m.segments[m.segmentIdx]
	case fieldAnnex:
		a := wrap(int(m.input.SimplesAnnex)-1+delta, int(domain.AnnexV))
		m.input.SimplesAnnex = domain.SimplesAnnex(a + 1)
	}
}

// toggle flips a boolean field
func (m *Model) toggle(f int) {
	switch f {
	case fieldRETSingle:
		m.input.RETSingleTaxEnabled = !m.input.RETSingleTaxEnabled
	case fieldRETFGTS:
		m.input.RETFGTSEnabled = !m.input.RETFGTSEnabled
	}
}

func sourceIndex(src domain.ICMSSource) int {
	for i, s := range icmsSources {
		if s == src {
			return i
		}
	}
	return 0
}

func wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i % n) + n) % n
}
