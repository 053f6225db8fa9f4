package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/fiscalpro/internal/brl"
	"github.com/rgehrsitz/fiscalpro/internal/domain"
	"github.com/rgehrsitz/fiscalpro/internal/tui/components"
)

const labelWidth = 22

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp(PanelStyle.Render("⠋ Carregando tabelas..."))
	}

	if m.err != nil {
		return m.renderApp(ErrorStyle.Render(
			fmt.Sprintf("Erro: %s\n\nPressione qualquer tecla para continuar...", m.err),
		))
	}

	var content string
	switch m.currentScene {
	case SceneCalculator:
		content = m.renderCalculator()
	case SceneCatalog:
		content = m.renderCatalog()
	default:
		content = "Tela desconhecida"
	}

	return m.renderApp(content)
}

// renderApp wraps content with the title bar and help footer
func (m Model) renderApp(content string) string {
	title := TitleStyle.Render("Fiscal Pro - Comparativo de Regimes Tributários")
	breadcrumb := SubtitleStyle.Render(m.currentScene.String())

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		breadcrumb,
		"",
		content,
		"",
		m.help.View(m.keys),
	)
}

func (m Model) renderCalculator() string {
	form := PanelStyle.Render(m.renderForm())
	results := m.renderResults()

	if m.width < 100 {
		return lipgloss.JoinVertical(lipgloss.Left, form, results)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, form, "  ", results)
}

// renderForm renders one line per input field
func (m Model) renderForm() string {
	lines := make([]string, 0, fieldCount)
	for f := 0; f < fieldCount; f++ {
		style := LabelStyle
		marker := "  "
		switch {
		case m.invalid[f]:
			style = InvalidLabelStyle
		case f == m.focus:
			style = FocusedLabelStyle
		}
		if f == m.focus {
			marker = FocusedLabelStyle.Render("› ")
		}
		label := style.Width(labelWidth).Render(fields[f].label)
		lines = append(lines, marker+label+m.fieldValue(f))
	}
	return strings.Join(lines, "\n")
}

// fieldValue renders the current value of a field
func (m Model) fieldValue(f int) string {
	switch fields[f].kind {
	case kindChoice:
		return ValueStyle.Render("‹ " + m.choiceLabel(f) + " ›")
	case kindToggle:
		on := m.input.RETSingleTaxEnabled
		if f == fieldRETFGTS {
			on = m.input.RETFGTSEnabled
		}
		if on {
			return ValueStyle.Render("[x]")
		}
		return ValueStyle.Render("[ ]")
	default:
		return m.inputs[f].View()
	}
}

func (m Model) choiceLabel(f int) string {
	none := "(nenhum)"
	switch f {
	case fieldState:
		return orDefault(m.input.SelectedState, none)
	case fieldIncentiveState:
		return orDefault(m.input.SelectedIncentiveState, none)
	case fieldICMSSource:
		switch m.input.ICMSSource {
		case domain.ICMSSourceState:
			return "estado"
		case domain.ICMSSourceIncentive:
			return "incentivo"
		default:
			return "automático"
		}
	case fieldSegment:
		return orDefault(m.input.SelectedSegment, none)
	case fieldAnnex:
		return "Anexo " + m.input.SimplesAnnex.String()
	}
	return ""
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// renderResults renders the ranked regime cards
func (m Model) renderResults() string {
	if m.result == nil {
		return SubtitleStyle.Render("Sem resultados")
	}

	var sb strings.Builder
	sb.WriteString(SectionStyle.Render("Resultado"))
	sb.WriteString("\n")
	sb.WriteString(LabelStyle.Render("Receita total: ") + ValueStyle.Render(brl.FormatCurrency(m.result.TotalRevenue)) + "\n")
	sb.WriteString(LabelStyle.Render("ICMS aplicado: ") + ValueStyle.Render(brl.FormatPercent(m.result.ICMSRatePercent)) + "\n\n")

	cards := make([]*components.RegimeCard, 0, len(m.result.Results))
	largest := decimal.Zero
	for _, r := range m.result.Results {
		largest = decimal.Max(largest, r.TotalTax)
	}
	for _, r := range m.result.Results {
		cards = append(cards, components.NewRegimeCard(r).WithWidth(30).WithScale(r.TotalTax, largest))
	}
	sb.WriteString(components.RegimeGrid(cards, 2))

	if m.result.Diagnostic != "" {
		sb.WriteString("\n\n" + WarningStyle.Render("⚠ "+m.result.Diagnostic))
	}
	for _, rec := range m.result.Recommendations {
		sb.WriteString("\n" + LabelStyle.Render("• "+rec))
	}
	return sb.String()
}

// renderCatalog renders the rate tables currently in use
func (m Model) renderCatalog() string {
	if m.catalog == nil {
		return SubtitleStyle.Render("Nenhuma tabela carregada")
	}

	var sb strings.Builder
	sb.WriteString(SectionStyle.Render("ICMS por estado"))
	sb.WriteString("\n")
	for _, rec := range m.catalog.StateRecords() {
		line := LabelStyle.Width(labelWidth).Render(rec.State) + brl.FormatPercent(rec.RatePercent)
		if rec.HasIncentive() {
			line += LabelStyle.Render("  incentivo " + brl.FormatPercent(*rec.IncentivePercent))
		}
		sb.WriteString(line + "\n")
	}

	for _, regime := range []domain.SegmentRegime{domain.SegmentPresumed, domain.SegmentReal} {
		rows, err := m.catalog.SegmentTable(regime)
		if err != nil {
			continue
		}
		sb.WriteString("\n" + SectionStyle.Render("Segmentos - "+regime.DisplayName()) + "\n")
		for _, row := range rows {
			sb.WriteString(LabelStyle.Width(labelWidth).Render(row.SegmentName) +
				fmt.Sprintf("PIS %s  COFINS %s  IRPJ %s  CSLL %s\n",
					brl.FormatPercent(row.PIS), brl.FormatPercent(row.COFINS),
					brl.FormatPercent(row.IncomeTaxRate), brl.FormatPercent(row.SocialContributionRate)))
		}
	}
	return PanelStyle.Render(strings.TrimRight(sb.String(), "\n"))
}
