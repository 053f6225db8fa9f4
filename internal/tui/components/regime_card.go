package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/fiscalpro/internal/brl"
	"github.com/rgehrsitz/fiscalpro/internal/compare"
	"github.com/rgehrsitz/fiscalpro/internal/tui/tuistyles"
)

// RegimeCard displays one regime's total, effective rate and distance from
// the cheapest regime
type RegimeCard struct {
	Name      string
	Rank      int
	Total     string
	Rate      string
	Diff      string
	IsLowest  bool
	IsHighest bool
	Width     int

	// Bar is nil until WithScale is called
	Bar *BurdenBar
}

// NewRegimeCard builds a card from a comparison result
func NewRegimeCard(r compare.ComparisonResult) *RegimeCard {
	card := &RegimeCard{
		Name:      r.RegimeName,
		Rank:      r.Rank,
		Total:     brl.FormatCurrency(r.TotalTax),
		Rate:      brl.FormatPercent(r.EffectiveRatePercent),
		IsLowest:  r.IsLowest,
		IsHighest: r.IsHighest,
		Width:     30,
	}
	if r.DiffFromLowest.IsPositive() {
		card.Diff = "+" + brl.FormatCurrency(r.DiffFromLowest)
	}
	return card
}

// WithWidth sets the card width
func (c *RegimeCard) WithWidth(width int) *RegimeCard {
	c.Width = width
	return c
}

// WithScale adds a bar comparing this total with the largest one
func (c *RegimeCard) WithScale(total, largest decimal.Decimal) *RegimeCard {
	color := tuistyles.ColorPrimary
	if c.IsLowest || c.IsHighest {
		color = tuistyles.RankColor(c.IsLowest, c.IsHighest)
	}
	c.Bar = NewBurdenBar(total, largest).WithColor(color)
	return c
}

// Render returns the styled card
func (c *RegimeCard) Render() string {
	color := tuistyles.RankColor(c.IsLowest, c.IsHighest)

	title := lipgloss.NewStyle().Bold(true).Foreground(color).
		Render(fmt.Sprintf("%d. %s %s", c.Rank, c.Name, tuistyles.RankIndicator(c.IsLowest, c.IsHighest)))
	total := tuistyles.ValueStyle.Bold(true).Render(c.Total)
	rate := tuistyles.LabelStyle.Render("alíquota efetiva " + c.Rate)

	content := title + "\n" + total + "\n" + rate
	if c.Bar != nil {
		content += "\n" + c.Bar.WithWidth(c.Width-4).Render()
	}
	if c.Diff != "" {
		content += "\n" + tuistyles.LabelStyle.Render(c.Diff+" vs. menor")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Width(c.Width).
		Render(content)
}

// RenderCompact returns a single unbordered line
func (c *RegimeCard) RenderCompact() string {
	color := tuistyles.RankColor(c.IsLowest, c.IsHighest)
	return lipgloss.NewStyle().Foreground(color).Render(fmt.Sprintf("%d. %s", c.Rank, c.Name)) +
		" " + c.Total + " (" + c.Rate + ")"
}

// RegimeGrid renders cards in rows of the given number of columns
func RegimeGrid(cards []*RegimeCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	rows := []string{}
	currentRow := []string{}

	for i, card := range cards {
		currentRow = append(currentRow, card.Render())

		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, currentRow...))
			currentRow = []string{}
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
