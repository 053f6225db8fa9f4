package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/fiscalpro/internal/tui/tuistyles"
)

// BurdenBar draws a tax total as a share of the largest total in the
// comparison
type BurdenBar struct {
	Value decimal.Decimal
	Max   decimal.Decimal
	Width int
	Color lipgloss.Color
}

// NewBurdenBar creates a bar for value out of largest
func NewBurdenBar(value, largest decimal.Decimal) *BurdenBar {
	return &BurdenBar{
		Value: value,
		Max:   largest,
		Width: 20,
		Color: tuistyles.ColorPrimary,
	}
}

// WithWidth sets the bar width
func (b *BurdenBar) WithWidth(width int) *BurdenBar {
	b.Width = width
	return b
}

// WithColor sets the fill color
func (b *BurdenBar) WithColor(color lipgloss.Color) *BurdenBar {
	b.Color = color
	return b
}

// Filled returns the number of filled cells
func (b *BurdenBar) Filled() int {
	if b.Width <= 0 || !b.Max.IsPositive() || !b.Value.IsPositive() {
		return 0
	}
	filled := int(b.Value.Div(b.Max).Mul(decimal.NewFromInt(int64(b.Width))).Round(0).IntPart())
	switch {
	case filled > b.Width:
		return b.Width
	case filled == 0:
		// any positive value shows at least one cell
		return 1
	}
	return filled
}

// Render returns the styled bar
func (b *BurdenBar) Render() string {
	filled := b.Filled()
	empty := b.Width - filled
	if empty < 0 {
		empty = 0
	}

	var sb strings.Builder
	if filled > 0 {
		sb.WriteString(lipgloss.NewStyle().Foreground(b.Color).Render(strings.Repeat("█", filled)))
	}
	if empty > 0 {
		sb.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorBorder).Render(strings.Repeat("░", empty)))
	}
	return sb.String()
}
