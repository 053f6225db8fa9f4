package compare

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rgehrsitz/fiscalpro/internal/brl"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table ranking the regimes
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	// Header
	sb.WriteString("COMPARATIVO DE REGIMES TRIBUTÁRIOS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	if compSet.ScenarioName != "" {
		sb.WriteString(fmt.Sprintf("Cenário:       %s\n", compSet.ScenarioName))
	}
	if compSet.ScenarioPath != "" {
		sb.WriteString(fmt.Sprintf("Arquivo:       %s\n", compSet.ScenarioPath))
	}
	if compSet.Segment != "" {
		sb.WriteString(fmt.Sprintf("Segmento:      %s\n", compSet.Segment))
	}
	sb.WriteString(fmt.Sprintf("Receita total: %s\n", brl.FormatCurrency(compSet.TotalRevenue)))
	sb.WriteString(fmt.Sprintf("ICMS aplicado: %s\n", brl.FormatPercent(compSet.ICMSRatePercent)))
	sb.WriteString("\n")

	// Column widths
	rankWidth := 4
	nameWidth := 26
	numWidth := 16

	sb.WriteString(padRight("#", rankWidth) + " " + padRight("Regime", nameWidth) + " " +
		padLeft("Imposto", numWidth) + " " +
		padLeft("Alíquota", numWidth-6) + " " +
		padLeft("Diferença", numWidth) + "\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, r := range compSet.Results {
		sb.WriteString(tf.formatRow(r, rankWidth, nameWidth, numWidth))
	}
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if compSet.Diagnostic != "" {
		sb.WriteString("\nAVISO: " + compSet.Diagnostic + "\n")
	}

	// Net result per regime
	if len(compSet.Results) > 0 {
		sb.WriteString("\nRESULTADO LÍQUIDO\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, r := range compSet.Results {
			sb.WriteString(padRight(r.RegimeName, nameWidth) + " " +
				padLeft(brl.FormatCurrency(r.NetResult), numWidth) + "\n")
		}
	}

	// Recommendations
	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMENDAÇÕES\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single regime row
func (tf *TableFormatter) formatRow(r ComparisonResult, rankWidth, nameWidth, numWidth int) string {
	name := r.RegimeName
	if r.IsLowest {
		name += " *"
	}
	diff := "-"
	if r.DiffFromLowest.IsPositive() {
		diff = "+" + brl.FormatCurrency(r.DiffFromLowest)
	}

	return padRight(fmt.Sprintf("%d", r.Rank), rankWidth) + " " +
		padRight(truncate(name, nameWidth), nameWidth) + " " +
		padLeft(brl.FormatCurrency(r.TotalTax), numWidth) + " " +
		padLeft(brl.FormatPercent(r.EffectiveRatePercent), numWidth-6) + " " +
		padLeft(diff, numWidth) + "\n"
}

// FormatCompact creates a single-line summary of the ranking
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	parts := make([]string, 0, len(compSet.Results))
	for _, r := range compSet.Results {
		parts = append(parts, fmt.Sprintf("%d. %s %s", r.Rank, r.RegimeName, brl.FormatCurrency(r.TotalTax)))
	}
	return strings.Join(parts, " | ")
}

// fmt pads by bytes, which misaligns accented names
func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func padLeft(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return strings.Repeat(" ", width-n) + s
}

// truncate truncates a string to maxLen runes
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
