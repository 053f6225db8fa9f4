package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/fiscalpro/internal/brl"
	"github.com/rgehrsitz/fiscalpro/internal/domain"
)

// TableFormatter formats break-even results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a break-even result
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("PONTO DE EQUILÍBRIO ENTRE REGIMES\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Regimes:     %s x %s\n", result.RegimeA.DisplayName(), result.RegimeB.DisplayName()))
	sb.WriteString(fmt.Sprintf("Status:      %s\n", tf.formatStatus(result.Found)))
	sb.WriteString(fmt.Sprintf("Iterações:   %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergência: %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	if result.Found {
		sb.WriteString(fmt.Sprintf("Receita de equilíbrio: %s\n", brl.FormatCurrency(result.Revenue)))
		sb.WriteString(fmt.Sprintf("%-22s %s\n", result.RegimeA.DisplayName()+":", brl.FormatCurrency(result.TaxA)))
		sb.WriteString(fmt.Sprintf("%-22s %s\n", result.RegimeB.DisplayName()+":", brl.FormatCurrency(result.TaxB)))
		if result.CheaperBelow != "" {
			sb.WriteString(fmt.Sprintf("Abaixo: %s é mais barato\n", result.CheaperBelow.DisplayName()))
		}
		if result.CheaperAbove != "" {
			sb.WriteString(fmt.Sprintf("Acima:  %s é mais barato\n", result.CheaperAbove.DisplayName()))
		}
	}

	return sb.String()
}

// FormatSweep generates a table with one row per revenue level
func (tf *TableFormatter) FormatSweep(result *SweepResult) string {
	var sb strings.Builder

	sb.WriteString("CARGA POR FAIXA DE RECEITA\n")
	sb.WriteString(strings.Repeat("=", 100) + "\n")
	sb.WriteString(fmt.Sprintf("%18s", "Receita"))
	for _, id := range domain.Regimes {
		sb.WriteString(fmt.Sprintf(" %18s", id.DisplayName()))
	}
	sb.WriteString("\n" + strings.Repeat("-", 100) + "\n")

	for _, p := range result.Points {
		sb.WriteString(fmt.Sprintf("%18s", brl.FormatCurrency(p.Revenue)))
		for _, id := range domain.Regimes {
			cell := brl.FormatCurrency(p.Totals[id])
			if id == p.Cheapest {
				cell = "*" + cell
			}
			sb.WriteString(fmt.Sprintf(" %18s", cell))
		}
		sb.WriteString("\n")
	}

	if len(result.Recommendations) > 0 {
		sb.WriteString("\nRECOMENDAÇÕES\n")
		sb.WriteString(strings.Repeat("-", 100) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
	}

	return sb.String()
}

func (tf *TableFormatter) formatStatus(found bool) string {
	if found {
		return "encontrado"
	}
	return "sem troca no intervalo"
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for any break-even result
func (jf *JSONFormatter) Format(v any) (string, error) {
	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
