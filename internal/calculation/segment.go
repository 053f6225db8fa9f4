package calculation

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/fiscalpro/internal/domain"
)

// LookupSegment searches both segment tables independently. A row matches
// when its name contains the query, ignoring case; the first match wins.
func LookupSegment(segment string, presumed, realRows []domain.SegmentTaxRecord) domain.SegmentRows {
	return domain.SegmentRows{
		Presumed: matchSegment(segment, presumed),
		Real:     matchSegment(segment, realRows),
	}
}

func matchSegment(segment string, rows []domain.SegmentTaxRecord) *domain.SegmentTaxRecord {
	query := strings.ToLower(strings.TrimSpace(segment))
	if query == "" {
		return nil
	}
	for i := range rows {
		if strings.Contains(strings.ToLower(rows[i].SegmentName), query) {
			row := rows[i]
			return &row
		}
	}
	return nil
}

// MissingSegmentMessage describes which tables lack the segment. It returns
// an empty string when both rows were found or no segment is selected.
func MissingSegmentMessage(segment string, rows domain.SegmentRows) string {
	if strings.TrimSpace(segment) == "" {
		return ""
	}
	missing := rows.Missing()
	switch len(missing) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("Segmento %q não encontrado na tabela de %s; alíquotas consideradas zero.",
			segment, missing[0].DisplayName())
	default:
		return fmt.Sprintf("Segmento %q não encontrado nas tabelas de %s e %s; alíquotas consideradas zero.",
			segment, missing[0].DisplayName(), missing[1].DisplayName())
	}
}
