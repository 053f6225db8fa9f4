package calculation

import (
	"testing"

	"github.com/rgehrsitz/fiscalpro/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupSegment(t *testing.T) {
	presumed := []domain.SegmentTaxRecord{
		{SegmentName: "Transporte de Cargas"},
		{SegmentName: "Transporte de Passageiros"},
		{SegmentName: "Comércio"},
	}
	realRows := []domain.SegmentTaxRecord{
		{SegmentName: "Comércio"},
	}

	rows := LookupSegment("transporte", presumed, realRows)
	require.NotNil(t, rows.Presumed)
	assert.Equal(t, "Transporte de Cargas", rows.Presumed.SegmentName, "first match wins")
	assert.Nil(t, rows.Real)

	rows = LookupSegment("COMÉRCIO", presumed, realRows)
	assert.NotNil(t, rows.Presumed)
	assert.NotNil(t, rows.Real)

	rows.Presumed.SegmentName = "changed"
	assert.Equal(t, "Comércio", presumed[2].SegmentName, "lookup returns a copy")

	rows = LookupSegment("  ", presumed, realRows)
	assert.Nil(t, rows.Presumed)
	assert.Nil(t, rows.Real)
}

func TestMissingSegmentMessage(t *testing.T) {
	row := &domain.SegmentTaxRecord{SegmentName: "Comércio"}

	assert.Empty(t, MissingSegmentMessage("", domain.SegmentRows{}))
	assert.Empty(t, MissingSegmentMessage("Comércio", domain.SegmentRows{Presumed: row, Real: row}))

	assert.Equal(t,
		`Segmento "Construção" não encontrado na tabela de Lucro Real; alíquotas consideradas zero.`,
		MissingSegmentMessage("Construção", domain.SegmentRows{Presumed: row}))

	assert.Equal(t,
		`Segmento "Mineração" não encontrado nas tabelas de Lucro Presumido e Lucro Real; alíquotas consideradas zero.`,
		MissingSegmentMessage("Mineração", domain.SegmentRows{}))
}
