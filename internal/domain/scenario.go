package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ICMSSource is the operator's choice of where the ICMS rate comes from
type ICMSSource string

const (
	ICMSSourceUnset     ICMSSource = ""
	ICMSSourceState     ICMSSource = "state"
	ICMSSourceIncentive ICMSSource = "incentive"
)

// ParseICMSSource converts a configuration string into an ICMSSource
func ParseICMSSource(s string) (ICMSSource, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return ICMSSourceUnset, nil
	case "state", "estado":
		return ICMSSourceState, nil
	case "incentive", "incentivo":
		return ICMSSourceIncentive, nil
	default:
		return ICMSSourceUnset, fmt.Errorf("unknown ICMS source %q (valid: state, incentive)", s)
	}
}

// SimplesAnnex is one of the five Simples Nacional annexes
type SimplesAnnex int

const (
	AnnexI SimplesAnnex = iota + 1
	AnnexII
	AnnexIII
	AnnexIV
	AnnexV
)

var annexNames = []string{"", "I", "II", "III", "IV", "V"}

// String returns the roman numeral of the annex
func (a SimplesAnnex) String() string {
	if a < AnnexI || a > AnnexV {
		return ""
	}
	return annexNames[a]
}

// ParseSimplesAnnex accepts roman numerals ("III") or digits ("3")
func ParseSimplesAnnex(s string) (SimplesAnnex, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	v = strings.TrimPrefix(v, "ANEXO ")
	if v == "" {
		return AnnexI, nil
	}
	for i := int(AnnexI); i <= int(AnnexV); i++ {
		if v == annexNames[i] || v == fmt.Sprint(i) {
			return SimplesAnnex(i), nil
		}
	}
	return 0, fmt.Errorf("unknown Simples Nacional annex %q (valid: I..V)", s)
}

// ScenarioInput holds the figures and selections of one business scenario
type ScenarioInput struct {
	SelectedState          string
	SelectedIncentiveState string
	ICMSSource             ICMSSource
	ServiceTaxRatePercent  decimal.Decimal
	SelectedSegment        string
	SimplesAnnex           SimplesAnnex

	ProductRevenue           decimal.Decimal
	MonophasicProductRevenue decimal.Decimal
	ServiceRevenue           decimal.Decimal
	ProductCost              decimal.Decimal
	MonophasicProductCost    decimal.Decimal
	FixedExpenses            decimal.Decimal
	VariableExpenses         decimal.Decimal
	OwnerDraw                decimal.Decimal
	Payroll                  decimal.Decimal

	RETSingleTaxEnabled bool
	RETFGTSEnabled      bool
}

// TotalRevenue sums product, monophasic product and service revenue
func (s ScenarioInput) TotalRevenue() decimal.Decimal {
	return s.ProductRevenue.Add(s.MonophasicProductRevenue).Add(s.ServiceRevenue)
}

// TotalCost sums product and monophasic product cost
func (s ScenarioInput) TotalCost() decimal.Decimal {
	return s.ProductCost.Add(s.MonophasicProductCost)
}

// TotalExpenses sums fixed expenses, variable expenses, owner draw and payroll
func (s ScenarioInput) TotalExpenses() decimal.Decimal {
	return s.FixedExpenses.Add(s.VariableExpenses).Add(s.OwnerDraw).Add(s.Payroll)
}

// SelectState applies a pick from the state list. The separator clears
// the selection.
func (s *ScenarioInput) SelectState(opt StateOption) {
	switch o := opt.(type) {
	case StateIcmsRecord:
		s.SelectedState = o.State
	default:
		s.SelectedState = ""
	}
}

// SelectIncentiveState applies a pick from the incentive list. The separator
// clears the selection, and also the ICMS source when no state remains
// selected.
func (s *ScenarioInput) SelectIncentiveState(opt StateOption) {
	switch o := opt.(type) {
	case StateIcmsRecord:
		s.SelectedIncentiveState = o.State
	default:
		s.SelectedIncentiveState = ""
		if s.SelectedState == "" {
			s.ICMSSource = ICMSSourceUnset
		}
	}
}

// SetICMSSource switches the active ICMS source
func (s *ScenarioInput) SetICMSSource(src ICMSSource) {
	s.ICMSSource = src
}
