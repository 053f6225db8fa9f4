package calculation

import (
	"strings"

	"github.com/rgehrsitz/fiscalpro/internal/domain"
	"github.com/shopspring/decimal"
)

// ICMS applies only to these segments
var icmsSegments = []string{"Comércio", "Indústria"}

// SubjectToICMS reports whether a segment selection allows ICMS. An empty
// selection does not exclude it.
func SubjectToICMS(segment string) bool {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return true
	}
	for _, s := range icmsSegments {
		if strings.EqualFold(segment, s) {
			return true
		}
	}
	return false
}

// FindState returns the record of a state name. Separator entries never match.
func FindState(states []domain.StateOption, name string) (domain.StateIcmsRecord, bool) {
	if strings.TrimSpace(name) == "" {
		return domain.StateIcmsRecord{}, false
	}
	for _, opt := range states {
		rec, ok := opt.(domain.StateIcmsRecord)
		if !ok {
			continue
		}
		if domain.SameState(rec.State, name) {
			return rec, true
		}
	}
	return domain.StateIcmsRecord{}, false
}

// ResolveICMSRate picks the ICMS percentage used on product revenue.
//
// Segments other than Comércio and Indústria are never taxed. Otherwise the
// first match wins: the selected state when the source is "state", the
// incentive state's incentive rate when the source is "incentive", the
// incentive rate when only an incentive state is selected, the selected
// state's rate, and finally zero. A missing incentive rate falls through.
func ResolveICMSRate(input domain.ScenarioInput, states []domain.StateOption) decimal.Decimal {
	if !SubjectToICMS(input.SelectedSegment) {
		return decimal.Zero
	}

	state, hasState := FindState(states, input.SelectedState)
	incentive, hasIncentive := FindState(states, input.SelectedIncentiveState)

	if input.ICMSSource == domain.ICMSSourceState && hasState {
		return state.RatePercent
	}
	if input.ICMSSource == domain.ICMSSourceIncentive && hasIncentive && incentive.HasIncentive() {
		return *incentive.IncentivePercent
	}
	if hasIncentive && strings.TrimSpace(input.SelectedState) == "" && incentive.HasIncentive() {
		return *incentive.IncentivePercent
	}
	if hasState {
		return state.RatePercent
	}
	return decimal.Zero
}
