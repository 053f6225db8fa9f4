package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// StateOption is one entry of the ordered state list shown to the operator.
// It is either a Separator or a StateIcmsRecord.
type StateOption interface {
	// Label is the text displayed for the entry
	Label() string
	isStateOption()
}

// Separator is the reserved "clear selection" entry of the state list.
// It never matches a real state.
type Separator struct{}

// SeparatorLabel is the text displayed for the separator entry
const SeparatorLabel = "──────────"

// Label returns the separator text
func (Separator) Label() string { return SeparatorLabel }

func (Separator) isStateOption() {}

// StateIcmsRecord holds the ICMS rate of a single state
type StateIcmsRecord struct {
	State            string           `yaml:"state" json:"state"`
	RatePercent      decimal.Decimal  `yaml:"rate_percent" json:"ratePercent"`
	IncentivePercent *decimal.Decimal `yaml:"incentive_percent,omitempty" json:"incentivePercent,omitempty"`
}

// Label returns the state name
func (r StateIcmsRecord) Label() string { return r.State }

func (StateIcmsRecord) isStateOption() {}

// HasIncentive reports whether the state carries an incentive rate
func (r StateIcmsRecord) HasIncentive() bool { return r.IncentivePercent != nil }

// SameState compares state names ignoring case and surrounding whitespace
func SameState(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// NormalizeStateName trims the surrounding whitespace of a state name
func NormalizeStateName(name string) string {
	return strings.TrimSpace(name)
}

// SegmentRegime identifies which segment table a record belongs to
type SegmentRegime string

const (
	SegmentPresumed SegmentRegime = "presumed"
	SegmentReal     SegmentRegime = "real"
)

// DisplayName returns the Portuguese regime name used in messages
func (r SegmentRegime) DisplayName() string {
	switch r {
	case SegmentPresumed:
		return "Lucro Presumido"
	case SegmentReal:
		return "Lucro Real"
	default:
		return string(r)
	}
}

// Valid reports whether the regime is one of the two segment tables
func (r SegmentRegime) Valid() bool {
	return r == SegmentPresumed || r == SegmentReal
}

// SegmentTaxRecord holds the federal rates of an activity segment. The
// presumption fields are only meaningful in the Presumed Profit table.
type SegmentTaxRecord struct {
	SegmentName                       string          `yaml:"segment" json:"segment"`
	PIS                               decimal.Decimal `yaml:"pis" json:"pis"`
	COFINS                            decimal.Decimal `yaml:"cofins" json:"cofins"`
	IncomeTaxRate                     decimal.Decimal `yaml:"irpj" json:"irpj"`
	IncomeTaxPresumptionRate          decimal.Decimal `yaml:"irpj_presumption,omitempty" json:"irpjPresumption,omitempty"`
	SocialContributionRate            decimal.Decimal `yaml:"csll" json:"csll"`
	SocialContributionPresumptionRate decimal.Decimal `yaml:"csll_presumption,omitempty" json:"csllPresumption,omitempty"`
}

// SegmentRows is the outcome of looking a segment up in both tables.
// Either side may be nil.
type SegmentRows struct {
	Presumed *SegmentTaxRecord
	Real     *SegmentTaxRecord
}

// Missing lists the tables in which the segment was not found
func (s SegmentRows) Missing() []SegmentRegime {
	var missing []SegmentRegime
	if s.Presumed == nil {
		missing = append(missing, SegmentPresumed)
	}
	if s.Real == nil {
		missing = append(missing, SegmentReal)
	}
	return missing
}
