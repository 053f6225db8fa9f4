package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RegimeID identifies a tax regime in a comparison
type RegimeID string

const (
	RegimePresumed RegimeID = "presumed"
	RegimeReal     RegimeID = "real"
	RegimeSimples  RegimeID = "simples"
	RegimeRET      RegimeID = "ret"
)

// Regimes lists the regimes in the order results are produced
var Regimes = []RegimeID{RegimePresumed, RegimeReal, RegimeSimples, RegimeRET}

// DisplayName returns the Portuguese regime name
func (r RegimeID) DisplayName() string {
	switch r {
	case RegimePresumed:
		return "Lucro Presumido"
	case RegimeReal:
		return "Lucro Real"
	case RegimeSimples:
		return "Simples Nacional"
	case RegimeRET:
		return "RET"
	default:
		return string(r)
	}
}

// ParseRegimeID accepts the regime IDs and their Portuguese names
func ParseRegimeID(s string) (RegimeID, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.NewReplacer(" ", "_", "-", "_").Replace(v)
	switch v {
	case "presumed", "presumido", "lucro_presumido":
		return RegimePresumed, nil
	case "real", "lucro_real":
		return RegimeReal, nil
	case "simples", "simples_nacional":
		return RegimeSimples, nil
	case "ret":
		return RegimeRET, nil
	default:
		return "", fmt.Errorf("unknown regime %q (valid: presumed, real, simples, ret)", s)
	}
}

// RegimeResult is the tax burden of one regime for a scenario
type RegimeResult struct {
	Regime               RegimeID        `json:"regime"`
	TotalTax             decimal.Decimal `json:"totalTax"`
	EffectiveRatePercent decimal.Decimal `json:"effectiveRatePercent"`
}

// Comparison is the outcome of evaluating a scenario under every regime
type Comparison struct {
	// Results are in Regimes order
	Results []RegimeResult `json:"results"`
	// Ranked holds the same results sorted by ascending total tax
	Ranked []RegimeResult `json:"ranked"`

	ICMSRatePercent decimal.Decimal `json:"icmsRatePercent"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	Segment         SegmentRows     `json:"-"`

	// Diagnostic is empty unless a lookup partially or fully failed
	Diagnostic string `json:"diagnostic,omitempty"`
}

// Result returns the result of a regime, if present
func (c *Comparison) Result(id RegimeID) (RegimeResult, bool) {
	for _, r := range c.Results {
		if r.Regime == id {
			return r, true
		}
	}
	return RegimeResult{}, false
}
