// Package brl converts between Brazilian-formatted strings ("R$ 1.234,56",
// "18,5%") and decimals. It is only used at the input and output edges; all
// arithmetic happens on decimal.Decimal.
package brl

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var replacer = strings.NewReplacer("R$", "", "%", "", " ", "", "\u00a0", "", "\t", "")

// ParseAmount parses a currency figure. The comma is the decimal separator
// and dots group thousands. Without a comma, a dot is read as a thousands
// separator only when every group after it has exactly three digits.
func ParseAmount(s string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(s)
	v := replacer.Replace(raw)
	if v == "" {
		return decimal.Zero, nil
	}

	neg := false
	if strings.HasPrefix(v, "-") {
		neg = true
		v = v[1:]
	}

	switch strings.Count(v, ",") {
	case 0:
		if thousandsGrouped(v) {
			v = strings.ReplaceAll(v, ".", "")
		}
	case 1:
		v = strings.ReplaceAll(v, ".", "")
		v = strings.Replace(v, ",", ".", 1)
	default:
		return decimal.Zero, fmt.Errorf("invalid amount %q: more than one decimal comma", raw)
	}

	for _, r := range v {
		if (r < '0' || r > '9') && r != '.' {
			return decimal.Zero, fmt.Errorf("invalid amount %q", raw)
		}
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

// ParsePercent parses a percentage such as "18%", "20,5" or "7.6"
func ParsePercent(s string) (decimal.Decimal, error) {
	return ParseAmount(s)
}

// LenientAmount parses a currency figure, returning zero when malformed
func LenientAmount(s string) decimal.Decimal {
	d, err := ParseAmount(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// LenientPercent parses a percentage, returning zero when malformed
func LenientPercent(s string) decimal.Decimal {
	return LenientAmount(s)
}

func thousandsGrouped(v string) bool {
	parts := strings.Split(v, ".")
	if len(parts) < 2 || len(parts[0]) == 0 || len(parts[0]) > 3 || parts[0] == "0" {
		return false
	}
	for _, p := range parts[1:] {
		if len(p) != 3 {
			return false
		}
	}
	return true
}

// FormatCurrency renders d as "R$ 1.234,56"
func FormatCurrency(d decimal.Decimal) string {
	s := formatNumber(d.Abs(), 2)
	if d.IsNegative() && s != "0,00" {
		return "-R$ " + s
	}
	return "R$ " + s
}

// FormatPercent renders d as "29,53%"
func FormatPercent(d decimal.Decimal) string {
	s := formatNumber(d.Abs(), 2)
	if d.IsNegative() && s != "0,00" {
		s = "-" + s
	}
	return s + "%"
}

// FormatNumber renders d with dot grouping and the given number of decimal
// places
func FormatNumber(d decimal.Decimal, places int32) string {
	s := formatNumber(d.Abs(), places)
	if d.IsNegative() && strings.Trim(s, "0,.") != "" {
		return "-" + s
	}
	return s
}

func formatNumber(d decimal.Decimal, places int32) string {
	fixed := d.StringFixed(places)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var sb strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte('.')
		}
		sb.WriteRune(r)
	}
	if places > 0 {
		sb.WriteByte(',')
		sb.WriteString(frac)
	}
	return sb.String()
}
