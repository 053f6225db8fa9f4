package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV. Amounts use a dot as the
// decimal separator so spreadsheets in any locale can re-parse them.
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Rank",
		"Regime",
		"Regime Name",
		"Total Tax",
		"Effective Rate %",
		"Diff from Lowest",
		"Net Result",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, r := range compSet.Results {
		if err := writer.Write(cf.formatRow(r)); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(r ComparisonResult) []string {
	return []string{
		strconv.Itoa(r.Rank),
		string(r.Regime),
		r.RegimeName,
		r.TotalTax.StringFixed(2),
		r.EffectiveRatePercent.StringFixed(2),
		r.DiffFromLowest.StringFixed(2),
		r.NetResult.StringFixed(2),
	}
}
