package compare

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/fiscalpro/internal/brl"
)

// HTMLFormatter produces a standalone HTML report
type HTMLFormatter struct{}

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": brl.FormatCurrency,
	"pct":  brl.FormatPercent,
}).Parse(htmlTemplateSource))

// Format renders the comparison as an HTML document
func (h *HTMLFormatter) Format(compSet *ComparisonSet) (string, error) {
	var buf bytes.Buffer
	data := struct {
		*ComparisonSet
		Assumptions []string
	}{compSet, DefaultAssumptions}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
