package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	"github.com/fdtrack/valuation/internal/domain"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a standalone HTML report with a value table per
// investment and the chart series as embedded JSON.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":   FormatCurrency,
	"pct":    FormatPercentage,
	"date":   formatDate,
	"ticker": FormatTicker,
	"currencyFor": func(record, report string) string {
		return currencyFor(record, report)
	},
	"fixed": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.Report
		Highlights     Highlights
		Assumptions    []string
		Currency       string
		TotalsCurrency string
		TotalsNote     string
	}{report, Summarize(report), GenerateAssumptions(report), currencyFor("", report.Currency), totalsCurrency(report), otherCurrencyNote(report.Totals)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
