package output

import (
	"bytes"
	"encoding/csv"

	"github.com/fdtrack/valuation/internal/domain"
)

// CSVSeriesExporter writes the chart series attached to a report, one row per
// point, ready for a spreadsheet chart.
type CSVSeriesExporter struct{}

func (c CSVSeriesExporter) Name() string { return "series-csv" }

func (c CSVSeriesExporter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"InvestmentID", "Kind", "Month", "Label", "Date", "Invested", "Value", "Projected"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, s := range report.Series {
		for _, p := range s.Projection {
			row := []string{s.InvestmentID, s.Kind, intToString(p.Month), "", "", "", p.Value.StringFixed(2), boolToString(true)}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
		for i, p := range s.Points {
			row := []string{
				s.InvestmentID,
				s.Kind,
				intToString(i),
				p.Label,
				p.Date.Format("2006-01-02"),
				p.Invested.StringFixed(2),
				p.Value.StringFixed(2),
				boolToString(p.Projected),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
