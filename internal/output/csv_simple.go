package output

import (
	"bytes"
	"encoding/csv"

	"github.com/fdtrack/valuation/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per investment,
// in portfolio order).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"InvestmentID", "Name", "Type", "Currency", "Status", "PrincipalInvested", "CurrentValue", "TotalGain", "GainPercentage", "GainPerSecond", "Error"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range report.Results {
		row := []string{r.InvestmentID, r.Name, string(r.Type), currencyFor(r.Currency, report.Currency)}
		if s := r.Snapshot; s != nil {
			row = append(row,
				s.Status,
				s.PrincipalInvested.StringFixed(2),
				s.CurrentValue.StringFixed(2),
				s.TotalGain.StringFixed(2),
				s.GainPercentage.StringFixed(2),
				s.GainPerSecond.StringFixed(8),
				"",
			)
		} else {
			row = append(row, "", "", "", "", "", "", r.Error)
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
