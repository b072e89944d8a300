package output

import (
	"bytes"
	"fmt"

	"github.com/fdtrack/valuation/internal/domain"
)

// ConsoleFormatter provides a concise plain-text summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "INVESTMENT VALUATION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "As of: %s\n", report.AsOf.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintln(&buf)
	for _, r := range report.Results {
		currency := currencyFor(r.Currency, report.Currency)
		if r.Snapshot == nil {
			fmt.Fprintf(&buf, "%s [%s]: not valued (%s)\n", displayName(r), r.Type.String(), r.Error)
			continue
		}
		s := r.Snapshot
		fmt.Fprintf(&buf, "%s [%s] %s: Invested=%s Value=%s Gain=%s (%s)\n",
			displayName(r),
			s.Type.String(),
			s.Status,
			FormatCurrency(s.PrincipalInvested, currency),
			FormatCurrency(s.CurrentValue, currency),
			FormatCurrency(s.TotalGain, currency),
			FormatPercentage(s.GainPercentage),
		)
	}
	currency := totalsCurrency(report)
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Total: Invested=%s Value=%s Gain=%s\n",
		FormatCurrency(report.Totals.Invested, currency),
		FormatCurrency(report.Totals.CurrentValue, currency),
		FormatCurrency(report.Totals.TotalGain, currency),
	)
	if note := otherCurrencyNote(report.Totals); note != "" {
		fmt.Fprintln(&buf, note)
	}
	h := Summarize(report)
	if h.BestPerformer != "" {
		fmt.Fprintf(&buf, "Best performer: %s (%s)\n", h.BestPerformer, FormatPercentage(h.BestGainPercent))
	}
	return buf.Bytes(), nil
}
