package output

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fdtrack/valuation/internal/domain"
	moneyutil "github.com/fdtrack/valuation/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats an amount in the given ISO currency with its symbol
// and 2 decimals.
func FormatCurrency(amount decimal.Decimal, currency string) string {
	return moneyutil.FormatCurrency(amount, currency)
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return moneyutil.FormatPercentage(amount) }

// FormatTicker renders a per-second gain with enough precision to see it move.
func FormatTicker(perSecond decimal.Decimal) string { return perSecond.StringFixed(6) + "/s" }

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }

// currencyFor picks the display currency of a result: its own, the report's,
// then the package default.
func currencyFor(recordCurrency, reportCurrency string) string {
	if recordCurrency != "" {
		return recordCurrency
	}
	if reportCurrency != "" {
		return reportCurrency
	}
	return moneyutil.DefaultCurrency
}

// totalsCurrency is the currency the portfolio totals were summed in.
func totalsCurrency(report *domain.Report) string {
	return currencyFor(report.Totals.Currency, report.Currency)
}

// otherCurrencyNote explains totals that leave records out, or is empty.
func otherCurrencyNote(t domain.PortfolioTotals) string {
	if t.OtherCurrency == 0 {
		return ""
	}
	return fmt.Sprintf("%d valued in other currencies, not included in the %s totals", t.OtherCurrency, t.Currency)
}
