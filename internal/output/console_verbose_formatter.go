package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fdtrack/valuation/internal/domain"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#D1D5DB")).Bold(true)
	gainStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ADE80")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F15B5B"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	cardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#6CBFE6")).Padding(0, 1)
	totalsStyle  = cardStyle.BorderForeground(lipgloss.Color("#FFD54A"))
	statusColors = map[string]lipgloss.Color{
		domain.StatusLocked:    "#F59E0B",
		domain.StatusUnlocked:  "#4ADE80",
		domain.StatusActive:    "#6CBFE6",
		domain.StatusCompleted: "#9CA3AF",
		domain.StatusMatured:   "#A78BFA",
	}
)

// ConsoleVerboseFormatter renders the detailed terminal report: one card per
// investment, portfolio totals, highlights and any attached chart series.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, titleStyle.Render("INVESTMENT VALUATION"))
	fmt.Fprintln(&buf, labelStyle.Render("as of "+report.AsOf.Format("2006-01-02 15:04:05 MST")))
	fmt.Fprintln(&buf)

	for _, r := range report.Results {
		fmt.Fprintln(&buf, renderCard(r, report.Currency))
	}

	currency := currencyFor("", report.Currency)
	tc := totalsCurrency(report)
	t := report.Totals
	totals := []string{
		titleStyle.Render("PORTFOLIO"),
		kv("Invested", FormatCurrency(t.Invested, tc)),
		kv("Current value", FormatCurrency(t.CurrentValue, tc)),
		kv("Total gain", gainStyle.Render(FormatCurrency(t.TotalGain, tc))),
		kv("Ticking", FormatTicker(t.GainPerSecond)),
		kv("Valued", fmt.Sprintf("%d of %d", t.Valued, t.Valued+t.Skipped+t.OtherCurrency)),
	}
	if note := otherCurrencyNote(t); note != "" {
		totals = append(totals, mutedStyle.Render(note))
	}
	fmt.Fprintln(&buf, totalsStyle.Render(strings.Join(totals, "\n")))

	writeHighlights(&buf, Summarize(report))

	for _, s := range report.Series {
		fmt.Fprintln(&buf)
		WriteSeries(&buf, s, currency)
	}

	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, labelStyle.Render("ASSUMPTIONS"))
	for _, a := range GenerateAssumptions(report) {
		fmt.Fprintf(&buf, "%s %s\n", mutedStyle.Render("•"), a)
	}
	return buf.Bytes(), nil
}

func kv(label, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-16s", label)) + valueStyle.Render(value)
}

func renderCard(r domain.ValuationResult, reportCurrency string) string {
	currency := currencyFor(r.Currency, reportCurrency)
	header := titleStyle.Render(displayName(r)) + " " + mutedStyle.Render("("+r.Type.String()+")")

	snap := r.Snapshot
	if snap == nil {
		return cardStyle.Render(header + "\n" + errorStyle.Render("not valued: "+r.Error))
	}

	status := lipgloss.NewStyle().Foreground(statusColors[snap.Status]).Bold(true).Render(snap.Status)
	lines := []string{
		header + "  " + status,
		kv("Invested", FormatCurrency(snap.PrincipalInvested, currency)),
		kv("Current value", FormatCurrency(snap.CurrentValue, currency)),
		kv("Gain", gainStyle.Render(FormatCurrency(snap.TotalGain, currency))+" "+mutedStyle.Render("("+FormatPercentage(snap.GainPercentage)+")")),
		kv("Ticking", FormatTicker(snap.GainPerSecond)),
	}

	switch {
	case snap.FD != nil:
		d := snap.FD
		lines = append(lines,
			kv("Monthly payout", FormatCurrency(d.MonthlyPayout, currency)),
			kv("Received", fmt.Sprintf("%s (%d payouts)", FormatCurrency(d.TotalReceived, currency), d.PaidPayouts)),
			kv("Pending interest", FormatCurrency(d.PendingInterest, currency)),
			kv("Months elapsed", intToString(d.MonthsElapsed)),
		)
		if d.LockRemaining > 0 {
			lines = append(lines, kv("Lock-in left", fmt.Sprintf("%d months", d.LockRemaining)))
		}
		lines = append(lines, kv("Next payout", formatDate(d.NextPayoutDate)))
	case snap.FDPlus != nil:
		d := snap.FDPlus
		lines = append(lines,
			kv("Monthly payout", FormatCurrency(d.MonthlyPayout, currency)),
			kv("Received", FormatCurrency(d.TotalReceived, currency)),
			kv("Principal back", FormatCurrency(d.PrincipalReturned, currency)),
			kv("Outstanding", FormatCurrency(d.OutstandingPrincipal, currency)),
			kv("Schedule", fmt.Sprintf("%d done, %d to go", d.MonthsCompleted, d.RemainingMonths)),
			kv("Next payout", formatDate(d.NextPayoutDate)),
		)
	case snap.RD != nil:
		d := snap.RD
		lines = append(lines,
			kv("Installment", FormatCurrency(d.InstallmentAmount, currency)),
			kv("Installments", fmt.Sprintf("%d paid, %d pending, %d remaining", d.PaidInstallments, d.PendingInstallments, d.RemainingInstallments)),
			kv("Accrued (live)", FormatCurrency(d.AccruedInterest, currency)),
			kv("Maturity", formatDate(d.MaturityDate)),
			kv("Next due", formatDate(d.NextDueDate)),
		)
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func writeHighlights(buf *bytes.Buffer, h Highlights) {
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, labelStyle.Render("HIGHLIGHTS"))
	if h.BestPerformer != "" {
		fmt.Fprintf(buf, "Best performer:  %s (%s)\n", h.BestPerformer, FormatPercentage(h.BestGainPercent))
		fmt.Fprintf(buf, "Largest holding: %s\n", h.LargestHolding)
		fmt.Fprintf(buf, "Portfolio gain:  %s\n", FormatPercentage(h.PortfolioGainPct))
	}
	if h.Locked > 0 {
		fmt.Fprintf(buf, "Locked deposits: %d\n", h.Locked)
	}
	for i, ev := range h.Upcoming {
		if i == 3 {
			break
		}
		fmt.Fprintf(buf, "Next %-12s %s  %s\n", ev.Kind+":", ev.Date.Format("2006-01-02"), ev.Name)
	}
	for _, name := range h.UnsupportedRecord {
		fmt.Fprintln(buf, errorStyle.Render("Skipped: "+name))
	}
}

// WriteSeries renders one history or projection series as an aligned table.
func WriteSeries(buf io.Writer, s domain.SeriesReport, currency string) {
	fmt.Fprintln(buf, titleStyle.Render(strings.ToUpper(s.Kind)+" "+s.InvestmentID))
	if s.Kind == domain.SeriesProjection {
		for _, p := range s.Projection {
			fmt.Fprintf(buf, "  month %3d  %s\n", p.Month, FormatCurrency(p.Value, currency))
		}
		return
	}
	for _, p := range s.Points {
		marker := ""
		if p.Projected {
			marker = mutedStyle.Render(" (projected)")
		}
		fmt.Fprintf(buf, "  %-9s  invested %s  value %s%s\n", p.Label,
			FormatCurrency(p.Invested, currency), FormatCurrency(p.Value, currency), marker)
	}
}
