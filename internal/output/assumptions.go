package output

import (
	"fmt"

	"github.com/fdtrack/valuation/internal/calculation"
	"github.com/fdtrack/valuation/internal/domain"
)

// DefaultAssumptions lists the valuation conventions rendered in detailed outputs.
var DefaultAssumptions = []string{
	fmt.Sprintf("Interest is simple and accrues per second over a %d-second (365 day) year", calculation.SecondsPerYear),
	"FD rates are monthly; live value accrues at 12x the monthly rate from activation",
	fmt.Sprintf("FD+ runs %d months; each paid month returns 5%% interest and 5%% principal", calculation.FDPlusTermMonths),
	"RD rates are annual; each paid installment earns simple monthly interest while held",
	"Pending payouts and installments contribute nothing until marked paid",
	"Amounts are rounded for display only",
}

// GenerateAssumptions returns the conventions relevant to the products present
// in a report, in DefaultAssumptions order.
func GenerateAssumptions(report *domain.Report) []string {
	present := map[domain.ProductType]bool{}
	for _, r := range report.Results {
		if r.Snapshot != nil {
			present[r.Snapshot.Type] = true
		}
	}
	out := []string{DefaultAssumptions[0]}
	if present[domain.ProductFD] {
		out = append(out, DefaultAssumptions[1])
	}
	if present[domain.ProductFDPlus] {
		out = append(out, DefaultAssumptions[2])
	}
	if present[domain.ProductRD] {
		out = append(out, DefaultAssumptions[3])
	}
	return append(out, DefaultAssumptions[4:]...)
}
