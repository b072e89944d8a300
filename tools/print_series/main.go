package main

import (
	"fmt"
	"time"

	"github.com/fdtrack/valuation/internal/calculation"
	"github.com/fdtrack/valuation/internal/config"
	"github.com/fdtrack/valuation/internal/domain"
	"github.com/fdtrack/valuation/pkg/dateutil"
)

func main() {
	ce := calculation.NewCalculationEngine()
	now := time.Date(2025, 10, 16, 12, 0, 0, 0, time.UTC)
	sample := config.NewInputParser().CreateExamplePortfolio(now)

	// History of each sample record, including the month-end clamped labels.
	for i := range sample.Investments {
		inv := &sample.Investments[i]
		points, err := ce.History(inv, now)
		if err != nil {
			fmt.Printf("%s: %v\n", inv.Name, err)
			continue
		}
		fmt.Printf("%s (%s) history:\n", inv.Name, inv.Type)
		for _, p := range points {
			fmt.Printf("  %-9s %s invested=%s value=%s projected=%v\n", p.Label, p.Date.Format("2006-01-02"), p.Invested.StringFixed(2), p.Value.StringFixed(2), p.Projected)
		}
	}

	// Projection horizons around the FD+ term boundary.
	for _, pt := range domain.ProductTypes {
		points, err := ce.Project(pt, sample.Investments[0].PrincipalAmount, sample.Investments[0].InterestRate, calculation.FDPlusTermMonths+2)
		if err != nil {
			fmt.Printf("%s: %v\n", pt, err)
			continue
		}
		last := points[len(points)-1]
		fmt.Printf("%s projection month %d: %s\n", pt, last.Month, last.Value.StringFixed(2))
	}

	jan31 := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	fmt.Printf("AddMonths(%s, 1) = %s\n", jan31.Format("2006-01-02"), dateutil.AddMonths(jan31, 1).Format("2006-01-02"))
}
