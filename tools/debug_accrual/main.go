package main

import (
	"fmt"
	"os"
	"time"

	calc "github.com/fdtrack/valuation/internal/calculation"
	"github.com/fdtrack/valuation/internal/config"
)

// Prints the value of every investment at one-second steps so the live
// accrual can be eyeballed against a spreadsheet.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_accrual <portfolio-file> [seconds]")
		return
	}
	steps := 5
	if len(os.Args) > 2 {
		if _, err := fmt.Sscanf(os.Args[2], "%d", &steps); err != nil {
			panic(err)
		}
	}

	p := config.NewInputParser()
	portfolio, err := p.LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	engine := calc.NewCalculationEngine()

	start := time.Now().Truncate(time.Second)
	fmt.Println("Second,InvestmentID,Type,Value,Gain,GainPerSecond")
	for s := 0; s <= steps; s++ {
		at := start.Add(time.Duration(s) * time.Second)
		for _, r := range engine.ValuatePortfolio(portfolio.Investments, at) {
			if r.Snapshot == nil {
				continue
			}
			fmt.Printf("%d,%s,%s,%s,%s,%s\n", s, r.InvestmentID, r.Type,
				r.Snapshot.CurrentValue.StringFixed(6), r.Snapshot.TotalGain.StringFixed(6), r.Snapshot.GainPerSecond.StringFixed(10))
		}
	}
}
