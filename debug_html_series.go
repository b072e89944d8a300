package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/fdtrack/valuation/internal/calculation"
	"github.com/fdtrack/valuation/internal/config"
	"github.com/fdtrack/valuation/internal/domain"
	"github.com/fdtrack/valuation/internal/output"
)

// Checks that the series embedded in the HTML report match what the engine
// computed, point for point.
func main() {
	path := "portfolio.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	parser := config.NewInputParser()
	portfolio, err := parser.LoadFromFile(path)
	if err != nil {
		log.Fatal(err)
	}

	now := time.Now()
	engine := calculation.NewCalculationEngine()
	report := engine.BuildReport(portfolio.Investments, now)
	for i := range portfolio.Investments {
		inv := &portfolio.Investments[i]
		points, err := engine.History(inv, now)
		if err != nil {
			fmt.Printf("skip %s: %v\n", inv.ID, err)
			continue
		}
		report.Series = append(report.Series, domain.SeriesReport{InvestmentID: inv.ID, Kind: domain.SeriesHistory, Points: points})
	}

	html, err := output.HTMLFormatter{}.Format(&report)
	if err != nil {
		log.Fatal(err)
	}

	const marker = "window.valuationSeries = "
	content := string(html)
	start := strings.Index(content, marker)
	if start < 0 {
		log.Fatal("❌ no embedded series in HTML output")
	}
	raw := content[start+len(marker):]
	end := strings.Index(raw, ";</script>")
	if end < 0 {
		log.Fatal("❌ embedded series is not terminated")
	}
	raw = raw[:end]

	var embedded []domain.SeriesReport
	if err := json.Unmarshal([]byte(raw), &embedded); err != nil {
		log.Fatalf("❌ embedded series is not valid JSON: %v", err)
	}

	fmt.Printf("=== %d series computed, %d embedded ===\n", len(report.Series), len(embedded))
	for i, s := range report.Series {
		if i >= len(embedded) {
			fmt.Printf("❌ %s missing from HTML\n", s.InvestmentID)
			continue
		}
		e := embedded[i]
		match := len(e.Points) == len(s.Points)
		for j := 0; match && j < len(s.Points); j++ {
			match = e.Points[j].Value.Equal(s.Points[j].Value) && e.Points[j].Label == s.Points[j].Label
		}
		fmt.Printf("%s: %d points, match=%v\n", s.InvestmentID, len(s.Points), match)
	}
}
