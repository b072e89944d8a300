package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fdtrack/valuation/internal/calculation"
	"github.com/fdtrack/valuation/internal/config"
	"github.com/fdtrack/valuation/internal/domain"
	"github.com/fdtrack/valuation/internal/output"
	"github.com/fdtrack/valuation/internal/ticker"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newSnapshotCmd(a *app) *cobra.Command {
	var withHistory bool
	var projectMonths int

	cmd := &cobra.Command{
		Use:   "snapshot <portfolio-file>",
		Short: "Value every investment in a portfolio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadPortfolio(args[0])
			if err != nil {
				return err
			}
			report := a.engine.BuildReport(p.Investments, a.clock())
			for i := range p.Investments {
				inv := &p.Investments[i]
				if !inv.Type.Valid() {
					continue
				}
				if withHistory {
					points, err := a.engine.History(inv, report.AsOf)
					if err != nil {
						return err
					}
					report.Series = append(report.Series, domain.SeriesReport{InvestmentID: inv.ID, Kind: domain.SeriesHistory, Points: points})
				}
				if projectMonths > 0 {
					points, err := a.engine.ProjectInvestment(inv, projectMonths)
					if err != nil {
						return err
					}
					report.Series = append(report.Series, domain.SeriesReport{InvestmentID: inv.ID, Kind: domain.SeriesProjection, Projection: points})
				}
			}
			return a.render(&report)
		},
	}
	cmd.Flags().BoolVar(&withHistory, "history", false, "attach the month-by-month history of each investment")
	cmd.Flags().IntVar(&projectMonths, "project", 0, "attach a projection of this many months for each investment")
	return cmd
}

func newProjectCmd(a *app) *cobra.Command {
	var (
		id        string
		typ       string
		principal string
		rate      string
		months    int
	)

	cmd := &cobra.Command{
		Use:   "project [portfolio-file]",
		Short: "Project the value of an investment month by month",
		Long: `Project either a stored investment (portfolio file plus --id) or a
hypothetical one described by --type, --principal and --rate. FD rates are
monthly fractions, RD rates are annual and FD+ ignores the rate.`,
		Example: "  invval project --type rd --principal 1000 --rate 0.12 --months 12\n  invval project portfolio.yaml --id fd-1 --months 24",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if months < 0 {
				return fmt.Errorf("--months cannot be negative")
			}
			if len(args) == 1 {
				if id == "" {
					return fmt.Errorf("--id is required with a portfolio file")
				}
				p, err := a.loadPortfolio(args[0])
				if err != nil {
					return err
				}
				inv, err := findInvestment(p, id)
				if err != nil {
					return err
				}
				points, err := a.engine.ProjectInvestment(inv, months)
				if err != nil {
					return err
				}
				return a.renderSeries(domain.SeriesReport{InvestmentID: inv.ID, Kind: domain.SeriesProjection, Projection: points})
			}

			pt, err := domain.ParseProductType(typ)
			if err != nil {
				return err
			}
			amount, err := decimal.NewFromString(principal)
			if err != nil {
				return fmt.Errorf("--principal: %w", err)
			}
			r := decimal.Zero
			if rate != "" {
				if r, err = decimal.NewFromString(rate); err != nil {
					return fmt.Errorf("--rate: %w", err)
				}
			}
			points, err := a.engine.Project(pt, amount, r, months)
			if err != nil {
				return err
			}
			return a.renderSeries(domain.SeriesReport{InvestmentID: pt.String(), Kind: domain.SeriesProjection, Projection: points})
		},
	}
	f := cmd.Flags()
	f.StringVar(&id, "id", "", "investment id to project from the portfolio file")
	f.StringVar(&typ, "type", "", "product type for a hypothetical projection (fd, fd_plus, rd)")
	f.StringVar(&principal, "principal", "0", "principal, or installment amount for an RD")
	f.StringVar(&rate, "rate", "", "interest rate as a fraction")
	f.IntVar(&months, "months", 12, "projection horizon in months")
	return cmd
}

func newHistoryCmd(a *app) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "history <portfolio-file>",
		Short: "Show the month-by-month value of investments since activation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadPortfolio(args[0])
			if err != nil {
				return err
			}
			now := a.clock()
			targets := p.Investments
			if id != "" {
				inv, err := findInvestment(p, id)
				if err != nil {
					return err
				}
				targets = []domain.Investment{*inv}
			}

			report := domain.Report{AsOf: now}
			for i := range targets {
				inv := &targets[i]
				points, err := a.engine.History(inv, now)
				if err != nil {
					if id != "" {
						return err
					}
					a.logger.Warnf("skipping history for %s: %v", inv.ID, err)
					continue
				}
				report.Series = append(report.Series, domain.SeriesReport{InvestmentID: inv.ID, Kind: domain.SeriesHistory, Points: points})
			}
			return a.renderSeriesReport(&report)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "only show this investment")
	return cmd
}

func newWatchCmd(a *app) *cobra.Command {
	var (
		every string
		ticks int
	)

	cmd := &cobra.Command{
		Use:   "watch <portfolio-file>",
		Short: "Re-render the portfolio value on a schedule until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadPortfolio(args[0])
			if err != nil {
				return err
			}
			f, err := output.ResolveFormatter(a.formats()[0])
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			var (
				rendered int
				sinkErr  error
			)
			tk := ticker.New(a.engine, p.Investments, a.clock, func(r domain.Report) {
				a.applyCurrency(&r)
				if err := output.WriteFormatted(a.out, f, &r); err != nil {
					sinkErr = err
					cancel()
					return
				}
				rendered++
				if ticks > 0 && rendered >= ticks {
					cancel()
				}
			})
			tk.Logger = a.logger

			if err := tk.Run(ctx, every); err != nil {
				return err
			}
			return sinkErr
		},
	}
	cmd.Flags().StringVar(&every, "every", ticker.DefaultSpec, "refresh schedule (cron spec with seconds, or @every <duration>)")
	cmd.Flags().IntVar(&ticks, "ticks", 0, "stop after this many renders (0 runs until interrupted)")
	return cmd
}

func newValidateCmd(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate <portfolio-file>",
		Short: "Check a portfolio file and report records the engine cannot value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadPortfolio(args[0])
			if err != nil {
				return err
			}
			results := a.engine.ValuatePortfolio(p.Investments, a.clock())
			for _, r := range results {
				if r.Snapshot == nil {
					fmt.Fprintf(a.out, "  %s: %s\n", r.InvestmentID, r.Error)
				}
			}
			totals := calculation.TotalsIn(results, a.currency)
			fmt.Fprintf(a.out, "%s: %d investments, %d valued, %d skipped\n", args[0], len(results), totals.Valued+totals.OtherCurrency, totals.Skipped)
			if strict && totals.Skipped > 0 {
				return fmt.Errorf("%d investments cannot be valued", totals.Skipped)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any record has an unsupported type")
	return cmd
}

func newSampleCmd(a *app) *cobra.Command {
	var (
		encoding string
		path     string
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print an example portfolio with one investment of each type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path != "" && !cmd.Flags().Changed("encoding") {
				encoding = config.FormatForFile(path)
			}
			data, err := a.parser.Encode(a.parser.CreateExamplePortfolio(a.clock()), encoding)
			if err != nil {
				return err
			}
			if path == "" {
				_, err = a.out.Write(data)
				return err
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("failed to write sample portfolio: %w", err)
			}
			a.logger.Infof("wrote sample portfolio to %s", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&encoding, "encoding", config.FormatYAML, "sample encoding (yaml or json)")
	cmd.Flags().StringVar(&path, "write", "", "write the sample to this file instead of stdout")
	return cmd
}
