package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fdtrack/valuation/internal/calculation"
	"github.com/fdtrack/valuation/internal/config"
	"github.com/fdtrack/valuation/internal/domain"
	"github.com/fdtrack/valuation/internal/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the settings resolved from flags, the environment and .env
// files, in that order of precedence.
type app struct {
	out io.Writer

	format    string
	logLevel  string
	now       string
	currency  string
	envFile   string
	outputDir string

	clock  func() time.Time
	logger *zap.SugaredLogger
	engine *calculation.CalculationEngine
	parser *config.InputParser
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out, parser: config.NewInputParser()}

	root := &cobra.Command{
		Use:           "invval",
		Short:         "Value FD, FD+ and RD investments",
		Long:          "invval computes the live value, projections and month-by-month history of fixed deposits, FD+ plans and recurring deposits.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.format, "format", "f", "console", fmt.Sprintf("output format(s), comma separated: %s", strings.Join(output.AvailableFormatterNames(), ", ")))
	pf.StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&a.now, "now", "", "value as of this time instead of the wall clock (RFC 3339 or YYYY-MM-DD)")
	pf.StringVar(&a.currency, "currency", "", "display currency for records without one")
	pf.StringVar(&a.envFile, "env-file", "", "load settings from this .env file (default ./.env)")
	pf.StringVarP(&a.outputDir, "output-dir", "o", "", "write report files to this directory instead of stdout")

	root.AddCommand(
		newSnapshotCmd(a),
		newProjectCmd(a),
		newHistoryCmd(a),
		newWatchCmd(a),
		newValidateCmd(a),
		newSampleCmd(a),
	)
	return root
}

// setup merges environment settings under any flags that were not given on
// the command line, then builds the logger, clock and engine.
func (a *app) setup(cmd *cobra.Command) error {
	var files []string
	if a.envFile != "" {
		files = append(files, a.envFile)
	}
	env, err := config.LoadEnv(files...)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("format") {
		a.format = env.Format
	}
	if !flags.Changed("log-level") {
		a.logLevel = env.LogLevel
	}
	if !flags.Changed("currency") {
		a.currency = env.Currency
	}
	a.currency = strings.ToUpper(strings.TrimSpace(a.currency))

	a.clock = env.Clock
	if a.now != "" {
		frozen, err := config.ParseDate(a.now)
		if err != nil {
			return fmt.Errorf("--now: %w", err)
		}
		a.clock = func() time.Time { return frozen }
	}

	a.logger, err = newLogger(a.logLevel)
	if err != nil {
		return err
	}
	a.engine = calculation.NewCalculationEngine()
	a.engine.SetLogger(a.logger)
	return nil
}

func newLogger(level string) (*zap.SugaredLogger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = lvl
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger.Sugar(), nil
}

func (a *app) loadPortfolio(path string) (*domain.Portfolio, error) {
	portfolio, err := a.parser.LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	a.logger.Debugf("loaded %d investments from %s", len(portfolio.Investments), path)
	return portfolio, nil
}

func (a *app) formats() []string {
	var names []string
	for _, f := range strings.Split(a.format, ",") {
		if f = strings.TrimSpace(f); f != "" {
			names = append(names, f)
		}
	}
	if len(names) == 0 {
		names = []string{"console"}
	}
	return names
}

// render writes the report to stdout in every requested format, or to files
// when an output directory is set.
func (a *app) render(report *domain.Report) error {
	a.applyCurrency(report)
	if a.outputDir != "" {
		paths, err := output.GenerateReportFiles(a.outputDir, report, a.formats()...)
		if err != nil {
			return err
		}
		for _, p := range paths {
			a.logger.Infof("wrote %s", p)
		}
		return nil
	}
	for _, name := range a.formats() {
		if output.NormalizeFormatName(name) == output.FormatAll {
			return fmt.Errorf("format %q needs --output-dir", name)
		}
		if err := output.GenerateReport(a.out, report, name); err != nil {
			return err
		}
	}
	return nil
}

// applyCurrency sets the display currency and re-sums the totals so records
// without a currency are grouped under it.
func (a *app) applyCurrency(report *domain.Report) {
	report.Currency = a.currency
	if len(report.Results) > 0 {
		report.Totals = calculation.TotalsIn(report.Results, a.currency)
	}
}

func (a *app) renderSeries(s domain.SeriesReport) error {
	return a.renderSeriesReport(&domain.Report{AsOf: a.clock(), Series: []domain.SeriesReport{s}})
}

// renderSeriesReport prints series tables directly for the console formats
// and otherwise falls back to the regular report formatters, where the
// series-csv and json outputs carry the points.
func (a *app) renderSeriesReport(report *domain.Report) error {
	if a.outputDir != "" || !consoleOnly(a.formats()) {
		return a.render(report)
	}
	for i, s := range report.Series {
		if i > 0 {
			fmt.Fprintln(a.out)
		}
		output.WriteSeries(a.out, s, a.currency)
	}
	return nil
}

func consoleOnly(formats []string) bool {
	for _, f := range formats {
		switch output.NormalizeFormatName(f) {
		case "console", "console-lite":
		default:
			return false
		}
	}
	return true
}

func findInvestment(p *domain.Portfolio, id string) (*domain.Investment, error) {
	for i := range p.Investments {
		if p.Investments[i].ID == id {
			return &p.Investments[i], nil
		}
	}
	return nil, fmt.Errorf("no investment with id %q", id)
}
