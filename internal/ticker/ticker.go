// Package ticker re-values a portfolio on a cron schedule so callers can show
// the live, per-second growth of each investment.
package ticker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fdtrack/valuation/internal/calculation"
	"github.com/fdtrack/valuation/internal/domain"
	"github.com/robfig/cron/v3"
)

// DefaultSpec refreshes once per second.
const DefaultSpec = "@every 1s"

// Sink receives every report the ticker produces.
type Sink func(report domain.Report)

// Ticker recomputes a report for a fixed set of investments on every tick.
type Ticker struct {
	Engine      *calculation.CalculationEngine
	Investments []domain.Investment
	Clock       func() time.Time
	Sink        Sink
	Logger      calculation.Logger

	mu    sync.Mutex
	ticks int
}

// New creates a Ticker. A nil clock means time.Now.
func New(engine *calculation.CalculationEngine, investments []domain.Investment, clock func() time.Time, sink Sink) *Ticker {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	if clock == nil {
		clock = time.Now
	}
	return &Ticker{
		Engine:      engine,
		Investments: investments,
		Clock:       clock,
		Sink:        sink,
		Logger:      calculation.NopLogger{},
	}
}

// Tick values the portfolio once at the current clock reading and passes the
// report to the sink.
func (t *Ticker) Tick() domain.Report {
	t.mu.Lock()
	defer t.mu.Unlock()

	report := t.Engine.BuildReport(t.Investments, t.Clock())
	t.ticks++
	if t.Sink != nil {
		t.Sink(report)
	}
	return report
}

// Ticks returns how many reports have been produced so far.
func (t *Ticker) Ticks() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ticks
}

// Run ticks once immediately, then on every activation of spec until ctx is
// cancelled. Overlapping ticks are skipped rather than queued.
func (t *Ticker) Run(ctx context.Context, spec string) error {
	if spec == "" {
		spec = DefaultSpec
	}
	c := cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(spec, func() { t.Tick() }); err != nil {
		return fmt.Errorf("register tick %q: %w", spec, err)
	}

	t.Tick()
	c.Start()
	t.logger().Debugf("ticker started (%s)", spec)

	<-ctx.Done()
	<-c.Stop().Done()
	t.logger().Debugf("ticker stopped after %d ticks", t.Ticks())
	return nil
}

func (t *Ticker) logger() calculation.Logger {
	if t.Logger == nil {
		return calculation.NopLogger{}
	}
	return t.Logger
}
