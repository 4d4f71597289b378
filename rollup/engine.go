package rollup

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/xtxerr/sup/logging"
	"github.com/xtxerr/sup/metric"
	"github.com/xtxerr/sup/timing"
	"github.com/xtxerr/sup/window"
)

// Engine applies a downsampling policy to every metric in a registry.
// Each metric is rolled up by a dedicated worker goroutine; within a worker
// the metric's series keep their single-owner discipline. Callers must not
// append to the raw streams while a run is in flight.
type Engine struct {
	reg    *metric.Registry
	policy *Policy
	// Maximum concurrent workers; 0 means unbounded.
	workers int
}

// NewEngine creates a rollup engine for the given registry and policy.
func NewEngine(reg *metric.Registry, policy *Policy) *Engine {
	return &Engine{reg: reg, policy: policy}
}

// SetWorkers bounds the number of concurrent per-metric workers.
func (e *Engine) SetWorkers(n int) {
	e.workers = n
}

// Run rolls every registered metric up under its applicable rules. The
// first failing metric aborts the run and its error is returned.
func (e *Engine) Run(ctx context.Context) error {
	log := logging.Component("rollup")
	metrics := e.reg.List()

	g, ctx := errgroup.WithContext(ctx)
	if e.workers > 0 {
		g.SetLimit(e.workers)
	}

	for _, m := range metrics {
		m := m
		g.Go(func() error {
			return e.rollupMetric(ctx, m)
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("rollup failed", "error", err)
		return err
	}
	log.Debug("rollup complete", "metrics", len(metrics))
	return nil
}

// rollupMetric applies every applicable rule to one metric.
func (e *Engine) rollupMetric(ctx context.Context, m *metric.Metric) error {
	if m.Raw.IsEmpty() {
		return nil
	}
	first, _ := m.Raw.First()

	for _, rule := range e.policy.RulesFor(m.Name) {
		if err := ctx.Err(); err != nil {
			return err
		}

		interval, err := ParseInterval(rule.Interval)
		if err != nil {
			return fmt.Errorf("metric %s: %w", m.Key(), err)
		}
		// Anchor the grid at the interval boundary at or before the first
		// sample, so series rolled up at the same interval share a grid.
		origin := first.AlignDown(interval)

		for _, opName := range rule.Ops {
			op, ok := window.ByName(opName)
			if !ok {
				return fmt.Errorf("metric %s: unknown op %q", m.Key(), opName)
			}

			aligned, err := window.Downsample(m.Raw, origin, interval, op)
			if err != nil {
				return fmt.Errorf("metric %s: %s: %w", m.Key(), rule.ID(opName), err)
			}
			m.SetAligned(rule.ID(opName), aligned)
		}
	}
	return nil
}

// Anchor returns the grid origin the engine uses for a stream whose first
// sample is at the given timestamp, rolled up at the given interval.
func Anchor(first timing.TimeStamp, interval timing.Duration) timing.TimeStamp {
	return first.AlignDown(interval)
}
