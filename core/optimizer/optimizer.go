// Package optimizer searches the fixed 11x11 grid of participation and price
// weight for the point that best serves a policy.
package optimizer

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kilianp07/flexicity/core/engine"
	"github.com/kilianp07/flexicity/core/events"
	"github.com/kilianp07/flexicity/core/logger"
	"github.com/kilianp07/flexicity/internal/eventbus"
)

// Result describes the outcome of a search. When Infeasible is set Best is
// zero and the engine was left untouched.
type Result struct {
	Policy      Policy      `json:"policy"`
	Best        Evaluation  `json:"best"`
	Score       float64     `json:"score"`
	Balanced    *Evaluation `json:"balanced,omitempty"`
	Evaluations int         `json:"evaluations"`
	Feasible    int         `json:"feasible"`
	Infeasible  bool        `json:"infeasible"`
}

// Optimizer runs grid searches on engine clones.
type Optimizer struct {
	workers int
	log     logger.Logger
	bus     eventbus.Publisher
}

// Option configures an Optimizer.
type Option func(*Optimizer)

// WithWorkers bounds parallel evaluations. Values below 1 use GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *Optimizer) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(o *Optimizer) { o.log = logger.OrNop(l) }
}

// WithEventBus publishes an OptimizationEvent at the end of every search.
func WithEventBus(p eventbus.Publisher) Option {
	return func(o *Optimizer) { o.bus = p }
}

// New returns an Optimizer.
func New(opts ...Option) *Optimizer {
	o := &Optimizer{workers: runtime.GOMAXPROCS(0), log: logger.NopLogger{}}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run searches with default options.
func Run(e *engine.Engine, policy Policy) (Result, error) {
	return New().Run(context.Background(), e, policy)
}

// Run evaluates every grid point on an isolated clone of e, selects the
// winner for policy and sets e's parameters to it. Scan order and tie-break
// do not depend on the worker count.
func (o *Optimizer) Run(ctx context.Context, e *engine.Engine, policy Policy) (Result, error) {
	if _, err := ParsePolicy(string(policy)); err != nil {
		return Result{}, err
	}
	start := time.Now()
	evals, err := o.evaluate(ctx, e)
	if err != nil {
		return Result{}, fmt.Errorf("evaluate grid: %w", err)
	}

	res := selectBest(policy, evals)
	if !res.Infeasible {
		e.SetParameters(float64(res.Best.FlexPct), float64(res.Best.PricePct))
		o.log.Infof("policy %s selected %s (score %.4f)", policy, res.Best.Point, res.Score)
	} else {
		o.log.Warnf("policy %s found no feasible point among %d", policy, res.Evaluations)
	}

	if o.bus != nil {
		o.bus.Publish(events.OptimizationEvent{
			Policy:      string(policy),
			Scenario:    e.Scenario().Name,
			FlexPct:     res.Best.FlexPct,
			PricePct:    res.Best.PricePct,
			Infeasible:  res.Infeasible,
			Evaluations: res.Evaluations,
			Duration:    time.Since(start),
			Stats:       res.Best.Stats,
		})
	}
	return res, nil
}

func (o *Optimizer) evaluate(ctx context.Context, e *engine.Engine) ([]Evaluation, error) {
	grid := Grid()
	clones := make([]*engine.Engine, len(grid))
	for i := range grid {
		clones[i] = e.Clone()
	}

	evals := make([]Evaluation, len(grid))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, pt := range grid {
		i, pt := i, pt
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c := clones[i]
			c.SetParameters(float64(pt.FlexPct), float64(pt.PricePct))
			evals[i] = Evaluation{Point: pt, Stats: c.ComputeStats()}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return evals, nil
}

// selectBest reduces evaluations held in canonical grid order.
func selectBest(policy Policy, evals []Evaluation) Result {
	res := Result{Policy: policy, Evaluations: len(evals)}
	n := len(evals)
	pick := func(i int, score float64) {
		res.Best, res.Score = evals[i], score
	}

	switch policy {
	case MinPeak:
		i, s := argmin(n, func(i int) float64 { return peakOf(evals[i]) }, nil)
		pick(i, s)
	case MinCO2:
		i, s := argmin(n, func(i int) float64 { return co2Of(evals[i]) }, nil)
		pick(i, s)
		scores := balancedScores(evals)
		if b, _ := argmin(n, func(i int) float64 { return scores[i] }, nil); b >= 0 {
			bal := evals[b]
			res.Balanced = &bal
		}
	case IdealBalance:
		scores := idealScores(evals)
		i, s := argmin(n, func(i int) float64 { return scores[i] }, nil)
		pick(i, s)
	case IdealPeakConstrained:
		feasible := func(i int) bool { return savesMoneyAndCO2(evals[i]) }
		for i := range evals {
			if feasible(i) {
				res.Feasible++
			}
		}
		i, s := argmin(n, func(i int) float64 { return peakOf(evals[i]) }, feasible)
		if i < 0 {
			res.Infeasible = true
			return res
		}
		pick(i, s)
	}
	return res
}
