// Package engine builds the naive and flexibility-aware load curves of a
// portfolio and keeps them current as assets, scenario and parameters
// change.
//
// An Engine is not safe for concurrent use. The optimizer parallelises over
// independent clones instead.
package engine

import (
	"fmt"
	"time"

	"github.com/kilianp07/flexicity/core/catalog"
	"github.com/kilianp07/flexicity/core/events"
	"github.com/kilianp07/flexicity/core/logger"
	"github.com/kilianp07/flexicity/core/model"
	"github.com/kilianp07/flexicity/core/scenario"
	"github.com/kilianp07/flexicity/core/stats"
	"github.com/kilianp07/flexicity/internal/eventbus"
)

// Default parameters as fractions.
const (
	DefaultFlexParticipation = 1.0
	DefaultPriceWeight       = 0.5
)

// Engine owns the catalog, the active scenario and the derived curves.
type Engine struct {
	catalog   *catalog.Catalog
	scenarios *scenario.Table
	scenario  model.Scenario

	flex        float64
	priceWeight float64

	before     model.Curve
	after      model.Curve
	costBefore float64 // cents
	costAfter  float64 // cents
	schedules  map[model.AssetID]schedule

	bus eventbus.Publisher
	log logger.Logger
	now func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for recompute traces.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) { e.log = logger.OrNop(l) }
}

// WithEventBus publishes a ScheduleEvent after every recompute.
func WithEventBus(p eventbus.Publisher) Option {
	return func(e *Engine) { e.bus = p }
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithParameters sets the initial participation and price weight in percent.
func WithParameters(flexPct, pricePct float64) Option {
	return func(e *Engine) {
		e.flex = clampPct(flexPct)
		e.priceWeight = clampPct(pricePct)
	}
}

// New builds an engine over cat and table. A nil catalog starts empty and a
// nil table uses the built-in scenarios. The Baseline scenario is applied
// when present, otherwise the table's first one.
func New(cat *catalog.Catalog, table *scenario.Table, opts ...Option) *Engine {
	if cat == nil {
		cat = catalog.New()
	}
	if table == nil {
		table = scenario.Default()
	}
	e := &Engine{
		catalog:     cat,
		scenarios:   table,
		flex:        DefaultFlexParticipation,
		priceWeight: DefaultPriceWeight,
		log:         logger.NopLogger{},
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if sc, err := table.Get(scenario.Baseline); err == nil {
		e.scenario = sc
	} else {
		e.scenario = table.First()
	}
	e.catalog.Rescale(e.scenario.PowerFactor)
	e.Recompute()
	return e
}

// ListAssets returns asset snapshots in catalog order, including the hours
// of the latest recompute.
func (e *Engine) ListAssets() []model.Asset {
	assets := e.catalog.List()
	for i := range assets {
		s := e.schedules[assets[i].ID]
		assets[i].BeforeHours = append([]int{}, s.before...)
		assets[i].AfterHours = append([]int{}, s.after...)
	}
	return assets
}

// AddAsset validates spec, scales it by the active scenario and recomputes.
func (e *Engine) AddAsset(spec model.AssetSpec) (model.AssetID, error) {
	id, err := e.catalog.Add(spec)
	if err != nil {
		return "", err
	}
	e.rescaleAndRecompute()
	return id, nil
}

// UpdateAsset replaces an asset definition and recomputes.
func (e *Engine) UpdateAsset(id model.AssetID, spec model.AssetSpec) error {
	if err := e.catalog.Update(id, spec); err != nil {
		return err
	}
	e.rescaleAndRecompute()
	return nil
}

// RemoveAsset deletes an asset and recomputes.
func (e *Engine) RemoveAsset(id model.AssetID) error {
	if err := e.catalog.Remove(id); err != nil {
		return err
	}
	e.Recompute()
	return nil
}

// ToggleEnabled flips an asset's enabled flag and recomputes.
func (e *Engine) ToggleEnabled(id model.AssetID) error {
	if err := e.catalog.Toggle(id); err != nil {
		return err
	}
	e.Recompute()
	return nil
}

// ApplyScenario switches the active scenario. Every asset power is reset to
// its base power times the scenario factors.
func (e *Engine) ApplyScenario(name string) error {
	sc, err := e.scenarios.Get(name)
	if err != nil {
		return fmt.Errorf("apply scenario: %w", err)
	}
	e.scenario = sc
	e.rescaleAndRecompute()
	return nil
}

// ListScenarios returns the scenario names in table order.
func (e *Engine) ListScenarios() []string { return e.scenarios.Names() }

// Scenario returns the active scenario.
func (e *Engine) Scenario() model.Scenario { return e.scenario }

// SetFlexParticipation sets p from a percentage clamped to [0,100].
func (e *Engine) SetFlexParticipation(pct float64) {
	e.flex = clampPct(pct)
	e.Recompute()
}

// SetPriceWeight sets w from a percentage clamped to [0,100].
func (e *Engine) SetPriceWeight(pct float64) {
	e.priceWeight = clampPct(pct)
	e.Recompute()
}

// SetParameters sets both parameters with a single recompute.
func (e *Engine) SetParameters(flexPct, pricePct float64) {
	e.flex = clampPct(flexPct)
	e.priceWeight = clampPct(pricePct)
	e.Recompute()
}

// FlexParticipation returns p as a fraction.
func (e *Engine) FlexParticipation() float64 { return e.flex }

// PriceWeight returns w as a fraction.
func (e *Engine) PriceWeight() float64 { return e.priceWeight }

// BeforeLoad returns the naive load curve.
func (e *Engine) BeforeLoad() model.Curve { return e.before }

// AfterLoad returns the flexibility-aware load curve.
func (e *Engine) AfterLoad() model.Curve { return e.after }

// Prices returns the price curve in cents/kWh.
func (e *Engine) Prices() model.Curve { return e.scenarios.Prices() }

// ComputeStats derives indicators from the latest recompute.
func (e *Engine) ComputeStats() stats.Stats {
	return stats.Compute(stats.Input{
		Before:          e.before,
		After:           e.after,
		CO2:             e.scenario.CO2Intensity,
		CostBeforeCents: e.costBefore,
		CostAfterCents:  e.costAfter,
	})
}

// Clone returns an independent engine sharing the read-only scenario table.
// The clone has no event bus and no logger.
func (e *Engine) Clone() *Engine {
	c := &Engine{
		catalog:     e.catalog.Clone(),
		scenarios:   e.scenarios,
		scenario:    e.scenario,
		flex:        e.flex,
		priceWeight: e.priceWeight,
		before:      e.before,
		after:       e.after,
		costBefore:  e.costBefore,
		costAfter:   e.costAfter,
		schedules:   make(map[model.AssetID]schedule, len(e.schedules)),
		log:         logger.NopLogger{},
		now:         e.now,
	}
	for id, s := range e.schedules {
		s.before = append([]int(nil), s.before...)
		s.after = append([]int(nil), s.after...)
		c.schedules[id] = s
	}
	return c
}

// Recompute rebuilds both curves, all schedules and both cost totals.
func (e *Engine) Recompute() {
	prices := e.scenarios.Prices()
	assets := e.catalog.List()
	schedules := make(map[model.AssetID]schedule, len(assets))

	before := e.scenario.BaseLoad
	costBefore := 0.0
	var enabled []model.Asset
	for _, a := range assets {
		if !a.Enabled {
			continue
		}
		hours := naiveHours(a)
		for _, h := range hours {
			before[h] += a.PowerKW
			costBefore += a.PowerKW * prices[h]
		}
		schedules[a.ID] = schedule{before: hours}
		enabled = append(enabled, a)
	}

	after := before
	for _, i := range placementOrder(enabled) {
		a := enabled[i]
		s := schedules[a.ID]
		if e.flex == 0 || a.PowerKW <= 0 || len(s.before) == 0 {
			s.after = append([]int(nil), s.before...)
			s.remaining = a.PowerKW
			schedules[a.ID] = s
			continue
		}
		s.participating = a.PowerKW * e.flex
		s.remaining = a.PowerKW * (1 - e.flex)
		for _, h := range s.before {
			after[h] -= s.participating
		}

		window := model.EffectiveWindow(a.StartHour, a.EndHour)
		duration := model.ClampDuration(a.DurationH, len(window))
		scores := scoreWindow(window, after, prices, e.priceWeight)
		if a.Variable {
			s.after = pickVariable(window, scores, duration)
		} else {
			s.after = pickBlock(window, scores, duration)
		}
		for _, h := range s.after {
			after[h] += s.participating
		}
		s.shifted = true
		schedules[a.ID] = s
	}

	costAfter := 0.0
	for _, a := range enabled {
		s := schedules[a.ID]
		if !s.shifted {
			for _, h := range s.before {
				costAfter += a.PowerKW * prices[h]
			}
			continue
		}
		costAfter += s.remaining*priceSum(prices, s.before) + s.participating*priceSum(prices, s.after)
	}

	e.before, e.after = before, after
	e.costBefore, e.costAfter = costBefore, costAfter
	e.schedules = schedules
	e.publish()
}

func (e *Engine) rescaleAndRecompute() {
	e.catalog.Rescale(e.scenario.PowerFactor)
	e.Recompute()
}

func (e *Engine) publish() {
	st := e.ComputeStats()
	e.log.Debugw("recompute", map[string]any{
		"scenario":     e.scenario.Name,
		"flex":         e.flex,
		"price_weight": e.priceWeight,
		"peak_before":  st.PeakBefore,
		"peak_after":   st.PeakAfter,
	})
	if e.bus == nil {
		return
	}
	e.bus.Publish(events.ScheduleEvent{
		Scenario:          e.scenario.Name,
		FlexParticipation: e.flex,
		PriceWeight:       e.priceWeight,
		Before:            e.before,
		After:             e.after,
		Stats:             st,
		Time:              e.now(),
	})
}

func clampPct(pct float64) float64 {
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 1
	}
	return pct / 100
}
