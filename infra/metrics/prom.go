package metrics

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/flexicity/core/events"
	coremetrics "github.com/kilianp07/flexicity/core/metrics"
)

// PromSink records simulation outcomes in Prometheus metrics.
type PromSink struct {
	recomputes    *prometheus.CounterVec
	peak          *prometheus.GaugeVec
	cost          *prometheus.GaugeVec
	co2           *prometheus.GaugeVec
	parameters    *prometheus.GaugeVec
	optimizations *prometheus.CounterVec
	duration      *prometheus.HistogramVec
}

// NewPromSink registers metrics on the default Prometheus registerer.
// The HTTP endpoint is started separately with StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer. Collectors
// already registered by an earlier sink are reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{}
	var err error
	if s.recomputes, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "flexicity_recomputes_total",
		Help: "Number of schedule recomputes",
	}, []string{"scenario"})); err != nil {
		return nil, err
	}
	if s.peak, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "flexicity_peak_kw",
		Help: "Peak of the latest load curve",
	}, []string{"scenario", "curve"})); err != nil {
		return nil, err
	}
	if s.cost, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "flexicity_cost_eur",
		Help: "Daily cost of the flexible loads",
	}, []string{"scenario", "curve"})); err != nil {
		return nil, err
	}
	if s.co2, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "flexicity_co2_tonnes",
		Help: "Daily emissions of the load curve",
	}, []string{"scenario", "curve"})); err != nil {
		return nil, err
	}
	if s.parameters, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "flexicity_parameter_ratio",
		Help: "Current flex participation and price weight",
	}, []string{"parameter"})); err != nil {
		return nil, err
	}
	if s.optimizations, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "flexicity_optimizations_total",
		Help: "Number of parameter searches",
	}, []string{"policy", "feasible"})); err != nil {
		return nil, err
	}
	if s.duration, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "flexicity_optimization_duration_seconds",
		Help:    "Wall time of a parameter search",
		Buckets: prometheus.DefBuckets,
	}, []string{"policy"})); err != nil {
		return nil, err
	}
	return s, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return c, err
		}
		existing, ok := are.ExistingCollector.(C)
		if !ok {
			return c, fmt.Errorf("collector registered with another type: %w", err)
		}
		return existing, nil
	}
	return c, nil
}

// RecordSchedule updates curve gauges for the event's scenario.
func (s *PromSink) RecordSchedule(ev events.ScheduleEvent) error {
	st := ev.Stats
	s.recomputes.WithLabelValues(ev.Scenario).Inc()
	s.peak.WithLabelValues(ev.Scenario, "before").Set(st.PeakBefore)
	s.peak.WithLabelValues(ev.Scenario, "after").Set(st.PeakAfter)
	s.cost.WithLabelValues(ev.Scenario, "before").Set(st.CostBefore)
	s.cost.WithLabelValues(ev.Scenario, "after").Set(st.CostAfter)
	s.co2.WithLabelValues(ev.Scenario, "before").Set(st.CO2Before)
	s.co2.WithLabelValues(ev.Scenario, "after").Set(st.CO2After)
	s.parameters.WithLabelValues("flex_participation").Set(ev.FlexParticipation)
	s.parameters.WithLabelValues("price_weight").Set(ev.PriceWeight)
	return nil
}

// RecordOptimization counts the search and observes its duration.
func (s *PromSink) RecordOptimization(ev events.OptimizationEvent) error {
	s.optimizations.WithLabelValues(ev.Policy, strconv.FormatBool(!ev.Infeasible)).Inc()
	s.duration.WithLabelValues(ev.Policy).Observe(ev.Duration.Seconds())
	return nil
}

var (
	_ coremetrics.MetricsSink          = (*PromSink)(nil)
	_ coremetrics.OptimizationRecorder = (*PromSink)(nil)
)
