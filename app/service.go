// Package app wires configuration, the schedule engine, the optimizer and
// the metrics sinks into a runnable service.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/flexicity/api/simulation"
	"github.com/kilianp07/flexicity/config"
	"github.com/kilianp07/flexicity/core/catalog"
	"github.com/kilianp07/flexicity/core/engine"
	"github.com/kilianp07/flexicity/core/factory"
	coremetrics "github.com/kilianp07/flexicity/core/metrics"
	"github.com/kilianp07/flexicity/core/optimizer"
	"github.com/kilianp07/flexicity/core/scenario"
	"github.com/kilianp07/flexicity/infra/logger"
	"github.com/kilianp07/flexicity/infra/metrics"
	"github.com/kilianp07/flexicity/infra/mqtt"
	"github.com/kilianp07/flexicity/internal/eventbus"
)

// newPublisher is swapped in tests to avoid a broker.
var newPublisher = func(cfg mqtt.Config) (mqtt.Publisher, error) {
	return mqtt.NewPahoPublisher(cfg, logger.New("mqtt"))
}

// Service owns one engine instance and the observers of its events.
type Service struct {
	Engine    *engine.Engine
	Optimizer *optimizer.Optimizer

	cfg       *config.Config
	scenarios *scenario.Table
	bus       *eventbus.Bus
	sink      coremetrics.MetricsSink
	collector *sync.WaitGroup
	stop      context.CancelFunc
	log       logger.Logger
	closeOnce sync.Once
}

// New builds a Service from the configuration. The engine starts on the
// configured scenario and parameters.
func New(cfg *config.Config) (*Service, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return nil, err
	}
	logg := logger.New("service")

	cat, err := loadCatalog(cfg.Simulation.CatalogPath)
	if err != nil {
		return nil, err
	}
	table, err := loadScenarios(cfg.Simulation.ScenariosPath)
	if err != nil {
		return nil, err
	}
	sink, err := buildSink(cfg)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	bus := eventbus.New()
	ctx, stop := context.WithCancel(context.Background())
	collector := metrics.StartEventCollector(ctx, bus, sink, logger.New("collector"))

	eng := engine.New(cat, table,
		engine.WithLogger(logger.New("engine")),
		engine.WithEventBus(bus),
		engine.WithParameters(cfg.Simulation.FlexPct, cfg.Simulation.PricePct),
	)
	svc := &Service{
		Engine: eng,
		Optimizer: optimizer.New(
			optimizer.WithWorkers(cfg.Optimizer.Workers),
			optimizer.WithLogger(logger.New("optimizer")),
			optimizer.WithEventBus(bus),
		),
		cfg:       cfg,
		scenarios: table,
		bus:       bus,
		sink:      sink,
		collector: collector,
		stop:      stop,
		log:       logg,
	}
	if cfg.Simulation.Scenario != eng.Scenario().Name {
		if err := eng.ApplyScenario(cfg.Simulation.Scenario); err != nil {
			_ = svc.Close()
			return nil, err
		}
	}
	return svc, nil
}

// ServeMetrics exposes the default Prometheus registry on the configured
// address until ctx is canceled. It returns immediately when no address is
// configured.
func (s *Service) ServeMetrics(ctx context.Context) error {
	addr := s.cfg.Metrics.PrometheusAddr
	if addr == "" {
		s.log.Warnf("metrics.prometheus_addr is empty, not serving /metrics")
		return nil
	}
	return metrics.StartPromServer(ctx, addr, prometheus.DefaultGatherer, logger.New("prometheus"))
}

// ServeAPI serves the JSON API on the configured address until ctx is
// canceled. The API shares the service engine and optimizer.
func (s *Service) ServeAPI(ctx context.Context) error {
	srv := simulation.NewServer(s.Engine, s.Optimizer, s.cfg.API.Token, logger.New("api"))
	return simulation.ListenAndServe(ctx, s.cfg.API.Addr, srv.Handler(), logger.New("api"))
}

// Config returns the configuration the service was built from.
func (s *Service) Config() *config.Config { return s.cfg }

// Scenarios returns the scenario table the engine was built over.
func (s *Service) Scenarios() *scenario.Table { return s.scenarios }

// Optimize runs the search with policy on the service engine.
func (s *Service) Optimize(ctx context.Context, policy optimizer.Policy) (optimizer.Result, error) {
	return s.Optimizer.Run(ctx, s.Engine, policy)
}

// Close flushes pending events to the sinks and releases them.
func (s *Service) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.bus.Close()
		s.collector.Wait()
		s.stop()
		if c, ok := s.sink.(io.Closer); ok {
			err = c.Close()
		}
	})
	return err
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Seeded(), nil
	}
	specs, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	cat := catalog.New()
	cat.Import(specs)
	return cat, nil
}

func loadScenarios(path string) (*scenario.Table, error) {
	if path == "" {
		return scenario.Default(), nil
	}
	t, err := scenario.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenarios: %w", err)
	}
	return t, nil
}

// buildSink creates the configured sinks. A broker in the mqtt section adds
// a report publisher unless an mqtt sink is already listed.
func buildSink(cfg *config.Config) (coremetrics.MetricsSink, error) {
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, err
	}
	if cfg.MQTT.Broker == "" || hasSink(cfg.Metrics.Sinks, "mqtt") {
		return sink, nil
	}
	pub, err := newPublisher(cfg.MQTT)
	if err != nil {
		var errs []error
		errs = append(errs, err)
		if c, ok := sink.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
		return nil, errors.Join(errs...)
	}
	mq := metrics.NewMQTTSink(pub)
	if _, ok := sink.(coremetrics.NopSink); ok {
		return mq, nil
	}
	return coremetrics.NewMultiSink(sink, mq), nil
}

func hasSink(cfgs []factory.ModuleConfig, name string) bool {
	for _, c := range cfgs {
		if c.Type == name {
			return true
		}
	}
	return false
}
