package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/flexicity/core/factory"
	coremetrics "github.com/kilianp07/flexicity/core/metrics"
	"github.com/kilianp07/flexicity/infra/logger"
	"github.com/kilianp07/flexicity/infra/mqtt"
)

// newPublisher is swapped in tests to avoid a broker.
var newPublisher = func(cfg mqtt.Config) (mqtt.Publisher, error) {
	return mqtt.NewPahoPublisher(cfg, logger.New("mqtt-sink"))
}

// init registers built-in metrics sinks.
func init() {
	_ = coremetrics.RegisterMetricsSink("nop", func(map[string]any) (coremetrics.MetricsSink, error) {
		return coremetrics.NopSink{}, nil
	})

	_ = coremetrics.RegisterMetricsSink("prometheus", func(map[string]any) (coremetrics.MetricsSink, error) {
		return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
	})

	_ = coremetrics.RegisterMetricsSink("influx", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c InfluxConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewInfluxSinkWithFallback(c, logger.New("influx-sink")), nil
	})

	_ = coremetrics.RegisterMetricsSink("mqtt", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c mqtt.Config
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		pub, err := newPublisher(c)
		if err != nil {
			return nil, err
		}
		return NewMQTTSink(pub), nil
	})
}
