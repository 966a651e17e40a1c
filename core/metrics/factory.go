package metrics

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/kilianp07/flexicity/core/factory"
)

// ErrUnknownSink is returned when a configured sink type has no factory.
var ErrUnknownSink = errors.New("unknown metrics sink")

var sinkRegistry = factory.NewRegistry[MetricsSink]()

// RegisterMetricsSink adds a metrics sink factory identified by name.
func RegisterMetricsSink(name string, f factory.Factory[MetricsSink]) error {
	return sinkRegistry.Register(name, f)
}

// SinkTypes lists the registered sink names.
func SinkTypes() []string { return sinkRegistry.Names() }

// NewMetricsSink builds every configured sink in order. No sinks yields a
// NopSink and several are combined in a MultiSink. When one sink fails the
// ones already built are closed.
func NewMetricsSink(cfgs []factory.ModuleConfig) (MetricsSink, error) {
	if len(cfgs) == 0 {
		return NopSink{}, nil
	}
	known := SinkTypes()
	sinks := make([]MetricsSink, 0, len(cfgs))
	for i, c := range cfgs {
		if !slices.Contains(known, c.Type) {
			closeAll(sinks)
			return nil, fmt.Errorf("metrics.sinks[%d]: %w %q (available: %s)",
				i, ErrUnknownSink, c.Type, strings.Join(known, ", "))
		}
		s, err := sinkRegistry.Create(c)
		if err != nil {
			closeAll(sinks)
			return nil, fmt.Errorf("metrics.sinks[%d] %s: %w", i, c.Type, err)
		}
		sinks = append(sinks, s)
	}
	if len(sinks) == 1 {
		return sinks[0], nil
	}
	return NewMultiSink(sinks...), nil
}

func closeAll(sinks []MetricsSink) {
	for _, s := range sinks {
		if c, ok := s.(io.Closer); ok {
			_ = c.Close()
		}
	}
}
