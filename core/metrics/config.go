package metrics

import (
	"fmt"

	"github.com/kilianp07/flexicity/core/factory"
)

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks" koanf:"sinks"`
	// PrometheusAddr is the listen address of the /metrics endpoint; empty
	// disables it.
	PrometheusAddr string `json:"prometheus_addr" koanf:"prometheus_addr"`
}

// SetDefaults leaves an empty sink list, which yields a NopSink.
func (c *Config) SetDefaults() {}

// Validate rejects sink entries without a type.
func (c *Config) Validate() error {
	for i, s := range c.Sinks {
		if s.Type == "" {
			return fmt.Errorf("metrics.sinks[%d]: type is required", i)
		}
	}
	return nil
}
