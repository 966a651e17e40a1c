// Package metrics defines the sinks that record simulation outcomes. The
// engine publishes schedule events and the optimizer publishes
// optimization events on the event bus; a collector forwards them to a
// sink. Sinks like PromSink and InfluxSink live in infra/metrics and can be
// combined with NewMultiSink. The factory helpers return a MultiSink
// automatically when multiple sinks are configured.
package metrics
