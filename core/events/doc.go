// Package events defines the simulation events emitted on the event bus.
//
// Available event types:
//   - ScheduleEvent: the engine finished a recompute
//   - OptimizationEvent: a parameter search completed
package events
