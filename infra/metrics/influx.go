package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/kilianp07/flexicity/core/events"
	"github.com/kilianp07/flexicity/core/logger"
	coremetrics "github.com/kilianp07/flexicity/core/metrics"
	"github.com/kilianp07/flexicity/core/model"
)

// InfluxConfig holds the connection settings of an InfluxSink.
type InfluxConfig struct {
	URL     string        `json:"url"`
	Token   string        `json:"token"`
	Org     string        `json:"org"`
	Bucket  string        `json:"bucket"`
	Timeout time.Duration `json:"timeout"`
}

func (c InfluxConfig) timeout() time.Duration {
	if c.Timeout <= 0 {
		return 5 * time.Second
	}
	return c.Timeout
}

// InfluxSink writes hourly curves, schedule stats and optimizer runs to an
// InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	timeout  time.Duration
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg InfluxConfig, log logger.Logger) *InfluxSink {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: cfg.timeout()}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		timeout:  cfg.timeout(),
		log:      logger.OrNop(log),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg InfluxConfig, log logger.Logger) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg, log)
	ctx, cancel := context.WithTimeout(context.Background(), sink.timeout)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordSchedule writes one schedule_hour point per hour and a
// schedule_stats point in a single request.
func (s *InfluxSink) RecordSchedule(ev events.ScheduleEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.writeAPI.WritePoint(ctx, SchedulePoints(ev)...)
}

// RecordOptimization writes an optimization_run point.
func (s *InfluxSink) RecordOptimization(ev events.OptimizationEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.writeAPI.WritePoint(ctx, OptimizationPoint(ev, time.Now()))
}

// Close releases the client.
func (s *InfluxSink) Close() error {
	s.client.Close()
	return nil
}

// SchedulePoints converts a schedule event into line-protocol points.
func SchedulePoints(ev events.ScheduleEvent) []*write.Point {
	pts := make([]*write.Point, 0, model.NumHours+1)
	for h := 0; h < model.NumHours; h++ {
		pts = append(pts, write.NewPointWithMeasurement("schedule_hour").
			AddTag("scenario", ev.Scenario).
			AddTag("hour", strconv.Itoa(h)).
			AddField("before_kw", round3(ev.Before[h])).
			AddField("after_kw", round3(ev.After[h])).
			SetTime(ev.Time))
	}
	st := ev.Stats
	pts = append(pts, write.NewPointWithMeasurement("schedule_stats").
		AddTag("scenario", ev.Scenario).
		AddField("flex_participation", round3(ev.FlexParticipation)).
		AddField("price_weight", round3(ev.PriceWeight)).
		AddField("peak_before", round3(st.PeakBefore)).
		AddField("peak_after", round3(st.PeakAfter)).
		AddField("cost_before", round3(st.CostBefore)).
		AddField("cost_after", round3(st.CostAfter)).
		AddField("co2_before", round3(st.CO2Before)).
		AddField("co2_after", round3(st.CO2After)).
		SetTime(ev.Time))
	return pts
}

// OptimizationPoint converts an optimization event into a point stamped at.
func OptimizationPoint(ev events.OptimizationEvent, at time.Time) *write.Point {
	return write.NewPointWithMeasurement("optimization_run").
		AddTag("policy", ev.Policy).
		AddTag("scenario", ev.Scenario).
		AddTag("feasible", strconv.FormatBool(!ev.Infeasible)).
		AddField("flex_pct", ev.FlexPct).
		AddField("price_pct", ev.PricePct).
		AddField("evaluations", ev.Evaluations).
		AddField("duration_ms", round3(ev.Duration.Seconds()*1000)).
		AddField("peak_after", round3(ev.Stats.PeakAfter)).
		AddField("cost_after", round3(ev.Stats.CostAfter)).
		AddField("co2_after", round3(ev.Stats.CO2After)).
		SetTime(at)
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
