package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kilianp07/flexicity/core/events"
	"github.com/kilianp07/flexicity/core/stats"
)

func scheduleEvent() events.ScheduleEvent {
	return events.ScheduleEvent{
		Scenario:          "Baseline",
		FlexParticipation: 1,
		PriceWeight:       0.5,
		Stats: stats.Stats{
			PeakBefore: 120, PeakAfter: 90,
			CostBefore: 40, CostAfter: 31.5,
			CO2Before: 9, CO2After: 8,
		},
		Time: time.Unix(1700000000, 0),
	}
}

func TestPromSink_RecordSchedule(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	if err := sink.RecordSchedule(scheduleEvent()); err != nil {
		t.Fatalf("record: %v", err)
	}

	expected := `
# HELP flexicity_peak_kw Peak of the latest load curve
# TYPE flexicity_peak_kw gauge
flexicity_peak_kw{curve="after",scenario="Baseline"} 90
flexicity_peak_kw{curve="before",scenario="Baseline"} 120
`
	if err := testutil.CollectAndCompare(sink.peak, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
	if v := testutil.ToFloat64(sink.recomputes.WithLabelValues("Baseline")); v != 1 {
		t.Errorf("expected 1 recompute got %v", v)
	}
	if v := testutil.ToFloat64(sink.cost.WithLabelValues("Baseline", "after")); v != 31.5 {
		t.Errorf("unexpected cost %v", v)
	}
	if v := testutil.ToFloat64(sink.parameters.WithLabelValues("price_weight")); v != 0.5 {
		t.Errorf("unexpected price weight %v", v)
	}
}

func TestPromSink_RecordOptimization(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	_ = sink.RecordOptimization(events.OptimizationEvent{Policy: "min-peak", Duration: 20 * time.Millisecond})
	_ = sink.RecordOptimization(events.OptimizationEvent{Policy: "ideal-peak-constrained", Infeasible: true})

	expected := `
# HELP flexicity_optimizations_total Number of parameter searches
# TYPE flexicity_optimizations_total counter
flexicity_optimizations_total{feasible="false",policy="ideal-peak-constrained"} 1
flexicity_optimizations_total{feasible="true",policy="min-peak"} 1
`
	if err := testutil.CollectAndCompare(sink.optimizations, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
	if c := testutil.CollectAndCount(sink.duration); c != 2 {
		t.Errorf("expected 2 histograms got %d", c)
	}
}

// A second sink on the same registry reuses the collectors.
func TestPromSink_Reregister(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	b, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	_ = a.RecordSchedule(scheduleEvent())
	_ = b.RecordSchedule(scheduleEvent())
	if v := testutil.ToFloat64(a.recomputes.WithLabelValues("Baseline")); v != 2 {
		t.Fatalf("expected shared counter at 2 got %v", v)
	}
}

func TestHandlerServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	_ = sink.RecordSchedule(scheduleEvent())

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()
	resp, err := srv.Client().Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `flexicity_recomputes_total{scenario="Baseline"} 1`) {
		t.Fatalf("metric missing from body:\n%s", body)
	}
}
