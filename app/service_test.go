package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/flexicity/config"
	"github.com/kilianp07/flexicity/core/factory"
	"github.com/kilianp07/flexicity/core/model"
	"github.com/kilianp07/flexicity/core/optimizer"
	"github.com/kilianp07/flexicity/infra/metrics"
	"github.com/kilianp07/flexicity/infra/mqtt"
)

func withMockPublisher(t *testing.T) *mqtt.MockPublisher {
	t.Helper()
	pub := mqtt.NewMockPublisher()
	old := newPublisher
	newPublisher = func(mqtt.Config) (mqtt.Publisher, error) { return pub, nil }
	t.Cleanup(func() { newPublisher = old })
	return pub
}

func TestNewDefaults(t *testing.T) {
	svc, err := New(nil)
	require.NoError(t, err)
	defer svc.Close()

	assert.Equal(t, "Baseline", svc.Engine.Scenario().Name)
	assert.Len(t, svc.Engine.ListAssets(), 54)
	assert.Equal(t, 1.0, svc.Engine.FlexParticipation())
	assert.Equal(t, 0.5, svc.Engine.PriceWeight())
}

func TestNewAppliesConfiguredScenario(t *testing.T) {
	cfg := config.Default()
	cfg.Simulation.Scenario = "Winter weekday"
	cfg.Simulation.FlexPct = 40
	svc, err := New(cfg)
	require.NoError(t, err)
	defer svc.Close()

	assert.Equal(t, "Winter weekday", svc.Engine.Scenario().Name)
	assert.InDelta(t, 0.4, svc.Engine.FlexParticipation(), 1e-12)
}

func TestNewUnknownScenario(t *testing.T) {
	cfg := config.Default()
	cfg.Simulation.Scenario = "Summer"
	_, err := New(cfg)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestNewLoadsCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assets.yaml")
	data := "assets:\n  - owner: Depot\n    appliance: Bus chargers (EV)\n    power_kw: 30\n    duration_h: 2\n    start_hour: 22\n    end_hour: 6\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	cfg := config.Default()
	cfg.Simulation.CatalogPath = path
	svc, err := New(cfg)
	require.NoError(t, err)
	defer svc.Close()

	assets := svc.Engine.ListAssets()
	require.Len(t, assets, 1)
	assert.Equal(t, "Depot", assets[0].Owner)
	assert.Len(t, assets[0].AfterHours, 2)
}

func TestNewMissingFiles(t *testing.T) {
	cfg := config.Default()
	cfg.Simulation.CatalogPath = filepath.Join(t.TempDir(), "none.yaml")
	_, err := New(cfg)
	assert.Error(t, err)

	cfg = config.Default()
	cfg.Simulation.ScenariosPath = filepath.Join(t.TempDir(), "none.yaml")
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestUnknownSinkType(t *testing.T) {
	cfg := config.Default()
	cfg.Metrics.Sinks = []factory.ModuleConfig{{Type: "carrier-pigeon"}}
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestCloseFlushesEventsToMQTT(t *testing.T) {
	pub := withMockPublisher(t)
	cfg := config.Default()
	cfg.MQTT.Broker = "tcp://localhost:1883"
	svc, err := New(cfg)
	require.NoError(t, err)

	res, err := svc.Optimize(context.Background(), optimizer.MinPeak)
	require.NoError(t, err)
	require.False(t, res.Infeasible)
	require.NoError(t, svc.Close())
	require.NoError(t, svc.Close())

	var schedules, searches int
	for _, m := range pub.Sent() {
		switch m.Topic {
		case metrics.TopicSchedule:
			schedules++
		case metrics.TopicOptimization:
			searches++
			var report map[string]any
			require.NoError(t, json.Unmarshal(m.Payload, &report))
			assert.Equal(t, "min-peak", report["policy"])
		}
	}
	// one recompute at start, one when the winner is applied
	assert.Equal(t, 2, schedules)
	assert.Equal(t, 1, searches)
	assert.True(t, pub.Closed)
}

func TestListedMQTTSinkIsNotDuplicated(t *testing.T) {
	cfg := config.Default()
	cfg.MQTT.Broker = "tcp://localhost:1883"
	cfg.Metrics.Sinks = []factory.ModuleConfig{{Type: "nop"}, {Type: "mqtt"}}
	assert.True(t, hasSink(cfg.Metrics.Sinks, "mqtt"))
	assert.False(t, hasSink(cfg.Metrics.Sinks, "influx"))
}

func TestServeMetricsWithoutAddress(t *testing.T) {
	svc, err := New(config.Default())
	require.NoError(t, err)
	defer svc.Close()
	assert.NoError(t, svc.ServeMetrics(context.Background()))
}
