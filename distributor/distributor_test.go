package distributor

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"logs-distributor/config"
	"logs-distributor/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.FatalLevel)
	logger, _ := cfg.Build()
	return logger
}

func TestDistributor_StartStopLifecycle(t *testing.T) {
	cfgs := []config.AnalyzerConfig{{Name: "a1", URL: "http://unused", HealthURL: "http://unused", Weight: 1.0}}
	d := New(cfgs, testLogger())

	require.NoError(t, d.Start())
	assert.Error(t, d.Start()) // already running

	require.NoError(t, d.Stop())
	assert.Error(t, d.Stop()) // already stopped
}

func TestDistributor_SubmitPacketRejectsInvalid(t *testing.T) {
	cfgs := []config.AnalyzerConfig{{Name: "a1", URL: "http://unused", HealthURL: "http://unused", Weight: 1.0}}
	d := New(cfgs, testLogger())
	require.NoError(t, d.Start())
	defer d.Stop()

	err := d.SubmitPacket(models.LogPacket{ID: "p1"}) // missing agent_id and messages
	require.Error(t, err)

	var valErr *ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestDistributor_SubmitPacketRejectsWhenQueueFull(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfgs := []config.AnalyzerConfig{{Name: "a1", URL: server.URL, HealthURL: server.URL, Weight: 1.0}}
	d := New(cfgs, testLogger())
	require.NoError(t, d.Start())
	defer d.Stop()

	packet := func(id string) models.LogPacket {
		return models.LogPacket{ID: id, AgentID: "agent", Messages: []models.LogMessage{{Message: "hi"}}}
	}

	var rejected bool
	for i := 0; i < config.QueueBuffer+50; i++ {
		if err := d.SubmitPacket(packet("p")); err == ErrQueueFull {
			rejected = true
			break
		}
	}

	assert.True(t, rejected, "expected queue to fill and reject at least one submission")
}

func TestDistributor_StopDrainsQueueBeforeCancellingWorkers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfgs := []config.AnalyzerConfig{{Name: "a1", URL: server.URL, HealthURL: server.URL, Weight: 1.0}}
	d := New(cfgs, testLogger())
	require.NoError(t, d.Start())

	const submitted = 200
	for i := 0; i < submitted; i++ {
		err := d.SubmitPacket(models.LogPacket{
			ID:       "p",
			AgentID:  "agent",
			Messages: []models.LogMessage{{Message: "hi"}},
		})
		require.NoError(t, err)
	}

	// Stop immediately, before workers have had a chance to drain the
	// queue, so Stop's own drain logic accounts for every packet
	// instead of a head start from the test.
	require.NoError(t, d.Stop())

	stats := d.GetStats()
	assert.EqualValues(t, submitted, stats.TotalPacketsAccepted+stats.FailedSends,
		"every submitted packet must be accounted for as either a success or a failure after Stop drains")
}

func TestDistributor_StatsAndAnalyzersReflectConfiguration(t *testing.T) {
	cfgs := []config.AnalyzerConfig{
		{Name: "a1", URL: "http://unused1", HealthURL: "http://unused1", Weight: 0.6},
		{Name: "a2", URL: "http://unused2", HealthURL: "http://unused2", Weight: 0.4},
	}
	d := New(cfgs, testLogger())
	require.NoError(t, d.Start())
	defer d.Stop()

	analyzers := d.GetAnalyzers()
	assert.Len(t, analyzers, 2)

	stats := d.GetStats()
	assert.Zero(t, stats.TotalPacketsAccepted)
}
