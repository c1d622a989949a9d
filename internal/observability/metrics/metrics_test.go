package metrics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewEngineMetrics(reg)
	m.ObserveGeneration("sms", "confirmation", 0.0002)
	m.ObserveGeneration("sms", "no_show", 0.0004)
	m.ObserveGeneration("policy", "strict", 0.001)
	m.ObserveValidation("phone", true)
	m.ObserveValidation("email", false)

	snap := Snapshot(reg)
	assert.Equal(t, int64(2), snap.Generations["sms"])
	assert.Equal(t, int64(1), snap.Generations["policy"])
	assert.Equal(t, int64(1), snap.ValidationsValid)
	assert.Equal(t, int64(1), snap.ValidationsError)
	assert.Greater(t, snap.GenerationP95Ms, 0.0)
}

func TestOutreachMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewOutreachMetrics(reg)
	m.ObserveTestCall("accepted")
	m.ObserveTestCall("accepted")
	m.ObserveTestCall("upstream_error")
	m.ObserveTestEmail("stub", "sent")

	snap := Snapshot(reg)
	assert.Equal(t, int64(2), snap.TestCalls["accepted"])
	assert.Equal(t, int64(1), snap.TestCalls["upstream_error"])
	assert.Equal(t, int64(1), snap.TestEmails["sent"])
}

func TestMetricsNilSafe(t *testing.T) {
	var e *EngineMetrics
	e.ObserveGeneration("sms", "confirmation", 0.1)
	e.ObserveValidation("phone", true)

	var o *OutreachMetrics
	o.ObserveTestCall("accepted")
	o.ObserveTestEmail("ses", "failed")
}

func TestSnapshotEmptyRegistry(t *testing.T) {
	snap := Snapshot(prometheus.NewRegistry())
	require.NotNil(t, snap.Generations)
	assert.Empty(t, snap.Generations)
	assert.Zero(t, snap.GenerationP95Ms)
}

func TestHistogramQuantileInterpolates(t *testing.T) {
	uppers := []float64{0.1, 0.2}
	cum := map[float64]uint64{0.1: 50, 0.2: 100}
	assert.InDelta(t, 0.19, histogramQuantile(0.95, 100, uppers, cum), 1e-9)
	assert.InDelta(t, 0.1, histogramQuantile(0.5, 100, uppers, cum), 1e-9)
}

func TestStatsHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewEngineMetrics(reg).ObserveGeneration("card", "dental", 0.0001)
	NewOutreachMetrics(reg).ObserveTestCall("accepted")

	rr := httptest.NewRecorder()
	StatsHandler(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var snap UsageSnapshot
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&snap))
	assert.Equal(t, int64(1), snap.Generations["card"])
	assert.Equal(t, int64(1), snap.TestCalls["accepted"])
}
