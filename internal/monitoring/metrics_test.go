package monitoring

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsScrape(t *testing.T) {
	m := NewMetrics()

	m.BytesIn.Add(128)
	m.BytesOut.Add(4096)
	m.ScansTotal.WithLabelValues("agent").Inc()
	m.NotificationsTotal.WithLabelValues("cli_agent_status").Inc()
	m.ResizesTotal.Inc()
	m.UpdateUptime()

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "termbridge_bytes_in_total 128")
	assert.Contains(t, body, "termbridge_bytes_out_total 4096")
	assert.Contains(t, body, `termbridge_scans_total{kind="agent"} 1`)
	assert.Contains(t, body, `termbridge_notifications_total{type="cli_agent_status"} 1`)
	assert.Contains(t, body, "termbridge_resizes_total 1")
}

func TestMetricsIsolatedRegistries(t *testing.T) {
	// Each collector owns its registry; two instances never collide.
	m1 := NewMetrics()
	m2 := NewMetrics()

	m1.BytesIn.Add(1)
	m2.BytesIn.Add(2)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	m2.Handler().ServeHTTP(rec, req)

	assert.Contains(t, rec.Body.String(), "termbridge_bytes_in_total 2")
}
