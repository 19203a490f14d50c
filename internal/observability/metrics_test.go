package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestMetricsRecordDashboardOutcomes(t *testing.T) {
	m := newMetrics()
	m.ObserveAggregate("admin_stats", "ok", 20*time.Millisecond)
	m.ObserveAggregate("admin_stats", "fallback", 3*time.Second)
	m.IncAggregateFallback("admin_stats")
	m.ObserveAPI("GET", "/api/dashboard/stats", "200", 5*time.Millisecond)
	m.ObserveAPI("GET", "/api/dashboard/stats", "502", 5*time.Millisecond)
	m.ObserveUpstream("/api/questions", "200", time.Millisecond)

	if got := m.aggregateFallback.Value("admin_stats"); got != 1 {
		t.Fatalf("fallback count: want=1 got=%v", got)
	}
	if got := m.aggregateLatency.Count("admin_stats", "fallback"); got != 1 {
		t.Fatalf("aggregate latency count: want=1 got=%d", got)
	}
	if got := m.apiErrors.Value("/api/dashboard/stats"); got != 1 {
		t.Fatalf("api errors: want=1 got=%v", got)
	}

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"# TYPE cq_dashboard_fallback_total counter",
		`cq_dashboard_fallback_total{view="admin_stats"} 1`,
		`cq_dashboard_aggregate_duration_seconds_bucket{view="admin_stats",outcome="ok",le="0.05"} 1`,
		`cq_api_requests_total{method="GET",route="/api/dashboard/stats",status="200"} 1`,
		`cq_upstream_requests_total{route="/api/questions",status="200"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("exposition missing %q\n%s", want, out)
		}
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/", "200", time.Millisecond)
	m.ObserveAggregate("x", "ok", time.Millisecond)
	m.IncAggregateFallback("x")
	m.ApiInflightInc()
	m.ApiInflightDec()
	if err := m.WritePrometheus(&bytes.Buffer{}); err != nil {
		t.Fatalf("nil WritePrometheus: %v", err)
	}
}

func TestInflightGauge(t *testing.T) {
	m := newMetrics()
	m.ApiInflightInc()
	m.ApiInflightInc()
	m.ApiInflightDec()
	if got := m.apiInflight.Value(); got != 1 {
		t.Fatalf("inflight: want=1 got=%v", got)
	}
}

func TestLabelEscaping(t *testing.T) {
	got := labelString([]string{"a", "b"}, []string{`x"y`, ""})
	if got != `{a="x\"y",b="unknown"}` {
		t.Fatalf("labelString: %s", got)
	}
	if got := withLe("", "1"); got != `{le="1"}` {
		t.Fatalf("withLe empty: %s", got)
	}
}
