package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCounterAndGauge(t *testing.T) {
	reg := New()
	c := reg.Counter("fleetly_queries_total", "Total queries")
	c.Inc()
	c.Add(2)
	if c.Value() != 3 {
		t.Errorf("counter = %d", c.Value())
	}
	if reg.Counter("fleetly_queries_total", "") != c {
		t.Error("same name must return the same counter")
	}

	g := reg.Gauge("fleetly_catalog_vehicles", "Catalog size")
	g.Set(50)
	g.Inc()
	g.Dec()
	if g.Value() != 50 {
		t.Errorf("gauge = %d", g.Value())
	}
}

func TestHistogramBuckets(t *testing.T) {
	reg := New()
	h := reg.Histogram("fleetly_query_duration_seconds", "Latency", []float64{0.1, 1, 10})
	h.Observe(0.05)
	h.Observe(0.5)
	h.Observe(100) // above all buckets, lands only in +Inf

	out := reg.Render()
	for _, want := range []string{
		`fleetly_query_duration_seconds_bucket{le="0.1"} 1`,
		`fleetly_query_duration_seconds_bucket{le="1"} 2`,
		`fleetly_query_duration_seconds_bucket{le="10"} 2`,
		`fleetly_query_duration_seconds_bucket{le="+Inf"} 3`,
		`fleetly_query_duration_seconds_count 3`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestLabeledSeries(t *testing.T) {
	reg := New()
	reg.Counter(WithLabels("fleetly_queries_by_operation", "operation", "FIND_VEHICLE"), "By operation").Inc()
	reg.Counter(WithLabels("fleetly_queries_by_operation", "operation", "HELP"), "").Add(2)

	out := reg.Render()
	if strings.Count(out, "# TYPE fleetly_queries_by_operation counter") != 1 {
		t.Errorf("base name must render one TYPE line:\n%s", out)
	}
	for _, want := range []string{
		`fleetly_queries_by_operation{operation="FIND_VEHICLE"} 1`,
		`fleetly_queries_by_operation{operation="HELP"} 2`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestWithLabels(t *testing.T) {
	if got := WithLabels("m", "k", "v", "k2", "v2"); got != `m{k="v",k2="v2"}` {
		t.Errorf("got %q", got)
	}
	if got := WithLabels("m", "odd"); got != "m" {
		t.Errorf("odd label pairs must be ignored, got %q", got)
	}
}

func TestHandler(t *testing.T) {
	reg := New()
	reg.Counter("fleetly_up", "").Inc()

	rec := httptest.NewRecorder()
	reg.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 200 || !strings.Contains(rec.Body.String(), "fleetly_up 1") {
		t.Errorf("response %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("content type = %q", ct)
	}
}
