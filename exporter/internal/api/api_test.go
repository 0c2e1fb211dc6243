package api_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/obsidianstack/siemens9330-exporter/exporter/internal/api"
	"github.com/obsidianstack/siemens9330-exporter/exporter/internal/collector"
	"github.com/obsidianstack/siemens9330-exporter/exporter/internal/compute"
	"github.com/obsidianstack/siemens9330-exporter/exporter/internal/schema"
)

// --- test helpers -----------------------------------------------------------

var baseTime = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func energy(v float64) []schema.Sample {
	return []schema.Sample{{Name: schema.MetricEnergy, Label: "total", Value: v, Kind: schema.Counter}}
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decode JSON: %v (body: %s)", err, rr.Body.String())
	}
}

// --- /api/v1/health ---------------------------------------------------------

func TestHealth_NoScrapeYet(t *testing.T) {
	h := api.New(compute.NewEngine(), nil)
	rr := get(t, h, "/api/v1/health")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var resp api.HealthResponse
	decode(t, rr, &resp)
	if resp.State != compute.StateUnknown {
		t.Errorf("state = %q, want unknown", resp.State)
	}
	if resp.LastScrape != "" || resp.LastSuccess != "" {
		t.Errorf("timestamps should be empty before first scrape: %+v", resp)
	}
}

func TestHealth_Up(t *testing.T) {
	e := compute.NewEngine()
	e.Observe(energy(100), nil, baseTime, baseTime.Add(1500*time.Millisecond))

	var resp api.HealthResponse
	decode(t, get(t, api.New(e, nil), "/api/v1/health"), &resp)

	if resp.State != compute.StateUp {
		t.Errorf("state = %q, want up", resp.State)
	}
	if resp.SampleCount != 1 {
		t.Errorf("sample_count = %d, want 1", resp.SampleCount)
	}
	if resp.LastDurationMs != 1500 {
		t.Errorf("last_duration_ms = %v, want 1500", resp.LastDurationMs)
	}
	if resp.LastSuccess != "2026-01-01T00:00:01Z" {
		t.Errorf("last_success = %q", resp.LastSuccess)
	}
	if resp.UptimePct != 100 {
		t.Errorf("uptime_pct = %v, want 100", resp.UptimePct)
	}
}

func TestHealth_DownWithRegressions(t *testing.T) {
	e := compute.NewEngine()
	e.Observe(energy(100), nil, baseTime, baseTime)
	e.Observe(energy(50), nil, baseTime.Add(time.Minute), baseTime.Add(time.Minute))
	e.Observe(nil, errors.New("fetch revenue: unexpected status 503"), baseTime.Add(2*time.Minute), baseTime.Add(2*time.Minute))

	var resp api.HealthResponse
	decode(t, get(t, api.New(e, nil), "/api/v1/health"), &resp)

	if resp.State != compute.StateDown {
		t.Errorf("state = %q, want down", resp.State)
	}
	if resp.ConsecutiveFailures != 1 {
		t.Errorf("consecutive_failures = %d, want 1", resp.ConsecutiveFailures)
	}
	if resp.LastError == "" {
		t.Error("last_error should be set")
	}
	if resp.CounterRegressions != 1 {
		t.Errorf("counter_regressions = %d, want 1", resp.CounterRegressions)
	}
}

// --- /api/v1/schema ---------------------------------------------------------

func TestSchema_ListsPipelines(t *testing.T) {
	h := api.New(compute.NewEngine(), collector.DefaultPipelines())

	var resp api.SchemaResponse
	decode(t, get(t, h, "/api/v1/schema"), &resp)

	if len(resp.Pages) != 3 {
		t.Fatalf("pages = %d, want 3", len(resp.Pages))
	}
	rt := resp.Pages[0]
	if rt.Page != "realtime" || rt.Path != "realtime01.html" {
		t.Errorf("first page = %s (%s)", rt.Page, rt.Path)
	}
	if rt.Required["percent"] != 3 || rt.Required["volts"] != 4 {
		t.Errorf("realtime required = %v", rt.Required)
	}
	if len(rt.Series) != 15 {
		t.Errorf("realtime series = %d, want 15", len(rt.Series))
	}

	pq := resp.Pages[1]
	if pq.Required["bare-number"] != 21 || len(pq.Series) != 21 {
		t.Errorf("power quality required=%v series=%d", pq.Required, len(pq.Series))
	}

	rev := resp.Pages[2]
	if len(rev.Series) != 1 || rev.Series[0].Kind != "counter" || rev.Series[0].Metric != schema.MetricEnergy {
		t.Errorf("revenue series = %+v", rev.Series)
	}
}

// --- method handling --------------------------------------------------------

func TestMethodNotAllowed(t *testing.T) {
	h := api.New(compute.NewEngine(), collector.DefaultPipelines())
	for _, path := range []string{"/api/v1/health", "/api/v1/schema"} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, path, nil))
		if rr.Code != http.StatusMethodNotAllowed {
			t.Errorf("POST %s: status %d, want 405", path, rr.Code)
		}
		var body map[string]string
		decode(t, rr, &body)
		if body["error"] == "" {
			t.Errorf("POST %s: missing error message", path)
		}
	}
}

func TestUnknownRoute(t *testing.T) {
	h := api.New(compute.NewEngine(), nil)
	if rr := get(t, h, "/api/v1/pipelines"); rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}
