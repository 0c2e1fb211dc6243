package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/obsidianstack/siemens9330-exporter/exporter/internal/collector"
	"github.com/obsidianstack/siemens9330-exporter/exporter/internal/compute"
)

// StatusSource is what the handler reads scrape health from.
type StatusSource interface {
	Status() compute.Status
}

// Handler is the HTTP handler for all /api/v1/* endpoints.
type Handler struct {
	status    StatusSource
	pipelines []collector.Pipeline
	mux       *http.ServeMux
}

// New creates a Handler reading health from status and describing pipelines,
// and registers all routes.
func New(status StatusSource, pipelines []collector.Pipeline) http.Handler {
	h := &Handler{status: status, pipelines: pipelines, mux: http.NewServeMux()}

	h.mux.HandleFunc("/api/v1/health", h.health)
	h.mux.HandleFunc("/api/v1/schema", h.schema)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// health returns GET /api/v1/health — state of the most recent scrapes.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	st := h.status.Status()
	resp := HealthResponse{
		State:               st.State,
		UptimePct:           st.UptimePct,
		ConsecutiveFailures: st.ConsecutiveFailures,
		LastError:           st.LastError,
		LastScrape:          formatTime(st.LastScrape),
		LastSuccess:         formatTime(st.LastSuccess),
		LastDurationMs:      float64(st.LastDuration) / float64(time.Millisecond),
		SampleCount:         st.SampleCount,
		CounterRegressions:  st.CounterRegressions,
	}
	jsonResp(w, http.StatusOK, resp)
}

// schema returns GET /api/v1/schema — the compiled-in page layout, one row
// per published series, for comparing against what a meter actually serves.
func (h *Handler) schema(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	pages := make([]PageSchema, 0, len(h.pipelines))
	for _, p := range h.pipelines {
		ps := PageSchema{
			Page:     string(p.Page),
			Path:     p.Page.Path(),
			Required: make(map[string]int),
			Series:   make([]SeriesSpec, 0, len(p.Schema.Specs)),
		}
		for c, n := range p.Schema.Required() {
			ps.Required[string(c)] = n
		}
		for _, s := range p.Schema.Specs {
			ps.Series = append(ps.Series, SeriesSpec{
				Metric: s.Name,
				Name:   s.Label,
				Kind:   s.Kind.String(),
				Class:  string(s.Class),
				Index:  s.Index,
			})
		}
		pages = append(pages, ps)
	}
	jsonResp(w, http.StatusOK, SchemaResponse{Pages: pages})
}

// --- helpers ----------------------------------------------------------------

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}

// formatTime renders t as RFC3339, or "" for the zero time.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
