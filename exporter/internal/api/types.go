package api

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	State               string  `json:"state"` // unknown | up | down
	UptimePct           float64 `json:"uptime_pct"`
	ConsecutiveFailures int     `json:"consecutive_failures"`
	LastError           string  `json:"last_error,omitempty"`
	LastScrape          string  `json:"last_scrape,omitempty"`  // RFC3339
	LastSuccess         string  `json:"last_success,omitempty"` // RFC3339
	LastDurationMs      float64 `json:"last_duration_ms"`
	SampleCount         int     `json:"sample_count"`
	CounterRegressions  int     `json:"counter_regressions"`
}

// SchemaResponse is the payload for GET /api/v1/schema.
type SchemaResponse struct {
	Pages []PageSchema `json:"pages"`
}

// PageSchema describes how one page is read.
type PageSchema struct {
	Page     string         `json:"page"`
	Path     string         `json:"path"`
	Required map[string]int `json:"required"` // class → minimum token count
	Series   []SeriesSpec   `json:"series"`
}

// SeriesSpec is one published series and the token it comes from.
type SeriesSpec struct {
	Metric string `json:"metric"`
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Class  string `json:"class"`
	Index  int    `json:"index"`
}

type errorResponse struct {
	Error string `json:"error"`
}
