package compute

import (
	"log/slog"
	"sync"
	"time"

	"github.com/obsidianstack/siemens9330-exporter/exporter/internal/schema"
)

// uptimeWindow is the number of recent scrape outcomes tracked for uptime %.
const uptimeWindow = 20

// Scrape states reported by Status.
const (
	StateUnknown = "unknown"
	StateUp      = "up"
	StateDown    = "down"
)

// Status is a point-in-time view of recent scrape health.
type Status struct {
	State               string
	UptimePct           float64
	ConsecutiveFailures int
	LastError           string // empty after a successful scrape
	LastScrape          time.Time
	LastSuccess         time.Time
	LastDuration        time.Duration
	SampleCount         int // samples published by the last successful scrape
	CounterRegressions  int // counter samples seen going backwards, lifetime
}

// Regression is a counter sample that came in lower than the previous
// successful scrape reported.
type Regression struct {
	Name     string
	Label    string
	Previous float64
	Current  float64
}

// Engine keeps scrape outcome history and counter baselines across scrapes.
//
// Counter regressions are flagged, never corrected: the meter owns the
// counter and the exporter publishes whatever it reads.
//
// All exported methods are safe for concurrent use.
type Engine struct {
	mu       sync.Mutex
	history  []bool // scrape outcomes, newest last
	counters map[string]float64
	status   Status
}

// NewEngine returns a ready-to-use Engine.
func NewEngine() *Engine {
	return &Engine{
		counters: make(map[string]float64),
		status:   Status{State: StateUnknown},
	}
}

// Observe records the outcome of one scrape that started at start and
// finished at now. samples is ignored when err is non-nil.
//
// It returns the counter regressions detected in samples, if any.
func (e *Engine) Observe(samples []schema.Sample, err error, start, now time.Time) []Regression {
	e.mu.Lock()
	defer e.mu.Unlock()

	success := err == nil
	e.recordScrape(success)

	st := &e.status
	st.LastScrape = now
	st.LastDuration = now.Sub(start)
	st.UptimePct = e.uptimePct()

	if !success {
		st.State = StateDown
		st.ConsecutiveFailures++
		st.LastError = err.Error()
		return nil
	}

	st.State = StateUp
	st.ConsecutiveFailures = 0
	st.LastError = ""
	st.LastSuccess = now
	st.SampleCount = len(samples)

	var regressions []Regression
	for _, s := range samples {
		if s.Kind != schema.Counter {
			continue
		}
		key := s.Name + "\xff" + s.Label
		if prev, ok := e.counters[key]; ok && s.Value < prev {
			regressions = append(regressions, Regression{
				Name: s.Name, Label: s.Label, Previous: prev, Current: s.Value,
			})
			slog.Warn("compute: counter went backwards",
				"metric", s.Name, "name", s.Label,
				"previous", prev, "current", s.Value)
		}
		e.counters[key] = s.Value
	}
	st.CounterRegressions += len(regressions)
	return regressions
}

// Status returns a copy of the current status.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

func (e *Engine) recordScrape(success bool) {
	if len(e.history) >= uptimeWindow {
		e.history = e.history[1:]
	}
	e.history = append(e.history, success)
}

func (e *Engine) uptimePct() float64 {
	if len(e.history) == 0 {
		return 100 // assume up before first observation
	}
	var ok int
	for _, s := range e.history {
		if s {
			ok++
		}
	}
	return float64(ok) / float64(len(e.history)) * 100
}
