package collector

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/obsidianstack/siemens9330-exporter/exporter/internal/compute"
	"github.com/obsidianstack/siemens9330-exporter/exporter/internal/device"
	"github.com/obsidianstack/siemens9330-exporter/exporter/internal/extract"
	"github.com/obsidianstack/siemens9330-exporter/exporter/internal/schema"
)

// TracerName is the instrumentation scope of the per-scrape span.
const TracerName = "siemens9330/collector"

// Fetcher retrieves one page from the meter.
type Fetcher interface {
	Fetch(ctx context.Context, page device.Page) (device.Document, error)
}

// Pipeline pairs a page with the schema that reads it.
type Pipeline struct {
	Page   device.Page
	Schema schema.Schema
}

// DefaultPipelines is the meter's full page set in fetch order.
func DefaultPipelines() []Pipeline {
	return []Pipeline{
		{Page: device.PageRealtime, Schema: schema.Realtime},
		{Page: device.PagePowerQuality, Schema: schema.PowerQuality},
		{Page: device.PageRevenue, Schema: schema.Revenue},
	}
}

// Collector runs the fetch → extract → map pipeline on every scrape and
// implements prometheus.Collector. Nothing is cached between scrapes.
type Collector struct {
	fetcher   Fetcher
	pipelines []Pipeline
	engine    *compute.Engine
	descs     map[string]*prometheus.Desc
	names     []string // desc names in first-use order, for Describe
	now       func() time.Time
}

// New returns a Collector reading pipelines through f. engine may be nil when
// scrape health tracking is not wanted.
func New(f Fetcher, pipelines []Pipeline, engine *compute.Engine) *Collector {
	c := &Collector{
		fetcher:   f,
		pipelines: pipelines,
		engine:    engine,
		descs:     make(map[string]*prometheus.Desc),
		now:       time.Now,
	}
	for _, p := range pipelines {
		for _, name := range p.Schema.Names() {
			if _, ok := c.descs[name]; ok {
				continue
			}
			c.descs[name] = prometheus.NewDesc(name, schema.Help[name], []string{schema.LabelName}, nil)
			c.names = append(c.names, name)
		}
	}
	return c
}

// Scrape fetches and maps every page in order. Any failure aborts the whole
// scrape: the error is returned and no samples are.
//
// Each call is one "scrape" span from the global tracer provider; page
// fetches made with ctx become its children.
func (c *Collector) Scrape(ctx context.Context) ([]schema.Sample, error) {
	ctx, span := otel.Tracer(TracerName).Start(ctx, "scrape")
	defer span.End()

	var samples []schema.Sample
	for _, p := range c.pipelines {
		out, err := c.scrapePage(ctx, p)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		samples = append(samples, out...)
	}
	span.SetAttributes(attribute.Int("samples", len(samples)))
	return samples, nil
}

func (c *Collector) scrapePage(ctx context.Context, p Pipeline) ([]schema.Sample, error) {
	doc, err := c.fetcher.Fetch(ctx, p.Page)
	if err != nil {
		return nil, err
	}
	res, err := extract.Extract(doc, p.Schema.Classes()...)
	if err != nil {
		return nil, err
	}
	return schema.Map(res, p.Schema)
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, name := range c.names {
		ch <- c.descs[name]
	}
}

// Collect implements prometheus.Collector. On failure it sends a single
// invalid metric so the registry fails the scrape instead of exposing a
// partial set.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	start := c.now()
	samples, err := c.Scrape(context.Background())
	if err == nil {
		var metrics []prometheus.Metric
		metrics, err = c.toMetrics(samples)
		if err != nil {
			samples = nil
		} else {
			for _, m := range metrics {
				ch <- m
			}
		}
	}

	if c.engine != nil {
		c.engine.Observe(samples, err, start, c.now())
	}

	if err != nil {
		slog.Warn("collector: scrape failed", "err", err, "duration", c.now().Sub(start))
		ch <- prometheus.NewInvalidMetric(prometheus.NewInvalidDesc(err), err)
		return
	}
	slog.Debug("collector: scrape complete", "samples", len(samples), "duration", c.now().Sub(start))
}

// toMetrics builds every const metric up front so a bad sample cannot leave
// a partial set on the channel.
func (c *Collector) toMetrics(samples []schema.Sample) ([]prometheus.Metric, error) {
	out := make([]prometheus.Metric, 0, len(samples))
	for _, s := range samples {
		desc, ok := c.descs[s.Name]
		if !ok {
			return nil, fmt.Errorf("collector: no descriptor for %s", s.Name)
		}
		vt := prometheus.GaugeValue
		if s.Kind == schema.Counter {
			vt = prometheus.CounterValue
		}
		m, err := prometheus.NewConstMetric(desc, vt, s.Value, s.Label)
		if err != nil {
			return nil, fmt.Errorf("collector: %s{%s=%q}: %w", s.Name, schema.LabelName, s.Label, err)
		}
		out = append(out, m)
	}
	return out, nil
}
