package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/obsidianstack/siemens9330-exporter/exporter/internal/api"
	"github.com/obsidianstack/siemens9330-exporter/exporter/internal/collector"
	"github.com/obsidianstack/siemens9330-exporter/exporter/internal/compute"
	"github.com/obsidianstack/siemens9330-exporter/exporter/internal/config"
	"github.com/obsidianstack/siemens9330-exporter/exporter/internal/scraper"
	"github.com/obsidianstack/siemens9330-exporter/exporter/internal/tracing"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	once := flag.Bool("once", false, "scrape the meter once, print the exposition to stdout and exit")
	flag.Parse()

	// In -once mode stdout carries the exposition, so logs move to stderr.
	logOut := io.Writer(os.Stdout)
	if *once {
		logOut = os.Stderr
	}
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	slog.Info("siemens9330-exporter starting", "config", *configPath)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	level.Set(cfg.Exporter.Level())
	slog.Info("config loaded",
		"device_address", cfg.Device.Address,
		"device_timeout", cfg.Device.Timeout,
		"port", cfg.Exporter.Port,
		"metrics_path", cfg.Exporter.MetricsPath,
		"tracing", cfg.Exporter.Tracing,
	)

	// Spans share the log stream, so -once keeps them off the exposition too.
	shutdownTracing, err := tracing.Setup(cfg.Exporter.Tracing, logOut)
	if err != nil {
		slog.Error("failed to set up tracing", "err", err)
		os.Exit(1)
	}
	flushTraces := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			slog.Warn("tracing shutdown", "err", err)
		}
	}

	engine := compute.NewEngine()
	pipelines := collector.DefaultPipelines()
	coll := collector.New(scraper.New(cfg.Device), pipelines, engine)

	// Private registry: only the meter's series are exposed.
	reg := prometheus.NewRegistry()
	reg.MustRegister(coll)

	if *once {
		err := dump(os.Stdout, reg)
		flushTraces()
		if err != nil {
			slog.Error("scrape failed", "err", err)
			os.Exit(1)
		}
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Hot-reload applies log_level only; device and listener changes need a restart.
	go func() {
		if err := config.Watch(ctx, *configPath, func(updated *config.Config) {
			level.Set(updated.Exporter.Level())
			if updated.Device != cfg.Device || updated.Exporter.Port != cfg.Exporter.Port ||
				updated.Exporter.MetricsPath != cfg.Exporter.MetricsPath ||
				updated.Exporter.Tracing != cfg.Exporter.Tracing {
				slog.Warn("config changed beyond log_level; restart to apply")
			}
			slog.Info("config hot-reloaded", "log_level", updated.Exporter.LogLevel)
		}); err != nil {
			slog.Error("config watcher stopped", "err", err)
		}
	}()

	metrics := promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		ErrorLog:      slog.NewLogLogger(logger.Handler(), slog.LevelError),
		ErrorHandling: promhttp.HTTPErrorOnError,
	})

	httpMux := http.NewServeMux()
	httpMux.Handle(cfg.Exporter.MetricsPath, otelhttp.NewHandler(metrics, "metrics"))
	httpMux.Handle("/api/", api.New(engine, pipelines))

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Exporter.Port),
		Handler: httpMux,
	}
	go func() {
		slog.Info("HTTP server listening", "port", cfg.Exporter.Port)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server stopped", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("siemens9330-exporter shutting down")
	httpSrv.Shutdown(context.Background()) //nolint:errcheck
	flushTraces()
}

// dump gathers reg once and writes the text exposition to w.
func dump(w io.Writer, reg prometheus.Gatherer) error {
	mfs, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	slog.Info("scrape complete", "families", len(mfs))
	return nil
}
