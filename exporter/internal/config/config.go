package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultPort        = 9330
	DefaultMetricsPath = "/metrics"
	DefaultLogLevel    = "info"
	DefaultTracing     = "none"
)

// Config is the top-level exporter configuration.
// Fields map 1:1 to config.example.yaml.
type Config struct {
	Device   DeviceConfig   `yaml:"device"`
	Exporter ExporterConfig `yaml:"exporter"`
}

// DeviceConfig describes the power meter being polled.
type DeviceConfig struct {
	// Address is the meter's web server, host or host:port. A value that
	// already carries a scheme (http://...) is used as the base URL verbatim.
	Address string `yaml:"address"`

	// Timeout bounds each page fetch. Zero leaves the transport defaults in
	// charge, which is how the meter has historically been polled.
	Timeout time.Duration `yaml:"timeout"`
}

// ExporterConfig holds the settings of the metrics listener.
type ExporterConfig struct {
	// Port is the TCP port the /metrics and /api listener binds to.
	Port int `yaml:"port"`

	// MetricsPath is where the Prometheus exposition is served.
	MetricsPath string `yaml:"metrics_path"`

	// LogLevel is one of: debug | info | warn | error.
	// It is the only setting applied on hot-reload.
	LogLevel string `yaml:"log_level"`

	// Tracing selects the span exporter: none | stdout. With stdout, spans
	// are written as JSON lines next to the logs.
	Tracing string `yaml:"tracing"`
}

// Level returns the slog level for LogLevel. Unknown values fall back to info;
// validate rejects them before they get here.
func (e ExporterConfig) Level() slog.Level {
	switch strings.ToLower(e.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with sensible defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Exporter: ExporterConfig{
			Port:        DefaultPort,
			MetricsPath: DefaultMetricsPath,
			LogLevel:    DefaultLogLevel,
			Tracing:     DefaultTracing,
		},
	}
}

// validate checks required fields and structural constraints.
func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Device.Address) == "" {
		return fmt.Errorf("device.address is required")
	}
	if cfg.Device.Timeout < 0 {
		return fmt.Errorf("device.timeout must not be negative")
	}
	if cfg.Exporter.Port <= 0 || cfg.Exporter.Port > 65535 {
		return fmt.Errorf("exporter.port %d out of range", cfg.Exporter.Port)
	}
	if !strings.HasPrefix(cfg.Exporter.MetricsPath, "/") {
		return fmt.Errorf("exporter.metrics_path must start with /")
	}
	if strings.HasPrefix(cfg.Exporter.MetricsPath, "/api/") {
		return fmt.Errorf("exporter.metrics_path must not be under /api/")
	}
	switch strings.ToLower(cfg.Exporter.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("exporter.log_level: unknown level %q", cfg.Exporter.LogLevel)
	}
	switch cfg.Exporter.Tracing {
	case "none", "stdout":
	default:
		return fmt.Errorf("exporter.tracing: unknown exporter %q", cfg.Exporter.Tracing)
	}
	return nil
}
