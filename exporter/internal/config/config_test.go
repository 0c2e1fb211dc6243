package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Valid(t *testing.T) {
	yaml := `
device:
  address: "10.0.0.50"
  timeout: 5s
exporter:
  port: 9100
  metrics_path: /meter
  log_level: debug
  tracing: stdout
`
	cfg := loadFromString(t, yaml)

	if cfg.Device.Address != "10.0.0.50" {
		t.Errorf("device.address: got %q", cfg.Device.Address)
	}
	if cfg.Device.Timeout != 5*time.Second {
		t.Errorf("device.timeout: got %v", cfg.Device.Timeout)
	}
	if cfg.Exporter.Port != 9100 {
		t.Errorf("exporter.port: got %d", cfg.Exporter.Port)
	}
	if cfg.Exporter.MetricsPath != "/meter" {
		t.Errorf("exporter.metrics_path: got %q", cfg.Exporter.MetricsPath)
	}
	if cfg.Exporter.Level() != slog.LevelDebug {
		t.Errorf("Level(): got %v, want debug", cfg.Exporter.Level())
	}
	if cfg.Exporter.Tracing != "stdout" {
		t.Errorf("exporter.tracing: got %q", cfg.Exporter.Tracing)
	}
}

func TestLoad_Defaults(t *testing.T) {
	yaml := `
device:
  address: "meter.plant.local"
`
	cfg := loadFromString(t, yaml)

	if cfg.Device.Timeout != 0 {
		t.Errorf("default timeout: got %v, want 0", cfg.Device.Timeout)
	}
	if cfg.Exporter.Port != DefaultPort {
		t.Errorf("default port: got %d, want %d", cfg.Exporter.Port, DefaultPort)
	}
	if cfg.Exporter.MetricsPath != DefaultMetricsPath {
		t.Errorf("default metrics_path: got %q, want %q", cfg.Exporter.MetricsPath, DefaultMetricsPath)
	}
	if cfg.Exporter.Level() != slog.LevelInfo {
		t.Errorf("default level: got %v, want info", cfg.Exporter.Level())
	}
	if cfg.Exporter.Tracing != DefaultTracing {
		t.Errorf("default tracing: got %q, want %q", cfg.Exporter.Tracing, DefaultTracing)
	}
}

func TestLoad_MissingAddress(t *testing.T) {
	yaml := `
exporter:
  port: 9330
`
	_, err := loadStringErr(t, yaml)
	if err == nil {
		t.Fatal("expected error for missing device.address, got nil")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative timeout", "device:\n  address: a\n  timeout: -1s\n"},
		{"port zero", "device:\n  address: a\nexporter:\n  port: 0\n"},
		{"port too large", "device:\n  address: a\nexporter:\n  port: 70000\n"},
		{"relative metrics path", "device:\n  address: a\nexporter:\n  metrics_path: metrics\n"},
		{"metrics path under api", "device:\n  address: a\nexporter:\n  metrics_path: /api/metrics\n"},
		{"unknown log level", "device:\n  address: a\nexporter:\n  log_level: loud\n"},
		{"unknown tracing exporter", "device:\n  address: a\nexporter:\n  tracing: jaeger\n"},
		{"empty tracing exporter", "device:\n  address: a\nexporter:\n  tracing: \"\"\n"},
		{"bad yaml", "device: [\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := loadStringErr(t, tc.yaml); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestExporterConfig_Level(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}
	for _, tc := range tests {
		if got := (ExporterConfig{LogLevel: tc.in}).Level(); got != tc.want {
			t.Errorf("Level(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

// loadFromString writes yaml to a temp file and calls Load, failing on error.
func loadFromString(t *testing.T, content string) *Config {
	t.Helper()
	cfg, err := loadStringErr(t, content)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	return cfg
}

// loadStringErr writes yaml to a temp file and calls Load, returning any error.
func loadStringErr(t *testing.T, content string) (*Config, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return Load(path)
}
