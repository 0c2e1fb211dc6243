// Package config loads and watches the exporter configuration file (config.yaml).
//
// Top-level types:
//   - Config{Device, Exporter} — full config tree parsed from YAML
//   - DeviceConfig — address of the meter's web server, optional fetch timeout
//   - ExporterConfig — listener port, metrics_path, log_level, tracing;
//     Level() maps the level name to a slog.Level
//
// Load(path) reads the YAML file, applies defaults (port 9330, /metrics,
// info, tracing none), then validates required fields and enums.
//
// Watch(ctx, path, onChange) uses fsnotify on the file's parent directory and
// keeps only events whose name is the config file itself. Atomic-save editors
// (vim, VS Code) replace the file, which arrives as a Create on that name, so
// the watch survives without being re-added. Each Write or Create reloads the
// file and calls onChange with the parsed Config; a file that fails to load
// is logged and skipped.
package config
