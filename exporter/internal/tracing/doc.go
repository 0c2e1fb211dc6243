// Package tracing installs the process-wide OpenTelemetry tracer provider and
// propagator.
//
// Setup(mode, w) always sets the W3C trace-context + baggage propagator, so
// the otelhttp-wrapped /metrics handler continues traces started by the
// caller. With mode "stdout" it also installs an SDK TracerProvider that
// batches spans to w as JSON: the collector's "scrape" span, one client span
// per page GET and one server span per /metrics request. Mode "none" leaves
// the no-op provider in place.
package tracing
