package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestDump_WritesExposition(t *testing.T) {
	reg := prometheus.NewRegistry()
	g := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "siemens_9330_frequency", Help: "Frequency (Hz)"}, []string{"name"})
	g.WithLabelValues("total").Set(60.01)
	reg.MustRegister(g)

	var buf bytes.Buffer
	if err := dump(&buf, reg); err != nil {
		t.Fatalf("dump() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"# HELP siemens_9330_frequency Frequency (Hz)",
		"# TYPE siemens_9330_frequency gauge",
		`siemens_9330_frequency{name="total"} 60.01`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDump_GatherError(t *testing.T) {
	failing := prometheus.GathererFunc(func() ([]*dto.MetricFamily, error) {
		return nil, errors.New("fetch realtime: connection refused")
	})
	var buf bytes.Buffer
	if err := dump(&buf, failing); err == nil {
		t.Fatal("dump() should return the gather error")
	}
	if buf.Len() != 0 {
		t.Errorf("dump() wrote %q on failure, want nothing", buf.String())
	}
}
