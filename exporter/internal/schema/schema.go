package schema

import (
	"github.com/obsidianstack/siemens9330-exporter/exporter/internal/extract"
)

// Kind is the Prometheus type a metric is published as.
type Kind int

const (
	Gauge Kind = iota
	Counter
)

func (k Kind) String() string {
	if k == Counter {
		return "counter"
	}
	return "gauge"
}

// LabelName is the single label every published metric carries.
const LabelName = "name"

// Published metric names. These are a stable contract with dashboards.
const (
	MetricVoltage    = "siemens_9330_voltage"
	MetricCurrent    = "siemens_9330_current"
	MetricKW         = "siemens_9330_kw"
	MetricKVA        = "siemens_9330_kva"
	MetricKVAR       = "siemens_9330_kvar"
	MetricUnbalance  = "siemens_9330_unbalance"
	MetricFrequency  = "siemens_9330_frequency"
	MetricPFSign     = "siemens_9330_pf_sign"
	MetricVoltageTHD = "siemens_9330_voltage_thd"
	MetricCurrentTHD = "siemens_9330_current_thd"
	MetricKFactor    = "siemens_9330_k_factor"
	MetricEnergy     = "siemens_9330_energy"
)

// Help holds the help text of every published metric.
var Help = map[string]string{
	MetricVoltage:    "Volt (V)",
	MetricCurrent:    "Current (A)",
	MetricKW:         "Real Power (kW)",
	MetricKVA:        "Apparent Power (kVA)",
	MetricKVAR:       "Reactive Power (kVAR)",
	MetricUnbalance:  "Unbalance (%)",
	MetricFrequency:  "Frequency (Hz)",
	MetricPFSign:     "Power Factor Sign",
	MetricVoltageTHD: "Voltage THD (%)",
	MetricCurrentTHD: "Current THD (%)",
	MetricKFactor:    "K Factor",
	MetricEnergy:     "Energy (kWh)",
}

// MetricSpec binds one extracted token, by class and ordinal, to a metric
// name and label value.
type MetricSpec struct {
	Name  string
	Kind  Kind
	Label string
	Class extract.Class
	Index int
}

// Schema is the ordered table of specs for one page.
type Schema struct {
	Page  string
	Specs []MetricSpec
}

// Classes returns the distinct pattern classes the schema reads, in first-use order.
func (s Schema) Classes() []extract.Class {
	seen := make(map[extract.Class]bool, len(s.Specs))
	var out []extract.Class
	for _, spec := range s.Specs {
		if !seen[spec.Class] {
			seen[spec.Class] = true
			out = append(out, spec.Class)
		}
	}
	return out
}

// Required returns, per class, the minimum number of extracted values the
// schema needs: one more than the highest ordinal it reads.
func (s Schema) Required() map[extract.Class]int {
	req := make(map[extract.Class]int, len(s.Specs))
	for _, spec := range s.Specs {
		if spec.Index+1 > req[spec.Class] {
			req[spec.Class] = spec.Index + 1
		}
	}
	return req
}

// Names returns the distinct metric names in the schema, in first-use order.
func (s Schema) Names() []string {
	seen := make(map[string]bool, len(s.Specs))
	var out []string
	for _, spec := range s.Specs {
		if !seen[spec.Name] {
			seen[spec.Name] = true
			out = append(out, spec.Name)
		}
	}
	return out
}

func gauge(name, label string, c extract.Class, idx int) MetricSpec {
	return MetricSpec{Name: name, Kind: Gauge, Label: label, Class: c, Index: idx}
}

// Realtime reads realtime01.html. The percent class carries three unrelated
// readings told apart only by position: current unbalance, power factor
// sign, voltage unbalance.
var Realtime = Schema{
	Page: "realtime",
	Specs: []MetricSpec{
		gauge(MetricVoltage, "L-L", extract.Volts, 0),
		gauge(MetricVoltage, "A-B", extract.Volts, 1),
		gauge(MetricVoltage, "B-C", extract.Volts, 2),
		gauge(MetricVoltage, "C-A", extract.Volts, 3),

		gauge(MetricCurrent, "avg", extract.Amps, 0),
		gauge(MetricCurrent, "A", extract.Amps, 1),
		gauge(MetricCurrent, "B", extract.Amps, 2),
		gauge(MetricCurrent, "C", extract.Amps, 3),

		gauge(MetricKW, "total", extract.Kilowatts, 0),
		gauge(MetricKVA, "total", extract.KVA, 0),
		gauge(MetricKVAR, "total", extract.KVAR, 0),

		gauge(MetricUnbalance, "V", extract.Percent, 2),
		gauge(MetricUnbalance, "I", extract.Percent, 0),

		gauge(MetricFrequency, "total", extract.Hertz, 0),
		gauge(MetricPFSign, "total", extract.Percent, 1),
	},
}

// PowerQuality reads pq01.html, where every value is a bare number in a
// table cell: nine voltage THD cells, then per phase three current THD
// cells followed by that phase's K-factor.
var PowerQuality = Schema{
	Page:  "power-quality",
	Specs: powerQualitySpecs(),
}

func powerQualitySpecs() []MetricSpec {
	phases := []string{"A", "B", "C"}
	harmonics := []string{"total", "odd", "even"}

	specs := make([]MetricSpec, 0, 21)
	idx := 0
	for _, p := range phases {
		for _, h := range harmonics {
			specs = append(specs, gauge(MetricVoltageTHD, p+"_"+h, extract.BareNumber, idx))
			idx++
		}
	}
	for _, p := range phases {
		for _, h := range harmonics {
			specs = append(specs, gauge(MetricCurrentTHD, p+"_"+h, extract.BareNumber, idx))
			idx++
		}
		specs = append(specs, gauge(MetricKFactor, p, extract.BareNumber, idx))
		idx++
	}
	return specs
}

// Revenue reads revenue01.html; the first bare number is accumulated energy.
var Revenue = Schema{
	Page: "revenue",
	Specs: []MetricSpec{
		{Name: MetricEnergy, Kind: Counter, Label: "total", Class: extract.BareNumber, Index: 0},
	},
}
