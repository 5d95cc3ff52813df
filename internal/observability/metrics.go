package observability

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for one report run.
// The run is a one-off batch process with nothing to scrape, so metrics live
// on a private registry and are gathered into the run-summary log line at the
// end instead of being exposed over HTTP.
type Metrics struct {
	RowsRead        prometheus.Counter
	RowsNormalized  prometheus.Counter
	DateParseErrors prometheus.Counter

	// UnknownExponentCodes counts zeroed damage fields, labelled
	// field={property,crop}.
	UnknownExponentCodes *prometheus.CounterVec

	// StageDuration observes per-stage wall time, labelled
	// stage={load,normalize,aggregate,render}.
	StageDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewMetrics creates and registers all pipeline metrics on a fresh private
// registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_report",
			Name:      "rows_read_total",
			Help:      "Total rows read from the source dataset.",
		}),
		RowsNormalized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_report",
			Name:      "rows_normalized_total",
			Help:      "Total rows that survived normalization.",
		}),
		DateParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_report",
			Name:      "date_parse_errors_total",
			Help:      "Rows excluded because the begin date failed the fixed-format parse.",
		}),
		UnknownExponentCodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storm_report",
			Name:      "unknown_exponent_codes_total",
			Help:      "Damage fields zeroed because their exponent code is unrecognized.",
		}, []string{"field"}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "storm_report",
			Name:      "stage_duration_seconds",
			Help:      "Wall time per pipeline stage.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 30, 60},
		}, []string{"stage"}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.RowsRead,
		m.RowsNormalized,
		m.DateParseErrors,
		m.UnknownExponentCodes,
		m.StageDuration,
	)

	return m
}

// Summary gathers the registry into flat "name{labels}" -> value pairs for
// the end-of-run log line. Histograms report their sample count and sum.
func (m *Metrics) Summary() (map[string]float64, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}

	out := make(map[string]float64)
	for _, fam := range families {
		for _, metric := range fam.GetMetric() {
			name := fam.GetName()
			labels := metric.GetLabel()
			if len(labels) > 0 {
				parts := make([]string, 0, len(labels))
				for _, l := range labels {
					parts = append(parts, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
				}
				sort.Strings(parts)
				name = fmt.Sprintf("%s{%s}", name, strings.Join(parts, ","))
			}

			switch {
			case metric.GetCounter() != nil:
				out[name] = metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				out[name] = metric.GetGauge().GetValue()
			case metric.GetHistogram() != nil:
				h := metric.GetHistogram()
				out[name+"_count"] = float64(h.GetSampleCount())
				out[name+"_sum"] = h.GetSampleSum()
			}
		}
	}
	return out, nil
}
