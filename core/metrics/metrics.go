package metrics

import (
	"osu-db-tool/core/reconcile"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "osu_db_tool"

// Config holds configuration for metrics export.
type Config struct {
	// Textfile is the path of a node_exporter textfile-collector file written at the end
	// of every command. Empty disables the export.
	Textfile string `mapstructure:"textfile" default:""`
}

// Metrics holds the counters of one command run in a private registry.
type Metrics struct {
	registry *prometheus.Registry

	// RatingsCalculated counts beatmaps whose missing star ratings were computed.
	RatingsCalculated prometheus.Counter
	// RatingsSkipped counts beatmaps that already had every wanted rating.
	RatingsSkipped prometheus.Counter
	// RatingsFailed counts beatmaps whose file could not be loaded.
	RatingsFailed prometheus.Counter

	// reconciled counts reconcile outcomes. Labels: store, outcome
	reconciled *prometheus.CounterVec
	// storeWrites counts rewritten store files. Labels: store
	storeWrites *prometheus.CounterVec
}

// New creates a metrics set backed by a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RatingsCalculated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rating",
			Name:      "calculated_total",
			Help:      "Beatmaps whose missing star ratings were calculated",
		}),
		RatingsSkipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rating",
			Name:      "skipped_total",
			Help:      "Beatmaps that already had every wanted star rating",
		}),
		RatingsFailed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rating",
			Name:      "failed_total",
			Help:      "Beatmaps whose file could not be loaded for rating",
		}),
		reconciled: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reconcile",
			Name:      "records_total",
			Help:      "Records offered to a store, by outcome",
		}, []string{"store", "outcome"}),
		storeWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "writes_total",
			Help:      "Store files rewritten",
		}, []string{"store"}),
	}
}

// Registry returns the registry holding every counter.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveSummary adds a reconcile summary to the per-store counters.
func (m *Metrics) ObserveSummary(store string, s reconcile.Summary) {
	m.reconciled.WithLabelValues(store, string(reconcile.OutcomeFound)).Add(float64(s.Found))
	m.reconciled.WithLabelValues(store, string(reconcile.OutcomeInserted)).Add(float64(s.Inserted))
}

// StoreWritten records one rewrite of the named store.
func (m *Metrics) StoreWritten(store string) {
	m.storeWrites.WithLabelValues(store).Inc()
}

// WriteTextfile writes every counter in the text exposition format, atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
