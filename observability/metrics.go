package observability

import (
	"fmt"
	"time"

	dto "github.com/prometheus/client_model/go"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DocumentsLoadedTotal counts config.xml loads by status
	DocumentsLoadedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gocordova_documents_loaded_total",
			Help: "Total number of config.xml documents loaded by status",
		},
		[]string{"status"}, // success, failure
	)

	// DocumentLoadDuration tracks parse and migration time in seconds
	DocumentLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gocordova_document_load_duration_seconds",
			Help:    "Time spent parsing and migrating a config.xml document",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 100µs to 0.8s
		},
	)

	// LegacyElementsMigratedTotal counts rewritten legacy elements by kind
	LegacyElementsMigratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gocordova_legacy_elements_migrated_total",
			Help: "Total number of legacy cocoon elements rewritten by kind",
		},
		[]string{"kind"}, // platform, engine, plugin, variable, repaired
	)

	// DocumentMutationsTotal counts edit commands by operation and status
	DocumentMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gocordova_document_mutations_total",
			Help: "Total number of document edits by operation and status",
		},
		[]string{"operation", "status"},
	)

	// DocumentsSavedTotal counts documents written back to disk
	DocumentsSavedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gocordova_documents_saved_total",
			Help: "Total number of documents written by status",
		},
		[]string{"status"},
	)
)

// Status returns the status label for err.
func Status(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

// ObserveLoad records one document load.
func ObserveLoad(elapsed time.Duration, err error) {
	DocumentsLoadedTotal.WithLabelValues(Status(err)).Inc()
	if err == nil {
		DocumentLoadDuration.Observe(elapsed.Seconds())
	}
}

// ObserveMigration adds n to the migrated count for kind. Zero counts are
// skipped so untouched kinds never appear in the output.
func ObserveMigration(kind string, n int) {
	if n > 0 {
		LegacyElementsMigratedTotal.WithLabelValues(kind).Add(float64(n))
	}
}

// WriteMetricsFile writes every registered metric to path in the Prometheus
// text format, for pickup by a node exporter textfile collector.
func WriteMetricsFile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}

// GetCounterValue retrieves the current value of a counter metric with the given labels
// This is primarily intended for testing
func GetCounterValue(counter *prometheus.CounterVec, labels ...string) (float64, error) {
	metric, err := counter.GetMetricWithLabelValues(labels...)
	if err != nil {
		return 0, err
	}

	var pb dto.Metric
	if err := metric.Write(&pb); err != nil {
		return 0, err
	}

	if pb.Counter != nil {
		return pb.Counter.GetValue(), nil
	}

	return 0, nil
}
