package observability

import (
	dto "github.com/prometheus/client_model/go"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProjectsLoadedTotal counts project files loaded by format
	ProjectsLoadedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dotnetproj_projects_loaded_total",
			Help: "Total number of project files loaded by format",
		},
		[]string{"format"}, // sdk, legacy
	)

	// ProjectsSkippedTotal counts legacy projects left out of a solution session
	ProjectsSkippedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dotnetproj_projects_skipped_total",
			Help: "Total number of legacy projects skipped",
		},
	)

	// DocumentsSavedTotal counts documents written by kind
	DocumentsSavedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dotnetproj_documents_saved_total",
			Help: "Total number of documents written by kind",
		},
		[]string{"kind"}, // project, build_props, packages_props, solution
	)

	// DocumentsFormattedTotal counts formatted documents by whether the text changed
	DocumentsFormattedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dotnetproj_documents_formatted_total",
			Help: "Total number of formatted documents",
		},
		[]string{"changed"},
	)

	// MigrationsTotal counts central package management migrations by status
	MigrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dotnetproj_cpm_migrations_total",
			Help: "Total number of central package management migrations by status",
		},
		[]string{"status"}, // success, failure, already_migrated
	)

	// VersionConflictsTotal counts packages found at more than one version during migration
	VersionConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dotnetproj_version_conflicts_total",
			Help: "Total number of packages referenced at different versions",
		},
	)

	// PropertyEditsTotal counts property edits by operation
	PropertyEditsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dotnetproj_property_edits_total",
			Help: "Total number of project property edits by operation",
		},
		[]string{"operation"}, // set, remove
	)

	// SolutionParseDuration tracks solution parse duration in seconds
	SolutionParseDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dotnetproj_solution_parse_duration_seconds",
			Help:    "Solution parse duration in seconds, including project loads",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to 2s
		},
	)
)

// WriteMetricsFile writes all registered metrics to path in the Prometheus
// text format, for pickup by a node exporter textfile collector.
func WriteMetricsFile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}

// GetCounterValue retrieves the current value of a counter metric with the given labels
// This is primarily intended for testing
func GetCounterValue(counter *prometheus.CounterVec, labels ...string) (float64, error) {
	metric, err := counter.GetMetricWithLabelValues(labels...)
	if err != nil {
		return 0, err
	}
	return counterValue(metric)
}

func counterValue(metric prometheus.Metric) (float64, error) {
	var pb dto.Metric
	if err := metric.Write(&pb); err != nil {
		return 0, err
	}
	if pb.Counter != nil {
		return pb.Counter.GetValue(), nil
	}
	return 0, nil
}

// GetPlainCounterValue returns the value of an unlabelled counter
func GetPlainCounterValue(counter prometheus.Counter) (float64, error) {
	return counterValue(counter)
}
