package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Conversion statuses
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

//nolint:gochecknoglobals // Prometheus metrics must be global for registration
var (
	// SamplesDiscovered counts audio files accepted by discovery
	SamplesDiscovered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dgkit_samples_discovered_total",
			Help: "Total number of source samples discovered",
		},
	)

	// SamplesSkipped counts audio files rejected by discovery
	SamplesSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dgkit_samples_skipped_total",
			Help: "Total number of source files skipped during discovery",
		},
		[]string{"reason"}, // reason: duplicate, empty_name
	)

	// ConversionsTotal counts sox invocations per instrument
	ConversionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dgkit_conversions_total",
			Help: "Total number of variation files converted",
		},
		[]string{"instrument", "status"}, // status: success, failed
	)

	// ConversionDuration measures a single sox invocation in seconds
	ConversionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dgkit_conversion_duration_seconds",
			Help:    "Variation conversion duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
		},
		[]string{"status"},
	)

	// DescriptorsWritten counts XML descriptors written
	DescriptorsWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dgkit_descriptors_written_total",
			Help: "Total number of XML descriptors written",
		},
		[]string{"kind"}, // kind: drumkit, instrument, midimap
	)

	// ExtraFilesCopied counts files copied to the target root
	ExtraFilesCopied = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dgkit_extra_files_copied_total",
			Help: "Total number of extra files copied into the kit",
		},
	)

	// RunDuration records how long the last generation took
	RunDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dgkit_run_duration_seconds",
			Help: "Duration of the last kit generation in seconds",
		},
	)

	// ErrorsTotal counts total number of errors
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dgkit_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)
)

// RecordSampleDiscovered records an accepted sample
func RecordSampleDiscovered() {
	SamplesDiscovered.Inc()
}

// RecordSampleSkipped records a rejected sample
func RecordSampleSkipped(reason string) {
	SamplesSkipped.WithLabelValues(reason).Inc()
}

// RecordConversion records one variation conversion
func RecordConversion(instrument, status string, duration float64) {
	ConversionsTotal.WithLabelValues(instrument, status).Inc()
	ConversionDuration.WithLabelValues(status).Observe(duration)
}

// RecordDescriptor records a written descriptor
func RecordDescriptor(kind string) {
	DescriptorsWritten.WithLabelValues(kind).Inc()
}

// RecordExtraFile records a copied extra file
func RecordExtraFile() {
	ExtraFilesCopied.Inc()
}

// RecordRun records the duration of a completed run
func RecordRun(duration float64) {
	RunDuration.Set(duration)
}

// RecordError records an error
func RecordError(component, errorType string) {
	ErrorsTotal.WithLabelValues(component, errorType).Inc()
}
