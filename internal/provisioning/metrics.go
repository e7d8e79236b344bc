package provisioning

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "aks_storage"

// Metrics records run metrics in a private registry. They are written in
// the text exposition format at the end of a run, for the node exporter's
// textfile collector. All methods are no-ops on a nil receiver.
type Metrics struct {
	registry      *prometheus.Registry
	phaseDuration *prometheus.HistogramVec
	caseResult    *prometheus.GaugeVec
	caseDuration  *prometheus.GaugeVec
	resources     *prometheus.CounterVec
	runs          *prometheus.CounterVec
}

// NewMetrics creates and registers the run metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		phaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "phase",
				Name:      "duration_seconds",
				Help:      "Duration of provisioning phases in seconds by result",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1s to ~34min
			},
			[]string{"phase", "result"},
		),
		caseResult: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: "case",
				Name:      "passed",
				Help:      "Whether a use case passed (1) or not (0)",
			},
			[]string{"use_case", "storage", "provision", "keyless"},
		),
		caseDuration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: "case",
				Name:      "duration_seconds",
				Help:      "Time spent validating a use case in seconds",
			},
			[]string{"use_case"},
		),
		resources: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "azure",
				Name:      "resources_total",
				Help:      "Azure resources ensured by type and whether they were created",
			},
			[]string{"type", "created"},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "runs_total",
				Help:      "Completed runs by exit code",
			},
			[]string{"exit_code"},
		),
	}
	m.registry.MustRegister(m.phaseDuration, m.caseResult, m.caseDuration, m.resources, m.runs)
	return m
}

// Registry returns the registry holding the run metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObservePhase records a phase duration.
func (m *Metrics) ObservePhase(phase string, d time.Duration, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.phaseDuration.WithLabelValues(phase, result).Observe(d.Seconds())
}

// RecordResource counts an ensured Azure resource.
func (m *Metrics) RecordResource(resourceType string, created bool) {
	if m == nil {
		return
	}
	m.resources.WithLabelValues(resourceType, strconv.FormatBool(created)).Inc()
}

// RecordCase records a use case result.
func (m *Metrics) RecordCase(r CaseResult) {
	if m == nil {
		return
	}
	passed := 0.0
	if r.Passed {
		passed = 1
	}
	m.caseResult.WithLabelValues(
		r.UseCase.Slug(),
		string(r.UseCase.Storage),
		string(r.UseCase.Provision),
		strconv.FormatBool(r.Keyless),
	).Set(passed)
	m.caseDuration.WithLabelValues(r.UseCase.Slug()).Set(r.Duration.Seconds())
}

// RecordRun counts a finished run.
func (m *Metrics) RecordRun(exitCode int) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(strconv.Itoa(exitCode)).Inc()
}

// WriteToFile writes the metrics in text format to path. The file is
// replaced atomically.
func (m *Metrics) WriteToFile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
