// Package telemetry owns the process metrics registry and the trace exporter.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nrminor/py-refman/internal/ports"
	"github.com/nrminor/py-refman/internal/taskrun"
)

// Metrics records runner outcomes and transfer volume on a private registry.
type Metrics struct {
	reg *prometheus.Registry

	runs         *prometheus.CounterVec
	runSeconds   *prometheus.HistogramVec
	files        *prometheus.CounterVec
	bytesWritten *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "refman_task_runs_total",
				Help: "Runner calls by outcome.",
			},
			[]string{"outcome"},
		),
		runSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "refman_task_run_duration_seconds",
				Help:    "Wall time of runner calls.",
				Buckets: prometheus.ExponentialBuckets(0.005, 4, 8),
			},
			[]string{"outcome"},
		),
		files: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "refman_download_files_total",
				Help: "Dataset files transferred, by file kind and status.",
			},
			[]string{"kind", "status"},
		),
		bytesWritten: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "refman_download_bytes_total",
				Help: "Bytes written while transferring dataset files.",
			},
			[]string{"kind"},
		),
	}
	m.reg.MustRegister(m.runs, m.runSeconds, m.files, m.bytesWritten)
	return m
}

var (
	_ taskrun.Metrics        = (*Metrics)(nil)
	_ ports.TransferObserver = (*Metrics)(nil)
)

func (m *Metrics) RunFinished(outcome taskrun.Outcome, elapsed time.Duration) {
	m.runs.WithLabelValues(string(outcome)).Inc()
	m.runSeconds.WithLabelValues(string(outcome)).Observe(elapsed.Seconds())
}

func (m *Metrics) FileTransferred(kind string, bytes int64) {
	m.files.WithLabelValues(kind, "ok").Inc()
	m.bytesWritten.WithLabelValues(kind).Add(float64(bytes))
}

func (m *Metrics) FileFailed(kind string) {
	m.files.WithLabelValues(kind, "failed").Inc()
}

// Gatherer exposes the registry, e.g. for tests.
func (m *Metrics) Gatherer() prometheus.Gatherer { return m.reg }

// WriteTextfile writes the current values in the text exposition format, for the
// node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}
