package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CompileRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blueprint_compile_requests_total",
		Help: "Total number of compile requests, labelled by language and status.",
	}, []string{"language", "status"})

	CompileDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "blueprint_compile_duration_ms",
		Help:    "End-to-end compile latency in milliseconds.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	})

	GeneratedBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "blueprint_generated_source_bytes",
		Help:    "Size of generated source files in bytes.",
		Buckets: prometheus.ExponentialBuckets(64, 4, 8),
	})

	DocumentsRestored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blueprint_documents_restored_total",
		Help: "Total number of graph documents successfully restored.",
	})

	DocumentsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blueprint_documents_rejected_total",
		Help: "Total number of graph documents rejected, labelled by error code.",
	}, []string{"code"})

	ValidationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blueprint_validation_failures_total",
		Help: "Total number of graphs that failed validation.",
	})

	JobsQueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blueprint_jobs_queued_total",
		Help: "Total number of compile jobs placed on the background queue.",
	})

	JobsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blueprint_jobs_dropped_total",
		Help: "Total number of compile jobs rejected due to a full queue.",
	})

	QueueUtilization = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "blueprint_job_queue_utilization_ratio",
		Help: "Current compile job queue utilization (0-1).",
	})
)
