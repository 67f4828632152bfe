package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vodaudio_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vodaudio_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Pipeline Metrics
	PipelineRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vodaudio_pipeline_runs_total",
			Help: "Total number of pipeline runs by outcome",
		},
		[]string{"pipeline", "outcome"},
	)

	// External Tool Metrics
	ToolRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vodaudio_tool_run_duration_seconds",
			Help:    "External tool run duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12), // 100ms to ~3.5 minutes
		},
		[]string{"tool"},
	)

	// Storage Metrics
	AudioUploadSizeBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vodaudio_audio_upload_size_bytes",
			Help:    "Size of uploaded audio renditions in bytes",
			Buckets: prometheus.ExponentialBuckets(256*1024, 2, 12), // 256KB to 512MB
		},
	)

	// Transcription Metrics
	TranscriptionJobsStartedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vodaudio_transcription_jobs_started_total",
			Help: "Total number of transcription jobs submitted",
		},
	)

	// Probe Cache Metrics
	ProbeCacheAccessTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vodaudio_probe_cache_access_total",
			Help: "Probe cache lookups by result",
		},
		[]string{"result"},
	)
)

// RecordHTTPRequest records metrics for an HTTP request
func RecordHTTPRequest(method, endpoint, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration)
}

// RecordPipelineRun records the outcome of a pipeline run. Outcome is
// "success" or the error kind that ended the run.
func RecordPipelineRun(pipeline, outcome string) {
	PipelineRunsTotal.WithLabelValues(pipeline, outcome).Inc()
}

// RecordProbeCacheAccess records a probe cache hit or miss
func RecordProbeCacheAccess(hit bool) {
	if hit {
		ProbeCacheAccessTotal.WithLabelValues("hit").Inc()
		return
	}
	ProbeCacheAccessTotal.WithLabelValues("miss").Inc()
}
