package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var documentsIngested = promauto.NewCounter(prometheus.CounterOpts{
	Name: "documents_ingested_total",
	Help: "Documents successfully ingested (re-uploads included)",
})

var chunksSkipped = promauto.NewCounter(prometheus.CounterOpts{
	Name: "ingest_chunks_skipped_total",
	Help: "Chunks dropped because their embed/upsert batch failed",
})

var gateRejections = promauto.NewCounter(prometheus.CounterOpts{
	Name: "relevance_gate_rejections_total",
	Help: "Chat queries answered with the out-of-scope message instead of the model",
})

var dependencyLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "dependency_latency_seconds",
	Help:    "Latency of external service calls.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10},
}, []string{"service"})

type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *HttpStatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

func IncrementDocumentsIngested() {
	documentsIngested.Inc()
}

func AddSkippedChunks(n int) {
	chunksSkipped.Add(float64(n))
}

func IncrementGateRejections() {
	gateRejections.Inc()
}

func CaptureExecutionMetrics(label string, timeElapsed time.Duration) {
	dependencyLatency.WithLabelValues(label).Observe(timeElapsed.Seconds())
}
