package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request-level metadata for the API.
type HTTPMetrics struct {
	duration *prometheus.HistogramVec
	requests *prometheus.CounterVec
}

// NewHTTPMetrics registers the HTTP metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests processed, labelled by status class.",
	}, []string{"method", "route", "status"})
	reg.MustRegister(duration, requests)
	return &HTTPMetrics{duration: duration, requests: requests}
}

// Observe records one finished request.
func (m *HTTPMetrics) Observe(method, route, status string, elapsed time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
	m.requests.WithLabelValues(method, route, status).Inc()
}

// UploadMetrics counts blob store activity of the transactional saver.
type UploadMetrics struct {
	uploads       *prometheus.CounterVec
	compensations prometheus.Counter
	staleDeletes  prometheus.Counter
}

// NewUploadMetrics registers the upload metrics on the provided registerer.
func NewUploadMetrics(reg prometheus.Registerer) *UploadMetrics {
	if reg == nil {
		return &UploadMetrics{}
	}
	uploads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_file_uploads_total",
		Help: "File uploads attempted by the saver.",
	}, []string{"outcome"})
	compensations := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_upload_compensations_total",
		Help: "Compensating deletes after a partial upload failure.",
	})
	staleDeletes := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_stale_file_deletes_total",
		Help: "Old objects removed after a successful file replacement.",
	})
	reg.MustRegister(uploads, compensations, staleDeletes)
	return &UploadMetrics{
		uploads:       uploads,
		compensations: compensations,
		staleDeletes:  staleDeletes,
	}
}

// IncUpload counts one upload attempt with the given outcome.
func (m *UploadMetrics) IncUpload(outcome string) {
	if m == nil || m.uploads == nil {
		return
	}
	m.uploads.WithLabelValues(outcome).Inc()
}

// IncCompensation counts one compensating delete.
func (m *UploadMetrics) IncCompensation() {
	if m == nil || m.compensations == nil {
		return
	}
	m.compensations.Inc()
}

// IncStaleDelete counts one old-object removal.
func (m *UploadMetrics) IncStaleDelete() {
	if m == nil || m.staleDeletes == nil {
		return
	}
	m.staleDeletes.Inc()
}
