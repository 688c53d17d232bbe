package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	embeddingCalls  *prometheus.CounterVec
	gradingTotal    prometheus.Counter
	vectorSearches  prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	embeddingCalls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "embedding_calls_total",
		Help: "Calls to the embedding service by outcome",
	}, []string{"outcome"})

	gradingTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "grading_runs_total",
		Help: "Completed auto-grading runs",
	})

	vectorSearches := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vector_searches_total",
		Help: "Similarity searches against the vector store",
	})

	registry.MustRegister(requestDuration, requestTotal, embeddingCalls, gradingTotal, vectorSearches)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		embeddingCalls:  embeddingCalls,
		gradingTotal:    gradingTotal,
		vectorSearches:  vectorSearches,
	}
}

// Handler exposes the /metrics endpoint handler.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records one handled request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := []string{method, path, strconv.Itoa(status)}
	s.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(labels...).Inc()
}

// ObserveEmbeddingCall records an embedding service call outcome.
func (s *MetricsService) ObserveEmbeddingCall(success bool) {
	outcome := "success"
	if !success {
		outcome = "error"
	}
	s.embeddingCalls.WithLabelValues(outcome).Inc()
}

// ObserveGradingRun counts a completed auto-grading run.
func (s *MetricsService) ObserveGradingRun() {
	s.gradingTotal.Inc()
}

// ObserveVectorSearch counts a similarity search.
func (s *MetricsService) ObserveVectorSearch() {
	s.vectorSearches.Inc()
}
