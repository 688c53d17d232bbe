package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatherCounter(t *testing.T, svc *MetricsService, name, labelName string) map[string]float64 {
	t.Helper()
	families, err := svc.registry.Gather()
	require.NoError(t, err)

	counts := map[string]float64{}
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			value := metric.GetCounter().GetValue()
			if labelName == "" {
				counts[""] = value
				continue
			}
			for _, label := range metric.GetLabel() {
				if label.GetName() == labelName {
					counts[label.GetValue()] = value
				}
			}
		}
	}
	return counts
}

func TestMetricsServiceEmbeddingCallCounter(t *testing.T) {
	svc := NewMetricsService()

	svc.ObserveEmbeddingCall(true)
	svc.ObserveEmbeddingCall(true)
	svc.ObserveEmbeddingCall(false)

	counts := gatherCounter(t, svc, "embedding_calls_total", "outcome")
	assert.Equal(t, 2.0, counts["success"])
	assert.Equal(t, 1.0, counts["error"])
}

func TestMetricsServiceGradingAndSearchCounters(t *testing.T) {
	svc := NewMetricsService()

	svc.ObserveGradingRun()
	svc.ObserveVectorSearch()
	svc.ObserveVectorSearch()

	assert.Equal(t, 1.0, gatherCounter(t, svc, "grading_runs_total", "")[""])
	assert.Equal(t, 2.0, gatherCounter(t, svc, "vector_searches_total", "")[""])
}

func TestMetricsServiceHTTPRequestCounter(t *testing.T) {
	svc := NewMetricsService()

	svc.ObserveHTTPRequest("GET", "/api/submissions", 200, 25*time.Millisecond)
	svc.ObserveHTTPRequest("GET", "/api/submissions", 200, 40*time.Millisecond)

	counts := gatherCounter(t, svc, "http_requests_total", "path")
	assert.Equal(t, 2.0, counts["/api/submissions"])
}
