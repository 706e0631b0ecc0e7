package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type middlewareTestMetrics struct {
	noopMetrics
	endpoints []string
	statuses  []int
	durations int
}

func (m *middlewareTestMetrics) IncRequestsTotal(endpoint string, status int) {
	m.endpoints = append(m.endpoints, endpoint)
	m.statuses = append(m.statuses, status)
}

func (m *middlewareTestMetrics) ObserveRequestDuration(_ string, _ time.Duration) {
	m.durations++
}

func TestMetricsMiddleware_RecordsStatus(t *testing.T) {
	metrics := &middlewareTestMetrics{}
	handler := MetricsMiddleware(metrics, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	req := httptest.NewRequest(http.MethodPost, "/run", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, []string{"/run"}, metrics.endpoints)
	assert.Equal(t, []int{http.StatusAccepted}, metrics.statuses)
	assert.Equal(t, 1, metrics.durations)
}

func TestMetricsMiddleware_DefaultsToOK(t *testing.T) {
	metrics := &middlewareTestMetrics{}
	handler := MetricsMiddleware(metrics, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/reports", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, []int{http.StatusOK}, metrics.statuses)
}
