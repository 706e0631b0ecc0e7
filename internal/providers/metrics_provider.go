package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"archivebot/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncPagesProcessed(result string)
	AddThreadsArchived(count int)
	ObserveRunDuration(duration time.Duration)
	SetLastRun(t time.Time)
	IncAPIRequests(action string)
	IncAPIErrors(action string)
}

type MetricsProvider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	pagesProcessed  *prometheus.CounterVec
	threadsArchived prometheus.Counter
	runDuration     prometheus.Histogram
	lastRun         prometheus.Gauge
	apiRequests     *prometheus.CounterVec
	apiErrors       *prometheus.CounterVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncPagesProcessed(result string) {
	m.pagesProcessed.WithLabelValues(result).Inc()
}

func (m *MetricsProvider) AddThreadsArchived(count int) {
	m.threadsArchived.Add(float64(count))
}

func (m *MetricsProvider) ObserveRunDuration(duration time.Duration) {
	m.runDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetLastRun(t time.Time) {
	m.lastRun.Set(float64(t.Unix()))
}

func (m *MetricsProvider) IncAPIRequests(action string) {
	m.apiRequests.WithLabelValues(action).Inc()
}

func (m *MetricsProvider) IncAPIErrors(action string) {
	m.apiErrors.WithLabelValues(action).Inc()
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "archivebot_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "archivebot_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "archivebot_cache_hits_total",
			Help: "Total number of page cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "archivebot_cache_misses_total",
			Help: "Total number of page cache misses",
		}),

		pagesProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "archivebot_pages_processed_total",
			Help: "Pages processed per run, by outcome",
		}, []string{"result"}),

		threadsArchived: promauto.NewCounter(prometheus.CounterOpts{
			Name: "archivebot_threads_archived_total",
			Help: "Total number of threads moved to archives",
		}),

		runDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "archivebot_run_duration_seconds",
			Help:    "Duration of full batch runs in seconds",
			Buckets: []float64{1, 5, 15, 60, 300, 900, 3600},
		}),

		lastRun: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "archivebot_last_run_timestamp_seconds",
			Help: "Unix time of the last completed batch run",
		}),

		apiRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "archivebot_api_requests_total",
			Help: "MediaWiki API requests, by action",
		}, []string{"action"}),

		apiErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "archivebot_api_errors_total",
			Help: "Failed MediaWiki API requests, by action",
		}, []string{"action"}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                  {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)  {}
func (n *noopMetrics) IncCacheHits()                                     {}
func (n *noopMetrics) IncCacheMisses()                                   {}
func (n *noopMetrics) IncPagesProcessed(_ string)                        {}
func (n *noopMetrics) AddThreadsArchived(_ int)                          {}
func (n *noopMetrics) ObserveRunDuration(_ time.Duration)                {}
func (n *noopMetrics) SetLastRun(_ time.Time)                            {}
func (n *noopMetrics) IncAPIRequests(_ string)                           {}
func (n *noopMetrics) IncAPIErrors(_ string)                             {}
