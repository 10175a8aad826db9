package providers

import (
	"alarmbot/internal/structures"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	IncPersistenceErrors()
	ObserveCycleDuration(duration time.Duration)
	IncAlarmsFired()
	IncNotifyFailures()
	IncFeedMisses()
	SetAlarmsTotal(count int)
	Handler() http.Handler
}

type MetricsProvider struct {
	registry            *prometheus.Registry
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	persistenceErrors   prometheus.Counter
	cycleDuration       prometheus.Histogram
	alarmsFired         prometheus.Counter
	notifyFailures      prometheus.Counter
	feedMisses          prometheus.Counter
	alarmsTotal         prometheus.Gauge
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

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncPersistenceErrors() {
	m.persistenceErrors.Inc()
}

func (m *MetricsProvider) ObserveCycleDuration(duration time.Duration) {
	m.cycleDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncAlarmsFired() {
	m.alarmsFired.Inc()
}

func (m *MetricsProvider) IncNotifyFailures() {
	m.notifyFailures.Inc()
}

func (m *MetricsProvider) IncFeedMisses() {
	m.feedMisses.Inc()
}

func (m *MetricsProvider) SetAlarmsTotal(count int) {
	m.alarmsTotal.Set(float64(count))
}

func (m *MetricsProvider) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
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

	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &MetricsProvider{
		registry: registry,

		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "alarmbot_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "alarmbot_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "alarmbot_price_cache_hits_total",
			Help: "Total number of price cache hits",
		}),

		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "alarmbot_price_cache_misses_total",
			Help: "Total number of price cache misses",
		}),

		persistenceDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "alarmbot_persistence_duration_seconds",
			Help:    "Duration of alarm store persist operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		persistenceErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "alarmbot_persistence_errors_total",
			Help: "Total number of failed alarm store persists",
		}),

		cycleDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "alarmbot_monitor_cycle_duration_seconds",
			Help:    "Duration of a monitor cycle in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		alarmsFired: factory.NewCounter(prometheus.CounterOpts{
			Name: "alarmbot_alarms_fired_total",
			Help: "Total number of alarms that hit their target",
		}),

		notifyFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "alarmbot_notify_failures_total",
			Help: "Total number of alarm notifications that could not be delivered",
		}),

		feedMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "alarmbot_feed_misses_total",
			Help: "Total number of alarm evaluations skipped for lack of a price",
		}),

		alarmsTotal: factory.NewGauge(prometheus.GaugeOpts{
			Name: "alarmbot_alarms",
			Help: "Number of pending alarms seen by the last monitor cycle",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) IncPersistenceErrors()                            {}
func (n *noopMetrics) ObserveCycleDuration(_ time.Duration)             {}
func (n *noopMetrics) IncAlarmsFired()                                  {}
func (n *noopMetrics) IncNotifyFailures()                               {}
func (n *noopMetrics) IncFeedMisses()                                   {}
func (n *noopMetrics) SetAlarmsTotal(_ int)                             {}
func (n *noopMetrics) Handler() http.Handler                            { return http.NotFoundHandler() }
