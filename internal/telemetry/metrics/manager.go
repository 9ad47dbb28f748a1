package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests            *prometheus.CounterVec
	CounterHandleRequestPanic  prometheus.Counter
	CounterRateLimitedRequests prometheus.Counter
	CounterReminderChecks      *prometheus.CounterVec
	CounterNotificationsAdded  *prometheus.CounterVec
	CounterStorePersistErrors  prometheus.Counter
	CounterStatsCacheHits      prometheus.Counter

	// gauges
	GaugeRequests             prometheus.Gauge
	GaugeLifeSignal           prometheus.Gauge
	GaugeUnreadNotifications  prometheus.Gauge
	GaugeSchedulerLastRunUnix *prometheus.GaugeVec

	// histograms
	HistogramRequestDuration  *prometheus.HistogramVec
	HistogramStatsCalculation prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("cragjournal", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("cragjournal", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterHandleRequestPanic := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})
	counterRateLimitedRequests := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "rate_limited_requests",
		Help:      "The total number of rate limited requests",
	})
	counterReminderChecks := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "reminder_checks",
		Help:      "The total number of reminder family runs",
	}, []string{"family", "fired"})
	counterNotificationsAdded := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "notifications_added",
		Help:      "The total number of notifications added to the store",
	}, []string{"type"})
	counterStorePersistErrors := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "notification_store_persist_errors",
		Help:      "Number of failed notification store load/save calls",
	})
	counterStatsCacheHits := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "stats_cache_hits",
		Help:      "Number of statistics served from cache",
	})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})
	gaugeLifeSignal := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "life_signal",
		Help:      "Shows whether the service is alive",
	})
	gaugeUnreadNotifications := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "unread_notifications",
		Help:      "Current number of unread notifications",
	})
	gaugeSchedulerLastRun := factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "scheduler_last_run_unix",
		Help:      "Unix time of the last run of a reminder family",
	}, []string{"family"})

	histogramRequestDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Histogram of response time for requests in seconds",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"route", "method", "status_code"})
	histogramStatsCalculation := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "stats_calculation_duration_seconds",
		Help:      "Duration of a single statistics calculation in seconds",
		Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
	})

	return &Manager{
		CounterRequests:            counterRequests,
		CounterHandleRequestPanic:  counterHandleRequestPanic,
		CounterRateLimitedRequests: counterRateLimitedRequests,
		CounterReminderChecks:      counterReminderChecks,
		CounterNotificationsAdded:  counterNotificationsAdded,
		CounterStorePersistErrors:  counterStorePersistErrors,
		CounterStatsCacheHits:      counterStatsCacheHits,
		GaugeRequests:              gaugeRequests,
		GaugeLifeSignal:            gaugeLifeSignal,
		GaugeUnreadNotifications:   gaugeUnreadNotifications,
		GaugeSchedulerLastRunUnix:  gaugeSchedulerLastRun,
		HistogramRequestDuration:   histogramRequestDuration,
		HistogramStatsCalculation:  histogramStatsCalculation,
	}
}
