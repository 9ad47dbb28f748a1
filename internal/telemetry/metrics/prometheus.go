package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// SetupPrometheus creates the registry served on /metrics, with runtime collectors,
// a constant cragjournal_version_info gauge and any extra collectors (e.g. the db pool).
func SetupPrometheus(versionInfo string, extraCollectors ...prometheus.Collector) *prometheus.Registry {
	promRegistry := prometheus.NewRegistry()

	// Add Go module build info, runtime metrics and process collectors.
	promRegistry.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if versionInfo == "" {
		versionInfo = "unknown"
	}
	promRegistry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   "cragjournal",
		Name:        "version_info",
		Help:        "Always 1, labeled with the running version (last commit hash).",
		ConstLabels: prometheus.Labels{"version": versionInfo},
	}, func() float64 { return 1 }))

	promRegistry.MustRegister(extraCollectors...)

	return promRegistry
}
