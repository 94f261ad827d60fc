package engine

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusOK    = "ok"
	statusError = "error"
)

// metrics holds the Prometheus collectors of an Engine.
type metrics struct {
	operationsTotal     *prometheus.CounterVec
	operationDuration   *prometheus.HistogramVec
	bindingsCreated     *prometheus.CounterVec
	bindingUpdates      *prometheus.CounterVec
	hydrationMismatches *prometheus.CounterVec
}

// Collectors registered on prometheus.DefaultRegisterer are shared by every
// Engine using it, since registering them twice would fail.
var (
	defaultMetrics   = map[string]*metrics{}
	defaultMetricsMu sync.Mutex
)

func metricsFor(config Config) *metrics {
	if config.Registry != prometheus.DefaultRegisterer {
		return initMetrics(config)
	}

	key := config.Namespace + "/" + config.Subsystem
	defaultMetricsMu.Lock()
	defer defaultMetricsMu.Unlock()
	if m, ok := defaultMetrics[key]; ok {
		return m
	}
	m := initMetrics(config)
	defaultMetrics[key] = m
	return m
}

func initMetrics(config Config) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		operationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "renders_total",
			Help:      "Total number of render, build, hydrate and update operations",
		}, []string{"op", "status"}),

		operationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "render_duration_seconds",
			Help:      "Operation duration in seconds",
			Buckets:   config.Buckets,
		}, []string{"op"}),

		bindingsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "bindings_created_total",
			Help:      "Total number of bindings created by kind",
		}, []string{"kind"}),

		bindingUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "binding_updates_total",
			Help:      "Total number of binding updates by kind and status",
		}, []string{"kind", "status"}),

		hydrationMismatches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "hydration_mismatches_total",
			Help:      "Total number of failed hydrations by error code",
		}, []string{"code"}),
	}
}

func status(err error) string {
	if err != nil {
		return statusError
	}
	return statusOK
}
