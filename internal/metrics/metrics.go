// Package metrics exposes import counters in the Prometheus text format.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/sam3690/syncly/internal/model"
)

const namespace = "syncly"

type Registry struct {
	reg      *prometheus.Registry
	imports  *prometheus.CounterVec
	events   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New builds a private registry with runtime collectors and the import
// metrics registered.
func New() *Registry {
	r := &Registry{reg: prometheus.NewRegistry()}

	r.imports = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "imports_total",
		Help:      "Import runs by provider and outcome",
	}, []string{"provider", "outcome"})
	r.events = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "imported_events_total",
		Help:      "Activity events appended to the store by provider",
	}, []string{"provider"})
	r.duration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "import_duration_seconds",
		Help:      "Wall time of an import run",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"provider"})

	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.imports, r.events, r.duration,
	)
	return r
}

// ObserveImport records one finished import run.
func (r *Registry) ObserveImport(provider model.Provider, imported int64, err error, elapsed time.Duration) {
	p := string(provider)
	r.duration.WithLabelValues(p).Observe(elapsed.Seconds())
	if err != nil {
		r.imports.WithLabelValues(p, "error").Inc()
		return
	}
	r.imports.WithLabelValues(p, "ok").Inc()
	r.events.WithLabelValues(p).Add(float64(imported))
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Push sends the registry to a Pushgateway under job. One-shot imports have
// no scrape endpoint, so they report this way before exiting.
func (r *Registry) Push(ctx context.Context, gatewayURL, job string) error {
	if err := push.New(gatewayURL, job).Gatherer(r.reg).PushContext(ctx); err != nil {
		return fmt.Errorf("pushing metrics: %w", err)
	}
	return nil
}
