package app

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"devtoolshub/internal/router"
)

// Metrics holds the site's collectors on an isolated registry so tests can
// build as many servers as they like.
type Metrics struct {
	Registry *prometheus.Registry

	RouteResolutions  *prometheus.CounterVec
	RelatedFollows    *prometheus.CounterVec
	Searches          *prometheus.CounterVec
	SearchResults     prometheus.Histogram
	AppearanceToggles *prometheus.CounterVec
	StoreErrors       *prometheus.CounterVec
	RateLimited       prometheus.Counter
}

// NewMetrics registers every collector on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		Registry: reg,
		RouteResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "devtoolshub_route_resolutions_total",
			Help: "Page requests by resolved route kind.",
		}, []string{"kind"}),
		RelatedFollows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "devtoolshub_related_follows_total",
			Help: "Navigation between tutorials through related links.",
		}, []string{"from", "to"}),
		Searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "devtoolshub_searches_total",
			Help: "Catalog searches by surface.",
		}, []string{"surface"}),
		SearchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "devtoolshub_search_results",
			Help:    "Number of tools matched per search.",
			Buckets: prometheus.LinearBuckets(0, 1, 12),
		}),
		AppearanceToggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "devtoolshub_appearance_toggles_total",
			Help: "Appearance toggles by resulting mode.",
		}, []string{"mode"}),
		StoreErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "devtoolshub_preference_store_errors_total",
			Help: "Preference store failures by operation.",
		}, []string{"op"}),
		RateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "devtoolshub_api_rate_limited_total",
			Help: "API requests rejected by the rate limiter.",
		}),
	}

	reg.MustRegister(
		m.RouteResolutions,
		m.RelatedFollows,
		m.Searches,
		m.SearchResults,
		m.AppearanceToggles,
		m.StoreErrors,
		m.RateLimited,
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

func (m *Metrics) observeRoute(u router.Unit) {
	m.RouteResolutions.WithLabelValues(u.Kind.String()).Inc()
}

func (m *Metrics) observeSearch(surface string, results int) {
	m.Searches.WithLabelValues(surface).Inc()
	m.SearchResults.Observe(float64(results))
}
