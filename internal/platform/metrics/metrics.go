package metrics

import (
	"freight-route-service/internal/domain"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the service's Prometheus collectors on a private registry.
type Registry struct {
	registry *prometheus.Registry

	PlansTotal       *prometheus.CounterVec
	PlanDuration     prometheus.Histogram
	PlansReturned    prometheus.Histogram
	SearchesTotal    *prometheus.CounterVec
	SearchExpanded   *prometheus.HistogramVec
	SearchDuration   *prometheus.HistogramVec
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	RateLimited      prometheus.Counter
	RulesReloads     *prometheus.CounterVec
	NetworkCacheHits *prometheus.CounterVec
}

func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Registry{
		registry: reg,

		PlansTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "freight_plans_total",
			Help: "Planning calls by outcome",
		}, []string{"outcome"}),
		PlanDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "freight_plan_duration_seconds",
			Help:    "Planning call duration",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		PlansReturned: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "freight_plans_returned",
			Help:    "Candidate plans returned per call",
			Buckets: prometheus.LinearBuckets(0, 1, 7),
		}),
		SearchesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "freight_searches_total",
			Help: "Route searches by criterion and result",
		}, []string{"criterion", "found"}),
		SearchExpanded: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "freight_search_expanded_states",
			Help:    "States expanded per route search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"criterion"}),
		SearchDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "freight_search_duration_seconds",
			Help:    "Route search duration",
			Buckets: prometheus.ExponentialBuckets(0.00005, 4, 10),
		}, []string{"criterion"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "freight_http_requests_total",
			Help: "HTTP requests by method, path and status",
		}, []string{"method", "path", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "freight_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		RateLimited: f.NewCounter(prometheus.CounterOpts{
			Name: "freight_http_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		}),
		RulesReloads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "freight_rules_reloads_total",
			Help: "Rules file reload attempts by result",
		}, []string{"result"}),
		NetworkCacheHits: f.NewCounterVec(prometheus.CounterOpts{
			Name: "freight_network_cache_lookups_total",
			Help: "Network loader cache lookups by kind and result",
		}, []string{"kind", "result"}),
	}
}

// Gatherer exposes the underlying registry for tests and custom exporters.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.registry }

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func (r *Registry) ObserveSearch(c domain.Criterion, found bool, expanded int, dur time.Duration) {
	r.SearchesTotal.WithLabelValues(string(c), strconv.FormatBool(found)).Inc()
	r.SearchExpanded.WithLabelValues(string(c)).Observe(float64(expanded))
	r.SearchDuration.WithLabelValues(string(c)).Observe(dur.Seconds())
}

func (r *Registry) ObservePlan(outcome string, plans int, dur time.Duration) {
	r.PlansTotal.WithLabelValues(outcome).Inc()
	r.PlansReturned.Observe(float64(plans))
	r.PlanDuration.Observe(dur.Seconds())
}

func (r *Registry) ObserveHTTP(method, path string, status int, dur time.Duration) {
	r.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	r.HTTPDuration.WithLabelValues(method, path).Observe(dur.Seconds())
}

func (r *Registry) ObserveRulesReload(ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	r.RulesReloads.WithLabelValues(result).Inc()
}

func (r *Registry) ObserveCacheLookup(kind string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.NetworkCacheHits.WithLabelValues(kind, result).Inc()
}
