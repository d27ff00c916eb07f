// Package metrics exposes Prometheus counters for page traffic and the two
// upstreams (Medium feeds, GitHub). Every method is safe on a nil *Metrics so
// services can run uninstrumented in tests and the CLI.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "vulninsights"

// Upstream names used as label values.
const (
	UpstreamFeeds  = "feeds"
	UpstreamGitHub = "github"
)

type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	UpstreamRequests *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec
	FallbackServed   *prometheus.CounterVec
	PostsAggregated  prometheus.Gauge
	SlugCollisions   prometheus.Counter
}

// New registers every collector on a private registry, so several instances
// can coexist in one process.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Time to serve a request, upstream fetches included.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		UpstreamRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Upstream fetches by upstream and result (ok, error).",
		}, []string{"upstream", "result"}),
		UpstreamDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream fetch latency.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"upstream"}),
		FallbackServed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallback_served_total",
			Help:      "Responses built from placeholder data because an upstream failed.",
		}, []string{"upstream"}),
		PostsAggregated: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "posts_aggregated",
			Help:      "Posts in the most recent successful feed aggregation.",
		}),
		SlugCollisions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slug_collisions_total",
			Help:      "Posts dropped from slug lookup because a newer post had the same slug.",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveRequest(path, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	route := RouteLabel(path)
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(route).Observe(d.Seconds())
}

// ObserveUpstream records one upstream fetch. A failed fetch also counts as
// a fallback response, since callers always substitute placeholder data.
func (m *Metrics) ObserveUpstream(upstream string, err error, d time.Duration) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
		m.FallbackServed.WithLabelValues(upstream).Inc()
	}
	m.UpstreamRequests.WithLabelValues(upstream, result).Inc()
	m.UpstreamDuration.WithLabelValues(upstream).Observe(d.Seconds())
}

func (m *Metrics) ObserveAggregation(posts, collisions int) {
	if m == nil {
		return
	}
	m.PostsAggregated.Set(float64(posts))
	m.SlugCollisions.Add(float64(collisions))
}

// RouteLabel maps a request path onto the fixed route set, keeping label
// cardinality bounded no matter what clients request.
func RouteLabel(path string) string {
	switch {
	case path == "/":
		return "/"
	case path == "/blogs", path == "/tools", path == "/about",
		path == "/robots.txt", path == "/sitemap.xml", path == "/metrics":
		return path
	case strings.HasPrefix(path, "/blogs/") && !strings.Contains(strings.TrimPrefix(path, "/blogs/"), "/"):
		return "/blogs/{slug}"
	case strings.HasPrefix(path, "/assets/"):
		return "/assets/"
	default:
		return "other"
	}
}
