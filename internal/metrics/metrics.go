package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg            *prometheus.Registry
	HTTPRequests   *prometheus.CounterVec
	HTTPDuration   *prometheus.HistogramVec
	BackendFetches *prometheus.CounterVec
	CartOps        *prometheus.CounterVec
}

// NewRegistry builds a registry whose metric names carry the given namespace
// ("api", "storefront").
func NewRegistry(namespace string) *Registry {
	r := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})
	fetches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_fetches_total",
		Help:      "Calls to the products API by outcome.",
	}, []string{"op", "outcome"})
	cartOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_operations_total",
		Help:      "Cart mutations by kind.",
	}, []string{"op"})

	r.MustRegister(requests, duration, fetches, cartOps)
	return &Registry{
		reg:            r,
		HTTPRequests:   requests,
		HTTPDuration:   duration,
		BackendFetches: fetches,
		CartOps:        cartOps,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }

// Middleware counts requests by chi route pattern, so it must run inside the
// router (r.Use) for the pattern to be resolved.
func (r *Registry) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)

		route := "unmatched"
		if rctx := chi.RouteContext(req.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		r.HTTPRequests.WithLabelValues(route, req.Method, strconv.Itoa(status)).Inc()
		r.HTTPDuration.WithLabelValues(route, req.Method).Observe(time.Since(start).Seconds())
	})
}

// ObserveFetch records the outcome of a backend call. Safe on a nil Registry.
func (r *Registry) ObserveFetch(op string, err error) {
	if r == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.BackendFetches.WithLabelValues(op, outcome).Inc()
}

// ObserveCartOp is safe on a nil Registry.
func (r *Registry) ObserveCartOp(op string) {
	if r == nil {
		return
	}
	r.CartOps.WithLabelValues(op).Inc()
}
